package render

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskflow-ai/paper-figures-go/internal/domain/entity"
	"github.com/taskflow-ai/paper-figures-go/internal/shared/types"
)

func barFixture() entity.FigureSpec {
	return entity.FigureSpec{
		Kind:           entity.FigureBar,
		Basename:       "calls_bar",
		Title:          "Average Calls per Task",
		YLabel:         "Average Calls",
		YMax:           8,
		YTick:          2,
		HighlightColor: "#27ae60",
		Bars: []entity.BarValue{
			{Label: "A", Value: 2, Display: "2.0", Color: "#2ecc71", Reference: true},
			{Label: "B", Value: 5.6, Display: "5.6", Color: "#3498db"},
			{Label: "C", Value: 3.9, Display: "3.9", Color: "#e74c3c"},
		},
		RefLine: &entity.ReferenceLine{Y: 2, Color: "#2ecc71", Label: "A (constant)"},
		Annotations: []entity.Annotation{
			{Text: "2.8x fewer", X: 1, Y: 6, Color: "#2ecc71", Arrow: &entity.AnnotationArrow{X: 0, Y: 2}},
		},
	}
}

func groupedFixture() entity.FigureSpec {
	return entity.FigureSpec{
		Kind:           entity.FigureGroupedBar,
		Basename:       "calls_by_category",
		Title:          "Calls by Category",
		XLabel:         "Category",
		YLabel:         "Average Calls",
		YMax:           10,
		YTick:          2,
		HighlightColor: "#27ae60",
		Categories:     []string{"Simple", "Complex"},
		Series: []entity.MethodSeries{
			{Name: "A", Color: "#2ecc71", Values: []float64{2, 2}, Reference: true},
			{Name: "B", Color: "#3498db", Values: []float64{3, 9}},
		},
		RefLine: &entity.ReferenceLine{Y: 2, Color: "#2ecc71"},
	}
}

func lineFixture() entity.FigureSpec {
	return entity.FigureSpec{
		Kind:           entity.FigureLine,
		Basename:       "calls_line",
		Title:          "Scaling",
		XLabel:         "Category",
		YLabel:         "Average Calls",
		YMax:           10,
		YTick:          2,
		HighlightColor: "#27ae60",
		Categories:     []string{"Simple", "Complex"},
		Series: []entity.MethodSeries{
			{Name: "A", Color: "#2ecc71", Values: []float64{2, 2}, Reference: true},
			{Name: "B", Color: "#c0392b", Values: []float64{3, 9}, Dashed: true},
		},
		Band:        &entity.Band{X0: 0.9, X1: 1.1, Y0: 2, Y1: 9, Color: "#e74c3c"},
		Annotations: []entity.Annotation{{Text: "4.5x gap", X: 1.1, Y: 5, Color: "#e74c3c"}},
	}
}

func schematicFixture() entity.FigureSpec {
	return entity.FigureSpec{
		Kind:     entity.FigureSchematic,
		Basename: "architecture",
		Diagrams: []entity.Diagram{
			{
				Title:        "Loop",
				TitleColor:   "#e74c3c",
				Caption:      "N calls",
				CaptionColor: "#e74c3c",
				Boxes: []entity.DiagramBox{
					{Label: "Input", Fill: "#ecf0f1", TextColor: "#000000"},
					{Label: "Step", Fill: "#e74c3c", TextColor: "#ffffff"},
				},
			},
			{
				Title:        "Pipeline",
				TitleColor:   "#2ecc71",
				Caption:      "2 calls",
				CaptionColor: "#2ecc71",
				Boxes: []entity.DiagramBox{
					{Label: "Input", Fill: "#ecf0f1", TextColor: "#000000"},
					{Label: "Runtime", Fill: "#3498db", TextColor: "#ffffff", Tall: true, Note: "No LLM!", NoteColor: "#3498db"},
				},
			},
		},
	}
}

func tableFixture() entity.FigureSpec {
	return entity.FigureSpec{
		Kind:     entity.FigureTable,
		Basename: "summary",
		Title:    "Results Summary",
		Table: &entity.TableSpec{
			Columns:       []string{"Method", "Calls", "Cost"},
			Rows:          [][]string{{"A (Ours)", "2.0", "$0.0002"}, {"B", "5.6", "$0.0010"}},
			HighlightRow:  0,
			HeaderFill:    "#34495e",
			HeaderText:    "#ffffff",
			HighlightFill: "#d5f5e3",
		},
	}
}

func allFixtures() []entity.FigureSpec {
	return []entity.FigureSpec{
		barFixture(),
		groupedFixture(),
		lineFixture(),
		schematicFixture(),
		tableFixture(),
	}
}

func TestRender_WritesBothFormats(t *testing.T) {
	repo := NewRenderRepository()
	dir := t.TempDir()

	expected := map[string][2]int{
		"calls_bar":         {rasterWidth, rasterHeight},
		"calls_by_category": {groupedWidth, groupedHeight},
		"calls_line":        {rasterWidth, rasterHeight},
		"architecture":      {schematicWidth, schematicHeight},
		"summary":           {tableWidth, tableHeight},
	}

	for _, spec := range allFixtures() {
		artifacts, err := repo.Render(spec, dir, []string{"png", "pdf"})
		require.NoError(t, err, spec.Basename)
		require.Len(t, artifacts, 2)

		assert.Equal(t, spec.Basename, artifacts[0].Figure)
		assert.Equal(t, "png", artifacts[0].Format)
		assert.Equal(t, "pdf", artifacts[1].Format)
		for _, artifact := range artifacts {
			assert.True(t, filepath.IsAbs(artifact.Path), artifact.Path)
		}

		pngData, err := os.ReadFile(filepath.Join(dir, spec.Basename+".png"))
		require.NoError(t, err)
		cfg, err := png.DecodeConfig(bytes.NewReader(pngData))
		require.NoError(t, err, spec.Basename)
		dims := expected[spec.Basename]
		assert.Equal(t, dims[0], cfg.Width, spec.Basename)
		assert.Equal(t, dims[1], cfg.Height, spec.Basename)

		pdfData, err := os.ReadFile(filepath.Join(dir, spec.Basename+".pdf"))
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(pdfData, []byte("%PDF-")), spec.Basename)
		assert.Contains(t, string(pdfData), "%%EOF", spec.Basename)
	}
}

func TestRender_Deterministic(t *testing.T) {
	repo := NewRenderRepository()
	dirA := t.TempDir()
	dirB := t.TempDir()

	for _, spec := range allFixtures() {
		_, err := repo.Render(spec, dirA, []string{"png", "pdf"})
		require.NoError(t, err)
		_, err = repo.Render(spec, dirB, []string{"png", "pdf"})
		require.NoError(t, err)

		for _, ext := range []string{".png", ".pdf"} {
			a, err := os.ReadFile(filepath.Join(dirA, spec.Basename+ext))
			require.NoError(t, err)
			b, err := os.ReadFile(filepath.Join(dirB, spec.Basename+ext))
			require.NoError(t, err)
			assert.Equal(t, a, b, "%s%s differs between runs", spec.Basename, ext)
		}
	}
}

func TestRender_OverwritesExistingFiles(t *testing.T) {
	repo := NewRenderRepository()
	dir := t.TempDir()
	spec := barFixture()

	for _, ext := range []string{".png", ".pdf"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, spec.Basename+ext), []byte("stale junk"), 0o644))
	}

	_, err := repo.Render(spec, dir, []string{"png", "pdf"})
	require.NoError(t, err)

	pngData, err := os.ReadFile(filepath.Join(dir, spec.Basename+".png"))
	require.NoError(t, err)
	_, err = png.DecodeConfig(bytes.NewReader(pngData))
	assert.NoError(t, err)

	pdfData, err := os.ReadFile(filepath.Join(dir, spec.Basename+".pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdfData, []byte("%PDF-")))
}

func TestRender_UnknownFormat(t *testing.T) {
	repo := NewRenderRepository()
	dir := t.TempDir()

	artifacts, err := repo.Render(barFixture(), dir, []string{"png", "svg"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUnknownFormat))
	// The png written before the bad format survives.
	require.Len(t, artifacts, 1)
	assert.FileExists(t, filepath.Join(dir, "calls_bar.png"))
}

func TestRender_InvalidSpecs(t *testing.T) {
	repo := NewRenderRepository()
	dir := t.TempDir()

	noBasename := barFixture()
	noBasename.Basename = ""

	noBars := barFixture()
	noBars.Bars = nil

	noRange := barFixture()
	noRange.YMax = 0

	mismatched := groupedFixture()
	mismatched.Series[1].Values = []float64{3}

	noDiagrams := schematicFixture()
	noDiagrams.Diagrams = nil

	raggedTable := tableFixture()
	raggedTable.Table.Rows = [][]string{{"A", "2.0"}}

	unknownKind := barFixture()
	unknownKind.Kind = entity.FigureKind("pie")

	cases := []struct {
		name     string
		spec     entity.FigureSpec
		sentinel error
	}{
		{"missing basename", noBasename, types.ErrInvalidFigureSpec},
		{"bar without bars", noBars, types.ErrInvalidFigureSpec},
		{"bar without range", noRange, types.ErrInvalidFigureSpec},
		{"series length mismatch", mismatched, types.ErrInvalidFigureSpec},
		{"schematic without diagrams", noDiagrams, types.ErrInvalidFigureSpec},
		{"ragged table row", raggedTable, types.ErrInvalidFigureSpec},
		{"unknown kind", unknownKind, types.ErrUnknownFigureKind},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			artifacts, err := repo.Render(tc.spec, dir, []string{"png"})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.sentinel), "got %v", err)
			assert.Empty(t, artifacts)
		})
	}

	// Nothing may be written when validation fails.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEnsureOutputDirectory(t *testing.T) {
	repo := NewRenderRepository()
	dir := filepath.Join(t.TempDir(), "out", "figures")

	require.NoError(t, repo.EnsureOutputDirectory(dir))
	assert.DirExists(t, dir)

	// Idempotent on an existing directory.
	require.NoError(t, repo.EnsureOutputDirectory(dir))
}

func TestEnsureOutputDirectory_FileCollision(t *testing.T) {
	repo := NewRenderRepository()
	path := filepath.Join(t.TempDir(), "figures")
	require.NoError(t, os.WriteFile(path, []byte("not a directory"), 0o644))

	err := repo.EnsureOutputDirectory(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error creating output directory")
}
