package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/taskflow-ai/paper-figures-go/internal/domain/entity"
	"github.com/taskflow-ai/paper-figures-go/internal/domain/repository"
	"github.com/taskflow-ai/paper-figures-go/internal/shared/types"
)

// RenderRepositoryImpl implementa a interface RenderRepository com go-chart
// para os PNGs e gofpdf para os PDFs.
type RenderRepositoryImpl struct{}

// NewRenderRepository cria uma nova implementação do repositório de renderização.
func NewRenderRepository() repository.RenderRepository {
	return &RenderRepositoryImpl{}
}

// EnsureOutputDirectory garante que o diretório de saída exista.
func (r *RenderRepositoryImpl) EnsureOutputDirectory(dir string) error {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating output directory %q: %w", dir, err)
	}
	return nil
}

// Render valida a spec e grava um artefato por formato pedido, na ordem
// pedida. Arquivos existentes com o mesmo nome são substituídos.
func (r *RenderRepositoryImpl) Render(spec entity.FigureSpec, outputDir string, formats []string) ([]entity.Artifact, error) {
	if err := validateSpec(spec); err != nil {
		return nil, err
	}

	artifacts := make([]entity.Artifact, 0, len(formats))
	for _, format := range formats {
		path := filepath.Join(outputDir, spec.Basename+"."+format)
		var err error
		switch format {
		case "png":
			err = renderPNG(spec, path)
		case "pdf":
			err = renderPDF(spec, path)
		default:
			return artifacts, fmt.Errorf("%w: %q", types.ErrUnknownFormat, format)
		}
		if err != nil {
			return artifacts, err
		}
		abs, absErr := filepath.Abs(path)
		if absErr != nil {
			abs = path
		}
		artifacts = append(artifacts, entity.Artifact{Figure: spec.Basename, Format: format, Path: abs})
	}
	return artifacts, nil
}

// validateSpec rejeita specs estruturalmente inválidas antes de qualquer
// arquivo ser tocado.
func validateSpec(spec entity.FigureSpec) error {
	if spec.Basename == "" {
		return fmt.Errorf("%w: missing basename", types.ErrInvalidFigureSpec)
	}
	switch spec.Kind {
	case entity.FigureBar:
		if len(spec.Bars) == 0 {
			return fmt.Errorf("%w: %s has no bars", types.ErrInvalidFigureSpec, spec.Basename)
		}
		if spec.YMax <= 0 {
			return fmt.Errorf("%w: %s has no vertical range", types.ErrInvalidFigureSpec, spec.Basename)
		}
	case entity.FigureGroupedBar, entity.FigureLine:
		if len(spec.Categories) == 0 {
			return fmt.Errorf("%w: %s has no categories", types.ErrInvalidFigureSpec, spec.Basename)
		}
		if len(spec.Series) == 0 {
			return fmt.Errorf("%w: %s has no series", types.ErrInvalidFigureSpec, spec.Basename)
		}
		if spec.YMax <= 0 {
			return fmt.Errorf("%w: %s has no vertical range", types.ErrInvalidFigureSpec, spec.Basename)
		}
		for _, s := range spec.Series {
			if len(s.Values) != len(spec.Categories) {
				return fmt.Errorf("%w: series %q has %d values for %d categories",
					types.ErrInvalidFigureSpec, s.Name, len(s.Values), len(spec.Categories))
			}
		}
	case entity.FigureSchematic:
		if len(spec.Diagrams) == 0 {
			return fmt.Errorf("%w: %s has no diagrams", types.ErrInvalidFigureSpec, spec.Basename)
		}
		for _, d := range spec.Diagrams {
			if len(d.Boxes) == 0 {
				return fmt.Errorf("%w: diagram %q has no boxes", types.ErrInvalidFigureSpec, d.Title)
			}
		}
	case entity.FigureTable:
		if spec.Table == nil || len(spec.Table.Columns) == 0 {
			return fmt.Errorf("%w: %s has no table", types.ErrInvalidFigureSpec, spec.Basename)
		}
		for ri, row := range spec.Table.Rows {
			if len(row) != len(spec.Table.Columns) {
				return fmt.Errorf("%w: row %d has %d cells for %d columns",
					types.ErrInvalidFigureSpec, ri, len(row), len(spec.Table.Columns))
			}
		}
	default:
		return fmt.Errorf("%w: %q", types.ErrUnknownFigureKind, spec.Kind)
	}
	return nil
}
