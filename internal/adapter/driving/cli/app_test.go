package cli

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskflow-ai/paper-figures-go/internal/adapter/driven/export"
	"github.com/taskflow-ai/paper-figures-go/internal/adapter/driven/render"
	"github.com/taskflow-ai/paper-figures-go/internal/adapter/driven/results"
	"github.com/taskflow-ai/paper-figures-go/internal/application/usecase"
	"github.com/taskflow-ai/paper-figures-go/internal/shared/types"
	"github.com/taskflow-ai/paper-figures-go/pkg/console"
)

func TestParseArgs_Defaults(t *testing.T) {
	app := NewCLIApp("test")
	require.NoError(t, app.rootCmd.ParseFlags(nil))

	args, err := app.parseArgs()
	require.NoError(t, err)
	assert.Equal(t, "figures", args.Dir)
	assert.Equal(t, []string{"png", "pdf"}, args.Formats)
	assert.False(t, args.ExportData)
}

func TestParseArgs_Overrides(t *testing.T) {
	app := NewCLIApp("test")
	require.NoError(t, app.rootCmd.ParseFlags([]string{"--dir", "out", "--formats", "PDF", "--data"}))

	args, err := app.parseArgs()
	require.NoError(t, err)
	assert.Equal(t, "out", args.Dir)
	assert.Equal(t, []string{"pdf"}, args.Formats)
	assert.True(t, args.ExportData)
}

func TestParseArgs_UnknownFormat(t *testing.T) {
	app := NewCLIApp("test")
	require.NoError(t, app.rootCmd.ParseFlags([]string{"--formats", "png,svg"}))

	_, err := app.parseArgs()
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUnknownFormat))
	assert.Contains(t, err.Error(), "svg")
}

func TestExecute_GeneratesFigures(t *testing.T) {
	app := NewCLIApp("test")
	figuresUseCase := usecase.NewFiguresUseCase(
		results.NewResultsRepository(),
		render.NewRenderRepository(),
		export.NewExportRepository(),
		console.NewConsole(),
	)
	app.SetFiguresUseCase(figuresUseCase)

	dir := t.TempDir()
	app.rootCmd.SetArgs([]string{"--dir", dir, "--formats", "png"})
	require.NoError(t, app.Execute())

	for _, base := range []string{
		"fig1_llm_calls_comparison",
		"fig2_calls_by_category",
		"fig3_cost_comparison",
		"fig4_token_efficiency",
		"fig5_architecture_comparison",
		"fig6_scaling_line",
		"fig7_summary_table",
	} {
		assert.FileExists(t, filepath.Join(dir, base+".png"))
		assert.NoFileExists(t, filepath.Join(dir, base+".pdf"))
	}
}

func TestExecute_RejectsUnknownFormat(t *testing.T) {
	app := NewCLIApp("test")
	figuresUseCase := usecase.NewFiguresUseCase(
		results.NewResultsRepository(),
		render.NewRenderRepository(),
		export.NewExportRepository(),
		console.NewConsole(),
	)
	app.SetFiguresUseCase(figuresUseCase)

	app.rootCmd.SetArgs([]string{"--dir", t.TempDir(), "--formats", "gif"})
	err := app.Execute()
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUnknownFormat))
}
