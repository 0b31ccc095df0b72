package cli

import (
	"fmt"
	"strings"

	"github.com/taskflow-ai/paper-figures-go/pkg/version"

	"github.com/spf13/cobra"
	"github.com/taskflow-ai/paper-figures-go/internal/application/usecase"
	"github.com/taskflow-ai/paper-figures-go/internal/shared/types"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd        *cobra.Command
	figuresUseCase *usecase.FiguresUseCase
	version        string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	// Obtem a versão formatada
	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:     "paper-figures",
		Short:   "Paper Figures CLI",
		Long:    "Generates the publication figures for the intent-native execution paper from the aggregated experimental results.",
		Version: formattedVersion,
		RunE:    app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "Paper Figures CLI version: %s\n" .Version}}`)

	// Adiciona flags de linha de comando
	rootCmd.PersistentFlags().StringP("dir", "d", "figures", "Directory to save the figure files")
	rootCmd.PersistentFlags().StringSliceP("formats", "f", []string{"png", "pdf"}, "Output formats to render: png, pdf")
	rootCmd.PersistentFlags().Bool("data", false, "Also export the aggregated results as CSV and JSON")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	dir, _ := app.rootCmd.Flags().GetString("dir")
	formats, _ := app.rootCmd.Flags().GetStringSlice("formats")
	exportData, _ := app.rootCmd.Flags().GetBool("data")

	if dir == "" {
		dir = "figures"
	}

	normalized := make([]string, 0, len(formats))
	for _, format := range formats {
		format = strings.ToLower(strings.TrimSpace(format))
		switch format {
		case "png", "pdf":
			normalized = append(normalized, format)
		default:
			return nil, fmt.Errorf("%w: %q", types.ErrUnknownFormat, format)
		}
	}

	args := &types.CLIArgs{
		Dir:        dir,
		Formats:    normalized,
		ExportData: exportData,
	}

	return args, nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	// Exibe o banner de boas-vindas
	displayWelcomeBanner(app.version)

	// Analisa os argumentos da linha de comando
	cliArgs, err := app.parseArgs()
	if err != nil {
		return err
	}

	// Executa a geração das figuras
	return app.figuresUseCase.RunGeneration(cliArgs)
}

// SetFiguresUseCase sets the figures use case for the CLI app.
func (app *CLIApp) SetFiguresUseCase(useCase *usecase.FiguresUseCase) {
	app.figuresUseCase = useCase
}
