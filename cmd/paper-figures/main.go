package main

import (
	"fmt"
	"os"

	"github.com/taskflow-ai/paper-figures-go/internal/adapter/driven/export"
	"github.com/taskflow-ai/paper-figures-go/internal/adapter/driven/render"
	"github.com/taskflow-ai/paper-figures-go/internal/adapter/driven/results"
	"github.com/taskflow-ai/paper-figures-go/internal/adapter/driving/cli"
	"github.com/taskflow-ai/paper-figures-go/internal/application/usecase"
	"github.com/taskflow-ai/paper-figures-go/pkg/console"
	"github.com/taskflow-ai/paper-figures-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Inicializa os repositórios
	resultsRepo := results.NewResultsRepository()
	renderRepo := render.NewRenderRepository()
	exportRepo := export.NewExportRepository()
	consoleImpl := console.NewConsole()

	// Inicializa o caso de uso
	figuresUseCase := usecase.NewFiguresUseCase(
		resultsRepo,
		renderRepo,
		exportRepo,
		consoleImpl,
	)

	// Define o caso de uso no aplicativo CLI
	app.SetFiguresUseCase(figuresUseCase)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
