package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/taskflow-ai/paper-figures-go/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Paper", pterm.NewStyle(pterm.FgLightGreen)),
		putils.LettersFromStringWithStyle("Figs", pterm.NewStyle(pterm.FgCyan)),
	).Render()

	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	// Obtem a string formatada da versão através do pacote version
	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("Paper Figures CLI (v%s)", formattedVersion)))
}
