package usecase

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/taskflow-ai/paper-figures-go/internal/domain/entity"
	"github.com/taskflow-ai/paper-figures-go/internal/domain/repository"
	"github.com/taskflow-ai/paper-figures-go/internal/shared/types"
)

// FiguresUseCase orquestra a geração das figuras do artigo.
type FiguresUseCase struct {
	resultsRepository repository.ResultsRepository
	renderRepository  repository.RenderRepository
	exportRepository  repository.ExportRepository
	console           types.ConsoleInterface
}

// NewFiguresUseCase cria um novo caso de uso de geração de figuras.
func NewFiguresUseCase(
	resultsRepository repository.ResultsRepository,
	renderRepository repository.RenderRepository,
	exportRepository repository.ExportRepository,
	console types.ConsoleInterface,
) *FiguresUseCase {
	return &FiguresUseCase{
		resultsRepository: resultsRepository,
		renderRepository:  renderRepository,
		exportRepository:  exportRepository,
		console:           console,
	}
}

// FigureBuilder monta a spec de uma figura a partir do dataset.
type FigureBuilder func(results *entity.ResultSet) entity.FigureSpec

// Builders devolve os construtores das figuras na ordem de publicação.
func Builders() []FigureBuilder {
	return []FigureBuilder{
		BuildCallsComparison,
		BuildCallsByCategory,
		BuildCostComparison,
		BuildTokenEfficiency,
		BuildArchitectureComparison,
		BuildScalingCurves,
		BuildSummaryTable,
	}
}

// RunGeneration executa o fluxo completo: carrega o dataset, exibe o resumo
// no terminal, renderiza cada figura e lista os artefatos gerados.
func (uc *FiguresUseCase) RunGeneration(args *types.CLIArgs) error {
	status := uc.console.Status("Loading experimental results...")
	results, err := uc.resultsRepository.LoadResults()
	status.Stop()
	if err != nil {
		return err
	}

	uc.displaySummaryTable(results)
	uc.displayCallsPreview(results)

	if err := uc.renderRepository.EnsureOutputDirectory(args.Dir); err != nil {
		return err
	}

	builders := Builders()
	uc.console.LogInfo("Generating %d paper figures (%s)...", len(builders), strings.Join(args.Formats, ", "))

	progress := uc.console.ProgressWithTotal(len(builders))
	var artifacts []entity.Artifact
	failures := 0
	for _, build := range builders {
		spec := build(results)
		generated, err := uc.renderRepository.Render(spec, args.Dir, args.Formats)
		artifacts = append(artifacts, generated...)
		if err != nil {
			if isFatalRenderError(err) {
				progress.Stop()
				return err
			}
			failures++
			uc.console.LogError("Failed to generate %s: %s", spec.Basename, err)
			progress.Increment()
			continue
		}
		uc.console.LogSuccess("Generated: %s", spec.Basename)
		progress.Increment()
	}
	progress.Stop()

	if failures > 0 {
		uc.console.LogWarning("%d of %d figures could not be generated", failures, len(builders))
	} else {
		uc.console.LogSuccess("All figures saved to %s", args.Dir)
	}

	if len(artifacts) > 0 {
		names := make([]string, 0, len(artifacts))
		for _, artifact := range artifacts {
			names = append(names, filepath.Base(artifact.Path))
		}
		sort.Strings(names)
		uc.console.Println()
		uc.console.Println("Generated files:")
		for _, name := range names {
			uc.console.Printf("  - %s\n", name)
		}
	}

	if args.ExportData {
		uc.exportSummary(results, args.Dir)
	}

	return nil
}

// isFatalRenderError separa defeitos de spec (abortam a execução) de falhas
// de escrita por figura (registradas e puladas).
func isFatalRenderError(err error) bool {
	return errors.Is(err, types.ErrInvalidFigureSpec) ||
		errors.Is(err, types.ErrUnknownFigureKind) ||
		errors.Is(err, types.ErrUnknownFormat)
}

// displaySummaryTable exibe o resumo agregado por método no terminal.
func (uc *FiguresUseCase) displaySummaryTable(results *entity.ResultSet) {
	uc.console.Printf("\n%s, %d runs per method\n\n", results.Benchmark, results.Runs)

	table := uc.console.CreateTable()
	table.AddColumn("Method")
	table.AddColumn("Avg LLM Calls")
	table.AddColumn("Avg Tokens")
	table.AddColumn("Cost per Task")
	table.AddColumn("Latency (s)")
	table.AddColumn("Success Rate")

	for _, m := range results.Methods {
		name := m.Name
		if m.Reference {
			name = pterm.FgLightGreen.Sprintf("%s (ours)", m.Name)
		}
		table.AddRow(
			name,
			fmt.Sprintf("%.1f", m.AvgCalls),
			groupThousands(m.AvgTokens),
			fmt.Sprintf("$%.4f", m.AvgCost),
			fmt.Sprintf("%.1f", m.AvgLatency),
			fmt.Sprintf("%d%%", m.SuccessRate),
		)
	}

	uc.console.Print(table.Render())
}

// displayCallsPreview exibe a prévia em barras das chamadas médias por método.
func (uc *FiguresUseCase) displayCallsPreview(results *entity.ResultSet) {
	calls := make([]types.MethodCalls, 0, len(results.Methods))
	for _, m := range results.Methods {
		calls = append(calls, types.MethodCalls{
			Method:    m.Name,
			Calls:     m.AvgCalls,
			Reference: m.Reference,
		})
	}
	uc.console.DisplayCallBars(calls)
}

// exportSummary grava o dataset agregado em CSV e JSON ao lado das figuras.
func (uc *FiguresUseCase) exportSummary(results *entity.ResultSet, outputDir string) {
	if path, err := uc.exportRepository.ExportSummaryToCSV(results, "summary_data", outputDir); err != nil {
		uc.console.LogError("Failed to export summary to CSV: %s", err)
	} else {
		uc.console.LogSuccess("Successfully exported summary to CSV format: %s", path)
	}

	if path, err := uc.exportRepository.ExportSummaryToJSON(results, "summary_data", outputDir); err != nil {
		uc.console.LogError("Failed to export summary to JSON: %s", err)
	} else {
		uc.console.LogSuccess("Successfully exported summary to JSON format: %s", path)
	}
}

// --- Construtores das figuras ---

// BuildCallsComparison monta a comparação geral de chamadas LLM por método.
func BuildCallsComparison(results *entity.ResultSet) entity.FigureSpec {
	ref, _ := results.Reference()

	bars := make([]entity.BarValue, 0, len(results.Methods))
	maxCalls := 0.0
	for _, m := range results.Methods {
		bars = append(bars, entity.BarValue{
			Label:     m.Name,
			Value:     m.AvgCalls,
			Display:   fmt.Sprintf("%.1f", m.AvgCalls),
			Color:     m.Color,
			Reference: m.Reference,
		})
		if m.AvgCalls > maxCalls {
			maxCalls = m.AvgCalls
		}
	}

	spec := entity.FigureSpec{
		Kind:           entity.FigureBar,
		Basename:       "fig1_llm_calls_comparison",
		Title:          "LLM Call Efficiency: Intent-Native vs Traditional Approaches",
		YLabel:         "Average LLM Calls per Task",
		YMax:           7,
		YTick:          1,
		HighlightColor: results.HighlightColor,
		Bars:           bars,
	}
	if ref.Name != "" {
		spec.RefLine = &entity.ReferenceLine{
			Y:     ref.AvgCalls,
			Color: ref.Color,
			Label: fmt.Sprintf("%s (constant)", ref.Name),
		}
		spec.Annotations = []entity.Annotation{{
			Text:  fmt.Sprintf("%.1fx fewer calls", maxCalls/ref.AvgCalls),
			X:     2.5,
			Y:     5,
			Color: ref.Color,
			Arrow: &entity.AnnotationArrow{X: 0, Y: ref.AvgCalls},
		}}
	}
	return spec
}

// BuildCallsByCategory monta os clusters de chamadas por categoria de tarefa,
// a figura central do artigo.
func BuildCallsByCategory(results *entity.ResultSet) entity.FigureSpec {
	ref, _ := results.Reference()
	series := methodSeries(results)
	worst, _ := worstInLastCategory(results)

	spec := entity.FigureSpec{
		Kind:           entity.FigureGroupedBar,
		Basename:       "fig2_calls_by_category",
		Title:          "Scaling Behavior: Manifesto Maintains Constant Calls Across Complexity Levels",
		XLabel:         "Task Category (Increasing Complexity →)",
		YLabel:         "Average LLM Calls",
		YMax:           11,
		YTick:          2,
		HighlightColor: results.HighlightColor,
		Categories:     results.CategoryNames(),
		Series:         series,
	}
	if ref.Name != "" {
		last := float64(len(results.Categories) - 1)
		spec.RefLine = &entity.ReferenceLine{Y: ref.AvgCalls, Color: ref.Color}
		spec.Annotations = []entity.Annotation{
			{
				Text:  fmt.Sprintf("%s: O(1) = %.0f calls", ref.Name, ref.AvgCalls),
				X:     last + 0.3,
				Y:     ref.AvgCalls + 0.2,
				Color: results.HighlightColor,
			},
			{
				X:     last + 0.15,
				Y:     ref.AvgCalls,
				Color: "#e74c3c",
				Arrow: &entity.AnnotationArrow{X: last + 0.15, Y: worst, DoubleHead: true},
			},
			{
				Text:  fmt.Sprintf("%.1fx\ngap", worst/ref.AvgCalls),
				X:     last + 0.25,
				Y:     5.5,
				Color: "#e74c3c",
			},
		}
	}
	return spec
}

// BuildCostComparison monta a comparação de custo por tarefa em milésimos de
// dólar, com o callout de economia contra o método mais caro da família ReAct.
func BuildCostComparison(results *entity.ResultSet) entity.FigureSpec {
	ref, _ := results.Reference()

	bars := make([]entity.BarValue, 0, len(results.Methods))
	for _, m := range results.Methods {
		bars = append(bars, entity.BarValue{
			Label:     m.Name,
			Value:     m.AvgCost * 1000,
			Display:   fmt.Sprintf("$%.4f", m.AvgCost),
			Color:     m.Color,
			Reference: m.Reference,
		})
	}

	title := "Cost Efficiency"
	var notes []entity.Annotation
	comparator, found := results.MethodByName("ReAct-4o")
	if found && ref.Name != "" && ref.AvgCost > 0 {
		ratio := int(math.Trunc(comparator.AvgCost / ref.AvgCost))
		title = fmt.Sprintf("Cost Efficiency: %s is %dx Cheaper than GPT-4o Methods", ref.Name, ratio)
		notes = []entity.Annotation{{
			Text:  fmt.Sprintf("%dx cheaper\nthan %s", ratio, comparator.Name),
			X:     1.5,
			Y:     8,
			Color: ref.Color,
			Boxed: true,
			Arrow: &entity.AnnotationArrow{X: 0.2, Y: 1.5},
		}}
	}

	return entity.FigureSpec{
		Kind:           entity.FigureBar,
		Basename:       "fig3_cost_comparison",
		Title:          title,
		YLabel:         "Cost per Task (USD × 10⁻³)",
		YMax:           14,
		YTick:          2,
		HighlightColor: results.HighlightColor,
		Bars:           bars,
		Annotations:    notes,
	}
}

// BuildTokenEfficiency monta a comparação de tokens médios por tarefa.
func BuildTokenEfficiency(results *entity.ResultSet) entity.FigureSpec {
	ref, _ := results.Reference()

	bars := make([]entity.BarValue, 0, len(results.Methods))
	var heaviest entity.MethodMetrics
	for _, m := range results.Methods {
		bars = append(bars, entity.BarValue{
			Label:     m.Name,
			Value:     float64(m.AvgTokens),
			Display:   groupThousands(m.AvgTokens),
			Color:     m.Color,
			Reference: m.Reference,
		})
		if m.AvgTokens > heaviest.AvgTokens {
			heaviest = m
		}
	}

	title := "Token Efficiency"
	var notes []entity.Annotation
	if ref.Name != "" && ref.AvgTokens > 0 {
		ratio := int(math.Trunc(float64(heaviest.AvgTokens) / float64(ref.AvgTokens)))
		title = fmt.Sprintf("Token Efficiency: %s Uses %dx Fewer Tokens", ref.Name, ratio)
		notes = []entity.Annotation{{
			Text:  fmt.Sprintf("%dx fewer tokens\nvs %s", ratio, heaviest.Name),
			X:     2,
			Y:     5000,
			Color: ref.Color,
			Boxed: true,
			Arrow: &entity.AnnotationArrow{X: 0.3, Y: 1500},
		}}
	}

	return entity.FigureSpec{
		Kind:           entity.FigureBar,
		Basename:       "fig4_token_efficiency",
		Title:          title,
		YLabel:         "Average Tokens per Task",
		YMax:           7000,
		YTick:          1000,
		HighlightColor: results.HighlightColor,
		Bars:           bars,
		Annotations:    notes,
	}
}

// BuildArchitectureComparison monta o esquema dos dois fluxos de execução.
// O conteúdo é fixo: a figura descreve as arquiteturas, não o dataset.
func BuildArchitectureComparison(results *entity.ResultSet) entity.FigureSpec {
	const (
		red   = "#e74c3c"
		green = "#2ecc71"
		blue  = "#3498db"
		gray  = "#ecf0f1"
	)

	traditional := entity.Diagram{
		Title:        "Traditional Agent (ReAct)",
		TitleColor:   red,
		Caption:      "N LLM Calls (N = task complexity)",
		CaptionColor: red,
		Boxes: []entity.DiagramBox{
			{Label: "User Input", Fill: gray, TextColor: "#000000"},
			{Label: "LLM: Thought 1", Fill: red, TextColor: "#ffffff"},
			{Label: "LLM: Action 1", Fill: red, TextColor: "#ffffff"},
			{Label: "LLM: Thought 2", Fill: red, TextColor: "#ffffff"},
			{Label: "LLM: Action 2", Fill: red, TextColor: "#ffffff"},
			{Label: "...", Fill: "#bdc3c7", TextColor: "#000000"},
			{Label: "LLM: Response", Fill: red, TextColor: "#ffffff"},
		},
	}

	intentNative := entity.Diagram{
		Title:        "Intent-Native (Manifesto)",
		TitleColor:   green,
		Caption:      "2 LLM Calls (constant, always)",
		CaptionColor: green,
		Boxes: []entity.DiagramBox{
			{Label: "User Input", Fill: gray, TextColor: "#000000"},
			{Label: "LLM 1: Intent Parser", Fill: green, TextColor: "#ffffff"},
			{Label: "Deterministic Runtime", Fill: blue, TextColor: "#ffffff", Tall: true, Note: "No LLM!", NoteColor: blue},
			{Label: "LLM 2: Response Gen", Fill: green, TextColor: "#ffffff"},
		},
	}

	return entity.FigureSpec{
		Kind:           entity.FigureSchematic,
		Basename:       "fig5_architecture_comparison",
		HighlightColor: results.HighlightColor,
		Diagrams:       []entity.Diagram{traditional, intentNative},
	}
}

// BuildScalingCurves monta as curvas de escala por categoria com a banda do
// gap na categoria mais complexa.
func BuildScalingCurves(results *entity.ResultSet) entity.FigureSpec {
	ref, _ := results.Reference()
	series := methodSeries(results)
	worst, _ := worstInLastCategory(results)

	spec := entity.FigureSpec{
		Kind:           entity.FigureLine,
		Basename:       "fig6_scaling_line",
		Title:          "Scaling Behavior: O(1) vs O(n)",
		XLabel:         "Task Category (Increasing Complexity →)",
		YLabel:         "Average LLM Calls",
		YMax:           11,
		YTick:          2,
		HighlightColor: results.HighlightColor,
		Categories:     results.CategoryNames(),
		Series:         series,
	}
	if ref.Name != "" {
		last := float64(len(results.Categories) - 1)
		spec.Band = &entity.Band{
			X0:    last - 0.1,
			X1:    last + 0.1,
			Y0:    ref.AvgCalls,
			Y1:    worst,
			Color: "#e74c3c",
		}
		spec.Annotations = []entity.Annotation{
			{Text: fmt.Sprintf("%.1fx gap", worst/ref.AvgCalls), X: last + 0.15, Y: 5.8, Color: "#e74c3c"},
			{Text: "O(1)", X: 2, Y: 1, Color: ref.Color},
			{Text: "O(n)", X: 3.5, Y: 7, Color: "#3498db"},
		}
	}
	return spec
}

// BuildSummaryTable monta a tabela de resultados renderizada como imagem.
func BuildSummaryTable(results *entity.ResultSet) entity.FigureSpec {
	rows := make([][]string, 0, len(results.Methods))
	highlightRow := -1
	for i, m := range results.Methods {
		name := m.Name
		complexity := "O(n)"
		if m.Reference {
			name = fmt.Sprintf("%s (Ours)", m.Name)
			complexity = "O(1)"
			highlightRow = i
		}
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%.1f", m.AvgCalls),
			groupThousands(m.AvgTokens),
			fmt.Sprintf("$%.4f", m.AvgCost),
			fmt.Sprintf("%d%%", m.SuccessRate),
			complexity,
		})
	}

	return entity.FigureSpec{
		Kind:           entity.FigureTable,
		Basename:       "fig7_summary_table",
		Title:          fmt.Sprintf("Experimental Results Summary (%d runs on %s)", results.Runs, results.Benchmark),
		HighlightColor: results.HighlightColor,
		Table: &entity.TableSpec{
			Columns:       []string{"Method", "LLM Calls", "Tokens", "Cost/Task", "Success", "Complexity"},
			Rows:          rows,
			HighlightRow:  highlightRow,
			HeaderFill:    "#34495e",
			HeaderText:    "#ffffff",
			HighlightFill: "#d5f5e3",
		},
	}
}

// methodSeries converte o dataset em uma série por método, na ordem da
// tabela. Os métodos topo de linha das famílias O(n) saem tracejados.
func methodSeries(results *entity.ResultSet) []entity.MethodSeries {
	series := make([]entity.MethodSeries, 0, len(results.Methods))
	for _, m := range results.Methods {
		series = append(series, entity.MethodSeries{
			Name:      m.Name,
			Color:     m.Color,
			Values:    results.CallsSeries(m.Name),
			Reference: m.Reference,
			Dashed:    !m.Reference && strings.HasSuffix(m.Name, "-4o"),
		})
	}
	return series
}

// worstInLastCategory devolve o pior número de chamadas na categoria final e
// o método correspondente.
func worstInLastCategory(results *entity.ResultSet) (float64, string) {
	if len(results.Categories) == 0 {
		return 0, ""
	}
	last := results.Categories[len(results.Categories)-1]
	worst := 0.0
	worstMethod := ""
	for _, m := range results.Methods {
		if v := last.Calls[m.Name]; v > worst {
			worst = v
			worstMethod = m.Name
		}
	}
	return worst, worstMethod
}

// groupThousands formata um inteiro com separador de milhares (6113 → "6,113").
func groupThousands(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
