package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/taskflow-ai/paper-figures-go/internal/domain/entity"
	"github.com/taskflow-ai/paper-figures-go/internal/domain/repository"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// ExportSummaryToCSV exporta o dataset do experimento para CSV, uma linha por
// método, com as médias por categoria nas colunas finais.
func (r *ExportRepositoryImpl) ExportSummaryToCSV(results *entity.ResultSet, filename, outputDir string) (string, error) {
	outputFilename, err := resolveFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{
		"Method",
		"Avg LLM Calls",
		"Avg Tokens",
		"Avg Cost (USD)",
		"Avg Latency (s)",
		"Success Rate (%)",
		"Reference",
	}
	for _, cat := range results.Categories {
		headers = append(headers, "Calls: "+cat.Category)
	}
	writer.Write(headers)

	for _, m := range results.Methods {
		record := []string{
			m.Name,
			strconv.FormatFloat(m.AvgCalls, 'f', 1, 64),
			strconv.Itoa(m.AvgTokens),
			strconv.FormatFloat(m.AvgCost, 'f', 4, 64),
			strconv.FormatFloat(m.AvgLatency, 'f', 1, 64),
			strconv.Itoa(m.SuccessRate),
			strconv.FormatBool(m.Reference),
		}
		for _, cat := range results.Categories {
			record = append(record, strconv.FormatFloat(cat.Calls[m.Name], 'f', 1, 64))
		}
		writer.Write(record)
	}

	return filepath.Abs(outputFilename)
}

// ExportSummaryToJSON exporta o dataset completo do experimento para JSON.
func (r *ExportRepositoryImpl) ExportSummaryToJSON(results *entity.ResultSet, filename, outputDir string) (string, error) {
	outputFilename, err := resolveFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// resolveFilename monta o caminho de saída, criando o diretório se preciso.
// Os nomes são fixos para que reexecuções substituam os mesmos arquivos.
func resolveFilename(baseName, outputDir, extension string) (string, error) {
	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("error creating output directory %q: %w", outputDir, err)
	}
	return filepath.Join(outputDir, baseName+"."+extension), nil
}
