package repository

import (
	"github.com/taskflow-ai/paper-figures-go/internal/domain/entity"
)

type ExportRepository interface {
	ExportSummaryToCSV(results *entity.ResultSet, filename string, outputDir string) (string, error)
	ExportSummaryToJSON(results *entity.ResultSet, filename string, outputDir string) (string, error)
}
