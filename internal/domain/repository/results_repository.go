package repository

import (
	"github.com/taskflow-ai/paper-figures-go/internal/domain/entity"
)

// ResultsRepository defines the interface for loading the experimental dataset.
type ResultsRepository interface {
	LoadResults() (*entity.ResultSet, error)
}
