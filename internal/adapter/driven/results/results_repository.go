package results

import (
	_ "embed"
	"fmt"

	"github.com/taskflow-ai/paper-figures-go/internal/domain/entity"
	"github.com/taskflow-ai/paper-figures-go/internal/domain/repository"
	"github.com/taskflow-ai/paper-figures-go/internal/shared/types"
	"gopkg.in/yaml.v3"
)

//go:embed results.yaml
var resultsYAML []byte

// ResultsRepositoryImpl implementa a interface ResultsRepository com o
// dataset do experimento embutido no binário.
type ResultsRepositoryImpl struct{}

// NewResultsRepository cria uma nova implementação do repositório de resultados.
func NewResultsRepository() repository.ResultsRepository {
	return &ResultsRepositoryImpl{}
}

// LoadResults carrega e valida o conjunto de resultados do experimento.
func (r *ResultsRepositoryImpl) LoadResults() (*entity.ResultSet, error) {
	var results entity.ResultSet
	if err := yaml.Unmarshal(resultsYAML, &results); err != nil {
		return nil, fmt.Errorf("error parsing embedded results: %w", err)
	}
	if len(results.Methods) == 0 {
		return nil, types.ErrEmptyResultSet
	}

	// Every method referenced by a category must have a row in the methods
	// table, otherwise its series would render without a stable color.
	known := make(map[string]bool, len(results.Methods))
	for _, m := range results.Methods {
		known[m.Name] = true
	}
	for _, cat := range results.Categories {
		for name := range cat.Calls {
			if !known[name] {
				return nil, fmt.Errorf("%w: %q in category %q", types.ErrUnknownMethod, name, cat.Category)
			}
		}
	}

	return &results, nil
}
