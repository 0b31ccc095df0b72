package repository

import (
	"github.com/taskflow-ai/paper-figures-go/internal/domain/entity"
)

// RenderRepository defines the interface for rendering figures to disk.
type RenderRepository interface {
	EnsureOutputDirectory(dir string) error

	// Render writes one artifact per requested format and returns them in
	// the order they were written. Artifacts already on disk are replaced.
	Render(spec entity.FigureSpec, outputDir string, formats []string) ([]entity.Artifact, error)
}
