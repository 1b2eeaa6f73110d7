package port

import (
	"context"

	"github.com/conteudoflow/os-tracker/internal/domain/entity"
)

// ParseProvider turns a raw text blob into structured idea candidates.
// Implementations must never fail on malformed input: sections that cannot
// yield a title are skipped, not reported as errors.
type ParseProvider interface {
	// Name is the provider tag reported in import metadata.
	Name() string

	Parse(ctx context.Context, text, defaultBrand string) ([]entity.ParsedIdea, entity.ImportMetadata, error)
}

// FileLoader extracts plain text from an uploaded file for the import
// pipeline.
type FileLoader interface {
	LoadText(path string) (string, error)
}
