package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"apparel-store-service/internal/domain"
)

// FileSource reads the catalog from a JSON file on disk, the default for
// local development and the test fixtures.
type FileSource struct {
	path string
}

// NewFileSource creates a loader for the given catalog file path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// LoadProducts reads and decodes the catalog file.
func (s *FileSource) LoadProducts(_ context.Context) ([]domain.Product, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("source: failed to read catalog file %s: %w", s.path, err)
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("source: failed to decode catalog file %s: %w", s.path, err)
	}
	return products, nil
}
