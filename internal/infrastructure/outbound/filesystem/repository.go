package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sophialabs/blueprintmock/internal/domain/blueprint"
	"github.com/sophialabs/blueprintmock/internal/domain/markup"
)

var _ blueprint.Repository = (*DocumentRepository)(nil)

// DocumentRepository reads the configuration document from a single file.
type DocumentRepository struct {
	path string
}

// NewDocumentRepository creates a repository for the file at path.
func NewDocumentRepository(path string) (*DocumentRepository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	return &DocumentRepository{path: absPath}, nil
}

// Load reads the file and parses it.
func (r *DocumentRepository) Load(ctx context.Context) (markup.Value, error) {
	if err := ctx.Err(); err != nil {
		return markup.Value{}, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return markup.Value{}, fmt.Errorf("failed to read config file: %w", err)
	}

	root := markup.Parse(string(data))
	if root.Len() == 0 {
		return markup.Value{}, fmt.Errorf("%s: %w", r.path, blueprint.ErrEmptyDocument)
	}
	return root, nil
}

// Source returns the absolute file path.
func (r *DocumentRepository) Source() string {
	return r.path
}

// DefaultConfigPath returns config.yaml next to the running executable,
// falling back to the working directory.
func DefaultConfigPath() string {
	const name = "config.yaml"
	exe, err := os.Executable()
	if err != nil {
		return name
	}
	return filepath.Join(filepath.Dir(exe), name)
}
