package blueprint

import (
	"context"
	"errors"

	"github.com/sophialabs/blueprintmock/internal/domain/markup"
)

// ErrEmptyDocument indicates the configuration held no usable lines.
var ErrEmptyDocument = errors.New("configuration document is empty")

// Repository is the port for reading the configuration document.
type Repository interface {
	// Load reads and parses the document. It fails with ErrEmptyDocument
	// when nothing in the source could be parsed.
	Load(ctx context.Context) (markup.Value, error)

	// Source names where the document is read from, for logs.
	Source() string
}
