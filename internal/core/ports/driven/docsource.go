package driven

import (
	"context"

	"github.com/custodia-labs/duxt-mcp/internal/core/domain"
)

// DocumentSource reads documents from their persisted form.
type DocumentSource interface {
	// Load reads every document under the source root, in traversal order.
	// A missing root yields no documents and no error.
	// Per-file problems are reported and skipped; structural I/O failures
	// are returned.
	Load(ctx context.Context) ([]domain.Document, error)

	// Root returns the directory the source reads from.
	Root() string
}

// DocumentWatcher reports changes to the persisted documents.
type DocumentWatcher interface {
	// Watch blocks until ctx is cancelled, calling onChange after each
	// batch of relevant filesystem events.
	Watch(ctx context.Context, onChange func()) error
}
