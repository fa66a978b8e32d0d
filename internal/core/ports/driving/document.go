package driving

import (
	"context"

	"github.com/custodia-labs/duxt-mcp/internal/core/domain"
)

// DocumentService exposes the loaded documentation.
type DocumentService interface {
	// Load replaces the collection with a fresh read of the docs tree.
	Load(ctx context.Context) error

	// List returns every document sorted by section, then order.
	List(ctx context.Context) ([]domain.Document, error)

	// Get retrieves a document by URI.
	// Returns domain.ErrNotFound when no document has that URI.
	Get(ctx context.Context, uri string) (*domain.Document, error)

	// ListBySection returns the documents of one section, in List order.
	ListBySection(ctx context.Context, section string) ([]domain.Document, error)

	// Snapshot describes the current collection.
	Snapshot(ctx context.Context) domain.Snapshot
}
