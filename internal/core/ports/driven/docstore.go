package driven

import "github.com/custodia-labs/duxt-mcp/internal/core/domain"

// DocumentStore holds the current document collection.
// Implementations must make Replace atomic with respect to readers.
type DocumentStore interface {
	// Replace swaps the whole collection for docs.
	// docs are in load order; later entries win on URI collision.
	Replace(docs []domain.Document) domain.Snapshot

	// Get retrieves a document by URI.
	// Returns domain.ErrNotFound if absent.
	Get(uri string) (domain.Document, error)

	// List returns every document in load order.
	List() []domain.Document

	// Snapshot describes the current collection.
	Snapshot() domain.Snapshot
}
