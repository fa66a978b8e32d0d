package driving

import (
	"context"

	"github.com/custodia-labs/duxt-mcp/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Search ranks documents against a free-text query.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}
