package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/duxt-mcp/internal/core/domain"
	"github.com/custodia-labs/duxt-mcp/internal/core/ports/driving"
	"github.com/custodia-labs/duxt-mcp/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// Score weights per matched token.
const (
	titleWeight       = 10
	descriptionWeight = 5
	uriWeight         = 3

	// maxContentHits caps the content contribution of a single token.
	maxContentHits = 10
)

// SearchService ranks documents by substring relevance.
// It keeps no index of its own; every query scans the current collection.
type SearchService struct {
	documents driving.DocumentService
}

// NewSearchService creates a new search service over documents.
func NewSearchService(documents driving.DocumentService) *SearchService {
	return &SearchService{documents: documents}
}

// Search scores every document against query and returns those with a
// positive score, best first, capped at opts.Limit.
// Equal scores keep List order (section, then order).
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	if opts.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative, got %d", domain.ErrInvalidInput, opts.Limit)
	}
	if s.documents == nil {
		return nil, domain.ErrDocsUnavailable
	}

	logger.Section("Search Execution")
	logger.Debug("query: %q limit: %d section: %q", query, opts.Limit, opts.Section)

	tokens := Tokenize(query)
	if len(tokens) == 0 || opts.Limit == 0 {
		return []domain.SearchResult{}, nil
	}

	var docs []domain.Document
	var err error
	if opts.Section != "" {
		docs, err = s.documents.ListBySection(ctx, opts.Section)
	} else {
		docs, err = s.documents.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	results := make([]domain.SearchResult, 0)
	for i := range docs {
		if score := Score(&docs[i], tokens); score > 0 {
			results = append(results, domain.SearchResult{Document: docs[i], Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > opts.Limit {
		results = results[:opts.Limit]
	}

	logger.Debug("%d results", len(results))
	return results, nil
}

// Tokenize splits query on runs of whitespace and lower-cases each token.
func Tokenize(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// Score computes the relevance of doc for lower-cased tokens.
// For each token: +10 if the title contains it, +5 for the description,
// one point per non-overlapping occurrence in the content (at most 10),
// and +3 if the URI contains it.
func Score(doc *domain.Document, tokens []string) int {
	if len(tokens) == 0 {
		return 0
	}

	title := strings.ToLower(doc.Title)
	description := strings.ToLower(doc.Description)
	content := strings.ToLower(doc.Content)
	uri := strings.ToLower(doc.URI)

	score := 0
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if strings.Contains(title, tok) {
			score += titleWeight
		}
		if strings.Contains(description, tok) {
			score += descriptionWeight
		}
		score += min(strings.Count(content, tok), maxContentHits)
		if strings.Contains(uri, tok) {
			score += uriWeight
		}
	}
	return score
}
