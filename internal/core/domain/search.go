package domain

// DefaultSearchLimit is the result cap used when the caller does not supply one.
const DefaultSearchLimit = 10

// SearchOptions configures a search query.
type SearchOptions struct {
	// Limit is the maximum number of results.
	// Zero yields no results; negative values are rejected.
	Limit int

	// Section restricts results to a single section when non-empty.
	Section string
}

// SearchResult represents a single search hit.
type SearchResult struct {
	// Document is the matched document.
	Document Document

	// Score is the relevance score. Always greater than zero.
	Score int
}
