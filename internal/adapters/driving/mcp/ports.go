package mcp

import (
	"github.com/custodia-labs/duxt-mcp/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Documents serves resources and component lookups.
	Documents driving.DocumentService

	// Search ranks documents for search_docs.
	Search driving.SearchService

	// Generator renders code, guides and CLI help.
	Generator driving.GeneratorService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil || p.Documents == nil {
		return ErrMissingDocumentService
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Generator == nil {
		return ErrMissingGeneratorService
	}
	return nil
}
