// Package mcp provides an MCP (Model Context Protocol) server adapter for duxt-mcp.
// It exposes the Duxt documentation, code generators and guides to AI assistants.
package mcp

import "errors"

var (
	// ErrMissingDocumentService is returned when the document service is not provided.
	ErrMissingDocumentService = errors.New("mcp: document service is required")

	// ErrMissingSearchService is returned when the search service is not provided.
	ErrMissingSearchService = errors.New("mcp: search service is required")

	// ErrMissingGeneratorService is returned when the generator service is not provided.
	ErrMissingGeneratorService = errors.New("mcp: generator service is required")
)
