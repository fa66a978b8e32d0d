package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/duxt-mcp/internal/core/domain"
)

const (
	docURITemplate = domain.URIScheme + "docs/{section}/{slug}"
	indexURI       = domain.URIScheme + "docs/index"

	markdownMIME = "text/markdown"
	jsonMIME     = "application/json"
)

// indexEntry is one line of the docs index resource.
type indexEntry struct {
	URI         string `json:"uri"`
	Section     string `json:"section"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: docURITemplate,
		Name:        "duxt-docs",
		Description: "Duxt framework documentation pages",
		MIMEType:    markdownMIME,
	}, s.handleDocResource)

	s.server.AddResource(&mcp.Resource{
		URI:         indexURI,
		Name:        "duxt-docs-index",
		Description: "Index of every loaded Duxt documentation page",
		MIMEType:    jsonMIME,
	}, s.handleIndexResource)
}

// handleDocResource returns the markdown body of one document.
func (s *Server) handleDocResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI
	if _, _, ok := domain.ParseDocumentURI(uri); !ok {
		return nil, mcp.ResourceNotFoundError(uri)
	}

	doc, err := s.ports.Documents.Get(ctx, uri)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(uri)
	}
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: markdownMIME,
			Text:     doc.Content,
		}},
	}, nil
}

// handleIndexResource lists every document without its content.
func (s *Server) handleIndexResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	docs, err := s.ports.Documents.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	entries := make([]indexEntry, len(docs))
	for i := range docs {
		entries[i] = indexEntry{
			URI:         docs[i].URI,
			Section:     docs[i].Section,
			Slug:        docs[i].Slug,
			Title:       docs[i].Title,
			Description: docs[i].Description,
			Order:       docs[i].Order,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling index: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: jsonMIME,
			Text:     string(data),
		}},
	}, nil
}
