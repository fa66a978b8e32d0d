package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/duxt-mcp/internal/core/domain"
)

const (
	previewRunes   = 200
	excerptBefore  = 2
	excerptAfter   = 28
	matchSeparator = "\n\n---\n\n"
)

// fallbackSlugs name the documents returned whole when a component is not
// mentioned anywhere in its package section.
var fallbackSlugs = []string{"api-reference", "components"}

// SearchDocsInput is the input schema for the search_docs tool.
type SearchDocsInput struct {
	Query      string `json:"query" jsonschema:"Search query (e.g. 'routing middleware', 'ORM relations')"`
	MaxResults *int   `json:"maxResults,omitempty" jsonschema:"Maximum number of results to return (default 10)"`
}

// SearchDocsOutput is the structured output of the search_docs tool.
type SearchDocsOutput struct {
	Query   string               `json:"query"`
	Count   int                  `json:"count"`
	Results []SearchResultOutput `json:"results"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	URI     string `json:"uri"`
	Title   string `json:"title"`
	Section string `json:"section"`
	Score   int    `json:"score"`
}

// ComponentAPIInput is the input schema for the get_component_api tool.
type ComponentAPIInput struct {
	Name    string `json:"name" jsonschema:"Component name (e.g. 'Button', 'Card', 'DuxtIcon', 'Section')"`
	Package string `json:"package" jsonschema:"Which package the component belongs to: duxt_html, duxt_ui or duxt_icons"`
}

// GenerateCodeInput is the input schema for the generate_code tool.
type GenerateCodeInput struct {
	Type   string            `json:"type" jsonschema:"Type of code to generate: model, page, component, api or layout"`
	Name   string            `json:"name" jsonschema:"Name for the generated item (e.g. 'Post', 'HomePage', 'BlogLayout')"`
	Fields map[string]string `json:"fields,omitempty" jsonschema:"Fields/properties as key-value pairs (e.g. {\"title\": \"String\"})"`
}

// CLIHelpInput is the input schema for the duxt_cli_help tool.
type CLIHelpInput struct {
	Task string `json:"task" jsonschema:"What you want to do (e.g. 'create a blog with posts', 'add a model', 'build for production')"`
}

// ProjectStructureInput is the input schema for the get_project_structure tool.
type ProjectStructureInput struct {
	Template string `json:"template" jsonschema:"Project template type: static, server or client"`
}

// registerTools registers all tool handlers with the MCP server.
// Closed string inputs advertise their allowed values as schema enums.
func (s *Server) registerTools() error {
	componentSchema, err := inputSchema[ComponentAPIInput](map[string][]any{
		"package": enumValues(domain.ComponentPackages()),
	})
	if err != nil {
		return err
	}
	generateSchema, err := inputSchema[GenerateCodeInput](map[string][]any{
		"type": enumValues(domain.CodeKinds()),
	})
	if err != nil {
		return err
	}
	structureSchema, err := inputSchema[ProjectStructureInput](map[string][]any{
		"template": enumValues(domain.ProjectTemplates()),
	})
	if err != nil {
		return err
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_docs",
		Description: "Search Duxt framework documentation. Returns matching pages with relevance scores.",
	}, s.handleSearchDocs)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_component_api",
		Description: "Look up API documentation for a specific Duxt component (from duxt_html, duxt_ui, or duxt_icons).",
		InputSchema: componentSchema,
	}, s.handleComponentAPI)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_code",
		Description: "Generate ready-to-use Dart code following Duxt framework patterns.",
		InputSchema: generateSchema,
	}, s.handleGenerateCode)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "duxt_cli_help",
		Description: "Get the right Duxt CLI command for a task. Describes exact commands, flags, and what they do.",
	}, s.handleCLIHelp)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_project_structure",
		Description: "Show the standard Duxt project directory structure with file explanations.",
		InputSchema: structureSchema,
	}, s.handleProjectStructure)

	return nil
}

// inputSchema infers the schema of In and restricts the named properties
// to the given values.
func inputSchema[In any](enums map[string][]any) (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[In](nil)
	if err != nil {
		return nil, fmt.Errorf("input schema for %T: %w", *new(In), err)
	}
	for name, values := range enums {
		prop, ok := schema.Properties[name]
		if !ok {
			return nil, fmt.Errorf("input schema for %T: no property %q", *new(In), name)
		}
		prop.Enum = values
	}
	return schema, nil
}

func enumValues[T ~string](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// handleSearchDocs handles the search_docs tool invocation.
func (s *Server) handleSearchDocs(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchDocsInput,
) (*mcp.CallToolResult, SearchDocsOutput, error) {
	limit := domain.DefaultSearchLimit
	if input.MaxResults != nil {
		limit = *input.MaxResults
	}

	results, err := s.ports.Search.Search(ctx, input.Query, domain.SearchOptions{Limit: limit})
	if err != nil {
		return nil, SearchDocsOutput{}, err
	}

	output := SearchDocsOutput{
		Query:   input.Query,
		Count:   len(results),
		Results: make([]SearchResultOutput, len(results)),
	}
	for i := range results {
		output.Results[i] = SearchResultOutput{
			URI:     results[i].Document.URI,
			Title:   results[i].Document.Title,
			Section: results[i].Document.Section,
			Score:   results[i].Score,
		}
	}

	return textResult(formatSearchResults(input.Query, results)), output, nil
}

// formatSearchResults renders ranked results as numbered markdown entries.
func formatSearchResults(query string, results []domain.SearchResult) string {
	if len(results) == 0 {
		return fmt.Sprintf("No results found for \"%s\". Try broader terms like "+
			`"routing", "orm", "components", "signals", or "cli".`, query)
	}

	entries := make([]string, len(results))
	for i := range results {
		doc := &results[i].Document
		entries[i] = fmt.Sprintf("%d. **%s** (score: %d)\n   URI: %s\n   Section: %s\n   %s...",
			i+1, doc.Title, results[i].Score, doc.URI, doc.Section, preview(doc.Content))
	}

	return fmt.Sprintf("Found %d results for \"%s\":\n\n%s", len(results), query, strings.Join(entries, "\n\n"))
}

// preview returns the first runes of content on a single line.
func preview(content string) string {
	runes := []rune(content)
	if len(runes) > previewRunes {
		runes = runes[:previewRunes]
	}
	return strings.TrimSpace(strings.ReplaceAll(string(runes), "\n", " "))
}

// handleComponentAPI handles the get_component_api tool invocation.
func (s *Server) handleComponentAPI(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ComponentAPIInput,
) (*mcp.CallToolResult, any, error) {
	pkg := domain.ComponentPackage(input.Package)
	if !pkg.IsValid() {
		return nil, nil, fmt.Errorf("%w: package must be one of duxt_html, duxt_ui, duxt_icons", domain.ErrInvalidInput)
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, nil, fmt.Errorf("%w: component name is required", domain.ErrInvalidInput)
	}

	docs, err := s.ports.Documents.ListBySection(ctx, pkg.Section())
	if err != nil {
		return nil, nil, fmt.Errorf("listing %s docs: %w", pkg.Section(), err)
	}

	if len(docs) == 0 {
		sections := s.ports.Documents.Snapshot(ctx).Sections
		available := "none"
		if len(sections) > 0 {
			available = strings.Join(sections, ", ")
		}
		return textResult(fmt.Sprintf("No documentation found for package \"%s\". Available sections: %s.",
			input.Package, available)), nil, nil
	}

	var matches []string
	for i := range docs {
		excerpt, ok := componentExcerpt(docs[i].Content, name)
		if !ok {
			continue
		}
		matches = append(matches, fmt.Sprintf("## From: %s (%s)\n\n%s", docs[i].Title, docs[i].URI, excerpt))
	}

	if len(matches) > 0 {
		return textResult(strings.Join(matches, matchSeparator)), nil, nil
	}

	if ref := findFallback(docs); ref != nil {
		return textResult(fmt.Sprintf("Component \"%s\" not found directly. Here's the full %s reference:\n\n%s",
			name, input.Package, ref.Content)), nil, nil
	}
	return textResult(fmt.Sprintf("Component \"%s\" not found in %s documentation.", name, input.Package)), nil, nil
}

// componentExcerpt finds the first line mentioning name, case-insensitively,
// and returns it with the two lines before and up to 27 lines after.
func componentExcerpt(content, name string) (string, bool) {
	needle := strings.ToLower(name)
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if !strings.Contains(strings.ToLower(line), needle) {
			continue
		}
		start := max(0, i-excerptBefore)
		end := min(len(lines), i+excerptAfter)
		return strings.Join(lines[start:end], "\n"), true
	}
	return "", false
}

func findFallback(docs []domain.Document) *domain.Document {
	for i := range docs {
		for _, slug := range fallbackSlugs {
			if docs[i].Slug == slug {
				return &docs[i]
			}
		}
	}
	return nil
}

// handleGenerateCode handles the generate_code tool invocation.
func (s *Server) handleGenerateCode(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input GenerateCodeInput,
) (*mcp.CallToolResult, any, error) {
	generated, err := s.ports.Generator.GenerateCode(domain.CodeKind(input.Type), input.Name, input.Fields)
	if err != nil {
		return nil, nil, err
	}

	text := fmt.Sprintf("Generated %s code for \"%s\":\n\n```dart\n%s```", generated.Kind, generated.Name, generated.Code)
	return textResult(text), nil, nil
}

// handleCLIHelp handles the duxt_cli_help tool invocation.
func (s *Server) handleCLIHelp(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CLIHelpInput,
) (*mcp.CallToolResult, any, error) {
	text, err := s.ports.Generator.CLIHelp(ctx, input.Task)
	if err != nil {
		return nil, nil, err
	}
	return textResult(text), nil, nil
}

// handleProjectStructure handles the get_project_structure tool invocation.
func (s *Server) handleProjectStructure(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ProjectStructureInput,
) (*mcp.CallToolResult, any, error) {
	text, err := s.ports.Generator.ProjectStructure(domain.ProjectTemplate(input.Template))
	if err != nil {
		return nil, nil, err
	}
	return textResult(text), nil, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
