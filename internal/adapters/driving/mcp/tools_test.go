package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/duxt-mcp/internal/core/domain"
)

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func intPtr(n int) *int { return &n }

func TestServer_handleSearchDocs(t *testing.T) {
	ctx := context.Background()

	t.Run("formats results", func(t *testing.T) {
		search := &mockSearchService{
			results: []domain.SearchResult{
				{Document: testDoc("core", "routing", "Routing", "Line one\nLine two\n"), Score: 21},
				{Document: testDoc("orm", "models", "Models", "Models body"), Score: 5},
			},
		}
		server := newTestServer(nil, search, nil)

		res, output, err := server.handleSearchDocs(ctx, nil, SearchDocsInput{Query: "routing"})

		require.NoError(t, err)
		want := "Found 2 results for \"routing\":\n\n" +
			"1. **Routing** (score: 21)\n   URI: duxt://docs/core/routing\n   Section: core\n   Line one Line two...\n\n" +
			"2. **Models** (score: 5)\n   URI: duxt://docs/orm/models\n   Section: orm\n   Models body..."
		assert.Equal(t, want, resultText(t, res))
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, "routing", output.Query)
		assert.Equal(t, SearchResultOutput{
			URI: "duxt://docs/core/routing", Title: "Routing", Section: "core", Score: 21,
		}, output.Results[0])
	})

	t.Run("no results suggests broader terms", func(t *testing.T) {
		server := newTestServer(nil, &mockSearchService{}, nil)

		res, output, err := server.handleSearchDocs(ctx, nil, SearchDocsInput{Query: "zzz"})

		require.NoError(t, err)
		assert.Equal(t, `No results found for "zzz". Try broader terms like "routing", "orm", "components", "signals", or "cli".`,
			resultText(t, res))
		assert.Equal(t, 0, output.Count)
		assert.Empty(t, output.Results)
	})

	t.Run("default limit is 10", func(t *testing.T) {
		search := &mockSearchService{}
		server := newTestServer(nil, search, nil)

		_, _, err := server.handleSearchDocs(ctx, nil, SearchDocsInput{Query: "x"})

		require.NoError(t, err)
		assert.Equal(t, 10, search.lastOpts.Limit)
	})

	t.Run("explicit limit is passed through", func(t *testing.T) {
		search := &mockSearchService{}
		server := newTestServer(nil, search, nil)

		_, _, err := server.handleSearchDocs(ctx, nil, SearchDocsInput{Query: "x", MaxResults: intPtr(0)})

		require.NoError(t, err)
		assert.Equal(t, 0, search.lastOpts.Limit)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		server := newTestServer(nil, &mockSearchService{err: errors.New("search failed")}, nil)

		_, _, err := server.handleSearchDocs(ctx, nil, SearchDocsInput{Query: "test"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "search failed")
	})
}

func TestPreview(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"short", "hello", "hello"},
		{"newlines folded", "a\nb\n", "a b"},
		{"trimmed", "\n  padded  \n", "padded"},
		{"truncated", strings.Repeat("x", 250), strings.Repeat("x", 200)},
		{"multibyte", strings.Repeat("é", 201), strings.Repeat("é", 200)},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, preview(tt.content))
		})
	}
}

func TestComponentExcerpt(t *testing.T) {
	var lines []string
	for i := 0; i < 50; i++ {
		lines = append(lines, "line")
	}
	lines[10] = "## Button widget"
	content := strings.Join(lines, "\n")

	excerpt, ok := componentExcerpt(content, "BUTTON")

	require.True(t, ok)
	got := strings.Split(excerpt, "\n")
	assert.Len(t, got, 30)
	assert.Equal(t, "## Button widget", got[2])

	t.Run("match near start", func(t *testing.T) {
		excerpt, ok := componentExcerpt("Card\nsecond", "card")
		require.True(t, ok)
		assert.Equal(t, "Card\nsecond", excerpt)
	})

	t.Run("no match", func(t *testing.T) {
		_, ok := componentExcerpt("nothing here", "Button")
		assert.False(t, ok)
	})
}

func TestServer_handleComponentAPI(t *testing.T) {
	ctx := context.Background()

	t.Run("returns excerpts joined by separators", func(t *testing.T) {
		docs := &mockDocumentService{documents: []domain.Document{
			testDoc("duxt-html", "layout", "Layout", "Intro\nUse Section for blocks"),
			testDoc("duxt-html", "forms", "Forms", "Nothing relevant"),
			testDoc("duxt-html", "text", "Text", "section() helper"),
		}}
		server := newTestServer(docs, nil, nil)

		res, _, err := server.handleComponentAPI(ctx, nil, ComponentAPIInput{Name: "Section", Package: "duxt_html"})

		require.NoError(t, err)
		want := "## From: Layout (duxt://docs/duxt-html/layout)\n\nIntro\nUse Section for blocks" +
			"\n\n---\n\n" +
			"## From: Text (duxt://docs/duxt-html/text)\n\nsection() helper"
		assert.Equal(t, want, resultText(t, res))
	})

	t.Run("falls back to the reference page", func(t *testing.T) {
		docs := &mockDocumentService{documents: []domain.Document{
			testDoc("duxt-ui", "intro", "Intro", "Welcome"),
			testDoc("duxt-ui", "api-reference", "API", "Full reference"),
		}}
		server := newTestServer(docs, nil, nil)

		res, _, err := server.handleComponentAPI(ctx, nil, ComponentAPIInput{Name: "Modal", Package: "duxt_ui"})

		require.NoError(t, err)
		assert.Equal(t, "Component \"Modal\" not found directly. Here's the full duxt_ui reference:\n\nFull reference",
			resultText(t, res))
	})

	t.Run("not found without reference page", func(t *testing.T) {
		docs := &mockDocumentService{documents: []domain.Document{
			testDoc("duxt-icons", "intro", "Intro", "Icons"),
		}}
		server := newTestServer(docs, nil, nil)

		res, _, err := server.handleComponentAPI(ctx, nil, ComponentAPIInput{Name: "Modal", Package: "duxt_icons"})

		require.NoError(t, err)
		assert.Equal(t, `Component "Modal" not found in duxt_icons documentation.`, resultText(t, res))
	})

	t.Run("empty section lists available sections", func(t *testing.T) {
		docs := &mockDocumentService{sections: []string{"core", "duxt-html"}}
		server := newTestServer(docs, nil, nil)

		res, _, err := server.handleComponentAPI(ctx, nil, ComponentAPIInput{Name: "Button", Package: "duxt_ui"})

		require.NoError(t, err)
		assert.Equal(t, `No documentation found for package "duxt_ui". Available sections: core, duxt-html.`,
			resultText(t, res))
	})

	t.Run("invalid package", func(t *testing.T) {
		server := newTestServer(nil, nil, nil)

		_, _, err := server.handleComponentAPI(ctx, nil, ComponentAPIInput{Name: "Button", Package: "flutter"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("empty name", func(t *testing.T) {
		server := newTestServer(nil, nil, nil)

		_, _, err := server.handleComponentAPI(ctx, nil, ComponentAPIInput{Name: "  ", Package: "duxt_ui"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("document service failure", func(t *testing.T) {
		server := newTestServer(&mockDocumentService{err: errors.New("boom")}, nil, nil)

		_, _, err := server.handleComponentAPI(ctx, nil, ComponentAPIInput{Name: "Button", Package: "duxt_ui"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})
}

func TestServer_handleGenerateCode(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(nil, nil, nil)

	t.Run("wraps code in a dart fence", func(t *testing.T) {
		res, _, err := server.handleGenerateCode(ctx, nil, GenerateCodeInput{Type: "model", Name: "Post"})

		require.NoError(t, err)
		assert.Equal(t, "Generated model code for \"Post\":\n\n```dart\nclass Post {}\n```", resultText(t, res))
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, _, err := server.handleGenerateCode(ctx, nil, GenerateCodeInput{Type: "widget", Name: "Post"})

		assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	})
}

func TestServer_handleCLIHelp(t *testing.T) {
	ctx := context.Background()

	t.Run("returns generator text", func(t *testing.T) {
		server := newTestServer(nil, nil, nil)

		res, _, err := server.handleCLIHelp(ctx, nil, CLIHelpInput{Task: "build for production"})

		require.NoError(t, err)
		assert.Equal(t, "help:build for production", resultText(t, res))
	})

	t.Run("propagates errors", func(t *testing.T) {
		server := newTestServer(nil, nil, &mockGeneratorService{err: errors.New("template broken")})

		_, _, err := server.handleCLIHelp(ctx, nil, CLIHelpInput{Task: "dev"})

		assert.Error(t, err)
	})
}

func TestServer_handleProjectStructure(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(nil, nil, nil)

	for _, tmpl := range domain.ProjectTemplates() {
		t.Run(tmpl.String(), func(t *testing.T) {
			res, _, err := server.handleProjectStructure(ctx, nil, ProjectStructureInput{Template: tmpl.String()})

			require.NoError(t, err)
			assert.Equal(t, "structure:"+tmpl.String(), resultText(t, res))
		})
	}

	t.Run("unknown template", func(t *testing.T) {
		_, _, err := server.handleProjectStructure(ctx, nil, ProjectStructureInput{Template: "mobile"})

		assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	})
}

func TestInputSchema(t *testing.T) {
	t.Run("sets enum", func(t *testing.T) {
		schema, err := inputSchema[ProjectStructureInput](map[string][]any{"template": {"static", "server"}})

		require.NoError(t, err)
		assert.Equal(t, "object", schema.Type)
		assert.Equal(t, []any{"static", "server"}, schema.Properties["template"].Enum)
	})

	t.Run("unknown property", func(t *testing.T) {
		_, err := inputSchema[ProjectStructureInput](map[string][]any{"layout": {"static"}})

		require.Error(t, err)
		assert.Contains(t, err.Error(), `no property "layout"`)
	})
}

func TestEnumValues(t *testing.T) {
	assert.Equal(t, []any{"duxt_html", "duxt_ui", "duxt_icons"}, enumValues(domain.ComponentPackages()))
}
