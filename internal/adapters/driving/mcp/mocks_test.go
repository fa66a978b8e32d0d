package mcp

import (
	"context"
	"errors"

	"github.com/custodia-labs/duxt-mcp/internal/core/domain"
)

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.Document
	sections  []string
	err       error
}

func (m *mockDocumentService) Load(_ context.Context) error {
	return m.err
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Get(_ context.Context, uri string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.documents {
		if m.documents[i].URI == uri {
			doc := m.documents[i]
			return &doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockDocumentService) ListBySection(_ context.Context, section string) ([]domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Document
	for i := range m.documents {
		if m.documents[i].Section == section {
			out = append(out, m.documents[i])
		}
	}
	return out, nil
}

func (m *mockDocumentService) Snapshot(_ context.Context) domain.Snapshot {
	return domain.Snapshot{Count: len(m.documents), Sections: m.sections}
}

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results  []domain.SearchResult
	err      error
	lastOpts domain.SearchOptions
	calls    int
}

func (m *mockSearchService) Search(
	_ context.Context,
	_ string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.calls++
	m.lastOpts = opts
	return m.results, m.err
}

// mockGeneratorService is a mock implementation of driving.GeneratorService.
// Each method echoes its arguments so tests can check the wiring.
type mockGeneratorService struct {
	err error
}

func (m *mockGeneratorService) GenerateCode(
	kind domain.CodeKind, name string, _ map[string]string,
) (*domain.GeneratedCode, error) {
	if m.err != nil {
		return nil, m.err
	}
	if !kind.IsValid() {
		return nil, domain.ErrUnsupportedType
	}
	return &domain.GeneratedCode{Kind: kind, Name: name, Code: "class " + name + " {}\n"}, nil
}

func (m *mockGeneratorService) ProjectStructure(template domain.ProjectTemplate) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if !template.IsValid() {
		return "", domain.ErrUnsupportedType
	}
	return "structure:" + template.String(), nil
}

func (m *mockGeneratorService) CLIHelp(_ context.Context, task string) (string, error) {
	return "help:" + task, m.err
}

func (m *mockGeneratorService) PagePrompt(pageName, route string) (string, error) {
	return m.prompt("page", pageName, route)
}

func (m *mockGeneratorService) ModelPrompt(modelName, fields string) (string, error) {
	return m.prompt("model", modelName, fields)
}

func (m *mockGeneratorService) CRUDPrompt(resourceName, fields string) (string, error) {
	return m.prompt("crud", resourceName, fields)
}

func (m *mockGeneratorService) prompt(kind, name, arg string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if name == "" {
		return "", errors.Join(domain.ErrInvalidInput, errors.New("name is required"))
	}
	return kind + ":" + name + ":" + arg, nil
}

func newTestServer(docs *mockDocumentService, search *mockSearchService, gen *mockGeneratorService) *Server {
	if docs == nil {
		docs = &mockDocumentService{}
	}
	if search == nil {
		search = &mockSearchService{}
	}
	if gen == nil {
		gen = &mockGeneratorService{}
	}
	s, err := NewServer(&Ports{Documents: docs, Search: search, Generator: gen})
	if err != nil {
		panic(err)
	}
	return s
}

func testDoc(section, slug, title, content string) domain.Document {
	return domain.Document{
		URI:     domain.DocumentURI(section, slug),
		Section: section,
		Slug:    slug,
		Title:   title,
		Content: content,
	}
}
