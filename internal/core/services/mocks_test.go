package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/duxt-mcp/internal/core/domain"
	"github.com/custodia-labs/duxt-mcp/internal/templates"
)

// mockSource implements driven.DocumentSource for testing.
type mockSource struct {
	mu    sync.Mutex
	docs  []domain.Document
	err   error
	calls int
}

func (m *mockSource) Load(_ context.Context) ([]domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Document, len(m.docs))
	copy(out, m.docs)
	return out, nil
}

func (m *mockSource) Root() string {
	return "/mock/docs"
}

func (m *mockSource) set(docs []domain.Document, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = docs
	m.err = err
}

// mockWatcher implements driven.DocumentWatcher by firing onChange once
// per value sent on trigger.
type mockWatcher struct {
	trigger chan struct{}
	err     error
}

func (m *mockWatcher) Watch(ctx context.Context, onChange func()) error {
	if m.err != nil {
		return m.err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-m.trigger:
			onChange()
		}
	}
}

// mockTemplateStore implements driven.TemplateStore using embedded
// templates, with optional per-name overrides and failures.
type mockTemplateStore struct {
	overrides map[string]string
	fail      map[string]bool
}

func (m *mockTemplateStore) Load(name string) (string, error) {
	if m.fail[name] {
		return "", errors.New("template unavailable")
	}
	if src, ok := m.overrides[name]; ok {
		return src, nil
	}
	src, ok := templates.Default(name)
	if !ok {
		return "", errors.New("template not found")
	}
	return src, nil
}

func (m *mockTemplateStore) Reload() {}

// mockSearchService implements driving.SearchService for testing.
type mockSearchService struct {
	results   []domain.SearchResult
	err       error
	lastQuery string
	lastOpts  domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.lastQuery = query
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if opts.Limit < len(m.results) {
		return m.results[:opts.Limit], nil
	}
	return m.results, nil
}

func newDoc(section, slug string, order int) domain.Document {
	return domain.Document{
		URI:     domain.DocumentURI(section, slug),
		Section: section,
		Slug:    slug,
		Title:   slug,
		Order:   order,
	}
}
