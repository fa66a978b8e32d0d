package httpserver

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/custodia-labs/duxt-mcp/internal/core/domain"
)

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.Document
	snapshot  domain.Snapshot
	err       error
}

func (m *mockDocumentService) Load(_ context.Context) error {
	return m.err
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return nil, domain.ErrNotFound
}

func (m *mockDocumentService) ListBySection(_ context.Context, _ string) ([]domain.Document, error) {
	return nil, m.err
}

func (m *mockDocumentService) Snapshot(_ context.Context) domain.Snapshot {
	return m.snapshot
}

// countingHandler stands in for the MCP endpoint.
type countingHandler struct {
	calls atomic.Int32
}

func (h *countingHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	h.calls.Add(1)
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{}}`))
}

// stubReloads reports a fixed reload result.
type stubReloads struct {
	result domain.ReloadResult
	ok     bool
}

func (s stubReloads) LastResult() (domain.ReloadResult, bool) {
	return s.result, s.ok
}
