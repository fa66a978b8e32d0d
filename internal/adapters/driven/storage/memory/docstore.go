package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/duxt-mcp/internal/core/domain"
	"github.com/custodia-labs/duxt-mcp/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
// The collection is an immutable snapshot; Replace builds a new one and
// swaps it in under the write lock.
type DocumentStore struct {
	mu       sync.RWMutex
	order    []string
	docs     map[string]domain.Document
	snapshot domain.Snapshot
	now      func() time.Time
}

// NewDocumentStore creates a new, empty in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		docs: make(map[string]domain.Document),
		now:  time.Now,
	}
}

// Replace swaps the whole collection for docs.
// A URI seen twice keeps its first position but takes the later value.
func (s *DocumentStore) Replace(docs []domain.Document) domain.Snapshot {
	order := make([]string, 0, len(docs))
	byURI := make(map[string]domain.Document, len(docs))
	sections := make(map[string]struct{})

	for i := range docs {
		uri := docs[i].URI
		if _, seen := byURI[uri]; !seen {
			order = append(order, uri)
		}
		byURI[uri] = docs[i]
		sections[docs[i].Section] = struct{}{}
	}

	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)

	snap := domain.Snapshot{
		Generation: uuid.New().String(),
		LoadedAt:   s.now(),
		Count:      len(order),
		Sections:   names,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = order
	s.docs = byURI
	s.snapshot = snap
	return snap
}

// Get retrieves a document by URI.
func (s *DocumentStore) Get(uri string) (domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	if !ok {
		return domain.Document{}, domain.ErrNotFound
	}
	return doc, nil
}

// List returns every document in load order.
func (s *DocumentStore) List() []domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Document, 0, len(s.order))
	for _, uri := range s.order {
		result = append(result, s.docs[uri])
	}
	return result
}

// Snapshot describes the current collection.
func (s *DocumentStore) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.snapshot
	snap.Sections = append([]string(nil), s.snapshot.Sections...)
	return snap
}
