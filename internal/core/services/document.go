package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/duxt-mcp/internal/core/domain"
	"github.com/custodia-labs/duxt-mcp/internal/core/ports/driven"
	"github.com/custodia-labs/duxt-mcp/internal/core/ports/driving"
	"github.com/custodia-labs/duxt-mcp/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService loads the documentation tree into the store and serves
// read-only views of it.
type DocumentService struct {
	source driven.DocumentSource
	store  driven.DocumentStore
	strict bool

	// loadMu serialises loads so snapshots are swapped one at a time.
	loadMu sync.Mutex
}

// NewDocumentService creates a new document service.
func NewDocumentService(source driven.DocumentSource, store driven.DocumentStore) *DocumentService {
	return &DocumentService{
		source: source,
		store:  store,
	}
}

// SetStrict makes Load fail with domain.ErrDuplicateURI when two documents
// share a URI. By default the later document wins.
func (s *DocumentService) SetStrict(strict bool) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	s.strict = strict
}

// Load reads the whole tree and replaces the collection.
// On error the previous collection stays in place.
func (s *DocumentService) Load(ctx context.Context) error {
	if s.source == nil || s.store == nil {
		return domain.ErrDocsUnavailable
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	logger.Section("Load Documents")
	logger.Debug("root: %s", s.source.Root())

	docs, err := s.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load documents: %w", err)
	}

	seen := make(map[string]struct{}, len(docs))
	for i := range docs {
		uri := docs[i].URI
		if _, dup := seen[uri]; dup {
			if s.strict {
				return fmt.Errorf("load documents: %w: %s", domain.ErrDuplicateURI, uri)
			}
			logger.Warn("duplicate document %s; keeping the last one", uri)
		}
		seen[uri] = struct{}{}
	}

	snap := s.store.Replace(docs)
	logger.Debug("snapshot %s: %d docs in %d sections", snap.Generation, snap.Count, len(snap.Sections))
	return nil
}

// Watch reloads the collection whenever watcher reports a change.
// It blocks until ctx is cancelled. Failed reloads are logged and the
// previous collection is kept.
func (s *DocumentService) Watch(ctx context.Context, watcher driven.DocumentWatcher) error {
	if watcher == nil {
		return nil
	}
	return watcher.Watch(ctx, func() {
		if err := s.Load(ctx); err != nil {
			logger.Warn("reload failed: %v", err)
			return
		}
		logger.Info("documents reloaded")
	})
}

// List returns every document sorted by section, then order.
// Documents that tie keep their load order.
func (s *DocumentService) List(_ context.Context) ([]domain.Document, error) {
	if s.store == nil {
		return nil, domain.ErrDocsUnavailable
	}

	docs := s.store.List()
	sort.SliceStable(docs, func(i, j int) bool {
		if docs[i].Section != docs[j].Section {
			return docs[i].Section < docs[j].Section
		}
		return docs[i].Order < docs[j].Order
	})
	return docs, nil
}

// Get retrieves a document by URI.
func (s *DocumentService) Get(_ context.Context, uri string) (*domain.Document, error) {
	if s.store == nil {
		return nil, domain.ErrDocsUnavailable
	}

	doc, err := s.store.Get(uri)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListBySection returns the documents of one section, in List order.
func (s *DocumentService) ListBySection(ctx context.Context, section string) ([]domain.Document, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	docs := make([]domain.Document, 0, len(all))
	for i := range all {
		if all[i].Section == section {
			docs = append(docs, all[i])
		}
	}
	return docs, nil
}

// Snapshot describes the current collection.
func (s *DocumentService) Snapshot(_ context.Context) domain.Snapshot {
	if s.store == nil {
		return domain.Snapshot{}
	}
	return s.store.Snapshot()
}
