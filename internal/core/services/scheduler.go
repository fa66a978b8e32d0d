package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/duxt-mcp/internal/core/domain"
	"github.com/custodia-labs/duxt-mcp/internal/core/ports/driving"
	"github.com/custodia-labs/duxt-mcp/internal/logger"
)

// Scheduler reloads the documentation on a fixed interval.
// It complements the file watcher where file events are not delivered,
// such as network mounts.
type Scheduler struct {
	docs     driving.DocumentService
	interval time.Duration
	now      func() time.Time

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	last    *domain.ReloadResult
}

// NewScheduler creates a scheduler. A non-positive interval disables it.
func NewScheduler(docs driving.DocumentService, interval time.Duration) *Scheduler {
	return &Scheduler{
		docs:     docs,
		interval: interval,
		now:      time.Now,
	}
}

// Start runs the reload loop. It blocks until ctx is cancelled or Stop is
// called, and returns immediately when the scheduler is disabled.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.interval <= 0 || s.docs == nil {
		return nil
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil // Already running
	}
	s.running = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	logger.Debug("reloading docs every %s", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-stopCh:
			return nil
		case <-ticker.C:
			s.runReload(ctx)
		}
	}
}

// Stop ends a running Start loop.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	close(s.stopCh)
}

// LastResult returns the outcome of the most recent reload.
func (s *Scheduler) LastResult() (domain.ReloadResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return domain.ReloadResult{}, false
	}
	return *s.last, true
}

// runReload performs one reload and records its result. A failed reload
// keeps the previous collection.
func (s *Scheduler) runReload(ctx context.Context) {
	result := domain.ReloadResult{StartedAt: s.now()}

	err := s.docs.Load(ctx)
	result.EndedAt = s.now()
	if err != nil {
		result.Error = err.Error()
		logger.Warn("scheduled reload failed: %v", err)
	} else {
		result.Success = true
		result.Documents = s.docs.Snapshot(ctx).Count
		logger.Debug("scheduled reload: %d docs in %s", result.Documents, result.Duration())
	}

	s.mu.Lock()
	s.last = &result
	s.mu.Unlock()
}
