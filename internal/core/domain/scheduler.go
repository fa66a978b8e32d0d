package domain

import "time"

// ReloadResult represents the outcome of one scheduled reload.
type ReloadResult struct {
	// StartedAt is when the reload started.
	StartedAt time.Time

	// EndedAt is when the reload completed.
	EndedAt time.Time

	// Success indicates whether the reload completed without error.
	Success bool

	// Error contains the error message if Success is false.
	Error string

	// Documents is the collection size after the reload.
	Documents int
}

// Duration returns how long the reload took.
func (r ReloadResult) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}
