// Package store persists search runs and their ranked leads. Two
// backends are provided: PostgreSQL for deployments and SQLite for
// local, zero-dependency use.
package store

import (
	"context"

	"github.com/scoutline/leadscout/internal/model"
)

// Store defines the persistence interface for search runs.
type Store interface {
	// SaveRun persists a completed run. A missing run ID is assigned.
	SaveRun(ctx context.Context, run *model.Run) error

	// GetRun fetches one run by ID.
	GetRun(ctx context.Context, runID string) (*model.Run, error)

	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
