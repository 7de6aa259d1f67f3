package driven

import (
	"context"

	"github.com/sara-labs/sara-cli/internal/core/domain"
)

// EvalStore persists evaluation runs and their per-question results.
// Backed by SQLite.
type EvalStore interface {
	// SaveRun stores or updates an evaluation run summary.
	SaveRun(ctx context.Context, run *domain.EvalRun) error

	// SaveResult stores one per-question result.
	SaveResult(ctx context.Context, result *domain.EvalResult) error

	// GetRun retrieves a run by ID.
	GetRun(ctx context.Context, id string) (*domain.EvalRun, error)

	// ListResults returns all results for a run, oldest first.
	ListResults(ctx context.Context, runID string) ([]domain.EvalResult, error)

	// ListRuns returns all runs, newest first.
	ListRuns(ctx context.Context) ([]domain.EvalRun, error)

	// Close releases the underlying database handle.
	Close() error
}
