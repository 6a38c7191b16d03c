package driven

import (
	"context"

	"github.com/custodia-labs/reposift/internal/core/domain"
)

// RecordWriter persists the full set of classified records.
// Each call replaces whatever the previous call wrote.
type RecordWriter interface {
	Write(ctx context.Context, records []domain.ClassifiedRecord) error
}

// RunStore keeps classified records across runs.
type RunStore interface {
	// Writer returns a RecordWriter scoped to one run.
	Writer(run domain.RunInfo) RecordWriter

	// ListRuns returns stored runs, most recent first.
	ListRuns(ctx context.Context) ([]domain.RunSummary, error)

	// Records returns the records stored for a run in ranked order.
	Records(ctx context.Context, runID string) ([]domain.ClassifiedRecord, error)

	// Close releases the underlying database.
	Close() error
}
