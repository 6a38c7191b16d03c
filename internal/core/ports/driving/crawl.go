package driving

import (
	"context"

	"github.com/custodia-labs/reposift/internal/core/domain"
)

// CrawlService runs the discovery pipeline end to end.
type CrawlService interface {
	// Crawl searches, deduplicates, filters and classifies repositories,
	// writing checkpoints and final outputs along the way.
	Crawl(ctx context.Context) (*domain.CrawlReport, error)
}

// ScoringService evaluates single repositories outside a full crawl.
type ScoringService interface {
	// Score runs the keyword filter over one repository. The boolean is false
	// when the repository was excluded or matched no required keyword.
	Score(repo domain.Repository) (domain.ScoredRepository, bool)

	// Classify scores and then classifies one repository.
	Classify(ctx context.Context, repo domain.Repository) (domain.ClassifiedRecord, bool)

	// BackendName names the classification backend in use.
	BackendName() string
}

// ResultsService reads runs kept in the results store.
type ResultsService interface {
	// ListRuns returns stored runs, most recent first.
	ListRuns(ctx context.Context) ([]domain.RunSummary, error)

	// Records returns the records stored for a run in ranked order.
	Records(ctx context.Context, runID string) ([]domain.ClassifiedRecord, error)
}
