package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/reposift/internal/core/domain"
	"github.com/custodia-labs/reposift/internal/core/ports/driven"
	"github.com/custodia-labs/reposift/internal/core/ports/driving"
	"github.com/custodia-labs/reposift/internal/logger"
	"github.com/custodia-labs/reposift/internal/metrics"
)

// Ensure CrawlService implements the interface.
var _ driving.CrawlService = (*CrawlService)(nil)

// CrawlService runs search, deduplication, filtering and batched
// classification, checkpointing progress after every batch.
type CrawlService struct {
	searcher     driven.RepositorySearcher
	orchestrator *Orchestrator
	filter       *KeywordFilter
	settings     domain.CrawlSettings

	checkpoint driven.RecordWriter
	outputs    []driven.RecordWriter
	runStore   driven.RunStore
	metrics    *metrics.Recorder

	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
}

// NewCrawlService creates a crawl service.
func NewCrawlService(
	searcher driven.RepositorySearcher,
	orchestrator *Orchestrator,
	settings domain.CrawlSettings,
) *CrawlService {
	return &CrawlService{
		searcher:     searcher,
		orchestrator: orchestrator,
		filter:       NewKeywordFilter(settings.Filter.Required, settings.Filter.Exclude),
		settings:     settings,
		sleep:        sleepContext,
		now:          time.Now,
	}
}

// SetCheckpoint sets the writer that receives accumulated records after each batch.
func (s *CrawlService) SetCheckpoint(w driven.RecordWriter) {
	s.checkpoint = w
}

// AddOutput adds a writer that receives the final records.
func (s *CrawlService) AddOutput(w driven.RecordWriter) {
	s.outputs = append(s.outputs, w)
}

// SetRunStore sets the optional results store.
func (s *CrawlService) SetRunStore(store driven.RunStore) {
	s.runStore = store
}

// SetMetrics sets the metrics recorder.
func (s *CrawlService) SetMetrics(rec *metrics.Recorder) {
	s.metrics = rec
}

// Crawl runs the pipeline. On cancellation it returns the records classified
// so far together with the context error; the last checkpoint is left as is.
func (s *CrawlService) Crawl(ctx context.Context) (*domain.CrawlReport, error) {
	report := &domain.CrawlReport{
		Run: domain.RunInfo{
			ID:        uuid.NewString(),
			StartedAt: s.now(),
			Backend:   s.orchestrator.Name(),
		},
	}

	logger.Section("Searching")
	pages, err := s.search(ctx, report)
	if err != nil {
		return report, err
	}

	unique := MergeRepositories(pages)
	report.Unique = len(unique)
	s.metrics.SetStage(metrics.StageUnique, report.Unique)
	logger.Info("Found %d unique repositories (%d total hits)", report.Unique, report.Discovered)

	filtered := s.filter.Filter(unique)
	if limit := s.settings.Run.MaxResults; limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}
	report.Filtered = len(filtered)
	s.metrics.SetStage(metrics.StageFiltered, report.Filtered)
	logger.Info("%d repositories passed keyword filtering", report.Filtered)

	logger.Section("Classifying")
	logger.Info("Classification backend: %s", report.Run.Backend)
	if err := s.classify(ctx, filtered, report); err != nil {
		return report, err
	}

	err = s.persist(ctx, report)
	s.writeMetrics()
	return report, err
}

func (s *CrawlService) search(ctx context.Context, report *domain.CrawlReport) ([][]domain.Repository, error) {
	var pages [][]domain.Repository
	for _, q := range s.settings.Search.Plan() {
		logger.Info("Searching: %s", q.String())

		items, err := s.searcher.Search(ctx, q)
		pages = append(pages, items)
		report.Discovered += len(items)

		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			logger.Warn("Search %q stopped early: %v", q.String(), err)
		}
		logger.Debug("%d results for %q", len(items), q.String())
	}
	s.metrics.SetStage(metrics.StageDiscovered, report.Discovered)
	return pages, nil
}

func (s *CrawlService) classify(ctx context.Context, items []domain.ScoredRepository, report *domain.CrawlReport) error {
	batchSize := s.settings.Run.BatchSize
	if batchSize < 1 {
		batchSize = domain.DefaultBatchSize
	}
	pace := s.orchestrator.UsesModel() && s.settings.Run.Pacing > 0
	total := len(items)

	for start := 0; start < total; start += batchSize {
		end := min(start+batchSize, total)
		logger.Info("Processing batch %d (%d-%d of %d)", start/batchSize+1, start+1, end, total)

		for _, item := range items[start:end] {
			if err := ctx.Err(); err != nil {
				return err
			}

			v := s.orchestrator.Classify(ctx, item)
			report.Records = append(report.Records, domain.ClassifiedRecord{ScoredRepository: item, Verdict: v})
			s.metrics.SetStage(metrics.StageClassified, len(report.Records))
			logger.Debug("%s: %s", item.FullName, v)

			if pace {
				if err := s.sleep(ctx, s.settings.Run.Pacing); err != nil {
					return err
				}
			}
		}

		s.writeCheckpoint(ctx, report)
	}
	return nil
}

// writeCheckpoint saves the accumulated records. A failure is counted and
// retried implicitly by the next batch.
func (s *CrawlService) writeCheckpoint(ctx context.Context, report *domain.CrawlReport) {
	if s.checkpoint == nil {
		return
	}
	if err := s.checkpoint.Write(ctx, report.Records); err != nil {
		report.CheckpointFailures++
		s.metrics.ObserveCheckpointFailure()
		logger.Warn("Checkpoint failed after %d records: %v", len(report.Records), err)
	}
}

func (s *CrawlService) persist(ctx context.Context, report *domain.CrawlReport) error {
	writers := s.outputs
	if s.runStore != nil {
		writers = append(append([]driven.RecordWriter{}, writers...), s.runStore.Writer(report.Run))
	}

	var errs []error
	for _, w := range writers {
		if err := w.Write(ctx, report.Records); err != nil {
			logger.Error("Writing results: %v", err)
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("writing results: %w", errors.Join(errs...))
	}
	return nil
}

func (s *CrawlService) writeMetrics() {
	path := s.settings.Output.Metrics
	if path == "" || s.metrics == nil {
		return
	}
	if err := s.metrics.WriteTextfile(path); err != nil {
		logger.Warn("Writing metrics to %s: %v", path, err)
	}
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
