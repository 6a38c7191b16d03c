package services

import (
	"context"
	"errors"
	"time"

	"github.com/custodia-labs/reposift/internal/core/domain"
	"github.com/custodia-labs/reposift/internal/core/ports/driven"
	"github.com/custodia-labs/reposift/internal/logger"
	"github.com/custodia-labs/reposift/internal/metrics"
)

// HeuristicBackend names the keyword heuristic used when no model is in use.
const HeuristicBackend = "heuristic"

// BackendOptions lists the backends that initialised successfully.
// A nil classifier means that backend is unavailable.
type BackendOptions struct {
	// Analyze enables model classification at all.
	Analyze bool

	// Preference is the requested backend.
	Preference domain.BackendPreference

	// Local is the locally served model backend.
	Local driven.Classifier

	// Hosted is the hosted API backend.
	Hosted driven.Classifier
}

// SelectBackend picks the single backend used for a whole run.
// It returns nil when the keyword heuristic should decide.
func SelectBackend(opts BackendOptions) driven.Classifier {
	if !opts.Analyze {
		return nil
	}

	switch opts.Preference {
	case domain.BackendNone:
		return nil
	case domain.BackendLocal:
		if opts.Local != nil {
			return opts.Local
		}
		if opts.Hosted != nil {
			logger.Warn("Local model unavailable, using hosted backend %s", opts.Hosted.Name())
			return opts.Hosted
		}
	default:
		if opts.Hosted != nil {
			return opts.Hosted
		}
	}

	logger.Warn("No classification backend available, using keyword heuristic")
	return nil
}

// Orchestrator classifies items with the selected backend and degrades to
// heuristic verdicts. Classify never fails.
type Orchestrator struct {
	backend driven.Classifier
	metrics *metrics.Recorder
}

// NewOrchestrator creates an orchestrator. A nil backend means heuristic only.
func NewOrchestrator(backend driven.Classifier, rec *metrics.Recorder) *Orchestrator {
	return &Orchestrator{
		backend: backend,
		metrics: rec,
	}
}

// Name names the backend in use.
func (o *Orchestrator) Name() string {
	if o.backend == nil {
		return HeuristicBackend
	}
	return o.backend.Name()
}

// UsesModel reports whether classification calls a model, so pacing applies.
func (o *Orchestrator) UsesModel() bool {
	return o.backend != nil
}

// Classify returns a verdict for item.
func (o *Orchestrator) Classify(ctx context.Context, item domain.ScoredRepository) domain.Verdict {
	start := time.Now()
	v := o.classify(ctx, item)
	o.metrics.ObserveClassification(o.Name(), v.Outcome.String(), v.Fallback, time.Since(start))
	return v
}

func (o *Orchestrator) classify(ctx context.Context, item domain.ScoredRepository) domain.Verdict {
	if o.backend == nil {
		return domain.FallbackVerdict(item.MatchCount)
	}

	v, err := o.backend.Classify(ctx, item)
	switch {
	case err == nil && v.Outcome == domain.OutcomeUnavailable:
		logger.Debug("%s unavailable for %s: %s", o.backend.Name(), item.FullName, v.Reason)
		return domain.FallbackVerdict(item.MatchCount)
	case err == nil:
		return v
	case errors.Is(err, domain.ErrAmbiguousResponse):
		logger.Debug("Ambiguous answer for %s: %v", item.FullName, err)
		return domain.FallbackVerdict(item.MatchCount)
	default:
		logger.Warn("Classification failed for %s: %v", item.FullName, err)
		return domain.ErrorDefaultVerdict()
	}
}
