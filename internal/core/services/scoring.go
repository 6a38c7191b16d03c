package services

import (
	"context"

	"github.com/custodia-labs/reposift/internal/core/domain"
	"github.com/custodia-labs/reposift/internal/core/ports/driving"
)

// Ensure ScoringService implements the interface.
var _ driving.ScoringService = (*ScoringService)(nil)

// ScoringService scores and classifies single repositories.
type ScoringService struct {
	filter       *KeywordFilter
	orchestrator *Orchestrator
}

// NewScoringService creates a scoring service.
func NewScoringService(filter *KeywordFilter, orchestrator *Orchestrator) *ScoringService {
	return &ScoringService{
		filter:       filter,
		orchestrator: orchestrator,
	}
}

// Score runs the keyword filter over repo.
func (s *ScoringService) Score(repo domain.Repository) (domain.ScoredRepository, bool) {
	return s.filter.Score(repo)
}

// Classify scores repo and classifies it when it passes the filter.
func (s *ScoringService) Classify(ctx context.Context, repo domain.Repository) (domain.ClassifiedRecord, bool) {
	item, ok := s.filter.Score(repo)
	if !ok {
		return domain.ClassifiedRecord{}, false
	}
	return domain.ClassifiedRecord{
		ScoredRepository: item,
		Verdict:          s.orchestrator.Classify(ctx, item),
	}, true
}

// BackendName names the classification backend in use.
func (s *ScoringService) BackendName() string {
	return s.orchestrator.Name()
}
