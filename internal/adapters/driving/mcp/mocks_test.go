package mcp

import (
	"context"

	"github.com/custodia-labs/reposift/internal/core/domain"
)

// mockScoringService is a mock implementation of driving.ScoringService.
type mockScoringService struct {
	backend string
	item    domain.ScoredRepository
	passed  bool
	verdict domain.Verdict
	seen    []domain.Repository
}

func (m *mockScoringService) Score(repo domain.Repository) (domain.ScoredRepository, bool) {
	m.seen = append(m.seen, repo)
	item := m.item
	item.Repository = repo
	return item, m.passed
}

func (m *mockScoringService) Classify(_ context.Context, repo domain.Repository) (domain.ClassifiedRecord, bool) {
	item, ok := m.Score(repo)
	if !ok {
		return domain.ClassifiedRecord{}, false
	}
	return domain.ClassifiedRecord{ScoredRepository: item, Verdict: m.verdict}, true
}

func (m *mockScoringService) BackendName() string {
	return m.backend
}

// mockResultsService is a mock implementation of driving.ResultsService.
type mockResultsService struct {
	runs    []domain.RunSummary
	records map[string][]domain.ClassifiedRecord
	err     error
}

func (m *mockResultsService) ListRuns(_ context.Context) ([]domain.RunSummary, error) {
	return m.runs, m.err
}

func (m *mockResultsService) Records(_ context.Context, runID string) ([]domain.ClassifiedRecord, error) {
	return m.records[runID], m.err
}
