package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reposift/internal/core/domain"
)

func TestScoringService(t *testing.T) {
	backend := &fakeClassifier{name: "gemini/gemini-2.0-flash-exp", verdict: domain.Unsuitable("documentation only")}
	svc := NewScoringService(
		NewKeywordFilter([]string{"STM32", "HAL"}, []string{"course"}),
		NewOrchestrator(backend, nil),
	)

	assert.Equal(t, "gemini/gemini-2.0-flash-exp", svc.BackendName())

	t.Run("score", func(t *testing.T) {
		item, ok := svc.Score(domain.Repository{Name: "stm32-hal"})
		require.True(t, ok)
		assert.Equal(t, []string{"STM32", "HAL"}, item.MatchingKeywords)
	})

	t.Run("classify", func(t *testing.T) {
		rec, ok := svc.Classify(context.Background(), domain.Repository{Name: "stm32-docs"})
		require.True(t, ok)
		assert.Equal(t, domain.Unsuitable("documentation only"), rec.Verdict)
		assert.Equal(t, 1, rec.MatchCount)
	})

	t.Run("excluded repository is not classified", func(t *testing.T) {
		calls := backend.calls
		_, ok := svc.Classify(context.Background(), domain.Repository{Name: "stm32-course"})
		assert.False(t, ok)
		assert.Equal(t, calls, backend.calls)
	})
}
