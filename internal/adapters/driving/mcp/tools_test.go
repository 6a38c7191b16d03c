package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reposift/internal/core/domain"
	"github.com/custodia-labs/reposift/internal/core/ports/driving"
)

func TestServer_handleScore(t *testing.T) {
	ctx := context.Background()

	t.Run("returns matching keywords", func(t *testing.T) {
		scoring := &mockScoringService{
			item:   domain.ScoredRepository{MatchCount: 2, MatchingKeywords: []string{"firmware", "stm32"}},
			passed: true,
		}
		server, err := NewServer(&Ports{Scoring: scoring})
		require.NoError(t, err)

		_, output, err := server.handleScore(ctx, nil, RepositoryInput{
			FullName:    "acme/stm32-fw",
			Description: "STM32 firmware",
			Language:    "C",
			Topics:      []string{"stm32"},
		})

		require.NoError(t, err)
		assert.True(t, output.Passed)
		assert.Equal(t, 2, output.MatchCount)
		assert.Equal(t, []string{"firmware", "stm32"}, output.MatchingKeywords)

		require.Len(t, scoring.seen, 1)
		repo := scoring.seen[0]
		assert.Equal(t, "stm32-fw", repo.Name)
		assert.Equal(t, "https://github.com/acme/stm32-fw", repo.HTMLURL)
		assert.Equal(t, []string{"stm32"}, repo.Topics)
	})

	t.Run("filtered repository reports empty keywords", func(t *testing.T) {
		server, err := NewServer(&Ports{Scoring: &mockScoringService{}})
		require.NoError(t, err)

		_, output, err := server.handleScore(ctx, nil, RepositoryInput{FullName: "acme/web"})

		require.NoError(t, err)
		assert.False(t, output.Passed)
		assert.NotNil(t, output.MatchingKeywords)
		assert.Empty(t, output.MatchingKeywords)
	})

	t.Run("missing full name is rejected", func(t *testing.T) {
		server, err := NewServer(&Ports{Scoring: &mockScoringService{}})
		require.NoError(t, err)

		_, _, err = server.handleScore(ctx, nil, RepositoryInput{Description: "x"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleClassify(t *testing.T) {
	ctx := context.Background()

	t.Run("uses configured backend by default", func(t *testing.T) {
		scoring := &mockScoringService{
			backend: "gemini/gemini-2.0-flash-exp",
			item:    domain.ScoredRepository{MatchCount: 1, MatchingKeywords: []string{"firmware"}},
			passed:  true,
			verdict: domain.Suitable("bare-metal drivers"),
		}
		server, err := NewServer(&Ports{Scoring: scoring})
		require.NoError(t, err)

		_, output, err := server.handleClassify(ctx, nil, ClassifyInput{
			RepositoryInput: RepositoryInput{FullName: "acme/fw", Name: "fw"},
		})

		require.NoError(t, err)
		assert.True(t, output.Passed)
		assert.Equal(t, "gemini/gemini-2.0-flash-exp", output.Backend)
		assert.Equal(t, "suitable", output.Outcome)
		assert.Equal(t, "Yes - bare-metal drivers", output.AIResponse)
		assert.False(t, output.Fallback)
	})

	t.Run("explicit unavailable backend", func(t *testing.T) {
		local := &mockScoringService{
			backend: "ollama (unavailable)",
			passed:  true,
			verdict: domain.FallbackVerdict(1),
		}
		server, err := NewServer(&Ports{
			Scoring:  &mockScoringService{},
			Backends: map[string]driving.ScoringService{"local": local},
		})
		require.NoError(t, err)

		_, output, err := server.handleClassify(ctx, nil, ClassifyInput{
			RepositoryInput: RepositoryInput{FullName: "acme/fw"},
			Backend:         "local",
		})

		require.NoError(t, err)
		assert.Equal(t, "ollama (unavailable)", output.Backend)
		assert.Equal(t, "suitable", output.Outcome)
		assert.True(t, output.Fallback)
		assert.Equal(t, "Yes (fallback - pre-filtered repo)", output.AIResponse)
	})

	t.Run("unknown backend", func(t *testing.T) {
		server, err := NewServer(&Ports{Scoring: &mockScoringService{}})
		require.NoError(t, err)

		_, _, err = server.handleClassify(ctx, nil, ClassifyInput{
			RepositoryInput: RepositoryInput{FullName: "acme/fw"},
			Backend:         "quantum",
		})
		assert.ErrorIs(t, err, ErrUnknownBackend)
	})

	t.Run("filtered repository is not classified", func(t *testing.T) {
		server, err := NewServer(&Ports{Scoring: &mockScoringService{backend: "x"}})
		require.NoError(t, err)

		_, output, err := server.handleClassify(ctx, nil, ClassifyInput{
			RepositoryInput: RepositoryInput{FullName: "acme/web"},
		})

		require.NoError(t, err)
		assert.False(t, output.Passed)
		assert.Empty(t, output.Backend)
		assert.Empty(t, output.AIResponse)
	})
}
