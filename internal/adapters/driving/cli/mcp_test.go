package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reposift/internal/adapters/driven/classifier"
	"github.com/custodia-labs/reposift/internal/core/domain"
	"github.com/custodia-labs/reposift/internal/core/services"
)

func TestMCPServeCmd_HasPortFlag(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestAvailableOr(t *testing.T) {
	stand := availableOr(nil, "ollama", "Ollama service not available")
	assert.Equal(t, "ollama (unavailable)", stand.Name())

	v, err := stand.Classify(context.Background(), domain.ScoredRepository{})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeUnavailable, v.Outcome)

	stub := classifier.Unavailable{Backend: "x"}
	assert.Equal(t, stub, availableOr(stub, "ollama", "unused"))
}

func TestAvailableOr_ScoresWithHeuristic(t *testing.T) {
	filter := services.NewKeywordFilter([]string{"stm32"}, nil)
	scoring := services.NewScoringService(filter,
		services.NewOrchestrator(availableOr(nil, "ollama", "Ollama service not available"), nil))

	record, ok := scoring.Classify(context.Background(), domain.Repository{
		FullName:    "acme/fw",
		Description: "STM32 firmware",
	})

	require.True(t, ok)
	assert.Equal(t, domain.FallbackVerdict(1), record.Verdict)
	assert.Equal(t, "ollama (unavailable)", scoring.BackendName())
}
