package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reposift/internal/core/ports/driving"
)

func TestNewServer(t *testing.T) {
	t.Run("nil scoring service returns error", func(t *testing.T) {
		ports := &Ports{}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingScoringService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports := &Ports{
			Scoring: &mockScoringService{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
		assert.NotNil(t, server.Handler())
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil scoring service returns error", func(t *testing.T) {
		ports := &Ports{}
		err := ports.Validate()
		assert.ErrorIs(t, err, ErrMissingScoringService)
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Scoring:  &mockScoringService{},
			Backends: map[string]driving.ScoringService{"local": &mockScoringService{}},
			Results:  &mockResultsService{},
		}
		err := ports.Validate()
		assert.NoError(t, err)
	})
}

func TestPorts_scorer(t *testing.T) {
	def := &mockScoringService{backend: "gemini/x"}
	local := &mockScoringService{backend: "ollama/y"}
	ports := &Ports{
		Scoring:  def,
		Backends: map[string]driving.ScoringService{"local": local},
	}

	svc, err := ports.scorer("")
	require.NoError(t, err)
	assert.Same(t, def, svc)

	svc, err = ports.scorer("local")
	require.NoError(t, err)
	assert.Same(t, local, svc)

	_, err = ports.scorer("quantum")
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
