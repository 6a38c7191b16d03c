package mcp

import (
	"github.com/custodia-labs/reposift/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Scoring scores and classifies with the backend selected from settings.
	Scoring driving.ScoringService

	// Backends holds scoring services pinned to one backend, keyed by the
	// name a caller may pass (local, hosted, heuristic). Optional.
	Backends map[string]driving.ScoringService

	// Results reads the results store. Optional.
	Results driving.ResultsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Scoring == nil {
		return ErrMissingScoringService
	}
	return nil
}

// scorer returns the scoring service for backend, or the default when empty.
func (p *Ports) scorer(backend string) (driving.ScoringService, error) {
	if backend == "" {
		return p.Scoring, nil
	}
	svc, ok := p.Backends[backend]
	if !ok {
		return nil, ErrUnknownBackend
	}
	return svc, nil
}
