package classifier

import (
	"context"

	"github.com/custodia-labs/reposift/internal/core/domain"
	"github.com/custodia-labs/reposift/internal/core/ports/driven"
)

// Ensure Unavailable implements the interface.
var _ driven.Classifier = Unavailable{}

// Unavailable stands in for a backend that could not be initialised.
type Unavailable struct {
	// Backend names the backend that is missing, e.g. "ollama".
	Backend string

	// Reason explains why, e.g. "service not available".
	Reason string
}

// Name identifies the missing backend.
func (u Unavailable) Name() string {
	return u.Backend + " (unavailable)"
}

// Classify returns an unavailable verdict without any I/O.
func (u Unavailable) Classify(context.Context, domain.ScoredRepository) (domain.Verdict, error) {
	reason := u.Reason
	if reason == "" {
		reason = u.Backend + " not available"
	}
	return domain.Unavailable(reason), nil
}
