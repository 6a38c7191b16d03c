package driven

import (
	"context"

	"github.com/custodia-labs/reposift/internal/core/domain"
)

// Classifier judges whether a pre-filtered repository is suitable.
// Implementations are chosen once per run and never switched per item.
type Classifier interface {
	// Name identifies the backend, e.g. "gemini/gemini-2.0-flash-exp".
	Name() string

	// Classify returns a verdict for the item. An error wrapping
	// domain.ErrAmbiguousResponse means the model answered without a usable
	// verdict; any other error means the backend failed after exhausting its
	// retries.
	Classify(ctx context.Context, item domain.ScoredRepository) (domain.Verdict, error)
}
