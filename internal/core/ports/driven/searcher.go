package driven

import (
	"context"

	"github.com/custodia-labs/reposift/internal/core/domain"
)

// RepositorySearcher runs one paginated repository search.
//
// Search returns every item gathered before pagination stopped. The error is
// non-nil only when the platform rate-limited the search or ctx was
// cancelled; the partial items are still returned alongside it.
type RepositorySearcher interface {
	Search(ctx context.Context, q domain.SearchQuery) ([]domain.Repository, error)
}
