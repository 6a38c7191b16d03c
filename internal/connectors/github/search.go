package github

import (
	"context"
	"strings"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/reposift/internal/core/domain"
	"github.com/custodia-labs/reposift/internal/logger"
	"github.com/custodia-labs/reposift/internal/metrics"
)

// PerPage is the page size requested from the search API (its maximum).
const PerPage = 100

// Searcher runs paginated repository searches. It implements driven.RepositorySearcher.
type Searcher struct {
	client  *Client
	perPage int
	metrics *metrics.Recorder
}

// NewSearcher creates a Searcher over client.
func NewSearcher(client *Client, rec *metrics.Recorder) *Searcher {
	return &Searcher{
		client:  client,
		perPage: PerPage,
		metrics: rec,
	}
}

// Search fetches pages starting at 1 until a page comes back empty or short,
// or q.MaxPages pages have been read.
//
// Transport failures and error statuses end pagination and return what was
// gathered with a nil error. Rate limiting returns the partial results along
// with a *RateLimitError. Cancellation returns ctx.Err().
func (s *Searcher) Search(ctx context.Context, q domain.SearchQuery) ([]domain.Repository, error) {
	if strings.TrimSpace(q.Query) == "" {
		return nil, ErrEmptyQuery
	}

	query := q.String()
	maxPages := max(q.MaxPages, 1)
	opts := &gh.SearchOptions{
		Sort:        q.Sort,
		Order:       q.Order,
		ListOptions: gh.ListOptions{PerPage: s.perPage},
	}

	var items []domain.Repository
	for page := 1; page <= maxPages; page++ {
		opts.Page = page

		repos, status, err := s.client.SearchRepositories(ctx, query, opts)
		if err != nil && ctx.Err() != nil {
			return items, ctx.Err()
		}
		s.metrics.ObserveSearch(status)
		if err != nil {
			switch {
			case IsRateLimited(err):
				logger.Warn("Rate limited while searching %q (page %d): %v", query, page, err)
				return items, err
			case IsUnauthorized(err):
				logger.Error("GitHub rejected the token while searching %q: %v", query, err)
			case IsValidationFailed(err):
				logger.Warn("GitHub rejected query %q: %v", query, err)
			default:
				logger.Warn("Search %q page %d failed: %v", query, page, err)
			}
			return items, nil
		}

		for _, r := range repos {
			items = append(items, toDomainRepository(r))
		}
		logger.Debug("Search %q page %d: %d repositories", query, page, len(repos))

		if len(repos) < s.perPage {
			break
		}
	}

	return items, nil
}
