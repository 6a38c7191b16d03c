package github

import (
	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/reposift/internal/core/domain"
)

// toDomainRepository copies the fields the pipeline uses out of a search hit.
func toDomainRepository(r *gh.Repository) domain.Repository {
	var topics []string
	if len(r.Topics) > 0 {
		topics = append(topics, r.Topics...)
	}
	return domain.Repository{
		FullName:    r.GetFullName(),
		Name:        r.GetName(),
		HTMLURL:     r.GetHTMLURL(),
		Description: r.GetDescription(),
		Language:    r.GetLanguage(),
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		UpdatedAt:   r.GetUpdatedAt().Time,
		Topics:      topics,
	}
}
