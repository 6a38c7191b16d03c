package services

import "github.com/custodia-labs/reposift/internal/core/domain"

// MergeRepositories concatenates search pages in arrival order, keeping the
// first occurrence of each full name.
func MergeRepositories(pages [][]domain.Repository) []domain.Repository {
	total := 0
	for _, page := range pages {
		total += len(page)
	}

	seen := make(map[string]struct{}, total)
	merged := make([]domain.Repository, 0, total)
	for _, page := range pages {
		for _, repo := range page {
			if _, dup := seen[repo.FullName]; dup {
				continue
			}
			seen[repo.FullName] = struct{}{}
			merged = append(merged, repo)
		}
	}
	return merged
}
