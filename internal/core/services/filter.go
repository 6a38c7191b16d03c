package services

import (
	"sort"
	"strings"

	"github.com/custodia-labs/reposift/internal/core/domain"
)

// KeywordFilter scores repositories against required keywords and drops
// anything that mentions an exclude keyword.
type KeywordFilter struct {
	required []string
	lowered  []string
	exclude  []string
}

// NewKeywordFilter creates a filter. Matching is case-insensitive and empty
// keywords are ignored.
func NewKeywordFilter(required, exclude []string) *KeywordFilter {
	f := &KeywordFilter{}
	for _, kw := range required {
		if kw == "" {
			continue
		}
		f.required = append(f.required, kw)
		f.lowered = append(f.lowered, strings.ToLower(kw))
	}
	for _, kw := range exclude {
		if kw == "" {
			continue
		}
		f.exclude = append(f.exclude, strings.ToLower(kw))
	}
	return f
}

// Score matches one repository. The boolean is false when the repository is
// excluded or matches no required keyword.
func (f *KeywordFilter) Score(repo domain.Repository) (domain.ScoredRepository, bool) {
	name := strings.ToLower(repo.Name)
	description := strings.ToLower(repo.Description)
	topics := make([]string, len(repo.Topics))
	for i, t := range repo.Topics {
		topics[i] = strings.ToLower(t)
	}

	text := name + " " + description + " " + strings.Join(topics, " ")
	for _, kw := range f.exclude {
		if strings.Contains(text, kw) {
			return domain.ScoredRepository{}, false
		}
	}

	var matches []string
	for i, kw := range f.lowered {
		if strings.Contains(name, kw) || strings.Contains(description, kw) || containsExact(topics, kw) {
			matches = append(matches, f.required[i])
		}
	}
	if len(matches) == 0 {
		return domain.ScoredRepository{}, false
	}

	return domain.ScoredRepository{
		Repository:       repo,
		MatchCount:       len(matches),
		MatchingKeywords: matches,
	}, true
}

// Filter scores every repository and returns the survivors ordered by match
// count, highest first. Ties keep their input order.
func (f *KeywordFilter) Filter(repos []domain.Repository) []domain.ScoredRepository {
	scored := make([]domain.ScoredRepository, 0, len(repos))
	for _, repo := range repos {
		if item, ok := f.Score(repo); ok {
			scored = append(scored, item)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchCount > scored[j].MatchCount
	})
	return scored
}

func containsExact(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
