package domain

import (
	"strconv"
	"strings"
	"time"
)

// Repository is a single search hit returned by the hosting platform.
// It is treated as immutable once fetched.
type Repository struct {
	// FullName is the identity key in owner/name form.
	FullName string

	// Name is the display name.
	Name string

	// HTMLURL is the browser URL of the repository.
	HTMLURL string

	// Description is the free-text description (may be empty).
	Description string

	// Language is the primary language tag (may be empty).
	Language string

	// Stars is the stargazer count.
	Stars int

	// Forks is the fork count.
	Forks int

	// UpdatedAt is the last-modified timestamp.
	UpdatedAt time.Time

	// Topics are the topic tags attached to the repository.
	Topics []string
}

// SearchQuery describes one paginated repository search.
type SearchQuery struct {
	// Query is the free-text search term.
	Query string

	// Language restricts results to a primary language. Empty means any.
	Language string

	// Sort is the sort field (stars, forks, updated).
	Sort string

	// Order is the sort direction (desc, asc).
	Order string

	// MinStars is the minimum star count.
	MinStars int

	// MaxPages caps the number of pages requested.
	MaxPages int
}

// String returns the platform query string for this search.
func (q SearchQuery) String() string {
	var b strings.Builder
	b.WriteString(q.Query)
	b.WriteString(" stars:>=")
	b.WriteString(strconv.Itoa(q.MinStars))
	if q.Language != "" {
		b.WriteString(" language:")
		b.WriteString(q.Language)
	}
	return b.String()
}

// ScoredRepository is a repository that matched at least one required keyword.
// MatchCount always equals len(MatchingKeywords).
type ScoredRepository struct {
	Repository

	// MatchCount is the number of required keywords matched.
	MatchCount int

	// MatchingKeywords lists matched keywords in required-keyword order.
	MatchingKeywords []string
}

// ClassifiedRecord pairs a scored repository with its verdict.
// Records are created once in the batch loop and never mutated.
type ClassifiedRecord struct {
	ScoredRepository
	Verdict Verdict
}
