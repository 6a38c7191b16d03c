package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reposift/internal/core/domain"
)

func repo(fullName, description string) domain.Repository {
	return domain.Repository{FullName: fullName, Name: fullName, Description: description}
}

func fullNames(repos []domain.Repository) []string {
	names := make([]string, len(repos))
	for i, r := range repos {
		names[i] = r.FullName
	}
	return names
}

func TestMergeRepositories_FirstOccurrenceWins(t *testing.T) {
	pages := [][]domain.Repository{
		{repo("org/repo", "first page"), repo("org/a", "")},
		{repo("org/repo", "second page"), repo("org/b", "")},
	}

	merged := MergeRepositories(pages)

	require.Len(t, merged, 3)
	assert.Equal(t, []string{"org/repo", "org/a", "org/b"}, fullNames(merged))
	assert.Equal(t, "first page", merged[0].Description)
}

func TestMergeRepositories_Idempotent(t *testing.T) {
	page := []domain.Repository{repo("a/1", ""), repo("b/2", ""), repo("a/1", "dup"), repo("c/3", "")}

	once := MergeRepositories([][]domain.Repository{page})
	twice := MergeRepositories([][]domain.Repository{page, page})

	assert.Equal(t, once, twice)
	assert.Equal(t, once, MergeRepositories([][]domain.Repository{once}))
}

func TestMergeRepositories_Empty(t *testing.T) {
	assert.Empty(t, MergeRepositories(nil))
	assert.Empty(t, MergeRepositories([][]domain.Repository{nil, {}}))
}
