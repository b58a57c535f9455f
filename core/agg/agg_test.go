package agg

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
)

func testConfig() *contract.Config {
	return &contract.Config{Workers: 2}
}

func commitIn(hash string, ts time.Time) schema.Commit {
	return schema.Commit{
		Hash:        hash,
		AuthorName:  "Test Author",
		AuthorEmail: "test@x",
		Timestamp:   ts,
		Repository:  "stale-name-from-source",
	}
}

func TestAggregateMergesAndSorts(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

	repos := []schema.RepositoryRef{
		{Name: "alpha", Path: "/work/alpha"},
		{Name: "beta", Path: "/work/beta"},
	}

	source := new(contract.MockCommitSource)
	source.On("IsValidRepository", ctx, "/work/alpha").Return(true)
	source.On("IsValidRepository", ctx, "/work/beta").Return(true)
	source.On("ListCommits", ctx, "/work/alpha", time.Time{}, time.Time{}).
		Return([]schema.Commit{commitIn("a1", base.Add(2*time.Hour)), commitIn("a2", base)}, nil)
	source.On("ListCommits", ctx, "/work/beta", time.Time{}, time.Time{}).
		Return([]schema.Commit{commitIn("b1", base.Add(time.Hour))}, nil)

	out := Aggregate(ctx, testConfig(), source, repos)

	require.Empty(t, out.Errors)
	require.Len(t, out.Commits, 3)

	// Most recent first, regardless of which repository produced it.
	assert.Equal(t, "a1", out.Commits[0].Hash)
	assert.Equal(t, "b1", out.Commits[1].Hash)
	assert.Equal(t, "a2", out.Commits[2].Hash)

	// The aggregator owns the repository tag.
	assert.Equal(t, "alpha", out.Commits[0].Repository)
	assert.Equal(t, "beta", out.Commits[1].Repository)

	source.AssertExpectations(t)
}

func TestAggregatePartialFailure(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

	repos := []schema.RepositoryRef{
		{Name: "good", Path: "/work/good"},
		{Name: "invalid", Path: "/work/invalid"},
		{Name: "broken", Path: "/work/broken"},
	}

	source := new(contract.MockCommitSource)
	source.On("IsValidRepository", ctx, "/work/good").Return(true)
	source.On("IsValidRepository", ctx, "/work/invalid").Return(false)
	source.On("IsValidRepository", ctx, "/work/broken").Return(true)
	source.On("ListCommits", ctx, "/work/good", time.Time{}, time.Time{}).
		Return([]schema.Commit{commitIn("g1", base)}, nil)
	source.On("ListCommits", ctx, "/work/broken", time.Time{}, time.Time{}).
		Return(nil, errors.New("index file corrupt"))

	out := Aggregate(ctx, testConfig(), source, repos)

	// One bad repository must never abort the whole aggregation.
	require.Len(t, out.Commits, 1)
	assert.Equal(t, "good", out.Commits[0].Repository)

	require.Len(t, out.Errors, 2)
	assert.Contains(t, out.Errors[0], "invalid")
	assert.Contains(t, out.Errors[1], "broken")
	assert.Contains(t, out.Errors[1], "index file corrupt")

	source.AssertExpectations(t)
}

func TestAggregateEmptyRepoList(t *testing.T) {
	ctx := context.Background()
	source := new(contract.MockCommitSource)

	out := Aggregate(ctx, testConfig(), source, nil)
	assert.Empty(t, out.Commits)
	assert.Empty(t, out.Errors)
}

func TestAggregateDeterministicAcrossWorkerCounts(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

	var repos []schema.RepositoryRef
	buildSource := func() *contract.MockCommitSource {
		source := new(contract.MockCommitSource)
		for i := 0; i < 6; i++ {
			path := fmt.Sprintf("/work/repo%d", i)
			source.On("IsValidRepository", ctx, path).Return(true)
			source.On("ListCommits", ctx, path, time.Time{}, time.Time{}).
				Return([]schema.Commit{commitIn(fmt.Sprintf("c%d", i), base.Add(time.Duration(i)*time.Minute))}, nil)
		}
		return source
	}
	for i := 0; i < 6; i++ {
		repos = append(repos, schema.RepositoryRef{Name: fmt.Sprintf("repo%d", i), Path: fmt.Sprintf("/work/repo%d", i)})
	}

	serial := Aggregate(ctx, &contract.Config{Workers: 1}, buildSource(), repos)
	parallel := Aggregate(ctx, &contract.Config{Workers: 4}, buildSource(), repos)

	assert.Equal(t, serial, parallel, "final order is re-derived by sort, never by arrival order")
}

func TestSortByTimeDescHashTieBreak(t *testing.T) {
	ts := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	commits := []schema.Commit{commitIn("zzz", ts), commitIn("aaa", ts)}

	SortByTimeDesc(commits)
	assert.Equal(t, "aaa", commits[0].Hash)
	assert.Equal(t, "zzz", commits[1].Hash)
}

func TestGroupByPreservesFirstAppearanceOrder(t *testing.T) {
	base := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	commits := []schema.Commit{
		{Hash: "1", Repository: "beta", Timestamp: base.Add(3 * time.Hour)},
		{Hash: "2", Repository: "alpha", Timestamp: base.Add(2 * time.Hour)},
		{Hash: "3", Repository: "beta", Timestamp: base.Add(time.Hour)},
	}

	keys, groups := GroupBy(commits, func(c schema.Commit) string { return c.Repository })

	assert.Equal(t, []string{"beta", "alpha"}, keys)
	require.Len(t, groups["beta"], 2)
	assert.Equal(t, "1", groups["beta"][0].Hash, "group members keep input order")
	assert.Equal(t, "3", groups["beta"][1].Hash)
}

func TestCommitsForBranch(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	repo := schema.RepositoryRef{Name: "alpha", Path: "/work/alpha"}

	var history []schema.Commit
	for i := 0; i < 25; i++ {
		history = append(history, commitIn(fmt.Sprintf("c%02d", i), base.Add(time.Duration(i)*time.Hour)))
	}

	source := new(contract.MockCommitSource)
	source.On("ListBranchCommits", ctx, "/work/alpha", "develop", time.Time{}, time.Time{}).
		Return(history, nil)

	commits, err := CommitsForBranch(ctx, source, repo, "develop", 0)
	require.NoError(t, err)

	assert.Len(t, commits, DefaultBranchCommitLimit)
	assert.Equal(t, "c24", commits[0].Hash, "most recent first")
	assert.Equal(t, "alpha", commits[0].Repository)

	source.AssertExpectations(t)
}

func TestCommitsForBranchError(t *testing.T) {
	ctx := context.Background()
	repo := schema.RepositoryRef{Name: "alpha", Path: "/work/alpha"}

	source := new(contract.MockCommitSource)
	source.On("ListBranchCommits", ctx, "/work/alpha", "gone", time.Time{}, time.Time{}).
		Return(nil, errors.New("branch not found"))

	_, err := CommitsForBranch(ctx, source, repo, "gone", 5)
	assert.Error(t, err)
}
