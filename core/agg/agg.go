// Package agg has aggregation logic for commit streams across repositories.
package agg

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
)

// DefaultBranchCommitLimit caps the branch drill-down view.
const DefaultBranchCommitLimit = 10

// repoResult carries one repository's outcome back from the worker pool.
type repoResult struct {
	index   int
	commits []schema.Commit
	errMsg  string
}

// Aggregate pulls the full commit history of every repository and merges the
// streams into one collection sorted newest first. Each commit is tagged
// with its origin repository name, overwriting whatever the source set.
//
// A repository that fails validation or errors mid-fetch contributes zero
// commits and exactly one diagnostic string; the pass continues for the
// rest. Partial success is a first-class outcome.
func Aggregate(ctx context.Context, cfg *contract.Config, source contract.CommitSource, repos []schema.RepositoryRef) *schema.AggregateOutput {
	repoCh := make(chan int, len(repos))
	resultCh := make(chan repoResult, len(repos))
	var wg sync.WaitGroup

	// Bounded worker pool: one git invocation chain per worker at a time.
	for range cfg.Workers {
		wg.Go(func() {
			for i := range repoCh {
				resultCh <- fetchRepo(ctx, source, i, repos[i])
			}
		})
	}

	for i := range repos {
		repoCh <- i
	}
	close(repoCh)

	wg.Wait()
	close(resultCh)

	// Re-index by input position so diagnostics come out in a stable order
	// regardless of worker scheduling.
	results := make([]repoResult, len(repos))
	for r := range resultCh {
		results[r.index] = r
	}

	output := &schema.AggregateOutput{}
	for _, r := range results {
		if r.errMsg != "" {
			output.Errors = append(output.Errors, r.errMsg)
			continue
		}
		output.Commits = append(output.Commits, r.commits...)
	}

	SortByTimeDesc(output.Commits)
	return output
}

// fetchRepo reads one repository's history, converting every failure mode
// into a diagnostic instead of an error return.
func fetchRepo(ctx context.Context, source contract.CommitSource, index int, repo schema.RepositoryRef) repoResult {
	if !source.IsValidRepository(ctx, repo.Path) {
		err := &contract.SourceUnavailableError{Repository: repo.Name, Reason: "not a readable git repository"}
		return repoResult{index: index, errMsg: err.Error()}
	}

	commits, err := source.ListCommits(ctx, repo.Path, time.Time{}, time.Time{})
	if err != nil {
		srcErr := &contract.SourceUnavailableError{Repository: repo.Name, Reason: err.Error()}
		return repoResult{index: index, errMsg: srcErr.Error()}
	}

	for i := range commits {
		commits[i].Repository = repo.Name
	}
	return repoResult{index: index, commits: commits}
}

// SortByTimeDesc orders commits most recent first. Equal timestamps fall
// back to the hash so the ordering stays deterministic across runs.
func SortByTimeDesc(commits []schema.Commit) {
	sort.SliceStable(commits, func(i, j int) bool {
		if commits[i].Timestamp.Equal(commits[j].Timestamp) {
			return commits[i].Hash < commits[j].Hash
		}
		return commits[i].Timestamp.After(commits[j].Timestamp)
	})
}

// GroupBy partitions commits by key, preserving the insertion order of each
// key's first appearance. Group members keep their relative input order.
func GroupBy(commits []schema.Commit, key func(schema.Commit) string) ([]string, map[string][]schema.Commit) {
	var keys []string
	groups := make(map[string][]schema.Commit)
	for _, c := range commits {
		k := key(c)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], c)
	}
	return keys, groups
}

// CommitsForBranch returns at most limit commits for one named branch of one
// repository, most recent first. A non-positive limit uses the default.
func CommitsForBranch(ctx context.Context, source contract.CommitSource, repo schema.RepositoryRef, branch string, limit int) ([]schema.Commit, error) {
	if limit <= 0 {
		limit = DefaultBranchCommitLimit
	}

	commits, err := source.ListBranchCommits(ctx, repo.Path, branch, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}

	for i := range commits {
		commits[i].Repository = repo.Name
	}
	SortByTimeDesc(commits)

	if len(commits) > limit {
		commits = commits[:limit]
	}
	return commits, nil
}
