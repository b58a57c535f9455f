package core

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/internal/gitsrc"
	"github.com/gitpulse/gitpulse/internal/outwriter"
	"github.com/gitpulse/gitpulse/schema"
)

// ExecuteFetch runs `git fetch` against every configured repository with
// bounded concurrency. Failures are reported per repository, never fatal.
func ExecuteFetch(ctx context.Context, cfg *contract.Config) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	repos, err := resolveRepos(ctx, cfg, st)
	if err != nil {
		return err
	}

	source := gitsrc.NewLocalGitSource()
	results := make([]schema.FetchResult, len(repos))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, repo := range repos {
		g.Go(func() error {
			results[i] = fetchOne(gctx, source, repo)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors, results carry the outcomes

	return outwriter.NewOutWriter().WriteFetchResults(results, cfg)
}

func fetchOne(ctx context.Context, source contract.CommitSource, repo schema.RepositoryRef) schema.FetchResult {
	if !source.IsValidRepository(ctx, repo.Path) {
		return schema.FetchResult{Name: repo.Name, Status: "skipped", Message: "not a readable git repository"}
	}
	if err := source.Fetch(ctx, repo.Path); err != nil {
		return schema.FetchResult{Name: repo.Name, Status: "error", Message: err.Error()}
	}
	return schema.FetchResult{Name: repo.Name, Status: "success", Message: "up to date"}
}

// ExecuteSync pulls the history of every configured repository across all
// of its local branches and upserts it into the store. Re-running a sync is
// idempotent.
func ExecuteSync(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	repos, err := resolveRepos(ctx, cfg, st)
	if err != nil {
		return err
	}

	source := gitsrc.NewLocalGitSource()
	results := make([]schema.FetchResult, len(repos))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, repo := range repos {
		g.Go(func() error {
			results[i] = syncOne(gctx, source, st, repo)
			return nil
		})
	}
	_ = g.Wait()

	synced := 0
	for _, r := range results {
		if r.Status == "success" {
			synced++
		}
	}

	ow := outwriter.NewOutWriter()
	if err := ow.WriteFetchResults(results, cfg); err != nil {
		return err
	}
	fmt.Printf("Synced %d/%d repositories in %v\n", synced, len(repos), time.Since(start))
	return nil
}

// syncOne reads one repository's history branch by branch and stores it.
func syncOne(ctx context.Context, source contract.CommitSource, st contract.Store, repo schema.RepositoryRef) schema.FetchResult {
	if !source.IsValidRepository(ctx, repo.Path) {
		return schema.FetchResult{Name: repo.Name, Status: "skipped", Message: "not a readable git repository"}
	}

	if err := st.UpsertRepository(ctx, repo); err != nil {
		return schema.FetchResult{Name: repo.Name, Status: "error", Message: err.Error()}
	}

	branches, err := source.ListBranches(ctx, repo.Path)
	if err != nil {
		return schema.FetchResult{Name: repo.Name, Status: "error", Message: err.Error()}
	}
	if len(branches) == 0 {
		branches = []string{source.CurrentBranch(ctx, repo.Path)}
	}

	total := 0
	for _, branch := range branches {
		commits, err := source.ListBranchCommits(ctx, repo.Path, branch, time.Time{}, time.Time{})
		if err != nil {
			return schema.FetchResult{Name: repo.Name, Status: "error", Message: err.Error()}
		}
		for i := range commits {
			commits[i].Repository = repo.Name
		}
		if err := st.UpsertCommits(ctx, commits); err != nil {
			return schema.FetchResult{Name: repo.Name, Status: "error", Message: err.Error()}
		}
		total += len(commits)
	}

	return schema.FetchResult{
		Name:    repo.Name,
		Status:  "success",
		Message: fmt.Sprintf("stored %d commits across %d branches", total, len(branches)),
	}
}
