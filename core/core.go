// Package core has the command execution logic tying sources, aggregation,
// metrics and the store together.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gitpulse/gitpulse/core/agg"
	"github.com/gitpulse/gitpulse/core/metrics"
	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/internal/gitsrc"
	"github.com/gitpulse/gitpulse/internal/outwriter"
	"github.com/gitpulse/gitpulse/internal/store"
	"github.com/gitpulse/gitpulse/schema"
)

// ExecutorFunc defines the function signature for executing the different
// command modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// openStore connects the configured persistence backend.
func openStore(cfg *contract.Config) (*store.SQLStore, error) {
	return store.Open(cfg.Backend, cfg.DBConnect)
}

// resolveRepos returns the repository set for this invocation: the config
// file entries when present, otherwise the repositories tracked in the store.
func resolveRepos(ctx context.Context, cfg *contract.Config, st contract.Store) ([]schema.RepositoryRef, error) {
	if len(cfg.Repos) > 0 {
		return cfg.Repos, nil
	}
	repos, err := st.ListRepositories(ctx)
	if err != nil {
		return nil, err
	}
	if len(repos) == 0 {
		return nil, fmt.Errorf("%w: add entries to .gitpulse.yaml or run 'gitpulse repos add'", contract.ErrNoRepositories)
	}
	return repos, nil
}

// GetDashboardSnapshot aggregates all configured repositories and computes
// the metrics snapshot for the active window. It returns the snapshot plus
// one diagnostic per repository that could not be read.
func GetDashboardSnapshot(ctx context.Context, cfg *contract.Config) (schema.MetricsSnapshot, []string, error) {
	now := time.Now()

	// Resolve the window first so a bad custom range fails before any
	// repository is touched.
	window, err := metrics.ResolveWindow(cfg.Filter, cfg.StartDate, cfg.EndDate, now)
	if err != nil {
		return schema.MetricsSnapshot{}, nil, err
	}

	st, err := openStore(cfg)
	if err != nil {
		return schema.MetricsSnapshot{}, nil, err
	}
	defer func() { _ = st.Close() }()

	repos, err := resolveRepos(ctx, cfg, st)
	if err != nil {
		return schema.MetricsSnapshot{}, nil, err
	}

	source := gitsrc.NewLocalGitSource()
	output := agg.Aggregate(ctx, cfg, source, repos)

	snap := metrics.Compute(output.Commits, window, len(repos), now)
	return snap, output.Errors, nil
}

// ExecuteDashboard renders the full metrics snapshot. It serves as the main
// entry point for the 'dashboard' mode.
func ExecuteDashboard(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	snap, diagnostics, err := GetDashboardSnapshot(ctx, cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)

	ow := outwriter.NewOutWriter()
	ow.WriteDiagnostics(diagnostics)
	return ow.WriteDashboard(snap, cfg, duration)
}

// GetAuthorRollups aggregates all configured repositories and returns the
// per-author rollups for the active window, honoring the author filter and
// limit.
func GetAuthorRollups(ctx context.Context, cfg *contract.Config) ([]schema.AuthorRollup, []string, error) {
	now := time.Now()

	window, err := metrics.ResolveWindow(cfg.Filter, cfg.StartDate, cfg.EndDate, now)
	if err != nil {
		return nil, nil, err
	}

	st, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = st.Close() }()

	repos, err := resolveRepos(ctx, cfg, st)
	if err != nil {
		return nil, nil, err
	}

	source := gitsrc.NewLocalGitSource()
	output := agg.Aggregate(ctx, cfg, source, repos)

	var windowed []schema.Commit
	for _, c := range output.Commits {
		if !window.Contains(c.Timestamp) {
			continue
		}
		if cfg.AuthorEmail != "" && c.AuthorEmail != cfg.AuthorEmail {
			continue
		}
		windowed = append(windowed, c)
	}

	rollups := metrics.Rollups(windowed)
	if len(rollups) > cfg.AuthorLimit {
		rollups = rollups[:cfg.AuthorLimit]
	}
	return rollups, output.Errors, nil
}

// ExecuteAuthors renders the per-author rollup table for the active window.
func ExecuteAuthors(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	rollups, diagnostics, err := GetAuthorRollups(ctx, cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)

	ow := outwriter.NewOutWriter()
	ow.WriteDiagnostics(diagnostics)
	return ow.WriteAuthors(rollups, cfg, duration)
}

// ExecuteBranches renders branch activity. Without --branch it shows the
// store-backed per-branch summaries; with --branch it shows that branch's
// contributors from the store plus its most recent live commits.
func ExecuteBranches(ctx context.Context, cfg *contract.Config, repository string) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ow := outwriter.NewOutWriter()

	if cfg.Branch == "" {
		stats, err := st.BranchStats(ctx)
		if err != nil {
			return err
		}
		return ow.WriteBranches(stats, cfg)
	}

	if repository == "" {
		return errors.New("--repo is required when --branch is set")
	}
	authors, err := st.AuthorsByBranch(ctx, repository, cfg.Branch)
	if err != nil {
		return err
	}

	// The contributor table comes from the store; the recent-commit list is
	// read live when the repository is still checked out locally.
	var recent []schema.Commit
	if repos, err := resolveRepos(ctx, cfg, st); err == nil {
		for _, repo := range repos {
			if repo.Name != repository {
				continue
			}
			source := gitsrc.NewLocalGitSource()
			if live, err := agg.CommitsForBranch(ctx, source, repo, cfg.Branch, 0); err == nil {
				recent = live
			}
			break
		}
	}

	return ow.WriteBranchAuthors(repository, cfg.Branch, authors, recent, cfg)
}

// GetTeamStatus returns the store-backed developer activity view.
func GetTeamStatus(ctx context.Context, cfg *contract.Config) ([]schema.DeveloperActivity, error) {
	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	defer func() { _ = st.Close() }()

	return st.DeveloperActivities(ctx)
}

// ExecuteTeamStatus renders the store-backed developer activity view.
func ExecuteTeamStatus(ctx context.Context, cfg *contract.Config) error {
	activities, err := GetTeamStatus(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteTeamStatus(activities, cfg)
}

// ExecuteReport renders the store-wide report: general totals, top authors
// and commits-by-day.
func ExecuteReport(ctx context.Context, cfg *contract.Config, days int) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	report := outwriter.ReportData{}
	if report.General, err = st.GeneralStats(ctx); err != nil {
		return err
	}
	if report.TopAuthors, err = st.TopAuthors(ctx, cfg.AuthorLimit); err != nil {
		return err
	}
	if report.Days, err = st.CommitsByDay(ctx, days); err != nil {
		return err
	}
	if cfg.Output == schema.ParquetOut {
		// Parquet mode exports the raw rows instead of the derived sections.
		if report.Commits, err = st.QueryCommits(ctx, schema.CommitFilter{}); err != nil {
			return err
		}
	}
	return outwriter.NewOutWriter().WriteReport(report, cfg)
}

// ExecuteStoreStatus renders persistence store status.
func ExecuteStoreStatus(ctx context.Context, cfg *contract.Config) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	status, err := st.Status(ctx)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteStoreStatus(status, cfg)
}

// ExecuteStoreClear deletes all stored repositories and commits.
func ExecuteStoreClear(ctx context.Context, cfg *contract.Config) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.Clear(ctx); err != nil {
		return err
	}
	fmt.Println("Store cleared")
	return nil
}
