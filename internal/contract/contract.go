// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/gitpulse/gitpulse/schema"
)

// CommitSource defines the operations needed to read commit history from a
// locally-checked-out repository. This allows the aggregation logic to be
// tested without needing a real git executable.
type CommitSource interface {
	// --- Validation ---

	// IsValidRepository reports whether the path points at a readable git
	// working tree. It never returns an error; an unreadable path is false.
	IsValidRepository(ctx context.Context, repoPath string) bool

	// --- History ---

	// ListCommits returns commits on the current branch authored inside
	// [start, end], newest first, capped at schema.MaxCommitsPerRepository.
	ListCommits(ctx context.Context, repoPath string, start, end time.Time) ([]schema.Commit, error)

	// ListBranchCommits is ListCommits scoped to one branch. Local names are
	// tried first, then their origin/ counterparts.
	ListBranchCommits(ctx context.Context, repoPath, branch string, start, end time.Time) ([]schema.Commit, error)

	// --- Branches / Refs ---

	// ListBranches returns all local branch names of the repository.
	ListBranches(ctx context.Context, repoPath string) ([]string, error)

	// CurrentBranch returns the checked-out branch name, or
	// schema.DefaultBranch when HEAD is detached or unreadable.
	CurrentBranch(ctx context.Context, repoPath string) string

	// --- Remote ---

	// Fetch refreshes the repository from its default remote.
	Fetch(ctx context.Context, repoPath string) error
}

// Store defines the interface for the persistence layer. Implementations
// exist for SQLite, MySQL and PostgreSQL, plus a no-op used when persistence
// is disabled.
type Store interface {
	// UpsertRepository registers or updates a tracked repository.
	UpsertRepository(ctx context.Context, repo schema.RepositoryRef) error

	// ListRepositories returns all tracked repositories ordered by name.
	ListRepositories(ctx context.Context) ([]schema.RepositoryRef, error)

	// DeleteRepository removes a tracked repository and all of its commits.
	DeleteRepository(ctx context.Context, name string) error

	// UpsertCommits stores a batch of commits in one transaction. Replaying
	// the same batch is a no-op.
	UpsertCommits(ctx context.Context, commits []schema.Commit) error

	// QueryCommits returns stored commits matching the filter, newest first.
	QueryCommits(ctx context.Context, filter schema.CommitFilter) ([]schema.Commit, error)

	// GeneralStats returns store-wide totals for the report view.
	GeneralStats(ctx context.Context) (schema.GeneralStats, error)

	// TopAuthors returns per-author totals ordered by commit count.
	TopAuthors(ctx context.Context, limit int) ([]schema.AuthorTotals, error)

	// CommitsByDay returns daily commit and author counts, most recent first.
	CommitsByDay(ctx context.Context, days int) ([]schema.DayActivity, error)

	// BranchStats returns per-branch activity summaries.
	BranchStats(ctx context.Context) ([]schema.BranchStats, error)

	// AuthorsByBranch returns the contributors to one branch of one repository.
	AuthorsByBranch(ctx context.Context, repository, branch string) ([]schema.BranchAuthor, error)

	// DeveloperActivities returns the last-known activity of every developer.
	DeveloperActivities(ctx context.Context) ([]schema.DeveloperActivity, error)

	// Status returns status information about the store.
	Status(ctx context.Context) (schema.StoreStatus, error)

	// Clear removes all stored commits and repositories.
	Clear(ctx context.Context) error

	// Close closes the underlying connection.
	Close() error
}
