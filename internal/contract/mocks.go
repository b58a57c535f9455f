package contract

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/gitpulse/gitpulse/schema"
)

// MockCommitSource is a testify mock for the CommitSource interface.
type MockCommitSource struct {
	mock.Mock
}

var _ CommitSource = &MockCommitSource{} // Compile-time check

// IsValidRepository implements the CommitSource interface.
func (m *MockCommitSource) IsValidRepository(ctx context.Context, repoPath string) bool {
	ret := m.Called(ctx, repoPath)
	return ret.Bool(0)
}

// ListCommits implements the CommitSource interface.
func (m *MockCommitSource) ListCommits(ctx context.Context, repoPath string, start, end time.Time) ([]schema.Commit, error) {
	ret := m.Called(ctx, repoPath, start, end)
	commits, _ := ret.Get(0).([]schema.Commit)
	return commits, ret.Error(1)
}

// ListBranchCommits implements the CommitSource interface.
func (m *MockCommitSource) ListBranchCommits(ctx context.Context, repoPath, branch string, start, end time.Time) ([]schema.Commit, error) {
	ret := m.Called(ctx, repoPath, branch, start, end)
	commits, _ := ret.Get(0).([]schema.Commit)
	return commits, ret.Error(1)
}

// ListBranches implements the CommitSource interface.
func (m *MockCommitSource) ListBranches(ctx context.Context, repoPath string) ([]string, error) {
	ret := m.Called(ctx, repoPath)
	branches, _ := ret.Get(0).([]string)
	return branches, ret.Error(1)
}

// CurrentBranch implements the CommitSource interface.
func (m *MockCommitSource) CurrentBranch(ctx context.Context, repoPath string) string {
	ret := m.Called(ctx, repoPath)
	return ret.String(0)
}

// Fetch implements the CommitSource interface.
func (m *MockCommitSource) Fetch(ctx context.Context, repoPath string) error {
	ret := m.Called(ctx, repoPath)
	return ret.Error(0)
}

// MockStore is a testify mock for the Store interface.
type MockStore struct {
	mock.Mock
}

var _ Store = &MockStore{} // Compile-time check

// UpsertRepository implements the Store interface.
func (m *MockStore) UpsertRepository(ctx context.Context, repo schema.RepositoryRef) error {
	ret := m.Called(ctx, repo)
	return ret.Error(0)
}

// ListRepositories implements the Store interface.
func (m *MockStore) ListRepositories(ctx context.Context) ([]schema.RepositoryRef, error) {
	ret := m.Called(ctx)
	repos, _ := ret.Get(0).([]schema.RepositoryRef)
	return repos, ret.Error(1)
}

// DeleteRepository implements the Store interface.
func (m *MockStore) DeleteRepository(ctx context.Context, name string) error {
	ret := m.Called(ctx, name)
	return ret.Error(0)
}

// UpsertCommits implements the Store interface.
func (m *MockStore) UpsertCommits(ctx context.Context, commits []schema.Commit) error {
	ret := m.Called(ctx, commits)
	return ret.Error(0)
}

// QueryCommits implements the Store interface.
func (m *MockStore) QueryCommits(ctx context.Context, filter schema.CommitFilter) ([]schema.Commit, error) {
	ret := m.Called(ctx, filter)
	commits, _ := ret.Get(0).([]schema.Commit)
	return commits, ret.Error(1)
}

// GeneralStats implements the Store interface.
func (m *MockStore) GeneralStats(ctx context.Context) (schema.GeneralStats, error) {
	ret := m.Called(ctx)
	stats, _ := ret.Get(0).(schema.GeneralStats)
	return stats, ret.Error(1)
}

// TopAuthors implements the Store interface.
func (m *MockStore) TopAuthors(ctx context.Context, limit int) ([]schema.AuthorTotals, error) {
	ret := m.Called(ctx, limit)
	authors, _ := ret.Get(0).([]schema.AuthorTotals)
	return authors, ret.Error(1)
}

// CommitsByDay implements the Store interface.
func (m *MockStore) CommitsByDay(ctx context.Context, days int) ([]schema.DayActivity, error) {
	ret := m.Called(ctx, days)
	rows, _ := ret.Get(0).([]schema.DayActivity)
	return rows, ret.Error(1)
}

// BranchStats implements the Store interface.
func (m *MockStore) BranchStats(ctx context.Context) ([]schema.BranchStats, error) {
	ret := m.Called(ctx)
	rows, _ := ret.Get(0).([]schema.BranchStats)
	return rows, ret.Error(1)
}

// AuthorsByBranch implements the Store interface.
func (m *MockStore) AuthorsByBranch(ctx context.Context, repository, branch string) ([]schema.BranchAuthor, error) {
	ret := m.Called(ctx, repository, branch)
	rows, _ := ret.Get(0).([]schema.BranchAuthor)
	return rows, ret.Error(1)
}

// DeveloperActivities implements the Store interface.
func (m *MockStore) DeveloperActivities(ctx context.Context) ([]schema.DeveloperActivity, error) {
	ret := m.Called(ctx)
	rows, _ := ret.Get(0).([]schema.DeveloperActivity)
	return rows, ret.Error(1)
}

// Status implements the Store interface.
func (m *MockStore) Status(ctx context.Context) (schema.StoreStatus, error) {
	ret := m.Called(ctx)
	status, _ := ret.Get(0).(schema.StoreStatus)
	return status, ret.Error(1)
}

// Clear implements the Store interface.
func (m *MockStore) Clear(ctx context.Context) error {
	ret := m.Called(ctx)
	return ret.Error(0)
}

// Close implements the Store interface.
func (m *MockStore) Close() error {
	ret := m.Called()
	return ret.Error(0)
}
