package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitpulse/gitpulse/schema"
)

func openTestStore(t *testing.T) *SQLStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "gitpulse_test.db")
	s, err := Open(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedCommits(t *testing.T, s *SQLStore, commits []schema.Commit) {
	t.Helper()
	require.NoError(t, s.UpsertCommits(context.Background(), commits))
}

func testCommit(repo, hash, name, email string, ts time.Time) schema.Commit {
	return schema.Commit{
		Hash:         hash,
		AuthorName:   name,
		AuthorEmail:  email,
		Timestamp:    ts,
		Message:      "work on " + repo,
		Repository:   repo,
		FilesChanged: 2,
		Insertions:   10,
		Deletions:    4,
		Branch:       "main",
	}
}

func TestOpenNoneBackend(t *testing.T) {
	s, err := Open(schema.NoneBackend, "")
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	ctx := context.Background()
	assert.NoError(t, s.UpsertCommits(ctx, []schema.Commit{testCommit("r", "a1", "A", "a@x.io", time.Now())}))

	commits, err := s.QueryCommits(ctx, schema.CommitFilter{})
	assert.NoError(t, err)
	assert.Empty(t, commits)

	status, err := s.Status(ctx)
	assert.NoError(t, err)
	assert.False(t, status.Connected)
	assert.Equal(t, string(schema.NoneBackend), status.Backend)
}

func TestTimeArgFixedWidth(t *testing.T) {
	s := openTestStore(t)

	whole := time.Date(2024, 3, 5, 10, 0, 11, 0, time.UTC)
	fractional := whole.Add(123 * time.Millisecond)

	wholeStr, ok := s.timeArg(whole).(string)
	require.True(t, ok)
	fractionalStr, ok := s.timeArg(fractional).(string)
	require.True(t, ok)

	// Lexicographic order must match chronological order, so the fractional
	// part is fixed-width even when it is all zeros.
	assert.Equal(t, "2024-03-05T10:00:11.000000000Z", wholeStr)
	assert.Less(t, wholeStr, fractionalStr)

	// Round trip through the scanner form.
	ts := timeScanner{backend: schema.SQLiteBackend}
	ts.str.String, ts.str.Valid = wholeStr, true
	parsed, err := ts.value()
	require.NoError(t, err)
	assert.True(t, parsed.Equal(whole))
}

func TestQueryCommitsFractionalBounds(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// A whole-second commit against fractional bounds. Variable-width
	// fractions would sort the stored string after both bounds.
	at := time.Date(2024, 3, 5, 10, 0, 11, 0, time.UTC)
	seedCommits(t, s, []schema.Commit{
		testCommit("alpha", "b1", "Alice", "alice@x.io", at),
	})

	commits, err := s.QueryCommits(ctx, schema.CommitFilter{
		Start: at.Add(-500 * time.Millisecond),
		End:   at.Add(500 * time.Millisecond),
	})
	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, "b1", commits[0].Hash)

	commits, err = s.QueryCommits(ctx, schema.CommitFilter{
		End: at.Add(-500 * time.Millisecond),
	})
	require.NoError(t, err)
	assert.Empty(t, commits)
}

func TestUpsertRepositoryIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertRepository(ctx, schema.RepositoryRef{Name: "omega", Path: "/tmp/omega"}))
	require.NoError(t, s.UpsertRepository(ctx, schema.RepositoryRef{Name: "alpha", Path: "/tmp/alpha"}))
	require.NoError(t, s.UpsertRepository(ctx, schema.RepositoryRef{Name: "alpha", Path: "/srv/alpha"}))

	repos, err := s.ListRepositories(ctx)
	require.NoError(t, err)
	require.Len(t, repos, 2)
	assert.Equal(t, "alpha", repos[0].Name)
	assert.Equal(t, "/srv/alpha", repos[0].Path)
	assert.Equal(t, "alpha", repos[0].ID)
	assert.Equal(t, "omega", repos[1].Name)
}

func TestUpsertCommitsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)

	batch := []schema.Commit{
		testCommit("alpha", "c1", "Alice", "alice@x.io", now),
		testCommit("alpha", "c2", "Bob", "bob@x.io", now.Add(-time.Hour)),
	}
	seedCommits(t, s, batch)
	seedCommits(t, s, batch) // replay must not duplicate

	commits, err := s.QueryCommits(ctx, schema.CommitFilter{})
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, "c1", commits[0].Hash)
	assert.Equal(t, "c2", commits[1].Hash)
	assert.True(t, commits[0].Timestamp.Equal(now))
}

func TestUpsertCommitsDefaultsBranch(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	c := testCommit("alpha", "c1", "Alice", "alice@x.io", time.Now())
	c.Branch = ""
	seedCommits(t, s, []schema.Commit{c})

	commits, err := s.QueryCommits(ctx, schema.CommitFilter{})
	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, schema.DefaultBranch, commits[0].Branch)
}

func TestQueryCommitsFilters(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)

	seedCommits(t, s, []schema.Commit{
		testCommit("alpha", "c1", "Alice", "alice@x.io", now),
		testCommit("alpha", "c2", "Bob", "bob@x.io", now.AddDate(0, 0, -3)),
		testCommit("beta", "c3", "Alice", "alice@x.io", now.AddDate(0, 0, -10)),
	})

	byRepo, err := s.QueryCommits(ctx, schema.CommitFilter{Repository: "beta"})
	require.NoError(t, err)
	require.Len(t, byRepo, 1)
	assert.Equal(t, "c3", byRepo[0].Hash)

	byAuthor, err := s.QueryCommits(ctx, schema.CommitFilter{AuthorEmail: "alice@x.io"})
	require.NoError(t, err)
	assert.Len(t, byAuthor, 2)

	byWindow, err := s.QueryCommits(ctx, schema.CommitFilter{
		Start: now.AddDate(0, 0, -5),
		End:   now,
	})
	require.NoError(t, err)
	require.Len(t, byWindow, 2)
	assert.Equal(t, "c1", byWindow[0].Hash)
	assert.Equal(t, "c2", byWindow[1].Hash)
}

func TestGeneralStats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Now()

	stats, err := s.GeneralStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalCommits)

	seedCommits(t, s, []schema.Commit{
		testCommit("alpha", "c1", "Alice", "alice@x.io", now),
		testCommit("alpha", "c2", "Bob", "bob@x.io", now),
		testCommit("beta", "c3", "Alice", "alice@x.io", now),
	})

	stats, err = s.GeneralStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalCommits)
	assert.Equal(t, 2, stats.TotalAuthors)
	assert.Equal(t, 2, stats.TotalRepositories)
	assert.Equal(t, 6, stats.TotalFilesChanged)
	assert.Equal(t, 30, stats.TotalInsertions)
	assert.Equal(t, 12, stats.TotalDeletions)
}

func TestTopAuthors(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Now()

	seedCommits(t, s, []schema.Commit{
		testCommit("alpha", "c1", "Alice", "alice@x.io", now),
		testCommit("alpha", "c2", "Alice", "alice@x.io", now),
		testCommit("beta", "c3", "Bob", "bob@x.io", now),
	})

	authors, err := s.TopAuthors(ctx, 10)
	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.Equal(t, "alice@x.io", authors[0].Email)
	assert.Equal(t, 2, authors[0].Commits)
	assert.Equal(t, 20, authors[0].Insertions)
	assert.Equal(t, "bob@x.io", authors[1].Email)

	limited, err := s.TopAuthors(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestCommitsByDay(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	seedCommits(t, s, []schema.Commit{
		testCommit("alpha", "c1", "Alice", "alice@x.io", now),
		testCommit("alpha", "c2", "Bob", "bob@x.io", now),
		testCommit("alpha", "c3", "Alice", "alice@x.io", now.AddDate(0, 0, -1)),
		testCommit("alpha", "c4", "Alice", "alice@x.io", now.AddDate(0, 0, -60)), // outside range
	})

	days, err := s.CommitsByDay(ctx, 30)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, now.Format("2006-01-02"), days[0].Day)
	assert.Equal(t, 2, days[0].Commits)
	assert.Equal(t, 2, days[0].Authors)
	assert.Equal(t, 1, days[1].Commits)
}

func TestBranchStats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)

	feature := testCommit("alpha", "c3", "Bob", "bob@x.io", now)
	feature.Branch = "feature/login"
	seedCommits(t, s, []schema.Commit{
		testCommit("alpha", "c1", "Alice", "alice@x.io", now.Add(-2*time.Hour)),
		testCommit("alpha", "c2", "Bob", "bob@x.io", now.Add(-time.Hour)),
		feature,
	})

	stats, err := s.BranchStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "feature/login", stats[0].Branch)
	assert.True(t, stats[0].LastActivity.Equal(now))
	assert.Equal(t, "main", stats[1].Branch)
	assert.Equal(t, 2, stats[1].TotalCommits)
	assert.Equal(t, 2, stats[1].TotalAuthors)
}

func TestAuthorsByBranch(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)

	seedCommits(t, s, []schema.Commit{
		testCommit("alpha", "c1", "Alice", "alice@x.io", now.Add(-time.Hour)),
		testCommit("alpha", "c2", "Alice", "alice@x.io", now),
		testCommit("alpha", "c3", "Bob", "bob@x.io", now),
		testCommit("beta", "c4", "Carol", "carol@x.io", now),
	})

	authors, err := s.AuthorsByBranch(ctx, "alpha", "main")
	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.Equal(t, "alice@x.io", authors[0].Email)
	assert.Equal(t, 2, authors[0].Commits)
	assert.True(t, authors[0].LastCommit.Equal(now))
	assert.Equal(t, "bob@x.io", authors[1].Email)
}

func TestDeveloperActivities(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Now()

	latest := testCommit("beta", "c3", "Alice", "alice@x.io", now.Add(-time.Minute))
	latest.Message = "latest fix"
	seedCommits(t, s, []schema.Commit{
		testCommit("alpha", "c1", "Alice", "alice@x.io", now.AddDate(0, 0, -20)),
		testCommit("alpha", "c2", "Alice", "alice@x.io", now.Add(-2*time.Minute)),
		latest,
		testCommit("alpha", "c4", "Bob", "bob@x.io", now.AddDate(0, 0, -30)),
	})

	activities, err := s.DeveloperActivities(ctx)
	require.NoError(t, err)
	require.Len(t, activities, 2)

	alice := activities[0]
	assert.Equal(t, "alice@x.io", alice.Email)
	assert.Equal(t, "latest fix", alice.LastCommitMessage)
	assert.Equal(t, "beta", alice.LastRepository)
	assert.Equal(t, "main", alice.LastBranch)
	assert.Equal(t, 2, alice.CommitsToday)
	assert.Equal(t, 2, alice.CommitsThisWeek)

	bob := activities[1]
	assert.Equal(t, "bob@x.io", bob.Email)
	assert.Zero(t, bob.CommitsToday)
}

func TestDeleteRepositoryCascades(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.UpsertRepository(ctx, schema.RepositoryRef{Name: "alpha", Path: "/tmp/alpha"}))
	require.NoError(t, s.UpsertRepository(ctx, schema.RepositoryRef{Name: "beta", Path: "/tmp/beta"}))
	seedCommits(t, s, []schema.Commit{
		testCommit("alpha", "c1", "Alice", "alice@x.io", now),
		testCommit("beta", "c2", "Bob", "bob@x.io", now),
	})

	require.NoError(t, s.DeleteRepository(ctx, "alpha"))

	repos, err := s.ListRepositories(ctx)
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, "beta", repos[0].Name)

	commits, err := s.QueryCommits(ctx, schema.CommitFilter{})
	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, "c2", commits[0].Hash)
}

func TestStatusAndClear(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	oldest := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newest := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.UpsertRepository(ctx, schema.RepositoryRef{Name: "alpha", Path: "/tmp/alpha"}))
	seedCommits(t, s, []schema.Commit{
		testCommit("alpha", "c1", "Alice", "alice@x.io", oldest),
		testCommit("alpha", "c2", "Alice", "alice@x.io", newest),
	})

	status, err := s.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 1, status.TotalRepositories)
	assert.Equal(t, 2, status.TotalCommits)
	assert.True(t, status.LastCommitTime.Equal(newest))
	assert.True(t, status.OldestCommitTime.Equal(oldest))

	require.NoError(t, s.Clear(ctx))
	status, err = s.Status(ctx)
	require.NoError(t, err)
	assert.Zero(t, status.TotalRepositories)
	assert.Zero(t, status.TotalCommits)
}
