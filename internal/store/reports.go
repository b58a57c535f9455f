package store

import (
	"context"
	"fmt"
	"time"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
)

// dayExpr returns the SQL expression extracting a yyyy-mm-dd day key from
// commit_time, per backend. SQLite stores RFC3339 strings, so a substring
// is enough; the others use their native date formatters.
func (s *SQLStore) dayExpr() string {
	switch s.backend {
	case schema.MySQLBackend:
		return "DATE_FORMAT(commit_time, '%Y-%m-%d')"
	case schema.PostgreSQLBackend:
		return "to_char(commit_time, 'YYYY-MM-DD')"
	default: // SQLite
		return "substr(commit_time, 1, 10)"
	}
}

// GeneralStats implements the Store interface.
func (s *SQLStore) GeneralStats(ctx context.Context) (schema.GeneralStats, error) {
	var stats schema.GeneralStats
	if s.disabled() {
		return stats, nil
	}

	query := fmt.Sprintf(`
		SELECT COUNT(*), COUNT(DISTINCT author_email), COUNT(DISTINCT repository_name),
		       COALESCE(SUM(files_changed), 0), COALESCE(SUM(insertions), 0), COALESCE(SUM(deletions), 0)
		FROM %s
	`, commitsTable)

	row := s.db.QueryRowContext(ctx, query)
	err := row.Scan(&stats.TotalCommits, &stats.TotalAuthors, &stats.TotalRepositories,
		&stats.TotalFilesChanged, &stats.TotalInsertions, &stats.TotalDeletions)
	if err != nil {
		return stats, &contract.PersistenceError{Op: "GeneralStats", Err: err}
	}
	return stats, nil
}

// TopAuthors implements the Store interface.
func (s *SQLStore) TopAuthors(ctx context.Context, limit int) ([]schema.AuthorTotals, error) {
	if s.disabled() {
		return nil, nil
	}
	if limit <= 0 {
		limit = contract.DefaultAuthorLimit
	}

	// MIN(author_name) keeps the row deterministic when one email carries
	// several display names.
	query := fmt.Sprintf(`
		SELECT MIN(author_name), author_email, COUNT(*),
		       COALESCE(SUM(files_changed), 0), COALESCE(SUM(insertions), 0), COALESCE(SUM(deletions), 0)
		FROM %s
		GROUP BY author_email
		ORDER BY COUNT(*) DESC, author_email
		LIMIT ?
	`, commitsTable)

	rows, err := s.db.QueryContext(ctx, s.rebind(query), limit)
	if err != nil {
		return nil, &contract.PersistenceError{Op: "TopAuthors", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var authors []schema.AuthorTotals
	for rows.Next() {
		var a schema.AuthorTotals
		if err := rows.Scan(&a.Name, &a.Email, &a.Commits, &a.Files, &a.Insertions, &a.Deletions); err != nil {
			return nil, &contract.PersistenceError{Op: "TopAuthors", Err: err}
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, &contract.PersistenceError{Op: "TopAuthors", Err: err}
	}
	return authors, nil
}

// CommitsByDay implements the Store interface.
func (s *SQLStore) CommitsByDay(ctx context.Context, days int) ([]schema.DayActivity, error) {
	if s.disabled() {
		return nil, nil
	}
	if days <= 0 {
		days = 30
	}

	query := fmt.Sprintf(`
		SELECT %[1]s, COUNT(*), COUNT(DISTINCT author_email)
		FROM %[2]s
		WHERE commit_time >= ?
		GROUP BY %[1]s
		ORDER BY %[1]s DESC
	`, s.dayExpr(), commitsTable)

	since := time.Now().AddDate(0, 0, -days)
	rows, err := s.db.QueryContext(ctx, s.rebind(query), s.timeArg(since))
	if err != nil {
		return nil, &contract.PersistenceError{Op: "CommitsByDay", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var activity []schema.DayActivity
	for rows.Next() {
		var d schema.DayActivity
		if err := rows.Scan(&d.Day, &d.Commits, &d.Authors); err != nil {
			return nil, &contract.PersistenceError{Op: "CommitsByDay", Err: err}
		}
		activity = append(activity, d)
	}
	if err := rows.Err(); err != nil {
		return nil, &contract.PersistenceError{Op: "CommitsByDay", Err: err}
	}
	return activity, nil
}

// BranchStats implements the Store interface.
func (s *SQLStore) BranchStats(ctx context.Context) ([]schema.BranchStats, error) {
	if s.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT branch, repository_name, COUNT(*), COUNT(DISTINCT author_email), MAX(commit_time)
		FROM %s
		GROUP BY repository_name, branch
		ORDER BY MAX(commit_time) DESC
	`, commitsTable)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &contract.PersistenceError{Op: "BranchStats", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var stats []schema.BranchStats
	for rows.Next() {
		var b schema.BranchStats
		ts := &timeScanner{backend: s.backend}
		if err := rows.Scan(&b.Branch, &b.Repository, &b.TotalCommits, &b.TotalAuthors, ts.dest()); err != nil {
			return nil, &contract.PersistenceError{Op: "BranchStats", Err: err}
		}
		var err error
		if b.LastActivity, err = ts.value(); err != nil {
			return nil, &contract.PersistenceError{Op: "BranchStats", Err: err}
		}
		stats = append(stats, b)
	}
	if err := rows.Err(); err != nil {
		return nil, &contract.PersistenceError{Op: "BranchStats", Err: err}
	}
	return stats, nil
}

// AuthorsByBranch implements the Store interface.
func (s *SQLStore) AuthorsByBranch(ctx context.Context, repository, branch string) ([]schema.BranchAuthor, error) {
	if s.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT MIN(author_name), author_email, COUNT(*), MAX(commit_time)
		FROM %s
		WHERE repository_name = ? AND branch = ?
		GROUP BY author_email
		ORDER BY COUNT(*) DESC, author_email
	`, commitsTable)

	rows, err := s.db.QueryContext(ctx, s.rebind(query), repository, branch)
	if err != nil {
		return nil, &contract.PersistenceError{Op: "AuthorsByBranch", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var authors []schema.BranchAuthor
	for rows.Next() {
		var a schema.BranchAuthor
		ts := &timeScanner{backend: s.backend}
		if err := rows.Scan(&a.Name, &a.Email, &a.Commits, ts.dest()); err != nil {
			return nil, &contract.PersistenceError{Op: "AuthorsByBranch", Err: err}
		}
		var err error
		if a.LastCommit, err = ts.value(); err != nil {
			return nil, &contract.PersistenceError{Op: "AuthorsByBranch", Err: err}
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, &contract.PersistenceError{Op: "AuthorsByBranch", Err: err}
	}
	return authors, nil
}

// DeveloperActivities implements the Store interface. Day boundaries are
// computed in Go and passed as parameters so the query stays portable
// across backends.
func (s *SQLStore) DeveloperActivities(ctx context.Context) ([]schema.DeveloperActivity, error) {
	if s.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT MIN(author_name), author_email, MAX(commit_time)
		FROM %s
		GROUP BY author_email
		ORDER BY MAX(commit_time) DESC
	`, commitsTable)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &contract.PersistenceError{Op: "DeveloperActivities", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var activities []schema.DeveloperActivity
	for rows.Next() {
		var a schema.DeveloperActivity
		ts := &timeScanner{backend: s.backend}
		if err := rows.Scan(&a.Name, &a.Email, ts.dest()); err != nil {
			return nil, &contract.PersistenceError{Op: "DeveloperActivities", Err: err}
		}
		var err error
		if a.LastActivity, err = ts.value(); err != nil {
			return nil, &contract.PersistenceError{Op: "DeveloperActivities", Err: err}
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, &contract.PersistenceError{Op: "DeveloperActivities", Err: err}
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfWeek := startOfDay.AddDate(0, 0, -((int(now.Weekday()) + 6) % 7)) // Monday

	for i := range activities {
		if err := s.fillDeveloperDetail(ctx, &activities[i], startOfDay, startOfWeek); err != nil {
			return nil, err
		}
	}
	return activities, nil
}

// fillDeveloperDetail loads one developer's latest commit context and
// today/this-week counters.
func (s *SQLStore) fillDeveloperDetail(ctx context.Context, a *schema.DeveloperActivity, startOfDay, startOfWeek time.Time) error {
	lastQuery := fmt.Sprintf(`
		SELECT message, repository_name, branch
		FROM %s
		WHERE author_email = ?
		ORDER BY commit_time DESC, hash
		LIMIT 1
	`, commitsTable)
	row := s.db.QueryRowContext(ctx, s.rebind(lastQuery), a.Email)
	if err := row.Scan(&a.LastCommitMessage, &a.LastRepository, &a.LastBranch); err != nil {
		return &contract.PersistenceError{Op: "DeveloperActivities", Err: err}
	}

	countQuery := fmt.Sprintf(`
		SELECT
			SUM(CASE WHEN commit_time >= ? THEN 1 ELSE 0 END),
			SUM(CASE WHEN commit_time >= ? THEN 1 ELSE 0 END)
		FROM %s
		WHERE author_email = ?
	`, commitsTable)
	row = s.db.QueryRowContext(ctx, s.rebind(countQuery), s.timeArg(startOfDay), s.timeArg(startOfWeek), a.Email)
	if err := row.Scan(&a.CommitsToday, &a.CommitsThisWeek); err != nil {
		return &contract.PersistenceError{Op: "DeveloperActivities", Err: err}
	}
	return nil
}
