package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
)

// commitColumns is the scan/insert column order shared by commit queries.
const commitColumns = "repository_name, hash, author_name, author_email, commit_time, message, branch, files_changed, insertions, deletions"

// UpsertCommits implements the Store interface. The whole batch commits in
// one transaction; replaying a batch overwrites rows in place, so a sync is
// idempotent.
func (s *SQLStore) UpsertCommits(ctx context.Context, commits []schema.Commit) error {
	if s.disabled() || len(commits) == 0 {
		return nil
	}

	var query string
	switch s.backend {
	case schema.MySQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE
				author_name = VALUES(author_name),
				author_email = VALUES(author_email),
				commit_time = VALUES(commit_time),
				message = VALUES(message),
				branch = VALUES(branch),
				files_changed = VALUES(files_changed),
				insertions = VALUES(insertions),
				deletions = VALUES(deletions)
		`, commitsTable, commitColumns)
	default: // SQLite and PostgreSQL
		query = fmt.Sprintf(`
			INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (repository_name, hash) DO UPDATE SET
				author_name = excluded.author_name,
				author_email = excluded.author_email,
				commit_time = excluded.commit_time,
				message = excluded.message,
				branch = excluded.branch,
				files_changed = excluded.files_changed,
				insertions = excluded.insertions,
				deletions = excluded.deletions
		`, commitsTable, commitColumns)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &contract.PersistenceError{Op: "UpsertCommits", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, s.rebind(query))
	if err != nil {
		return &contract.PersistenceError{Op: "UpsertCommits", Err: err}
	}
	defer func() { _ = stmt.Close() }()

	for _, c := range commits {
		branch := c.Branch
		if branch == "" {
			branch = schema.DefaultBranch
		}
		_, err := stmt.ExecContext(ctx,
			c.Repository, c.Hash, c.AuthorName, c.AuthorEmail, s.timeArg(c.Timestamp),
			c.Message, branch, c.FilesChanged, c.Insertions, c.Deletions)
		if err != nil {
			return &contract.PersistenceError{Op: "UpsertCommits", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &contract.PersistenceError{Op: "UpsertCommits", Err: err}
	}
	return nil
}

// QueryCommits implements the Store interface.
func (s *SQLStore) QueryCommits(ctx context.Context, filter schema.CommitFilter) ([]schema.Commit, error) {
	if s.disabled() {
		return nil, nil
	}

	var conds []string
	var args []any
	if !filter.Start.IsZero() {
		conds = append(conds, "commit_time >= ?")
		args = append(args, s.timeArg(filter.Start))
	}
	if !filter.End.IsZero() {
		conds = append(conds, "commit_time <= ?")
		args = append(args, s.timeArg(filter.End))
	}
	if filter.AuthorEmail != "" {
		conds = append(conds, "author_email = ?")
		args = append(args, filter.AuthorEmail)
	}
	if filter.Repository != "" {
		conds = append(conds, "repository_name = ?")
		args = append(args, filter.Repository)
	}

	query := fmt.Sprintf("SELECT %s FROM %s", commitColumns, commitsTable)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY commit_time DESC, hash"

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, &contract.PersistenceError{Op: "QueryCommits", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var commits []schema.Commit
	for rows.Next() {
		var c schema.Commit
		ts := &timeScanner{backend: s.backend}
		err := rows.Scan(&c.Repository, &c.Hash, &c.AuthorName, &c.AuthorEmail, ts.dest(),
			&c.Message, &c.Branch, &c.FilesChanged, &c.Insertions, &c.Deletions)
		if err != nil {
			return nil, &contract.PersistenceError{Op: "QueryCommits", Err: err}
		}
		if c.Timestamp, err = ts.value(); err != nil {
			return nil, &contract.PersistenceError{Op: "QueryCommits", Err: err}
		}
		commits = append(commits, c)
	}
	if err := rows.Err(); err != nil {
		return nil, &contract.PersistenceError{Op: "QueryCommits", Err: err}
	}
	return commits, nil
}
