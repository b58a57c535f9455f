package store

import (
	"context"
	"fmt"
	"time"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
)

// UpsertRepository implements the Store interface.
func (s *SQLStore) UpsertRepository(ctx context.Context, repo schema.RepositoryRef) error {
	if s.disabled() {
		return nil
	}

	var query string
	switch s.backend {
	case schema.MySQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (name, path, created_at) VALUES (?, ?, ?)
			ON DUPLICATE KEY UPDATE path = VALUES(path)
		`, repositoriesTable)
	default: // SQLite and PostgreSQL
		query = fmt.Sprintf(`
			INSERT INTO %s (name, path, created_at) VALUES (?, ?, ?)
			ON CONFLICT (name) DO UPDATE SET path = excluded.path
		`, repositoriesTable)
	}

	_, err := s.db.ExecContext(ctx, s.rebind(query), repo.Name, repo.Path, s.timeArg(time.Now()))
	if err != nil {
		return &contract.PersistenceError{Op: "UpsertRepository", Err: err}
	}
	return nil
}

// ListRepositories implements the Store interface.
func (s *SQLStore) ListRepositories(ctx context.Context) ([]schema.RepositoryRef, error) {
	if s.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT name, path FROM %s ORDER BY name", repositoriesTable)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &contract.PersistenceError{Op: "ListRepositories", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var repos []schema.RepositoryRef
	for rows.Next() {
		var r schema.RepositoryRef
		if err := rows.Scan(&r.Name, &r.Path); err != nil {
			return nil, &contract.PersistenceError{Op: "ListRepositories", Err: err}
		}
		r.ID = r.Name
		repos = append(repos, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &contract.PersistenceError{Op: "ListRepositories", Err: err}
	}
	return repos, nil
}

// DeleteRepository implements the Store interface. The delete cascades to
// the repository's commits inside one transaction.
func (s *SQLStore) DeleteRepository(ctx context.Context, name string) error {
	if s.disabled() {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &contract.PersistenceError{Op: "DeleteRepository", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	commitsQuery := fmt.Sprintf("DELETE FROM %s WHERE repository_name = ?", commitsTable)
	if _, err := tx.ExecContext(ctx, s.rebind(commitsQuery), name); err != nil {
		return &contract.PersistenceError{Op: "DeleteRepository", Err: err}
	}
	repoQuery := fmt.Sprintf("DELETE FROM %s WHERE name = ?", repositoriesTable)
	if _, err := tx.ExecContext(ctx, s.rebind(repoQuery), name); err != nil {
		return &contract.PersistenceError{Op: "DeleteRepository", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &contract.PersistenceError{Op: "DeleteRepository", Err: err}
	}
	return nil
}
