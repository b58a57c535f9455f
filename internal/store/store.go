// Package store persists repositories and commits across gitpulse runs.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"  // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib"  // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"     // SQLite driver

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
)

// Table names for commit storage.
const (
	repositoriesTable = "gitpulse_repositories"
	commitsTable      = "gitpulse_commits"
)

// SQLStore implements the Store interface on top of database/sql.
type SQLStore struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.Store = &SQLStore{} // Compile-time check

// Open connects to the configured backend and migrates the schema to the
// latest version. The none backend yields a connected no-op store so callers
// never branch on persistence being disabled.
func Open(backend schema.DatabaseBackend, connStr string) (*SQLStore, error) {
	if backend == schema.NoneBackend {
		return &SQLStore{db: nil, backend: backend}, nil
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Check that the database file path is writable."
		}
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}

	if err := migrateUp(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &SQLStore{db: db, backend: backend}, nil
}

// openDB resolves driver name and DSN per backend.
func openDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, error) {
	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetDBFilePath()
		}
		db, err := sql.Open("sqlite3", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
		return db, nil

	case schema.MySQLBackend:
		// parseTime makes DATETIME columns scan into time.Time.
		if !strings.Contains(connStr, "parseTime") {
			if strings.Contains(connStr, "?") {
				connStr += "&parseTime=true"
			} else {
				connStr += "?parseTime=true"
			}
		}
		db, err := sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}
		return db, nil

	case schema.PostgreSQLBackend:
		db, err := sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=... dbname=...", err)
		}
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}
}

// disabled reports whether persistence is turned off.
func (s *SQLStore) disabled() bool {
	return s.backend == schema.NoneBackend || s.db == nil
}

// rebind rewrites ? placeholders into the $N form PostgreSQL expects.
// SQLite and MySQL take the query unchanged.
func (s *SQLStore) rebind(query string) string {
	if s.backend != schema.PostgreSQLBackend {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// sqliteTimeFormat is RFC3339 with a fixed-width fractional part. RFC3339Nano
// drops trailing zeros, which breaks lexicographic comparison between
// whole-second and fractional values.
const sqliteTimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// timeArg converts a timestamp for storage. SQLite has no datetime type, so
// times are kept as fixed-width RFC3339 strings in UTC; lexicographic order
// then matches chronological order.
func (s *SQLStore) timeArg(t time.Time) any {
	if s.backend == schema.SQLiteBackend {
		return t.UTC().Format(sqliteTimeFormat)
	}
	return t.UTC()
}

// timeScanner adapts timestamp columns across backends: SQLite yields
// strings, MySQL and PostgreSQL yield native time values.
type timeScanner struct {
	backend schema.DatabaseBackend
	str     sql.NullString
	tm      sql.NullTime
}

func (ts *timeScanner) dest() any {
	if ts.backend == schema.SQLiteBackend {
		return &ts.str
	}
	return &ts.tm
}

func (ts *timeScanner) value() (time.Time, error) {
	if ts.backend == schema.SQLiteBackend {
		if !ts.str.Valid || ts.str.String == "" {
			return time.Time{}, nil
		}
		return time.Parse(time.RFC3339Nano, ts.str.String)
	}
	if !ts.tm.Valid {
		return time.Time{}, nil
	}
	return ts.tm.Time, nil
}

// Status implements the Store interface.
func (s *SQLStore) Status(ctx context.Context) (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   string(s.backend),
		Connected: !s.disabled(),
	}
	if s.disabled() {
		return status, nil
	}

	row := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+repositoriesTable)
	if err := row.Scan(&status.TotalRepositories); err != nil {
		return status, &contract.PersistenceError{Op: "Status", Err: err}
	}

	row = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+commitsTable)
	if err := row.Scan(&status.TotalCommits); err != nil {
		return status, &contract.PersistenceError{Op: "Status", Err: err}
	}

	if status.TotalCommits > 0 {
		last := &timeScanner{backend: s.backend}
		oldest := &timeScanner{backend: s.backend}
		row = s.db.QueryRowContext(ctx,
			"SELECT MAX(commit_time), MIN(commit_time) FROM "+commitsTable)
		if err := row.Scan(last.dest(), oldest.dest()); err != nil {
			return status, &contract.PersistenceError{Op: "Status", Err: err}
		}
		var err error
		if status.LastCommitTime, err = last.value(); err != nil {
			return status, &contract.PersistenceError{Op: "Status", Err: err}
		}
		if status.OldestCommitTime, err = oldest.value(); err != nil {
			return status, &contract.PersistenceError{Op: "Status", Err: err}
		}
	}

	return status, nil
}

// Clear implements the Store interface.
func (s *SQLStore) Clear(ctx context.Context) error {
	if s.disabled() {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &contract.PersistenceError{Op: "Clear", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+commitsTable); err != nil {
		return &contract.PersistenceError{Op: "Clear", Err: err}
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+repositoriesTable); err != nil {
		return &contract.PersistenceError{Op: "Clear", Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &contract.PersistenceError{Op: "Clear", Err: err}
	}
	return nil
}

// Close implements the Store interface.
func (s *SQLStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
