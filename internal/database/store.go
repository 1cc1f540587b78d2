package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"           // Postgres driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"blog-go/internal/blog"
	"blog-go/internal/database/migrations"
)

// queries holds the dialect-specific statements for the kv table.
type queries struct {
	get    string
	upsert string
	delete string
}

var sqliteQueries = queries{
	get: `SELECT value FROM kv WHERE key = ?`,
	upsert: `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
	delete: `DELETE FROM kv WHERE key = ?`,
}

var postgresQueries = queries{
	get: `SELECT value FROM kv WHERE key = $1`,
	upsert: `INSERT INTO kv (key, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
	delete: `DELETE FROM kv WHERE key = $1`,
}

// SQLStore implements the KVStore interface on a single kv table.
type SQLStore struct {
	db      *sql.DB
	dialect migrations.Dialect
	q       queries
	timeout time.Duration
}

// NewSQLiteStore opens (creating if needed) the SQLite database at path and
// migrates it to the latest schema. path can be ":memory:".
func NewSQLiteStore(path string) (*SQLStore, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db, migrations.SQLite); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	return NewSQLiteStoreFromDB(db), nil
}

// NewSQLiteStoreFromDB wraps an existing database connection.
// The caller is responsible for ensuring the connection is properly configured
// and migrated.
func NewSQLiteStoreFromDB(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, dialect: migrations.SQLite, q: sqliteQueries}
}

// NewPostgresStore connects to Postgres using dsn and migrates the schema.
// Each statement is bounded by timeout.
func NewPostgresStore(dsn string, timeout time.Duration) (*SQLStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := migrations.MigrateUp(db, migrations.Postgres); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	return &SQLStore{db: db, dialect: migrations.Postgres, q: postgresQueries, timeout: timeout}, nil
}

// OpenConnection opens and configures a SQLite database connection.
// This is exported for use in tests that need a properly configured SQLite connection.
// path can be a file path or ":memory:" for in-memory database.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One writer at a time; this also keeps ":memory:" to a single database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return db, nil
}

func (s *SQLStore) context() (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.Background(), func() {}
	}
	return context.WithTimeout(context.Background(), s.timeout)
}

func (s *SQLStore) Get(key string) ([]byte, bool, error) {
	ctx, cancel := s.context()
	defer cancel()

	var value []byte
	err := s.db.QueryRowContext(ctx, s.q.get, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil // Not found
		}
		return nil, false, fmt.Errorf("reading key %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLStore) Set(key string, value []byte) error {
	ctx, cancel := s.context()
	defer cancel()

	if _, err := s.db.ExecContext(ctx, s.q.upsert, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(key string) error {
	ctx, cancel := s.context()
	defer cancel()

	if _, err := s.db.ExecContext(ctx, s.q.delete, key); err != nil {
		return fmt.Errorf("deleting key %q: %w", key, err)
	}
	return nil
}

// ValidateSetup verifies that the schema is at the latest migration.
func (s *SQLStore) ValidateSetup() error {
	return migrations.CheckDBMigrationStatus(s.db, s.dialect)
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

var _ blog.KVStore = (*SQLStore)(nil)
