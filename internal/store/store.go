package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"entgo.io/ent/dialect"

	// Postgres driver registered as "pgx".
	_ "github.com/jackc/pgx/v5/stdlib"
	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Driver selects the database backend.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// ParseDriver accepts "sqlite" (default when empty), "postgres" or "pgx".
func ParseDriver(v string) (Driver, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "sqlite", "sqlite3":
		return DriverSQLite, nil
	case "postgres", "postgresql", "pgx":
		return DriverPostgres, nil
	}
	return "", fmt.Errorf("unsupported database driver %q", v)
}

// Store owns the database handle and hands out repositories.
type Store struct {
	db      *sql.DB
	driver  Driver
	dialect string
	seq     *sequenceCounter
}

// Open creates a Store backed by the SQLite database at dsn.
func Open(dsn string) (*Store, error) {
	return OpenDriver(context.Background(), DriverSQLite, dsn)
}

// OpenDriver connects to the given backend, applies SQLite pragmas when
// relevant, and creates the event tables if they do not exist.
func OpenDriver(ctx context.Context, driver Driver, dsn string) (*Store, error) {
	var drvName, dial string
	switch driver {
	case DriverSQLite:
		drvName, dial = "sqlite", dialect.SQLite
	case DriverPostgres:
		drvName, dial = "pgx", dialect.Postgres
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if driver == DriverSQLite {
		if err := applyPragmas(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragmas: %w", err)
		}
	}

	if err := migrate(ctx, db, driver); err != nil {
		db.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	seq, err := newSequenceCounter(ctx, db, driver)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, driver: driver, dialect: dial, seq: seq}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Driver reports the backend in use.
func (s *Store) Driver() Driver {
	return s.driver
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db, dialect: s.dialect, seq: s.seq}
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func migrate(ctx context.Context, db *sql.DB, driver Driver) error {
	stmts := schemaSQLite
	if driver == DriverPostgres {
		stmts = schemaPostgres
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

var schemaSQLite = []string{
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success BOOLEAN NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS session_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		parent_id TEXT NOT NULL DEFAULT '',
		action TEXT NOT NULL,
		subjects TEXT NOT NULL DEFAULT '',
		questions INTEGER NOT NULL DEFAULT 0,
		answered INTEGER NOT NULL DEFAULT 0,
		correct_answers INTEGER NOT NULL DEFAULT 0,
		net_score REAL NOT NULL DEFAULT 0,
		duration_secs INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_session_events_session ON session_events (session_id)`,
	`CREATE INDEX IF NOT EXISTS idx_llm_request_events_purpose ON llm_request_events (purpose)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_llm_request_events_sequence ON llm_request_events (sequence)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_session_events_sequence ON session_events (sequence)`,
}

var schemaPostgres = []string{
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id BIGSERIAL PRIMARY KEY,
		sequence BIGINT NOT NULL,
		created_at BIGINT NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms BIGINT NOT NULL DEFAULT 0,
		success BOOLEAN NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS session_events (
		id BIGSERIAL PRIMARY KEY,
		sequence BIGINT NOT NULL,
		created_at BIGINT NOT NULL,
		session_id TEXT NOT NULL,
		parent_id TEXT NOT NULL DEFAULT '',
		action TEXT NOT NULL,
		subjects TEXT NOT NULL DEFAULT '',
		questions INTEGER NOT NULL DEFAULT 0,
		answered INTEGER NOT NULL DEFAULT 0,
		correct_answers INTEGER NOT NULL DEFAULT 0,
		net_score DOUBLE PRECISION NOT NULL DEFAULT 0,
		duration_secs INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_session_events_session ON session_events (session_id)`,
	`CREATE INDEX IF NOT EXISTS idx_llm_request_events_purpose ON llm_request_events (purpose)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_llm_request_events_sequence ON llm_request_events (sequence)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_session_events_sequence ON session_events (sequence)`,
}

// DefaultDBPath resolves the database file path in priority order:
// 1. SIMULADO_DB environment variable
// 2. $XDG_DATA_HOME/simulado/simulado.db
// 3. ~/.local/share/simulado/simulado.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("SIMULADO_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "simulado", "simulado.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
