package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/runnerr0/histscope/internal/apperr"
	"github.com/runnerr0/histscope/internal/logging"
)

// PathSource reports the database path recorded in the persisted config.
// An empty string means none is configured.
type PathSource interface {
	DBPath() string
}

// Handle is the live database connection. It is only handed out by
// ConnManager, and the underlying *sql.DB never leaves this package.
type Handle struct {
	db   *sql.DB
	path string
}

// Path returns the file this handle is open on.
func (h *Handle) Path() string { return h.path }

// QueryContext runs a query that returns rows.
func (h *Handle) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return h.db.QueryContext(ctx, query, args...)
}

// QueryRowContext runs a query that returns at most one row.
func (h *Handle) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return h.db.QueryRowContext(ctx, query, args...)
}

// ExecContext runs a statement without returning rows.
func (h *Handle) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return h.db.ExecContext(ctx, query, args...)
}

// ConnManager owns the single database handle of the process. The handle
// is opened lazily, can be pointed at another file with Reset, and every
// access happens under one mutex so a reset is an atomic switch for callers.
type ConnManager struct {
	paths    PathSource
	fallback string

	mu     sync.Mutex
	handle *Handle
}

// NewConnManager creates a manager that opens the configured path from
// paths, or fallbackPath when none is configured. Nothing is opened yet.
func NewConnManager(paths PathSource, fallbackPath string) *ConnManager {
	return &ConnManager{paths: paths, fallback: fallbackPath}
}

// Acquire returns the live handle, opening it first if necessary.
func (m *ConnManager) Acquire(ctx context.Context) (*Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.ensureLocked(ctx)
}

// WithHandle runs fn with the live handle while holding the access lock.
// The lock is released on every exit path, including a panic in fn.
func (m *ConnManager) WithHandle(ctx context.Context, fn func(h *Handle) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, err := m.ensureLocked(ctx)
	if err != nil {
		return err
	}
	return fn(h)
}

// Reset opens newPath and makes it the live handle, closing the previous
// one. If newPath cannot be opened the previous handle stays in place.
func (m *ConnManager) Reset(ctx context.Context, newPath string) error {
	log := logging.FromContext(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := os.Stat(newPath); err != nil {
		return apperr.Connection(err, "database file unavailable")
	}

	h, err := openHandle(ctx, newPath)
	if err != nil {
		return apperr.Connection(err, fmt.Sprintf("open database %s", newPath))
	}

	if m.handle != nil {
		if err := m.handle.db.Close(); err != nil {
			log.Warn().Err(err).Str("path", m.handle.path).Msg("closing previous database failed")
		}
	}
	m.handle = h

	log.Info().Str("path", newPath).Msg("database connection reset")
	return nil
}

// Close closes the live handle. The next Acquire reopens the configured path.
func (m *ConnManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.handle == nil {
		return nil
	}
	err := m.handle.db.Close()
	m.handle = nil
	return err
}

// IsOpen reports whether a handle is currently live.
func (m *ConnManager) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.handle != nil
}

// OpenPath returns the file the live handle is open on, or "" when no
// handle is open. It never opens one.
func (m *ConnManager) OpenPath() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.handle == nil {
		return ""
	}
	return m.handle.path
}

func (m *ConnManager) ensureLocked(ctx context.Context) (*Handle, error) {
	if m.handle != nil {
		return m.handle, nil
	}

	log := logging.FromContext(ctx)
	path, isFallback := m.resolvePath(ctx)

	if isFallback {
		const dataDirPerm = 0o750
		if err := os.MkdirAll(filepath.Dir(path), dataDirPerm); err != nil {
			return nil, apperr.Connection(err, "create data directory")
		}
	}

	h, err := openHandle(ctx, path)
	if err != nil {
		return nil, apperr.Connection(err, fmt.Sprintf("open database %s", path))
	}

	if isFallback {
		if err := ensureDemoData(ctx, h.db); err != nil {
			_ = h.db.Close()
			return nil, apperr.Connection(err, "bootstrap demo database")
		}
	}

	m.handle = h
	log.Info().Str("path", path).Bool("fallback", isFallback).Msg("database connection established")
	return h, nil
}

// resolvePath picks the configured path when it names an existing regular
// file, else the fallback.
func (m *ConnManager) resolvePath(ctx context.Context) (string, bool) {
	if m.paths == nil {
		return m.fallback, true
	}

	configured := m.paths.DBPath()
	if configured == "" {
		return m.fallback, true
	}

	info, err := os.Stat(configured)
	if err == nil && info.Mode().IsRegular() {
		return configured, false
	}

	logging.FromContext(ctx).Warn().
		Str("path", configured).
		Err(err).
		Msg("configured database is not usable, using fallback")
	return m.fallback, true
}

// openHandle opens path with a single pooled connection and verifies that
// it is a readable SQLite database.
func openHandle(ctx context.Context, path string) (*Handle, error) {
	if path == "" {
		return nil, errors.New("database path cannot be empty")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	configurePool(db)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// Reading the schema catches files that are not databases at all.
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master").Scan(&n); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("read schema: %w", err)
	}

	applyPragmas(ctx, db)

	return &Handle{db: db, path: path}, nil
}

// applyPragmas sets WAL journaling and relaxed sync. Both are performance
// hints; failures are logged and ignored.
func applyPragmas(ctx context.Context, db *sql.DB) {
	log := logging.FromContext(ctx)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			log.Warn().Err(err).Str("pragma", pragma).Msg("pragma not applied")
		}
	}
}

// configurePool pins the pool to one connection so the process holds
// exactly one logical connection to the file.
func configurePool(db *sql.DB) {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)
}
