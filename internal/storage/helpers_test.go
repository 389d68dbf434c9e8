package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func testCtx() context.Context {
	return context.Background()
}

// staticPath is a PathSource with a fixed configured path.
type staticPath string

func (p staticPath) DBPath() string { return string(p) }

// openDemoManager returns a manager that will bootstrap a fresh demo
// database in a temp dir on first access.
func openDemoManager(t *testing.T) *ConnManager {
	t.Helper()
	m := NewConnManager(staticPath(""), filepath.Join(t.TempDir(), "data", "history_demo.db"))
	t.Cleanup(func() { m.Close() })
	return m
}

// openHistoryStore writes records into a new database file and returns a
// store configured to read it.
func openHistoryStore(t *testing.T, records []HistoryRecord) (*SQLiteStore, *ConnManager) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	writeHistoryDB(t, path, records)

	m := NewConnManager(staticPath(path), filepath.Join(t.TempDir(), "unused.db"))
	t.Cleanup(func() { m.Close() })
	return NewSQLiteStore(m), m
}

// writeHistoryDB creates a navigation_history database at path. Empty
// optional fields are stored as NULL.
func writeHistoryDB(t *testing.T, path string, records []HistoryRecord) {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	for _, stmt := range demoSchema {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	for _, r := range records {
		_, err := db.Exec(`INSERT INTO navigation_history
			(url, title, last_visited_time, num_visits, locale, product_entity_id)
			VALUES (?, ?, ?, ?, ?, ?)`,
			r.URL, nullIfEmpty(r.Title), r.LastVisitedTime, r.NumVisits,
			nullIfEmpty(r.Locale), nullIfEmpty(r.EntityTag),
		)
		require.NoError(t, err)
	}
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// syntheticRecords builds n records one hour apart ending at now, with
// visit counts cycling 1..7 over five hosts.
func syntheticRecords(now time.Time, n int) []HistoryRecord {
	records := make([]HistoryRecord, n)
	for i := range records {
		locale := "en-us"
		if i%2 == 1 {
			locale = "zh-cn"
		}
		records[i] = HistoryRecord{
			URL:             fmt.Sprintf("https://site%d.test/page%d", i%5, i),
			Title:           fmt.Sprintf("Page %d", i),
			LastVisitedTime: now.Unix() - int64(i)*3600,
			NumVisits:       int64(i%7 + 1),
			Locale:          locale,
		}
	}
	return records
}

func countRows(t *testing.T, m *ConnManager) int64 {
	t.Helper()
	var n int64
	err := m.WithHandle(testCtx(), func(h *Handle) error {
		return h.QueryRowContext(testCtx(), "SELECT COUNT(*) FROM navigation_history").Scan(&n)
	})
	require.NoError(t, err)
	return n
}
