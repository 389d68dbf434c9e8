package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openBareDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "bare.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDemoRecords_Deterministic(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	records := demoRecords(now)

	require.Len(t, records, demoRecordCount)
	assert.Equal(t, demoRecords(now), records)

	for i, r := range records {
		assert.Equal(t, int64(i%7+1), r.NumVisits, "visits of record %d", i)
		assert.Equal(t, now.Unix()-int64(i)*3600, r.LastVisitedTime)
	}
	assert.Equal(t, "en-us", records[0].Locale)
	assert.Equal(t, "zh-cn", records[1].Locale)
	assert.Equal(t, "https://example.com/page0", records[0].URL)
	assert.Equal(t, "https://docs.example.org/page1", records[1].URL)
}

func TestEnsureDemoData_FreshDB(t *testing.T) {
	db := openBareDB(t)

	require.NoError(t, ensureDemoData(testCtx(), db))

	exists, err := hasHistoryTable(testCtx(), db)
	require.NoError(t, err)
	assert.True(t, exists)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM navigation_history").Scan(&count))
	assert.Equal(t, demoRecordCount, count)

	var index string
	err = db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type = 'index' AND name = 'idx_nav_last_time'",
	).Scan(&index)
	require.NoError(t, err)
}

func TestEnsureDemoData_ExistingTableUntouched(t *testing.T) {
	db := openBareDB(t)
	require.NoError(t, ensureDemoData(testCtx(), db))

	_, err := db.Exec("DELETE FROM navigation_history WHERE num_visits > 3")
	require.NoError(t, err)

	var before int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM navigation_history").Scan(&before))

	require.NoError(t, ensureDemoData(testCtx(), db))

	var after int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM navigation_history").Scan(&after))
	assert.Equal(t, before, after, "an existing table must not be reseeded")
}

func TestHasHistoryTable_Empty(t *testing.T) {
	exists, err := hasHistoryTable(testCtx(), openBareDB(t))
	require.NoError(t, err)
	assert.False(t, exists)
}
