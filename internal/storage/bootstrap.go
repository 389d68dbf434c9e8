package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/runnerr0/histscope/internal/logging"
)

// historyTable is the table every query reads.
const historyTable = "navigation_history"

// demoRecordCount is the number of rows seeded into the demo database.
const demoRecordCount = 50

// demoHosts rotate across the seeded URLs so the overview has several sites.
var demoHosts = []string{
	"example.com",
	"docs.example.org",
	"news.example.net",
	"shop.example.io",
	"blog.example.dev",
}

// demoSchema creates navigation_history with the column layout of the
// browser export the tool reads.
var demoSchema = []string{
	`CREATE TABLE IF NOT EXISTS navigation_history (
		url               TEXT PRIMARY KEY,
		id                INTEGER,
		title             TEXT,
		metadata          TEXT,
		last_visited_time INTEGER NOT NULL DEFAULT 0,
		num_visits        INTEGER NOT NULL DEFAULT 1,
		product_entity_id TEXT,
		locale            TEXT,
		titledata         TEXT,
		urldata           TEXT,
		page_profile      TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_nav_last_time ON navigation_history(last_visited_time DESC)`,
}

// ensureDemoData creates and seeds navigation_history when the demo
// database does not have it yet. User-supplied databases never get here.
func ensureDemoData(ctx context.Context, db *sql.DB) error {
	exists, err := hasHistoryTable(ctx, db)
	if err != nil {
		return fmt.Errorf("check schema: %w", err)
	}
	if exists {
		return nil
	}

	if err := bootstrapDemo(ctx, db, time.Now()); err != nil {
		return err
	}

	logging.FromContext(ctx).Info().Int("records", demoRecordCount).Msg("demo database seeded")
	return nil
}

func hasHistoryTable(ctx context.Context, db *sql.DB) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", historyTable,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// bootstrapDemo creates the schema and inserts the sample rows in one
// transaction.
func bootstrapDemo(ctx context.Context, db *sql.DB, now time.Time) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, stmt := range demoSchema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	insert, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO navigation_history
			(url, id, title, last_visited_time, num_visits, product_entity_id, locale)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare seed insert: %w", err)
	}
	defer insert.Close()

	for i, r := range demoRecords(now) {
		if _, err := insert.ExecContext(ctx,
			r.URL, i, r.Title, r.LastVisitedTime, r.NumVisits, r.EntityTag, r.Locale,
		); err != nil {
			return fmt.Errorf("seed record %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// demoRecords returns the deterministic sample rows: one hour apart,
// visit counts cycling 1..7, locales alternating.
func demoRecords(now time.Time) []HistoryRecord {
	records := make([]HistoryRecord, demoRecordCount)
	for i := range records {
		locale := "en-us"
		if i%2 == 1 {
			locale = "zh-cn"
		}
		host := demoHosts[i%len(demoHosts)]
		records[i] = HistoryRecord{
			URL:             fmt.Sprintf("https://%s/page%d", host, i),
			Title:           fmt.Sprintf("Sample page %d", i),
			LastVisitedTime: now.Unix() - int64(i)*3600,
			NumVisits:       int64(i%7 + 1),
			Locale:          locale,
			EntityTag:       fmt.Sprintf("entity-%d", i%4),
		}
	}
	return records
}
