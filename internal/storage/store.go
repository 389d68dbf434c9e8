package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/runnerr0/histscope/internal/apperr"
)

// MaxPageSize bounds a single page of history.
const MaxPageSize = 500

const selectHistory = `SELECT url, title, last_visited_time, num_visits, locale, product_entity_id FROM navigation_history`

// Store defines the read operations over navigation history.
type Store interface {
	ListHistory(ctx context.Context, plan Plan, page, pageSize int) (*Page, error)
	Overview(ctx context.Context, timeRange string, topN int) (*OverviewStats, error)
}

// SQLiteStore implements Store on the handle owned by a ConnManager.
type SQLiteStore struct {
	conns *ConnManager
	now   func() time.Time
}

// NewSQLiteStore creates a store reading through conns.
func NewSQLiteStore(conns *ConnManager) *SQLiteStore {
	return &SQLiteStore{conns: conns, now: time.Now}
}

// ListHistory returns one page of records matching plan and the total
// number of matches. The page query and the count query share the same
// predicates and run back to back under the handle lock, without a
// transaction.
func (s *SQLiteStore) ListHistory(ctx context.Context, plan Plan, page, pageSize int) (*Page, error) {
	if pageSize < 1 || pageSize > MaxPageSize {
		return nil, apperr.Invalidf("page_size out of range: %d (must be 1-%d)", pageSize, MaxPageSize)
	}
	if page < 1 {
		page = 1
	}
	offset := int64(page-1) * int64(pageSize)

	where := plan.Where()
	args := plan.Args()

	itemsQuery := selectHistory + where + " " + plan.Order.Clause() + " LIMIT ? OFFSET ?"
	itemsArgs := append(append(make([]any, 0, len(args)+2), args...), pageSize, offset)
	countQuery := "SELECT COUNT(*) FROM navigation_history" + where

	out := &Page{Page: page, PageSize: pageSize}
	err := s.conns.WithHandle(ctx, func(h *Handle) error {
		items, err := scanRecords(ctx, h, itemsQuery, itemsArgs...)
		if err != nil {
			return err
		}
		out.Items = items

		if err := h.QueryRowContext(ctx, countQuery, args...).Scan(&out.Total); err != nil {
			return fmt.Errorf("count history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Ensure(err, apperr.KindConnection, "list history")
	}

	return out, nil
}

// scanRecords executes a query and scans results into HistoryRecord slices.
func scanRecords(ctx context.Context, h *Handle, query string, args ...any) ([]HistoryRecord, error) {
	rows, err := h.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	records := []HistoryRecord{}
	for rows.Next() {
		var (
			r                   HistoryRecord
			title, locale, tag  sql.NullString
			lastVisited, visits sql.NullInt64
		)
		if err := rows.Scan(&r.URL, &title, &lastVisited, &visits, &locale, &tag); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		r.Title = title.String
		r.LastVisitedTime = lastVisited.Int64
		r.NumVisits = visits.Int64
		r.Locale = locale.String
		r.EntityTag = tag.String
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
