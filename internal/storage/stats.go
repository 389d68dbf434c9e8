package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/runnerr0/histscope/internal/apperr"
)

// Top-N bounds for the overview ranking.
const (
	DefaultTopN = 6
	MaxTopN     = 50
)

// Overview aggregates visits over the records inside timeRange: the visit
// total, the number of distinct hosts, and the topN hosts and entity tags
// by summed visits.
func (s *SQLiteStore) Overview(ctx context.Context, timeRange string, topN int) (*OverviewStats, error) {
	if topN < 1 || topN > MaxTopN {
		return nil, apperr.Invalidf("top-N out of range: %d (must be 1-%d)", topN, MaxTopN)
	}

	plan := CompileAt(FilterSpec{TimeRange: timeRange}, s.now())
	query := "SELECT url, num_visits, product_entity_id FROM navigation_history" + plan.Where()

	var (
		total    int64
		sites    = newTally()
		entities = newTally()
	)
	err := s.conns.WithHandle(ctx, func(h *Handle) error {
		rows, err := h.QueryContext(ctx, query, plan.Args()...)
		if err != nil {
			return fmt.Errorf("query overview: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				url    string
				visits sql.NullInt64
				tag    sql.NullString
			)
			if err := rows.Scan(&url, &visits, &tag); err != nil {
				return fmt.Errorf("scan overview: %w", err)
			}
			total += visits.Int64
			sites.add(ExtractHost(url), visits.Int64)
			entities.add(tag.String, visits.Int64)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, apperr.Ensure(err, apperr.KindConnection, "stats overview")
	}

	return &OverviewStats{
		TotalVisits:   total,
		DistinctSites: int64(sites.len()),
		TopSites:      sites.top(topN),
		TopEntities:   entities.top(topN),
	}, nil
}

// ExtractHost derives a site name from a URL. A leading http:// or https://
// is stripped and the host is the text before the first '/'. URLs with any
// other scheme, or none, are returned unchanged.
func ExtractHost(rawURL string) string {
	var rest string
	switch {
	case strings.HasPrefix(rawURL, "http://"):
		rest = rawURL[len("http://"):]
	case strings.HasPrefix(rawURL, "https://"):
		rest = rawURL[len("https://"):]
	default:
		return rawURL
	}

	if slash := strings.IndexByte(rest, '/'); slash >= 0 {
		return rest[:slash]
	}
	return rest
}

// tally sums visits per key and remembers first-seen order, which breaks
// ties in the ranking.
type tally struct {
	order []string
	sums  map[string]int64
}

func newTally() *tally {
	return &tally{sums: make(map[string]int64)}
}

// add ignores empty keys.
func (t *tally) add(key string, visits int64) {
	if key == "" {
		return
	}
	if _, seen := t.sums[key]; !seen {
		t.order = append(t.order, key)
	}
	t.sums[key] += visits
}

func (t *tally) len() int { return len(t.order) }

func (t *tally) top(n int) []string {
	keys := make([]string, len(t.order))
	copy(keys, t.order)
	sort.SliceStable(keys, func(i, j int) bool {
		return t.sums[keys[i]] > t.sums[keys[j]]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
