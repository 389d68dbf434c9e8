package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/histscope/internal/apperr"
)

func TestListHistory_TopVisitsFirstPage(t *testing.T) {
	now := time.Now()
	store, _ := openHistoryStore(t, syntheticRecords(now, 50))

	plan := CompileAt(FilterSpec{SortBy: "num_visits", SortOrder: "desc"}, now)
	page, err := store.ListHistory(testCtx(), plan, 1, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(50), page.Total)
	require.Len(t, page.Items, 10)

	// Visit counts cycle 1..7, so seven records have 7 and the next best have 6.
	for i, item := range page.Items {
		if i < 7 {
			assert.Equal(t, int64(7), item.NumVisits, "item %d", i)
		} else {
			assert.Equal(t, int64(6), item.NumVisits, "item %d", i)
		}
		if i > 0 {
			assert.LessOrEqual(t, item.NumVisits, page.Items[i-1].NumVisits)
		}
	}
}

func TestListHistory_PageSizeBounds(t *testing.T) {
	store, _ := openHistoryStore(t, syntheticRecords(time.Now(), 5))
	plan := Compile(FilterSpec{})

	for _, size := range []int{0, -1, 501, 10_000} {
		_, err := store.ListHistory(testCtx(), plan, 1, size)
		require.Error(t, err, "page_size=%d", size)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	}

	for _, size := range []int{1, 2, 500} {
		page, err := store.ListHistory(testCtx(), plan, 1, size)
		require.NoError(t, err, "page_size=%d", size)
		assert.LessOrEqual(t, len(page.Items), size)
		assert.Equal(t, int64(5), page.Total)
	}
}

func TestListHistory_PageBelowOneIsClamped(t *testing.T) {
	store, _ := openHistoryStore(t, syntheticRecords(time.Now(), 12))
	plan := Compile(FilterSpec{})

	first, err := store.ListHistory(testCtx(), plan, 1, 5)
	require.NoError(t, err)

	for _, p := range []int{0, -3} {
		got, err := store.ListHistory(testCtx(), plan, p, 5)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Page)
		assert.Equal(t, first.Items, got.Items)
	}
}

func TestListHistory_PagesCoverEverythingOnce(t *testing.T) {
	now := time.Now()
	store, _ := openHistoryStore(t, syntheticRecords(now, 50))
	plan := CompileAt(FilterSpec{SortBy: "num_visits"}, now)

	seen := map[string]bool{}
	for p := 1; p <= 8; p++ {
		page, err := store.ListHistory(testCtx(), plan, p, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(50), page.Total, "total must not depend on the page")
		for _, item := range page.Items {
			assert.False(t, seen[item.URL], "%s returned twice", item.URL)
			seen[item.URL] = true
		}
		if p == 8 {
			assert.Len(t, page.Items, 1)
		}
	}
	assert.Len(t, seen, 50)
}

func TestListHistory_BeyondLastPage(t *testing.T) {
	store, _ := openHistoryStore(t, syntheticRecords(time.Now(), 3))

	page, err := store.ListHistory(testCtx(), Compile(FilterSpec{}), 10, 10)
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(3), page.Total)
}

func TestListHistory_Filters(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	records := syntheticRecords(now, 50)
	store, _ := openHistoryStore(t, records)

	tests := []struct {
		name  string
		spec  FilterSpec
		total int64
	}{
		{"no filter", FilterSpec{}, 50},
		{"locale", FilterSpec{Locale: "zh-cn"}, 25},
		{"unknown locale", FilterSpec{Locale: "fr-fr"}, 0},
		{"keyword in url", FilterSpec{Keyword: "site3.test"}, 10},
		{"keyword in title", FilterSpec{Keyword: "Page 4"}, 11}, // Page 4, Page 40..49
		{"keyword is case-insensitive for ASCII", FilterSpec{Keyword: "PAGE 4"}, 11},
		{"custom range", FilterSpec{TimeRange: "1699996400-1700000000"}, 2},
		{"open upper", FilterSpec{TimeRange: "1699996400-"}, 2},
		{"open lower", FilterSpec{TimeRange: "-1699996400"}, 49},
		{"all", FilterSpec{TimeRange: "all"}, 50},
		{"combined", FilterSpec{Locale: "en-us", Keyword: "site0"}, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			page, err := store.ListHistory(testCtx(), CompileAt(tc.spec, now), 1, 3)
			require.NoError(t, err)
			assert.Equal(t, tc.total, page.Total)
			assert.LessOrEqual(t, len(page.Items), 3)
			if tc.total >= 3 {
				assert.Len(t, page.Items, 3)
			}
		})
	}
}

func TestListHistory_SortByTitleAscending(t *testing.T) {
	now := time.Now()
	store, _ := openHistoryStore(t, []HistoryRecord{
		{URL: "https://b.test/", Title: "Bravo", LastVisitedTime: now.Unix(), NumVisits: 1},
		{URL: "https://a.test/", Title: "Alpha", LastVisitedTime: now.Unix(), NumVisits: 1},
		{URL: "https://c.test/", Title: "Charlie", LastVisitedTime: now.Unix(), NumVisits: 1},
	})

	page, err := store.ListHistory(testCtx(), CompileAt(FilterSpec{SortBy: "title", SortOrder: "asc"}, now), 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "Alpha", page.Items[0].Title)
	assert.Equal(t, "Bravo", page.Items[1].Title)
	assert.Equal(t, "Charlie", page.Items[2].Title)
}

func TestListHistory_NullableColumns(t *testing.T) {
	store, _ := openHistoryStore(t, []HistoryRecord{
		{URL: "https://bare.test/", LastVisitedTime: 10, NumVisits: 2},
	})

	page, err := store.ListHistory(testCtx(), Compile(FilterSpec{}), 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, HistoryRecord{URL: "https://bare.test/", LastVisitedTime: 10, NumVisits: 2}, page.Items[0])
}

func TestListHistory_InjectionAttemptIsLiteral(t *testing.T) {
	store, m := openHistoryStore(t, syntheticRecords(time.Now(), 5))

	page, err := store.ListHistory(testCtx(), Compile(FilterSpec{
		Keyword: "'; DROP TABLE navigation_history; --",
		Locale:  "' OR '1'='1",
	}), 1, 10)
	require.NoError(t, err)
	assert.Zero(t, page.Total)
	assert.Equal(t, int64(5), countRows(t, m))
}

func TestListHistory_DemoDatabase(t *testing.T) {
	m := openDemoManager(t)
	store := NewSQLiteStore(m)

	page, err := store.ListHistory(testCtx(), Compile(FilterSpec{SortBy: "num_visits"}), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(demoRecordCount), page.Total)
	require.Len(t, page.Items, 10)
	assert.Equal(t, int64(7), page.Items[0].NumVisits)
}
