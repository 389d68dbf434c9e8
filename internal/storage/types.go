package storage

// HistoryRecord is one row of the navigation_history table.
type HistoryRecord struct {
	URL             string `json:"url"`
	Title           string `json:"title,omitempty"`
	LastVisitedTime int64  `json:"last_visited_time"` // epoch seconds
	NumVisits       int64  `json:"num_visits"`
	Locale          string `json:"locale,omitempty"`
	EntityTag       string `json:"entity_tag,omitempty"`
}

// FilterSpec holds the raw, loosely-typed filter input. Empty fields mean
// "no filter".
type FilterSpec struct {
	Keyword   string `json:"keyword,omitempty"`
	TimeRange string `json:"time_range,omitempty"` // 7d, 30d, 90d, all, or "<start>-<end>"
	Locale    string `json:"locale,omitempty"`
	SortBy    string `json:"sort_by,omitempty"`    // title, num_visits, last_visited_time
	SortOrder string `json:"sort_order,omitempty"` // asc, desc
}

// Page is one page of filtered history plus the total match count.
type Page struct {
	Items    []HistoryRecord `json:"items"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// OverviewStats aggregates visits over a time-range-filtered set.
type OverviewStats struct {
	TotalVisits   int64    `json:"total_visits"`
	DistinctSites int64    `json:"distinct_sites"`
	TopSites      []string `json:"top_sites"`
	TopEntities   []string `json:"top_entities"`
}
