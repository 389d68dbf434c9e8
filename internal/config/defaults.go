package config

import "time"

// DefaultTopSitesCount is the number of top sites shown when unset.
const DefaultTopSitesCount = 6

// DefaultConfig returns an AppConfig populated with all default values.
// No database path is set, so storage falls back to the demo database.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		TopSitesCount: DefaultTopSitesCount,
		LastUpdated:   time.Now().Unix(),
	}
}
