package cli

import (
	"fmt"
	"os"

	"github.com/runnerr0/histscope/internal/storage"
)

// statsJSON is the JSON output structure for the stats command.
type statsJSON struct {
	Version           string `json:"version"`
	DatabasePath      string `json:"database_path"`
	DatabaseSizeBytes int64  `json:"database_size_bytes"`
	TimeRange         string `json:"time_range"`
	*storage.OverviewStats
}

// Execute implements the go-flags Commander interface for StatsCommand.
func (c *StatsCommand) Execute(args []string) error {
	return report(c.globals, c.run())
}

func (c *StatsCommand) run() error {
	a, release, err := openApp(c.app, c.globals)
	if err != nil {
		return err
	}
	defer release()

	ctx := commandContext(c.globals)
	stats, err := a.StatsOverview(ctx, c.Range)
	if err != nil {
		return err
	}
	dbPath, err := a.DatabasePath(ctx)
	if err != nil {
		return err
	}
	dbSize := fileSize(dbPath)

	if jsonOutput(c.globals) {
		return writeJSON(statsJSON{
			Version:           c.version,
			DatabasePath:      dbPath,
			DatabaseSizeBytes: dbSize,
			TimeRange:         c.Range,
			OverviewStats:     stats,
		})
	}
	c.printHuman(stats, dbPath, dbSize)
	return nil
}

func (c *StatsCommand) printHuman(stats *storage.OverviewStats, dbPath string, dbSize int64) {
	fmt.Println("histscope Stats")
	fmt.Println("===============")
	fmt.Printf("Version:       %s\n", c.version)
	fmt.Printf("Database:      %s (%s)\n", dbPath, formatBytes(dbSize))
	fmt.Printf("Range:         %s\n", displayRange(c.Range))
	fmt.Printf("Visits:        %s\n", formatNumber(stats.TotalVisits))
	fmt.Printf("Sites:         %s\n", formatNumber(stats.DistinctSites))

	if len(stats.TopSites) > 0 {
		fmt.Println()
		fmt.Println("Top Sites:")
		for i, site := range stats.TopSites {
			fmt.Printf("  %2d. %s\n", i+1, site)
		}
	}

	if len(stats.TopEntities) > 0 {
		fmt.Println()
		fmt.Println("Top Entities:")
		for i, tag := range stats.TopEntities {
			fmt.Printf("  %2d. %s\n", i+1, tag)
		}
	}
}

func displayRange(r string) string {
	if r == "" {
		return "all"
	}
	return r
}

// fileSize returns the size of path in bytes, or 0 if it cannot be read.
func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
