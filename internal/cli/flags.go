package cli

import "github.com/runnerr0/histscope/internal/app"

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	DataDir string `long:"data-dir" description:"Directory for the demo and copied databases" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// ListCommand pages through history with filters and sorting.
type ListCommand struct {
	Keyword  string `long:"keyword" short:"k" description:"Match title or URL (substring)"`
	Range    string `long:"range" short:"r" description:"Time range: 7d | 30d | 90d | all | <start>-<end> (unix seconds)"`
	Locale   string `long:"locale" description:"Only records with this locale"`
	Sort     string `long:"sort" description:"Sort field: title | num_visits | last_visited_time" default:"last_visited_time"`
	Order    string `long:"order" description:"Sort direction: asc | desc" default:"desc"`
	Page     int    `long:"page" description:"Page number, starting at 1" default:"1"`
	PageSize int    `long:"page-size" description:"Records per page (1-500)" default:"20"`

	globals *GlobalFlags
	version string
	app     *app.App // injectable for testing; nil means build from globals
}

// StatsCommand prints visit totals and top sites for a time range.
type StatsCommand struct {
	Range string `long:"range" short:"r" description:"Time range: 7d | 30d | 90d | all | <start>-<end>" default:"all"`

	globals *GlobalFlags
	version string
	app     *app.App
}

// ConfigCommand prints the persisted configuration.
type ConfigCommand struct {
	globals *GlobalFlags
	version string
	app     *app.App
}

// SetDBCommand points histscope at another history database.
type SetDBCommand struct {
	globals *GlobalFlags
	version string
	app     *app.App
}

// SetBrowserDBCommand records the browser's own history file.
type SetBrowserDBCommand struct {
	globals *GlobalFlags
	version string
	app     *app.App
}

// ValidateCommand checks that a file is a SQLite database.
type ValidateCommand struct {
	globals *GlobalFlags
	version string
	app     *app.App
}

// CopyBrowserDBCommand copies a browser database into the data directory.
type CopyBrowserDBCommand struct {
	Use bool `long:"use" description:"Switch to the copy after copying"`

	globals *GlobalFlags
	version string
	app     *app.App
}

// OpenDirCommand opens the configured database's directory.
type OpenDirCommand struct {
	globals *GlobalFlags
	version string
	app     *app.App
}

// CleanupCommand deletes old databases next to the configured one.
type CleanupCommand struct {
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	version string
	app     *app.App
}

// SetTopNCommand sets how many top sites the stats overview shows.
type SetTopNCommand struct {
	globals *GlobalFlags
	version string
	app     *app.App
}
