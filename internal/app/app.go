// Package app is the command boundary of histscope. Each exported method
// is one command a shell can invoke; every failure it returns is an
// *apperr.Error.
package app

import (
	"context"
	"time"

	"github.com/runnerr0/histscope/internal/apperr"
	"github.com/runnerr0/histscope/internal/config"
	"github.com/runnerr0/histscope/internal/logging"
	"github.com/runnerr0/histscope/internal/storage"
)

// Options locates the config file and the data directory.
type Options struct {
	ConfigPath string
	DataDir    string
}

// App wires the config store, the connection manager and the query store.
type App struct {
	cfg     *config.Store
	conns   *storage.ConnManager
	store   storage.Store
	dataDir string

	now    func() time.Time
	opener func(dir string) error
}

// New builds an App. Empty options fall back to the XDG locations.
// Nothing touches the disk until the first command runs.
func New(opts Options) (*App, error) {
	configPath := opts.ConfigPath
	if configPath == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return nil, apperr.Internal(err, "resolve config path")
		}
		configPath = p
	}
	dataDir := opts.DataDir
	if dataDir == "" {
		d, err := config.DefaultDataDir()
		if err != nil {
			return nil, apperr.Internal(err, "resolve data directory")
		}
		dataDir = d
	}

	cfg := config.NewStore(configPath)
	conns := storage.NewConnManager(cfg, config.FallbackDBPath(dataDir))

	return &App{
		cfg:     cfg,
		conns:   conns,
		store:   storage.NewSQLiteStore(conns),
		dataDir: dataDir,
		now:     time.Now,
		opener:  openInFileManager,
	}, nil
}

// Close releases the database handle.
func (a *App) Close() error {
	return a.conns.Close()
}

// DataDir returns the directory holding the demo and copied databases.
func (a *App) DataDir() string {
	return a.dataDir
}

// DatabasePath returns the file queries currently run against, opening
// the connection if needed.
func (a *App) DatabasePath(ctx context.Context) (string, error) {
	h, err := a.conns.Acquire(ctx)
	if err != nil {
		return "", apperr.Ensure(err, apperr.KindConnection, "open database")
	}
	return h.Path(), nil
}

// ListHistory returns one page of history matching spec.
func (a *App) ListHistory(ctx context.Context, page, pageSize int, spec storage.FilterSpec) (*storage.Page, error) {
	plan := storage.CompileAt(spec, a.now())
	return a.store.ListHistory(ctx, plan, page, pageSize)
}

// StatsOverview aggregates visits inside timeRange using the configured
// number of top sites.
func (a *App) StatsOverview(ctx context.Context, timeRange string) (*storage.OverviewStats, error) {
	cfg, err := a.cfg.Load()
	if err != nil {
		return nil, err
	}
	return a.store.Overview(ctx, timeRange, cfg.TopSitesCount)
}

// GetConfig returns the persisted configuration.
func (a *App) GetConfig() (config.AppConfig, error) {
	return a.cfg.Load()
}

// SetDBPath validates path, persists it and switches the live connection
// to it. If the switch fails the previously configured path is restored.
func (a *App) SetDBPath(ctx context.Context, path string) (string, error) {
	log := logging.FromContext(ctx)

	if err := config.ValidateSQLiteFile(path); err != nil {
		return "", err
	}

	prev, err := a.cfg.Load()
	if err != nil {
		return "", err
	}
	if err := a.cfg.SetDBPath(path); err != nil {
		return "", err
	}

	if err := a.conns.Reset(ctx, path); err != nil {
		if rerr := a.cfg.RestoreDBPath(prev.DBPath); rerr != nil {
			log.Error().Err(rerr).Str("path", prev.DBPath).Msg("restoring previous database path failed")
		}
		return "", apperr.Ensure(err, apperr.KindConnection, "switch database")
	}

	log.Info().Str("path", path).Msg("database path updated")
	return "database path set", nil
}

// SetBrowserDBPath records the browser's own history file. The live
// connection is not switched.
func (a *App) SetBrowserDBPath(path string) (string, error) {
	if err := config.ValidateSQLiteFile(path); err != nil {
		return "", err
	}
	if err := a.cfg.SetBrowserDBPath(path); err != nil {
		return "", err
	}
	return "browser database path saved", nil
}

// ValidateDBPath reports whether path is a readable SQLite file. An
// invalid file yields false together with the reason.
func (a *App) ValidateDBPath(path string) (bool, error) {
	if err := config.ValidateSQLiteFile(path); err != nil {
		return false, err
	}
	return true, nil
}

// SetTopSitesCount persists the overview ranking size.
func (a *App) SetTopSitesCount(n int) (string, error) {
	if err := a.cfg.SetTopSitesCount(n); err != nil {
		return "", err
	}
	return "top sites count updated", nil
}
