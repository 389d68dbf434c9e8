package config

import (
	"errors"
	"os"
	"sync"
	"time"

	"github.com/runnerr0/histscope/internal/apperr"
)

// Store is the in-memory cache of the config file. The file is read once;
// every update writes the file first and then replaces the cache.
type Store struct {
	path string
	now  func() time.Time

	mu     sync.Mutex
	cached *AppConfig
}

// NewStore creates a Store backed by the file at path. Nothing is read
// until the first access.
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Path returns the config file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns a copy of the current configuration, creating the file
// with defaults on first use.
func (s *Store) Load() (AppConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.loadLocked()
	if err != nil {
		return AppConfig{}, err
	}
	return *cfg, nil
}

// DBPath returns the configured database path, or "" if none is set or
// the config cannot be read.
func (s *Store) DBPath() string {
	cfg, err := s.Load()
	if err != nil {
		return ""
	}
	return cfg.DBPath
}

// SetDBPath records path as the active database. The file must exist.
func (s *Store) SetDBPath(path string) error {
	if err := requireExisting(path); err != nil {
		return err
	}
	return s.update(func(cfg *AppConfig) {
		cfg.DBPath = path
	})
}

// RestoreDBPath puts back a previously active path without touching the
// filesystem check, so a failed switch can be rolled back.
func (s *Store) RestoreDBPath(path string) error {
	return s.update(func(cfg *AppConfig) {
		cfg.DBPath = path
	})
}

// SetBrowserDBPath records the browser-source database path.
func (s *Store) SetBrowserDBPath(path string) error {
	if err := requireExisting(path); err != nil {
		return err
	}
	return s.update(func(cfg *AppConfig) {
		cfg.BrowserDBPath = path
	})
}

// SetTopSitesCount persists the number of top sites shown in the overview.
func (s *Store) SetTopSitesCount(n int) error {
	if n < MinTopSites || n > MaxTopSites {
		return apperr.Invalidf("top sites count must be between %d and %d, got %d", MinTopSites, MaxTopSites, n)
	}
	return s.update(func(cfg *AppConfig) {
		cfg.TopSitesCount = n
	})
}

func (s *Store) update(mutate func(cfg *AppConfig)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.loadLocked()
	if err != nil {
		return err
	}

	next := *current
	mutate(&next)
	next.LastUpdated = s.now().Unix()

	if err := Save(s.path, &next); err != nil {
		return apperr.Internal(err, "save config")
	}
	s.cached = &next
	return nil
}

func (s *Store) loadLocked() (*AppConfig, error) {
	if s.cached != nil {
		return s.cached, nil
	}
	cfg, err := LoadOrCreateAt(s.path)
	if err != nil {
		return nil, apperr.Internal(err, "load config")
	}
	s.cached = cfg
	return cfg, nil
}

func requireExisting(path string) error {
	if path == "" {
		return apperr.Invalidf("database path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return apperr.Invalidf("database file does not exist: %s", path)
		}
		return apperr.Internal(err, "stat database file")
	}
	return nil
}
