package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/runnerr0/histscope/internal/apperr"
	"github.com/runnerr0/histscope/internal/config"
	"github.com/runnerr0/histscope/internal/logging"
)

const copyTimestampLayout = "20060102_150405"

// CopyBrowserDBToApp copies the browser database at source into the data
// directory as history_<timestamp>.db and returns the new path. The copy
// is removed again if it does not look like a SQLite file.
func (a *App) CopyBrowserDBToApp(ctx context.Context, source string) (string, error) {
	info, err := os.Stat(source)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", apperr.Invalidf("source database does not exist: %s", source)
		}
		return "", apperr.Internal(err, "stat source database")
	}
	if !info.Mode().IsRegular() {
		return "", apperr.Invalidf("source is not a file: %s", source)
	}

	if err := os.MkdirAll(a.dataDir, 0o750); err != nil {
		return "", apperr.Internal(err, "create data directory")
	}

	target := filepath.Join(a.dataDir, "history_"+a.now().Format(copyTimestampLayout)+".db")
	if err := copyFile(source, target); err != nil {
		return "", apperr.Internal(err, "copy database")
	}

	if err := config.ValidateSQLiteFile(target); err != nil {
		_ = os.Remove(target)
		return "", err
	}

	logging.FromContext(ctx).Info().Str("source", source).Str("target", target).Msg("browser database copied")
	return target, nil
}

// copyFile refuses to overwrite an existing target.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create target: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("write target: %w", err)
	}
	return out.Close()
}

// OpenDBDirectory opens the directory of the configured database in the
// platform file manager and returns that directory.
func (a *App) OpenDBDirectory() (string, error) {
	dir, _, err := a.configuredDBLocation()
	if err != nil {
		return "", err
	}
	if err := a.opener(dir); err != nil {
		return "", apperr.Internal(err, "open directory")
	}
	return dir, nil
}

// CleanupOldDBs deletes every *.db file next to the configured database
// except the configured one and the file the live connection uses. It
// returns how many files were removed; files that cannot be removed are
// logged and skipped.
func (a *App) CleanupOldDBs(ctx context.Context) (int, error) {
	log := logging.FromContext(ctx)

	dir, active, err := a.configuredDBLocation()
	if err != nil {
		return 0, err
	}

	keep := map[string]bool{active: true}
	if open := a.conns.OpenPath(); open != "" {
		if abs, err := filepath.Abs(open); err == nil {
			keep[abs] = true
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, apperr.Internal(err, "read database directory")
	}

	deleted := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.EqualFold(filepath.Ext(entry.Name()), ".db") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if keep[path] {
			continue
		}
		if err := os.Remove(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("removing old database failed")
			continue
		}
		deleted++
	}

	log.Info().Int("deleted", deleted).Str("dir", dir).Msg("old databases cleaned up")
	return deleted, nil
}

func (a *App) configuredDBLocation() (dir, path string, err error) {
	cfg, err := a.cfg.Load()
	if err != nil {
		return "", "", err
	}
	if cfg.DBPath == "" {
		return "", "", apperr.Invalidf("no database path configured")
	}
	abs, err := filepath.Abs(cfg.DBPath)
	if err != nil {
		return "", "", apperr.Internal(err, "resolve database path")
	}
	return filepath.Dir(abs), abs, nil
}

func openInFileManager(dir string) error {
	var name string
	switch runtime.GOOS {
	case "windows":
		name = "explorer"
	case "darwin":
		name = "open"
	default:
		name = "xdg-open"
	}

	cmd := exec.Command(name, dir)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	go cmd.Wait()
	return nil
}
