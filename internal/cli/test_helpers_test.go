package cli

import (
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	fn()

	w.Close()
	os.Stdout = old
	return <-done
}

// testEnv points the CLI at a config file and data directory under a
// temp dir, so commands never touch the real XDG locations.
type testEnv struct {
	t       *testing.T
	config  string
	dataDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	return &testEnv{
		t:       t,
		config:  filepath.Join(root, "config", "config.yaml"),
		dataDir: filepath.Join(root, "data"),
	}
}

func (e *testEnv) globals() *GlobalFlags {
	return &GlobalFlags{Config: e.config, DataDir: e.dataDir}
}

// run executes the CLI with the environment's global flags prepended and
// returns what it printed to stdout.
func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()
	full := append([]string{"--config", e.config, "--data-dir", e.dataDir}, args...)

	var err error
	out := captureOutput(e.t, func() {
		err = RunWithArgs("test", full)
	})
	return out, err
}

// writeHistoryDB creates a navigation_history database with n rows on
// one host.
func writeHistoryDB(t *testing.T, path string, n int) {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE navigation_history (
		url TEXT PRIMARY KEY,
		title TEXT,
		last_visited_time INTEGER,
		num_visits INTEGER,
		locale TEXT,
		product_entity_id TEXT
	)`)
	require.NoError(t, err)

	now := time.Now().Unix()
	for i := 0; i < n; i++ {
		_, err := db.Exec(
			"INSERT INTO navigation_history (url, title, last_visited_time, num_visits, locale) VALUES (?, ?, ?, ?, ?)",
			fmt.Sprintf("https://local.test/%d", i), fmt.Sprintf("Local %d", i), now-int64(i)*60, 2, "en-us",
		)
		require.NoError(t, err)
	}
}
