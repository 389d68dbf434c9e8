package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/runnerr0/histscope/internal/apperr"
)

type cleanupJSON struct {
	Deleted int `json:"deleted"`
}

// Execute implements the go-flags Commander interface for CleanupCommand.
func (c *CleanupCommand) Execute(args []string) error {
	return report(c.globals, c.run(os.Stdin))
}

func (c *CleanupCommand) run(in io.Reader) error {
	a, release, err := openApp(c.app, c.globals)
	if err != nil {
		return err
	}
	defer release()

	cfg, err := a.GetConfig()
	if err != nil {
		return err
	}
	if cfg.DBPath == "" {
		return apperr.Invalidf("no database path configured")
	}

	// Confirmation prompt unless --force
	if !c.Force {
		fmt.Println("⚠ WARNING: This will delete every other .db file in the directory of")
		fmt.Printf("  %s\n", cfg.DBPath)
		fmt.Println()
		fmt.Println("This action cannot be undone.")
		fmt.Println()
		fmt.Print(`Type "CLEANUP" to confirm: `)

		scanner := bufio.NewScanner(in)
		if !scanner.Scan() {
			return apperr.Invalidf("aborted: no input received")
		}
		if strings.TrimSpace(scanner.Text()) != "CLEANUP" {
			return apperr.Invalidf("aborted: confirmation text did not match")
		}
	}

	deleted, err := a.CleanupOldDBs(commandContext(c.globals))
	if err != nil {
		return err
	}

	if jsonOutput(c.globals) {
		return writeJSON(cleanupJSON{Deleted: deleted})
	}
	fmt.Printf("Removed %d old database file(s).\n", deleted)
	return nil
}
