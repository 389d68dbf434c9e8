package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/runnerr0/histscope/internal/apperr"
	"github.com/runnerr0/histscope/internal/config"
)

// Execute implements the go-flags Commander interface for ConfigCommand.
func (c *ConfigCommand) Execute(args []string) error {
	return report(c.globals, c.run())
}

func (c *ConfigCommand) run() error {
	a, release, err := openApp(c.app, c.globals)
	if err != nil {
		return err
	}
	defer release()

	cfg, err := a.GetConfig()
	if err != nil {
		return err
	}

	if jsonOutput(c.globals) {
		return writeJSON(cfg)
	}
	printConfig(cfg, a.DataDir())
	return nil
}

func printConfig(cfg config.AppConfig, dataDir string) {
	orNone := func(s string) string {
		if s == "" {
			return "(not set)"
		}
		return s
	}

	fmt.Printf("Database:      %s\n", orNone(cfg.DBPath))
	fmt.Printf("Browser DB:    %s\n", orNone(cfg.BrowserDBPath))
	fmt.Printf("Top sites:     %d\n", cfg.TopSitesCount)
	fmt.Printf("Data dir:      %s\n", dataDir)
	if cfg.LastUpdated > 0 {
		fmt.Printf("Updated:       %s\n", time.Unix(cfg.LastUpdated, 0).Local().Format("2006-01-02 15:04:05"))
	}
}

// Execute implements the go-flags Commander interface for SetTopNCommand.
func (c *SetTopNCommand) Execute(args []string) error {
	return report(c.globals, c.run(args))
}

func (c *SetTopNCommand) run(args []string) error {
	if len(args) != 1 {
		return apperr.Invalidf("set-top-n requires exactly one number (%d-%d)", config.MinTopSites, config.MaxTopSites)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return apperr.Invalidf("invalid top sites count %q", args[0])
	}

	a, release, err := openApp(c.app, c.globals)
	if err != nil {
		return err
	}
	defer release()

	msg, err := a.SetTopSitesCount(n)
	if err != nil {
		return err
	}
	return printMessage(c.globals, msg)
}
