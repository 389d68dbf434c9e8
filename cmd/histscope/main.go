package main

import (
	"os"

	"github.com/runnerr0/histscope/internal/cli"
)

// Build-time variables (set via ldflags).
var version = "dev"

func main() {
	// go-flags already printed the error.
	if err := cli.Run(version); err != nil {
		os.Exit(1)
	}
}
