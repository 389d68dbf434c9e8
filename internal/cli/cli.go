package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	List          *ListCommand
	Stats         *StatsCommand
	Config        *ConfigCommand
	SetDB         *SetDBCommand
	SetBrowserDB  *SetBrowserDBCommand
	Validate      *ValidateCommand
	CopyBrowserDB *CopyBrowserDBCommand
	OpenDir       *OpenDirCommand
	Cleanup       *CleanupCommand
	SetTopN       *SetTopNCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "histscope"
	parser.LongDescription = "Query, filter, and summarize a local browsing-history database."

	cmds := &commands{
		List:          &ListCommand{globals: &globals, version: version},
		Stats:         &StatsCommand{globals: &globals, version: version},
		Config:        &ConfigCommand{globals: &globals, version: version},
		SetDB:         &SetDBCommand{globals: &globals, version: version},
		SetBrowserDB:  &SetBrowserDBCommand{globals: &globals, version: version},
		Validate:      &ValidateCommand{globals: &globals, version: version},
		CopyBrowserDB: &CopyBrowserDBCommand{globals: &globals, version: version},
		OpenDir:       &OpenDirCommand{globals: &globals, version: version},
		Cleanup:       &CleanupCommand{globals: &globals, version: version},
		SetTopN:       &SetTopNCommand{globals: &globals, version: version},
	}

	parser.AddCommand("list", "List browsing history", "List one page of browsing history, optionally filtered by keyword, time range, and locale.", cmds.List)
	parser.AddCommand("stats", "Show visit statistics", "Show total visits, distinct sites, and the top sites for a time range.", cmds.Stats)
	parser.AddCommand("config", "Show configuration", "Show the persisted histscope configuration.", cmds.Config)
	parser.AddCommand("set-db", "Use another history database", "Validate a SQLite file, save it as the active database, and switch to it.", cmds.SetDB)
	parser.AddCommand("set-browser-db", "Remember the browser database", "Validate and save the path of the browser's own history database.", cmds.SetBrowserDB)
	parser.AddCommand("validate", "Check a database file", "Check that a file exists and carries the SQLite 3 signature.", cmds.Validate)
	parser.AddCommand("copy-browser-db", "Copy a browser database", "Copy a browser database into the data directory under a timestamped name.", cmds.CopyBrowserDB)
	parser.AddCommand("open-dir", "Open the database directory", "Open the directory of the configured database in the file manager.", cmds.OpenDir)
	parser.AddCommand("cleanup", "Delete old databases", "Delete every other .db file next to the configured database. Destructive operation with safety prompt.", cmds.Cleanup)
	parser.AddCommand("set-top-n", "Set the top sites count", "Set how many top sites the stats overview ranks (1-50).", cmds.SetTopN)

	return parser, &globals, cmds
}

// Run is the main entry point for the histscope CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// go-flags requires a subcommand, but --version is valid without one.
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("histscope %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
