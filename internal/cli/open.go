package cli

import "fmt"

type openDirJSON struct {
	Directory string `json:"directory"`
}

// Execute implements the go-flags Commander interface for OpenDirCommand.
func (c *OpenDirCommand) Execute(args []string) error {
	return report(c.globals, c.run())
}

func (c *OpenDirCommand) run() error {
	a, release, err := openApp(c.app, c.globals)
	if err != nil {
		return err
	}
	defer release()

	dir, err := a.OpenDBDirectory()
	if err != nil {
		return err
	}

	if jsonOutput(c.globals) {
		return writeJSON(openDirJSON{Directory: dir})
	}
	fmt.Printf("Opened %s\n", dir)
	return nil
}
