package cli

import "fmt"

// Execute implements the go-flags Commander interface for SetDBCommand.
func (c *SetDBCommand) Execute(args []string) error {
	return report(c.globals, c.run(args))
}

func (c *SetDBCommand) run(args []string) error {
	path, err := pathArg("set-db", args)
	if err != nil {
		return err
	}

	a, release, err := openApp(c.app, c.globals)
	if err != nil {
		return err
	}
	defer release()

	msg, err := a.SetDBPath(commandContext(c.globals), path)
	if err != nil {
		return err
	}
	return printMessage(c.globals, msg)
}

// Execute implements the go-flags Commander interface for SetBrowserDBCommand.
func (c *SetBrowserDBCommand) Execute(args []string) error {
	return report(c.globals, c.run(args))
}

func (c *SetBrowserDBCommand) run(args []string) error {
	path, err := pathArg("set-browser-db", args)
	if err != nil {
		return err
	}

	a, release, err := openApp(c.app, c.globals)
	if err != nil {
		return err
	}
	defer release()

	msg, err := a.SetBrowserDBPath(path)
	if err != nil {
		return err
	}
	return printMessage(c.globals, msg)
}

type validateJSON struct {
	Path  string `json:"path"`
	Valid bool   `json:"valid"`
}

// Execute implements the go-flags Commander interface for ValidateCommand.
func (c *ValidateCommand) Execute(args []string) error {
	return report(c.globals, c.run(args))
}

func (c *ValidateCommand) run(args []string) error {
	path, err := pathArg("validate", args)
	if err != nil {
		return err
	}

	a, release, err := openApp(c.app, c.globals)
	if err != nil {
		return err
	}
	defer release()

	valid, err := a.ValidateDBPath(path)
	if err != nil {
		return err
	}

	if jsonOutput(c.globals) {
		return writeJSON(validateJSON{Path: path, Valid: valid})
	}
	fmt.Printf("%s is a valid SQLite database\n", path)
	return nil
}

type copyJSON struct {
	Path     string `json:"path"`
	Switched bool   `json:"switched"`
}

// Execute implements the go-flags Commander interface for CopyBrowserDBCommand.
func (c *CopyBrowserDBCommand) Execute(args []string) error {
	return report(c.globals, c.run(args))
}

func (c *CopyBrowserDBCommand) run(args []string) error {
	source, err := pathArg("copy-browser-db", args)
	if err != nil {
		return err
	}

	a, release, err := openApp(c.app, c.globals)
	if err != nil {
		return err
	}
	defer release()

	ctx := commandContext(c.globals)
	target, err := a.CopyBrowserDBToApp(ctx, source)
	if err != nil {
		return err
	}

	if c.Use {
		if _, err := a.SetDBPath(ctx, target); err != nil {
			return err
		}
	}

	if jsonOutput(c.globals) {
		return writeJSON(copyJSON{Path: target, Switched: c.Use})
	}
	fmt.Printf("Copied to %s\n", target)
	if c.Use {
		fmt.Println("Now using the copy.")
	}
	return nil
}
