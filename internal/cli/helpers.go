package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/runnerr0/histscope/internal/app"
	"github.com/runnerr0/histscope/internal/apperr"
	"github.com/runnerr0/histscope/internal/logging"
)

// commandContext returns a context carrying the CLI logger. --verbose
// lowers the level to debug.
func commandContext(globals *GlobalFlags) context.Context {
	logger := logging.NewFromEnv()
	if globals != nil && globals.Verbose {
		logger = logger.Level(zerolog.DebugLevel)
	}
	return logging.WithComponent(logging.WithContext(context.Background(), logger), "cli")
}

// openApp returns the injected app, or builds one from the global flags.
// The returned release func closes only an app built here.
func openApp(injected *app.App, globals *GlobalFlags) (*app.App, func(), error) {
	if injected != nil {
		return injected, func() {}, nil
	}

	var opts app.Options
	if globals != nil {
		opts = app.Options{ConfigPath: globals.Config, DataDir: globals.DataDir}
	}
	a, err := app.New(opts)
	if err != nil {
		return nil, nil, err
	}
	return a, func() { a.Close() }, nil
}

func jsonOutput(globals *GlobalFlags) bool {
	return globals != nil && globals.JSON
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type jsonError struct {
	Error error `json:"error"`
}

// report prints err as {"error": {"type": ..., "data": ...}} when --json
// is set. The error is returned either way so the exit status reflects it.
func report(globals *GlobalFlags, err error) error {
	if err == nil || !jsonOutput(globals) {
		return err
	}
	_ = writeJSON(jsonError{Error: apperr.Ensure(err, apperr.KindInternal, "command failed")})
	return err
}

type jsonMessage struct {
	Message string `json:"message"`
}

// printMessage prints a command's confirmation message.
func printMessage(globals *GlobalFlags, msg string) error {
	if jsonOutput(globals) {
		return writeJSON(jsonMessage{Message: msg})
	}
	fmt.Println(msg)
	return nil
}

// pathArg returns the single positional path argument of cmd.
func pathArg(cmd string, args []string) (string, error) {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return "", apperr.Invalidf("%s requires exactly one path argument", cmd)
	}
	return args[0], nil
}

// formatNumber formats an int64 with comma separators.
func formatNumber(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}

	var result strings.Builder
	if neg {
		result.WriteString("-")
	}
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if i > 0 {
			result.WriteString(",")
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// formatBytes formats a byte count into a human-readable string.
func formatBytes(b int64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
