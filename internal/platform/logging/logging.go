package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	hclog "github.com/hashicorp/go-hclog"
)

// New opens the log file in append mode and returns a logger writing to it.
// The terminal belongs to the TUI, so nothing is written to stderr.
func New(path, level string) (hclog.Logger, io.Closer, error) {
	lvl := hclog.LevelFromString(strings.TrimSpace(level))
	if lvl == hclog.NoLevel {
		return nil, nil, fmt.Errorf("unknown log level: %q", level)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return NewWriter(f, lvl), f, nil
}

func NewWriter(w io.Writer, level hclog.Level) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "writerly",
		Level:  level,
		Output: w,
	})
}

// OrNull lets components accept an optional logger.
func OrNull(logger hclog.Logger) hclog.Logger {
	if logger == nil {
		return hclog.NewNullLogger()
	}
	return logger
}
