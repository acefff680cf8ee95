package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// newLogger returns the process logger writing to w at the named level.
func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logger := log.NewWithOptions(w, log.Options{
		Prefix: appName,
		Level:  lvl,
	})
	return logger, nil
}
