package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

// consoleWriter sends human-readable log lines to the app's error writer.
func consoleWriter(c *cli.Context) io.Writer {
	return zerolog.ConsoleWriter{Out: c.App.ErrWriter, TimeFormat: time.RFC3339}
}
