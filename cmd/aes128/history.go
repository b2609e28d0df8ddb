package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"aescore/pkg/log"
	"aescore/pkg/transform"

	"github.com/urfave/cli/v2"
)

var historyCommand = &cli.Command{
	Name:  "history",
	Usage: "show or export recorded self-test runs",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"n"},
			Usage:   "number of most recent entries `NUMBER`",
			Value:   20,
		},
		&cli.StringFlag{
			Name:    "since",
			Aliases: []string{"s"},
			Usage:   "entries since `TIME_SPEC` (e.g. '1h', '2026-10-19T10:00:00Z')",
		},
		&cli.BoolFlag{
			Name:  "failures",
			Usage: "only entries with ok=false",
		},
		&cli.StringFlag{
			Name:  "export",
			Usage: "write entries as JSON lines to `FILE` instead of stdout",
		},
		&cli.StringFlag{
			Name:  "compress",
			Usage: "export compression `ALGO`: zstd, gzip or none",
			Value: "zstd",
		},
	},
	Action: historyCmd,
}

// timeFormats are tried in order after relative durations.
var timeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTimeSpec accepts a duration before now ("1h", "30m") or an absolute
// timestamp in local time unless a zone is given.
func parseTimeSpec(spec string) (time.Time, error) {
	if d, err := time.ParseDuration(spec); err == nil {
		return time.Now().Add(-d), nil
	}
	for _, layout := range timeFormats {
		if ts, err := time.ParseInLocation(layout, spec, time.Local); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time specification: '%s'. Use relative duration (e.g., '1h', '30m') or absolute format (e.g., '2023-10-27T15:04:05Z')", spec)
}

func failed(entry log.LogEntry) bool {
	var rec struct {
		OK *bool `json:"ok"`
	}
	if err := json.Unmarshal([]byte(entry.LogData), &rec); err != nil {
		return false
	}
	return rec.OK != nil && !*rec.OK
}

func historyCmd(c *cli.Context) error {
	s := settingsFrom(c)
	if err := log.Init(s.cfg.LogDB); err != nil {
		return cli.Exit(fmt.Sprintf("Error opening log database: %v", err), 1)
	}
	defer log.Close()

	var (
		entries []log.LogEntry
		err     error
	)
	if c.IsSet("since") {
		start, perr := parseTimeSpec(c.String("since"))
		if perr != nil {
			return cli.Exit(fmt.Sprintf("Error parsing --since: %v", perr), 1)
		}
		entries, err = log.GetLogsSince(start, c.Int("count"))
	} else {
		if c.Int("count") <= 0 {
			return cli.Exit("Error: --count (-n) must be a positive number.", 1)
		}
		entries, err = log.GetLastNLogs(c.Int("count"))
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error retrieving logs: %v", err), 1)
	}

	var buf bytes.Buffer
	n := 0
	for _, e := range entries {
		if c.Bool("failures") && !failed(e) {
			continue
		}
		buf.WriteString(e.LogData)
		if !bytes.HasSuffix([]byte(e.LogData), []byte("\n")) {
			buf.WriteByte('\n')
		}
		n++
	}

	path := c.String("export")
	if path == "" {
		if n == 0 {
			fmt.Fprintln(c.App.ErrWriter, "No log entries found matching the criteria.")
			return nil
		}
		_, err := c.App.Writer.Write(buf.Bytes())
		return err
	}

	t, err := transform.ForName(c.String("compress"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}
	p, err := transform.NewProcessor(t)
	if err != nil {
		return err
	}
	packed, err := p.Forward(buf.Bytes())
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error compressing export: %v", err), 1)
	}
	if err := os.WriteFile(path, packed, 0o644); err != nil {
		return cli.Exit(fmt.Sprintf("Error writing export: %v", err), 1)
	}
	fmt.Fprintf(c.App.ErrWriter, "exported %d entries to %s (%d bytes, %s)\n", n, path, len(packed), c.String("compress"))
	return nil
}
