package main

import (
	"fmt"
	"os"

	"aescore/pkg/aes128"
	"aescore/pkg/config"
	"aescore/pkg/log"

	"github.com/urfave/cli/v2"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

const settingsKey = "settings"

// settings is the merged result of config file, environment and global flags.
type settings struct {
	cfg  *config.Config
	mode aes128.SubstitutionMode
}

func settingsFrom(c *cli.Context) *settings {
	return c.App.Metadata[settingsKey].(*settings)
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "aes128",
		Usage:   "single-block AES-128 encryption, key expansion and known-answer self test",
		Version: fmt.Sprintf("%s (built %s)", Version, BuildTime),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "configuration `FILE` (default: aes128.yaml in ., /etc/aescore, ~/.aescore)",
			},
			&cli.StringFlag{
				Name:  "substitution",
				Usage: "S-box `MODE`: table or constant-time",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.StringFlag{
				Name:  "log-db",
				Usage: "SQLite log database `NAME` (bare names live under ~/.aescore)",
			},
		},
		Metadata: map[string]any{},
		Before:   setup,
		Commands: []*cli.Command{
			selftestCommand,
			encryptCommand,
			decryptCommand,
			expandCommand,
			historyCommand,
			benchCommand,
		},
	}
}

func setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if c.IsSet("substitution") {
		cfg.Substitution = c.String("substitution")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	if c.IsSet("log-db") {
		cfg.LogDB = c.String("log-db")
	}
	if err := cfg.Validate(); err != nil {
		return cli.Exit(err.Error(), 2)
	}

	log.SetConsole(consoleWriter(c), cfg.Debug)
	c.App.Metadata[settingsKey] = &settings{cfg: cfg, mode: cfg.Mode()}
	log.Debug().Str("substitution", cfg.Substitution).Str("log_db", cfg.LogDB).Msg("configuration loaded")
	return nil
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
