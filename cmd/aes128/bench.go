package main

import (
	"fmt"

	"aescore/pkg/benchmark"
	"aescore/pkg/keys"

	"github.com/urfave/cli/v2"
)

var benchCommand = &cli.Command{
	Name:  "bench",
	Usage: "measure per-block latency of key expansion, encryption and decryption",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "iterations",
			Aliases: []string{"i"},
			Usage:   "calls per stage `NUMBER`",
			Value:   10000,
		},
		&cli.StringFlag{
			Name:  "key",
			Usage: "16-byte key as `HEX` (default: FIPS-197 Appendix B key)",
		},
		&cli.StringFlag{
			Name:  "csv",
			Usage: "also write results to CSV `FILE`",
		},
	},
	Action: benchCmd,
}

func benchCmd(c *cli.Context) error {
	opts := benchmark.DefaultOptions()
	opts.Iterations = c.Int("iterations")
	if c.IsSet("key") {
		key, err := keys.ParseKey(c.String("key"))
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
		}
		opts.Key = key
	}

	results, err := benchmark.RunAll(opts)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	for _, r := range results {
		benchmark.PrintResults(c.App.Writer, r)
	}
	if path := c.String("csv"); path != "" {
		if err := benchmark.SaveResultsToFile(results, path); err != nil {
			return cli.Exit(fmt.Sprintf("Error writing CSV: %v", err), 1)
		}
	}
	return nil
}
