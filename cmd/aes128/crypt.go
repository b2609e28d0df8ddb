package main

import (
	"errors"
	"fmt"

	"aescore/pkg/aes128"
	"aescore/pkg/keys"
	"aescore/pkg/log"
	"aescore/pkg/transform"

	"github.com/urfave/cli/v2"
)

func keyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "key",
			Aliases: []string{"k"},
			Usage:   "16-byte key as `HEX`",
		},
		&cli.StringFlag{
			Name:    "passphrase",
			Aliases: []string{"p"},
			Usage:   "derive the key from `PASSPHRASE` with HKDF-SHA256",
		},
		&cli.StringFlag{
			Name:  "salt",
			Usage: "HKDF `SALT` for --passphrase",
		},
	}
}

func blockFlags() []cli.Flag {
	return append(keyFlags(),
		&cli.StringFlag{
			Name:     "block",
			Aliases:  []string{"b"},
			Usage:    "16-byte input block as `HEX`",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "spaced",
			Usage: "print output as spaced uppercase bytes",
		},
	)
}

var (
	encryptCommand = &cli.Command{
		Name:   "encrypt",
		Usage:  "encrypt one 16-byte block",
		Flags:  blockFlags(),
		Action: cryptCmd(true),
	}
	decryptCommand = &cli.Command{
		Name:   "decrypt",
		Usage:  "decrypt one 16-byte block",
		Flags:  blockFlags(),
		Action: cryptCmd(false),
	}
	expandCommand = &cli.Command{
		Name:   "expand",
		Usage:  "print the 11 round keys of the key schedule",
		Flags:  keyFlags(),
		Action: expandCmd,
	}
)

var errKeySource = errors.New("exactly one of --key or --passphrase is required")

func resolveKey(c *cli.Context) (aes128.Key, error) {
	hasKey, hasPass := c.IsSet("key"), c.IsSet("passphrase")
	switch {
	case hasKey == hasPass:
		return aes128.Key{}, errKeySource
	case hasKey:
		return keys.ParseKey(c.String("key"))
	}
	var salt []byte
	if c.IsSet("salt") {
		salt = []byte(c.String("salt"))
	}
	return keys.DeriveKey(c.String("passphrase"), salt)
}

func newCipher(c *cli.Context) (*aes128.Cipher, error) {
	key, err := resolveKey(c)
	if err != nil {
		return nil, err
	}
	ci, err := aes128.NewCipher(key[:], aes128.WithSubstitution(settingsFrom(c).mode))
	if err != nil {
		return nil, err
	}
	kcv := keys.CheckValue(ci)
	log.Debug().Str("kcv", keys.Format(kcv[:])).Str("mode", ci.Mode().String()).Msg("cipher ready")
	return ci, nil
}

func cryptCmd(encrypt bool) cli.ActionFunc {
	return func(c *cli.Context) error {
		ci, err := newCipher(c)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
		}
		in, err := keys.ParseBlock(c.String("block"))
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
		}

		p, err := transform.NewProcessor(transform.NewBlockTransform(ci), transform.NewHexTransform())
		if err != nil {
			return err
		}
		var out []byte
		if encrypt {
			out, err = p.Forward(in[:])
		} else {
			var pt []byte
			pt, err = p.Backward([]byte(keys.Format(in[:])))
			out = []byte(keys.Format(pt))
		}
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
		}

		if c.Bool("spaced") {
			raw, err := keys.ParseHex(string(out))
			if err != nil {
				return err
			}
			out = []byte(keys.FormatSpaced(raw))
		}
		fmt.Fprintln(c.App.Writer, string(out))
		return nil
	}
}

func expandCmd(c *cli.Context) error {
	ci, err := newCipher(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}
	xk := ci.ExpandedKey()
	for r := 0; r <= aes128.Rounds; r++ {
		rk := xk.RoundKey(r)
		fmt.Fprintf(c.App.Writer, "%2d %s\n", r, keys.Format(rk[:]))
	}
	return nil
}
