// Package config loads CLI settings from aes128.yaml and AES128_* environment
// variables. Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"

	"aescore/pkg/aes128"

	"github.com/spf13/viper"
)

const (
	FileName  = "aes128"
	EnvPrefix = "AES128"
)

type Config struct {
	Substitution string `mapstructure:"substitution"`
	Debug        bool   `mapstructure:"debug"`
	LogDB        string `mapstructure:"log_db"`
}

func DefaultConfig() *Config {
	return &Config{
		Substitution: aes128.SubstitutionTable.String(),
		LogDB:        "aes128.db",
	}
}

// Load reads configuration in increasing precedence: defaults, config file,
// environment. A non-empty file must exist; otherwise the search paths are
// tried and a missing file is not an error.
func Load(file string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetDefault("substitution", cfg.Substitution)
	v.SetDefault("debug", cfg.Debug)
	v.SetDefault("log_db", cfg.LogDB)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", file, err)
		}
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/aescore/")
		v.AddConfigPath("$HOME/.aescore")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: %w", err)
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := aes128.ParseSubstitutionMode(c.Substitution); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.LogDB == "" {
		return errors.New("config: log_db must not be empty")
	}
	return nil
}

// Mode returns the parsed substitution mode. Call after Validate.
func (c *Config) Mode() aes128.SubstitutionMode {
	m, _ := aes128.ParseSubstitutionMode(c.Substitution)
	return m
}
