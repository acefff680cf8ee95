package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	appName        = "drivelist"
	configFileName = "config"
	envPrefix      = "DRIVELIST"
)

// Config holds the user settings read from file, environment and flags.
type Config struct {
	LogLevel     string `mapstructure:"log_level"`
	Format       string `mapstructure:"format"`
	AliasDir     string `mapstructure:"alias_dir"`
	LsblkPath    string `mapstructure:"lsblk_path"`
	FillCapacity bool   `mapstructure:"fill_capacity"`
	Compression  string `mapstructure:"compression"`
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() Config {
	return Config{
		LogLevel:    "warn",
		Format:      "table",
		AliasDir:    defaultAliasDir,
		LsblkPath:   lsblkCommand,
		Compression: "gzip",
	}
}

// configDir returns $XDG_CONFIG_HOME/drivelist or its platform equivalent.
func configDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, appName), nil
}

// loadConfig layers defaults, the config file, DRIVELIST_* variables and the
// given flags, in increasing priority. An explicit configFile must exist; the
// default one is optional.
func loadConfig(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("alias_dir", defaults.AliasDir)
	v.SetDefault("lsblk_path", defaults.LsblkPath)
	v.SetDefault("fill_capacity", defaults.FillCapacity)
	v.SetDefault("compression", defaults.Compression)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName(configFileName)
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	if flags != nil {
		for key, flag := range map[string]string{
			"log_level":     "log-level",
			"format":        "format",
			"alias_dir":     "alias-dir",
			"lsblk_path":    "lsblk",
			"fill_capacity": "statfs",
		} {
			if f := flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, nil
}

// listOptions derives the enumeration options from the config.
func (c *Config) listOptions() listOptions {
	return listOptions{
		LsblkPath:    c.LsblkPath,
		AliasDir:     c.AliasDir,
		FillCapacity: c.FillCapacity,
	}
}
