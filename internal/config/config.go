// Package config loads progress bar defaults from TQDM_-prefixed
// environment variables and an optional user config file. Flags parsed by
// the CLI take precedence over everything loaded here.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/tqdm-go/tqdm/pkg/tqdm"
)

// Config holds the externally configurable subset of tqdm.Options.
// Intervals are in seconds to match the TQDM_MININTERVAL / TQDM_DELAY
// environment contract.
type Config struct {
	// MinInterval is the minimum redraw interval in seconds.
	MinInterval float64 `mapstructure:"mininterval"`
	// MinIters is the minimum iteration count between redraws.
	MinIters int64 `mapstructure:"miniters"`
	// ASCII selects the ASCII bar glyphs.
	ASCII bool `mapstructure:"ascii"`
	// Disable suppresses the bar entirely.
	Disable bool `mapstructure:"disable"`
	// Unit is the iteration unit label.
	Unit string `mapstructure:"unit"`
	// UnitScale enables magnitude-prefixed counts.
	UnitScale bool `mapstructure:"unit_scale"`
	// DynamicNCols re-queries the terminal width on redraw.
	DynamicNCols bool `mapstructure:"dynamic_ncols"`
	// Smoothing is the rate-smoothing weight in [0,1].
	Smoothing float64 `mapstructure:"smoothing"`
	// NCols is the fixed display width; <= 0 queries the terminal.
	NCols int `mapstructure:"ncols"`
	// Colour tints the bar segment on colour terminals.
	Colour string `mapstructure:"colour"`
	// Delay is the startup delay in seconds before the bar shows.
	Delay float64 `mapstructure:"delay"`
}

// Load reads configuration with the following precedence, highest first:
//  1. TQDM_* environment variables (TQDM_MININTERVAL, TQDM_NCOLS, ...)
//  2. User config file (~/.config/tqdm/config.yaml)
//  3. Built-in defaults (tqdm.DefaultOptions)
func Load() (*Config, error) {
	v := viper.New()

	defaults := tqdm.DefaultOptions()
	v.SetDefault("mininterval", defaults.MinInterval.Seconds())
	v.SetDefault("miniters", defaults.MinIters)
	v.SetDefault("ascii", defaults.ASCII)
	v.SetDefault("disable", defaults.Disable)
	v.SetDefault("unit", defaults.Unit)
	v.SetDefault("unit_scale", defaults.UnitScale)
	v.SetDefault("dynamic_ncols", defaults.DynamicNCols)
	v.SetDefault("smoothing", defaults.Smoothing)
	v.SetDefault("ncols", defaults.NCols)
	v.SetDefault("colour", defaults.Colour)
	v.SetDefault("delay", defaults.Delay.Seconds())

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	v.SetEnvPrefix("TQDM")
	v.AutomaticEnv()

	// Bind each key explicitly so Unmarshal sees env-only values.
	for _, key := range []string{
		"mininterval", "miniters", "ascii", "disable", "unit",
		"unit_scale", "dynamic_ncols", "smoothing", "ncols", "colour",
		"delay",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding env for %s: %w", key, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// Apply overlays the loaded values onto opts and returns the result.
// Out-of-range values pass through unchanged; tqdm.New defaults them.
func (c *Config) Apply(opts tqdm.Options) tqdm.Options {
	opts.MinInterval = time.Duration(c.MinInterval * float64(time.Second))
	opts.MinIters = c.MinIters
	opts.ASCII = c.ASCII
	opts.Disable = c.Disable
	opts.Unit = c.Unit
	opts.UnitScale = c.UnitScale
	opts.DynamicNCols = c.DynamicNCols
	opts.Smoothing = c.Smoothing
	opts.NCols = c.NCols
	opts.Colour = c.Colour
	opts.Delay = time.Duration(c.Delay * float64(time.Second))
	return opts
}

// userConfigDir returns the XDG config directory for tqdm.
func userConfigDir() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "tqdm")
}
