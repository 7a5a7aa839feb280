// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/tuisplit/tuisplit/internal/timing"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	General GeneralConfig `toml:"general"`
	Format  FormatConfig  `toml:"format"`
}

// GeneralConfig maps run-wide display settings.
type GeneralConfig struct {
	// Comparison names the baseline run, e.g. "Personal Best".
	Comparison string `toml:"comparison"`
	// TimingMethod is "real-time" or "game-time".
	TimingMethod string `toml:"timing-method"`
	// SplitFormat is "time" or "diff" for finished split labels.
	SplitFormat string `toml:"split-format"`
}

// FormatConfig holds one display spec per readout.
type FormatConfig struct {
	// Timer formats the big attempt clock.
	Timer timing.FormatSpec `toml:"timer"`
	// Split formats absolute split times in the segment list.
	Split timing.FormatSpec `toml:"split"`
	// Segment formats diffs and per-segment durations.
	Segment timing.FormatSpec `toml:"segment"`
}

// Default returns the configuration used when no file exists.
func Default() FileConfig {
	timer := timing.DefaultFormatSpec()
	timer.Dynamic = true

	segment := timing.DefaultFormatSpec()
	segment.Dynamic = true

	return FileConfig{
		General: GeneralConfig{
			Comparison:   "Personal Best",
			TimingMethod: "real-time",
			SplitFormat:  "diff",
		},
		Format: FormatConfig{
			Timer:   timer,
			Split:   timing.DefaultFormatSpec(),
			Segment: segment,
		},
	}
}

// LoadConfig reads a TOML config from the given path, decoding over
// the defaults. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	cfg := Default()
	if path == "" {
		return cfg, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to stat config: %w", err)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
