// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/dante-signal31/cifra/internal/cipher"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Cifra CifraConfig `toml:"cifra"`
}

// CifraConfig maps tool-wide settings. Pointer fields distinguish
// absent keys from zero values.
type CifraConfig struct {
	Charset  *string `toml:"charset"`
	Database *string `toml:"database"`
	Workers  *int    `toml:"workers"`
}

// Config carries the effective settings after merging defaults, file
// values and flags.
type Config struct {
	Charset  string
	Database string
	Workers  int
}

// Default returns the built-in settings. A zero Workers value lets
// attacks size their pool from the usable CPU count.
func Default() Config {
	return Config{
		Charset:  cipher.DefaultCharset,
		Database: DefaultDBPath(),
	}
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
