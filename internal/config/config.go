// Package config loads the optional TOML defaults file for retriever:
// result count, worker count, and log level, overridden by any flag
// explicitly given on the CLI.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Defaults holds the subset of settings a config file may override.
// Unknown TOML keys are ignored for forward compatibility.
type Defaults struct {
	K        int    `toml:"k"`
	Workers  int    `toml:"workers"`
	LogLevel string `toml:"log_level"`
}

// Load reads and parses a TOML defaults file. A zero Defaults is returned
// (not an error) when path is empty — the --config flag is optional.
func Load(path string) (Defaults, error) {
	var d Defaults
	if path == "" {
		return d, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return d, fmt.Errorf("reading config file: %w", err)
	}
	if err := toml.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("parsing config file: %w", err)
	}
	return d, nil
}
