package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds per-user defaults. Every field is optional.
type Config struct {
	Maintainer Maintainer `yaml:"maintainer"`
	Package    Package    `yaml:"package"`
	Prompt     Prompt     `yaml:"prompt"`
	Docker     Docker     `yaml:"docker"`
	Bringup    Bringup    `yaml:"bringup"`
}

type Maintainer struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

type Package struct {
	License   string `yaml:"license"`
	BuildType string `yaml:"build_type"`
}

type Prompt struct {
	// TUI selects the arrow-key picker instead of numbered prompts.
	TUI bool `yaml:"tui"`
}

type Docker struct {
	User string `yaml:"user"`
}

type Bringup struct {
	// Templates is a directory holding a custom template set.
	Templates string `yaml:"templates"`
}

// DefaultPath returns $XDG_CONFIG_HOME/rtw/config.yaml, falling back to
// ~/.config/rtw/config.yaml.
func DefaultPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "rtw", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "rtw", "config.yaml"), nil
}

// Load reads the config at path. A missing file yields an empty Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if len(bytes.TrimSpace(data)) == 0 {
		return &cfg, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}
