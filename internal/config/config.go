package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Conversion contains the default conversion knobs. Flags override these.
type Conversion struct {
	Format  string `toml:"format"`
	Quality int    `toml:"quality"`
	Speed   int    `toml:"speed"`
	Threads int    `toml:"threads"`
	Backup  bool   `toml:"backup"`
}

// Paths contains directory configuration.
type Paths struct {
	StagingDir string `toml:"staging_dir"`
}

// Remote contains offload server configuration.
type Remote struct {
	Server   string `toml:"server"`
	Attempts int    `toml:"attempts"`
}

// Logging contains log output configuration.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config encapsulates all configuration values for comicconv.
type Config struct {
	Conversion Conversion `toml:"conversion"`
	Paths      Paths      `toml:"paths"`
	Remote     Remote     `toml:"remote"`
	Logging    Logging    `toml:"logging"`
}

// Sample returns the annotated sample configuration file.
func Sample() string { return sampleConfig }

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/comicconv/config.toml")
}

// Load parses and validates a configuration file. An empty path falls back
// to the default location; a missing file yields pure defaults. The
// returned config has all path fields expanded and conversion knobs
// normalized.
func Load(path string) (*Config, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		expanded, err := DefaultConfigPath()
		if err != nil {
			return "", false, err
		}
		path = expanded
	} else {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		path = expanded
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return path, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	return path, !info.IsDir(), nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
