package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// DefaultPath returns ~/.dirsize/dirsize.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find the user's home directory: %w", err)
	}
	return filepath.Join(home, ".dirsize", "dirsize.yaml"), nil
}

// Load reads path over the defaults. An empty path falls back to DefaultPath;
// a missing default file is not an error, a missing explicit file is.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read the config file %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse the config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// WriteDefault writes DefaultConfig to path, creating parent directories.
func WriteDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create the config directory %w", err)
	}
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects negative sizes and unknown names.
func (c Config) Validate() error {
	if c.Space.Threshold < 0 {
		return fmt.Errorf("%w: space.threshold must not be negative", ErrInvalid)
	}
	if c.Space.Capacity < 0 {
		return fmt.Errorf("%w: space.capacity must not be negative", ErrInvalid)
	}
	if c.Space.RequiredFree < 0 {
		return fmt.Errorf("%w: space.required_free must not be negative", ErrInvalid)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalid, c.LogLevel)
	}
	switch c.Trace.Prompt {
	case "", "bash", "zsh", "root":
	default:
		return fmt.Errorf("%w: unknown trace.prompt %q", ErrInvalid, c.Trace.Prompt)
	}
	return nil
}
