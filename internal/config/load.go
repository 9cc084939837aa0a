package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/meshview/internal/engine/controls"
	"github.com/Faultbox/meshview/internal/engine/transform"
	"github.com/Faultbox/meshview/internal/logger"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks settings that would otherwise fail deep inside startup.
func (c *Config) Validate() error {
	var errs []error

	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: window size %dx%d must be positive",
			c.Graphics.Width, c.Graphics.Height))
	}
	if c.Mesh.Path == "" {
		errs = append(errs, errors.New("mesh: path is empty"))
	}
	if _, err := transform.ParseMode(c.Transform.Mode); err != nil {
		errs = append(errs, fmt.Errorf("transform: %w", err))
	}
	if _, err := controls.ResolveKeyNames(c.Controls.Keys); err != nil {
		errs = append(errs, fmt.Errorf("controls: %w", err))
	}
	if !logger.ValidLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("logging: unknown level %q", c.Logging.Level))
	}

	return errors.Join(errs...)
}

// Steps returns the per-frame control increments.
func (c *Config) Steps() controls.Steps {
	return controls.Steps{
		Translate: c.Controls.TranslateStep,
		Rotate:    c.Controls.RotateStep,
		Scale:     c.Controls.ScaleStep,
	}
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "meshview")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "meshview")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "meshview")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "meshview")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
