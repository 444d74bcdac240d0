package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when loaded settings cannot drive a viewer.
var ErrInvalidConfig = errors.New("invalid config")

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over discovery
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the viewer and renderer depend on.
func (c *Config) Validate() error {
	switch {
	case c.Graphics.Width <= 0 || c.Graphics.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Graphics.Width, c.Graphics.Height)
	case c.Viewer.Rays <= 0:
		return fmt.Errorf("%w: rays must be positive, got %d", ErrInvalidConfig, c.Viewer.Rays)
	case !(c.Viewer.FOVDegrees > 0 && c.Viewer.FOVDegrees < 180):
		return fmt.Errorf("%w: fov_degrees must be in (0, 180), got %v", ErrInvalidConfig, c.Viewer.FOVDegrees)
	case !(c.Viewer.MoveStep > 0):
		return fmt.Errorf("%w: move_step must be positive, got %v", ErrInvalidConfig, c.Viewer.MoveStep)
	case !(c.Viewer.Projection > 0):
		return fmt.Errorf("%w: projection must be positive, got %v", ErrInvalidConfig, c.Viewer.Projection)
	case c.Terminal.Tick <= 0:
		return fmt.Errorf("%w: terminal tick must be positive, got %v", ErrInvalidConfig, c.Terminal.Tick)
	}
	return nil
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
		return filepath.Join(home, "Library", "Application Support", "Gridcast")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Gridcast")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "gridcast")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "gridcast")
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
