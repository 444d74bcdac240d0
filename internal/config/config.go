// Package config handles gridcast configuration loading and management.
package config

import (
	"math"
	"time"
)

// Config holds all gridcast settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Board    BoardConfig    `yaml:"board"`
	Terminal TerminalConfig `yaml:"terminal"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`

	ScreenshotDir string `yaml:"screenshot_dir"`
}

// ViewerConfig holds the cast fan and movement settings.
type ViewerConfig struct {
	FOVDegrees      float64 `yaml:"fov_degrees"`
	Rays            int     `yaml:"rays"`
	MoveStep        float64 `yaml:"move_step"` // grid units per step
	TurnStepDegrees float64 `yaml:"turn_step_degrees"`
	Projection      float64 `yaml:"projection"` // K in K/distance
}

// FOV returns the field of view in radians.
func (v ViewerConfig) FOV() float64 {
	return v.FOVDegrees * math.Pi / 180
}

// TurnStep returns the turn step in radians.
func (v ViewerConfig) TurnStep() float64 {
	return v.TurnStepDegrees * math.Pi / 180
}

// BoardConfig holds board file settings.
type BoardConfig struct {
	Path       string   `yaml:"path"`        // empty = embedded default board
	SearchDirs []string `yaml:"search_dirs"` // searched for relative paths
}

// TerminalConfig holds terminal client settings.
type TerminalConfig struct {
	Tick time.Duration `yaml:"tick"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,

			ScreenshotDir: "screenshots",
		},
		Viewer: ViewerConfig{
			FOVDegrees:      90,
			Rays:            320,
			MoveStep:        0.25,
			TurnStepDegrees: 5,
			Projection:      10000,
		},
		Board: BoardConfig{
			SearchDirs: []string{".", "boards"},
		},
		Terminal: TerminalConfig{
			Tick: 50 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
