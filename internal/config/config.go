// Package config loads the sweep viewer settings: defaults, then a YAML
// file, then command-line flags.
package config

import (
	"fmt"

	"github.com/Faultbox/sweepcad/pkg/sweep"
)

// Config holds all settings.
type Config struct {
	Spline  SplineConfig  `yaml:"spline"`
	Sweep   SweepConfig   `yaml:"sweep"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Logging LoggingConfig `yaml:"logging"`
}

// SplineConfig controls curve interpolation.
type SplineConfig struct {
	Steps            int  `yaml:"steps"`             // samples per segment
	SmoothTrajectory bool `yaml:"smooth_trajectory"` // interpolate the trajectory too
	Interpolate      bool `yaml:"interpolate"`       // false sweeps the raw control points
}

// SweepConfig selects the sweep and where documents are stored.
type SweepConfig struct {
	Kind       sweep.Kind `yaml:"kind"`
	Spans      int        `yaml:"spans"`
	DataDir    string     `yaml:"data_dir"`
	FileSuffix string     `yaml:"file_suffix"`
}

// ViewerConfig holds window and interaction settings.
type ViewerConfig struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Fullscreen  bool    `yaml:"fullscreen"`
	VSync       bool    `yaml:"vsync"`
	PointSize   float32 `yaml:"point_size"`
	RotateStep  float64 `yaml:"rotate_step"`  // degrees per key press
	CameraSpeed float32 `yaml:"camera_speed"` // world units per key press
	RenderMode  string  `yaml:"render_mode"`  // points, lines or triangles

	ShowBounds    bool   `yaml:"show_bounds"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the stock settings.
func Default() *Config {
	return &Config{
		Spline: SplineConfig{
			Steps:            10,
			SmoothTrajectory: true,
			Interpolate:      true,
		},
		Sweep: SweepConfig{
			Kind:       sweep.Translational,
			Spans:      12,
			DataDir:    ".",
			FileSuffix: "data.txt",
		},
		Viewer: ViewerConfig{
			Width:       800,
			Height:      800,
			VSync:       true,
			PointSize:   6,
			RotateStep:  0.2,
			CameraSpeed: 0.025,
			RenderMode:  "triangles",

			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Spline.Steps < 1 {
		return fmt.Errorf("spline.steps must be positive, got %d", c.Spline.Steps)
	}
	if c.Sweep.Spans < 1 {
		return fmt.Errorf("sweep.spans must be positive, got %d", c.Sweep.Spans)
	}
	if c.Sweep.FileSuffix == "" {
		return fmt.Errorf("sweep.file_suffix must not be empty")
	}
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		return fmt.Errorf("viewer size must be positive, got %dx%d", c.Viewer.Width, c.Viewer.Height)
	}
	switch c.Viewer.RenderMode {
	case "points", "lines", "triangles":
	default:
		return fmt.Errorf("viewer.render_mode %q is not one of points, lines, triangles", c.Viewer.RenderMode)
	}
	return nil
}
