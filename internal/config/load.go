package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory and ConfigDir.
const FileName = "sweepcad.yaml"

// Load builds the configuration: defaults, then the config file, then flags.
// Relative paths read from the config file are taken relative to that file.
func Load() (*Config, error) {
	cfg := Default()

	path := ConfigPath()
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	if err := applyFlags(cfg); err != nil {
		return nil, fmt.Errorf("applying flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing FileName in the working
// directory or ConfigDir, or "" when there is none.
func findConfigFile() string {
	for _, path := range []string{FileName, filepath.Join(ConfigDir(), FileName)} {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
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
		return filepath.Join(home, "Library", "Application Support", "SweepCAD")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "SweepCAD")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "sweepcad")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "sweepcad")
	}
}

// loadFromFile merges the YAML at path over cfg. Unknown keys are errors, so
// a misspelled setting does not silently keep its default.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// Paths the file sets are resolved against its directory; the
	// defaults stay relative to the working directory.
	dataDir, shotDir := cfg.Sweep.DataDir, cfg.Viewer.ScreenshotDir
	cfg.Sweep.DataDir, cfg.Viewer.ScreenshotDir = "", ""

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		cfg.Sweep.DataDir, cfg.Viewer.ScreenshotDir = dataDir, shotDir
		return err
	}

	base := filepath.Dir(path)
	cfg.Sweep.DataDir = resolvePath(base, cfg.Sweep.DataDir, dataDir)
	cfg.Viewer.ScreenshotDir = resolvePath(base, cfg.Viewer.ScreenshotDir, shotDir)
	return nil
}

// resolvePath expands a leading ~ and anchors relative paths at base. An
// empty value falls back to def unchanged.
func resolvePath(base, value, def string) string {
	if value == "" {
		return def
	}
	if value == "~" || strings.HasPrefix(value, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(value[1:], "/"))
		}
	}
	if filepath.IsAbs(value) {
		return filepath.Clean(value)
	}
	return filepath.Join(base, value)
}
