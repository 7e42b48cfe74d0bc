package config

import (
	"flag"

	"github.com/Faultbox/sweepcad/pkg/sweep"
)

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagFile   = flag.String("file", "", "Data file suffix (file is <kind>_<suffix>)")
	flagKind   = flag.String("kind", "", "Sweep kind: translational or rotational")
	flagSpans  = flag.Int("spans", 0, "Rotational span count")
	flagSteps  = flag.Int("steps", 0, "Spline samples per segment")
	flagWidth  = flag.Int("width", 0, "Window width")
	flagHeight = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagFile != "" {
		cfg.Sweep.FileSuffix = *flagFile
	}
	if *flagKind != "" {
		kind, err := sweep.ParseKind(*flagKind)
		if err != nil {
			return err
		}
		cfg.Sweep.Kind = kind
	}
	if *flagSpans > 0 {
		cfg.Sweep.Spans = *flagSpans
	}
	if *flagSteps > 0 {
		cfg.Spline.Steps = *flagSteps
	}
	if *flagWidth > 0 {
		cfg.Viewer.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Viewer.Height = *flagHeight
	}
	return nil
}
