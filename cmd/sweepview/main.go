// sweepview is the interactive sweep editor.
package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/sweepcad/internal/config"
	"github.com/Faultbox/sweepcad/internal/document"
	"github.com/Faultbox/sweepcad/internal/logger"
	"github.com/Faultbox/sweepcad/internal/viewer"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== SweepCAD ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	doc := document.New(cfg.Sweep.Kind, cfg.Sweep.Spans, document.Options{
		Steps:            cfg.Spline.Steps,
		SmoothTrajectory: cfg.Spline.SmoothTrajectory,
		Interpolate:      cfg.Spline.Interpolate,
	})

	path := document.FilePath(cfg.Sweep.DataDir, cfg.Sweep.Kind, cfg.Sweep.FileSuffix)
	if _, err := os.Stat(path); err == nil {
		// A bad file leaves an empty document; the editor still opens.
		_ = doc.Load(path)
	} else if !errors.Is(err, os.ErrNotExist) {
		logger.Warn("cannot read data file", zap.String("path", path), zap.Error(err))
	}

	v, err := viewer.New(cfg.Viewer, doc, path)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("viewer closed normally")
}
