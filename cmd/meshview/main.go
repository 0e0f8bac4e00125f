// Package main is the entry point for the meshview preview window.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/skorren/meshforge/internal/config"
	"github.com/skorren/meshforge/internal/logger"
	"github.com/skorren/meshforge/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshview [options] <file.mfb|.obj|.gltf|.glb>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	v, err := viewer.New(cfg, flag.Arg(0))
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
