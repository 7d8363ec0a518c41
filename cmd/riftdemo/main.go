// Package main is the entry point for the stereo rendering demo.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/riftdemo/internal/app"
	"github.com/Faultbox/riftdemo/internal/config"
	"github.com/Faultbox/riftdemo/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

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

	logger.Info("=== Rift Demo ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	// Write a default config on first run so there is a file to edit.
	if config.ConfigPath() == "" && !config.FileExists() {
		if err := cfg.Save(); err != nil {
			logger.Warn("could not write default config", zap.Error(err))
		}
	}

	// Create and run the demo
	a, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to create application", zap.Error(err))
		os.Exit(1)
	}
	defer a.Close()

	// Run the main loop
	if err := a.Run(); err != nil {
		logger.Error("application error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("demo closed normally")
}
