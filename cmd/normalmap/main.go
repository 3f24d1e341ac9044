// Package main is the entry point for the normal-mapping demo renderer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/normalmap/internal/app"
	"github.com/Faultbox/normalmap/internal/config"
	"github.com/Faultbox/normalmap/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	if path := config.DumpPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Dump config: %v\n", err)
			return 1
		}
		fmt.Printf("Config written to %s\n", path)
		return 0
	}

	opts := logger.Defaults()
	opts.Level = cfg.Logging.Level
	opts.File = cfg.Logging.LogFile
	if cfg.Logging.MaxSizeMB > 0 {
		opts.MaxSizeMB = cfg.Logging.MaxSizeMB
	}
	if cfg.Logging.MaxBackups > 0 {
		opts.MaxBackups = cfg.Logging.MaxBackups
	}
	if err := logger.Init(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	log := logger.Named("main")
	log.Info("normal map renderer starting")
	log.Sugar().Debugf("config: %+v", cfg)

	a, err := app.New(cfg)
	if err != nil {
		log.Error("failed to start", zap.Error(err))
		return 1
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		log.Error("renderer error", zap.Error(err))
		return 1
	}

	log.Info("renderer closed normally")
	return 0
}
