// Package main runs a headless seabed session and writes a per-frame CSV
// trace of the whale and the player.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/seabed/internal/config"
	"github.com/Faultbox/seabed/internal/logger"
	"github.com/Faultbox/seabed/internal/trace"
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

	if err := run(cfg); err != nil {
		logger.Error("trace failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func run(cfg *config.Config) error {
	rec, err := trace.Create(cfg.Trace.Output, cfg.Trace.Compress)
	if err != nil {
		return err
	}

	if err := trace.Run(cfg, rec); err != nil {
		_ = rec.Close()
		return err
	}
	if err := rec.Close(); err != nil {
		return err
	}

	logger.Info("trace written",
		zap.String("path", cfg.Trace.Output),
		zap.Bool("compressed", cfg.Trace.Compress))
	rec.Summary().Log(logger.Log)
	return nil
}
