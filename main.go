// ABOUTME: Entry point for the peerdisco discovery experiment
// ABOUTME: Loads the environment, parses CLI config, and runs both loops
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/harperreed/peerdisco/internal/app"
	"github.com/harperreed/peerdisco/internal/config"
	"github.com/harperreed/peerdisco/internal/version"
)

func main() {
	// Best-effort, a missing .env file is fine.
	_ = godotenv.Load()

	logger := newLogger()

	if len(os.Args) > 1 && os.Args[1] == "-version" {
		fmt.Printf("%s %s\n", version.Product, version.Version)
		return
	}

	cfg, err := config.FromArgs(os.Args[0], os.Args[1:])
	if err != nil {
		logger.Fatal("invalid arguments", "err", err)
	}

	logger.Info("hi there!",
		"instance", cfg.Instance,
		"service", cfg.ServiceName(),
		"port", cfg.Port,
		"properties", len(cfg.Properties))

	a, err := app.Start(cfg, logger)
	if err != nil {
		logger.Fatal("startup failed", "err", err)
	}

	// Either loop failing tears the whole process down; there is no
	// retry policy.
	if err := a.Run(context.Background()); err != nil {
		logger.Fatal("terminated", "err", err)
	}
}

// newLogger builds the process logger once, with the level taken from
// LOG_LEVEL (after .env is loaded).
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          version.Product,
	})
	if lvl, err := log.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}
