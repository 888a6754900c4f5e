package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bessent-hq/bessent-fiscal-reporter/internal/app"
	"github.com/bessent-hq/bessent-fiscal-reporter/internal/config"
	"github.com/bessent-hq/bessent-fiscal-reporter/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "reporter start failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("reporter starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reporter, err := app.NewReporter(cfg, os.Stdout, log)
	if err != nil {
		logger.ErrorObj("failed to initialize reporter", "error", err)
		return err
	}

	if err := reporter.Run(ctx); err != nil {
		return fmt.Errorf("reporter run: %w", err)
	}

	return nil
}
