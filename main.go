// main.go - Entry point and dependency injection
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/sstent/fittracker/internal/cli"
	"github.com/sstent/fittracker/internal/config"
)

func main() {
	// Load environment variables from .env file
	envErr := godotenv.Load()

	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if envErr != nil {
		logger.Debug("no .env file found, using system environment variables")
	}

	app := &cli.App{Config: cfg, Logger: logger}
	if err := cli.NewRootCmd(app).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
