package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/desertthunder/questlog/internal/services"
	"github.com/desertthunder/questlog/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	svc := services.NewBacklogAPI(services.BacklogOpts{
		BaseURL:   config.Server.BaseURL,
		Token:     config.Server.Token,
		RateLimit: config.Server.RateLimit,
		Timeout:   time.Duration(config.Server.TimeoutSeconds) * time.Second,
	})

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Service: svc,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "questlog",
		Usage:    "Track your game backlog from the terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
