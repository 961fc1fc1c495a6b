package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/st-doval17/myflix/internal/services"
	"github.com/st-doval17/myflix/internal/session"
	"github.com/st-doval17/myflix/internal/shared"
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

	if level, err := log.ParseLevel(config.Logging.Level); err == nil {
		shared.SetLogLevel(logger, level)
	}

	sessionPath, err := config.SessionPath()
	if err != nil {
		logger.Fatalf("failed to resolve session path: %v", err)
	}

	flixService := services.NewFlixService(config.API.BaseURL, nil, config.API.RequestsPerSecond)

	runner := NewRunner(RunnerOpts{
		Config: config,
		Flix:   flixService,
		Store:  session.NewFileStore(sessionPath),
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "myflix",
		Usage:    "Browse the myFlix movie catalog and manage your favorites",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotAuthenticated) {
			logger.Error(err)
			os.Exit(1)
		}
		logger.Fatalf("application error: %v", err)
	}
}
