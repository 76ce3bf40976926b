package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/marquee/internal/repositories"
	"github.com/desertthunder/marquee/internal/services"
	"github.com/desertthunder/marquee/internal/shared"
	"github.com/desertthunder/marquee/internal/store"
	"github.com/urfave/cli/v3"
)

const configPath = "config.toml"

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "error", err)
		}
	}

	var kv store.Store
	if db, err := shared.OpenDatabase(config.Database); err == nil {
		defer db.Close()
		kv = repositories.NewKVRepository(db)
	} else {
		logger.Warn("database unavailable, session and favorites will not persist", "error", err)
		kv = store.NewMemoryStore(nil)
	}

	tmdb := services.NewTMDBService(config.Catalog, shared.WithLogger(logger, "component", "tmdb"))

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Catalog:    tmdb,
		API:        tmdb.API(),
		Store:      kv,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "marquee",
		Usage:    "Browse TMDB movies and keep a list of favorites from the terminal",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		switch {
		case errors.Is(err, shared.ErrNotImplemented):
			logger.Warn("not implemented")
			os.Exit(0)
		case errors.Is(err, shared.ErrNotAuthenticated):
			logger.Error("you are not signed in; run 'marquee auth login' first")
			os.Exit(1)
		default:
			logger.Fatalf("application error: %v", err)
		}
	}
}
