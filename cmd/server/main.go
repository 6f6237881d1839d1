// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/festy23/futamigo/internal/app"
	"github.com/festy23/futamigo/internal/config"
	"github.com/festy23/futamigo/internal/database"
	"github.com/festy23/futamigo/internal/metrics"
	"github.com/festy23/futamigo/internal/schema"
	"github.com/festy23/futamigo/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}
	dbCfg := database.LoadConfigFromEnv()
	if err := dbCfg.Validate(); err != nil {
		return fmt.Errorf("database config validation failed: %w", err)
	}

	log, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, dbCfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warnw("failed to close database", "error", err)
		}
	}()

	if dbCfg.AutoMigrate {
		if err := database.Migrate(db, schema.Models()...); err != nil {
			return err
		}
		log.Infow("database schema up to date", "driver", dbCfg.Driver)
	} else {
		log.Infow("skipping migrations, run futamigo-admin migrate up", "driver", dbCfg.Driver)
	}

	gin.SetMode(cfg.GinMode)
	router := app.NewRouter(cfg, db, log, metrics.New())
	srv := app.NewServer(cfg.Server, router)

	if err := app.ListenAndServe(ctx, srv, cfg.Server, log); err != nil {
		log.Errorw("server stopped with error", "error", err)
		return err
	}
	log.Infow("server stopped")
	return nil
}
