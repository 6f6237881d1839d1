// Package main provides the operator CLI for schema migrations, leaderboard
// recomputation, active round repair and admin promotion.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/futamigo/internal/config"
	"github.com/festy23/futamigo/internal/database"
	"github.com/festy23/futamigo/pkg/logger"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "futamigo-admin: failed to load .env: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "futamigo-admin: failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	open := func(ctx context.Context) (*gorm.DB, error) {
		return database.Open(ctx, database.LoadConfigFromEnv(), log)
	}

	if err := newApp(open, log).Run(os.Args); err != nil {
		log.Errorw("command failed", "error", err)
		os.Exit(1)
	}
}

// opener connects to the database a command works on.
type opener func(ctx context.Context) (*gorm.DB, error)

func newApp(open opener, log *zap.SugaredLogger) *cli.App {
	return &cli.App{
		Name:  "futamigo-admin",
		Usage: "operate a futamigo pool database",
		Commands: []*cli.Command{
			migrateCommand(open),
			leaderboardCommand(open, log),
			roundsCommand(open, log),
			participantsCommand(open, log),
		},
	}
}

// withDB opens the database, runs fn and closes the connection.
func withDB(c *cli.Context, open opener, fn func(db *gorm.DB) error) error {
	db, err := open(c.Context)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()
	return fn(db)
}
