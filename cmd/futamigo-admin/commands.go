package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/futamigo/internal/app"
	"github.com/festy23/futamigo/internal/database"
	"github.com/festy23/futamigo/internal/metrics"
	participantRepository "github.com/festy23/futamigo/internal/participant/repository"
	roundRepository "github.com/festy23/futamigo/internal/round/repository"
	roundService "github.com/festy23/futamigo/internal/round/service"
	"github.com/festy23/futamigo/internal/schema"
)

// migrationStatus is printed by the migrate subcommands.
type migrationStatus struct {
	Direction string `json:"direction"`
	Steps     int    `json:"steps,omitempty"`
	Driver    string `json:"driver"`
}

func migrateCommand(open opener) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply every pending migration",
				Action: func(c *cli.Context) error {
					return withDB(c, open, func(db *gorm.DB) error {
						if err := database.Migrate(db, schema.Models()...); err != nil {
							return err
						}
						return printJSON(c, migrationStatus{Direction: "up", Driver: db.Dialector.Name()})
					})
				},
			},
			{
				Name:  "down",
				Usage: "roll back postgres migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "steps", Value: 1, Usage: "number of migrations to roll back"},
				},
				Action: func(c *cli.Context) error {
					return withDB(c, open, func(db *gorm.DB) error {
						steps := c.Int("steps")
						if err := database.MigrateDown(db, steps); err != nil {
							return err
						}
						return printJSON(c, migrationStatus{Direction: "down", Steps: steps, Driver: db.Dialector.Name()})
					})
				},
			},
		},
	}
}

func leaderboardCommand(open opener, log *zap.SugaredLogger) *cli.Command {
	return &cli.Command{
		Name:  "leaderboard",
		Usage: "leaderboard maintenance",
		Subcommands: []*cli.Command{
			{
				Name:  "recompute",
				Usage: "rebuild the leaderboard from finalized matches",
				Action: func(c *cli.Context) error {
					return withDB(c, open, func(db *gorm.DB) error {
						resp, err := app.NewLeaderboard(db, log, metrics.New()).Recompute(c.Context)
						if err != nil {
							return fmt.Errorf("recompute failed: %w", err)
						}
						return printJSON(c, resp)
					})
				},
			},
		},
	}
}

func roundsCommand(open opener, log *zap.SugaredLogger) *cli.Command {
	newService := func(db *gorm.DB) roundService.Service {
		return roundService.New(roundRepository.New(db, log), db, log, metrics.New())
	}

	return &cli.Command{
		Name:  "rounds",
		Usage: "active round diagnosis and repair",
		Subcommands: []*cli.Command{
			{
				Name:  "diagnose",
				Usage: "report active rounds and the suggested one",
				Action: func(c *cli.Context) error {
					return withDB(c, open, func(db *gorm.DB) error {
						d, err := newService(db).DiagnoseRounds(c.Context)
						if err != nil {
							return err
						}
						return printJSON(c, d)
					})
				},
			},
			{
				Name:  "repair",
				Usage: "keep one active round and deactivate the rest",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "dry-run", Usage: "report the repair without writing"},
				},
				Action: func(c *cli.Context) error {
					return withDB(c, open, func(db *gorm.DB) error {
						res, err := newService(db).RepairActiveRounds(c.Context, c.Bool("dry-run"))
						if err != nil {
							return err
						}
						return printJSON(c, res)
					})
				},
			},
		},
	}
}

func participantsCommand(open opener, log *zap.SugaredLogger) *cli.Command {
	return &cli.Command{
		Name:  "participants",
		Usage: "participant account maintenance",
		Subcommands: []*cli.Command{
			{
				Name:  "promote",
				Usage: "grant (or with --revoke, remove) admin rights",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Required: true, Usage: "login of the participant"},
					&cli.BoolFlag{Name: "revoke", Usage: "remove admin rights instead"},
				},
				Action: func(c *cli.Context) error {
					return withDB(c, open, func(db *gorm.DB) error {
						repo := participantRepository.New(db, log)
						username := strings.TrimSpace(c.String("username"))
						p, err := repo.GetByUsername(c.Context, username)
						if err != nil {
							return fmt.Errorf("lookup %q: %w", username, err)
						}
						admin := !c.Bool("revoke")
						updated, err := repo.Update(c.Context, p.ID, map[string]interface{}{"admin": admin})
						if err != nil {
							return err
						}
						log.Infow("participant admin flag changed", "participant_id", p.ID, "admin", admin)
						return printJSON(c, updated)
					})
				},
			},
		},
	}
}

func printJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
