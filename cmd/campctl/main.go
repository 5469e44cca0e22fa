// Command campctl runs database maintenance tasks: migrations and fixture data.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"campdirectory/internal/config"
	"campdirectory/internal/database"
	"campdirectory/internal/logger"
	"campdirectory/internal/repository"
	"campdirectory/internal/seed"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "campctl",
		Usage: "manage the campdirectory database",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "info", EnvVars: []string{"LOG_LEVEL"}},
		},
		Before: func(c *cli.Context) error {
			logger.Init(c.String("log-level"))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "apply or inspect schema migrations",
				Subcommands: []*cli.Command{
					{Name: "up", Usage: "apply pending migrations", Action: withDB(func(c *cli.Context, db *database.DB) error {
						return db.RunMigrations(c.Context)
					})},
					{Name: "down", Usage: "roll back the latest migration", Action: withDB(func(c *cli.Context, db *database.DB) error {
						return db.RollbackMigration(c.Context)
					})},
					{Name: "status", Usage: "print migration status", Action: withDB(func(c *cli.Context, db *database.DB) error {
						return db.MigrationStatus(c.Context)
					})},
				},
			},
			{
				Name:  "seed",
				Usage: "load or wipe fixture data",
				Subcommands: []*cli.Command{
					{
						Name:  "import",
						Usage: "insert the fixtures found in --dir",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "dir", Value: "data/seed", Usage: "directory holding the JSON fixtures"},
						},
						Action: withDB(func(c *cli.Context, db *database.DB) error {
							data, err := seed.Load(c.String("dir"))
							if err != nil {
								return err
							}
							return seed.NewSeeder(repository.NewRepository(db.DB), db.DB).Import(c.Context, data)
						}),
					},
					{
						Name:  "destroy",
						Usage: "truncate all data tables",
						Action: withDB(func(c *cli.Context, db *database.DB) error {
							return seed.NewSeeder(repository.NewRepository(db.DB), db.DB).Destroy(c.Context)
						}),
					},
				},
			},
		},
	}
}

// withDB opens a connection for the duration of one command.
func withDB(fn func(c *cli.Context, db *database.DB) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		db, err := database.ConnectDB(c.Context, cfg)
		if err != nil {
			return err
		}
		defer db.CloseDB()

		return fn(c, db)
	}
}
