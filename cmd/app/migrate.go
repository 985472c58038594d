// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package main

import (
	"context"
	"fmt"

	"codeberg.org/oliverandrich/go-webapp-i18n/internal/config"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/database"
	"github.com/urfave/cli/v3"
	"github.com/vinovest/sqlx"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Manage the database schema (pending migrations run on every start)",
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Print the current schema version",
				Action: withDB(migrateStatus),
			},
			{
				Name:   "down",
				Usage:  "Roll back the most recent migration",
				Action: withDB(migrateDown),
			},
			{
				Name:   "reset",
				Usage:  "Roll back all migrations",
				Action: withDB(migrateReset),
			},
		},
	}
}

// withDB opens the configured database for the duration of action.
func withDB(action func(context.Context, *cli.Command, *sqlx.DB) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg := config.NewFromCLI(cmd)
		db, err := database.Open(cfg.Database.DSN)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		return action(ctx, cmd, db)
	}
}

func migrateStatus(ctx context.Context, cmd *cli.Command, db *sqlx.DB) error {
	version, err := database.Version(ctx, db.DB)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.Root().Writer, "schema version: %d\n", version)
	return err
}

func migrateDown(ctx context.Context, cmd *cli.Command, db *sqlx.DB) error {
	if err := database.MigrateDown(ctx, db.DB); err != nil {
		return err
	}
	return migrateStatus(ctx, cmd, db)
}

func migrateReset(ctx context.Context, cmd *cli.Command, db *sqlx.DB) error {
	if err := database.MigrateReset(ctx, db.DB); err != nil {
		return err
	}
	return migrateStatus(ctx, cmd, db)
}
