// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"codeberg.org/oliverandrich/go-webapp-i18n/internal/models"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/repository"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/services/auth"
	"github.com/urfave/cli/v3"
	"github.com/vinovest/sqlx"
)

func userCommand() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "Manage user accounts",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List users",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "trashed", Usage: "List closed accounts instead"},
				},
				Action: withDB(userList),
			},
			{
				Name:  "create",
				Usage: "Create a user",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
				},
				Action: withDB(userCreate),
			},
			{
				Name:      "delete",
				Usage:     "Close an account (soft delete)",
				ArgsUsage: "<id>",
				Action:    withDB(userByID((*repository.Repository).SoftDeleteUser, "closed")),
			},
			{
				Name:      "restore",
				Usage:     "Reopen a closed account",
				ArgsUsage: "<id>",
				Action:    withDB(userByID((*repository.Repository).RestoreUser, "restored")),
			},
			{
				Name:      "verify",
				Usage:     "Mark the email address of a user as verified",
				ArgsUsage: "<id>",
				Action:    withDB(userByID((*repository.Repository).MarkEmailVerified, "verified")),
			},
		},
	}
}

func userList(ctx context.Context, cmd *cli.Command, db *sqlx.DB) error {
	repo := repository.New(db)

	var (
		users []models.User
		err   error
	)
	if cmd.Bool("trashed") {
		users, err = repo.ListTrashedUsers(ctx)
	} else {
		users, err = repo.ListUsers(ctx)
	}
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.Root().Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tLOCALE\tVERIFIED")
	for _, u := range users {
		verified := "-"
		if u.HasVerifiedEmail() {
			verified = u.EmailVerifiedAt.String()
		}
		locale := u.Locale
		if locale == "" {
			locale = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, locale, verified)
	}
	return w.Flush()
}

func userCreate(ctx context.Context, cmd *cli.Command, db *sqlx.DB) error {
	svc := auth.NewService(repository.New(db))
	user, err := svc.Register(ctx, models.UserAttributes{
		Name:     cmd.String("name"),
		Email:    cmd.String("email"),
		Password: cmd.String("password"),
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.Root().Writer, "created user %d\n", user.ID)
	return err
}

// userByID runs op against the user whose id is the first argument.
func userByID(op func(*repository.Repository, context.Context, int64) error, done string) func(context.Context, *cli.Command, *sqlx.DB) error {
	return func(ctx context.Context, cmd *cli.Command, db *sqlx.DB) error {
		id, err := strconv.ParseInt(cmd.Args().First(), 10, 64)
		if err != nil {
			return fmt.Errorf("expected a user id, got %q", cmd.Args().First())
		}
		if err := op(repository.New(db), ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("user %d: %w", id, err)
			}
			return err
		}
		_, err = fmt.Fprintf(cmd.Root().Writer, "user %d %s\n", id, done)
		return err
	}
}
