// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package main

import (
	"context"
	"log"
	"os"

	"codeberg.org/oliverandrich/go-webapp-i18n/internal/config"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/server"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:   "app",
		Usage:  "Start the web application",
		Flags:  config.Flags(),
		Action: server.Run,
		Commands: []*cli.Command{
			migrateCommand(),
			userCommand(),
		},
	}
}
