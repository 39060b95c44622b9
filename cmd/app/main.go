// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/config"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/server"
	"github.com/urfave/cli/v3"
)

// Version information (set via ldflags during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	cmd := &cli.Command{
		Name:    "carnival",
		Usage:   "SUST CSE Carnival 2026 registration API",
		Version: fmt.Sprintf("%s (built %s)", Version, BuildTime),
		Flags:   config.Flags(),
		Action:  server.Run,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the API server",
				Action: server.Run,
			},
			{
				Name:   "seed",
				Usage:  "Create the super admin account if it does not exist",
				Action: server.Seed,
			},
			{
				Name:  "migrate",
				Usage: "Manage database migrations",
				Commands: []*cli.Command{
					{
						Name:   "up",
						Usage:  "Apply pending migrations and print the schema version",
						Action: server.MigrateUp,
					},
					{
						Name:   "down",
						Usage:  "Roll back the latest migration",
						Action: server.MigrateDown,
					},
					{
						Name:   "reset",
						Usage:  "Roll back all migrations",
						Action: server.MigrateReset,
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
