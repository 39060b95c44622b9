// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/config"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/database"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/repository"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/admin"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/email"
	"github.com/urfave/cli/v3"
	"github.com/vinovest/sqlx"
)

// withDatabase opens the configured database for a one-off command.
func withDatabase(cmd *cli.Command, fn func(cfg *config.Config, db *sqlx.DB) error) error {
	cfg := config.NewFromCLI(cmd)
	setupLogger(cfg.Log)

	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	return fn(cfg, db)
}

// Seed creates the configured super admin. Running it twice is harmless.
func Seed(ctx context.Context, cmd *cli.Command) error {
	return withDatabase(cmd, func(cfg *config.Config, db *sqlx.DB) error {
		return seed(ctx, cfg, db)
	})
}

func seed(ctx context.Context, cfg *config.Config, db *sqlx.DB) error {
	svc := admin.NewService(repository.New(db), email.NewNotifier(email.LogSender{}, cfg.Server.FrontendURL))

	created, err := svc.EnsureSuperAdmin(ctx, cfg.Seed.SuperAdminEmail, cfg.Seed.SuperAdminPassword)
	if err != nil {
		return err
	}
	if created {
		slog.Info("seed complete", "email", cfg.Seed.SuperAdminEmail)
	} else {
		slog.Info("super admin already exists", "email", cfg.Seed.SuperAdminEmail)
	}
	return nil
}

// MigrateUp applies pending migrations and logs the schema version.
func MigrateUp(_ context.Context, cmd *cli.Command) error {
	return withDatabase(cmd, func(_ *config.Config, db *sqlx.DB) error {
		version, err := database.MigrationVersion(db.DB)
		if err != nil {
			return err
		}
		slog.Info("database schema", "version", version)
		return nil
	})
}

// MigrateDown rolls back the latest migration.
func MigrateDown(_ context.Context, cmd *cli.Command) error {
	return withDatabase(cmd, func(_ *config.Config, db *sqlx.DB) error {
		if err := database.MigrateDown(db.DB); err != nil {
			return err
		}
		slog.Info("rolled back latest migration")
		return nil
	})
}

// MigrateReset rolls back every migration.
func MigrateReset(_ context.Context, cmd *cli.Command) error {
	return withDatabase(cmd, func(_ *config.Config, db *sqlx.DB) error {
		if err := database.MigrateReset(db.DB); err != nil {
			return err
		}
		slog.Info("rolled back all migrations")
		return nil
	})
}
