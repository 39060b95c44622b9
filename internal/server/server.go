// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/config"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/database"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/handlers"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/i18n"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/repository"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/admin"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/auth"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/broadcast"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/email"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/payment"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/report"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/team"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/verification"
	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"
	"github.com/vinovest/sqlx"
)

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	setupLogger(cfg.Log)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
		"environment", cfg.Server.Environment,
	)

	// Database, migrations included
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	// i18n
	if initErr := i18n.Init(); initErr != nil {
		return fmt.Errorf("failed to init i18n: %w", initErr)
	}

	// Email
	sender, err := email.NewSender(&cfg.SMTP)
	if err != nil {
		return fmt.Errorf("failed to configure email: %w", err)
	}

	e := New(cfg, db, sender)

	return startWithGracefulShutdown(ctx, e, cfg)
}

// New builds the Echo instance with all services, middleware and routes.
func New(cfg *config.Config, db *sqlx.DB, sender email.Sender) *echo.Echo {
	repo := repository.New(db)
	notifier := email.NewNotifier(sender, cfg.Server.FrontendURL)
	tokens := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.TTL)
	authSvc := auth.NewService(repo, tokens)

	h := handlers.New(handlers.Services{
		Auth:         authSvc,
		Admins:       admin.NewService(repo, notifier),
		Teams:        team.NewService(repo, notifier),
		Payments:     payment.NewService(repo, notifier, payment.NewGateway(cfg.Payment)),
		Broadcast:    broadcast.NewService(repo, notifier),
		Verification: verification.NewService(repo, notifier),
		Reports:      report.NewService(repo),
	})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.Validator{}
	e.HTTPErrorHandler = handlers.NewHTTPErrorHandler(cfg.Server.IsDevelopment())

	setupMiddleware(e, cfg)
	setupRoutes(e, h, authSvc)

	return e
}

func startWithGracefulShutdown(ctx context.Context, e *echo.Echo, cfg *config.Config) error {
	// Setup TLS
	tlsResult, err := SetupTLS(cfg)
	if err != nil {
		return fmt.Errorf("TLS setup failed: %w", err)
	}

	// Channel for server errors
	errChan := make(chan error, 2)

	// HTTP redirect server for ACME mode
	var httpServer *http.Server

	switch tlsResult.Mode {
	case TLSModeOff:
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		go func() {
			slog.Info("Server running", "url", cfg.Server.BaseURL)
			if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()

	case TLSModeACME:
		go func() {
			slog.Info("Server running", "url", cfg.Server.BaseURL)
			if err := startTLSServer(e, ":443", tlsResult.TLSConfig); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()

		httpServer = &http.Server{
			Addr:              ":80",
			Handler:           tlsResult.HTTPHandler,
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			slog.Info("HTTP to HTTPS redirect active", "addr", ":80")
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()

	case TLSModeManual:
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		go func() {
			slog.Info("Server running", "url", cfg.Server.BaseURL)
			if err := startTLSServer(e, addr, tlsResult.TLSConfig); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()
	}

	// Wait for interrupt signal or error
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		slog.Info("shutting down server")
	case err := <-errChan:
		slog.Error("server error", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown main server", "error", err)
	}

	if httpServer != nil {
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown HTTP redirect server", "error", err)
		}
	}

	slog.Info("server stopped")
	return nil
}

// startTLSServer starts the Echo server with a custom TLS configuration.
func startTLSServer(e *echo.Echo, addr string, tlsConfig *tls.Config) error {
	lc := &net.ListenConfig{}
	ln, err := lc.Listen(context.Background(), "tcp", addr)
	if err != nil {
		return err
	}
	e.TLSListener = tls.NewListener(ln, tlsConfig)
	e.TLSServer.TLSConfig = tlsConfig
	return e.Server.Serve(e.TLSListener)
}
