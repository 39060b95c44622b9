// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package handlers implements the JSON API on top of the services.
package handlers

import (
	"net/http"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/admin"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/auth"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/broadcast"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/payment"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/report"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/team"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/verification"
	"github.com/labstack/echo/v4"
)

// Services are the dependencies of the handlers.
type Services struct {
	Auth         *auth.Service
	Admins       *admin.Service
	Teams        *team.Service
	Payments     *payment.Service
	Broadcast    *broadcast.Service
	Verification *verification.Service
	Reports      *report.Service
}

// Handlers contains all HTTP handlers.
type Handlers struct {
	auth         *auth.Service
	admins       *admin.Service
	teams        *team.Service
	payments     *payment.Service
	broadcast    *broadcast.Service
	verification *verification.Service
	reports      *report.Service
}

// New creates a new Handlers instance.
func New(s Services) *Handlers {
	return &Handlers{
		auth:         s.Auth,
		admins:       s.Admins,
		teams:        s.Teams,
		payments:     s.Payments,
		broadcast:    s.Broadcast,
		verification: s.Verification,
		reports:      s.Reports,
	}
}

// Health returns the health status.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Welcome describes the API at the root path.
func (h *Handlers) Welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Welcome to the SUST CSE Carnival 2026 API",
		"health":  "/health",
		"api":     "/api",
	})
}
