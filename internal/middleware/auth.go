// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package middleware holds the echo middleware guarding the admin API.
package middleware

import (
	"context"
	"strings"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/apperr"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/auth"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
	"github.com/labstack/echo/v4"
)

const (
	msgNoToken          = "No token provided"
	msgSuperAdminOnly   = "Super admin access required"
	msgInsufficientPerm = "Insufficient permissions"
)

// Authenticator turns a bearer token into a principal.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Principal, error)
}

// bearerToken extracts the token of an "Authorization: Bearer" header.
func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Authenticate requires a valid bearer token and stores the principal in
// the request context.
func Authenticate(a Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return apperr.Unauthorized(msgNoToken)
			}
			principal, err := a.Authenticate(c.Request().Context(), token)
			if err != nil {
				return err
			}
			ctx := auth.WithPrincipal(c.Request().Context(), principal)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// RequireSuperAdmin rejects principals that are not super admins.
func RequireSuperAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		p := auth.GetPrincipal(c.Request().Context())
		if p == nil {
			return apperr.Unauthorized(msgNoToken)
		}
		if !p.IsSuperAdmin {
			return apperr.Forbidden(msgSuperAdminOnly)
		}
		return next(c)
	}
}

// RequireScope passes super admins and admins holding any of allowed.
func RequireScope(allowed ...models.Segment) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := auth.GetPrincipal(c.Request().Context())
			if p == nil {
				return apperr.Unauthorized(msgNoToken)
			}
			if !auth.CanAccessAny(p, allowed) {
				return apperr.Forbidden(msgInsufficientPerm)
			}
			return next(c)
		}
	}
}
