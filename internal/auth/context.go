// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package auth holds the authenticated principal and the segment scope rules.
package auth

import (
	"context"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/ctxkeys"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
)

// Principal is the admin on whose behalf a request runs.
type Principal struct {
	AdminID      string
	Email        string
	IsSuperAdmin bool
	Scopes       []models.Segment
}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ctxkeys.Principal{}, p)
}

// GetPrincipal returns the authenticated admin from the context, or nil.
func GetPrincipal(ctx context.Context) *Principal {
	if p, ok := ctx.Value(ctxkeys.Principal{}).(*Principal); ok {
		return p
	}
	return nil
}
