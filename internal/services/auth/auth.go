// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package auth implements admin login and session token verification.
package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/apperr"
	appauth "github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/auth"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	msgInvalidCredentials = "Invalid email or password"
	msgSuspended          = "Your account has been suspended. Please contact the super admin."
	msgInvalidToken       = "Invalid or expired token"
)

// dummyHash is used for constant-time login to prevent timing attacks
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), PasswordCost)

// Service authenticates admins.
type Service struct {
	repo   *repository.Repository
	tokens *TokenIssuer
}

// NewService creates a new auth service.
func NewService(repo *repository.Repository, tokens *TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// LoginResult is a successful login.
type LoginResult struct {
	Token string
	Admin *models.Admin
}

// Login checks credentials and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	admin, err := s.repo.GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Constant-time: always perform bcrypt comparison to prevent timing attacks
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			slog.Warn("login_failed", "email", email, "reason", "admin_not_found")
			return nil, apperr.Unauthorized(msgInvalidCredentials)
		}
		return nil, apperr.Internal("failed to load admin", err)
	}

	if !admin.IsActive() {
		slog.Warn("login_failed", "email", email, "reason", "suspended")
		return nil, apperr.Forbidden(msgSuspended)
	}

	if !CheckPassword(admin.PasswordHash, password) {
		slog.Warn("login_failed", "email", email, "reason", "invalid_password")
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}

	token, err := s.tokens.Issue(admin.ID, admin.Email, admin.IsSuperAdmin)
	if err != nil {
		return nil, apperr.Internal("failed to issue token", err)
	}

	slog.Info("login_success", "admin_id", admin.ID, "email", email)
	return &LoginResult{Token: token, Admin: admin}, nil
}

// Authenticate verifies a session token and returns the principal with its
// scopes read fresh from the store.
func (s *Service) Authenticate(ctx context.Context, token string) (*appauth.Principal, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, apperr.Unauthorized(msgInvalidToken)
	}

	admin, err := s.repo.GetAdminByID(ctx, claims.AdminID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Unauthorized(msgInvalidToken)
		}
		return nil, apperr.Internal("failed to load admin", err)
	}
	if !admin.IsActive() {
		return nil, apperr.Forbidden(msgSuspended)
	}

	return &appauth.Principal{
		AdminID:      admin.ID,
		Email:        admin.Email,
		IsSuperAdmin: admin.IsSuperAdmin,
		Scopes:       admin.Scopes,
	}, nil
}
