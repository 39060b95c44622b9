// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package admin manages admin accounts and the dashboard figures.
package admin

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/apperr"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/auth"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/repository"
	authsvc "github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/auth"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/email"
)

const (
	msgNotFound        = "Admin not found"
	msgDuplicateEmail  = "An admin account with this email already exists"
	msgSuperAdminFixed = "The super admin account cannot be deleted"
	msgSuperAdminEdit  = "The super admin account cannot be modified"
	msgScopeRequired   = "At least one scope is required"

	// RecentTeams is the number of registrations shown on the dashboard.
	RecentTeams = 5
)

// Service manages admin accounts.
type Service struct {
	repo     *repository.Repository
	notifier *email.Notifier
}

// NewService creates an admin service.
func NewService(repo *repository.Repository, notifier *email.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

func validateScopes(scopes []models.Segment) error {
	if len(scopes) == 0 {
		return apperr.Validation(msgScopeRequired, apperr.FieldError{Path: "scopes", Message: msgScopeRequired})
	}
	for _, s := range scopes {
		if !s.Valid() {
			return apperr.Validation("Invalid scope: "+string(s), apperr.FieldError{Path: "scopes", Message: "Invalid scope"})
		}
	}
	return nil
}

// Create adds a regular admin with a generated password and emails the
// credentials. A failed email does not undo the account.
func (s *Service) Create(ctx context.Context, address string, scopes []models.Segment) (*models.Admin, error) {
	address = strings.ToLower(strings.TrimSpace(address))
	if err := validateScopes(scopes); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetAdminByEmail(ctx, address); err == nil {
		return nil, apperr.Conflict(msgDuplicateEmail)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Internal("failed to check admin email", err)
	}

	password, err := authsvc.GeneratePassword()
	if err != nil {
		return nil, apperr.Internal("failed to generate password", err)
	}
	hash, err := authsvc.HashPassword(password)
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}

	admin := &models.Admin{
		Email:        address,
		PasswordHash: hash,
		Status:       models.AdminActive,
		Scopes:       scopes,
	}
	if err := s.repo.CreateAdmin(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperr.Conflict(msgDuplicateEmail)
		}
		return nil, apperr.Internal("failed to create admin", err)
	}
	if admin, err = s.repo.GetAdminByID(ctx, admin.ID); err != nil {
		return nil, apperr.Internal("failed to reload admin", err)
	}

	if err := s.notifier.SendAdminCredentials(ctx, admin.Email, password); err != nil {
		slog.Error("admin_credentials_email_failed", "admin_id", admin.ID, "error", err)
	}
	slog.Info("admin_created", "admin_id", admin.ID, "email", admin.Email)
	return admin, nil
}

// List returns every admin, newest first.
func (s *Service) List(ctx context.Context) ([]models.Admin, error) {
	admins, err := s.repo.ListAdmins(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to list admins", err)
	}
	return admins, nil
}

// Get returns a single admin.
func (s *Service) Get(ctx context.Context, id string) (*models.Admin, error) {
	admin, err := s.repo.GetAdminByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(msgNotFound)
		}
		return nil, apperr.Internal("failed to load admin", err)
	}
	return admin, nil
}

// Update replaces the scopes of a regular admin and optionally its status.
func (s *Service) Update(ctx context.Context, id string, scopes []models.Segment, status *models.AdminStatus) (*models.Admin, error) {
	if err := validateScopes(scopes); err != nil {
		return nil, err
	}
	if status != nil && !status.Valid() {
		return nil, apperr.Validation("Invalid status", apperr.FieldError{Path: "status", Message: "Invalid status"})
	}

	target, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if target.IsSuperAdmin {
		return nil, apperr.Forbidden(msgSuperAdminEdit)
	}

	admin, err := s.repo.UpdateAdminAccess(ctx, id, scopes, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(msgNotFound)
		}
		return nil, apperr.Internal("failed to update admin", err)
	}
	slog.Info("admin_updated", "admin_id", id, "scopes", admin.Scopes, "status", admin.Status)
	return admin, nil
}

// Delete removes a regular admin.
func (s *Service) Delete(ctx context.Context, id string) error {
	target, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if target.IsSuperAdmin {
		return apperr.Forbidden(msgSuperAdminFixed)
	}
	if err := s.repo.DeleteAdmin(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(msgNotFound)
		}
		return apperr.Internal("failed to delete admin", err)
	}
	slog.Info("admin_deleted", "admin_id", id, "email", target.Email)
	return nil
}

// EnsureSuperAdmin creates the super admin with every scope unless a super
// admin or an admin with that email exists. It reports whether an account
// was created.
func (s *Service) EnsureSuperAdmin(ctx context.Context, address, password string) (bool, error) {
	address = strings.ToLower(strings.TrimSpace(address))
	if address == "" || password == "" {
		return false, apperr.Validation("super admin email and password are required")
	}
	supers, err := s.repo.CountSuperAdmins(ctx)
	if err != nil {
		return false, apperr.Internal("failed to count super admins", err)
	}
	if supers > 0 {
		slog.Info("super_admin_exists", "count", supers)
		return false, nil
	}
	if _, err := s.repo.GetAdminByEmail(ctx, address); err == nil {
		return false, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, apperr.Internal("failed to check super admin", err)
	}

	hash, err := authsvc.HashPassword(password)
	if err != nil {
		return false, apperr.Internal("failed to hash password", err)
	}
	admin := &models.Admin{
		Email:        address,
		PasswordHash: hash,
		IsSuperAdmin: true,
		Status:       models.AdminActive,
		Scopes:       models.AllSegments(),
	}
	if err := s.repo.CreateAdmin(ctx, admin); err != nil {
		return false, apperr.Internal("failed to create super admin", err)
	}
	slog.Info("super_admin_created", "admin_id", admin.ID, "email", admin.Email)
	return true, nil
}

// Stats are the dashboard figures visible to one admin.
type Stats struct {
	TotalTeams    int64                    `json:"totalTeams"`
	SelectedTeams int64                    `json:"selectedTeams"`
	TotalRevenue  int64                    `json:"totalRevenue"`
	BySegment     map[models.Segment]int64 `json:"segmentStats"`
	RecentTeams   []models.Team            `json:"recentTeams"`
}

// Stats computes the dashboard for p, limited to its scopes.
func (s *Service) Stats(ctx context.Context, p *auth.Principal) (*Stats, error) {
	segments := auth.AllowedSegments(p, nil)
	totals, err := s.repo.GetTeamStats(ctx, segments)
	if err != nil {
		return nil, apperr.Internal("failed to compute stats", err)
	}
	recent, _, err := s.repo.ListTeams(ctx, repository.TeamFilter{Segments: segments, Limit: RecentTeams})
	if err != nil {
		return nil, apperr.Internal("failed to load recent teams", err)
	}
	if p == nil || !p.IsSuperAdmin {
		for seg := range totals.BySegment {
			if !auth.CanAccess(p, seg) {
				delete(totals.BySegment, seg)
			}
		}
	}
	return &Stats{
		TotalTeams:    totals.TotalTeams,
		SelectedTeams: totals.SelectedTeams,
		TotalRevenue:  totals.TotalRevenue,
		BySegment:     totals.BySegment,
		RecentTeams:   recent,
	}, nil
}
