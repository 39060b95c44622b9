// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package team registers teams and serves the admin team views.
package team

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/apperr"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/auth"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/repository"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/email"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/report"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/validate"
)

const (
	msgNotFound     = "Team not found"
	msgAccessDenied = "Access denied"

	// MaxMembers is the largest team size.
	MaxMembers = 3
	// DefaultLimit and MaxLimit bound the page size of team listings.
	DefaultLimit = 10
	MaxLimit     = 100
)

// MemberInput is one member of a registration request. The first member
// becomes the team leader.
type MemberInput struct {
	Name           string            `json:"name" validate:"required,max=100"`
	Email          string            `json:"email" validate:"required,email"`
	Phone          string            `json:"phone" validate:"omitempty,min=10,max=15"`
	TShirtSize     models.TShirtSize `json:"tshirtSize" validate:"required,oneof=S M L XL XXL"`
	UniversityName string            `json:"universityName" validate:"required,max=200"`
}

// RegisterInput is a team registration request.
type RegisterInput struct {
	TeamName string         `json:"teamName" validate:"required,max=100"`
	Segment  models.Segment `json:"segment" validate:"required,oneof=IUPC HACKATHON DL_ENIGMA_2_0"`
	Members  []MemberInput  `json:"members" validate:"required,min=1,max=3,dive"`
}

func (in *RegisterInput) normalize() {
	in.TeamName = strings.TrimSpace(in.TeamName)
	for i := range in.Members {
		m := &in.Members[i]
		m.Name = strings.TrimSpace(m.Name)
		m.Email = strings.ToLower(strings.TrimSpace(m.Email))
		m.Phone = strings.TrimSpace(m.Phone)
		m.UniversityName = strings.TrimSpace(m.UniversityName)
	}
}

// Service handles team registration and administration.
type Service struct {
	repo     *repository.Repository
	notifier *email.Notifier
	now      func() time.Time
}

// NewService creates a team service.
func NewService(repo *repository.Repository, notifier *email.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier, now: time.Now}
}

// Register validates and stores a team with its members, then sends the
// confirmation email with the receipt attached. Email failures are logged.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.Team, error) {
	in.normalize()
	switch {
	case len(in.Members) == 0:
		return nil, apperr.Validation("At least one member is required",
			apperr.FieldError{Path: "members", Message: "At least one member is required"})
	case len(in.Members) > MaxMembers:
		return nil, apperr.Validation("Maximum 3 members allowed",
			apperr.FieldError{Path: "members", Message: "Maximum 3 members allowed"})
	}
	if err := validate.Struct(&in); err != nil {
		return nil, err
	}

	team := &models.Team{
		TeamName:    in.TeamName,
		Segment:     in.Segment,
		Institution: in.Members[0].UniversityName,
		Members:     make([]models.Member, 0, len(in.Members)),
	}
	for i, m := range in.Members {
		member := models.Member{
			FullName:     m.Name,
			Email:        m.Email,
			University:   m.UniversityName,
			TShirtSize:   m.TShirtSize,
			IsTeamLeader: i == 0,
		}
		if m.Phone != "" {
			phone := m.Phone
			member.Phone = &phone
		}
		team.Members = append(team.Members, member)
	}

	if err := s.repo.CreateTeam(ctx, team); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperr.Conflict("A team with this identifier already exists")
		}
		return nil, apperr.Internal("failed to register team", err)
	}
	slog.Info("team_registered", "team_id", team.ID, "segment", team.Segment, "members", len(team.Members))

	s.sendConfirmation(ctx, team)
	return team, nil
}

func (s *Service) sendConfirmation(ctx context.Context, team *models.Team) {
	receipt, err := report.RenderReceiptPDF(team, s.now())
	if err != nil {
		slog.Error("receipt_render_failed", "team_id", team.ID, "error", err)
		receipt = nil
	}
	if err := s.notifier.SendRegistrationConfirmation(ctx, team, receipt); err != nil {
		slog.Error("registration_email_failed", "team_id", team.ID, "error", err)
	}
}

// ListInput filters and paginates a team listing. Zero Page and Limit take
// their defaults.
type ListInput struct {
	Segment    *models.Segment
	IsSelected *bool
	Search     string
	Page       int
	Limit      int
}

// Pagination describes one page of a listing.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// Page is one page of teams.
type Page struct {
	Teams      []models.Team `json:"teams"`
	Pagination Pagination    `json:"pagination"`
}

// List returns the teams visible to p, newest first, each with its members
// and most recent payment.
func (s *Service) List(ctx context.Context, p *auth.Principal, in ListInput) (*Page, error) {
	if in.Page == 0 {
		in.Page = 1
	}
	if in.Limit == 0 {
		in.Limit = DefaultLimit
	}
	if in.Page < 1 {
		return nil, apperr.Validation(validate.Message, apperr.FieldError{Path: "page", Message: "page must be at least 1"})
	}
	if in.Limit < 1 || in.Limit > MaxLimit {
		return nil, apperr.Validation(validate.Message, apperr.FieldError{Path: "limit", Message: "limit must be between 1 and 100"})
	}
	if in.Segment != nil && !in.Segment.Valid() {
		return nil, apperr.Validation(validate.Message, apperr.FieldError{Path: "segment", Message: "Invalid segment"})
	}

	teams, total, err := s.repo.ListTeams(ctx, repository.TeamFilter{
		Segments:   auth.AllowedSegments(p, in.Segment),
		IsSelected: in.IsSelected,
		Search:     in.Search,
		Limit:      in.Limit,
		Offset:     offset(in.Page, in.Limit),
	})
	if err != nil {
		return nil, apperr.Internal("failed to list teams", err)
	}
	return &Page{
		Teams: teams,
		Pagination: Pagination{
			Total:      total,
			Page:       in.Page,
			Limit:      in.Limit,
			TotalPages: int((total + int64(in.Limit) - 1) / int64(in.Limit)),
		},
	}, nil
}

// offset is the row offset of page, saturating at math.MaxInt so pages past
// any possible end stay empty instead of wrapping to the start.
func offset(page, limit int) int {
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

func (s *Service) load(ctx context.Context, id string) (*models.Team, error) {
	team, err := s.repo.GetTeamByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(msgNotFound)
		}
		return nil, apperr.Internal("failed to load team", err)
	}
	return team, nil
}

// Get returns a team with all of its payments if p may see its segment.
func (s *Service) Get(ctx context.Context, p *auth.Principal, id string) (*models.Team, error) {
	team, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanAccess(p, team.Segment) {
		return nil, apperr.Forbidden(msgAccessDenied)
	}
	return team, nil
}

// Summary is the public view of a team used by the checkout page.
type Summary struct {
	ID            string               `json:"id"`
	UniqueID      string               `json:"uniqueId"`
	TeamName      string               `json:"teamName"`
	Segment       models.Segment       `json:"segment"`
	Institution   string               `json:"institution"`
	Members       []SummaryMember      `json:"members"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
}

// SummaryMember is a member as shown publicly.
type SummaryMember struct {
	FullName     string `json:"fullName"`
	IsTeamLeader bool   `json:"isTeamLeader"`
}

// GetSummary returns the public summary of the team with uniqueID.
func (s *Service) GetSummary(ctx context.Context, uniqueID string) (*Summary, error) {
	team, err := s.repo.GetTeamByUniqueID(ctx, uniqueID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(msgNotFound)
		}
		return nil, apperr.Internal("failed to load team", err)
	}
	summary := &Summary{
		ID:            team.ID,
		UniqueID:      team.UniqueID,
		TeamName:      team.TeamName,
		Segment:       team.Segment,
		Institution:   team.Institution,
		Members:       make([]SummaryMember, 0, len(team.Members)),
		PaymentStatus: team.PaymentStatus(),
	}
	for _, m := range team.Members {
		summary.Members = append(summary.Members, SummaryMember{FullName: m.FullName, IsTeamLeader: m.IsTeamLeader})
	}
	return summary, nil
}

func notFoundOr(err error, msg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(msgNotFound)
	}
	return apperr.Internal(msg, err)
}

// SetSelection marks a team as selected or not.
func (s *Service) SetSelection(ctx context.Context, id string, selected bool) (*models.Team, error) {
	team, err := s.repo.SetTeamSelection(ctx, id, selected)
	if err != nil {
		return nil, notFoundOr(err, "failed to update selection")
	}
	slog.Info("team_selection_updated", "team_id", id, "selected", selected)
	return team, nil
}

// Disqualify sets the disqualification flag. The reason is dropped when a
// team is reinstated.
func (s *Service) Disqualify(ctx context.Context, id string, disqualified bool, reason *string) (*models.Team, error) {
	if reason != nil {
		trimmed := strings.TrimSpace(*reason)
		reason = &trimmed
		if trimmed == "" {
			reason = nil
		}
	}
	team, err := s.repo.SetTeamDisqualification(ctx, id, disqualified, reason)
	if err != nil {
		return nil, notFoundOr(err, "failed to update disqualification")
	}
	slog.Info("team_disqualification_updated", "team_id", id, "disqualified", disqualified)
	return team, nil
}

// SetStanding records the final standing of a team.
func (s *Service) SetStanding(ctx context.Context, id string, standing models.Standing) (*models.Team, error) {
	if !standing.Valid() {
		return nil, apperr.Validation(validate.Message, apperr.FieldError{Path: "standing", Message: "Invalid standing"})
	}
	team, err := s.repo.SetTeamStanding(ctx, id, standing)
	if err != nil {
		return nil, notFoundOr(err, "failed to update standing")
	}
	slog.Info("team_standing_updated", "team_id", id, "standing", standing)
	return team, nil
}

// Delete removes a team with its members and payments.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteTeam(ctx, id); err != nil {
		return notFoundOr(err, "failed to delete team")
	}
	slog.Info("team_deleted", "team_id", id)
	return nil
}
