// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package report renders team and payment data as CSV and PDF documents.
package report

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/apperr"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/auth"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/repository"
)

// Service builds exports scoped to the requesting admin.
type Service struct {
	repo *repository.Repository
	now  func() time.Time
}

// NewService creates a report service.
func NewService(repo *repository.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Document is a rendered export.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (s *Service) teams(ctx context.Context, p *auth.Principal, segment *models.Segment) ([]models.Team, error) {
	teams, _, err := s.repo.ListTeams(ctx, repository.TeamFilter{Segments: auth.AllowedSegments(p, segment)})
	if err != nil {
		return nil, apperr.Internal("failed to load teams", err)
	}
	slices.SortStableFunc(teams, func(a, b models.Team) int {
		return strings.Compare(strings.ToLower(a.TeamName), strings.ToLower(b.TeamName))
	})
	return teams, nil
}

func segmentLabel(segment *models.Segment) string {
	if segment == nil {
		return "all"
	}
	return strings.ToLower(string(*segment))
}

func (s *Service) filename(prefix string, segment *models.Segment, ext string) string {
	return prefix + "-" + segmentLabel(segment) + "-" + s.now().UTC().Format("20060102-150405") + "." + ext
}

// TeamsCSV exports the teams visible to p as CSV.
func (s *Service) TeamsCSV(ctx context.Context, p *auth.Principal, segment *models.Segment) (*Document, error) {
	teams, err := s.teams(ctx, p, segment)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := WriteTeamsCSV(&buf, teams); err != nil {
		return nil, apperr.Internal("failed to write csv", err)
	}
	return &Document{
		Filename:    s.filename("teams", segment, "csv"),
		ContentType: "text/csv; charset=utf-8",
		Data:        buf.Bytes(),
	}, nil
}

// PaymentsCSV exports the payments visible to p as CSV.
func (s *Service) PaymentsCSV(ctx context.Context, p *auth.Principal, segment *models.Segment) (*Document, error) {
	payments, err := s.repo.ListPayments(ctx, auth.AllowedSegments(p, segment))
	if err != nil {
		return nil, apperr.Internal("failed to load payments", err)
	}
	var buf bytes.Buffer
	if err := WritePaymentsCSV(&buf, payments); err != nil {
		return nil, apperr.Internal("failed to write csv", err)
	}
	return &Document{
		Filename:    s.filename("payments", segment, "csv"),
		ContentType: "text/csv; charset=utf-8",
		Data:        buf.Bytes(),
	}, nil
}

// TeamsPDF exports the teams visible to p as a PDF list.
func (s *Service) TeamsPDF(ctx context.Context, p *auth.Principal, segment *models.Segment) (*Document, error) {
	teams, err := s.teams(ctx, p, segment)
	if err != nil {
		return nil, err
	}
	data, err := RenderTeamsPDF(teams, s.now())
	if err != nil {
		return nil, apperr.Internal("failed to render pdf", err)
	}
	return &Document{
		Filename:    s.filename("teams", segment, "pdf"),
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}

// Receipt renders the public receipt of the team with uniqueID.
func (s *Service) Receipt(ctx context.Context, uniqueID string) (*Document, error) {
	team, err := s.repo.GetTeamByUniqueID(ctx, uniqueID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Team not found")
		}
		return nil, apperr.Internal("failed to load team", err)
	}
	data, err := RenderReceiptPDF(team, s.now())
	if err != nil {
		return nil, apperr.Internal("failed to render receipt", err)
	}
	return &Document{
		Filename:    "receipt-" + ReceiptID(team.UniqueID) + ".pdf",
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}
