// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package broadcast sends admin-authored emails to groups of participants
// and keeps an audit log of each send.
package broadcast

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/apperr"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/auth"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/repository"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/email"
)

const (
	msgNoRecipients = "No recipients found for the selected filter"
	msgSegmentScope = "Insufficient permissions for this segment"
	msgSendFailed   = "Failed to send email"

	// LogLimit is the number of log entries returned by Logs.
	LogLimit = 100
)

// Service sends bulk and single emails.
type Service struct {
	repo     *repository.Repository
	notifier *email.Notifier
}

// NewService creates a broadcast service.
func NewService(repo *repository.Repository, notifier *email.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// Result tallies one send.
type Result struct {
	Total  int `json:"total"`
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// Recipients resolves f to distinct addresses in team and member order.
// Team-based filters only reach teams within the scopes of p.
func (s *Service) Recipients(ctx context.Context, p *auth.Principal, f Filter) ([]string, error) {
	allowed := auth.AllowedSegments(p, nil)
	var tf repository.TeamFilter

	switch f := f.(type) {
	case AllFilter:
		tf = repository.TeamFilter{Segments: allowed}
	case SegmentFilter:
		if !auth.CanAccess(p, f.Segment) {
			return nil, apperr.Forbidden(msgSegmentScope)
		}
		tf = repository.TeamFilter{Segments: []models.Segment{f.Segment}}
	case SelectedFilter:
		selected := true
		tf = repository.TeamFilter{Segments: allowed, IsSelected: &selected}
	case CustomFilter:
		tf = repository.TeamFilter{Segments: allowed, IDs: f.TeamIDs}
	case TeamFilter:
		tf = repository.TeamFilter{Segments: allowed, IDs: []string{f.TeamID}}
	case MemberFilter:
		return s.memberRecipient(ctx, p, f.MemberID)
	case IndividualFilter:
		return []string{f.Email}, nil
	default:
		return nil, apperr.Validation("Invalid filter type")
	}

	teams, _, err := s.repo.ListTeams(ctx, tf)
	if err != nil {
		return nil, apperr.Internal("failed to load recipients", err)
	}
	recipients := []string{}
	for i := range teams {
		for _, address := range teams[i].Emails() {
			if !slices.Contains(recipients, address) {
				recipients = append(recipients, address)
			}
		}
	}
	return recipients, nil
}

func (s *Service) memberRecipient(ctx context.Context, p *auth.Principal, id string) ([]string, error) {
	member, err := s.repo.GetMemberByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []string{}, nil
		}
		return nil, apperr.Internal("failed to load member", err)
	}
	team, err := s.repo.GetTeamByID(ctx, member.TeamID)
	if err != nil {
		return nil, apperr.Internal("failed to load team", err)
	}
	if !auth.CanAccess(p, team.Segment) {
		return nil, apperr.Forbidden(msgSegmentScope)
	}
	if member.Email == "" {
		return []string{}, nil
	}
	return []string{member.Email}, nil
}

// SendBulk emails body to every recipient of f one by one and logs the send.
func (s *Service) SendBulk(ctx context.Context, p *auth.Principal, subject, body string, f Filter) (*Result, error) {
	recipients, err := s.Recipients(ctx, p, f)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return nil, apperr.Validation(msgNoRecipients)
	}

	tally := s.notifier.SendBulk(ctx, recipients, subject, body)
	result := &Result{Total: len(recipients), Sent: tally.Sent, Failed: tally.Failed}
	s.log(ctx, p, subject, len(recipients), f)
	slog.Info("bulk_email_sent", "filter", f.Type(), "total", result.Total, "sent", result.Sent, "failed", result.Failed)
	return result, nil
}

// SendSingle emails one address and logs it as an INDIVIDUAL send.
// Unlike SendBulk, a delivery failure is returned.
func (s *Service) SendSingle(ctx context.Context, p *auth.Principal, to, subject, body string) (*Result, error) {
	f := IndividualFilter{Email: to}
	if err := s.notifier.Send(ctx, &email.Message{To: []string{to}, Subject: subject, HTML: body}); err != nil {
		slog.Error("email_send_failed", "to", to, "subject", subject, "error", err)
		return nil, apperr.Internal(msgSendFailed, err)
	}
	s.log(ctx, p, subject, 1, f)
	return &Result{Total: 1, Sent: 1}, nil
}

func (s *Service) log(ctx context.Context, p *auth.Principal, subject string, count int, f Filter) {
	entry := &models.EmailLog{
		Subject:        subject,
		RecipientCount: count,
		FilterCriteria: Criteria(f),
	}
	if p != nil && p.AdminID != "" {
		sender := p.AdminID
		entry.SenderID = &sender
	}
	if err := s.repo.CreateEmailLog(ctx, entry); err != nil {
		slog.Error("email_log_failed", "subject", subject, "error", err)
	}
}

// Logs returns the most recent sends, newest first.
func (s *Service) Logs(ctx context.Context) ([]models.EmailLog, error) {
	logs, err := s.repo.ListEmailLogs(ctx, LogLimit)
	if err != nil {
		return nil, apperr.Internal("failed to load email logs", err)
	}
	return logs, nil
}
