// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package verification issues and checks the one-time codes that confirm a
// participant's email address before registration.
package verification

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/apperr"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/repository"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/email"
)

// CodeTTL is how long a code stays valid.
const CodeTTL = 10 * time.Minute

const (
	msgInvalidCode = "Invalid OTP"
	msgExpiredCode = "OTP has expired"
	msgSendFailed  = "Failed to send OTP email"
)

// Service issues and verifies codes.
type Service struct {
	repo     *repository.Repository
	notifier *email.Notifier
	now      func() time.Time
}

// NewService creates a verification service.
func NewService(repo *repository.Repository, notifier *email.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier, now: time.Now}
}

// GenerateCode returns a random six digit code without a leading zero.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func normalizeEmail(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// Request replaces any outstanding code for address and emails a new one.
func (s *Service) Request(ctx context.Context, address string) error {
	address = normalizeEmail(address)
	code, err := GenerateCode()
	if err != nil {
		return apperr.Internal("failed to generate code", err)
	}

	token := &models.VerificationToken{
		Email:     address,
		Token:     code,
		ExpiresAt: s.now().UTC().Add(CodeTTL),
	}
	if err := s.repo.ReplaceVerificationToken(ctx, token); err != nil {
		return apperr.Internal("failed to store code", err)
	}

	if err := s.notifier.SendOTP(ctx, address, code, CodeTTL); err != nil {
		slog.Error("otp_email_failed", "email", address, "error", err)
		return apperr.Internal(msgSendFailed, err)
	}
	slog.Info("otp_sent", "email", address)
	return nil
}

// Verify checks code against the latest code issued for address and
// consumes it on success.
func (s *Service) Verify(ctx context.Context, address, code string) error {
	address = normalizeEmail(address)
	token, err := s.repo.GetVerificationToken(ctx, address, strings.TrimSpace(code))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			slog.Warn("otp_invalid", "email", address)
			return apperr.Validation(msgInvalidCode)
		}
		return apperr.Internal("failed to load code", err)
	}
	if token.Expired(s.now()) {
		slog.Warn("otp_expired", "email", address)
		return apperr.Validation(msgExpiredCode)
	}
	if err := s.repo.DeleteVerificationTokens(ctx, address); err != nil {
		return apperr.Internal("failed to consume code", err)
	}
	slog.Info("otp_verified", "email", address)
	return nil
}
