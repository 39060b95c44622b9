// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package payment creates registration fee payments and settles them from
// gateway callbacks or manual approval.
package payment

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/apperr"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/auth"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/repository"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/email"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/report"
)

// Currency of every registration fee.
const Currency = "BDT"

const (
	msgTeamNotFound    = "The specified team was not found"
	msgLeaderMissing   = "Team leader information is missing for this team"
	msgPaymentNotFound = "Payment not found"
	msgTxnNotFound     = "Payment record for this transaction was not found"
	msgPayLaterFailed  = "Failed to send email. Please try again later or contact support."

	txnAttempts = 3
)

var fees = map[models.Segment]int64{
	models.SegmentIUPC:        5500,
	models.SegmentHackathon:   2000,
	models.SegmentDLEnigma2_0: 1500,
}

// Fee returns the registration fee of segment in BDT.
func Fee(segment models.Segment) (int64, bool) {
	fee, ok := fees[segment]
	return fee, ok
}

// NewTransactionID returns an id of the form TXN-<epoch millis>-<8 hex>.
func NewTransactionID(now time.Time, random io.Reader) (string, error) {
	b := make([]byte, 4)
	if _, err := io.ReadFull(random, b); err != nil {
		return "", err
	}
	return fmt.Sprintf("TXN-%d-%s", now.UnixMilli(), strings.ToUpper(hex.EncodeToString(b))), nil
}

// Service handles payments.
type Service struct {
	repo     *repository.Repository
	notifier *email.Notifier
	gateway  *Gateway
	now      func() time.Time
	random   io.Reader
}

// NewService creates a payment service.
func NewService(repo *repository.Repository, notifier *email.Notifier, gateway *Gateway) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		gateway:  gateway,
		now:      time.Now,
		random:   rand.Reader,
	}
}

// Checkout is an initiated payment with the gateway request to complete it.
type Checkout struct {
	Payment     *models.Payment
	GatewayURL  string
	PaymentData map[string]string
}

// Initiate creates a PENDING payment for the team with uniqueID.
func (s *Service) Initiate(ctx context.Context, uniqueID string) (*Checkout, error) {
	team, err := s.repo.GetTeamByUniqueID(ctx, uniqueID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(msgTeamNotFound)
		}
		return nil, apperr.Internal("failed to load team", err)
	}
	leader := team.Leader()
	if leader == nil {
		return nil, apperr.Validation(msgLeaderMissing)
	}
	amount, ok := Fee(team.Segment)
	if !ok {
		return nil, apperr.Validation("Invalid fee configuration for segment: " + string(team.Segment))
	}

	payment := &models.Payment{
		TeamID:   team.ID,
		Amount:   amount,
		Currency: Currency,
		Status:   models.PaymentPending,
	}
	for attempt := 1; ; attempt++ {
		payment.TransactionID, err = NewTransactionID(s.now(), s.random)
		if err != nil {
			return nil, apperr.Internal("failed to generate transaction id", err)
		}
		err = s.repo.CreatePayment(ctx, payment)
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrConflict) || attempt == txnAttempts {
			return nil, apperr.Internal("failed to create payment", err)
		}
		payment.ID = ""
	}

	slog.Info("payment_initiated", "team_id", team.ID, "transaction_id", payment.TransactionID, "amount", amount)
	return &Checkout{
		Payment:     payment,
		GatewayURL:  s.gateway.URL(),
		PaymentData: s.gateway.Payload(team, leader, payment),
	}, nil
}

// PayLater resends the registration email with the checkout link. Unlike
// registration, a delivery failure is reported to the caller.
func (s *Service) PayLater(ctx context.Context, uniqueID string) error {
	team, err := s.repo.GetTeamByUniqueID(ctx, uniqueID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Team not found")
		}
		return apperr.Internal("failed to load team", err)
	}
	if err := s.notifier.SendRegistrationConfirmation(ctx, team, nil); err != nil {
		slog.Error("pay_later_email_failed", "team_id", team.ID, "error", err)
		return apperr.Internal(msgPayLaterFailed, err)
	}
	slog.Info("pay_later_sent", "team_id", team.ID)
	return nil
}

// Callback applies a gateway notification and returns the resulting status.
// The status is overwritten even when the payment already settled.
func (s *Service) Callback(ctx context.Context, transactionID, gatewayStatus, valID string) (models.PaymentStatus, error) {
	status := StatusFromGateway(gatewayStatus)
	var val *string
	if valID != "" {
		val = &valID
	}

	payment, err := s.repo.UpdatePaymentStatus(ctx, transactionID, status, val)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperr.NotFound(msgTxnNotFound)
		}
		return "", apperr.Internal("failed to update payment", err)
	}
	slog.Info("payment_callback", "transaction_id", transactionID, "gateway_status", gatewayStatus, "status", status)

	if status == models.PaymentSuccess {
		s.sendConfirmation(ctx, payment)
	}
	return status, nil
}

// Approve marks a payment as SUCCESS on behalf of an admin.
func (s *Service) Approve(ctx context.Context, id, note, approverID string) (*models.Payment, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return nil, apperr.Validation("Approval note is required",
			apperr.FieldError{Path: "note", Message: "Approval note is required"})
	}
	payment, err := s.repo.ApprovePayment(ctx, id, approverID, note)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(msgPaymentNotFound)
		}
		return nil, apperr.Internal("failed to approve payment", err)
	}
	slog.Info("payment_approved", "payment_id", id, "approved_by", approverID)

	s.sendConfirmation(ctx, payment)
	return payment, nil
}

func (s *Service) sendConfirmation(ctx context.Context, payment *models.Payment) {
	team, err := s.repo.GetTeamByID(ctx, payment.TeamID)
	if err != nil {
		slog.Error("payment_email_failed", "payment_id", payment.ID, "error", err)
		return
	}
	receipt, err := report.RenderReceiptPDF(team, s.now())
	if err != nil {
		slog.Error("receipt_render_failed", "team_id", team.ID, "error", err)
		receipt = nil
	}
	if err := s.notifier.SendPaymentConfirmation(ctx, team, payment, receipt); err != nil {
		slog.Error("payment_email_failed", "payment_id", payment.ID, "error", err)
	}
}

// List returns the payments visible to p, newest first.
func (s *Service) List(ctx context.Context, p *auth.Principal) ([]models.PaymentWithTeam, error) {
	payments, err := s.repo.ListPayments(ctx, auth.AllowedSegments(p, nil))
	if err != nil {
		return nil, apperr.Internal("failed to list payments", err)
	}
	return payments, nil
}
