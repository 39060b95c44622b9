// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package email_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTeam() *models.Team {
	return &models.Team{
		ID:       "t1",
		UniqueID: "abcdef12-3456-7890",
		TeamName: "Byte Knights",
		Segment:  models.SegmentIUPC,
		Members: []models.Member{
			{FullName: "Lead", Email: "lead@example.com", IsTeamLeader: true},
			{FullName: "Two", Email: "two@example.com"},
		},
	}
}

func TestNotifier_PaymentLink(t *testing.T) {
	n := email.NewNotifier(&email.Recorder{}, "http://localhost:3000/")

	assert.Equal(t, "http://localhost:3000/checkout/u1", n.PaymentLink("u1"))
}

func TestNotifier_SendRegistrationConfirmation(t *testing.T) {
	rec := &email.Recorder{}
	n := email.NewNotifier(rec, "http://localhost:3000")

	err := n.SendRegistrationConfirmation(context.Background(), sampleTeam(), []byte("%PDF"))

	require.NoError(t, err)
	msgs := rec.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, []string{"lead@example.com", "two@example.com"}, msgs[0].To)
	assert.Equal(t, "Registration Confirmed - Byte Knights - SUST CSE Carnival 2026", msgs[0].Subject)
	assert.Contains(t, msgs[0].HTML, "http://localhost:3000/checkout/abcdef12-3456-7890")
	require.Len(t, msgs[0].Attachments, 1)
	assert.Equal(t, "receipt-ABCDEF12.pdf", msgs[0].Attachments[0].Filename)
}

func TestNotifier_SendRegistrationConfirmation_NoReceipt(t *testing.T) {
	rec := &email.Recorder{}
	n := email.NewNotifier(rec, "http://localhost:3000")

	require.NoError(t, n.SendRegistrationConfirmation(context.Background(), sampleTeam(), nil))

	assert.Empty(t, rec.Messages()[0].Attachments)
}

func TestNotifier_SendPaymentConfirmation(t *testing.T) {
	rec := &email.Recorder{}
	n := email.NewNotifier(rec, "http://localhost:3000")
	payment := &models.Payment{Amount: 5500, Currency: "BDT", TransactionID: "TXN-1-AB12CD34"}

	require.NoError(t, n.SendPaymentConfirmation(context.Background(), sampleTeam(), payment, []byte("%PDF")))

	msg := rec.Messages()[0]
	assert.Contains(t, msg.Subject, "Payment Confirmed")
	assert.Contains(t, msg.HTML, "5500 BDT")
	assert.Len(t, msg.Attachments, 1)
}

func TestNotifier_SendOTP(t *testing.T) {
	rec := &email.Recorder{}
	n := email.NewNotifier(rec, "http://localhost:3000")

	require.NoError(t, n.SendOTP(context.Background(), "a@example.com", "654321", 10*time.Minute))

	msg := rec.Messages()[0]
	assert.Equal(t, []string{"a@example.com"}, msg.To)
	assert.Equal(t, "SUST CSE Carnival 2026 - Email Verification", msg.Subject)
	assert.Contains(t, msg.HTML, "654321")
}

func TestNotifier_SendAdminCredentials(t *testing.T) {
	rec := &email.Recorder{}
	n := email.NewNotifier(rec, "http://localhost:3000")

	require.NoError(t, n.SendAdminCredentials(context.Background(), "new@sust.edu", "Tmp-Pass-123"))

	msg := rec.Messages()[0]
	assert.Equal(t, "Your SUST CSE Carnival Admin Account", msg.Subject)
	assert.Contains(t, msg.HTML, "Tmp-Pass-123")
	assert.Contains(t, msg.Text, "Tmp-Pass-123")
}

func TestNotifier_SendBulk_CountsFailures(t *testing.T) {
	rec := &email.Recorder{
		Fail: func(msg *email.Message) error {
			if msg.To[0] == "b@example.com" {
				return errors.New("rejected")
			}
			return nil
		},
	}
	n := email.NewNotifier(rec, "")

	result := n.SendBulk(context.Background(), []string{"a@example.com", "b@example.com", "c@example.com"}, "Notice", "<p>Hi</p>")

	assert.Equal(t, email.BulkResult{Sent: 2, Failed: 1}, result)
	assert.Len(t, rec.Messages(), 2)
}
