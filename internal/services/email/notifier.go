// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package email

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/templates"
)

// Notifier composes the application's emails and hands them to a Sender.
type Notifier struct {
	sender      Sender
	frontendURL string
}

// NewNotifier creates a notifier. frontendURL prefixes checkout links.
func NewNotifier(sender Sender, frontendURL string) *Notifier {
	return &Notifier{
		sender:      sender,
		frontendURL: strings.TrimSuffix(frontendURL, "/"),
	}
}

// Send delivers a prepared message.
func (n *Notifier) Send(ctx context.Context, msg *Message) error {
	return n.sender.Send(ctx, msg)
}

// PaymentLink returns the checkout URL for a team.
func (n *Notifier) PaymentLink(uniqueID string) string {
	return n.frontendURL + "/checkout/" + uniqueID
}

// ReceiptFilename names the receipt attachment of a team.
func ReceiptFilename(team *models.Team) string {
	short := team.UniqueID
	if len(short) > 8 {
		short = short[:8]
	}
	return "receipt-" + strings.ToUpper(short) + ".pdf"
}

func receiptAttachments(team *models.Team, receipt []byte) []Attachment {
	if len(receipt) == 0 {
		return nil
	}
	return []Attachment{{
		Filename:    ReceiptFilename(team),
		ContentType: "application/pdf",
		Data:        receipt,
	}}
}

// SendAdminCredentials emails a new admin their temporary password.
func (n *Notifier) SendAdminCredentials(ctx context.Context, email, password string) error {
	html, err := templates.Render(ctx, templates.AdminCredentialsEmail(email, password))
	if err != nil {
		return err
	}
	return n.sender.Send(ctx, &Message{
		To:      []string{email},
		Subject: templates.T(ctx, "email_admin_subject"),
		HTML:    html,
		Text: fmt.Sprintf("%s\n\nEmail: %s\nTemporary Password: %s\n\n%s",
			templates.T(ctx, "email_admin_heading"), email, password, templates.T(ctx, "email_admin_notice")),
	})
}

// SendOTP emails a verification code valid for ttl.
func (n *Notifier) SendOTP(ctx context.Context, email, code string, ttl time.Duration) error {
	html, err := templates.Render(ctx, templates.OTPEmail(code, int(ttl.Minutes())))
	if err != nil {
		return err
	}
	return n.sender.Send(ctx, &Message{
		To:      []string{email},
		Subject: templates.T(ctx, "email_otp_subject"),
		HTML:    html,
	})
}

func teamEmailData(team *models.Team, link string, hasReceipt bool) templates.TeamEmailData {
	return templates.TeamEmailData{
		TeamName:    team.TeamName,
		Segment:     string(team.Segment),
		MemberCount: len(team.Members),
		PaymentLink: link,
		HasReceipt:  hasReceipt,
	}
}

// SendRegistrationConfirmation emails every member the checkout link,
// attaching the receipt when one is given.
func (n *Notifier) SendRegistrationConfirmation(ctx context.Context, team *models.Team, receipt []byte) error {
	recipients := team.Emails()
	if len(recipients) == 0 {
		return fmt.Errorf("team %s has no member emails", team.ID)
	}

	data := teamEmailData(team, n.PaymentLink(team.UniqueID), len(receipt) > 0)
	html, err := templates.Render(ctx, templates.RegistrationEmail(data))
	if err != nil {
		return err
	}
	return n.sender.Send(ctx, &Message{
		To:          recipients,
		Subject:     templates.TData(ctx, "email_registration_subject", map[string]any{"TeamName": team.TeamName}),
		HTML:        html,
		Attachments: receiptAttachments(team, receipt),
	})
}

// SendPaymentConfirmation emails every member that a payment succeeded.
func (n *Notifier) SendPaymentConfirmation(ctx context.Context, team *models.Team, payment *models.Payment, receipt []byte) error {
	recipients := team.Emails()
	if len(recipients) == 0 {
		return fmt.Errorf("team %s has no member emails", team.ID)
	}

	html, err := templates.Render(ctx, templates.PaymentEmail(templates.PaymentEmailData{
		TeamEmailData: teamEmailData(team, n.PaymentLink(team.UniqueID), len(receipt) > 0),
		Amount:        payment.Amount,
		Currency:      payment.Currency,
		TransactionID: payment.TransactionID,
	}))
	if err != nil {
		return err
	}
	return n.sender.Send(ctx, &Message{
		To:          recipients,
		Subject:     templates.TData(ctx, "email_payment_subject", map[string]any{"TeamName": team.TeamName}),
		HTML:        html,
		Attachments: receiptAttachments(team, receipt),
	})
}

// BulkResult tallies a bulk send.
type BulkResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// SendBulk sends the same message to each recipient one at a time.
// Failures are counted and the batch continues.
func (n *Notifier) SendBulk(ctx context.Context, recipients []string, subject, html string) BulkResult {
	var result BulkResult
	for _, to := range recipients {
		if ctx.Err() != nil {
			result.Failed++
			continue
		}
		err := n.sender.Send(ctx, &Message{To: []string{to}, Subject: subject, HTML: html})
		if err != nil {
			slog.Warn("email_send_failed", "to", to, "subject", subject, "error", err)
			result.Failed++
			continue
		}
		result.Sent++
	}
	return result
}
