// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package email_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/config"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

func validSMTPConfig() *config.SMTPConfig {
	return &config.SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "testuser",
		Password: "testpass",
		From:     "noreply@example.com",
		FromName: "SUST CSE Carnival",
		TLS:      true,
	}
}

func TestNewSMTPSender(t *testing.T) {
	sender, err := email.NewSMTPSender(validSMTPConfig())

	require.NoError(t, err)
	assert.NotNil(t, sender)
}

func TestNewSMTPSender_MissingHost(t *testing.T) {
	cfg := validSMTPConfig()
	cfg.Host = ""

	_, err := email.NewSMTPSender(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP host is required")
}

func TestNewSMTPSender_MissingFrom(t *testing.T) {
	cfg := validSMTPConfig()
	cfg.From = ""

	_, err := email.NewSMTPSender(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP from address is required")
}

func TestNewSender_FallsBackToLog(t *testing.T) {
	sender, err := email.NewSender(&config.SMTPConfig{})

	require.NoError(t, err)
	assert.IsType(t, email.LogSender{}, sender)
	assert.NoError(t, sender.Send(context.Background(), &email.Message{To: []string{"a@example.com"}}))
}

func TestSMTPSender_Build(t *testing.T) {
	sender, err := email.NewSMTPSender(validSMTPConfig())
	require.NoError(t, err)

	msg, err := sender.Build(&email.Message{
		To:      []string{"a@example.com", "b@example.com"},
		Subject: "Registration Confirmed",
		HTML:    "<p>Hello</p>",
		Text:    "Hello",
		Attachments: []email.Attachment{
			{Filename: "receipt.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.3")},
		},
	})

	require.NoError(t, err)
	to := msg.GetToString()
	assert.Len(t, to, 2)
	assert.Equal(t, []string{"Registration Confirmed"}, msg.GetGenHeader(mail.HeaderSubject))
	assert.Len(t, msg.GetAttachments(), 1)
}

func TestSMTPSender_Build_RejectsBadInput(t *testing.T) {
	sender, err := email.NewSMTPSender(validSMTPConfig())
	require.NoError(t, err)

	_, err = sender.Build(&email.Message{Subject: "x"})
	assert.Error(t, err)

	_, err = sender.Build(&email.Message{To: []string{"not an address"}, Subject: "x"})
	assert.Error(t, err)
}

func TestRecorder(t *testing.T) {
	rec := &email.Recorder{
		Fail: func(msg *email.Message) error {
			if strings.HasPrefix(msg.To[0], "bad") {
				return errors.New("mailbox unavailable")
			}
			return nil
		},
	}
	ctx := context.Background()

	require.NoError(t, rec.Send(ctx, &email.Message{To: []string{"good@example.com"}}))
	require.Error(t, rec.Send(ctx, &email.Message{To: []string{"bad@example.com"}}))

	assert.Len(t, rec.Messages(), 1)
}
