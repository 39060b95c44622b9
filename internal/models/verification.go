// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// VerificationToken is a one-time email verification code.
type VerificationToken struct { //nolint:govet // fieldalignment: readability over optimization
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Token     string    `db:"token" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expiresAt"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Expired reports whether the token is no longer valid at now.
// A token is still valid at exactly its expiry instant.
func (v *VerificationToken) Expired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}

// EmailLog records one bulk or single email send.
type EmailLog struct { //nolint:govet // fieldalignment: readability over optimization
	ID             string    `db:"id" json:"id"`
	SenderID       *string   `db:"sender_id" json:"senderId"`
	SenderEmail    *string   `db:"sender_email" json:"senderEmail"`
	Subject        string    `db:"subject" json:"subject"`
	RecipientCount int       `db:"recipient_count" json:"recipientCount"`
	FilterCriteria string    `db:"filter_criteria" json:"filterCriteria"`
	SentAt         time.Time `db:"sent_at" json:"sentAt"`
}
