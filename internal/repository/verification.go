// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
	"github.com/vinovest/sqlx"
)

// ReplaceVerificationToken deletes every token for the email and stores
// the new one, so only the latest code is valid.
func (r *Repository) ReplaceVerificationToken(ctx context.Context, token *models.VerificationToken) error {
	if token.ID == "" {
		token.ID = newID()
	}
	token.CreatedAt = r.now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM verification_tokens WHERE email = ?`, token.Email); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO verification_tokens (id, email, token, expires_at, created_at) VALUES (?, ?, ?, ?, ?)`,
			token.ID, token.Email, token.Token, token.ExpiresAt, token.CreatedAt,
		)
		return wrapError(err)
	})
}

// GetVerificationToken finds the token matching email and code.
func (r *Repository) GetVerificationToken(ctx context.Context, email, code string) (*models.VerificationToken, error) {
	var token models.VerificationToken
	if err := r.db.GetContext(ctx, &token,
		`SELECT id, email, token, expires_at, created_at FROM verification_tokens
		WHERE email = ? AND token = ? ORDER BY created_at DESC LIMIT 1`, email, code,
	); err != nil {
		return nil, wrapError(err)
	}
	return &token, nil
}

// DeleteVerificationTokens removes all tokens for an email.
func (r *Repository) DeleteVerificationTokens(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM verification_tokens WHERE email = ?`, email)
	return err
}
