// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
)

// CreateEmailLog appends an email audit record.
func (r *Repository) CreateEmailLog(ctx context.Context, log *models.EmailLog) error {
	if log.ID == "" {
		log.ID = newID()
	}
	if log.FilterCriteria == "" {
		log.FilterCriteria = "{}"
	}
	log.SentAt = r.now()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO email_logs (id, sender_id, subject, recipient_count, filter_criteria, sent_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		log.ID, log.SenderID, log.Subject, log.RecipientCount, log.FilterCriteria, log.SentAt,
	)
	return wrapError(err)
}

// ListEmailLogs returns the newest logs with the sender's email address.
func (r *Repository) ListEmailLogs(ctx context.Context, limit int) ([]models.EmailLog, error) {
	logs := []models.EmailLog{}
	if err := r.db.SelectContext(ctx, &logs,
		`SELECT l.id, l.sender_id, a.email AS sender_email, l.subject, l.recipient_count,
			l.filter_criteria, l.sent_at
		FROM email_logs l LEFT JOIN admins a ON a.id = l.sender_id
		ORDER BY l.sent_at DESC, l.rowid DESC LIMIT ?`, limit,
	); err != nil {
		return nil, err
	}
	return logs, nil
}
