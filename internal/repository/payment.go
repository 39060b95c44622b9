// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
)

const paymentColumns = `id, team_id, transaction_id, amount, currency, status, val_id, approved_by,
	manual_approval_note, created_at, updated_at`

// CreatePayment inserts a payment. A duplicate transaction id yields ErrConflict.
func (r *Repository) CreatePayment(ctx context.Context, p *models.Payment) error {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.Status == "" {
		p.Status = models.PaymentPending
	}
	if p.Currency == "" {
		p.Currency = "BDT"
	}
	now := r.now()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO payments (`+paymentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.TeamID, p.TransactionID, p.Amount, p.Currency, p.Status, p.ValID, p.ApprovedBy,
		p.ManualApprovalNote, p.CreatedAt, p.UpdatedAt,
	)
	return wrapError(err)
}

// GetPaymentByID retrieves a payment.
func (r *Repository) GetPaymentByID(ctx context.Context, id string) (*models.Payment, error) {
	var p models.Payment
	if err := r.db.GetContext(ctx, &p, `SELECT `+paymentColumns+` FROM payments WHERE id = ?`, id); err != nil {
		return nil, wrapError(err)
	}
	return &p, nil
}

// GetPaymentByTransactionID retrieves a payment by its gateway transaction id.
func (r *Repository) GetPaymentByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	var p models.Payment
	if err := r.db.GetContext(ctx, &p,
		`SELECT `+paymentColumns+` FROM payments WHERE transaction_id = ?`, transactionID,
	); err != nil {
		return nil, wrapError(err)
	}
	return &p, nil
}

// UpdatePaymentStatus overwrites the status and validation id of a payment.
func (r *Repository) UpdatePaymentStatus(ctx context.Context, transactionID string, status models.PaymentStatus, valID *string) (*models.Payment, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE payments SET status = ?, val_id = ?, updated_at = ? WHERE transaction_id = ?`,
		status, valID, r.now(), transactionID,
	)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return r.GetPaymentByTransactionID(ctx, transactionID)
}

// ApprovePayment forces a payment to SUCCESS and records who approved it.
func (r *Repository) ApprovePayment(ctx context.Context, id, approverID, note string) (*models.Payment, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE payments SET status = ?, approved_by = ?, manual_approval_note = ?, updated_at = ? WHERE id = ?`,
		models.PaymentSuccess, approverID, note, r.now(), id,
	)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return r.GetPaymentByID(ctx, id)
}

// ListPayments returns payments with a team summary, newest first.
// Segments follows TeamFilter rules.
func (r *Repository) ListPayments(ctx context.Context, segments []models.Segment) ([]models.PaymentWithTeam, error) {
	where, args := TeamFilter{Segments: segments}.where()
	query, args, err := r.expand(`SELECT p.id, p.team_id, p.transaction_id, p.amount, p.currency, p.status,
			p.val_id, p.approved_by, p.manual_approval_note, p.created_at, p.updated_at,
			t.team_name AS "team.team_name", t.segment AS "team.segment"
		FROM payments p JOIN teams t ON t.id = p.team_id`+where+`
		ORDER BY p.created_at DESC, p.rowid DESC`, args)
	if err != nil {
		return nil, err
	}

	payments := []models.PaymentWithTeam{}
	if err := r.db.SelectContext(ctx, &payments, query, args...); err != nil {
		return nil, err
	}
	return payments, nil
}
