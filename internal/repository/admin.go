// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"fmt"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
	"github.com/vinovest/sqlx"
)

const adminColumns = `id, email, password_hash, is_super_admin, status, created_at, updated_at`

// CreateAdmin inserts an admin together with its scopes.
func (r *Repository) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	if admin.ID == "" {
		admin.ID = newID()
	}
	if admin.Status == "" {
		admin.Status = models.AdminActive
	}
	now := r.now()
	admin.CreatedAt = now
	admin.UpdatedAt = now

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO admins (`+adminColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			admin.ID, admin.Email, admin.PasswordHash, admin.IsSuperAdmin, admin.Status, admin.CreatedAt, admin.UpdatedAt,
		)
		if err != nil {
			return wrapError(err)
		}
		return insertScopes(ctx, tx, admin.ID, admin.Scopes)
	})
}

func insertScopes(ctx context.Context, q queryer, adminID string, scopes []models.Segment) error {
	for _, scope := range dedupeSegments(scopes) {
		if _, err := q.ExecContext(ctx,
			`INSERT INTO admin_scopes (admin_id, scope) VALUES (?, ?)`, adminID, scope,
		); err != nil {
			return wrapError(err)
		}
	}
	return nil
}

func dedupeSegments(segments []models.Segment) []models.Segment {
	seen := make(map[models.Segment]struct{}, len(segments))
	out := make([]models.Segment, 0, len(segments))
	for _, s := range segments {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// GetAdminByID retrieves an admin with its scopes.
func (r *Repository) GetAdminByID(ctx context.Context, id string) (*models.Admin, error) {
	return r.getAdmin(ctx, r.db, `SELECT `+adminColumns+` FROM admins WHERE id = ?`, id)
}

// GetAdminByEmail retrieves an admin with its scopes by email address.
func (r *Repository) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return r.getAdmin(ctx, r.db, `SELECT `+adminColumns+` FROM admins WHERE email = ?`, email)
}

func (r *Repository) getAdmin(ctx context.Context, q queryer, query string, arg any) (*models.Admin, error) {
	var admin models.Admin
	if err := sqlx.GetContext(ctx, q, &admin, query, arg); err != nil {
		return nil, wrapError(err)
	}
	scopes, err := adminScopes(ctx, q, admin.ID)
	if err != nil {
		return nil, err
	}
	admin.Scopes = scopes
	return &admin, nil
}

func adminScopes(ctx context.Context, q queryer, adminID string) ([]models.Segment, error) {
	scopes := []models.Segment{}
	if err := sqlx.SelectContext(ctx, q, &scopes,
		`SELECT scope FROM admin_scopes WHERE admin_id = ? ORDER BY scope`, adminID,
	); err != nil {
		return nil, err
	}
	return scopes, nil
}

// ListAdmins returns all admins with their scopes, newest first.
func (r *Repository) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	admins := []models.Admin{}
	if err := r.db.SelectContext(ctx, &admins,
		`SELECT `+adminColumns+` FROM admins ORDER BY created_at DESC`,
	); err != nil {
		return nil, err
	}

	var scopes []models.AdminScope
	if err := r.db.SelectContext(ctx, &scopes,
		`SELECT admin_id, scope FROM admin_scopes ORDER BY scope`,
	); err != nil {
		return nil, err
	}

	byAdmin := make(map[string][]models.Segment, len(admins))
	for _, s := range scopes {
		byAdmin[s.AdminID] = append(byAdmin[s.AdminID], s.Scope)
	}
	for i := range admins {
		admins[i].Scopes = byAdmin[admins[i].ID]
		if admins[i].Scopes == nil {
			admins[i].Scopes = []models.Segment{}
		}
	}
	return admins, nil
}

// UpdateAdminAccess replaces the scopes of an admin and optionally its
// status in one transaction, and returns the re-read admin.
func (r *Repository) UpdateAdminAccess(ctx context.Context, id string, scopes []models.Segment, status *models.AdminStatus) (*models.Admin, error) {
	var updated *models.Admin
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `UPDATE admins SET updated_at = ? WHERE id = ?`
		args := []any{r.now(), id}
		if status != nil {
			query = `UPDATE admins SET status = ?, updated_at = ? WHERE id = ?`
			args = []any{*status, r.now(), id}
		}
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return wrapError(err)
		}
		if err := requireAffected(result); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM admin_scopes WHERE admin_id = ?`, id); err != nil {
			return err
		}
		if err := insertScopes(ctx, tx, id, scopes); err != nil {
			return err
		}

		updated, err = r.getAdmin(ctx, tx, `SELECT `+adminColumns+` FROM admins WHERE id = ?`, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteAdmin removes an admin. Its scopes cascade and its email logs keep
// a null sender.
func (r *Repository) DeleteAdmin(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM admins WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}
	return requireAffected(res)
}

// CountSuperAdmins returns the number of super-admin accounts.
func (r *Repository) CountSuperAdmins(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT count(*) FROM admins WHERE is_super_admin = 1`); err != nil {
		return 0, err
	}
	return count, nil
}
