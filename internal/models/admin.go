// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// Admin is a back-office account. Regular admins act only within their scopes.
type Admin struct { //nolint:govet // fieldalignment: readability over optimization
	ID           string      `db:"id" json:"id"`
	Email        string      `db:"email" json:"email"`
	PasswordHash string      `db:"password_hash" json:"-"`
	IsSuperAdmin bool        `db:"is_super_admin" json:"isSuperAdmin"`
	Status       AdminStatus `db:"status" json:"status"`
	CreatedAt    time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updatedAt"`

	Scopes []Segment `db:"-" json:"scopes"`
}

// IsActive reports whether the admin may log in.
func (a *Admin) IsActive() bool {
	return a.Status == AdminActive
}

// AdminScope grants an admin access to one segment.
type AdminScope struct {
	AdminID string  `db:"admin_id" json:"adminId"`
	Scope   Segment `db:"scope" json:"scope"`
}
