// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// Team is a registered competition team.
type Team struct { //nolint:govet // fieldalignment: readability over optimization
	ID                     string    `db:"id" json:"id"`
	UniqueID               string    `db:"unique_id" json:"uniqueId"`
	TeamName               string    `db:"team_name" json:"teamName"`
	Segment                Segment   `db:"segment" json:"segment"`
	Institution            string    `db:"institution" json:"institution"`
	IsSelected             bool      `db:"is_selected" json:"isSelected"`
	IsDisqualified         bool      `db:"is_disqualified" json:"isDisqualified"`
	DisqualificationReason *string   `db:"disqualification_reason" json:"disqualificationReason"`
	Standing               Standing  `db:"standing" json:"standing"`
	CreatedAt              time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt              time.Time `db:"updated_at" json:"updatedAt"`

	Members  []Member  `db:"-" json:"members"`
	Payments []Payment `db:"-" json:"payments"`
}

// Leader returns the team leader, or nil if the team has none loaded.
func (t *Team) Leader() *Member {
	for i := range t.Members {
		if t.Members[i].IsTeamLeader {
			return &t.Members[i]
		}
	}
	return nil
}

// LatestPayment returns the newest loaded payment, or nil.
// Payments are kept newest first.
func (t *Team) LatestPayment() *Payment {
	if len(t.Payments) == 0 {
		return nil
	}
	return &t.Payments[0]
}

// PaymentStatus returns the status of the latest payment, PENDING when none.
func (t *Team) PaymentStatus() PaymentStatus {
	if p := t.LatestPayment(); p != nil {
		return p.Status
	}
	return PaymentPending
}

// Emails returns the distinct member email addresses in member order.
func (t *Team) Emails() []string {
	seen := make(map[string]struct{}, len(t.Members))
	emails := make([]string, 0, len(t.Members))
	for _, m := range t.Members {
		if m.Email == "" {
			continue
		}
		if _, ok := seen[m.Email]; ok {
			continue
		}
		seen[m.Email] = struct{}{}
		emails = append(emails, m.Email)
	}
	return emails
}

// Member is one participant of a team.
type Member struct { //nolint:govet // fieldalignment: readability over optimization
	ID           string     `db:"id" json:"id"`
	TeamID       string     `db:"team_id" json:"teamId"`
	FullName     string     `db:"full_name" json:"fullName"`
	Email        string     `db:"email" json:"email"`
	Phone        *string    `db:"phone" json:"phone"`
	University   string     `db:"university" json:"university"`
	TShirtSize   TShirtSize `db:"tshirt_size" json:"tshirtSize"`
	IsTeamLeader bool       `db:"is_team_leader" json:"isTeamLeader"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
}

// PhoneOr returns the phone number or fallback when none was given.
func (m *Member) PhoneOr(fallback string) string {
	if m.Phone == nil || *m.Phone == "" {
		return fallback
	}
	return *m.Phone
}
