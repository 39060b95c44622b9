// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// Payment is one attempt to pay a team's registration fee.
type Payment struct { //nolint:govet // fieldalignment: readability over optimization
	ID                 string        `db:"id" json:"id"`
	TeamID             string        `db:"team_id" json:"teamId"`
	TransactionID      string        `db:"transaction_id" json:"transactionId"`
	Amount             int64         `db:"amount" json:"amount"`
	Currency           string        `db:"currency" json:"currency"`
	Status             PaymentStatus `db:"status" json:"status"`
	ValID              *string       `db:"val_id" json:"valId"`
	ApprovedBy         *string       `db:"approved_by" json:"approvedBy"`
	ManualApprovalNote *string       `db:"manual_approval_note" json:"manualApprovalNote"`
	CreatedAt          time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time     `db:"updated_at" json:"updatedAt"`
}

// PaymentWithTeam is a payment joined with a short team summary.
type PaymentWithTeam struct {
	Payment
	Team TeamSummary `db:"team" json:"team"`
}

// TeamSummary is the subset of team fields shown next to payments.
type TeamSummary struct {
	TeamName string  `db:"team_name" json:"teamName"`
	Segment  Segment `db:"segment" json:"segment"`
}
