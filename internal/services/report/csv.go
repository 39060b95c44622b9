// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
)

var teamCSVHeader = []string{
	"Registration ID", "Team Name", "Segment", "Institution", "Selected", "Disqualified",
	"Disqualification Reason", "Standing", "Payment Status", "Member Name", "Member Email",
	"Member Phone", "University", "T-Shirt", "Leader", "Registered At",
}

var paymentCSVHeader = []string{
	"Transaction ID", "Team Name", "Segment", "Amount", "Currency", "Status", "Validation ID",
	"Approved By", "Approval Note", "Created At", "Updated At",
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// WriteTeamsCSV writes one row per member. Teams without members get a
// single row with empty member columns.
func WriteTeamsCSV(w io.Writer, teams []models.Team) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(teamCSVHeader); err != nil {
		return err
	}

	for i := range teams {
		team := &teams[i]
		base := []string{
			team.UniqueID,
			team.TeamName,
			string(team.Segment),
			team.Institution,
			yesNo(team.IsSelected),
			yesNo(team.IsDisqualified),
			deref(team.DisqualificationReason),
			string(team.Standing),
			string(team.PaymentStatus()),
		}
		registered := team.CreatedAt.UTC().Format(time.RFC3339)

		if len(team.Members) == 0 {
			row := append(append([]string{}, base...), "", "", "", "", "", "", registered)
			if err := cw.Write(row); err != nil {
				return err
			}
			continue
		}
		for _, m := range team.Members {
			row := append(append([]string{}, base...),
				m.FullName, m.Email, m.PhoneOr(""), m.University, string(m.TShirtSize),
				yesNo(m.IsTeamLeader), registered,
			)
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// WritePaymentsCSV writes one row per payment.
func WritePaymentsCSV(w io.Writer, payments []models.PaymentWithTeam) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(paymentCSVHeader); err != nil {
		return err
	}

	for _, p := range payments {
		if err := cw.Write([]string{
			p.TransactionID,
			p.Team.TeamName,
			string(p.Team.Segment),
			strconv.FormatInt(p.Amount, 10),
			p.Currency,
			string(p.Status),
			deref(p.ValID),
			deref(p.ApprovedBy),
			deref(p.ManualApprovalNote),
			p.CreatedAt.UTC().Format(time.RFC3339),
			p.UpdatedAt.UTC().Format(time.RFC3339),
		}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
