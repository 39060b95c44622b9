// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package report_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/apperr"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/auth"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/report"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestTeamsCSV_ScopedToAdmin(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	testutil.NewTestTeam(t, repo, "alpha", models.SegmentIUPC, 2)
	testutil.NewTestTeam(t, repo, "beta", models.SegmentHackathon, 1)
	svc := report.NewService(repo)
	iupcAdmin := &auth.Principal{Scopes: []models.Segment{models.SegmentIUPC}}

	doc, err := svc.TeamsCSV(context.Background(), iupcAdmin, nil)

	require.NoError(t, err)
	rows := readCSV(t, doc.Data)
	require.Len(t, rows, 3) // header + two members
	assert.Equal(t, "Registration ID", rows[0][0])
	for _, row := range rows[1:] {
		assert.Equal(t, "alpha", row[1])
		assert.Equal(t, "IUPC", row[2])
	}
	assert.Equal(t, "Yes", rows[1][14])
	assert.Equal(t, "No", rows[2][14])
	assert.Contains(t, doc.Filename, "teams-all-")
	assert.Equal(t, "text/csv; charset=utf-8", doc.ContentType)
}

func TestTeamsCSV_SegmentOutsideScopeIsEmpty(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	testutil.NewTestTeam(t, repo, "beta", models.SegmentHackathon, 1)
	svc := report.NewService(repo)
	iupcAdmin := &auth.Principal{Scopes: []models.Segment{models.SegmentIUPC}}
	hackathon := models.SegmentHackathon

	doc, err := svc.TeamsCSV(context.Background(), iupcAdmin, &hackathon)

	require.NoError(t, err)
	assert.Len(t, readCSV(t, doc.Data), 1)
}

func TestPaymentsCSV(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	team := testutil.NewTestTeam(t, repo, "alpha", models.SegmentIUPC, 1)
	testutil.NewTestPayment(t, repo, team.ID, "TXN-1-AAAA0000", 5500, models.PaymentSuccess)
	svc := report.NewService(repo)

	doc, err := svc.PaymentsCSV(context.Background(), &auth.Principal{IsSuperAdmin: true}, nil)

	require.NoError(t, err)
	rows := readCSV(t, doc.Data)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"TXN-1-AAAA0000", "alpha", "IUPC", "5500", "BDT", "SUCCESS"}, rows[1][:6])
}

func TestTeamsPDF(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	testutil.NewTestTeam(t, repo, "alpha", models.SegmentIUPC, 3)
	testutil.NewTestTeam(t, repo, "beta", models.SegmentHackathon, 1)
	svc := report.NewService(repo)

	doc, err := svc.TeamsPDF(context.Background(), &auth.Principal{IsSuperAdmin: true}, nil)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF-")))
	assert.Equal(t, "application/pdf", doc.ContentType)
}

func TestReceipt(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	team := testutil.NewTestTeam(t, repo, "alpha", models.SegmentIUPC, 2)
	svc := report.NewService(repo)

	doc, err := svc.Receipt(context.Background(), team.UniqueID)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF-")))
	assert.Equal(t, "receipt-"+report.ReceiptID(team.UniqueID)+".pdf", doc.Filename)

	_, err = svc.Receipt(context.Background(), "missing")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestRenderReceiptPDF_NonLatinNames(t *testing.T) {
	team := &models.Team{
		UniqueID: "0123456789abcdef",
		TeamName: "Ünïcode Crew",
		Segment:  models.SegmentDLEnigma2_0,
		Members:  []models.Member{{FullName: "José", Email: "j@example.com", IsTeamLeader: true}},
	}

	data, err := report.RenderReceiptPDF(team, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestReceiptQRPayload(t *testing.T) {
	team := &models.Team{
		UniqueID: "u1",
		TeamName: "alpha",
		Members:  []models.Member{{}, {}},
		Payments: []models.Payment{{Status: models.PaymentSuccess}},
	}

	payload, err := report.ReceiptQRPayload(team)

	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"u1","name":"alpha","status":"SUCCESS","members":2}`, payload)
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, "#22c55e", report.StatusColor(models.PaymentSuccess))
	assert.Equal(t, "#eab308", report.StatusColor(models.PaymentPending))
	assert.Equal(t, "#ef4444", report.StatusColor(models.PaymentFailed))
	assert.Equal(t, "#ef4444", report.StatusColor(models.PaymentCancelled))
}

func TestReceiptID(t *testing.T) {
	assert.Equal(t, "ABCDEF12", report.ReceiptID("abcdef12-3456"))
	assert.Equal(t, "AB", report.ReceiptID("ab"))
}
