// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/repository"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePayment_Defaults(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	team := testutil.NewTestTeam(t, repo, "alpha", models.SegmentIUPC, 1)

	p := &models.Payment{TeamID: team.ID, TransactionID: "TXN-1", Amount: 5500}
	require.NoError(t, repo.CreatePayment(ctx, p))

	got, err := repo.GetPaymentByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, got.Status)
	assert.Equal(t, "BDT", got.Currency)
	assert.Nil(t, got.ValID)
}

func TestCreatePayment_DuplicateTransaction(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	team := testutil.NewTestTeam(t, repo, "alpha", models.SegmentIUPC, 1)
	testutil.NewTestPayment(t, repo, team.ID, "TXN-1", 5500, models.PaymentPending)

	err := repo.CreatePayment(ctx, &models.Payment{TeamID: team.ID, TransactionID: "TXN-1", Amount: 5500})

	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestUpdatePaymentStatus(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	team := testutil.NewTestTeam(t, repo, "alpha", models.SegmentIUPC, 1)
	testutil.NewTestPayment(t, repo, team.ID, "TXN-1", 5500, models.PaymentSuccess)
	valID := "VAL-9"

	updated, err := repo.UpdatePaymentStatus(ctx, "TXN-1", models.PaymentFailed, &valID)

	require.NoError(t, err)
	assert.Equal(t, models.PaymentFailed, updated.Status)
	require.NotNil(t, updated.ValID)
	assert.Equal(t, "VAL-9", *updated.ValID)

	_, err = repo.UpdatePaymentStatus(ctx, "TXN-missing", models.PaymentFailed, nil)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestApprovePayment(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	admin := testutil.NewTestAdmin(t, repo, "super@sust.edu", true)
	team := testutil.NewTestTeam(t, repo, "alpha", models.SegmentIUPC, 1)
	p := testutil.NewTestPayment(t, repo, team.ID, "TXN-1", 5500, models.PaymentFailed)

	approved, err := repo.ApprovePayment(ctx, p.ID, admin.ID, "paid in cash")

	require.NoError(t, err)
	assert.Equal(t, models.PaymentSuccess, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, admin.ID, *approved.ApprovedBy)
	require.NotNil(t, approved.ManualApprovalNote)
	assert.Equal(t, "paid in cash", *approved.ManualApprovalNote)

	_, err = repo.ApprovePayment(ctx, "missing", admin.ID, "x")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListPayments(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	repo.SetClock(tickingClock())
	ctx := context.Background()
	iupc := testutil.NewTestTeam(t, repo, "alpha", models.SegmentIUPC, 1)
	hack := testutil.NewTestTeam(t, repo, "beta", models.SegmentHackathon, 1)
	testutil.NewTestPayment(t, repo, iupc.ID, "TXN-1", 5500, models.PaymentPending)
	testutil.NewTestPayment(t, repo, hack.ID, "TXN-2", 2000, models.PaymentSuccess)

	payments, err := repo.ListPayments(ctx, nil)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, "TXN-2", payments[0].TransactionID)
	assert.Equal(t, "beta", payments[0].Team.TeamName)
	assert.Equal(t, models.SegmentHackathon, payments[0].Team.Segment)

	scoped, err := repo.ListPayments(ctx, []models.Segment{models.SegmentIUPC})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "alpha", scoped[0].Team.TeamName)
}
