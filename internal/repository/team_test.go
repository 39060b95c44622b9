// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/repository"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tickingClock returns a clock advancing one second per call.
func tickingClock() func() time.Time {
	current := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func TestCreateTeam(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	team := testutil.NewTestTeam(t, repo, "alpha", models.SegmentIUPC, 3)

	assert.NotEmpty(t, team.ID)
	assert.NotEmpty(t, team.UniqueID)
	assert.Equal(t, models.StandingNone, team.Standing)

	got, err := repo.GetTeamByID(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, got.Members, 3)
	assert.True(t, got.Members[0].IsTeamLeader)
	assert.Equal(t, "alpha Member 1", got.Members[0].FullName)
	assert.False(t, got.Members[1].IsTeamLeader)
	assert.Empty(t, got.Payments)
}

func TestCreateTeam_RollsBackOnMemberFailure(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	team := &models.Team{
		TeamName:    "broken",
		Segment:     models.SegmentHackathon,
		Institution: "SUST",
		Members: []models.Member{
			{FullName: "Ok", Email: "ok@example.com", University: "SUST", TShirtSize: models.TShirtM, IsTeamLeader: true},
			{FullName: "Bad", Email: "bad@example.com", University: "SUST", TShirtSize: "XS"},
		},
	}
	err := repo.CreateTeam(ctx, team)

	require.Error(t, err)
	_, total, err := repo.ListTeams(ctx, repository.TeamFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestGetTeamByUniqueID(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	team := testutil.NewTestTeam(t, repo, "alpha", models.SegmentIUPC, 1)

	got, err := repo.GetTeamByUniqueID(ctx, team.UniqueID)
	require.NoError(t, err)
	assert.Equal(t, team.ID, got.ID)

	_, err = repo.GetTeamByUniqueID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListTeams_Filters(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	repo.SetClock(tickingClock())
	ctx := context.Background()

	iupc := testutil.NewTestTeam(t, repo, "Byte Knights", models.SegmentIUPC, 1)
	hack := testutil.NewTestTeam(t, repo, "hackers", models.SegmentHackathon, 2)
	dl := testutil.NewTestTeam(t, repo, "neurons", models.SegmentDLEnigma2_0, 3)
	_, err := repo.SetTeamSelection(ctx, hack.ID, true)
	require.NoError(t, err)

	t.Run("newest first", func(t *testing.T) {
		teams, total, err := repo.ListTeams(ctx, repository.TeamFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, teams, 3)
		assert.Equal(t, []string{dl.ID, hack.ID, iupc.ID}, []string{teams[0].ID, teams[1].ID, teams[2].ID})
	})

	t.Run("segments", func(t *testing.T) {
		teams, total, err := repo.ListTeams(ctx, repository.TeamFilter{Segments: []models.Segment{models.SegmentIUPC}})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, iupc.ID, teams[0].ID)
	})

	t.Run("empty segments match nothing", func(t *testing.T) {
		teams, total, err := repo.ListTeams(ctx, repository.TeamFilter{Segments: []models.Segment{}})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, teams)
	})

	t.Run("selected", func(t *testing.T) {
		selected := true
		teams, _, err := repo.ListTeams(ctx, repository.TeamFilter{IsSelected: &selected})
		require.NoError(t, err)
		require.Len(t, teams, 1)
		assert.Equal(t, hack.ID, teams[0].ID)
	})

	t.Run("search is case-insensitive", func(t *testing.T) {
		teams, _, err := repo.ListTeams(ctx, repository.TeamFilter{Search: "KNIGHT"})
		require.NoError(t, err)
		require.Len(t, teams, 1)
		assert.Equal(t, iupc.ID, teams[0].ID)
	})

	t.Run("search matches institution", func(t *testing.T) {
		_, total, err := repo.ListTeams(ctx, repository.TeamFilter{Search: "sus"})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
	})

	t.Run("search escapes wildcards", func(t *testing.T) {
		_, total, err := repo.ListTeams(ctx, repository.TeamFilter{Search: "%"})
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("ids", func(t *testing.T) {
		teams, _, err := repo.ListTeams(ctx, repository.TeamFilter{IDs: []string{dl.ID, iupc.ID}})
		require.NoError(t, err)
		assert.Len(t, teams, 2)
	})

	t.Run("pagination keeps total", func(t *testing.T) {
		teams, total, err := repo.ListTeams(ctx, repository.TeamFilter{Limit: 2, Offset: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, teams, 1)
		assert.Equal(t, iupc.ID, teams[0].ID)
		assert.Len(t, teams[0].Members, 1)
	})
}

func TestListTeams_LatestPaymentOnly(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	repo.SetClock(tickingClock())
	ctx := context.Background()
	team := testutil.NewTestTeam(t, repo, "alpha", models.SegmentHackathon, 1)
	testutil.NewTestPayment(t, repo, team.ID, "TXN-1", 2000, models.PaymentFailed)
	testutil.NewTestPayment(t, repo, team.ID, "TXN-2", 2000, models.PaymentSuccess)

	teams, _, err := repo.ListTeams(ctx, repository.TeamFilter{})
	require.NoError(t, err)
	require.Len(t, teams[0].Payments, 1)
	assert.Equal(t, "TXN-2", teams[0].Payments[0].TransactionID)

	got, err := repo.GetTeamByID(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, got.Payments, 2)
	assert.Equal(t, "TXN-2", got.Payments[0].TransactionID)
	assert.Equal(t, models.PaymentSuccess, got.PaymentStatus())
}

func TestTeamFieldUpdates(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	team := testutil.NewTestTeam(t, repo, "alpha", models.SegmentIUPC, 1)
	reason := "plagiarism"

	updated, err := repo.SetTeamSelection(ctx, team.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsSelected)

	updated, err = repo.SetTeamDisqualification(ctx, team.ID, true, &reason)
	require.NoError(t, err)
	assert.True(t, updated.IsDisqualified)
	require.NotNil(t, updated.DisqualificationReason)
	assert.Equal(t, reason, *updated.DisqualificationReason)

	updated, err = repo.SetTeamDisqualification(ctx, team.ID, false, &reason)
	require.NoError(t, err)
	assert.False(t, updated.IsDisqualified)
	assert.Nil(t, updated.DisqualificationReason)

	updated, err = repo.SetTeamStanding(ctx, team.ID, models.StandingWinner)
	require.NoError(t, err)
	assert.Equal(t, models.StandingWinner, updated.Standing)

	_, err = repo.SetTeamStanding(ctx, "missing", models.StandingWinner)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteTeam_Cascades(t *testing.T) {
	db, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	team := testutil.NewTestTeam(t, repo, "alpha", models.SegmentIUPC, 2)
	testutil.NewTestPayment(t, repo, team.ID, "TXN-1", 5500, models.PaymentPending)

	require.NoError(t, repo.DeleteTeam(ctx, team.ID))

	var members, payments int
	require.NoError(t, db.Get(&members, "SELECT count(*) FROM members"))
	require.NoError(t, db.Get(&payments, "SELECT count(*) FROM payments"))
	assert.Zero(t, members)
	assert.Zero(t, payments)

	assert.ErrorIs(t, repo.DeleteTeam(ctx, team.ID), repository.ErrNotFound)
}

func TestGetMemberByID(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	team := testutil.NewTestTeam(t, repo, "alpha", models.SegmentIUPC, 2)

	member, err := repo.GetMemberByID(ctx, team.Members[1].ID)
	require.NoError(t, err)
	assert.Equal(t, team.ID, member.TeamID)

	_, err = repo.GetMemberByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetTeamStats(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	iupc := testutil.NewTestTeam(t, repo, "alpha", models.SegmentIUPC, 1)
	hack := testutil.NewTestTeam(t, repo, "beta", models.SegmentHackathon, 1)
	testutil.NewTestTeam(t, repo, "gamma", models.SegmentHackathon, 1)
	_, err := repo.SetTeamSelection(ctx, hack.ID, true)
	require.NoError(t, err)
	testutil.NewTestPayment(t, repo, iupc.ID, "TXN-1", 5500, models.PaymentSuccess)
	testutil.NewTestPayment(t, repo, hack.ID, "TXN-2", 2000, models.PaymentSuccess)
	testutil.NewTestPayment(t, repo, hack.ID, "TXN-3", 2000, models.PaymentFailed)

	stats, err := repo.GetTeamStats(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalTeams)
	assert.Equal(t, int64(1), stats.SelectedTeams)
	assert.Equal(t, int64(7500), stats.TotalRevenue)
	assert.Equal(t, int64(1), stats.BySegment[models.SegmentIUPC])
	assert.Equal(t, int64(2), stats.BySegment[models.SegmentHackathon])
	assert.Equal(t, int64(0), stats.BySegment[models.SegmentDLEnigma2_0])

	scoped, err := repo.GetTeamStats(ctx, []models.Segment{models.SegmentHackathon})
	require.NoError(t, err)
	assert.Equal(t, int64(2), scoped.TotalTeams)
	assert.Equal(t, int64(2000), scoped.TotalRevenue)
	assert.Equal(t, int64(0), scoped.BySegment[models.SegmentIUPC])
}
