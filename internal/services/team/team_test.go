// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package team_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/apperr"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/auth"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/repository"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/email"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/team"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var superAdmin = &auth.Principal{IsSuperAdmin: true}

func newService(t *testing.T) (*team.Service, *repository.Repository, *email.Recorder) {
	t.Helper()
	_, repo := testutil.NewTestDB(t)
	rec := &email.Recorder{}
	return team.NewService(repo, email.NewNotifier(rec, "http://localhost:3000")), repo, rec
}

func member(i int) team.MemberInput {
	return team.MemberInput{
		Name:           fmt.Sprintf("Member %d", i),
		Email:          fmt.Sprintf("member%d@example.com", i),
		Phone:          "0170000000" + fmt.Sprint(i),
		TShirtSize:     models.TShirtL,
		UniversityName: fmt.Sprintf("University %d", i),
	}
}

func registration(n int) team.RegisterInput {
	in := team.RegisterInput{TeamName: "Byte Knights", Segment: models.SegmentIUPC}
	for i := 1; i <= n; i++ {
		in.Members = append(in.Members, member(i))
	}
	return in
}

func TestRegister_LeaderAndInstitution(t *testing.T) {
	svc, repo, rec := newService(t)

	created, err := svc.Register(context.Background(), registration(3))

	require.NoError(t, err)
	assert.Equal(t, "University 1", created.Institution)
	assert.NotEmpty(t, created.UniqueID)

	stored, err := repo.GetTeamByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, stored.Members, 3)
	assert.True(t, stored.Members[0].IsTeamLeader)
	assert.False(t, stored.Members[1].IsTeamLeader)
	assert.False(t, stored.Members[2].IsTeamLeader)
	assert.Equal(t, "member1@example.com", stored.Leader().Email)

	msgs := rec.Messages()
	require.Len(t, msgs, 1)
	assert.Len(t, msgs[0].To, 3)
	require.Len(t, msgs[0].Attachments, 1)
	assert.Equal(t, "application/pdf", msgs[0].Attachments[0].ContentType)
}

func TestRegister_MemberCountRejectedBeforePersistence(t *testing.T) {
	for _, n := range []int{0, 4} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			svc, repo, rec := newService(t)

			_, err := svc.Register(context.Background(), registration(n))

			assert.True(t, apperr.Is(err, apperr.KindValidation))
			_, total, err := repo.ListTeams(context.Background(), repository.TeamFilter{})
			require.NoError(t, err)
			assert.Zero(t, total)
			assert.Empty(t, rec.Messages())
		})
	}
}

func TestRegister_InvalidMember(t *testing.T) {
	svc, _, _ := newService(t)
	in := registration(2)
	in.Members[1].Email = "not-an-email"
	in.Members[1].Phone = "123"
	in.Members[1].TShirtSize = "XS"

	_, err := svc.Register(context.Background(), in)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	paths := make([]string, 0, len(appErr.Fields))
	for _, f := range appErr.Fields {
		paths = append(paths, f.Path)
	}
	assert.ElementsMatch(t, []string{"members[1].email", "members[1].phone", "members[1].tshirtSize"}, paths)
}

func TestRegister_PhoneOptional(t *testing.T) {
	svc, repo, _ := newService(t)
	in := registration(1)
	in.Members[0].Phone = ""

	created, err := svc.Register(context.Background(), in)

	require.NoError(t, err)
	stored, err := repo.GetTeamByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Members[0].Phone)
}

func TestRegister_EmailFailureIgnored(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	rec := &email.Recorder{Fail: func(*email.Message) error { return errors.New("smtp down") }}
	svc := team.NewService(repo, email.NewNotifier(rec, ""))

	created, err := svc.Register(context.Background(), registration(1))

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
}

func TestList_ScopeAndPagination(t *testing.T) {
	svc, repo, _ := newService(t)
	for i := 0; i < 3; i++ {
		testutil.NewTestTeam(t, repo, fmt.Sprintf("iupc%d", i), models.SegmentIUPC, 1)
	}
	testutil.NewTestTeam(t, repo, "hack", models.SegmentHackathon, 1)
	iupcAdmin := &auth.Principal{Scopes: []models.Segment{models.SegmentIUPC}}

	page, err := svc.List(context.Background(), iupcAdmin, team.ListInput{Limit: 2})

	require.NoError(t, err)
	assert.Len(t, page.Teams, 2)
	assert.Equal(t, team.Pagination{Total: 3, Page: 1, Limit: 2, TotalPages: 2}, page.Pagination)
	for _, tm := range page.Teams {
		assert.Equal(t, models.SegmentIUPC, tm.Segment)
	}

	hackathon := models.SegmentHackathon
	page, err = svc.List(context.Background(), iupcAdmin, team.ListInput{Segment: &hackathon})
	require.NoError(t, err)
	assert.Empty(t, page.Teams)
	assert.Equal(t, int64(0), page.Pagination.Total)

	page, err = svc.List(context.Background(), superAdmin, team.ListInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Pagination.Total)
	assert.Equal(t, team.DefaultLimit, page.Pagination.Limit)
}

func TestList_RejectsBadPaging(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.List(context.Background(), superAdmin, team.ListInput{Limit: 101})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.List(context.Background(), superAdmin, team.ListInput{Page: -1})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestList_PageFarPastEndIsEmpty(t *testing.T) {
	svc, repo, _ := newService(t)
	testutil.NewTestTeam(t, repo, "alpha", models.SegmentIUPC, 1)

	for _, page := range []int{2, math.MaxInt} {
		got, err := svc.List(context.Background(), superAdmin, team.ListInput{Page: page, Limit: 10})

		require.NoError(t, err)
		assert.Empty(t, got.Teams, "page %d", page)
		assert.Equal(t, int64(1), got.Pagination.Total)
		assert.Equal(t, 1, got.Pagination.TotalPages)
	}
}

func TestGet_ScopeForbidden(t *testing.T) {
	svc, repo, _ := newService(t)
	hack := testutil.NewTestTeam(t, repo, "hack", models.SegmentHackathon, 1)

	_, err := svc.Get(context.Background(), &auth.Principal{Scopes: []models.Segment{models.SegmentIUPC}}, hack.ID)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	got, err := svc.Get(context.Background(), superAdmin, hack.ID)
	require.NoError(t, err)
	assert.Equal(t, hack.ID, got.ID)

	_, err = svc.Get(context.Background(), superAdmin, "missing")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestGetSummary(t *testing.T) {
	svc, repo, _ := newService(t)
	created := testutil.NewTestTeam(t, repo, "alpha", models.SegmentDLEnigma2_0, 2)
	testutil.NewTestPayment(t, repo, created.ID, "TXN-1", 1500, models.PaymentSuccess)

	summary, err := svc.GetSummary(context.Background(), created.UniqueID)

	require.NoError(t, err)
	assert.Equal(t, "alpha", summary.TeamName)
	assert.Equal(t, models.PaymentSuccess, summary.PaymentStatus)
	require.Len(t, summary.Members, 2)
	assert.True(t, summary.Members[0].IsTeamLeader)

	_, err = svc.GetSummary(context.Background(), "missing")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestFieldUpdates(t *testing.T) {
	svc, repo, _ := newService(t)
	created := testutil.NewTestTeam(t, repo, "alpha", models.SegmentIUPC, 1)
	ctx := context.Background()

	selected, err := svc.SetSelection(ctx, created.ID, true)
	require.NoError(t, err)
	assert.True(t, selected.IsSelected)

	selected, err = svc.SetSelection(ctx, created.ID, true)
	require.NoError(t, err)
	assert.True(t, selected.IsSelected)

	reason := "  plagiarism "
	dq, err := svc.Disqualify(ctx, created.ID, true, &reason)
	require.NoError(t, err)
	assert.True(t, dq.IsDisqualified)
	require.NotNil(t, dq.DisqualificationReason)
	assert.Equal(t, "plagiarism", *dq.DisqualificationReason)

	dq, err = svc.Disqualify(ctx, created.ID, false, nil)
	require.NoError(t, err)
	assert.False(t, dq.IsDisqualified)
	assert.Nil(t, dq.DisqualificationReason)

	standing, err := svc.SetStanding(ctx, created.ID, models.StandingWinner)
	require.NoError(t, err)
	assert.Equal(t, models.StandingWinner, standing.Standing)

	_, err = svc.SetStanding(ctx, created.ID, "THIRD")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.SetSelection(ctx, "missing", true)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestDelete(t *testing.T) {
	svc, repo, _ := newService(t)
	created := testutil.NewTestTeam(t, repo, "alpha", models.SegmentIUPC, 2)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	err := svc.Delete(context.Background(), created.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
