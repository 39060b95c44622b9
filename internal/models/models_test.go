// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models_test

import (
	"testing"
	"time"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSegment_Valid(t *testing.T) {
	for _, s := range models.AllSegments() {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, models.Segment("DL ENIGMA 2.0").Valid())
	assert.False(t, models.Segment("").Valid())
}

func TestEnums_Valid(t *testing.T) {
	assert.True(t, models.AdminActive.Valid())
	assert.True(t, models.AdminSuspended.Valid())
	assert.False(t, models.AdminStatus("BANNED").Valid())

	assert.True(t, models.StandingSecondRunnerUp.Valid())
	assert.False(t, models.Standing("THIRD").Valid())

	assert.True(t, models.TShirtXXL.Valid())
	assert.False(t, models.TShirtSize("XS").Valid())
}

func TestTeam_Leader(t *testing.T) {
	team := &models.Team{
		Members: []models.Member{
			{FullName: "Second", IsTeamLeader: false},
			{FullName: "Lead", IsTeamLeader: true},
		},
	}

	leader := team.Leader()

	if assert.NotNil(t, leader) {
		assert.Equal(t, "Lead", leader.FullName)
	}
	assert.Nil(t, (&models.Team{}).Leader())
}

func TestTeam_PaymentStatus(t *testing.T) {
	team := &models.Team{}
	assert.Equal(t, models.PaymentPending, team.PaymentStatus())

	team.Payments = []models.Payment{
		{Status: models.PaymentSuccess},
		{Status: models.PaymentFailed},
	}
	assert.Equal(t, models.PaymentSuccess, team.PaymentStatus())
}

func TestTeam_Emails(t *testing.T) {
	team := &models.Team{
		Members: []models.Member{
			{Email: "a@example.com"},
			{Email: "b@example.com"},
			{Email: "a@example.com"},
			{Email: ""},
		},
	}

	assert.Equal(t, []string{"a@example.com", "b@example.com"}, team.Emails())
}

func TestMember_PhoneOr(t *testing.T) {
	phone := "01700000000"

	assert.Equal(t, "N/A", (&models.Member{}).PhoneOr("N/A"))
	assert.Equal(t, phone, (&models.Member{Phone: &phone}).PhoneOr("N/A"))
}

func TestVerificationToken_Expired(t *testing.T) {
	expiresAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	token := &models.VerificationToken{ExpiresAt: expiresAt}

	assert.False(t, token.Expired(expiresAt.Add(-time.Second)))
	assert.False(t, token.Expired(expiresAt))
	assert.True(t, token.Expired(expiresAt.Add(time.Nanosecond)))
}
