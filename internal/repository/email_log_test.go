// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListEmailLogs_NewestFirstWithLimit(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	repo.SetClock(tickingClock())
	ctx := context.Background()
	admin := testutil.NewTestAdmin(t, repo, "sender@sust.edu", true)

	for _, subject := range []string{"first", "second", "third"} {
		require.NoError(t, repo.CreateEmailLog(ctx, &models.EmailLog{
			SenderID:       &admin.ID,
			Subject:        subject,
			RecipientCount: 1,
			FilterCriteria: `{"type":"ALL"}`,
		}))
	}

	logs, err := repo.ListEmailLogs(ctx, 2)

	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "third", logs[0].Subject)
	assert.Equal(t, "second", logs[1].Subject)
	require.NotNil(t, logs[0].SenderEmail)
	assert.Equal(t, "sender@sust.edu", *logs[0].SenderEmail)
	assert.JSONEq(t, `{"type":"ALL"}`, logs[0].FilterCriteria)
}

func TestCreateEmailLog_DefaultCriteria(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	log := &models.EmailLog{Subject: "system", RecipientCount: 0}
	require.NoError(t, repo.CreateEmailLog(ctx, log))

	assert.Equal(t, "{}", log.FilterCriteria)
	assert.NotZero(t, log.SentAt)
}
