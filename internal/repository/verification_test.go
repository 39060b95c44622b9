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

func TestReplaceVerificationToken_SupersedesOld(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	expires := time.Now().Add(10 * time.Minute).UTC()

	require.NoError(t, repo.ReplaceVerificationToken(ctx, &models.VerificationToken{
		Email: "a@example.com", Token: "111111", ExpiresAt: expires,
	}))
	require.NoError(t, repo.ReplaceVerificationToken(ctx, &models.VerificationToken{
		Email: "a@example.com", Token: "222222", ExpiresAt: expires,
	}))

	_, err := repo.GetVerificationToken(ctx, "a@example.com", "111111")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	token, err := repo.GetVerificationToken(ctx, "a@example.com", "222222")
	require.NoError(t, err)
	assert.WithinDuration(t, expires, token.ExpiresAt, time.Second)
}

func TestReplaceVerificationToken_OtherEmailsUntouched(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	expires := time.Now().Add(10 * time.Minute).UTC()

	require.NoError(t, repo.ReplaceVerificationToken(ctx, &models.VerificationToken{
		Email: "a@example.com", Token: "111111", ExpiresAt: expires,
	}))
	require.NoError(t, repo.ReplaceVerificationToken(ctx, &models.VerificationToken{
		Email: "b@example.com", Token: "222222", ExpiresAt: expires,
	}))

	_, err := repo.GetVerificationToken(ctx, "a@example.com", "111111")
	assert.NoError(t, err)
}

func TestDeleteVerificationTokens(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	require.NoError(t, repo.ReplaceVerificationToken(ctx, &models.VerificationToken{
		Email: "a@example.com", Token: "111111", ExpiresAt: time.Now().Add(time.Minute),
	}))

	require.NoError(t, repo.DeleteVerificationTokens(ctx, "a@example.com"))

	_, err := repo.GetVerificationToken(ctx, "a@example.com", "111111")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
