// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package testutil provides test helpers and fixtures.
package testutil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/database"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/repository"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"
)

// NewTestDB creates an in-memory SQLite database for tests.
// Returns both the database connection and the repository for convenience.
func NewTestDB(t *testing.T) (*sqlx.DB, *repository.Repository) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	repo := repository.New(db)
	return db, repo
}

// NewTestAdmin creates an active admin with the given scopes.
// The password hash is a placeholder; tests needing logins set their own.
func NewTestAdmin(t *testing.T, repo *repository.Repository, email string, superAdmin bool, scopes ...models.Segment) *models.Admin {
	t.Helper()
	admin := &models.Admin{
		Email:        email,
		PasswordHash: "not-a-real-hash",
		IsSuperAdmin: superAdmin,
		Status:       models.AdminActive,
		Scopes:       scopes,
	}
	require.NoError(t, repo.CreateAdmin(context.Background(), admin))
	return admin
}

// NewTestTeam creates a team in segment with memberCount members.
// The first member is the leader.
func NewTestTeam(t *testing.T, repo *repository.Repository, name string, segment models.Segment, memberCount int) *models.Team {
	t.Helper()
	team := &models.Team{
		TeamName:    name,
		Segment:     segment,
		Institution: "SUST",
	}
	for i := 0; i < memberCount; i++ {
		team.Members = append(team.Members, models.Member{
			FullName:     fmt.Sprintf("%s Member %d", name, i+1),
			Email:        fmt.Sprintf("%s.%d@example.com", name, i+1),
			University:   "SUST",
			TShirtSize:   models.TShirtM,
			IsTeamLeader: i == 0,
		})
	}
	require.NoError(t, repo.CreateTeam(context.Background(), team))
	return team
}

// NewTestPayment creates a payment for a team.
func NewTestPayment(t *testing.T, repo *repository.Repository, teamID, transactionID string, amount int64, status models.PaymentStatus) *models.Payment {
	t.Helper()
	payment := &models.Payment{
		TeamID:        teamID,
		TransactionID: transactionID,
		Amount:        amount,
		Currency:      "BDT",
		Status:        status,
	}
	require.NoError(t, repo.CreatePayment(context.Background(), payment))
	return payment
}

// NewEchoContext creates an Echo context for handler tests.
func NewEchoContext(e *echo.Echo, method, path string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

// NewEchoContextWithHeaders creates an Echo context with custom headers.
func NewEchoContextWithHeaders(e *echo.Echo, method, path string, body io.Reader, headers map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, path string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}
