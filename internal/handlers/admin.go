// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/apperr"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
	"github.com/labstack/echo/v4"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type createAdminRequest struct {
	Email  string           `json:"email" validate:"required,email"`
	Scopes []models.Segment `json:"scopes" validate:"required,min=1,dive,oneof=IUPC HACKATHON DL_ENIGMA_2_0"`
}

type updateAdminRequest struct {
	Scopes []models.Segment    `json:"scopes" validate:"required,min=1,dive,oneof=IUPC HACKATHON DL_ENIGMA_2_0"`
	Status *models.AdminStatus `json:"status" validate:"omitempty,oneof=ACTIVE SUSPENDED"`
}

type adminView struct {
	ID           string             `json:"id"`
	Email        string             `json:"email"`
	IsSuperAdmin bool               `json:"isSuperAdmin"`
	Status       models.AdminStatus `json:"status"`
	Scopes       []models.Segment   `json:"scopes"`
	CreatedAt    time.Time          `json:"createdAt"`
}

func viewAdmin(a *models.Admin) adminView {
	scopes := a.Scopes
	if scopes == nil {
		scopes = []models.Segment{}
	}
	return adminView{
		ID:           a.ID,
		Email:        a.Email,
		IsSuperAdmin: a.IsSuperAdmin,
		Status:       a.Status,
		Scopes:       scopes,
		CreatedAt:    a.CreatedAt,
	}
}

// Login exchanges admin credentials for a bearer token.
func (h *Handlers) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	address := strings.ToLower(strings.TrimSpace(req.Email))
	res, err := h.auth.Login(c.Request().Context(), address, req.Password)
	if err != nil {
		return err
	}

	return message(c, http.StatusOK, "Login successful", map[string]any{
		"token": res.Token,
		"admin": map[string]any{
			"id":           res.Admin.ID,
			"email":        res.Admin.Email,
			"isSuperAdmin": res.Admin.IsSuperAdmin,
			"scopes":       viewAdmin(res.Admin).Scopes,
		},
	})
}

// Me returns the authenticated admin.
func (h *Handlers) Me(c echo.Context) error {
	p := principal(c)
	if p == nil {
		return apperr.Unauthorized("Not authenticated")
	}
	a, err := h.admins.Get(c.Request().Context(), p.AdminID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, viewAdmin(a))
}

// CreateAdmin registers a regular admin and emails the credentials.
func (h *Handlers) CreateAdmin(c echo.Context) error {
	var req createAdminRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	a, err := h.admins.Create(c.Request().Context(), req.Email, req.Scopes)
	if err != nil {
		return err
	}

	v := viewAdmin(a)
	return message(c, http.StatusCreated, "Admin created successfully. Credentials sent via email.", map[string]any{
		"admin": map[string]any{
			"id":     v.ID,
			"email":  v.Email,
			"scopes": v.Scopes,
			"status": v.Status,
		},
	})
}

// ListAdmins returns every admin.
func (h *Handlers) ListAdmins(c echo.Context) error {
	admins, err := h.admins.List(c.Request().Context())
	if err != nil {
		return err
	}
	views := make([]adminView, 0, len(admins))
	for i := range admins {
		views = append(views, viewAdmin(&admins[i]))
	}
	return c.JSON(http.StatusOK, map[string]any{"admins": views})
}

// UpdateAdmin replaces the scopes and optionally the status of an admin.
func (h *Handlers) UpdateAdmin(c echo.Context) error {
	var req updateAdminRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	a, err := h.admins.Update(c.Request().Context(), c.Param("id"), req.Scopes, req.Status)
	if err != nil {
		return err
	}
	return message(c, http.StatusOK, "Admin updated successfully", map[string]any{"admin": viewAdmin(a)})
}

// DeleteAdmin removes a regular admin.
func (h *Handlers) DeleteAdmin(c echo.Context) error {
	if err := h.admins.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Admin deleted successfully", nil)
}

type segmentCount struct {
	Name  models.Segment `json:"name"`
	Count int64          `json:"count"`
}

type activity struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	Timestamp time.Time `json:"timestamp"`
}

// Stats returns the dashboard for the authenticated admin.
func (h *Handlers) Stats(c echo.Context) error {
	stats, err := h.admins.Stats(c.Request().Context(), principal(c))
	if err != nil {
		return err
	}

	segments := []segmentCount{}
	for _, seg := range models.AllSegments() {
		if n, ok := stats.BySegment[seg]; ok {
			segments = append(segments, segmentCount{Name: seg, Count: n})
		}
	}

	activities := make([]activity, 0, len(stats.RecentTeams))
	for _, t := range stats.RecentTeams {
		activities = append(activities, activity{
			ID:        t.ID,
			Type:      "REGISTRATION",
			Title:     "New Team: " + t.TeamName,
			Subtitle:  string(t.Segment) + " | " + t.Institution,
			Timestamp: t.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"summary": map[string]int64{
			"totalTeams":    stats.TotalTeams,
			"selectedTeams": stats.SelectedTeams,
			"totalRevenue":  stats.TotalRevenue,
		},
		"segments":         segments,
		"recentActivities": activities,
	})
}
