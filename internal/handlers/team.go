// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"
	"strconv"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/apperr"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/team"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/validate"
	"github.com/labstack/echo/v4"
)

type selectionRequest struct {
	IsSelected *bool `json:"isSelected" validate:"required"`
}

type disqualifyRequest struct {
	IsDisqualified *bool   `json:"isDisqualified" validate:"required"`
	Reason         *string `json:"reason"`
}

type standingRequest struct {
	Standing models.Standing `json:"standing" validate:"required,oneof=NONE WINNER FIRST_RUNNER_UP SECOND_RUNNER_UP"`
}

// RegisterTeam creates a team from a public registration form.
func (h *Handlers) RegisterTeam(c echo.Context) error {
	var req team.RegisterInput
	if err := bind(c, &req); err != nil {
		return err
	}

	t, err := h.teams.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return message(c, http.StatusCreated, "Team registered successfully", map[string]any{
		"team": map[string]any{
			"id":          t.ID,
			"uniqueId":    t.UniqueID,
			"teamName":    t.TeamName,
			"segment":     t.Segment,
			"institution": t.Institution,
			"members":     t.Members,
		},
	})
}

// TeamSummary returns the public summary used by the checkout page.
func (h *Handlers) TeamSummary(c echo.Context) error {
	summary, err := h.teams.GetSummary(c.Request().Context(), c.Param("uniqueId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"team": summary})
}

func intParam(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validation(validate.Message,
			apperr.FieldError{Path: name, Message: name + " must be a number"})
	}
	return n, nil
}

func listInput(c echo.Context) (team.ListInput, error) {
	var in team.ListInput
	var err error

	if in.Segment, err = segmentParam(c); err != nil {
		return in, err
	}
	if raw := c.QueryParam("isSelected"); raw != "" {
		selected, err := strconv.ParseBool(raw)
		if err != nil {
			return in, apperr.Validation(validate.Message,
				apperr.FieldError{Path: "isSelected", Message: "isSelected must be true or false"})
		}
		in.IsSelected = &selected
	}
	in.Search = c.QueryParam("search")
	if in.Page, err = intParam(c, "page"); err != nil {
		return in, err
	}
	if in.Limit, err = intParam(c, "limit"); err != nil {
		return in, err
	}
	return in, nil
}

// ListTeams returns a filtered page of the teams visible to the admin.
func (h *Handlers) ListTeams(c echo.Context) error {
	in, err := listInput(c)
	if err != nil {
		return err
	}
	page, err := h.teams.List(c.Request().Context(), principal(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// GetTeam returns one team with members and payments.
func (h *Handlers) GetTeam(c echo.Context) error {
	t, err := h.teams.Get(c.Request().Context(), principal(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"team": t})
}

// UpdateSelection marks a team as selected or not.
func (h *Handlers) UpdateSelection(c echo.Context) error {
	var req selectionRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	t, err := h.teams.SetSelection(c.Request().Context(), c.Param("id"), *req.IsSelected)
	if err != nil {
		return err
	}

	msg := "Team unselected successfully"
	if *req.IsSelected {
		msg = "Team selected successfully"
	}
	return message(c, http.StatusOK, msg, map[string]any{"team": t})
}

// Disqualify disqualifies or reinstates a team.
func (h *Handlers) Disqualify(c echo.Context) error {
	var req disqualifyRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	t, err := h.teams.Disqualify(c.Request().Context(), c.Param("id"), *req.IsDisqualified, req.Reason)
	if err != nil {
		return err
	}

	msg := "Team reinstated successfully"
	if *req.IsDisqualified {
		msg = "Team disqualified successfully"
	}
	return message(c, http.StatusOK, msg, map[string]any{"team": t})
}

// UpdateStanding records a team's final placement.
func (h *Handlers) UpdateStanding(c echo.Context) error {
	var req standingRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	t, err := h.teams.SetStanding(c.Request().Context(), c.Param("id"), req.Standing)
	if err != nil {
		return err
	}
	return message(c, http.StatusOK, "Team standing updated successfully", map[string]any{"team": t})
}

// DeleteTeam removes a team with its members and payments.
func (h *Handlers) DeleteTeam(c echo.Context) error {
	if err := h.teams.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Team deleted successfully", nil)
}
