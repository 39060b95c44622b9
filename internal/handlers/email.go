// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/broadcast"
	"github.com/labstack/echo/v4"
)

type bulkEmailRequest struct {
	Subject string                `json:"subject" validate:"required,max=200"`
	Body    string                `json:"body" validate:"required"`
	Filter  broadcast.FilterInput `json:"filter"`
}

type singleEmailRequest struct {
	RecipientEmail string `json:"recipientEmail" validate:"required,email"`
	Subject        string `json:"subject" validate:"required,max=200"`
	Body           string `json:"body" validate:"required"`
}

// SendBulkEmail sends one message to every recipient matching the filter.
func (h *Handlers) SendBulkEmail(c echo.Context) error {
	var req bulkEmailRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	filter, err := broadcast.ParseFilter(req.Filter)
	if err != nil {
		return err
	}

	res, err := h.broadcast.SendBulk(c.Request().Context(), principal(c), req.Subject, req.Body, filter)
	if err != nil {
		return err
	}
	return message(c, http.StatusOK, "Bulk email sent", map[string]any{"stats": res})
}

// SendSingleEmail sends one message to one address.
func (h *Handlers) SendSingleEmail(c echo.Context) error {
	var req singleEmailRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.broadcast.SendSingle(c.Request().Context(), principal(c), req.RecipientEmail, req.Subject, req.Body)
	if err != nil {
		return err
	}
	return message(c, http.StatusOK, "Email sent", map[string]any{"stats": res})
}

// EmailLogs returns the most recent bulk email logs.
func (h *Handlers) EmailLogs(c echo.Context) error {
	logs, err := h.broadcast.Logs(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"logs": logs})
}
