// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"github.com/labstack/echo/v4"
)

// TeamsPDF downloads the teams visible to the admin as a PDF.
func (h *Handlers) TeamsPDF(c echo.Context) error {
	segment, err := segmentParam(c)
	if err != nil {
		return err
	}
	doc, err := h.reports.TeamsPDF(c.Request().Context(), principal(c), segment)
	if err != nil {
		return err
	}
	return attachment(c, doc)
}

// TeamsCSV downloads the teams visible to the admin as CSV.
func (h *Handlers) TeamsCSV(c echo.Context) error {
	segment, err := segmentParam(c)
	if err != nil {
		return err
	}
	doc, err := h.reports.TeamsCSV(c.Request().Context(), principal(c), segment)
	if err != nil {
		return err
	}
	return attachment(c, doc)
}

// PaymentsCSV downloads the payments visible to the admin as CSV.
func (h *Handlers) PaymentsCSV(c echo.Context) error {
	segment, err := segmentParam(c)
	if err != nil {
		return err
	}
	doc, err := h.reports.PaymentsCSV(c.Request().Context(), principal(c), segment)
	if err != nil {
		return err
	}
	return attachment(c, doc)
}

// Receipt downloads the public payment receipt of a team.
func (h *Handlers) Receipt(c echo.Context) error {
	doc, err := h.reports.Receipt(c.Request().Context(), c.Param("uniqueId"))
	if err != nil {
		return err
	}
	return attachment(c, doc)
}
