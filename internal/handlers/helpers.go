// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"fmt"
	"net/http"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/apperr"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/auth"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/services/report"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/validate"
	"github.com/labstack/echo/v4"
)

// Validator adapts the validate package to echo.
type Validator struct{}

// Validate implements echo.Validator.
func (Validator) Validate(i any) error {
	return validate.Struct(i)
}

// bind decodes the request into v and validates it.
func bind(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return apperr.Validation("Invalid request body")
	}
	return c.Validate(v)
}

func principal(c echo.Context) *auth.Principal {
	return auth.GetPrincipal(c.Request().Context())
}

// segmentParam reads an optional segment query parameter.
func segmentParam(c echo.Context) (*models.Segment, error) {
	raw := c.QueryParam("segment")
	if raw == "" {
		return nil, nil
	}
	segment := models.Segment(raw)
	if !segment.Valid() {
		return nil, apperr.Validation(validate.Message,
			apperr.FieldError{Path: "segment", Message: "Invalid segment: " + raw})
	}
	return &segment, nil
}

// message writes {"message": msg} merged with extra fields.
func message(c echo.Context, status int, msg string, extra map[string]any) error {
	body := map[string]any{"message": msg}
	for k, v := range extra {
		body[k] = v
	}
	return c.JSON(status, body)
}

func attachment(c echo.Context, doc *report.Document) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Filename))
	return c.Blob(http.StatusOK, doc.ContentType, doc.Data)
}
