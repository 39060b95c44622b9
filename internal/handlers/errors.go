// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/apperr"
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Status        string              `json:"status"`
	Message       string              `json:"message"`
	Errors        []apperr.FieldError `json:"errors,omitempty"`
	Stack         string              `json:"stack,omitempty"`
	OriginalError string              `json:"originalError,omitempty"`
}

// NewHTTPErrorHandler translates handler errors into JSON responses.
// Internal errors are logged and reported without detail unless
// development is set, in which case the cause and stack are included.
func NewHTTPErrorHandler(development bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := errorResponse(err, development)
		if status >= http.StatusInternalServerError {
			slog.ErrorContext(c.Request().Context(), "request_failed",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"error", err,
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			slog.Error("error_response_failed", "error", writeErr)
		}
	}
}

func errorResponse(err error, development bool) (int, ErrorResponse) {
	body := ErrorResponse{Status: "error"}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		status := appErr.Kind.Status()
		body.Message = appErr.Message
		body.Errors = appErr.Fields
		if appErr.Kind == apperr.KindInternal {
			if development {
				if appErr.Err != nil {
					body.OriginalError = appErr.Err.Error()
				}
				body.Stack = fmt.Sprintf("%+v", appErr.Err)
			}
		}
		return status, body
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		body.Message = fmt.Sprint(httpErr.Message)
		if msg, ok := httpErr.Message.(string); ok {
			body.Message = msg
		}
		if development && httpErr.Internal != nil {
			body.OriginalError = httpErr.Internal.Error()
		}
		return httpErr.Code, body
	}

	body.Message = "Internal server error"
	if development {
		body.OriginalError = err.Error()
		body.Stack = fmt.Sprintf("%+v", err)
	}
	return http.StatusInternalServerError, body
}
