// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type requestOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type verifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

// RequestOTP emails a fresh one-time code.
func (h *Handlers) RequestOTP(c echo.Context) error {
	var req requestOTPRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.verification.Request(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return message(c, http.StatusOK, "OTP sent to your email", nil)
}

// VerifyOTP checks a one-time code.
func (h *Handlers) VerifyOTP(c echo.Context) error {
	var req verifyOTPRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.verification.Verify(c.Request().Context(), req.Email, req.OTP); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Email verified successfully", nil)
}
