// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/apperr"
	"github.com/labstack/echo/v4"
)

type uniqueIDRequest struct {
	UniqueID string `json:"uniqueId" validate:"required"`
}

// callbackRequest is the SSLCommerz IPN body. The gateway posts it as a form.
type callbackRequest struct {
	TransactionID string `json:"tran_id" form:"tran_id" validate:"required"`
	Status        string `json:"status" form:"status"`
	ValID         string `json:"val_id" form:"val_id"`
}

type approveRequest struct {
	Note string `json:"note" validate:"required"`
}

// InitiatePayment creates a pending payment and returns the gateway request.
func (h *Handlers) InitiatePayment(c echo.Context) error {
	var req uniqueIDRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	checkout, err := h.payments.Initiate(c.Request().Context(), req.UniqueID)
	if err != nil {
		return err
	}

	return message(c, http.StatusOK, "Payment initiated", map[string]any{
		"payment": map[string]any{
			"id":            checkout.Payment.ID,
			"transactionId": checkout.Payment.TransactionID,
			"amount":        checkout.Payment.Amount,
			"status":        checkout.Payment.Status,
		},
		"paymentUrl":  checkout.GatewayURL,
		"gatewayUrl":  checkout.GatewayURL,
		"paymentData": checkout.PaymentData,
		"note":        "In production, redirect user to SSLCommerz gateway with this data",
	})
}

// PayLater emails the team its payment link.
func (h *Handlers) PayLater(c echo.Context) error {
	var req uniqueIDRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.payments.PayLater(c.Request().Context(), req.UniqueID); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Payment link sent to email addresses", nil)
}

// PaymentCallback applies a gateway notification to its payment.
func (h *Handlers) PaymentCallback(c echo.Context) error {
	var req callbackRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	status, err := h.payments.Callback(c.Request().Context(), req.TransactionID, req.Status, req.ValID)
	if err != nil {
		return err
	}
	return message(c, http.StatusOK, "Payment callback processed", map[string]any{"status": status})
}

// ListPayments returns the payments visible to the admin.
func (h *Handlers) ListPayments(c echo.Context) error {
	payments, err := h.payments.List(c.Request().Context(), principal(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"payments": payments})
}

// ApprovePayment forces a payment to SUCCESS.
func (h *Handlers) ApprovePayment(c echo.Context) error {
	var req approveRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	p := principal(c)
	if p == nil {
		return apperr.Unauthorized("Not authenticated")
	}

	payment, err := h.payments.Approve(c.Request().Context(), c.Param("id"), req.Note, p.AdminID)
	if err != nil {
		return err
	}
	return message(c, http.StatusOK, "Payment manually approved", map[string]any{"payment": payment})
}
