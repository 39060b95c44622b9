// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package payment

import (
	"strconv"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/config"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
)

const (
	sandboxURL = "https://sandbox.sslcommerz.com"
	liveURL    = "https://securepay.sslcommerz.com"
	processAPI = "/gwprocess/v4/api.php"
)

// Gateway builds SSLCommerz checkout requests.
type Gateway struct {
	cfg config.PaymentConfig
}

// NewGateway creates a gateway for the configured store.
func NewGateway(cfg config.PaymentConfig) *Gateway {
	return &Gateway{cfg: cfg}
}

// URL is the endpoint the checkout request is posted to.
func (g *Gateway) URL() string {
	if g.cfg.Live {
		return liveURL + processAPI
	}
	return sandboxURL + processAPI
}

// Payload returns the form fields of a checkout request for payment.
func (g *Gateway) Payload(team *models.Team, leader *models.Member, payment *models.Payment) map[string]string {
	return map[string]string{
		"store_id":         g.cfg.StoreID,
		"store_passwd":     g.cfg.StorePassword,
		"total_amount":     strconv.FormatInt(payment.Amount, 10),
		"currency":         payment.Currency,
		"tran_id":          payment.TransactionID,
		"success_url":      g.cfg.SuccessURL,
		"fail_url":         g.cfg.FailURL,
		"cancel_url":       g.cfg.CancelURL,
		"ipn_url":          g.cfg.IPNURL,
		"cus_name":         leader.FullName,
		"cus_email":        leader.Email,
		"cus_phone":        leader.PhoneOr("N/A"),
		"cus_add1":         team.Institution,
		"cus_city":         "Sylhet",
		"cus_country":      "Bangladesh",
		"product_name":     string(team.Segment) + " Registration Fee",
		"product_category": "Competition Fee",
		"product_profile":  "general",
	}
}

// StatusFromGateway maps a gateway status to a payment status.
// VALID and VALIDATED succeed, CANCELLED cancels, anything else fails.
func StatusFromGateway(status string) models.PaymentStatus {
	switch status {
	case "VALID", "VALIDATED":
		return models.PaymentSuccess
	case "CANCELLED":
		return models.PaymentCancelled
	default:
		return models.PaymentFailed
	}
}
