// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/handlers"
	appmw "github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/middleware"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
	"github.com/labstack/echo/v4"
)

func setupRoutes(e *echo.Echo, h *handlers.Handlers, authn appmw.Authenticator) {
	e.GET("/", h.Welcome)
	e.GET("/health", h.Health)

	api := e.Group("/api")
	requireAdmin := appmw.Authenticate(authn)
	super := []echo.MiddlewareFunc{requireAdmin, appmw.RequireSuperAdmin}
	scoped := []echo.MiddlewareFunc{requireAdmin, appmw.RequireScope(models.AllSegments()...)}

	// Admins
	admins := api.Group("/admin")
	admins.POST("/login", h.Login)
	admins.GET("/me", h.Me, requireAdmin)
	admins.GET("/stats", h.Stats, requireAdmin)
	admins.POST("", h.CreateAdmin, super...)
	admins.GET("", h.ListAdmins, super...)
	admins.PATCH("/:id", h.UpdateAdmin, super...)
	admins.DELETE("/:id", h.DeleteAdmin, super...)

	// Teams
	teams := api.Group("/teams")
	teams.POST("/register", h.RegisterTeam)
	teams.GET("/by-unique-id/:uniqueId", h.TeamSummary)
	teams.GET("", h.ListTeams, requireAdmin)
	teams.GET("/:id", h.GetTeam, requireAdmin)
	teams.PATCH("/:id/selection", h.UpdateSelection, super...)
	teams.PATCH("/:id/disqualify", h.Disqualify, super...)
	teams.PATCH("/:id/standing", h.UpdateStanding, super...)
	teams.DELETE("/:id", h.DeleteTeam, super...)

	// Payments
	payments := api.Group("/payment")
	payments.POST("/initiate", h.InitiatePayment)
	payments.POST("/pay-later", h.PayLater)
	payments.POST("/callback", h.PaymentCallback)
	payments.GET("", h.ListPayments, requireAdmin)
	payments.PATCH("/:id/approve", h.ApprovePayment, super...)

	// Email
	mail := api.Group("/email", scoped...)
	mail.POST("/send-bulk", h.SendBulkEmail)
	mail.POST("/send-single", h.SendSingleEmail)
	mail.GET("/logs", h.EmailLogs)

	// Downloads
	downloads := api.Group("/download")
	downloads.GET("/teams", h.TeamsPDF, scoped...)
	downloads.GET("/teams/csv", h.TeamsCSV, scoped...)
	downloads.GET("/payments/csv", h.PaymentsCSV, scoped...)
	downloads.GET("/receipt/:uniqueId", h.Receipt)

	// Email verification
	otp := api.Group("/auth")
	otp.POST("/request-otp", h.RequestOTP)
	otp.POST("/verify-otp", h.VerifyOTP)
}
