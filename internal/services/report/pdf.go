// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
	"github.com/go-pdf/fpdf"
	"github.com/skip2/go-qrcode"
)

const (
	brandColor   = "#3d5a30"
	successColor = "#22c55e"
	pendingColor = "#eab308"
	failedColor  = "#ef4444"

	eventTitle   = "SUST CSE Carnival 2026"
	supportEmail = "cse.carnival@sust.edu"
)

type rgb struct{ r, g, b int }

func hexColor(hex string) rgb {
	hex = strings.TrimPrefix(hex, "#")
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || len(hex) != 6 {
		return rgb{}
	}
	return rgb{int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)}
}

func fill(pdf *fpdf.Fpdf, hex string) {
	c := hexColor(hex)
	pdf.SetFillColor(c.r, c.g, c.b)
}

func textColor(pdf *fpdf.Fpdf, hex string) {
	c := hexColor(hex)
	pdf.SetTextColor(c.r, c.g, c.b)
}

// StatusColor returns the badge color for a payment status.
func StatusColor(status models.PaymentStatus) string {
	switch status {
	case models.PaymentSuccess:
		return successColor
	case models.PaymentPending:
		return pendingColor
	default:
		return failedColor
	}
}

// ReceiptID is the short identifier printed on receipts.
func ReceiptID(uniqueID string) string {
	if len(uniqueID) > 8 {
		uniqueID = uniqueID[:8]
	}
	return strings.ToUpper(uniqueID)
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderTeamsPDF renders the team registration list.
func RenderTeamsPDF(teams []models.Team, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 5, fmt.Sprintf("Total Teams: %d  |  Page %d", len(teams), pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 10, eventTitle, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 16)
	pdf.CellFormat(0, 9, "Team Registration List", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, "Generated: "+generatedAt.Format("2006-01-02 15:04 MST"), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	for i := range teams {
		team := &teams[i]
		if i > 0 && i%3 == 0 {
			pdf.AddPage()
		}

		pdf.SetFont("Helvetica", "B", 14)
		textColor(pdf, brandColor)
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("%d. %s", i+1, team.TeamName)), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(0, 0, 0)
		status := "Pending"
		if team.IsSelected {
			status = "Selected"
		}
		lines := []string{
			"Competition: " + string(team.Segment),
			"Institution: " + team.Institution,
			"Status: " + status,
			"Payment: " + string(team.PaymentStatus()),
		}
		if team.IsDisqualified {
			lines = append(lines, "Disqualified: "+deref(team.DisqualificationReason))
		}
		if team.Standing != models.StandingNone && team.Standing != "" {
			lines = append(lines, "Standing: "+string(team.Standing))
		}
		for _, l := range lines {
			pdf.CellFormat(0, 5, tr(l), "", 1, "L", false, 0, "")
		}

		pdf.Ln(2)
		pdf.SetFont("Helvetica", "BU", 11)
		pdf.CellFormat(0, 6, "Team Members:", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for j, m := range team.Members {
			name := fmt.Sprintf("  %d. %s", j+1, m.FullName)
			if m.IsTeamLeader {
				name += " (Leader)"
			}
			pdf.CellFormat(0, 5, tr(name), "", 1, "L", false, 0, "")
			for _, detail := range []string{
				"Email: " + m.Email,
				"Phone: " + m.PhoneOr("N/A"),
				"University: " + m.University,
				"T-Shirt: " + string(m.TShirtSize),
			} {
				pdf.CellFormat(0, 5, tr("       "+detail), "", 1, "L", false, 0, "")
			}
		}
		pdf.Ln(8)
	}

	return output(pdf)
}

// receiptQR is the payload encoded in the receipt QR code.
type receiptQR struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Members int    `json:"members"`
}

// ReceiptQRPayload returns the JSON encoded in the receipt QR code.
func ReceiptQRPayload(team *models.Team) (string, error) {
	data, err := json.Marshal(receiptQR{
		ID:      team.UniqueID,
		Name:    team.TeamName,
		Status:  string(team.PaymentStatus()),
		Members: len(team.Members),
	})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// RenderReceiptPDF renders a team's official registration receipt.
func RenderReceiptPDF(team *models.Team, issuedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()

	// Watermark
	pdf.TransformBegin()
	pdf.TransformRotate(45, pageW/2, pageH/2)
	pdf.SetFont("Helvetica", "B", 90)
	pdf.SetTextColor(240, 240, 240)
	pdf.SetXY(0, pageH/2-20)
	pdf.CellFormat(pageW, 40, "SUST CSE", "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	// Header band
	fill(pdf, brandColor)
	pdf.Rect(0, 0, pageW, 42, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetXY(18, 12)
	pdf.CellFormat(120, 10, strings.ToUpper(eventTitle), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetXY(18, 25)
	pdf.CellFormat(120, 6, "OFFICIAL REGISTRATION RECEIPT", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(pageW-78, 12)
	pdf.CellFormat(60, 5, "Receipt ID: "+ReceiptID(team.UniqueID), "", 0, "R", false, 0, "")
	pdf.SetXY(pageW-78, 18)
	pdf.CellFormat(60, 5, "Date: "+issuedAt.Format("2 Jan 2006"), "", 0, "R", false, 0, "")

	// Team details
	section := func(y float64, title string) {
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetXY(18, y)
		pdf.CellFormat(0, 5, title, "", 0, "L", false, 0, "")
		fill(pdf, brandColor)
		pdf.Rect(18, y+6, pageW-36, 0.7, "F")
	}
	section(49, "TEAM REGISTRATION DETAILS")

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetXY(18, 60)
	pdf.CellFormat(120, 10, tr(team.TeamName), "", 0, "L", false, 0, "")

	institution := team.Institution
	if institution == "" {
		institution = "N/A"
	}
	details := []struct{ label, value, font string }{
		{"Competition Segment:", string(team.Segment), "Helvetica"},
		{"Institution:", institution, "Helvetica"},
		{"Registration ID:", team.UniqueID, "Courier"},
	}
	for i, d := range details {
		y := 73 + float64(i)*7
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetXY(18, y)
		pdf.CellFormat(50, 6, d.label, "", 0, "L", false, 0, "")
		pdf.SetFont(d.font, "B", 11)
		pdf.CellFormat(70, 6, tr(d.value), "", 0, "L", false, 0, "")
	}

	// Payment status badge
	status := team.PaymentStatus()
	fill(pdf, StatusColor(status))
	pdf.Rect(pageW-60, 66, 42, 14, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetXY(pageW-60, 66)
	pdf.CellFormat(42, 14, string(status), "", 0, "C", false, 0, "")

	// Members
	section(104, "TEAM MEMBERS")
	y := 115.0
	for i, m := range team.Members {
		name := fmt.Sprintf("%d. %s", i+1, m.FullName)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetXY(18, y)
		pdf.CellFormat(pdf.GetStringWidth(tr(name))+2, 6, tr(name), "", 0, "L", false, 0, "")
		if m.IsTeamLeader {
			textColor(pdf, brandColor)
			pdf.SetFont("Helvetica", "B", 8)
			pdf.CellFormat(20, 6, "(LEADER)", "", 0, "L", false, 0, "")
		}
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetXY(105, y)
		pdf.CellFormat(55, 6, tr(m.Email), "", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, tr(m.PhoneOr("")), "", 0, "L", false, 0, "")
		y += 9
	}

	// QR code
	payload, err := ReceiptQRPayload(team)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("generate qr code: %w", err)
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("receipt-qr", opts, bytes.NewReader(png))
	pdf.ImageOptions("receipt-qr", pageW-55, 238, 36, 36, false, opts, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(pageW-55, 275)
	pdf.CellFormat(36, 4, "Scan for Verification", "", 0, "C", false, 0, "")

	// Instructions
	pdf.SetFont("Helvetica", "U", 10)
	pdf.SetXY(18, 240)
	pdf.CellFormat(60, 5, "Instructions:", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for i, line := range []string{
		"1. Please print this receipt or save it on your mobile device.",
		"2. Present the QR code at the registration desk for check-in.",
		"3. For any issues, contact support at " + supportEmail,
	} {
		pdf.SetXY(18, 247+float64(i)*5.5)
		pdf.CellFormat(120, 5, line, "", 0, "L", false, 0, "")
	}

	fill(pdf, brandColor)
	pdf.Rect(0, pageH-8, pageW, 8, "F")

	return output(pdf)
}
