// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

const emailStyles = `body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
.container { max-width: 600px; margin: 0 auto; padding: 20px; }
.header { background: #3d5a30; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
.content { background: #f9f9f9; padding: 30px; border-radius: 0 0 8px 8px; }
.box { background: white; padding: 20px; border-left: 4px solid #3d5a30; margin: 20px 0; }
.footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
.button { display: inline-block; padding: 12px 24px; background: #3d5a30; color: white; text-decoration: none; border-radius: 4px; margin-top: 20px; }
.code { letter-spacing: 5px; background: #f0f0f0; padding: 10px; display: inline-block; }`

// emailLayout wraps body in the shared email chrome.
func emailLayout(heading string, body func(ctx context.Context, h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.rawf(`<!DOCTYPE html><html lang="%s"><head><meta charset="utf-8"><style>`, Locale(ctx))
		h.raw(emailStyles)
		h.raw(`</style></head><body><div class="container"><div class="header"><h1>`)
		h.text(heading)
		h.raw(`</h1></div><div class="content">`)
		body(ctx, h)
		h.raw(`<div class="footer"><p>`)
		h.text(T(ctx, "app_name"))
		h.raw(`<br>`)
		h.text(T(ctx, "email_footer"))
		h.raw(`</p></div></div></div></body></html>`)
		return h.err
	})
}

func labelled(h *htmlWriter, label, value string) {
	h.rawf(`<p><strong>%s:</strong> %s</p>`, label, value)
}

// OTPEmail is the body of the email verification code message.
func OTPEmail(code string, minutes int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return emailLayout(T(ctx, "email_otp_heading"), func(ctx context.Context, h *htmlWriter) {
			h.rawf(`<p>%s</p><h1 class="code">%s</h1>`, T(ctx, "email_otp_intro"), code)
			h.rawf(`<p>%s</p>`, TData(ctx, "email_otp_validity", map[string]any{"Minutes": minutes}))
		}).Render(ctx, w)
	})
}

// AdminCredentialsEmail tells a new admin their login credentials.
func AdminCredentialsEmail(email, password string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return emailLayout(T(ctx, "email_admin_heading"), func(ctx context.Context, h *htmlWriter) {
			h.rawf(`<p>%s</p><div class="box"><h3>%s</h3>`, T(ctx, "email_admin_intro"), T(ctx, "email_admin_credentials"))
			labelled(h, T(ctx, "email_admin_email_label"), email)
			h.rawf(`<p><strong>%s:</strong> <code>%s</code></p></div>`, T(ctx, "email_admin_password_label"), password)
			h.rawf(`<p><strong>%s</strong></p><p>%s</p>`, T(ctx, "email_admin_notice"), T(ctx, "email_admin_contact"))
		}).Render(ctx, w)
	})
}

// TeamEmailData describes a team in participant emails.
type TeamEmailData struct {
	TeamName    string
	Segment     string
	MemberCount int
	PaymentLink string
	HasReceipt  bool
}

func teamDetails(ctx context.Context, h *htmlWriter, d TeamEmailData) {
	h.rawf(`<div class="box"><h3>%s</h3>`, T(ctx, "email_team_details"))
	labelled(h, T(ctx, "email_team_name_label"), d.TeamName)
	labelled(h, T(ctx, "email_competition_label"), d.Segment)
	labelled(h, T(ctx, "email_members_label"), strconv.Itoa(d.MemberCount))
	h.raw(`</div>`)
}

// RegistrationEmail confirms a registration and links to the checkout page.
func RegistrationEmail(d TeamEmailData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return emailLayout(T(ctx, "email_registration_heading"), func(ctx context.Context, h *htmlWriter) {
			h.rawf(`<p>%s</p>`, T(ctx, "email_registration_intro"))
			teamDetails(ctx, h, d)
			h.rawf(`<p>%s</p>`, T(ctx, "email_registration_next"))
			h.rawf(`<p style="text-align: center;"><a href="%s" class="button">%s</a></p>`,
				string(templ.URL(d.PaymentLink)), T(ctx, "email_registration_button"))
			h.rawf(`<p style="color: #666; font-size: 14px;"><em>%s</em></p>`,
				TData(ctx, "email_registration_copy_link", map[string]any{"Link": d.PaymentLink}))
			if d.HasReceipt {
				h.rawf(`<p>%s</p>`, T(ctx, "email_receipt_attached"))
			}
		}).Render(ctx, w)
	})
}

// PaymentEmailData describes a confirmed payment.
type PaymentEmailData struct {
	TeamEmailData
	Amount        int64
	Currency      string
	TransactionID string
}

// PaymentEmail confirms a successful payment.
func PaymentEmail(d PaymentEmailData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return emailLayout(T(ctx, "email_payment_heading"), func(ctx context.Context, h *htmlWriter) {
			h.rawf(`<p>%s</p>`, T(ctx, "email_payment_intro"))
			teamDetails(ctx, h, d.TeamEmailData)
			h.raw(`<div class="box">`)
			labelled(h, T(ctx, "email_payment_amount_label"), strconv.FormatInt(d.Amount, 10)+" "+d.Currency)
			labelled(h, T(ctx, "email_payment_transaction_label"), d.TransactionID)
			h.raw(`</div>`)
			if d.HasReceipt {
				h.rawf(`<p>%s</p>`, T(ctx, "email_receipt_attached"))
			}
		}).Render(ctx, w)
	})
}
