// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

// Package mailer sends transactional email for form submissions.
// Sending is best-effort: callers log failures and continue, a down
// SMTP server must never fail a form submission.
package mailer

import (
	"fmt"
	"html"
	"log/slog"
	"net/smtp"
	"time"
)

// Options configures the mailer. An empty SMTPHost disables sending;
// messages are logged instead, which is what development wants.
type Options struct {
	SMTPHost  string
	SMTPPort  int
	Username  string
	Password  string
	From      string
	FromName  string
	Recipient string // admin notification address
	SiteName  string
	BaseURL   string
}

// Mailer sends notification and confirmation email over SMTP.
type Mailer struct {
	opts    Options
	enabled bool
}

// New creates a mailer. Sending is enabled only when an SMTP host and
// a from address are configured.
func New(opts Options) *Mailer {
	return &Mailer{
		opts:    opts,
		enabled: opts.SMTPHost != "" && opts.From != "",
	}
}

// Enabled reports whether the mailer will actually send.
func (m *Mailer) Enabled() bool {
	return m.enabled
}

// Send delivers a multipart (text + HTML) message to a single recipient.
func (m *Mailer) Send(to, subject, textBody, htmlBody string) error {
	if !m.enabled {
		slog.Info("mail sending disabled, skipping", "to", to, "subject", subject)
		return nil
	}

	from := m.opts.From
	if m.opts.FromName != "" {
		from = fmt.Sprintf("%s <%s>", m.opts.FromName, m.opts.From)
	}

	boundary := fmt.Sprintf("=_part_%d", time.Now().UnixNano())

	msg := fmt.Sprintf("From: %s\r\n", from) +
		fmt.Sprintf("To: %s\r\n", to) +
		fmt.Sprintf("Subject: %s\r\n", subject) +
		"MIME-Version: 1.0\r\n" +
		fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q\r\n", boundary) +
		"\r\n" +
		fmt.Sprintf("--%s\r\n", boundary) +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		textBody + "\r\n"

	if htmlBody != "" {
		msg += fmt.Sprintf("--%s\r\n", boundary) +
			"Content-Type: text/html; charset=UTF-8\r\n" +
			"\r\n" +
			htmlBody + "\r\n"
	}
	msg += fmt.Sprintf("--%s--\r\n", boundary)

	var auth smtp.Auth
	if m.opts.Username != "" {
		auth = smtp.PlainAuth("", m.opts.Username, m.opts.Password, m.opts.SMTPHost)
	}

	addr := fmt.Sprintf("%s:%d", m.opts.SMTPHost, m.opts.SMTPPort)
	if err := smtp.SendMail(addr, auth, m.opts.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// notify sends to the configured admin recipient.
func (m *Mailer) notify(subject, textBody, htmlBody string) error {
	if m.opts.Recipient == "" {
		slog.Info("no notification recipient configured, skipping", "subject", subject)
		return nil
	}
	return m.Send(m.opts.Recipient, subject, textBody, htmlBody)
}

// SendContactNotification notifies the admin recipient about a new
// contact message.
func (m *Mailer) SendContactNotification(name, email, subject, message string) error {
	if subject == "" {
		subject = "(no subject)"
	}
	mailSubject := fmt.Sprintf("[%s] New contact message from %s", m.siteName(), name)

	text := fmt.Sprintf("New contact message\n\nName: %s\nEmail: %s\nSubject: %s\n\n%s\n", name, email, subject, message)
	rows := []row{
		{"Name", name},
		{"Email", email},
		{"Subject", subject},
		{"Message", message},
	}
	return m.notify(mailSubject, text, m.renderNotification("New contact message", rows))
}

// SendConsultationNotification notifies the admin recipient about a new
// consultation request.
func (m *Mailer) SendConsultationNotification(name, email, consultationType, challenge, goal string) error {
	mailSubject := fmt.Sprintf("[%s] New consultation request from %s", m.siteName(), name)

	text := fmt.Sprintf("New consultation request\n\nName: %s\nEmail: %s\nType: %s\nChallenge: %s\n\nGoal:\n%s\n",
		name, email, consultationType, challenge, goal)
	rows := []row{
		{"Name", name},
		{"Email", email},
		{"Type", consultationType},
		{"Challenge", challenge},
		{"Goal", goal},
	}
	return m.notify(mailSubject, text, m.renderNotification("New consultation request", rows))
}

// SendConsultationConfirmation confirms receipt to the person who
// requested the consultation.
func (m *Mailer) SendConsultationConfirmation(to, name string) error {
	subject := fmt.Sprintf("We received your consultation request — %s", m.siteName())

	text := fmt.Sprintf("Hi %s,\n\nThanks for requesting a consultation with %s. "+
		"We review every request personally and will get back to you within two business days.\n\n— %s\n",
		name, m.siteName(), m.siteName())
	html := m.renderMessage(
		fmt.Sprintf("Hi %s,", name),
		fmt.Sprintf("Thanks for requesting a consultation with %s. We review every request personally and will get back to you within two business days.", m.siteName()),
	)
	return m.Send(to, subject, text, html)
}

// SendApplicationNotification notifies the admin recipient about a new
// job application.
func (m *Mailer) SendApplicationNotification(jobTitle, firstName, lastName, email string) error {
	mailSubject := fmt.Sprintf("[%s] New application for %s", m.siteName(), jobTitle)

	text := fmt.Sprintf("New job application\n\nPosition: %s\nApplicant: %s %s\nEmail: %s\n",
		jobTitle, firstName, lastName, email)
	rows := []row{
		{"Position", jobTitle},
		{"Applicant", firstName + " " + lastName},
		{"Email", email},
	}
	return m.notify(mailSubject, text, m.renderNotification("New job application", rows))
}

// SendApplicationConfirmation confirms receipt to the applicant.
func (m *Mailer) SendApplicationConfirmation(to, firstName, jobTitle string) error {
	subject := fmt.Sprintf("Application received: %s — %s", jobTitle, m.siteName())

	text := fmt.Sprintf("Hi %s,\n\nWe received your application for the %s position at %s. "+
		"If your profile matches what we are looking for, we will reach out to schedule a conversation.\n\n— %s\n",
		firstName, jobTitle, m.siteName(), m.siteName())
	html := m.renderMessage(
		fmt.Sprintf("Hi %s,", firstName),
		fmt.Sprintf("We received your application for the %s position at %s. If your profile matches what we are looking for, we will reach out to schedule a conversation.", jobTitle, m.siteName()),
	)
	return m.Send(to, subject, text, html)
}

// SendCampaignSubmissionNotification notifies the admin recipient about
// a new campaign form submission.
func (m *Mailer) SendCampaignSubmissionNotification(campaignTitle, name, email, message string) error {
	mailSubject := fmt.Sprintf("[%s] New submission for campaign %q", m.siteName(), campaignTitle)

	text := fmt.Sprintf("New campaign submission\n\nCampaign: %s\nName: %s\nEmail: %s\n\n%s\n",
		campaignTitle, name, email, message)
	rows := []row{
		{"Campaign", campaignTitle},
		{"Name", name},
		{"Email", email},
		{"Message", message},
	}
	return m.notify(mailSubject, text, m.renderNotification("New campaign submission", rows))
}

func (m *Mailer) siteName() string {
	if m.opts.SiteName != "" {
		return m.opts.SiteName
	}
	return "Northbound Studio"
}

type row struct {
	Label string
	Value string
}

// renderNotification builds a small label/value table email for admin
// notifications. Values are HTML-escaped; they come from public forms.
func (m *Mailer) renderNotification(heading string, rows []row) string {
	body := ""
	for _, r := range rows {
		body += fmt.Sprintf(
			`<tr><td style="padding:6px 12px 6px 0;color:#64748b;font-size:14px;vertical-align:top;white-space:nowrap;">%s</td>`+
				`<td style="padding:6px 0;color:#0f172a;font-size:14px;">%s</td></tr>`,
			html.EscapeString(r.Label), html.EscapeString(r.Value))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:24px;background-color:#f8fafc;font-family:-apple-system,'Segoe UI',Roboto,Arial,sans-serif;">
  <table role="presentation" width="560" cellspacing="0" cellpadding="0" style="margin:0 auto;background:#ffffff;border-radius:8px;border:1px solid #e2e8f0;">
    <tr><td style="padding:24px 32px 8px;">
      <h2 style="margin:0 0 16px;font-size:18px;color:#0f172a;">%s</h2>
      <table role="presentation" cellspacing="0" cellpadding="0">%s</table>
    </td></tr>
    <tr><td style="padding:16px 32px 24px;">
      <p style="margin:0;font-size:12px;color:#94a3b8;">%s &middot; %s</p>
    </td></tr>
  </table>
</body>
</html>`, html.EscapeString(heading), body, html.EscapeString(m.siteName()), time.Now().Format("2006"))
}

// renderMessage builds a short confirmation email.
func (m *Mailer) renderMessage(greeting string, paragraphs ...string) string {
	body := ""
	for _, p := range paragraphs {
		body += fmt.Sprintf(`<p style="margin:0 0 16px;font-size:15px;line-height:1.6;color:#334155;">%s</p>`, html.EscapeString(p))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:24px;background-color:#f8fafc;font-family:-apple-system,'Segoe UI',Roboto,Arial,sans-serif;">
  <table role="presentation" width="560" cellspacing="0" cellpadding="0" style="margin:0 auto;background:#ffffff;border-radius:8px;border:1px solid #e2e8f0;">
    <tr><td style="padding:32px;">
      <p style="margin:0 0 16px;font-size:15px;color:#0f172a;font-weight:600;">%s</p>
      %s
      <p style="margin:16px 0 0;font-size:15px;color:#334155;">&mdash; %s</p>
    </td></tr>
  </table>
</body>
</html>`, html.EscapeString(greeting), body, html.EscapeString(m.siteName()))
}
