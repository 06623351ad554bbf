// Package mailer delivers transactional auth emails. Both implementations
// satisfy the auth module's Mailer interface.
package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/sirupsen/logrus"
)

// ResendMailer sends email through the Resend API.
type ResendMailer struct {
	client *resend.Client
	from   string
}

func NewResendMailer(apiKey, fromEmail string) *ResendMailer {
	return &ResendMailer{
		client: resend.NewClient(apiKey),
		from:   fromEmail,
	}
}

func (m *ResendMailer) SendConfirmationCode(ctx context.Context, toEmail, firstName, code string) error {
	html := fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Welcome to GigLog! Enter this code to confirm your email address:</p>
<p style="font-size:24px;font-weight:bold;letter-spacing:4px">%s</p>
<p>The code expires in 10 minutes. If you didn't sign up, you can ignore this email.</p>`,
		firstName, code,
	)
	return m.send(ctx, toEmail, "Confirm your GigLog email", html)
}

func (m *ResendMailer) SendPasswordResetCode(ctx context.Context, toEmail, firstName, code string) error {
	html := fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Enter this code to reset your GigLog password:</p>
<p style="font-size:24px;font-weight:bold;letter-spacing:4px">%s</p>
<p>The code expires in 10 minutes. If you didn't request a reset, you can ignore this email.</p>`,
		firstName, code,
	)
	return m.send(ctx, toEmail, "Reset your GigLog password", html)
}

func (m *ResendMailer) send(ctx context.Context, toEmail, subject, html string) error {
	_, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{toEmail},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	return nil
}

// DevConsoleMailer logs codes instead of sending email. Used when no
// RESEND_API_KEY is configured, typically in local development.
type DevConsoleMailer struct {
	log *logrus.Logger
}

func NewDevConsoleMailer(log *logrus.Logger) *DevConsoleMailer {
	return &DevConsoleMailer{log: log}
}

func (m *DevConsoleMailer) SendConfirmationCode(_ context.Context, toEmail, firstName, code string) error {
	m.log.WithFields(logrus.Fields{
		"to":         toEmail,
		"first_name": firstName,
		"code":       code,
	}).Info("dev mailer: email confirmation code")
	return nil
}

func (m *DevConsoleMailer) SendPasswordResetCode(_ context.Context, toEmail, firstName, code string) error {
	m.log.WithFields(logrus.Fields{
		"to":         toEmail,
		"first_name": firstName,
		"code":       code,
	}).Info("dev mailer: password reset code")
	return nil
}
