package auth

import "context"

// Mailer delivers the one-time codes minted by the auth flows.
type Mailer interface {
	SendConfirmationCode(ctx context.Context, toEmail, firstName, code string) error
	SendPasswordResetCode(ctx context.Context, toEmail, firstName, code string) error
}
