package services

import "context"

// MailSenderSvc abstracts the outbound email collaborator. Implementations
// are expected to bound the send with the supplied context.
type MailSenderSvc interface {
	// SendVerificationOTP delivers the signup verification code.
	SendVerificationOTP(ctx context.Context, to string, otp string) error

	// SendPasswordResetOTP delivers the password-reset code.
	SendPasswordResetOTP(ctx context.Context, to string, otp string) error
}
