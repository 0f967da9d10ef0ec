package mail

import (
	"context"
	"log/slog"

	portssvc "github.com/craftmyfolio/cmf_backend/internal/core/ports/services"
)

// LogSender logs OTPs instead of sending email. Used when no SMTP host is
// configured, so local development signups remain verifiable.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a LogSender writing to the given logger.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

var _ portssvc.MailSenderSvc = (*LogSender)(nil)

// SendVerificationOTP logs the signup verification code.
func (s *LogSender) SendVerificationOTP(ctx context.Context, to string, otp string) error {
	s.logger.InfoContext(ctx, "verification OTP (mail disabled)",
		slog.String("to", to), slog.String("otp", otp))
	return nil
}

// SendPasswordResetOTP logs the password-reset code.
func (s *LogSender) SendPasswordResetOTP(ctx context.Context, to string, otp string) error {
	s.logger.InfoContext(ctx, "password reset OTP (mail disabled)",
		slog.String("to", to), slog.String("otp", otp))
	return nil
}
