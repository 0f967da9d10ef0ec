// Package mail provides the outbound email collaborator used by the auth
// flows. The SMTP sender speaks implicit TLS (port 465); when no SMTP host is
// configured a log-only sender stands in so development signups still work.
package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"time"

	portssvc "github.com/craftmyfolio/cmf_backend/internal/core/ports/services"
	"github.com/craftmyfolio/cmf_backend/internal/platform/config"
)

// SMTPSender delivers OTP emails over implicit-TLS SMTP.
type SMTPSender struct {
	host     string
	port     string
	username string
	password string
	from     string
	timeout  time.Duration
}

// NewSMTPSender creates an SMTPSender from application configuration.
func NewSMTPSender(cfg *config.Config) *SMTPSender {
	return &SMTPSender{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.MailFrom,
		timeout:  cfg.MailTimeout,
	}
}

var _ portssvc.MailSenderSvc = (*SMTPSender)(nil)

// SendVerificationOTP delivers the signup verification code.
func (s *SMTPSender) SendVerificationOTP(ctx context.Context, to string, otp string) error {
	body := fmt.Sprintf(`
      <h2>Email Verification</h2>
      <p>Thank you for registering! Your email verification OTP code is: <strong>%s</strong></p>
      <p>This code will expire in 10 minutes.</p>
      <p>Please enter this code to verify your email address.</p>
    `, otp)
	return s.send(ctx, to, "Email Verification OTP", body)
}

// SendPasswordResetOTP delivers the password-reset code.
func (s *SMTPSender) SendPasswordResetOTP(ctx context.Context, to string, otp string) error {
	body := fmt.Sprintf(`
      <h2>Password Reset Request</h2>
      <p>Your OTP code for password reset is: <strong>%s</strong></p>
      <p>This code will expire in 10 minutes.</p>
      <p>If you didn't request this, please ignore this email.</p>
    `, otp)
	return s.send(ctx, to, "Password Reset OTP", body)
}

// send performs one SMTP transaction. The dial is bounded by the configured
// timeout so a slow provider cannot hold the request indefinitely.
func (s *SMTPSender) send(ctx context.Context, to, subject, body string) error {
	msg := []byte(
		fmt.Sprintf("From: %s\r\n", s.from) +
			fmt.Sprintf("To: %s\r\n", to) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body,
	)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	serverAddr := net.JoinHostPort(s.host, s.port)
	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{},
		Config:    &tls.Config{ServerName: s.host},
	}
	conn, err := dialer.DialContext(ctx, "tcp", serverAddr)
	if err != nil {
		return fmt.Errorf("failed to dial smtp server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth failed: %w", err)
	}

	if err := client.Mail(s.from); err != nil {
		return fmt.Errorf("smtp MAIL failed: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp RCPT failed: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA failed: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("failed to write smtp message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close smtp message: %w", err)
	}

	return nil
}
