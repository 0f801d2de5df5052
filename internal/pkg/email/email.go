package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"github.com/staffsync/attendance-backend-go/internal/config"
)

const maxRetries = 3

// Notifier delivers a plain-text message to a set of recipients. A hung
// delivery is abandoned when ctx expires; the underlying connection is
// left to time out on its own.
type Notifier interface {
	Send(ctx context.Context, subject, body string, recipients []string) error
}

type smtpNotifier struct {
	cfg config.SMTPConfig
}

// NewNotifier creates an SMTP-backed Notifier.
func NewNotifier(cfg config.SMTPConfig) Notifier {
	return &smtpNotifier{cfg: cfg}
}

// Send implements Notifier.
func (s *smtpNotifier) Send(ctx context.Context, subject, body string, recipients []string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "subject", subject)
		return nil
	}
	if len(recipients) == 0 {
		slog.Warn("No report recipients configured, skipping email send", "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", strings.Join(recipients, ", "))
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/plain; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + body)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := s.sendOnce(ctx, addr, auth, from, recipients, message)
		if err == nil {
			slog.Info("Email sent successfully", "subject", subject, "recipients", len(recipients), "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		if ctx.Err() != nil {
			return fmt.Errorf("email send abandoned: %w", ctx.Err())
		}

		// Wait before retrying (exponential backoff: 1s, 2s, 4s)
		if attempt < maxRetries {
			select {
			case <-time.After(time.Duration(1<<(attempt-1)) * time.Second):
			case <-ctx.Done():
				return fmt.Errorf("email send abandoned: %w", ctx.Err())
			}
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}

// sendOnce runs one smtp.SendMail attempt, racing it against ctx so a
// stalled SMTP dialogue cannot block the caller.
func (s *smtpNotifier) sendOnce(ctx context.Context, addr string, auth smtp.Auth, from string, recipients []string, message []byte) error {
	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, from, recipients, message)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
