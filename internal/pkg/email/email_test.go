package email

import (
	"context"
	"testing"

	"github.com/staffsync/attendance-backend-go/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestSendSkipsWhenUnconfigured(t *testing.T) {
	n := NewNotifier(config.SMTPConfig{})

	err := n.Send(context.Background(), "Subject", "Body", []string{"ops@example.com"})
	assert.NoError(t, err)
}

func TestSendSkipsWithoutRecipients(t *testing.T) {
	n := NewNotifier(config.SMTPConfig{Host: "smtp.example.com", Port: 587, From: "noreply@example.com"})

	err := n.Send(context.Background(), "Subject", "Body", nil)
	assert.NoError(t, err)
}

func TestSendAbandonedOnCancelledContext(t *testing.T) {
	n := NewNotifier(config.SMTPConfig{Host: "smtp.invalid", Port: 587, From: "noreply@example.com"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := n.Send(ctx, "Subject", "Body", []string{"ops@example.com"})
	assert.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
