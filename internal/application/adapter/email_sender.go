package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// EmailService defines the interface for queueing emails.
type EmailService interface {
	// QueueSubscriptionReminder queues a reminder about an upcoming charge.
	// It fails with ErrReminderAlreadyQueued when the charge was already emailed.
	QueueSubscriptionReminder(ctx context.Context, input QueueSubscriptionReminderInput) error
}

// QueueSubscriptionReminderInput represents the input for queueing a reminder email.
type QueueSubscriptionReminderInput struct {
	SubscriptionID   uuid.UUID
	UserEmail        string
	UserName         string
	SubscriptionName string
	Amount           decimal.Decimal
	Currency         string
	BillingDate      time.Time
	DaysUntil        int
	PeriodLabel      string
}
