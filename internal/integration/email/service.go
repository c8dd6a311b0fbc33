// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/subscription-tracker/backend/internal/application/adapter"
	"github.com/subscription-tracker/backend/internal/application/usecase/reminder"
	"github.com/subscription-tracker/backend/internal/domain/entity"
	domainerror "github.com/subscription-tracker/backend/internal/domain/error"
)

// reminderDateLayout is the day/month/year format used in email bodies.
const reminderDateLayout = "02/01/2006"

// Service handles email queueing operations.
type Service struct {
	queue      adapter.EmailQueueRepository
	appBaseURL string
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, appBaseURL string) *Service {
	return &Service{
		queue:      queue,
		appBaseURL: strings.TrimRight(appBaseURL, "/"),
	}
}

// QueueSubscriptionReminder queues a reminder about an upcoming charge.
// Template values are stored as strings so they survive the JSON column.
func (s *Service) QueueSubscriptionReminder(ctx context.Context, input adapter.QueueSubscriptionReminderInput) error {
	if strings.TrimSpace(input.UserEmail) == "" {
		return domainerror.NewEmailError(
			domainerror.ErrCodeMissingRecipient,
			"reminder email needs a recipient",
			domainerror.ErrMissingRecipient,
		)
	}

	dedupKey := entity.ReminderDedupKey(input.SubscriptionID, input.UserEmail, input.BillingDate)
	queued, err := s.queue.ExistsByDedupKey(ctx, dedupKey)
	if err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to check queued reminders",
			err,
		)
	}
	if queued {
		return domainerror.NewEmailError(
			domainerror.ErrCodeReminderQueued,
			"reminder email already queued for this charge",
			domainerror.ErrReminderAlreadyQueued,
		)
	}

	templateData := map[string]interface{}{
		"user_name":         input.UserName,
		"subscription_name": input.SubscriptionName,
		"amount":            reminder.FormatMoney(input.Amount, input.Currency),
		"billing_date":      input.BillingDate.Format(reminderDateLayout),
		"days_until":        strconv.Itoa(input.DaysUntil),
		"period_label":      input.PeriodLabel,
		"app_url":           s.appBaseURL,
	}

	job := entity.NewEmailJob(
		entity.TemplateSubscriptionReminder,
		input.UserEmail,
		input.UserName,
		reminderSubject(input.SubscriptionName, input.DaysUntil),
		templateData,
	)
	job.DedupKey = dedupKey

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue subscription reminder email",
			err,
		)
	}

	return nil
}

func reminderSubject(name string, days int) string {
	switch days {
	case 0:
		return fmt.Sprintf("Lembrete: %s renova hoje", name)
	case 1:
		return fmt.Sprintf("Lembrete: %s renova amanhã", name)
	default:
		return fmt.Sprintf("Lembrete: %s renova em %d dias", name, days)
	}
}

// Ensure Service implements adapter.EmailService.
var _ adapter.EmailService = (*Service)(nil)
