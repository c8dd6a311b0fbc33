// Package reminder contains the periodic billing reminder use case.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/subscription-tracker/backend/internal/application/adapter"
	"github.com/subscription-tracker/backend/internal/domain/billing"
	"github.com/subscription-tracker/backend/internal/domain/entity"
	domainerror "github.com/subscription-tracker/backend/internal/domain/error"
)

// GenerateRemindersOutput summarizes one reminder run.
type GenerateRemindersOutput struct {
	Today                time.Time
	UsersProcessed       int
	NotificationsCreated int
	DuplicatesSkipped    int
	EmailsQueued         int
	Failures             int
}

// GenerateRemindersUseCase creates reminders for charges due within each user's lead time.
type GenerateRemindersUseCase struct {
	settingsRepo     adapter.UserSettingsRepository
	subscriptionRepo adapter.SubscriptionRepository
	notificationRepo adapter.NotificationRepository
	emailService     adapter.EmailService
	clock            adapter.Clock
}

// NewGenerateRemindersUseCase creates a new GenerateRemindersUseCase instance.
func NewGenerateRemindersUseCase(
	settingsRepo adapter.UserSettingsRepository,
	subscriptionRepo adapter.SubscriptionRepository,
	notificationRepo adapter.NotificationRepository,
	emailService adapter.EmailService,
	clock adapter.Clock,
) *GenerateRemindersUseCase {
	return &GenerateRemindersUseCase{
		settingsRepo:     settingsRepo,
		subscriptionRepo: subscriptionRepo,
		notificationRepo: notificationRepo,
		emailService:     emailService,
		clock:            clock,
	}
}

// Execute runs one pass over every user with notifications enabled.
// A failing user is logged and skipped so the others still get their reminders.
func (uc *GenerateRemindersUseCase) Execute(ctx context.Context) (*GenerateRemindersOutput, error) {
	users, err := uc.settingsRepo.FindWithNotificationsEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users with notifications enabled: %w", err)
	}

	out := &GenerateRemindersOutput{Today: billing.DateOf(uc.clock.Now())}
	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if err := uc.processUser(ctx, user, out); err != nil {
			out.Failures++
			slog.Error("Failed to generate reminders for user",
				"user_id", user.UserID,
				"error", err,
			)
			continue
		}
		out.UsersProcessed++
	}

	slog.Info("Reminder run completed",
		"today", billing.FormatDate(out.Today),
		"users", out.UsersProcessed,
		"notifications", out.NotificationsCreated,
		"duplicates", out.DuplicatesSkipped,
		"emails", out.EmailsQueued,
		"failures", out.Failures,
	)

	return out, nil
}

func (uc *GenerateRemindersUseCase) processUser(ctx context.Context, user *entity.UserSettings, out *GenerateRemindersOutput) error {
	subs, err := uc.subscriptionRepo.FindActiveByUserID(ctx, user.UserID)
	if err != nil {
		return fmt.Errorf("failed to list active subscriptions: %w", err)
	}

	for _, sub := range subs {
		period := billing.Normalize(sub.RenewalPeriod)
		next := billing.NextOccurrence(sub.BillingDate, period, out.Today)
		days := billing.DaysUntil(out.Today, next)
		if days < 0 || days > user.ReminderDays {
			continue
		}

		exists, err := uc.notificationRepo.ExistsForBillingDate(ctx, sub.ID, next)
		if err != nil {
			return fmt.Errorf("failed to check existing reminder: %w", err)
		}
		if exists {
			out.DuplicatesSkipped++
			continue
		}

		subscriptionID := sub.ID
		notification := entity.NewNotification(user.UserID, &subscriptionID, Title(days), Message(sub.Name, sub.Amount, user.Currency, days))
		notification.BillingDate = &next
		if err := uc.notificationRepo.Create(ctx, notification); err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}
		out.NotificationsCreated++

		if user.Email == "" {
			continue
		}
		err = uc.emailService.QueueSubscriptionReminder(ctx, adapter.QueueSubscriptionReminderInput{
			SubscriptionID:   sub.ID,
			UserEmail:        user.Email,
			UserName:         user.FullName,
			SubscriptionName: sub.Name,
			Amount:           sub.Amount,
			Currency:         user.Currency,
			BillingDate:      next,
			DaysUntil:        days,
			PeriodLabel:      period.Label(),
		})
		if errors.Is(err, domainerror.ErrReminderAlreadyQueued) {
			continue
		}
		if err != nil {
			// The in-app notification already exists; the email is best effort.
			slog.Warn("Failed to queue reminder email",
				"subscription_id", sub.ID,
				"error", err,
			)
			continue
		}
		out.EmailsQueued++
	}

	return nil
}

// Title returns the notification title for a charge due in days.
func Title(days int) string {
	if days == 0 {
		return "Renovação Hoje"
	}
	return fmt.Sprintf("Lembrete: %d %s para pagamento", days, dayWord(days))
}

// Message returns the notification body for a charge due in days.
func Message(name string, amount decimal.Decimal, currency string, days int) string {
	value := FormatMoney(amount, currency)
	if days == 0 {
		return fmt.Sprintf("Sua assinatura %s é renovada hoje. Valor: %s", name, value)
	}
	return fmt.Sprintf("Sua assinatura %s será cobrada em %d %s. Valor: %s", name, days, dayWord(days), value)
}

// FormatMoney renders amount with two decimals behind the currency symbol.
func FormatMoney(amount decimal.Decimal, currency string) string {
	return currencySymbol(currency) + " " + amount.StringFixed(2)
}

func dayWord(days int) string {
	if days == 1 {
		return "dia"
	}
	return "dias"
}

func currencySymbol(currency string) string {
	switch currency {
	case "", entity.DefaultCurrency:
		return "R$"
	case "USD":
		return "US$"
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	default:
		return currency
	}
}
