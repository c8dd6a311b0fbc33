package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subscription-tracker/backend/internal/application/adapter/adaptertest"
	"github.com/subscription-tracker/backend/internal/domain/billing"
	"github.com/subscription-tracker/backend/internal/domain/entity"
	domainerror "github.com/subscription-tracker/backend/internal/domain/error"
)

var clock = adaptertest.FixedClock{T: time.Date(2025, time.March, 10, 6, 0, 0, 0, time.UTC)}

func date(s string) time.Time {
	d, err := billing.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

type fixture struct {
	settings      *adaptertest.UserSettingsRepository
	subs          *adaptertest.SubscriptionRepository
	notifications *adaptertest.NotificationRepository
	emails        *adaptertest.EmailService
	uc            *GenerateRemindersUseCase
}

func newFixture(settings []*entity.UserSettings, subs ...*entity.Subscription) *fixture {
	f := &fixture{
		settings:      adaptertest.NewUserSettingsRepository(settings...),
		subs:          adaptertest.NewSubscriptionRepository(subs...),
		notifications: adaptertest.NewNotificationRepository(),
		emails:        &adaptertest.EmailService{},
	}
	f.uc = NewGenerateRemindersUseCase(f.settings, f.subs, f.notifications, f.emails, clock)
	return f
}

func TestGenerateReminders(t *testing.T) {
	userID := uuid.New()
	user := entity.NewUserSettings(userID, "ana@example.com")
	user.FullName = "Ana"

	dueToday := entity.NewSubscription(userID, "Netflix", decimal.RequireFromString("39.9"), date("2025-02-10"), "Mensal")
	inTwoDays := entity.NewSubscription(userID, "Spotify", decimal.RequireFromString("21.90"), date("2025-01-12"), "mensal")
	tooFar := entity.NewSubscription(userID, "Gym", decimal.RequireFromString("99"), date("2025-01-20"), "Mensal")
	paused := entity.NewSubscription(userID, "Paused", decimal.RequireFromString("10"), date("2025-03-11"), "Mensal")
	paused.Active = false

	f := newFixture([]*entity.UserSettings{user}, dueToday, inTwoDays, tooFar, paused)

	out, err := f.uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, out.UsersProcessed)
	assert.Equal(t, 2, out.NotificationsCreated)
	assert.Equal(t, 2, out.EmailsQueued)
	require.Len(t, f.notifications.Notifications, 2)

	byTitle := make(map[string]*entity.Notification)
	for _, n := range f.notifications.Notifications {
		byTitle[n.Title] = n
	}

	today := byTitle["Renovação Hoje"]
	require.NotNil(t, today)
	assert.Equal(t, "Sua assinatura Netflix é renovada hoje. Valor: R$ 39.90", today.Message)
	assert.Equal(t, dueToday.ID, *today.SubscriptionID)
	assert.Equal(t, date("2025-03-10"), *today.BillingDate)

	soon := byTitle["Lembrete: 2 dias para pagamento"]
	require.NotNil(t, soon)
	assert.Equal(t, "Sua assinatura Spotify será cobrada em 2 dias. Valor: R$ 21.90", soon.Message)

	assert.Equal(t, "ana@example.com", f.emails.Reminders[0].UserEmail)
	assert.Equal(t, "Mensal", f.emails.Reminders[0].PeriodLabel)
	for _, queued := range f.emails.Reminders {
		assert.Contains(t, []uuid.UUID{dueToday.ID, inTwoDays.ID}, queued.SubscriptionID)
	}
}

func TestGenerateReminders_Deduplicates(t *testing.T) {
	userID := uuid.New()
	sub := entity.NewSubscription(userID, "Netflix", decimal.NewFromInt(40), date("2025-02-11"), "Mensal")
	f := newFixture([]*entity.UserSettings{entity.NewUserSettings(userID, "")}, sub)

	first, err := f.uc.Execute(context.Background())
	require.NoError(t, err)
	second, err := f.uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, first.NotificationsCreated)
	assert.Equal(t, 0, second.NotificationsCreated)
	assert.Equal(t, 1, second.DuplicatesSkipped)
	assert.Len(t, f.notifications.Notifications, 1)
	assert.Empty(t, f.emails.Reminders, "no email address, no email")
}

func TestGenerateReminders_RespectsSettings(t *testing.T) {
	userID := uuid.New()
	disabled := entity.NewUserSettings(userID, "x@example.com")
	disabled.NotificationEnabled = false

	otherID := uuid.New()
	narrow := entity.NewUserSettings(otherID, "y@example.com")
	narrow.ReminderDays = 0

	f := newFixture(
		[]*entity.UserSettings{disabled, narrow},
		entity.NewSubscription(userID, "A", decimal.NewFromInt(10), date("2025-03-10"), "Mensal"),
		entity.NewSubscription(otherID, "B", decimal.NewFromInt(10), date("2025-03-11"), "Mensal"),
		entity.NewSubscription(otherID, "C", decimal.NewFromInt(10), date("2025-02-10"), "Mensal"),
	)

	out, err := f.uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, out.UsersProcessed)
	require.Len(t, f.notifications.Notifications, 1)
	for _, n := range f.notifications.Notifications {
		assert.Equal(t, otherID, n.UserID)
		assert.Equal(t, "Renovação Hoje", n.Title)
	}
}

func TestGenerateReminders_EmailFailureKeepsNotification(t *testing.T) {
	userID := uuid.New()
	f := newFixture(
		[]*entity.UserSettings{entity.NewUserSettings(userID, "x@example.com")},
		entity.NewSubscription(userID, "A", decimal.NewFromInt(10), date("2025-03-11"), "Mensal"),
	)
	f.emails.Err = errors.New("queue down")

	out, err := f.uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, out.NotificationsCreated)
	assert.Equal(t, 0, out.EmailsQueued)
}

func TestGenerateReminders_EmailAlreadyQueuedIsSkipped(t *testing.T) {
	userID := uuid.New()
	f := newFixture(
		[]*entity.UserSettings{entity.NewUserSettings(userID, "x@example.com")},
		entity.NewSubscription(userID, "A", decimal.NewFromInt(10), date("2025-03-11"), "Mensal"),
	)
	f.emails.Err = domainerror.NewEmailError(domainerror.ErrCodeReminderQueued, "already queued", domainerror.ErrReminderAlreadyQueued)

	out, err := f.uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, out.NotificationsCreated)
	assert.Equal(t, 0, out.EmailsQueued)
	assert.Equal(t, 1, out.UsersProcessed)
}

func TestGenerateReminders_RepositoryFailureIsPerUser(t *testing.T) {
	userID := uuid.New()
	f := newFixture([]*entity.UserSettings{entity.NewUserSettings(userID, "")})
	f.subs.Err = errors.New("db down")

	out, err := f.uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, out.Failures)
	assert.Equal(t, 0, out.UsersProcessed)
}

func TestTitleAndMessage(t *testing.T) {
	assert.Equal(t, "Lembrete: 1 dia para pagamento", Title(1))
	assert.Equal(t, "Sua assinatura X será cobrada em 1 dia. Valor: US$ 5.00", Message("X", decimal.NewFromInt(5), "USD", 1))
	assert.Equal(t, "JPY 1200.00", FormatMoney(decimal.NewFromInt(1200), "JPY"))
}
