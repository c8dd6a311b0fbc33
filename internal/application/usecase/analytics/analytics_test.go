package analytics

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

// February 2024 has 29 days and 2024 has 366.
var clock = adaptertest.FixedClock{T: time.Date(2024, time.February, 10, 9, 0, 0, 0, time.UTC)}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seed(userID uuid.UUID) *adaptertest.SubscriptionRepository {
	mk := func(name, amount, period, category string, active bool) *entity.Subscription {
		s := entity.NewSubscription(userID, name, dec(amount), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), period)
		s.Category = category
		s.Active = active
		return s
	}
	return adaptertest.NewSubscriptionRepository(
		mk("Spotify", "21.90", "Mensal", "Streaming", true),
		mk("Domain", "120", "Anual", "Work", true),
		mk("Gym", "60", "Trimestral", "Health", true),
		mk("Coffee", "5", "Diário", "Food", true),
		mk("Paused", "999", "Mensal", "Streaming", false),
		entity.NewSubscription(uuid.New(), "Other user", dec("500"), time.Now(), "Mensal"),
	)
}

func TestGetSummary(t *testing.T) {
	userID := uuid.New()
	uc := NewGetSummaryUseCase(seed(userID), clock)

	out, err := uc.Execute(context.Background(), GetSummaryInput{UserID: userID})
	require.NoError(t, err)

	assert.True(t, dec("196.90").Equal(out.Monthly), out.Monthly.String())
	assert.True(t, dec("2452.80").Equal(out.Yearly), out.Yearly.String())
	assert.Equal(t, 4, out.ActiveCount)
	assert.Equal(t, 5, out.TotalCount)
	assert.Equal(t, "2024-02-10", billing.FormatDate(out.ReferenceDate))
}

func TestGetSummary_ReferenceDate(t *testing.T) {
	userID := uuid.New()
	uc := NewGetSummaryUseCase(seed(userID), clock)

	// March has 31 days: 21.90 + 10 + 20 + 5*31.
	out, err := uc.Execute(context.Background(), GetSummaryInput{UserID: userID, ReferenceDate: "2024-03-01"})
	require.NoError(t, err)
	assert.True(t, dec("206.90").Equal(out.Monthly), out.Monthly.String())

	_, err = uc.Execute(context.Background(), GetSummaryInput{UserID: userID, ReferenceDate: "march"})
	var billingErr *domainerror.BillingError
	require.True(t, errors.As(err, &billingErr))
	assert.Equal(t, domainerror.ErrCodeInvalidDate, billingErr.Code)
}

func TestTotalByFrequency(t *testing.T) {
	userID := uuid.New()
	uc := NewTotalByFrequencyUseCase(seed(userID), clock)

	out, err := uc.Execute(context.Background(), TotalByFrequencyInput{UserID: userID, Frequency: "Anual"})
	require.NoError(t, err)
	assert.Equal(t, billing.PeriodYearly, out.Frequency)
	assert.Equal(t, "Anual", out.Label)
	assert.True(t, dec("2452.80").Equal(out.Total))

	_, err = uc.Execute(context.Background(), TotalByFrequencyInput{UserID: userID, Frequency: "biweekly"})
	assert.ErrorIs(t, err, domainerror.ErrInvalidFrequency)

	empty, err := uc.Execute(context.Background(), TotalByFrequencyInput{UserID: uuid.New(), Frequency: "monthly"})
	require.NoError(t, err)
	assert.True(t, empty.Total.IsZero())
}

func TestCategoryBreakdown(t *testing.T) {
	userID := uuid.New()
	uc := NewCategoryBreakdownUseCase(seed(userID), clock)

	out, err := uc.Execute(context.Background(), CategoryBreakdownInput{UserID: userID})
	require.NoError(t, err)
	require.Len(t, out.Categories, 4)

	want := []struct {
		category   string
		amount     string
		percentage string
	}{
		{"Food", "145", "73.64"},
		{"Streaming", "21.90", "11.12"},
		{"Health", "20", "10.16"},
		{"Work", "10", "5.08"},
	}
	for i, w := range want {
		got := out.Categories[i]
		assert.Equal(t, w.category, got.Category)
		assert.True(t, dec(w.amount).Equal(got.Amount), "%s amount %s", w.category, got.Amount)
		assert.True(t, dec(w.percentage).Equal(got.Percentage), "%s percentage %s", w.category, got.Percentage)
		assert.Equal(t, billing.CategoryColor(w.category), got.Color)
	}
	assert.True(t, dec("196.90").Equal(out.Total))
}

func TestCategoryBreakdown_Empty(t *testing.T) {
	out, err := NewCategoryBreakdownUseCase(adaptertest.NewSubscriptionRepository(), clock).
		Execute(context.Background(), CategoryBreakdownInput{UserID: uuid.New()})
	require.NoError(t, err)
	assert.Empty(t, out.Categories)
	assert.True(t, out.Total.IsZero())
}

func TestTopSubscriptions(t *testing.T) {
	userID := uuid.New()
	uc := NewTopSubscriptionsUseCase(seed(userID), clock)

	out, err := uc.Execute(context.Background(), TopSubscriptionsInput{UserID: userID, Limit: 2})
	require.NoError(t, err)
	require.Len(t, out.Subscriptions, 2)
	assert.Equal(t, "Coffee", out.Subscriptions[0].Subscription.Name)
	assert.Equal(t, "Spotify", out.Subscriptions[1].Subscription.Name)

	all, err := uc.Execute(context.Background(), TopSubscriptionsInput{UserID: userID})
	require.NoError(t, err)
	assert.Len(t, all.Subscriptions, 4)
}
