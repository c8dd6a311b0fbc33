package subscription

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/subscription-tracker/backend/internal/application/adapter"
	"github.com/subscription-tracker/backend/internal/domain/billing"
	"github.com/subscription-tracker/backend/internal/domain/entity"
)

// DefaultUpcomingWindowDays is how far ahead the upcoming list looks.
const DefaultUpcomingWindowDays = 7

// UpcomingSubscriptionsInput represents the input for the upcoming charges list.
type UpcomingSubscriptionsInput struct {
	UserID     uuid.UUID
	WindowDays int // 0 means DefaultUpcomingWindowDays
}

// UpcomingCharge is an active subscription with its next billing date.
type UpcomingCharge struct {
	Subscription    *entity.Subscription
	NextBillingDate time.Time
	DaysUntil       int
}

// UpcomingSubscriptionsOutput lists the charges due within the window, soonest first.
type UpcomingSubscriptionsOutput struct {
	Today   time.Time
	Charges []UpcomingCharge
}

// UpcomingSubscriptionsUseCase lists active subscriptions renewing soon.
type UpcomingSubscriptionsUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
	clock            adapter.Clock
}

// NewUpcomingSubscriptionsUseCase creates a new UpcomingSubscriptionsUseCase instance.
func NewUpcomingSubscriptionsUseCase(subscriptionRepo adapter.SubscriptionRepository, clock adapter.Clock) *UpcomingSubscriptionsUseCase {
	return &UpcomingSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		clock:            clock,
	}
}

// Execute returns the charges whose next billing date falls in [today, today+window].
func (uc *UpcomingSubscriptionsUseCase) Execute(ctx context.Context, input UpcomingSubscriptionsInput) (*UpcomingSubscriptionsOutput, error) {
	window := input.WindowDays
	if window <= 0 {
		window = DefaultUpcomingWindowDays
	}

	subs, err := uc.subscriptionRepo.FindActiveByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active subscriptions: %w", err)
	}

	today := billing.DateOf(uc.clock.Now())
	charges := make([]UpcomingCharge, 0)
	for _, sub := range subs {
		next := billing.NextOccurrence(sub.BillingDate, billing.Normalize(sub.RenewalPeriod), today)
		days := billing.DaysUntil(today, next)
		if days < 0 || days > window {
			continue
		}
		charges = append(charges, UpcomingCharge{
			Subscription:    sub,
			NextBillingDate: next,
			DaysUntil:       days,
		})
	}

	sort.SliceStable(charges, func(i, j int) bool {
		return charges[i].NextBillingDate.Before(charges[j].NextBillingDate)
	})

	return &UpcomingSubscriptionsOutput{
		Today:   today,
		Charges: charges,
	}, nil
}
