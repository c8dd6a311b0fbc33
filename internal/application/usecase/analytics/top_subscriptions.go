package analytics

import (
	"context"

	"github.com/google/uuid"

	"github.com/subscription-tracker/backend/internal/application/adapter"
	"github.com/subscription-tracker/backend/internal/domain/billing"
)

// DefaultTopLimit is how many subscriptions the ranking shows by default.
const DefaultTopLimit = 5

// TopSubscriptionsInput represents the input for the most expensive subscriptions.
type TopSubscriptionsInput struct {
	UserID        uuid.UUID
	Limit         int // 0 means DefaultTopLimit
	ReferenceDate string
}

// TopSubscriptionsOutput lists subscriptions by monthly equivalent, highest first.
type TopSubscriptionsOutput struct {
	Subscriptions []billing.RankedSubscription
}

// TopSubscriptionsUseCase ranks active subscriptions by monthly cost.
type TopSubscriptionsUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
	clock            adapter.Clock
}

// NewTopSubscriptionsUseCase creates a new TopSubscriptionsUseCase instance.
func NewTopSubscriptionsUseCase(subscriptionRepo adapter.SubscriptionRepository, clock adapter.Clock) *TopSubscriptionsUseCase {
	return &TopSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		clock:            clock,
	}
}

// Execute ranks the subscriptions.
func (uc *TopSubscriptionsUseCase) Execute(ctx context.Context, input TopSubscriptionsInput) (*TopSubscriptionsOutput, error) {
	reference, err := referenceDate(input.ReferenceDate, uc.clock)
	if err != nil {
		return nil, err
	}

	subs, err := activeSubscriptions(ctx, uc.subscriptionRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultTopLimit
	}

	return &TopSubscriptionsOutput{
		Subscriptions: billing.TopSubscriptions(subs, reference, limit),
	}, nil
}
