package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/subscription-tracker/backend/internal/application/adapter"
	"github.com/subscription-tracker/backend/internal/domain/billing"
	"github.com/subscription-tracker/backend/internal/domain/entity"
	domainerror "github.com/subscription-tracker/backend/internal/domain/error"
)

// GetSubscriptionInput represents the input for fetching one subscription.
type GetSubscriptionInput struct {
	UserID         uuid.UUID
	SubscriptionID uuid.UUID
}

// GetSubscriptionOutput carries the subscription and its derived billing dates.
type GetSubscriptionOutput struct {
	Subscription    *entity.Subscription
	Period          billing.Period
	NextBillingDate time.Time
	DaysUntil       int
	Projection      []time.Time
}

// GetSubscriptionUseCase handles fetching a subscription with its schedule.
type GetSubscriptionUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
	clock            adapter.Clock
}

// NewGetSubscriptionUseCase creates a new GetSubscriptionUseCase instance.
func NewGetSubscriptionUseCase(subscriptionRepo adapter.SubscriptionRepository, clock adapter.Clock) *GetSubscriptionUseCase {
	return &GetSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		clock:            clock,
	}
}

// Execute fetches the subscription and projects its upcoming charges.
func (uc *GetSubscriptionUseCase) Execute(ctx context.Context, input GetSubscriptionInput) (*GetSubscriptionOutput, error) {
	subscription, err := findOwned(ctx, uc.subscriptionRepo, input.UserID, input.SubscriptionID)
	if err != nil {
		return nil, err
	}

	today := billing.DateOf(uc.clock.Now())
	period := billing.Normalize(subscription.RenewalPeriod)
	next := billing.NextOccurrence(subscription.BillingDate, period, today)

	return &GetSubscriptionOutput{
		Subscription:    subscription,
		Period:          period,
		NextBillingDate: next,
		DaysUntil:       billing.DaysUntil(today, next),
		Projection:      billing.UpcomingOccurrences(subscription.BillingDate, period, today),
	}, nil
}

// findOwned loads a subscription and checks that userID owns it.
func findOwned(ctx context.Context, repo adapter.SubscriptionRepository, userID, id uuid.UUID) (*entity.Subscription, error) {
	subscription, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrSubscriptionNotFound) {
			return nil, domainerror.NewSubscriptionError(
				domainerror.ErrCodeSubscriptionNotFound,
				"subscription not found",
				domainerror.ErrSubscriptionNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find subscription: %w", err)
	}

	if !subscription.BelongsTo(userID) {
		return nil, domainerror.NewSubscriptionError(
			domainerror.ErrCodeUnauthorizedSubscription,
			"you do not have access to this subscription",
			domainerror.ErrUnauthorizedSubscriptionAccess,
		)
	}

	return subscription, nil
}
