package subscription

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/subscription-tracker/backend/internal/application/adapter"
	"github.com/subscription-tracker/backend/internal/domain/entity"
)

// ListSubscriptionsInput represents the input for listing subscriptions.
type ListSubscriptionsInput struct {
	UserID     uuid.UUID
	ActiveOnly bool
}

// ListSubscriptionsOutput represents the output of listing subscriptions.
type ListSubscriptionsOutput struct {
	Subscriptions []*entity.Subscription
}

// ListSubscriptionsUseCase handles listing a user's subscriptions.
type ListSubscriptionsUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
}

// NewListSubscriptionsUseCase creates a new ListSubscriptionsUseCase instance.
func NewListSubscriptionsUseCase(subscriptionRepo adapter.SubscriptionRepository) *ListSubscriptionsUseCase {
	return &ListSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
	}
}

// Execute lists the subscriptions owned by the user.
func (uc *ListSubscriptionsUseCase) Execute(ctx context.Context, input ListSubscriptionsInput) (*ListSubscriptionsOutput, error) {
	var (
		subs []*entity.Subscription
		err  error
	)
	if input.ActiveOnly {
		subs, err = uc.subscriptionRepo.FindActiveByUserID(ctx, input.UserID)
	} else {
		subs, err = uc.subscriptionRepo.FindByUserID(ctx, input.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	return &ListSubscriptionsOutput{
		Subscriptions: subs,
	}, nil
}
