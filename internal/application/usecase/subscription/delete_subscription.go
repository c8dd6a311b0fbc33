package subscription

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/subscription-tracker/backend/internal/application/adapter"
)

// DeleteSubscriptionInput represents the input for subscription deletion.
type DeleteSubscriptionInput struct {
	UserID         uuid.UUID
	SubscriptionID uuid.UUID
}

// DeleteSubscriptionUseCase handles subscription deletion logic.
type DeleteSubscriptionUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
}

// NewDeleteSubscriptionUseCase creates a new DeleteSubscriptionUseCase instance.
func NewDeleteSubscriptionUseCase(subscriptionRepo adapter.SubscriptionRepository) *DeleteSubscriptionUseCase {
	return &DeleteSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
	}
}

// Execute deletes a subscription owned by the user.
func (uc *DeleteSubscriptionUseCase) Execute(ctx context.Context, input DeleteSubscriptionInput) error {
	subscription, err := findOwned(ctx, uc.subscriptionRepo, input.UserID, input.SubscriptionID)
	if err != nil {
		return err
	}

	if err := uc.subscriptionRepo.Delete(ctx, subscription.ID); err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}

	return nil
}
