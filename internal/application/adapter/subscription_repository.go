// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/subscription-tracker/backend/internal/domain/entity"
)

// SubscriptionRepository defines the interface for subscription persistence operations.
type SubscriptionRepository interface {
	// Create stores a new subscription.
	Create(ctx context.Context, subscription *entity.Subscription) error

	// FindByID retrieves a subscription by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Subscription, error)

	// FindByUserID retrieves every subscription of a user, ordered by name.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Subscription, error)

	// FindActiveByUserID retrieves the active subscriptions of a user, ordered by name.
	FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Subscription, error)

	// UpdateFields writes the set fields of a subscription.
	UpdateFields(ctx context.Context, id uuid.UUID, fields entity.SubscriptionFields) error

	// Delete removes a subscription by its ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// ReassignCategory moves every subscription of a user from one category to another.
	ReassignCategory(ctx context.Context, userID uuid.UUID, from, to string) (int64, error)
}
