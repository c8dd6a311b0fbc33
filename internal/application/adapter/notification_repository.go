package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/subscription-tracker/backend/internal/domain/entity"
)

// NotificationRepository defines the interface for notification persistence operations.
type NotificationRepository interface {
	// Create stores a new notification.
	Create(ctx context.Context, notification *entity.Notification) error

	// FindByID retrieves a notification by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error)

	// FindByUserID retrieves the notifications of a user, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Notification, error)

	// ExistsForBillingDate checks whether a reminder for this charge was already created.
	ExistsForBillingDate(ctx context.Context, subscriptionID uuid.UUID, billingDate time.Time) (bool, error)

	// MarkRead flags a notification as read.
	MarkRead(ctx context.Context, id uuid.UUID) error

	// MarkAllRead flags every notification of a user as read and returns how many changed.
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)

	// Delete removes a notification by its ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountUnread returns how many unread notifications a user has.
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}
