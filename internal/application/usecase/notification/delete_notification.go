package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/subscription-tracker/backend/internal/application/adapter"
)

// DeleteNotificationInput represents the input for notification deletion.
type DeleteNotificationInput struct {
	UserID         uuid.UUID
	NotificationID uuid.UUID
}

// DeleteNotificationUseCase handles notification deletion.
type DeleteNotificationUseCase struct {
	notificationRepo adapter.NotificationRepository
}

// NewDeleteNotificationUseCase creates a new DeleteNotificationUseCase instance.
func NewDeleteNotificationUseCase(notificationRepo adapter.NotificationRepository) *DeleteNotificationUseCase {
	return &DeleteNotificationUseCase{
		notificationRepo: notificationRepo,
	}
}

// Execute deletes a notification owned by the user.
func (uc *DeleteNotificationUseCase) Execute(ctx context.Context, input DeleteNotificationInput) error {
	notification, err := findOwned(ctx, uc.notificationRepo, input.UserID, input.NotificationID)
	if err != nil {
		return err
	}

	if err := uc.notificationRepo.Delete(ctx, notification.ID); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}
