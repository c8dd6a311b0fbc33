package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/subscription-tracker/backend/internal/application/adapter"
)

// MarkReadInput represents the input for marking one notification as read.
type MarkReadInput struct {
	UserID         uuid.UUID
	NotificationID uuid.UUID
}

// MarkReadUseCase marks a notification as read.
type MarkReadUseCase struct {
	notificationRepo adapter.NotificationRepository
}

// NewMarkReadUseCase creates a new MarkReadUseCase instance.
func NewMarkReadUseCase(notificationRepo adapter.NotificationRepository) *MarkReadUseCase {
	return &MarkReadUseCase{
		notificationRepo: notificationRepo,
	}
}

// Execute marks the notification as read. Already read notifications are left as is.
func (uc *MarkReadUseCase) Execute(ctx context.Context, input MarkReadInput) error {
	notification, err := findOwned(ctx, uc.notificationRepo, input.UserID, input.NotificationID)
	if err != nil {
		return err
	}
	if notification.IsRead {
		return nil
	}

	if err := uc.notificationRepo.MarkRead(ctx, notification.ID); err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	return nil
}

// MarkAllReadInput represents the input for marking every notification as read.
type MarkAllReadInput struct {
	UserID uuid.UUID
}

// MarkAllReadOutput reports how many notifications changed.
type MarkAllReadOutput struct {
	Updated int64
}

// MarkAllReadUseCase marks every notification of a user as read.
type MarkAllReadUseCase struct {
	notificationRepo adapter.NotificationRepository
}

// NewMarkAllReadUseCase creates a new MarkAllReadUseCase instance.
func NewMarkAllReadUseCase(notificationRepo adapter.NotificationRepository) *MarkAllReadUseCase {
	return &MarkAllReadUseCase{
		notificationRepo: notificationRepo,
	}
}

// Execute marks all unread notifications as read.
func (uc *MarkAllReadUseCase) Execute(ctx context.Context, input MarkAllReadInput) (*MarkAllReadOutput, error) {
	updated, err := uc.notificationRepo.MarkAllRead(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return &MarkAllReadOutput{Updated: updated}, nil
}
