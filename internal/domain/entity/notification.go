package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an in-app reminder about an upcoming charge.
type Notification struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	SubscriptionID   *uuid.UUID
	Title            string
	Message          string
	NotificationDate time.Time
	BillingDate      *time.Time // Charge the reminder refers to, used to avoid duplicates
	IsRead           bool
	CreatedAt        time.Time
}

// NewNotification creates a new unread notification.
func NewNotification(userID uuid.UUID, subscriptionID *uuid.UUID, title, message string) *Notification {
	now := time.Now().UTC()

	return &Notification{
		ID:               uuid.New(),
		UserID:           userID,
		SubscriptionID:   subscriptionID,
		Title:            title,
		Message:          message,
		NotificationDate: now,
		CreatedAt:        now,
	}
}

// MarkRead flags the notification as read.
func (n *Notification) MarkRead() {
	n.IsRead = true
}
