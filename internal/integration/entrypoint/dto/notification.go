package dto

import (
	"time"

	"github.com/subscription-tracker/backend/internal/application/usecase/notification"
	"github.com/subscription-tracker/backend/internal/domain/billing"
	"github.com/subscription-tracker/backend/internal/domain/entity"
)

// NotificationResponse represents a single notification in API responses.
type NotificationResponse struct {
	ID               string    `json:"id"`
	SubscriptionID   *string   `json:"subscription_id"`
	Title            string    `json:"title"`
	Message          string    `json:"message"`
	NotificationDate time.Time `json:"notification_date"`
	BillingDate      *string   `json:"billing_date,omitempty"`
	IsRead           bool      `json:"is_read"`
	CreatedAt        time.Time `json:"created_at"`
}

// NotificationListResponse represents the response for listing notifications.
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unread_count"`
}

// MarkAllReadResponse reports how many notifications were marked as read.
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// ToNotificationResponse converts a domain Notification entity.
func ToNotificationResponse(n *entity.Notification) NotificationResponse {
	response := NotificationResponse{
		ID:               n.ID.String(),
		Title:            n.Title,
		Message:          n.Message,
		NotificationDate: n.NotificationDate,
		IsRead:           n.IsRead,
		CreatedAt:        n.CreatedAt,
	}
	if n.SubscriptionID != nil {
		id := n.SubscriptionID.String()
		response.SubscriptionID = &id
	}
	if n.BillingDate != nil {
		date := billing.FormatDate(*n.BillingDate)
		response.BillingDate = &date
	}
	return response
}

// ToNotificationListResponse converts a ListNotificationsOutput.
func ToNotificationListResponse(output *notification.ListNotificationsOutput) NotificationListResponse {
	items := make([]NotificationResponse, len(output.Notifications))
	for i, n := range output.Notifications {
		items[i] = ToNotificationResponse(n)
	}
	return NotificationListResponse{
		Notifications: items,
		UnreadCount:   output.UnreadCount,
	}
}
