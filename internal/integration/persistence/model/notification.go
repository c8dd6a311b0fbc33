package model

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/subscription-tracker/backend/internal/domain/billing"
	"github.com/subscription-tracker/backend/internal/domain/entity"
)

// NotificationModel represents the notifications table in the database.
type NotificationModel struct {
	ID               uuid.UUID    `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID    `gorm:"type:uuid;not null;index"`
	SubscriptionID   *uuid.UUID   `gorm:"type:uuid;index:idx_notifications_subscription_billing,priority:1"`
	Title            string       `gorm:"type:varchar(200);not null"`
	Message          string       `gorm:"type:text;not null"`
	NotificationDate time.Time    `gorm:"not null;index"`
	BillingDate      sql.NullTime `gorm:"type:date;index:idx_notifications_subscription_billing,priority:2"`
	IsRead           bool         `gorm:"not null;default:false"`
	CreatedAt        time.Time    `gorm:"not null"`
}

// TableName returns the table name for the NotificationModel.
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToEntity converts a NotificationModel to a domain Notification entity.
func (m *NotificationModel) ToEntity() *entity.Notification {
	var billingDate *time.Time
	if m.BillingDate.Valid {
		d := billing.DateOf(m.BillingDate.Time)
		billingDate = &d
	}

	return &entity.Notification{
		ID:               m.ID,
		UserID:           m.UserID,
		SubscriptionID:   m.SubscriptionID,
		Title:            m.Title,
		Message:          m.Message,
		NotificationDate: m.NotificationDate,
		BillingDate:      billingDate,
		IsRead:           m.IsRead,
		CreatedAt:        m.CreatedAt,
	}
}

// NotificationFromEntity creates a NotificationModel from a domain Notification entity.
func NotificationFromEntity(n *entity.Notification) *NotificationModel {
	var billingDate sql.NullTime
	if n.BillingDate != nil {
		billingDate = sql.NullTime{Time: billing.DateOf(*n.BillingDate), Valid: true}
	}

	return &NotificationModel{
		ID:               n.ID,
		UserID:           n.UserID,
		SubscriptionID:   n.SubscriptionID,
		Title:            n.Title,
		Message:          n.Message,
		NotificationDate: n.NotificationDate,
		BillingDate:      billingDate,
		IsRead:           n.IsRead,
		CreatedAt:        n.CreatedAt,
	}
}
