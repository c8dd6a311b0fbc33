// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/subscription-tracker/backend/internal/domain/billing"
	"github.com/subscription-tracker/backend/internal/domain/entity"
)

// SubscriptionModel represents the subscriptions table in the database.
type SubscriptionModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_subscriptions_user_active,priority:1"`
	Name          string          `gorm:"type:varchar(100);not null"`
	Description   string          `gorm:"type:text"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	BillingDate   time.Time       `gorm:"type:date;not null"`
	RenewalPeriod string          `gorm:"type:varchar(30);not null"`
	Category      string          `gorm:"type:varchar(50);index"`
	Color         string          `gorm:"type:varchar(7);default:'#6366F1'"`
	LogoURL       string          `gorm:"type:text"`
	PaymentMethod string          `gorm:"type:varchar(50)"`
	Active        bool            `gorm:"not null;default:true;index:idx_subscriptions_user_active,priority:2"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for the SubscriptionModel.
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

// ToEntity converts a SubscriptionModel to a domain Subscription entity.
func (m *SubscriptionModel) ToEntity() *entity.Subscription {
	return &entity.Subscription{
		ID:            m.ID,
		UserID:        m.UserID,
		Name:          m.Name,
		Description:   m.Description,
		Amount:        m.Amount,
		BillingDate:   billing.DateOf(m.BillingDate),
		RenewalPeriod: m.RenewalPeriod,
		Category:      m.Category,
		Color:         m.Color,
		LogoURL:       m.LogoURL,
		PaymentMethod: m.PaymentMethod,
		Active:        m.Active,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// SubscriptionFromEntity creates a SubscriptionModel from a domain Subscription entity.
func SubscriptionFromEntity(s *entity.Subscription) *SubscriptionModel {
	return &SubscriptionModel{
		ID:            s.ID,
		UserID:        s.UserID,
		Name:          s.Name,
		Description:   s.Description,
		Amount:        s.Amount,
		BillingDate:   billing.DateOf(s.BillingDate),
		RenewalPeriod: s.RenewalPeriod,
		Category:      s.Category,
		Color:         s.Color,
		LogoURL:       s.LogoURL,
		PaymentMethod: s.PaymentMethod,
		Active:        s.Active,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// SubscriptionFieldsToColumns maps the set fields of a partial update to column values.
func SubscriptionFieldsToColumns(f entity.SubscriptionFields) map[string]interface{} {
	columns := make(map[string]interface{})
	if f.Name != nil {
		columns["name"] = *f.Name
	}
	if f.Description != nil {
		columns["description"] = *f.Description
	}
	if f.Amount != nil {
		columns["amount"] = *f.Amount
	}
	if f.BillingDate != nil {
		columns["billing_date"] = billing.DateOf(*f.BillingDate)
	}
	if f.RenewalPeriod != nil {
		columns["renewal_period"] = *f.RenewalPeriod
	}
	if f.Category != nil {
		columns["category"] = *f.Category
	}
	if f.Color != nil {
		columns["color"] = *f.Color
	}
	if f.LogoURL != nil {
		columns["logo_url"] = *f.LogoURL
	}
	if f.PaymentMethod != nil {
		columns["payment_method"] = *f.PaymentMethod
	}
	if f.Active != nil {
		columns["active"] = *f.Active
	}
	columns["updated_at"] = time.Now().UTC()
	return columns
}
