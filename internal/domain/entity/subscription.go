// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultSubscriptionColor is the card color used when none is chosen.
const DefaultSubscriptionColor = "#6366F1"

// Subscription represents a recurring payment tracked by a user.
type Subscription struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	Description   string
	Amount        decimal.Decimal
	BillingDate   time.Time // Anchor date of the first charge, date only
	RenewalPeriod string    // Free-text label, normalized by the billing package
	Category      string
	Color         string
	LogoURL       string
	PaymentMethod string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewSubscription creates a new active Subscription entity.
func NewSubscription(userID uuid.UUID, name string, amount decimal.Decimal, billingDate time.Time, renewalPeriod string) *Subscription {
	now := time.Now().UTC()

	return &Subscription{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          name,
		Amount:        amount,
		BillingDate:   billingDate,
		RenewalPeriod: renewalPeriod,
		Color:         DefaultSubscriptionColor,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// BelongsTo reports whether the subscription is owned by the given user.
func (s *Subscription) BelongsTo(userID uuid.UUID) bool {
	return s.UserID == userID
}

// SubscriptionFields holds the columns a partial update may change.
// Nil pointers are left untouched.
type SubscriptionFields struct {
	Name          *string
	Description   *string
	Amount        *decimal.Decimal
	BillingDate   *time.Time
	RenewalPeriod *string
	Category      *string
	Color         *string
	LogoURL       *string
	PaymentMethod *string
	Active        *bool
}

// IsEmpty reports whether no field is set.
func (f SubscriptionFields) IsEmpty() bool {
	return f.Name == nil && f.Description == nil && f.Amount == nil &&
		f.BillingDate == nil && f.RenewalPeriod == nil && f.Category == nil &&
		f.Color == nil && f.LogoURL == nil && f.PaymentMethod == nil && f.Active == nil
}

// Apply copies every set field onto the subscription.
func (f SubscriptionFields) Apply(s *Subscription) {
	if f.Name != nil {
		s.Name = *f.Name
	}
	if f.Description != nil {
		s.Description = *f.Description
	}
	if f.Amount != nil {
		s.Amount = *f.Amount
	}
	if f.BillingDate != nil {
		s.BillingDate = *f.BillingDate
	}
	if f.RenewalPeriod != nil {
		s.RenewalPeriod = *f.RenewalPeriod
	}
	if f.Category != nil {
		s.Category = *f.Category
	}
	if f.Color != nil {
		s.Color = *f.Color
	}
	if f.LogoURL != nil {
		s.LogoURL = *f.LogoURL
	}
	if f.PaymentMethod != nil {
		s.PaymentMethod = *f.PaymentMethod
	}
	if f.Active != nil {
		s.Active = *f.Active
	}
	s.UpdatedAt = time.Now().UTC()
}
