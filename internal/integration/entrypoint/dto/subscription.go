package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/subscription-tracker/backend/internal/application/usecase/subscription"
	"github.com/subscription-tracker/backend/internal/domain/billing"
	"github.com/subscription-tracker/backend/internal/domain/entity"
)

// CreateSubscriptionRequest represents the request body for subscription creation.
type CreateSubscriptionRequest struct {
	Name          string           `json:"name" binding:"required"`
	Description   string           `json:"description,omitempty"`
	Amount        *decimal.Decimal `json:"amount" binding:"required"`
	BillingDate   string           `json:"billing_date" binding:"required"`
	RenewalPeriod string           `json:"renewal_period" binding:"required"`
	Category      string           `json:"category,omitempty"`
	Color         string           `json:"color,omitempty"`
	LogoURL       string           `json:"logo_url,omitempty"`
	PaymentMethod string           `json:"payment_method,omitempty"`
}

// UpdateSubscriptionRequest represents the request body for a partial subscription update.
type UpdateSubscriptionRequest struct {
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	BillingDate   *string          `json:"billing_date,omitempty"`
	RenewalPeriod *string          `json:"renewal_period,omitempty"`
	Category      *string          `json:"category,omitempty"`
	Color         *string          `json:"color,omitempty"`
	LogoURL       *string          `json:"logo_url,omitempty"`
	PaymentMethod *string          `json:"payment_method,omitempty"`
	Active        *bool            `json:"active,omitempty"`
}

// SubscriptionResponse represents a single subscription in API responses.
type SubscriptionResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Amount        string    `json:"amount"`
	BillingDate   string    `json:"billing_date"`
	RenewalPeriod string    `json:"renewal_period"`
	Category      string    `json:"category"`
	Color         string    `json:"color"`
	LogoURL       string    `json:"logo_url"`
	PaymentMethod string    `json:"payment_method"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SubscriptionDetailResponse adds the derived billing schedule to a subscription.
type SubscriptionDetailResponse struct {
	SubscriptionResponse
	Period          string   `json:"period"`
	NextBillingDate string   `json:"next_billing_date"`
	DaysUntil       int      `json:"days_until"`
	UpcomingDates   []string `json:"upcoming_dates"`
}

// SubscriptionListResponse represents the response for listing subscriptions.
type SubscriptionListResponse struct {
	Subscriptions []SubscriptionResponse `json:"subscriptions"`
}

// UpcomingChargeResponse is one charge due soon.
type UpcomingChargeResponse struct {
	Subscription    SubscriptionResponse `json:"subscription"`
	NextBillingDate string               `json:"next_billing_date"`
	DaysUntil       int                  `json:"days_until"`
}

// UpcomingResponse represents the response for upcoming charges.
type UpcomingResponse struct {
	Today   string                   `json:"today"`
	Charges []UpcomingChargeResponse `json:"charges"`
}

// ToSubscriptionResponse converts a domain Subscription entity to a SubscriptionResponse DTO.
func ToSubscriptionResponse(s *entity.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:            s.ID.String(),
		UserID:        s.UserID.String(),
		Name:          s.Name,
		Description:   s.Description,
		Amount:        s.Amount.StringFixed(2),
		BillingDate:   billing.FormatDate(s.BillingDate),
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

// ToSubscriptionListResponse converts a list of subscriptions.
func ToSubscriptionListResponse(subs []*entity.Subscription) SubscriptionListResponse {
	items := make([]SubscriptionResponse, len(subs))
	for i, s := range subs {
		items[i] = ToSubscriptionResponse(s)
	}
	return SubscriptionListResponse{Subscriptions: items}
}

// ToSubscriptionDetailResponse converts a GetSubscriptionOutput.
func ToSubscriptionDetailResponse(output *subscription.GetSubscriptionOutput) SubscriptionDetailResponse {
	return SubscriptionDetailResponse{
		SubscriptionResponse: ToSubscriptionResponse(output.Subscription),
		Period:               string(output.Period),
		NextBillingDate:      billing.FormatDate(output.NextBillingDate),
		DaysUntil:            output.DaysUntil,
		UpcomingDates:        formatDates(output.Projection),
	}
}

// ToUpcomingResponse converts an UpcomingSubscriptionsOutput.
func ToUpcomingResponse(output *subscription.UpcomingSubscriptionsOutput) UpcomingResponse {
	charges := make([]UpcomingChargeResponse, len(output.Charges))
	for i, ch := range output.Charges {
		charges[i] = UpcomingChargeResponse{
			Subscription:    ToSubscriptionResponse(ch.Subscription),
			NextBillingDate: billing.FormatDate(ch.NextBillingDate),
			DaysUntil:       ch.DaysUntil,
		}
	}
	return UpcomingResponse{
		Today:   billing.FormatDate(output.Today),
		Charges: charges,
	}
}

func formatDates(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = billing.FormatDate(d)
	}
	return out
}
