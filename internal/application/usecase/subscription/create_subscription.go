// Package subscription contains subscription-related use cases.
package subscription

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/subscription-tracker/backend/internal/application/adapter"
	"github.com/subscription-tracker/backend/internal/domain/billing"
	"github.com/subscription-tracker/backend/internal/domain/entity"
	domainerror "github.com/subscription-tracker/backend/internal/domain/error"
)

// MaxSubscriptionNameLength is the maximum allowed length for subscription names.
const MaxSubscriptionNameLength = 100

// CreateSubscriptionInput represents the input for subscription creation.
type CreateSubscriptionInput struct {
	UserID        uuid.UUID
	Name          string
	Description   string
	Amount        decimal.Decimal
	BillingDate   string // YYYY-MM-DD
	RenewalPeriod string // Stored as typed, e.g. "Mensal"
	Category      string
	Color         string // Optional, defaults to entity.DefaultSubscriptionColor
	LogoURL       string
	PaymentMethod string
}

// CreateSubscriptionOutput represents the output of subscription creation.
type CreateSubscriptionOutput struct {
	Subscription *entity.Subscription
}

// CreateSubscriptionUseCase handles subscription creation logic.
type CreateSubscriptionUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
}

// NewCreateSubscriptionUseCase creates a new CreateSubscriptionUseCase instance.
func NewCreateSubscriptionUseCase(subscriptionRepo adapter.SubscriptionRepository) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
	}
}

// Execute performs the subscription creation.
func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, input CreateSubscriptionInput) (*CreateSubscriptionOutput, error) {
	name := strings.TrimSpace(input.Name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := validateRenewalPeriod(input.RenewalPeriod); err != nil {
		return nil, err
	}

	billingDate, err := parseBillingDate(input.BillingDate)
	if err != nil {
		return nil, err
	}

	subscription := entity.NewSubscription(input.UserID, name, input.Amount, billingDate, strings.TrimSpace(input.RenewalPeriod))
	subscription.Description = input.Description
	subscription.Category = strings.TrimSpace(input.Category)
	subscription.LogoURL = input.LogoURL
	subscription.PaymentMethod = input.PaymentMethod
	if input.Color != "" {
		subscription.Color = input.Color
	}

	if err := uc.subscriptionRepo.Create(ctx, subscription); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	return &CreateSubscriptionOutput{
		Subscription: subscription,
	}, nil
}

func validateName(name string) error {
	if name == "" {
		return domainerror.NewSubscriptionError(
			domainerror.ErrCodeSubscriptionNameRequired,
			"subscription name is required",
			domainerror.ErrSubscriptionNameRequired,
		)
	}
	if utf8.RuneCountInString(name) > MaxSubscriptionNameLength {
		return domainerror.NewSubscriptionError(
			domainerror.ErrCodeSubscriptionNameTooLong,
			fmt.Sprintf("subscription name must not exceed %d characters", MaxSubscriptionNameLength),
			domainerror.ErrSubscriptionNameTooLong,
		)
	}
	return nil
}

func validateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return domainerror.NewSubscriptionError(
			domainerror.ErrCodeInvalidSubscriptionAmount,
			"amount must not be negative",
			domainerror.ErrInvalidSubscriptionAmount,
		)
	}
	return nil
}

func validateRenewalPeriod(period string) error {
	if billing.Normalize(period) == "" {
		return domainerror.NewSubscriptionError(
			domainerror.ErrCodeRenewalPeriodRequired,
			"renewal period is required",
			domainerror.ErrRenewalPeriodRequired,
		)
	}
	return nil
}

func parseBillingDate(s string) (time.Time, error) {
	d, err := billing.ParseDate(s)
	if err != nil {
		return time.Time{}, domainerror.NewSubscriptionError(
			domainerror.ErrCodeInvalidSubscriptionDate,
			"billing date must be a valid date (YYYY-MM-DD)",
			err,
		)
	}
	return d, nil
}
