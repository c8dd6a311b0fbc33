package subscription

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/subscription-tracker/backend/internal/application/adapter"
	"github.com/subscription-tracker/backend/internal/domain/entity"
	domainerror "github.com/subscription-tracker/backend/internal/domain/error"
)

// UpdateSubscriptionInput represents the input for a partial subscription update.
// Nil fields are left unchanged.
type UpdateSubscriptionInput struct {
	UserID         uuid.UUID
	SubscriptionID uuid.UUID
	Name           *string
	Description    *string
	Amount         *decimal.Decimal
	BillingDate    *string
	RenewalPeriod  *string
	Category       *string
	Color          *string
	LogoURL        *string
	PaymentMethod  *string
	Active         *bool
}

// UpdateSubscriptionOutput represents the output of a subscription update.
type UpdateSubscriptionOutput struct {
	Subscription *entity.Subscription
}

// UpdateSubscriptionUseCase handles subscription update logic.
type UpdateSubscriptionUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
}

// NewUpdateSubscriptionUseCase creates a new UpdateSubscriptionUseCase instance.
func NewUpdateSubscriptionUseCase(subscriptionRepo adapter.SubscriptionRepository) *UpdateSubscriptionUseCase {
	return &UpdateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
	}
}

// Execute performs the subscription update.
func (uc *UpdateSubscriptionUseCase) Execute(ctx context.Context, input UpdateSubscriptionInput) (*UpdateSubscriptionOutput, error) {
	fields, err := buildFields(input)
	if err != nil {
		return nil, err
	}
	if fields.IsEmpty() {
		return nil, domainerror.NewSubscriptionError(
			domainerror.ErrCodeNoSubscriptionFieldsToSave,
			"at least one field must be provided",
			domainerror.ErrNoFieldsToUpdate,
		)
	}

	subscription, err := findOwned(ctx, uc.subscriptionRepo, input.UserID, input.SubscriptionID)
	if err != nil {
		return nil, err
	}

	if err := uc.subscriptionRepo.UpdateFields(ctx, subscription.ID, fields); err != nil {
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}
	fields.Apply(subscription)

	return &UpdateSubscriptionOutput{
		Subscription: subscription,
	}, nil
}

// buildFields validates the provided values and converts them to entity fields.
func buildFields(input UpdateSubscriptionInput) (entity.SubscriptionFields, error) {
	fields := entity.SubscriptionFields{
		Description:   input.Description,
		Color:         input.Color,
		LogoURL:       input.LogoURL,
		PaymentMethod: input.PaymentMethod,
		Active:        input.Active,
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if err := validateName(name); err != nil {
			return fields, err
		}
		fields.Name = &name
	}
	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return fields, err
		}
		fields.Amount = input.Amount
	}
	if input.RenewalPeriod != nil {
		if err := validateRenewalPeriod(*input.RenewalPeriod); err != nil {
			return fields, err
		}
		period := strings.TrimSpace(*input.RenewalPeriod)
		fields.RenewalPeriod = &period
	}
	if input.BillingDate != nil {
		d, err := parseBillingDate(*input.BillingDate)
		if err != nil {
			return fields, err
		}
		fields.BillingDate = &d
	}
	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		fields.Category = &category
	}

	return fields, nil
}
