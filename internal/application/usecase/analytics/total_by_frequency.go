package analytics

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/subscription-tracker/backend/internal/application/adapter"
	"github.com/subscription-tracker/backend/internal/domain/billing"
	domainerror "github.com/subscription-tracker/backend/internal/domain/error"
)

// TotalByFrequencyInput represents the input for a total at a given frequency.
type TotalByFrequencyInput struct {
	UserID        uuid.UUID
	Frequency     string
	ReferenceDate string
}

// TotalByFrequencyOutput holds the converted total.
type TotalByFrequencyOutput struct {
	Frequency billing.Period
	Label     string
	Total     decimal.Decimal
}

// TotalByFrequencyUseCase sums active subscriptions at a chosen frequency.
type TotalByFrequencyUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
	clock            adapter.Clock
}

// NewTotalByFrequencyUseCase creates a new TotalByFrequencyUseCase instance.
func NewTotalByFrequencyUseCase(subscriptionRepo adapter.SubscriptionRepository, clock adapter.Clock) *TotalByFrequencyUseCase {
	return &TotalByFrequencyUseCase{
		subscriptionRepo: subscriptionRepo,
		clock:            clock,
	}
}

// Execute computes the total. The frequency must name a canonical period.
func (uc *TotalByFrequencyUseCase) Execute(ctx context.Context, input TotalByFrequencyInput) (*TotalByFrequencyOutput, error) {
	frequency := billing.Normalize(input.Frequency)
	if !frequency.IsCanonical() {
		return nil, domainerror.NewBillingError(
			domainerror.ErrCodeInvalidFrequency,
			"frequency must be one of daily, weekly, monthly, quarterly, yearly",
			domainerror.ErrInvalidFrequency,
		)
	}

	reference, err := referenceDate(input.ReferenceDate, uc.clock)
	if err != nil {
		return nil, err
	}

	subs, err := activeSubscriptions(ctx, uc.subscriptionRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	return &TotalByFrequencyOutput{
		Frequency: frequency,
		Label:     frequency.Label(),
		Total:     billing.TotalAtFrequency(subs, frequency, reference),
	}, nil
}
