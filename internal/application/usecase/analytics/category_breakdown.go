package analytics

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/subscription-tracker/backend/internal/application/adapter"
	"github.com/subscription-tracker/backend/internal/domain/billing"
)

var hundred = decimal.NewFromInt(100)

// CategoryBreakdownInput represents the input for the category breakdown.
type CategoryBreakdownInput struct {
	UserID        uuid.UUID
	ReferenceDate string
}

// CategorySlice is one category's share of the monthly cost.
type CategorySlice struct {
	Category   string
	Amount     decimal.Decimal
	Percentage decimal.Decimal // 0..100, two decimals
	Count      int
	Color      string
}

// CategoryBreakdownOutput lists categories by monthly cost, largest first.
type CategoryBreakdownOutput struct {
	Total      decimal.Decimal
	Categories []CategorySlice
}

// CategoryBreakdownUseCase groups the monthly cost by category.
type CategoryBreakdownUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
	clock            adapter.Clock
}

// NewCategoryBreakdownUseCase creates a new CategoryBreakdownUseCase instance.
func NewCategoryBreakdownUseCase(subscriptionRepo adapter.SubscriptionRepository, clock adapter.Clock) *CategoryBreakdownUseCase {
	return &CategoryBreakdownUseCase{
		subscriptionRepo: subscriptionRepo,
		clock:            clock,
	}
}

// Execute computes the breakdown.
func (uc *CategoryBreakdownUseCase) Execute(ctx context.Context, input CategoryBreakdownInput) (*CategoryBreakdownOutput, error) {
	reference, err := referenceDate(input.ReferenceDate, uc.clock)
	if err != nil {
		return nil, err
	}

	subs, err := activeSubscriptions(ctx, uc.subscriptionRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	rows := billing.CategoryBreakdown(subs, reference)

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Amount)
	}

	slices := make([]CategorySlice, 0, len(rows))
	for _, row := range rows {
		percentage := decimal.Zero
		if total.IsPositive() {
			percentage = row.Amount.Mul(hundred).Div(total).Round(2)
		}
		slices = append(slices, CategorySlice{
			Category:   row.Category,
			Amount:     row.Amount,
			Percentage: percentage,
			Count:      row.Count,
			Color:      billing.CategoryColor(row.Category),
		})
	}

	return &CategoryBreakdownOutput{
		Total:      total,
		Categories: slices,
	}, nil
}
