// Package analytics contains the cost analytics use cases.
package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/subscription-tracker/backend/internal/application/adapter"
	"github.com/subscription-tracker/backend/internal/domain/billing"
	"github.com/subscription-tracker/backend/internal/domain/entity"
	domainerror "github.com/subscription-tracker/backend/internal/domain/error"
)

// GetSummaryInput represents the input for the cost summary.
type GetSummaryInput struct {
	UserID        uuid.UUID
	ReferenceDate string // Optional YYYY-MM-DD selecting the calendar month
}

// GetSummaryOutput holds the headline totals.
type GetSummaryOutput struct {
	ReferenceDate time.Time
	Monthly       decimal.Decimal
	Yearly        decimal.Decimal
	ActiveCount   int
	TotalCount    int
}

// GetSummaryUseCase computes the monthly and yearly cost of a user's subscriptions.
type GetSummaryUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
	clock            adapter.Clock
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(subscriptionRepo adapter.SubscriptionRepository, clock adapter.Clock) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		subscriptionRepo: subscriptionRepo,
		clock:            clock,
	}
}

// Execute computes the summary.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	reference, err := referenceDate(input.ReferenceDate, uc.clock)
	if err != nil {
		return nil, err
	}

	subs, err := uc.subscriptionRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	summary := billing.Summarize(subs, reference)

	return &GetSummaryOutput{
		ReferenceDate: reference,
		Monthly:       summary.Monthly,
		Yearly:        summary.Yearly,
		ActiveCount:   summary.ActiveCount,
		TotalCount:    len(subs),
	}, nil
}

// referenceDate parses the optional reference date, defaulting to today.
func referenceDate(s string, clock adapter.Clock) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return billing.DateOf(clock.Now()), nil
	}
	d, err := billing.ParseDate(s)
	if err != nil {
		return time.Time{}, domainerror.NewBillingError(
			domainerror.ErrCodeInvalidDate,
			"reference_date must be a valid date (YYYY-MM-DD)",
			err,
		)
	}
	return d, nil
}

// activeSubscriptions loads the subscriptions that take part in aggregation.
func activeSubscriptions(ctx context.Context, repo adapter.SubscriptionRepository, userID uuid.UUID) ([]*entity.Subscription, error) {
	subs, err := repo.FindActiveByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active subscriptions: %w", err)
	}
	return subs, nil
}
