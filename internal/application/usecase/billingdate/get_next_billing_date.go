// Package billingdate contains the billing date procedures exposed over RPC.
package billingdate

import (
	"context"
	"strings"
	"time"

	"github.com/subscription-tracker/backend/internal/application/adapter"
	"github.com/subscription-tracker/backend/internal/domain/billing"
	domainerror "github.com/subscription-tracker/backend/internal/domain/error"
)

// GetNextBillingDateInput represents the input for the next billing date procedure.
type GetNextBillingDateInput struct {
	InitialDate   string // YYYY-MM-DD anchor of the first charge
	RenewalPeriod string // Free text, e.g. "Mensal"
	Today         string // Optional YYYY-MM-DD, defaults to the clock's date
}

// GetNextBillingDateOutput represents the output of the next billing date procedure.
type GetNextBillingDateOutput struct {
	NextBillingDate  time.Time
	Period           billing.Period
	PeriodRecognized bool // false when an unknown label fell back to monthly
	Today            time.Time
}

// GetNextBillingDateUseCase computes the next charge date of a subscription.
type GetNextBillingDateUseCase struct {
	cache adapter.BillingDateCache
	clock adapter.Clock
}

// NewGetNextBillingDateUseCase creates a new GetNextBillingDateUseCase instance.
func NewGetNextBillingDateUseCase(cache adapter.BillingDateCache, clock adapter.Clock) *GetNextBillingDateUseCase {
	return &GetNextBillingDateUseCase{
		cache: cache,
		clock: clock,
	}
}

// Execute returns the first billing date on or after today.
func (uc *GetNextBillingDateUseCase) Execute(ctx context.Context, input GetNextBillingDateInput) (*GetNextBillingDateOutput, error) {
	anchor, today, err := parseSchedule(input.InitialDate, input.Today, uc.clock)
	if err != nil {
		return nil, err
	}

	period, recognized := billing.ResolvePeriod(input.RenewalPeriod)

	if next, ok := uc.cache.Get(ctx, anchor, string(period), today); ok {
		return &GetNextBillingDateOutput{NextBillingDate: next, Period: period, PeriodRecognized: recognized, Today: today}, nil
	}

	next := billing.NextOccurrence(anchor, period, today)
	uc.cache.Set(ctx, anchor, string(period), today, next)

	return &GetNextBillingDateOutput{
		NextBillingDate:  next,
		Period:           period,
		PeriodRecognized: recognized,
		Today:            today,
	}, nil
}

// parseSchedule parses the anchor and the optional reference date.
func parseSchedule(initialDate, todayInput string, clock adapter.Clock) (time.Time, time.Time, error) {
	if strings.TrimSpace(initialDate) == "" {
		return time.Time{}, time.Time{}, domainerror.NewBillingError(
			domainerror.ErrCodeMissingBillingField,
			"initial_date is required",
			nil,
		)
	}

	anchor, err := billing.ParseDate(initialDate)
	if err != nil {
		return time.Time{}, time.Time{}, domainerror.NewBillingError(
			domainerror.ErrCodeInvalidDate,
			"initial_date must be a valid date (YYYY-MM-DD)",
			err,
		)
	}

	today := billing.DateOf(clock.Now())
	if strings.TrimSpace(todayInput) != "" {
		today, err = billing.ParseDate(todayInput)
		if err != nil {
			return time.Time{}, time.Time{}, domainerror.NewBillingError(
				domainerror.ErrCodeInvalidDate,
				"today must be a valid date (YYYY-MM-DD)",
				err,
			)
		}
	}

	return anchor, today, nil
}
