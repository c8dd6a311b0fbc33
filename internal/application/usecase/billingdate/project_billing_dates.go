package billingdate

import (
	"context"
	"fmt"
	"time"

	"github.com/subscription-tracker/backend/internal/application/adapter"
	"github.com/subscription-tracker/backend/internal/domain/billing"
	domainerror "github.com/subscription-tracker/backend/internal/domain/error"
)

// MaxProjectionCount bounds how many dates one request may project.
const MaxProjectionCount = 366

// ProjectBillingDatesInput represents the input for projecting billing dates.
type ProjectBillingDatesInput struct {
	InitialDate   string
	RenewalPeriod string
	Today         string
	Count         int // 0 means the period's default (7 for daily, 3 otherwise)
}

// ProjectBillingDatesOutput lists consecutive billing dates starting at the next one.
type ProjectBillingDatesOutput struct {
	Dates            []time.Time
	Period           billing.Period
	PeriodRecognized bool
	Today            time.Time
}

// ProjectBillingDatesUseCase projects upcoming billing dates.
type ProjectBillingDatesUseCase struct {
	clock adapter.Clock
}

// NewProjectBillingDatesUseCase creates a new ProjectBillingDatesUseCase instance.
func NewProjectBillingDatesUseCase(clock adapter.Clock) *ProjectBillingDatesUseCase {
	return &ProjectBillingDatesUseCase{
		clock: clock,
	}
}

// Execute projects the billing dates.
func (uc *ProjectBillingDatesUseCase) Execute(_ context.Context, input ProjectBillingDatesInput) (*ProjectBillingDatesOutput, error) {
	if input.Count < 0 || input.Count > MaxProjectionCount {
		return nil, domainerror.NewBillingError(
			domainerror.ErrCodeInvalidCount,
			fmt.Sprintf("count must be between 0 and %d", MaxProjectionCount),
			nil,
		)
	}

	anchor, today, err := parseSchedule(input.InitialDate, input.Today, uc.clock)
	if err != nil {
		return nil, err
	}

	period, recognized := billing.ResolvePeriod(input.RenewalPeriod)
	count := input.Count
	if count == 0 {
		count = billing.DefaultProjectionCount(period)
	}

	return &ProjectBillingDatesOutput{
		Dates:            billing.ProjectOccurrences(anchor, period, today, count),
		Period:           period,
		PeriodRecognized: recognized,
		Today:            today,
	}, nil
}
