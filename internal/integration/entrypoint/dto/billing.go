package dto

import (
	"github.com/subscription-tracker/backend/internal/application/usecase/billingdate"
	"github.com/subscription-tracker/backend/internal/domain/billing"
)

// NextBillingDateRequest is the body of the get_next_billing_date procedure.
// Missing fields are reported by the use case with billing error codes.
type NextBillingDateRequest struct {
	InitialDate   string `json:"initial_date"`
	RenewalPeriod string `json:"renewal_period_text"`
	Today         string `json:"today,omitempty"`
}

// ProjectBillingDatesRequest is the body of the project_billing_dates procedure.
type ProjectBillingDatesRequest struct {
	InitialDate   string `json:"initial_date"`
	RenewalPeriod string `json:"renewal_period_text"`
	Today         string `json:"today,omitempty"`
	Count         int    `json:"count,omitempty"`
}

// NextBillingDateResponse carries the next charge date.
type NextBillingDateResponse struct {
	NextBillingDate  string `json:"next_billing_date"`
	Period           string `json:"period"`
	PeriodRecognized bool   `json:"period_recognized"`
	Today            string `json:"today"`
}

// ProjectBillingDatesResponse lists consecutive charge dates.
type ProjectBillingDatesResponse struct {
	Dates            []string `json:"dates"`
	Period           string   `json:"period"`
	PeriodRecognized bool     `json:"period_recognized"`
	Today            string   `json:"today"`
}

// ToNextBillingDateResponse converts a GetNextBillingDateOutput.
func ToNextBillingDateResponse(output *billingdate.GetNextBillingDateOutput) NextBillingDateResponse {
	return NextBillingDateResponse{
		NextBillingDate:  billing.FormatDate(output.NextBillingDate),
		Period:           string(output.Period),
		PeriodRecognized: output.PeriodRecognized,
		Today:            billing.FormatDate(output.Today),
	}
}

// ToProjectBillingDatesResponse converts a ProjectBillingDatesOutput.
func ToProjectBillingDatesResponse(output *billingdate.ProjectBillingDatesOutput) ProjectBillingDatesResponse {
	return ProjectBillingDatesResponse{
		Dates:            formatDates(output.Dates),
		Period:           string(output.Period),
		PeriodRecognized: output.PeriodRecognized,
		Today:            billing.FormatDate(output.Today),
	}
}
