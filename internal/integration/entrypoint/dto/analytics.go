package dto

import (
	"github.com/subscription-tracker/backend/internal/application/usecase/analytics"
	"github.com/subscription-tracker/backend/internal/domain/billing"
)

// SummaryResponse holds the headline totals.
type SummaryResponse struct {
	ReferenceDate string `json:"reference_date"`
	Monthly       string `json:"monthly_total"`
	Yearly        string `json:"yearly_total"`
	ActiveCount   int    `json:"active_count"`
	TotalCount    int    `json:"total_count"`
}

// TotalResponse holds a total at one frequency.
type TotalResponse struct {
	Frequency string `json:"frequency"`
	Label     string `json:"label"`
	Total     string `json:"total"`
}

// CategorySliceResponse is one category's share of the monthly cost.
type CategorySliceResponse struct {
	Category   string `json:"category"`
	Amount     string `json:"amount"`
	Percentage string `json:"percentage"`
	Count      int    `json:"count"`
	Color      string `json:"color"`
}

// CategoryBreakdownResponse lists categories by monthly cost.
type CategoryBreakdownResponse struct {
	Total      string                  `json:"total"`
	Categories []CategorySliceResponse `json:"categories"`
}

// RankedSubscriptionResponse is a subscription with its monthly equivalent.
type RankedSubscriptionResponse struct {
	Subscription  SubscriptionResponse `json:"subscription"`
	MonthlyAmount string               `json:"monthly_amount"`
}

// TopSubscriptionsResponse lists the most expensive subscriptions.
type TopSubscriptionsResponse struct {
	Subscriptions []RankedSubscriptionResponse `json:"subscriptions"`
}

// ToSummaryResponse converts a GetSummaryOutput.
func ToSummaryResponse(output *analytics.GetSummaryOutput) SummaryResponse {
	return SummaryResponse{
		ReferenceDate: billing.FormatDate(output.ReferenceDate),
		Monthly:       output.Monthly.StringFixed(2),
		Yearly:        output.Yearly.StringFixed(2),
		ActiveCount:   output.ActiveCount,
		TotalCount:    output.TotalCount,
	}
}

// ToTotalResponse converts a TotalByFrequencyOutput.
func ToTotalResponse(output *analytics.TotalByFrequencyOutput) TotalResponse {
	return TotalResponse{
		Frequency: string(output.Frequency),
		Label:     output.Label,
		Total:     output.Total.StringFixed(2),
	}
}

// ToCategoryBreakdownResponse converts a CategoryBreakdownOutput.
func ToCategoryBreakdownResponse(output *analytics.CategoryBreakdownOutput) CategoryBreakdownResponse {
	slices := make([]CategorySliceResponse, len(output.Categories))
	for i, c := range output.Categories {
		slices[i] = CategorySliceResponse{
			Category:   c.Category,
			Amount:     c.Amount.StringFixed(2),
			Percentage: c.Percentage.StringFixed(2),
			Count:      c.Count,
			Color:      c.Color,
		}
	}
	return CategoryBreakdownResponse{
		Total:      output.Total.StringFixed(2),
		Categories: slices,
	}
}

// ToTopSubscriptionsResponse converts a TopSubscriptionsOutput.
func ToTopSubscriptionsResponse(output *analytics.TopSubscriptionsOutput) TopSubscriptionsResponse {
	items := make([]RankedSubscriptionResponse, len(output.Subscriptions))
	for i, r := range output.Subscriptions {
		items[i] = RankedSubscriptionResponse{
			Subscription:  ToSubscriptionResponse(r.Subscription),
			MonthlyAmount: r.MonthlyAmount.StringFixed(2),
		}
	}
	return TopSubscriptionsResponse{Subscriptions: items}
}
