package billing

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/subscription-tracker/backend/internal/domain/entity"
)

// UncategorizedCategory groups subscriptions without a category.
const UncategorizedCategory = "uncategorized"

// CategoryAmount is one row of a category breakdown.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal // Monthly equivalent
	Count    int
}

// RankedSubscription pairs a subscription with its monthly equivalent.
type RankedSubscription struct {
	Subscription  *entity.Subscription
	MonthlyAmount decimal.Decimal
}

// Summary holds the headline totals of a subscription list.
type Summary struct {
	Monthly     decimal.Decimal
	Yearly      decimal.Decimal
	ActiveCount int
}

// counts reports whether sub takes part in aggregation: it must be active,
// have a positive amount and a non-empty period.
func counts(sub *entity.Subscription) bool {
	return sub != nil && sub.Active && sub.Amount.IsPositive() && Normalize(sub.RenewalPeriod) != ""
}

// TotalAtFrequency sums the active subscriptions converted to target using the
// calendar at reference. Empty or all-inactive input yields zero.
func TotalAtFrequency(subs []*entity.Subscription, target Period, reference time.Time) decimal.Decimal {
	table := newConversionTable(NewCalendar(reference))
	target = canonical(target)

	total := decimal.Zero
	for _, sub := range subs {
		if !counts(sub) {
			continue
		}
		total = total.Add(table.convert(sub.Amount, canonical(Period(sub.RenewalPeriod)), target))
	}
	return total
}

// MonthlyEquivalent converts a single subscription to a monthly amount.
// Subscriptions excluded from aggregation yield zero.
func MonthlyEquivalent(sub *entity.Subscription, reference time.Time) decimal.Decimal {
	if !counts(sub) {
		return decimal.Zero
	}
	return Convert(sub.Amount, Period(sub.RenewalPeriod), PeriodMonthly, NewCalendar(reference))
}

// CategoryBreakdown groups active subscriptions by category and sums their
// monthly equivalents, largest first. Equal amounts keep first-seen order.
func CategoryBreakdown(subs []*entity.Subscription, reference time.Time) []CategoryAmount {
	table := newConversionTable(NewCalendar(reference))

	index := make(map[string]int)
	rows := make([]CategoryAmount, 0)
	for _, sub := range subs {
		if !counts(sub) {
			continue
		}
		category := sub.Category
		if category == "" {
			category = UncategorizedCategory
		}

		monthly := table.convert(sub.Amount, canonical(Period(sub.RenewalPeriod)), PeriodMonthly)
		if i, ok := index[category]; ok {
			rows[i].Amount = rows[i].Amount.Add(monthly)
			rows[i].Count++
			continue
		}
		index[category] = len(rows)
		rows = append(rows, CategoryAmount{Category: category, Amount: monthly, Count: 1})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Amount.GreaterThan(rows[j].Amount)
	})
	return rows
}

// TopSubscriptions returns up to limit active subscriptions ordered by monthly
// equivalent, most expensive first. limit <= 0 returns all of them.
func TopSubscriptions(subs []*entity.Subscription, reference time.Time, limit int) []RankedSubscription {
	table := newConversionTable(NewCalendar(reference))

	ranked := make([]RankedSubscription, 0, len(subs))
	for _, sub := range subs {
		if !counts(sub) {
			continue
		}
		ranked = append(ranked, RankedSubscription{
			Subscription:  sub,
			MonthlyAmount: table.convert(sub.Amount, canonical(Period(sub.RenewalPeriod)), PeriodMonthly),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MonthlyAmount.GreaterThan(ranked[j].MonthlyAmount)
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Summarize computes the monthly and yearly totals shown on the home screen.
func Summarize(subs []*entity.Subscription, reference time.Time) Summary {
	active := 0
	for _, sub := range subs {
		if counts(sub) {
			active++
		}
	}
	return Summary{
		Monthly:     TotalAtFrequency(subs, PeriodMonthly, reference),
		Yearly:      TotalAtFrequency(subs, PeriodYearly, reference),
		ActiveCount: active,
	}
}
