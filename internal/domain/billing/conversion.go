package billing

import (
	"github.com/shopspring/decimal"
)

// WeeksPerYear is the mean week count used between weekly and yearly amounts.
var WeeksPerYear = decimal.RequireFromString("52.14")

// ratio scales an amount by num/den. Multiplying before dividing keeps
// 365 * 1/366 identical to 365/366.
type ratio struct {
	num decimal.Decimal
	den decimal.Decimal
}

func (r ratio) apply(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(r.num).Div(r.den)
}

// conversionTable holds the factor for every (source, target) pair.
//
// Month and year lengths come from the calendar; weekly<->yearly uses the
// fixed WeeksPerYear constant in both directions, and a quarter is always
// three times the reference month.
type conversionTable map[Period]map[Period]ratio

func newConversionTable(cal Calendar) conversionTable {
	one := decimal.NewFromInt(1)
	three := decimal.NewFromInt(3)
	four := decimal.NewFromInt(4)
	seven := decimal.NewFromInt(7)
	twelve := decimal.NewFromInt(12)
	dim := decimal.NewFromInt(int64(cal.DaysInMonth))
	diy := decimal.NewFromInt(int64(cal.DaysInYear))
	quarterDays := dim.Mul(three)

	r := func(num, den decimal.Decimal) ratio { return ratio{num: num, den: den} }
	identity := r(one, one)

	return conversionTable{
		PeriodDaily: {
			PeriodDaily:     identity,
			PeriodWeekly:    r(seven, one),
			PeriodMonthly:   r(dim, one),
			PeriodQuarterly: r(quarterDays, one),
			PeriodYearly:    r(diy, one),
		},
		PeriodWeekly: {
			PeriodDaily:     r(one, seven),
			PeriodWeekly:    identity,
			PeriodMonthly:   r(dim, seven),
			PeriodQuarterly: r(quarterDays, seven),
			PeriodYearly:    r(WeeksPerYear, one),
		},
		PeriodMonthly: {
			PeriodDaily:     r(one, dim),
			PeriodWeekly:    r(seven, dim),
			PeriodMonthly:   identity,
			PeriodQuarterly: r(three, one),
			PeriodYearly:    r(twelve, one),
		},
		PeriodQuarterly: {
			PeriodDaily:     r(one, quarterDays),
			PeriodWeekly:    r(seven, quarterDays),
			PeriodMonthly:   r(one, three),
			PeriodQuarterly: identity,
			PeriodYearly:    r(four, one),
		},
		PeriodYearly: {
			PeriodDaily:     r(one, diy),
			PeriodWeekly:    r(one, WeeksPerYear),
			PeriodMonthly:   r(one, twelve),
			PeriodQuarterly: r(one, four),
			PeriodYearly:    identity,
		},
	}
}

// convert expects canonical source and target.
func (t conversionTable) convert(amount decimal.Decimal, source, target Period) decimal.Decimal {
	return t[source][target].apply(amount)
}

// Convert expresses amount, charged every source period, as the equivalent
// amount per target period. Unrecognized periods are treated as monthly.
func Convert(amount decimal.Decimal, source, target Period, cal Calendar) decimal.Decimal {
	return newConversionTable(cal).convert(amount, canonical(source), canonical(target))
}
