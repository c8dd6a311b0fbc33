// Package billing implements the calendar rules shared by every subscription
// surface: period normalization, next billing date, forward projection and
// conversion of amounts between billing frequencies.
//
// Every function takes "today" or a reference date explicitly and is safe for
// concurrent use.
package billing

import (
	"log/slog"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Period is a renewal period. Canonical values are the five constants below;
// any other non-empty value is an unrecognized label kept for display.
type Period string

const (
	PeriodDaily     Period = "daily"
	PeriodWeekly    Period = "weekly"
	PeriodMonthly   Period = "monthly"
	PeriodQuarterly Period = "quarterly"
	PeriodYearly    Period = "yearly"
)

var periodAliases = map[string]Period{
	"diario":     PeriodDaily,
	"daily":      PeriodDaily,
	"semanal":    PeriodWeekly,
	"weekly":     PeriodWeekly,
	"mensal":     PeriodMonthly,
	"monthly":    PeriodMonthly,
	"trimestral": PeriodQuarterly,
	"quarterly":  PeriodQuarterly,
	"anual":      PeriodYearly,
	"yearly":     PeriodYearly,
}

var periodLabels = map[Period]string{
	PeriodDaily:     "Diário",
	PeriodWeekly:    "Semanal",
	PeriodMonthly:   "Mensal",
	PeriodQuarterly: "Trimestral",
	PeriodYearly:    "Anual",
}

// Normalize maps a free-text renewal label onto a canonical Period.
// Diacritics are stripped and the label lower-cased, so "Diário" and "DAILY"
// both become PeriodDaily. Unknown labels come back folded but otherwise
// unchanged; an empty label yields "".
func Normalize(label string) Period {
	folded := fold(label)
	if folded == "" {
		return ""
	}
	if p, ok := periodAliases[folded]; ok {
		return p
	}
	return Period(folded)
}

// Periods returns the canonical periods in the order frequency selectors show them.
func Periods() []Period {
	return []Period{PeriodMonthly, PeriodQuarterly, PeriodYearly, PeriodDaily, PeriodWeekly}
}

// IsCanonical reports whether p is one of the five canonical periods.
func (p Period) IsCanonical() bool {
	_, ok := periodLabels[p]
	return ok
}

// Resolve returns p when canonical, otherwise PeriodMonthly and false.
func (p Period) Resolve() (Period, bool) {
	if p.IsCanonical() {
		return p, true
	}
	return PeriodMonthly, false
}

// Label returns the Portuguese display name of the period.
func (p Period) Label() string {
	if label, ok := periodLabels[p]; ok {
		return label
	}
	if p == "" {
		return ""
	}
	return cases.Title(language.BrazilianPortuguese).String(string(p))
}

// ResolvePeriod normalizes a free-text renewal label and applies the monthly
// fallback, logging each fallback. ok is false when the fallback was used.
func ResolvePeriod(label string) (period Period, ok bool) {
	period, ok = Normalize(label).Resolve()
	if !ok {
		slog.Warn("Unrecognized renewal period, treating as monthly",
			"period", label,
		)
	}
	return period, ok
}

func canonical(p Period) Period {
	resolved, _ := ResolvePeriod(string(p))
	return resolved
}

func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}
