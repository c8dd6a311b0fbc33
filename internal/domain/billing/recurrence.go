package billing

import (
	"time"
)

const (
	// DailyProjectionCount is how many upcoming charges are shown for daily subscriptions.
	DailyProjectionCount = 7
	// CycleProjectionCount is how many upcoming charges are shown for every other period.
	CycleProjectionCount = 3
)

// NextOccurrence returns the first billing date on or after today for a
// subscription anchored at anchor. An anchor that is today or later is
// returned unchanged. Occurrences are always computed from the anchor, so a
// Jan 31 monthly anchor yields Feb 29 and then Mar 31.
func NextOccurrence(anchor time.Time, period Period, today time.Time) time.Time {
	anchor, today = DateOf(anchor), DateOf(today)
	if !anchor.Before(today) {
		return anchor
	}
	p := canonical(period)
	return advance(anchor, p, firstIndex(anchor, p, today))
}

// ProjectOccurrences returns the next occurrence followed by count-1 further
// occurrences of the same period. count <= 0 yields an empty slice.
func ProjectOccurrences(anchor time.Time, period Period, today time.Time, count int) []time.Time {
	if count <= 0 {
		return []time.Time{}
	}

	anchor, today = DateOf(anchor), DateOf(today)
	p := canonical(period)

	start := 0
	if anchor.Before(today) {
		start = firstIndex(anchor, p, today)
	}

	dates := make([]time.Time, count)
	for i := range dates {
		dates[i] = advance(anchor, p, start+i)
	}
	return dates
}

// DefaultProjectionCount returns 7 for daily periods and 3 otherwise.
func DefaultProjectionCount(period Period) int {
	if Normalize(string(period)) == PeriodDaily {
		return DailyProjectionCount
	}
	return CycleProjectionCount
}

// UpcomingOccurrences projects DefaultProjectionCount occurrences.
func UpcomingOccurrences(anchor time.Time, period Period, today time.Time) []time.Time {
	return ProjectOccurrences(anchor, period, today, DefaultProjectionCount(period))
}

// advance returns the k-th occurrence after anchor. p must be canonical.
func advance(anchor time.Time, p Period, k int) time.Time {
	switch p {
	case PeriodDaily:
		return anchor.AddDate(0, 0, k)
	case PeriodWeekly:
		return anchor.AddDate(0, 0, 7*k)
	default:
		return AddMonths(anchor, k*monthStep(p))
	}
}

// firstIndex returns the smallest k >= 1 with advance(anchor, p, k) >= today.
// anchor must be strictly before today.
func firstIndex(anchor time.Time, p Period, today time.Time) int {
	days := DaysUntil(anchor, today)

	switch p {
	case PeriodDaily:
		return days
	case PeriodWeekly:
		return (days + 6) / 7
	}

	// Occurrences before floor(months/step) fall in an earlier month than
	// today, so the answer is at most a couple of steps above it.
	step := monthStep(p)
	months := (today.Year()-anchor.Year())*12 + int(today.Month()) - int(anchor.Month())
	k := months / step
	if k < 1 {
		k = 1
	}
	for advance(anchor, p, k).Before(today) {
		k++
	}
	return k
}

func monthStep(p Period) int {
	switch p {
	case PeriodQuarterly:
		return 3
	case PeriodYearly:
		return 12
	default:
		return 1
	}
}
