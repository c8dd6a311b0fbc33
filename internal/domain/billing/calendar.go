package billing

import (
	"strings"
	"time"

	domainerror "github.com/subscription-tracker/backend/internal/domain/error"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Calendar carries the month and year lengths conversions are computed with.
type Calendar struct {
	Reference   time.Time
	DaysInMonth int
	DaysInYear  int
}

// NewCalendar builds the calendar context for the given reference date.
func NewCalendar(reference time.Time) Calendar {
	reference = DateOf(reference)
	return Calendar{
		Reference:   reference,
		DaysInMonth: DaysInMonth(reference),
		DaysInYear:  DaysInYear(reference),
	}
}

// DateOf truncates t to midnight UTC of its calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date.
func Today() time.Time {
	return DateOf(time.Now())
}

// ParseDate parses "2006-01-02" or an RFC 3339 timestamp into a calendar date.
// Any other input fails with an InvalidDateError.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, domainerror.NewInvalidDateError(s, err)
	}
	return DateOf(t), nil
}

// FormatDate renders a calendar date in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// IsLeapYear reports whether year has 366 days.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in t's month.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(t time.Time) int {
	if IsLeapYear(t.Year()) {
		return 366
	}
	return 365
}

const secondsPerDay = 24 * 60 * 60

// AddMonths adds n calendar months to t, clamping the day to the end of the
// target month: Jan 31 + 1 month is Feb 28 or Feb 29.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	if last := DaysInMonth(first); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

// DaysUntil returns the number of whole days from today to date, negative
// when date is in the past. Works on Unix seconds since time.Duration
// saturates after roughly 292 years.
func DaysUntil(today, date time.Time) int {
	return int((DateOf(date).Unix() - DateOf(today).Unix()) / secondsPerDay)
}
