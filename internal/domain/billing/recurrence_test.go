package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextOccurrence(t *testing.T) {
	tests := []struct {
		name     string
		anchor   string
		period   Period
		today    string
		expected string
	}{
		{name: "future anchor is returned unchanged", anchor: "2024-05-10", period: PeriodMonthly, today: "2024-05-01", expected: "2024-05-10"},
		{name: "anchor due today stays today", anchor: "2024-05-01", period: PeriodWeekly, today: "2024-05-01", expected: "2024-05-01"},
		{name: "daily exact", anchor: "2024-01-01", period: PeriodDaily, today: "2024-03-01", expected: "2024-03-01"},
		{name: "daily long overdue", anchor: "2000-01-01", period: PeriodDaily, today: "2024-06-15", expected: "2024-06-15"},
		{name: "daily centuries overdue", anchor: "1700-01-01", period: PeriodDaily, today: "2024-06-15", expected: "2024-06-15"},
		{name: "daily from year one", anchor: "0001-01-01", period: PeriodDaily, today: "2024-06-15", expected: "2024-06-15"},
		{name: "weekly centuries overdue", anchor: "1700-01-01", period: PeriodWeekly, today: "2024-06-15", expected: "2024-06-21"},
		{name: "weekly exact multiple", anchor: "2024-01-01", period: PeriodWeekly, today: "2024-01-08", expected: "2024-01-08"},
		{name: "weekly partial week", anchor: "2024-01-01", period: PeriodWeekly, today: "2024-01-10", expected: "2024-01-15"},
		{name: "monthly clamps to leap february", anchor: "2024-01-31", period: PeriodMonthly, today: "2024-02-15", expected: "2024-02-29"},
		{name: "monthly clamps to february", anchor: "2023-01-31", period: PeriodMonthly, today: "2023-02-15", expected: "2023-02-28"},
		{name: "monthly returns to the anchor day", anchor: "2024-01-31", period: PeriodMonthly, today: "2024-03-05", expected: "2024-03-31"},
		{name: "monthly same day this month", anchor: "2023-06-20", period: PeriodMonthly, today: "2024-03-20", expected: "2024-03-20"},
		{name: "monthly day already passed this month", anchor: "2023-06-20", period: PeriodMonthly, today: "2024-03-21", expected: "2024-04-20"},
		{name: "monthly crosses the year", anchor: "2023-10-05", period: PeriodMonthly, today: "2023-12-06", expected: "2024-01-05"},
		{name: "quarterly clamps", anchor: "2023-11-30", period: PeriodQuarterly, today: "2024-01-10", expected: "2024-02-29"},
		{name: "quarterly several cycles", anchor: "2022-01-15", period: PeriodQuarterly, today: "2024-05-01", expected: "2024-07-15"},
		{name: "yearly leap anchor on common year", anchor: "2024-02-29", period: PeriodYearly, today: "2025-01-01", expected: "2025-02-28"},
		{name: "yearly leap anchor back on leap year", anchor: "2024-02-29", period: PeriodYearly, today: "2027-03-01", expected: "2028-02-29"},
		{name: "yearly next year", anchor: "2020-06-10", period: PeriodYearly, today: "2024-06-11", expected: "2025-06-10"},
		{name: "raw portuguese label", anchor: "2024-01-10", period: Period("Mensal"), today: "2024-02-11", expected: "2024-03-10"},
		{name: "unknown period falls back to monthly", anchor: "2024-01-15", period: Period("quinzenal"), today: "2024-03-20", expected: "2024-04-15"},
		{name: "empty period falls back to monthly", anchor: "2024-01-15", period: "", today: "2024-01-16", expected: "2024-02-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextOccurrence(date(tt.anchor), tt.period, date(tt.today))
			assert.Equal(t, date(tt.expected), got)
		})
	}
}

func TestNextOccurrenceIgnoresTimeOfDay(t *testing.T) {
	anchor := time.Date(2024, 1, 1, 18, 30, 0, 0, time.UTC)
	today := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, date("2024-03-01"), NextOccurrence(anchor, PeriodDaily, today))
	assert.Equal(t, date("2024-03-01"), NextOccurrence(today, PeriodMonthly, anchor.AddDate(0, 2, 0)))
}

func TestNextOccurrenceIsMinimalAndReachable(t *testing.T) {
	anchors := []time.Time{}
	for d := date("2023-01-01"); d.Before(date("2024-04-01")); d = d.AddDate(0, 0, 5) {
		anchors = append(anchors, d)
	}
	anchors = append(anchors, date("2023-01-31"), date("2024-01-31"), date("2024-02-29"), date("2023-08-31"))

	todays := []time.Time{date("2024-02-28"), date("2024-02-29"), date("2024-03-01"), date("2024-12-31"), date("2025-03-01")}

	for _, p := range Periods() {
		for _, anchor := range anchors {
			for _, today := range todays {
				got := NextOccurrence(anchor, p, today)
				require.False(t, got.Before(today), "%s %s %s", p, FormatDate(anchor), FormatDate(today))

				if !anchor.Before(today) {
					require.Equal(t, anchor, got)
					continue
				}

				k := firstIndex(anchor, p, today)
				require.GreaterOrEqual(t, k, 1)
				require.Equal(t, advance(anchor, p, k), got)
				require.True(t, advance(anchor, p, k-1).Before(today), "%s %s %s not minimal", p, FormatDate(anchor), FormatDate(today))
			}
		}
	}
}

func TestProjectOccurrences(t *testing.T) {
	t.Run("monthly default is three dates one month apart", func(t *testing.T) {
		got := UpcomingOccurrences(date("2024-01-15"), PeriodMonthly, date("2024-03-20"))
		require.Len(t, got, 3)
		assert.Equal(t, []time.Time{date("2024-04-15"), date("2024-05-15"), date("2024-06-15")}, got)
		for i := 1; i < len(got); i++ {
			assert.Equal(t, AddMonths(got[i-1], 1), got[i])
		}
	})

	t.Run("daily default is seven consecutive days", func(t *testing.T) {
		got := UpcomingOccurrences(date("2024-01-01"), PeriodDaily, date("2024-03-01"))
		require.Len(t, got, 7)
		assert.Equal(t, date("2024-03-01"), got[0])
		assert.Equal(t, date("2024-03-07"), got[6])
	})

	t.Run("month end does not drift", func(t *testing.T) {
		got := ProjectOccurrences(date("2024-01-31"), PeriodMonthly, date("2024-02-01"), 3)
		assert.Equal(t, []time.Time{date("2024-02-29"), date("2024-03-31"), date("2024-04-30")}, got)
	})

	t.Run("future anchor starts the sequence", func(t *testing.T) {
		got := ProjectOccurrences(date("2024-06-10"), PeriodWeekly, date("2024-06-01"), 3)
		assert.Equal(t, []time.Time{date("2024-06-10"), date("2024-06-17"), date("2024-06-24")}, got)
	})

	t.Run("yearly", func(t *testing.T) {
		got := ProjectOccurrences(date("2024-02-29"), PeriodYearly, date("2024-03-01"), 4)
		assert.Equal(t, []time.Time{date("2025-02-28"), date("2026-02-28"), date("2027-02-28"), date("2028-02-29")}, got)
	})

	t.Run("non positive count is empty", func(t *testing.T) {
		assert.Empty(t, ProjectOccurrences(date("2024-01-01"), PeriodDaily, date("2024-03-01"), 0))
		assert.Empty(t, ProjectOccurrences(date("2024-01-01"), PeriodDaily, date("2024-03-01"), -2))
		assert.NotNil(t, ProjectOccurrences(date("2024-01-01"), PeriodDaily, date("2024-03-01"), 0))
	})

	t.Run("restartable", func(t *testing.T) {
		first := ProjectOccurrences(date("2023-05-31"), PeriodQuarterly, date("2024-01-01"), 5)
		second := ProjectOccurrences(date("2023-05-31"), PeriodQuarterly, date("2024-01-01"), 5)
		assert.Equal(t, first, second)
		assert.Equal(t, NextOccurrence(date("2023-05-31"), PeriodQuarterly, date("2024-01-01")), first[0])
	})
}

func TestDefaultProjectionCount(t *testing.T) {
	assert.Equal(t, 7, DefaultProjectionCount(PeriodDaily))
	assert.Equal(t, 7, DefaultProjectionCount(Period("Diário")))
	assert.Equal(t, 3, DefaultProjectionCount(PeriodWeekly))
	assert.Equal(t, 3, DefaultProjectionCount(PeriodMonthly))
	assert.Equal(t, 3, DefaultProjectionCount(PeriodYearly))
	assert.Equal(t, 3, DefaultProjectionCount(Period("quinzenal")))
}
