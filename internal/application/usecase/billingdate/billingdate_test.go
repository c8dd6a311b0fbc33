package billingdate

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subscription-tracker/backend/internal/application/adapter/adaptertest"
	"github.com/subscription-tracker/backend/internal/domain/billing"
	domainerror "github.com/subscription-tracker/backend/internal/domain/error"
)

var clock = adaptertest.FixedClock{T: time.Date(2025, time.March, 10, 23, 59, 0, 0, time.UTC)}

func date(s string) time.Time {
	d, err := billing.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestGetNextBillingDate(t *testing.T) {
	cases := []struct {
		name   string
		input  GetNextBillingDateInput
		want   string
		period billing.Period
	}{
		{"monthly clamps to short month", GetNextBillingDateInput{InitialDate: "2025-01-31", RenewalPeriod: "Mensal", Today: "2025-02-01"}, "2025-02-28", billing.PeriodMonthly},
		{"future anchor is returned as is", GetNextBillingDateInput{InitialDate: "2025-06-01", RenewalPeriod: "Anual"}, "2025-06-01", billing.PeriodYearly},
		{"today comes from the clock", GetNextBillingDateInput{InitialDate: "2025-03-03", RenewalPeriod: "semanal"}, "2025-03-10", billing.PeriodWeekly},
		{"accent and case insensitive", GetNextBillingDateInput{InitialDate: "2025-03-01", RenewalPeriod: "DIÁRIO"}, "2025-03-10", billing.PeriodDaily},
		{"unknown period falls back to monthly", GetNextBillingDateInput{InitialDate: "2025-01-15", RenewalPeriod: "fortnightly"}, "2025-03-15", billing.PeriodMonthly},
		{"leap day anchor on yearly", GetNextBillingDateInput{InitialDate: "2024-02-29", RenewalPeriod: "anual", Today: "2025-01-01"}, "2025-02-28", billing.PeriodYearly},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := NewGetNextBillingDateUseCase(adaptertest.NewBillingDateCache(), clock)

			out, err := uc.Execute(context.Background(), tc.input)
			require.NoError(t, err)
			assert.Equal(t, date(tc.want), out.NextBillingDate)
			assert.Equal(t, tc.period, out.Period)
		})
	}
}

func TestGetNextBillingDate_Cache(t *testing.T) {
	cache := adaptertest.NewBillingDateCache()
	uc := NewGetNextBillingDateUseCase(cache, clock)
	input := GetNextBillingDateInput{InitialDate: "2025-01-31", RenewalPeriod: "Mensal"}

	first, err := uc.Execute(context.Background(), input)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, first.NextBillingDate, second.NextBillingDate)
	assert.Equal(t, 1, cache.Sets)
	assert.Equal(t, 1, cache.Hits)

	// "monthly" and "Mensal" share an entry.
	_, err = uc.Execute(context.Background(), GetNextBillingDateInput{InitialDate: "2025-01-31", RenewalPeriod: "monthly"})
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Hits)
}

func TestGetNextBillingDate_Errors(t *testing.T) {
	uc := NewGetNextBillingDateUseCase(adaptertest.NewBillingDateCache(), clock)

	cases := []struct {
		name  string
		input GetNextBillingDateInput
		code  domainerror.BillingErrorCode
	}{
		{"missing initial date", GetNextBillingDateInput{RenewalPeriod: "Mensal"}, domainerror.ErrCodeMissingBillingField},
		{"malformed initial date", GetNextBillingDateInput{InitialDate: "31/01/2025"}, domainerror.ErrCodeInvalidDate},
		{"impossible today", GetNextBillingDateInput{InitialDate: "2025-01-31", Today: "2025-02-30"}, domainerror.ErrCodeInvalidDate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tc.input)

			var billingErr *domainerror.BillingError
			require.True(t, errors.As(err, &billingErr))
			assert.Equal(t, tc.code, billingErr.Code)
		})
	}
}

func TestProjectBillingDates(t *testing.T) {
	uc := NewProjectBillingDatesUseCase(clock)

	t.Run("default count depends on the period", func(t *testing.T) {
		daily, err := uc.Execute(context.Background(), ProjectBillingDatesInput{InitialDate: "2025-03-01", RenewalPeriod: "diario"})
		require.NoError(t, err)
		assert.Len(t, daily.Dates, 7)
		assert.Equal(t, date("2025-03-10"), daily.Dates[0])
		assert.Equal(t, date("2025-03-16"), daily.Dates[6])

		quarterly, err := uc.Execute(context.Background(), ProjectBillingDatesInput{InitialDate: "2024-11-30", RenewalPeriod: "Trimestral"})
		require.NoError(t, err)
		assert.Equal(t, []time.Time{date("2025-05-30"), date("2025-08-30"), date("2025-11-30")}, quarterly.Dates)
	})

	t.Run("explicit count", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), ProjectBillingDatesInput{InitialDate: "2025-01-31", RenewalPeriod: "mensal", Count: 5})
		require.NoError(t, err)
		assert.Equal(t, []time.Time{
			date("2025-03-31"), date("2025-04-30"), date("2025-05-31"), date("2025-06-30"), date("2025-07-31"),
		}, out.Dates)
	})

	t.Run("count out of range", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), ProjectBillingDatesInput{InitialDate: "2025-01-31", Count: -1})
		var billingErr *domainerror.BillingError
		require.True(t, errors.As(err, &billingErr))
		assert.Equal(t, domainerror.ErrCodeInvalidCount, billingErr.Code)
	})
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })
	return &buf
}

func TestUnknownPeriodFallbackIsLogged(t *testing.T) {
	clock := adaptertest.FixedClock{T: date("2024-03-20")}

	t.Run("next billing date", func(t *testing.T) {
		logs := captureLogs(t)
		uc := NewGetNextBillingDateUseCase(adaptertest.NewBillingDateCache(), clock)

		out, err := uc.Execute(context.Background(), GetNextBillingDateInput{InitialDate: "2024-01-15", RenewalPeriod: "Bimestral"})
		require.NoError(t, err)
		assert.Equal(t, date("2024-04-15"), out.NextBillingDate)
		assert.Equal(t, billing.PeriodMonthly, out.Period)
		assert.False(t, out.PeriodRecognized)
		assert.Contains(t, logs.String(), "level=WARN")
		assert.Contains(t, logs.String(), "period=Bimestral")
	})

	t.Run("projection", func(t *testing.T) {
		logs := captureLogs(t)
		uc := NewProjectBillingDatesUseCase(clock)

		out, err := uc.Execute(context.Background(), ProjectBillingDatesInput{InitialDate: "2024-01-15", RenewalPeriod: "Bimestral"})
		require.NoError(t, err)
		assert.False(t, out.PeriodRecognized)
		assert.Len(t, out.Dates, billing.CycleProjectionCount)
		assert.Contains(t, logs.String(), "period=Bimestral")
	})

	t.Run("known period stays quiet", func(t *testing.T) {
		logs := captureLogs(t)
		uc := NewGetNextBillingDateUseCase(adaptertest.NewBillingDateCache(), clock)

		out, err := uc.Execute(context.Background(), GetNextBillingDateInput{InitialDate: "2024-01-15", RenewalPeriod: "Mensal"})
		require.NoError(t, err)
		assert.True(t, out.PeriodRecognized)
		assert.Empty(t, logs.String())
	})
}
