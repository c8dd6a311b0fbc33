// Package cli implements the subtrack command line tool: billing date
// calculations and spending reports over a YAML portfolio file.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/subscription-tracker/backend/internal/application/adapter"
	"github.com/subscription-tracker/backend/internal/domain/billing"
)

const (
	flagToday = "today"
	flagFile  = "file"
)

// NewRootCmd builds the subtrack command tree.
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:          "subtrack",
		Short:        "Subscription billing calculator and spending reports",
		Version:      version,
		SilenceUsage: true,
	}

	root.PersistentFlags().String(flagToday, "", "Reference date (YYYY-MM-DD), defaults to the current date")
	root.PersistentFlags().StringP(flagFile, "f", "subscriptions.yaml", "Portfolio file")

	root.AddCommand(
		newNextCmd(),
		newProjectCmd(),
		newTotalsCmd(),
		newBreakdownCmd(),
		newTopCmd(),
		newUpcomingCmd(),
		newTokenCmd(),
	)
	return root
}

// todayClock returns a clock pinned to the --today flag, or the system clock.
func todayClock(cmd *cobra.Command) (adapter.Clock, error) {
	raw, _ := cmd.Flags().GetString(flagToday)
	if raw == "" {
		return adapter.SystemClock{}, nil
	}
	d, err := billing.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid --today: %w", err)
	}
	return fixedClock(d), nil
}

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

// referenceDate resolves --today to a calendar date.
func referenceDate(cmd *cobra.Command) (time.Time, error) {
	clock, err := todayClock(cmd)
	if err != nil {
		return time.Time{}, err
	}
	return billing.DateOf(clock.Now()), nil
}
