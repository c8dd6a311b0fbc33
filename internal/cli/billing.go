package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/subscription-tracker/backend/internal/application/usecase/billingdate"
	"github.com/subscription-tracker/backend/internal/domain/billing"
	"github.com/subscription-tracker/backend/internal/integration/cache"
)

func newNextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next <initial_date> <renewal_period>",
		Short: "Print the next billing date of a subscription",
		Example: `  subtrack next 2025-01-31 Mensal
  subtrack next 2024-02-29 anual --today 2025-03-01`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clock, err := todayClock(cmd)
			if err != nil {
				return err
			}

			uc := billingdate.NewGetNextBillingDateUseCase(cache.NewNoopBillingDateCache(), clock)
			out, err := uc.Execute(cmd.Context(), billingdate.GetNextBillingDateInput{
				InitialDate:   args[0],
				RenewalPeriod: args[1],
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), billing.FormatDate(out.NextBillingDate))
			return err
		},
	}
}

func newProjectCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "project <initial_date> <renewal_period>",
		Short: "List the upcoming billing dates of a subscription",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clock, err := todayClock(cmd)
			if err != nil {
				return err
			}

			uc := billingdate.NewProjectBillingDatesUseCase(clock)
			out, err := uc.Execute(cmd.Context(), billingdate.ProjectBillingDatesInput{
				InitialDate:   args[0],
				RenewalPeriod: args[1],
				Count:         count,
			})
			if err != nil {
				return err
			}

			t := newTable(cmd.OutOrStdout(), 1, 3)
			t.SetTitle(fmt.Sprintf("%s billing dates", out.Period.Label()))
			t.AppendHeader(table.Row{"#", "Date", "Days until"})
			for i, d := range out.Dates {
				t.AppendRow(table.Row{i + 1, billing.FormatDate(d), billing.DaysUntil(out.Today, d)})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of dates (default depends on the period)")
	return cmd
}
