package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/subscription-tracker/backend/internal/application/usecase/reminder"
	"github.com/subscription-tracker/backend/internal/domain/billing"
	"github.com/subscription-tracker/backend/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// report bundles what every portfolio command needs.
type report struct {
	portfolio *Portfolio
	subs      []*entity.Subscription
	today     time.Time
}

func loadReport(cmd *cobra.Command) (*report, error) {
	today, err := referenceDate(cmd)
	if err != nil {
		return nil, err
	}
	path, _ := cmd.Flags().GetString(flagFile)
	p, subs, err := loadPortfolioFlag(path)
	if err != nil {
		return nil, err
	}
	return &report{portfolio: p, subs: subs, today: today}, nil
}

func (r *report) money(amount decimal.Decimal) string {
	return reminder.FormatMoney(amount.Round(2), r.portfolio.Currency)
}

func newTotalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "totals",
		Short: "Show the portfolio total at every billing frequency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := loadReport(cmd)
			if err != nil {
				return err
			}

			summary := billing.Summarize(r.subs, r.today)

			t := newTable(cmd.OutOrStdout(), 2)
			t.AppendHeader(table.Row{"Frequency", "Total"})
			for _, p := range billing.Periods() {
				t.AppendRow(table.Row{p.Label(), r.money(billing.TotalAtFrequency(r.subs, p, r.today))})
			}
			t.AppendFooter(table.Row{"Active", fmt.Sprintf("%d of %d", summary.ActiveCount, len(r.subs))})
			t.Render()
			return nil
		},
	}
}

func newBreakdownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "breakdown",
		Short: "Show monthly spending per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := loadReport(cmd)
			if err != nil {
				return err
			}

			rows := billing.CategoryBreakdown(r.subs, r.today)
			total := decimal.Zero
			for _, row := range rows {
				total = total.Add(row.Amount)
			}

			t := newTable(cmd.OutOrStdout(), 2, 3, 4)
			t.AppendHeader(table.Row{"Category", "Subscriptions", "Monthly", "Share"})
			for _, row := range rows {
				share := decimal.Zero
				if total.IsPositive() {
					share = row.Amount.Div(total).Mul(hundred)
				}
				t.AppendRow(table.Row{row.Category, row.Count, r.money(row.Amount), share.StringFixed(2) + "%"})
			}
			t.AppendFooter(table.Row{bold("Total"), "", bold(r.money(total)), ""})
			t.Render()
			return nil
		},
	}
}

func newTopCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Rank subscriptions by monthly cost",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 1 {
				return fmt.Errorf("--limit must be at least 1")
			}
			r, err := loadReport(cmd)
			if err != nil {
				return err
			}

			t := newTable(cmd.OutOrStdout(), 1, 4)
			t.AppendHeader(table.Row{"#", "Name", "Period", "Monthly"})
			for i, ranked := range billing.TopSubscriptions(r.subs, r.today, limit) {
				sub := ranked.Subscription
				t.AppendRow(table.Row{i + 1, sub.Name, billing.Normalize(sub.RenewalPeriod).Label(), r.money(ranked.MonthlyAmount)})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 5, "Number of subscriptions to show")
	return cmd
}

type upcomingRow struct {
	sub  *entity.Subscription
	next time.Time
	days int
}

func newUpcomingCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List active subscriptions renewing soon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if days < 0 {
				return fmt.Errorf("--days must not be negative")
			}
			r, err := loadReport(cmd)
			if err != nil {
				return err
			}

			rows := make([]upcomingRow, 0)
			for _, sub := range r.subs {
				if !sub.Active {
					continue
				}
				next := billing.NextOccurrence(sub.BillingDate, billing.Normalize(sub.RenewalPeriod), r.today)
				if d := billing.DaysUntil(r.today, next); d <= days {
					rows = append(rows, upcomingRow{sub: sub, next: next, days: d})
				}
			}
			sort.SliceStable(rows, func(i, j int) bool { return rows[i].next.Before(rows[j].next) })

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				_, err := fmt.Fprintf(out, "No charges in the next %d days\n", days)
				return err
			}

			t := newTable(out, 3, 4)
			t.AppendHeader(table.Row{"Name", "Date", "In", "Amount"})
			for _, row := range rows {
				t.AppendRow(table.Row{row.sub.Name, billing.FormatDate(row.next), inDays(row.days), r.money(row.sub.Amount)})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 7, "Window in days")
	return cmd
}

func inDays(days int) string {
	switch days {
	case 0:
		return "today"
	case 1:
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
