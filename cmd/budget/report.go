package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/the-budget-must-balance/internal/cli"
	"github.com/Veraticus/the-budget-must-balance/internal/common"
	"github.com/Veraticus/the-budget-must-balance/internal/ledger"
	"github.com/Veraticus/the-budget-must-balance/internal/model"
	"github.com/Veraticus/the-budget-must-balance/internal/report"
)

func reportCmd() *cobra.Command {
	var rangeFlag string
	var recent int

	cmd := &cobra.Command{
		Use:     "report",
		Aliases: []string{"dashboard"},
		Short:   "Show totals, savings rate, spending breakdown and trend",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			rng := s.cfg.DefaultRange
			if cmd.Flags().Changed("range") {
				if rng, err = model.ParseDateRange(rangeFlag); err != nil {
					return fmt.Errorf("%w: %v", common.ErrValidation, err)
				}
			}
			if !cmd.Flags().Changed("recent") {
				recent = s.cfg.RecentCount
			}

			txns := ledger.FilterByDateRange(s.tracker.Transactions.List(), rng, s.tracker.Store.Now())
			dash := report.BuildDashboard(txns, s.tracker.Categories, recent)

			fmt.Fprintln(cmd.OutOrStdout(), renderDashboard(s, rng, dash))
			return nil
		},
	}

	cmd.Flags().StringVarP(&rangeFlag, "range", "r", "", "date range: all, month, quarter or year (default from config)")
	cmd.Flags().IntVar(&recent, "recent", 5, "number of recent transactions to show")

	return cmd
}

func renderDashboard(s *session, rng model.DateRange, d report.Dashboard) string {
	f := s.formatter()
	var b strings.Builder

	b.WriteString(cli.FormatTitle(fmt.Sprintf("Dashboard (%s)", rng)))
	b.WriteString("\n")

	balanceStyle := cli.SuccessStyle
	if d.Totals.Balance.IsNegative() {
		balanceStyle = cli.ErrorStyle
	}
	summary := fmt.Sprintf("Income:       %s\nExpenses:     %s\nBalance:      %s\nSavings rate: %s",
		cli.SuccessStyle.Render(f.Money(d.Totals.Income)),
		cli.ErrorStyle.Render(f.Money(d.Totals.Expense)),
		balanceStyle.Render(f.Money(d.Totals.Balance)),
		f.Percent(d.SavingsRate))
	b.WriteString(cli.RenderBox("Totals", summary))
	b.WriteString("\n\n")

	b.WriteString(cli.BoldStyle.Render(cli.ChartIcon + " Spending by category"))
	b.WriteString("\n")
	if len(d.Breakdown) == 0 {
		b.WriteString(cli.SubtleStyle.Render("No expenses in this range."))
	} else {
		rows := make([][]string, 0, len(d.Breakdown))
		for _, row := range d.Breakdown {
			rows = append(rows, []string{row.Name, f.Money(row.Amount), f.Percent(row.Share)})
		}
		b.WriteString(cli.RenderTable([]string{"Category", "Spent", "Share"}, rows))
	}
	b.WriteString("\n\n")

	b.WriteString(cli.BoldStyle.Render("Daily trend"))
	b.WriteString("\n")
	if len(d.Trend.Dates) == 0 {
		b.WriteString(cli.SubtleStyle.Render("No transactions in this range."))
	} else {
		rows := make([][]string, 0, len(d.Trend.Dates))
		for i, date := range d.Trend.Dates {
			rows = append(rows, []string{f.TrendLabel(date), f.Money(d.Trend.Income[i]), f.Money(d.Trend.Expense[i])})
		}
		b.WriteString(cli.RenderTable([]string{"Day", "Income", "Expense"}, rows))
	}
	b.WriteString("\n\n")

	b.WriteString(cli.BoldStyle.Render("Recent transactions"))
	b.WriteString("\n")
	if len(d.Recent) == 0 {
		b.WriteString(cli.SubtleStyle.Render("Nothing recorded yet."))
	} else {
		b.WriteString(renderTransactions(s, d.Recent))
	}

	return b.String()
}
