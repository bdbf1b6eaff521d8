package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/the-budget-must-balance/internal/cli"
	"github.com/Veraticus/the-budget-must-balance/internal/ledger"
	"github.com/Veraticus/the-budget-must-balance/internal/model"
	"github.com/Veraticus/the-budget-must-balance/internal/validation"
)

type budgetFlags struct {
	category  string
	amount    string
	period    string
	threshold string
}

func (f *budgetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "category ID or name")
	cmd.Flags().StringVarP(&f.amount, "amount", "a", "", "budgeted amount per period")
	cmd.Flags().StringVarP(&f.period, "period", "p", string(model.PeriodMonthly), "monthly, quarterly or yearly")
	cmd.Flags().StringVar(&f.threshold, "threshold", "", "warn at this percentage of the budget (default 80)")
}

func (f *budgetFlags) apply(cmd *cobra.Command, tr *ledger.Tracker, in *ledger.BudgetInput) error {
	changed := cmd.Flags().Changed

	if changed("category") {
		c, err := findCategory(tr, f.category)
		if err != nil {
			return err
		}
		in.CategoryID = c.ID
	}
	if changed("amount") {
		amount, err := validation.ParseAmount(f.amount)
		if err != nil {
			return err
		}
		in.Amount = amount
	}
	if changed("period") || in.Period == "" {
		in.Period = model.Period(strings.ToLower(strings.TrimSpace(f.period)))
	}
	if changed("threshold") {
		threshold, err := validation.ParsePercentage(f.threshold)
		if err != nil {
			return err
		}
		in.AlertThreshold = &threshold
	}
	return nil
}

func budgetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "budgets",
		Aliases: []string{"budget"},
		Short:   "Plan spending limits per category",
	}

	cmd.AddCommand(addBudgetCmd())
	cmd.AddCommand(listBudgetsCmd())
	cmd.AddCommand(updateBudgetCmd())
	cmd.AddCommand(deleteBudgetCmd())
	cmd.AddCommand(budgetStatusCmd())

	return cmd
}

func addBudgetCmd() *cobra.Command {
	var flags budgetFlags

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a budget",
		Example: `  budget budgets add -c "Food & Dining" -a 400 --period monthly --threshold 75`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			var in ledger.BudgetInput
			if err := flags.apply(cmd, s.tracker, &in); err != nil {
				return err
			}

			b, err := s.tracker.Budgets.Create(cmd.Context(), in)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Created %s budget of %s for %s (ID: %d)",
				b.Period, s.formatter().Money(b.Amount), s.tracker.Categories.Resolve(b.CategoryID).Name, b.ID)))
			return nil
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func listBudgetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List budgets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			budgets := s.tracker.Budgets.List()
			if len(budgets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.InfoStyle.Render("No budgets yet. Use 'budget budgets add' to create one."))
				return nil
			}

			f := s.formatter()
			rows := make([][]string, 0, len(budgets))
			for _, b := range budgets {
				rows = append(rows, []string{
					strconv.FormatInt(b.ID, 10),
					s.tracker.Categories.Resolve(b.CategoryID).Name,
					string(b.Period),
					f.Money(b.Amount),
					f.Percent(b.AlertThreshold),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderTable([]string{"ID", "Category", "Period", "Amount", "Alert at"}, rows))
			return nil
		},
	}
}

func updateBudgetCmd() *cobra.Command {
	var flags budgetFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			current, ok := s.tracker.Budgets.Get(id)
			if !ok {
				return notFound("budget", id)
			}

			in := ledger.BudgetInput{
				CategoryID: current.CategoryID,
				Amount:     current.Amount,
				Period:     current.Period,
			}
			if err := flags.apply(cmd, s.tracker, &in); err != nil {
				return err
			}

			if err := s.tracker.Budgets.Update(cmd.Context(), id, in); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Updated budget %d", id)))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func deleteBudgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.tracker.Budgets.Delete(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted budget %d", id)))
			return nil
		},
	}
}

func budgetStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show spending against every budget for the current period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			statuses := s.tracker.Budgets.Statuses()
			if len(statuses) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.InfoStyle.Render("No budgets yet. Use 'budget budgets add' to create one."))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderBudgetStatuses(s, statuses))
			return nil
		},
	}
}

func renderBudgetStatuses(s *session, statuses []ledger.BudgetStatus) string {
	f := s.formatter()
	rows := make([][]string, 0, len(statuses))
	for _, st := range statuses {
		pct := f.Percent(st.Percentage.Round(0))
		if st.Percentage.Equal(ledger.SaturatedPercentage) {
			pct = "∞"
		}
		rows = append(rows, []string{
			s.tracker.Categories.Resolve(st.Budget.CategoryID).Name,
			string(st.Budget.Period),
			f.Money(st.Spent) + " / " + f.Money(st.Budget.Amount),
			cli.RenderBudgetBar(st.Percentage, st.Level, 20),
			pct,
			cli.LevelStyle(st.Level).Render(string(st.Level)),
		})
	}
	return cli.RenderTable([]string{"Category", "Period", "Spent", "", "Used", "Status"}, rows)
}

