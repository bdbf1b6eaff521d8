package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/the-budget-must-balance/internal/cli"
	"github.com/Veraticus/the-budget-must-balance/internal/common"
	"github.com/Veraticus/the-budget-must-balance/internal/ledger"
	"github.com/Veraticus/the-budget-must-balance/internal/model"
	"github.com/Veraticus/the-budget-must-balance/internal/validation"
)

type transactionFlags struct {
	date        string
	description string
	category    string
	typ         string
	amount      string
	notes       string
}

func (f *transactionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "date as YYYY-MM-DD (default: today)")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "description")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "category ID or name")
	cmd.Flags().StringVarP(&f.typ, "type", "t", "", "income or expense (default: the category's type)")
	cmd.Flags().StringVarP(&f.amount, "amount", "a", "", "amount, e.g. 12.50")
	cmd.Flags().StringVarP(&f.notes, "notes", "n", "", "free-form notes")
}

// apply overlays the flags that were set onto in.
func (f *transactionFlags) apply(cmd *cobra.Command, tr *ledger.Tracker, in *ledger.TransactionInput) error {
	changed := cmd.Flags().Changed

	if changed("date") {
		d, err := model.ParseDate(f.date)
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrValidation, err)
		}
		in.Date = d
	}
	if changed("description") {
		in.Description = f.description
	}
	if changed("category") {
		c, err := findCategory(tr, f.category)
		if err != nil {
			return err
		}
		in.CategoryID = c.ID
		if !changed("type") {
			in.Type = c.Type
		}
	}
	if changed("type") {
		d, err := parseDirection(f.typ)
		if err != nil {
			return err
		}
		in.Type = d
	}
	if changed("amount") {
		amount, err := validation.ParseAmount(f.amount)
		if err != nil {
			return err
		}
		in.Amount = amount
	}
	if changed("notes") {
		in.Notes = f.notes
	}
	return nil
}

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transactions", "transaction"},
		Short:   "Record and browse transactions",
	}

	cmd.AddCommand(addTransactionCmd())
	cmd.AddCommand(listTransactionsCmd())
	cmd.AddCommand(updateTransactionCmd())
	cmd.AddCommand(deleteTransactionCmd())

	return cmd
}

func addTransactionCmd() *cobra.Command {
	var flags transactionFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Example: `  budget tx add -d "Lunch" -c Food -a 12.50 --notes "w/ team"
  budget tx add -d "January pay" -c Salary -a 3000 --date 2024-01-31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			in := ledger.TransactionInput{Date: model.DateOf(time.Now())}
			if err := flags.apply(cmd, s.tracker, &in); err != nil {
				return err
			}

			tx, err := s.tracker.Transactions.Create(cmd.Context(), in)
			if err != nil {
				return err
			}

			f := s.formatter()
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Recorded %s %s on %s (ID: %d)",
				tx.Type, f.Money(tx.Amount), f.Date(tx.Date), tx.ID)))
			return nil
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func listTransactionsCmd() *cobra.Command {
	var category, typ, search, rangeFlag string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Long:  `List transactions in entry order, optionally narrowed by category, type, text and date range.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			var q ledger.Query
			if category != "" {
				c, err := findCategory(s.tracker, category)
				if err != nil {
					return err
				}
				q.CategoryID = c.ID
			}
			if typ != "" {
				if q.Type, err = parseDirection(typ); err != nil {
					return err
				}
			}
			q.Search = search

			rng, err := model.ParseDateRange(rangeFlag)
			if err != nil {
				return fmt.Errorf("%w: %v", common.ErrValidation, err)
			}

			txns := ledger.FilterByDateRange(s.tracker.Transactions.Query(q), rng, s.tracker.Store.Now())
			if limit > 0 && len(txns) > limit {
				txns = txns[len(txns)-limit:]
			}

			if len(txns) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.InfoStyle.Render("No transactions found."))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTransactions(s, txns))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "only this category (ID or name)")
	cmd.Flags().StringVarP(&typ, "type", "t", "", "only income or expense")
	cmd.Flags().StringVarP(&search, "search", "s", "", "text to find in description or notes")
	cmd.Flags().StringVarP(&rangeFlag, "range", "r", "all", "date range: all, month, quarter or year")
	cmd.Flags().IntVar(&limit, "limit", 0, "show only the last N matches")

	return cmd
}

func renderTransactions(s *session, txns []model.Transaction) string {
	f := s.formatter()
	rows := make([][]string, 0, len(txns))
	for _, t := range txns {
		rows = append(rows, []string{
			strconv.FormatInt(t.ID, 10),
			f.Date(t.Date),
			t.Description,
			s.tracker.Categories.Resolve(t.CategoryID).Name,
			signedAmount(f, t),
			t.Notes,
		})
	}
	return cli.RenderTable([]string{"ID", "Date", "Description", "Category", "Amount", "Notes"}, rows)
}

func updateTransactionCmd() *cobra.Command {
	var flags transactionFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a recorded transaction",
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

			current, ok := s.tracker.Transactions.Get(id)
			if !ok {
				return notFound("transaction", id)
			}

			in := ledger.TransactionInput{
				Date:        current.Date,
				Description: current.Description,
				CategoryID:  current.CategoryID,
				Type:        current.Type,
				Amount:      current.Amount,
				Notes:       current.Notes,
			}
			if err := flags.apply(cmd, s.tracker, &in); err != nil {
				return err
			}

			if err := s.tracker.Transactions.Update(cmd.Context(), id, in); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Updated transaction %d", id)))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func deleteTransactionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
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

			if err := s.tracker.Transactions.Delete(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted transaction %d", id)))
			return nil
		},
	}
}
