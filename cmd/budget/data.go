package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/the-budget-must-balance/internal/cli"
	"github.com/Veraticus/the-budget-must-balance/internal/ledger"
	"github.com/Veraticus/the-budget-must-balance/internal/model"
	"github.com/Veraticus/the-budget-must-balance/internal/ofx"
	"github.com/Veraticus/the-budget-must-balance/internal/storage"
)

func exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:       "export <json|csv>",
		Short:     "Export the ledger as JSON or transactions as CSV",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"json", "csv"},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			var write func(io.Writer) error
			switch args[0] {
			case "json":
				write = s.tracker.ExportJSON
			case "csv":
				write = s.tracker.ExportCSV
			default:
				return fmt.Errorf("unknown export format %q (want json or csv)", args[0])
			}

			if output == "" || output == "-" {
				return write(cmd.OutOrStdout())
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			if err := write(f); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}

			fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess("Exported to "+output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default: stdout)")
	return cmd
}

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import data from a JSON backup or bank statements",
	}

	cmd.AddCommand(importJSONCmd())
	cmd.AddCommand(importOFXCmd())

	return cmd
}

func importJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "json <file>",
		Short: "Replace all data with a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.tracker.ImportJSON(cmd.Context(), f); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Imported %d transactions, %d categories and %d budgets",
				len(s.tracker.Transactions.List()), len(s.tracker.Categories.List()), len(s.tracker.Budgets.List()))))
			return nil
		},
	}
}

type ofxImportOptions struct {
	incomeCategory  string
	expenseCategory string
	dryRun          bool
}

func importOFXCmd() *cobra.Command {
	var opts ofxImportOptions

	cmd := &cobra.Command{
		Use:   "ofx <files...>",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import transactions from OFX or QFX (Quicken) files exported from your bank.

Debits become expenses and credits become income. Transactions already in the
ledger with the same date, amount, type and description are skipped.`,
		Example: `  budget import ofx ~/Downloads/chase_jan_2024.qfx
  budget import ofx ~/Downloads/*.qfx --expense-category Shopping --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImportOFX(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.incomeCategory, "income-category", "", "category for credits (default: first income category)")
	cmd.Flags().StringVar(&opts.expenseCategory, "expense-category", "", "category for debits (default: first expense category)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "preview the import without saving")

	return cmd
}

type importResult struct {
	added      int
	duplicates int
	failed     int
}

func runImportOFX(cmd *cobra.Command, args []string, opts ofxImportOptions) error {
	files := expandFiles(args)
	if len(files) == 0 {
		return errors.New("no files found to import")
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	target := s.tracker
	if opts.dryRun {
		if target, err = scratchCopy(cmd.Context(), s.tracker); err != nil {
			return err
		}
	}

	income, err := importCategory(target, opts.incomeCategory, model.DirectionIncome)
	if err != nil {
		return err
	}
	expense, err := importCategory(target, opts.expenseCategory, model.DirectionExpense)
	if err != nil {
		return err
	}

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Import")
	ctx, stop := handler.HandleInterrupts(cmd.Context())
	defer stop()

	parser := ofx.NewParser()
	var total importResult
	accounts := make(map[string]bool)

	for _, path := range files {
		if ctx.Err() != nil {
			break
		}

		entries, fileAccounts, err := readStatement(ctx, parser, path, opts.dryRun)
		if err != nil {
			slog.Error("Failed to parse OFX file", "file", path, "error", err)
			continue
		}
		for _, acct := range fileAccounts {
			accounts[acct] = true
		}

		bar := cli.NewProgress(cmd.ErrOrStderr(), len(entries), "Importing "+filepath.Base(path))
		for _, entry := range entries {
			if ctx.Err() != nil {
				break
			}

			categoryID := expense.ID
			if entry.Direction == model.DirectionIncome {
				categoryID = income.ID
			}
			in := entry.Input(categoryID)

			switch {
			case target.Transactions.Contains(in):
				total.duplicates++
			default:
				if _, err := target.Transactions.Create(ctx, in); err != nil {
					slog.Warn("Skipping transaction", "fitid", entry.FITID, "error", err)
					total.failed++
				} else {
					total.added++
				}
			}
			_ = bar.Add(1)
		}
	}

	summary := fmt.Sprintf("Added %d transactions, skipped %d duplicates", total.added, total.duplicates)
	if total.failed > 0 {
		summary += fmt.Sprintf(", %d failed", total.failed)
	}
	if opts.dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Dry run: "+summary+". Nothing was saved."))
		if len(accounts) > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Accounts: "+strings.Join(sortedKeys(accounts), ", "))
		}
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(summary))
	}
	return nil
}

// readStatement parses the statement at path. Account ids are only
// collected when withAccounts is set.
func readStatement(ctx context.Context, parser *ofx.Parser, path string, withAccounts bool) ([]ofx.Entry, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	entries, err := parser.Parse(ctx, bytes.NewReader(data))
	if err != nil || !withAccounts {
		return entries, nil, err
	}

	accounts, err := parser.Accounts(ctx, bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	return entries, accounts, nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// expandFiles resolves glob patterns, keeping plain paths that exist.
func expandFiles(patterns []string) []string {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			slog.Warn("Invalid pattern", "pattern", pattern, "error", err)
			continue
		}
		if len(matches) > 0 {
			files = append(files, matches...)
			continue
		}
		if _, err := os.Stat(pattern); err == nil {
			files = append(files, pattern)
		} else {
			slog.Warn("No files found matching pattern", "pattern", pattern)
		}
	}
	return files
}

// importCategory picks the category named by arg, or the first category of
// the wanted direction.
func importCategory(tr *ledger.Tracker, arg string, want model.Direction) (model.Category, error) {
	if arg != "" {
		return findCategory(tr, arg)
	}
	cats := tr.Categories.List()
	for _, c := range cats {
		if c.Type == want {
			return c, nil
		}
	}
	return cats[0], nil
}

// scratchCopy loads the tracker's data into an in-memory ledger so a dry run
// can exercise the full import without touching the database.
func scratchCopy(ctx context.Context, tr *ledger.Tracker) (*ledger.Tracker, error) {
	var buf bytes.Buffer
	if err := tr.ExportJSON(&buf); err != nil {
		return nil, err
	}

	scratch, err := ledger.Open(ctx, storage.NewMemoryStorage())
	if err != nil {
		return nil, err
	}
	if err := scratch.ImportJSON(ctx, &buf); err != nil {
		return nil, err
	}
	return scratch, nil
}

func resetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every transaction and budget",
		Long: `Reset removes all transactions and budgets. Categories and settings are kept.

This is a destructive operation. Export a JSON backup first if you might want the data back.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			txCount, budgetCount := len(s.tracker.Transactions.List()), len(s.tracker.Budgets.List())
			if txCount == 0 && budgetCount == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to reset.")
				return nil
			}

			if !force {
				fmt.Fprintf(cmd.OutOrStdout(), "This will delete %d transactions and %d budgets.\n", txCount, budgetCount)
				reader := cli.NewLineReader(cmd.InOrStdin(), cmd.OutOrStdout())
				ok, err := reader.Confirm(cmd.Context(), "Are you sure you want to continue?")
				if err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "\nReset canceled.")
					return nil
				}
			}

			if err := s.tracker.ClearData(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted %d transactions and %d budgets", txCount, budgetCount)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")
	return cmd
}
