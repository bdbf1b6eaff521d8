package ledger

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Veraticus/the-budget-must-balance/internal/common"
	"github.com/Veraticus/the-budget-must-balance/internal/model"
	"github.com/Veraticus/the-budget-must-balance/internal/validation"
)

// Snapshot is the JSON export document.
type Snapshot struct {
	Transactions []model.Transaction `json:"transactions"`
	Categories   []model.Category    `json:"categories"`
	Budgets      []model.Budget      `json:"budgets"`
}

var csvHeader = []string{"Date", "Description", "Category", "Type", "Amount", "Notes"}

// ExportJSON writes the three collections as an indented JSON document.
func (t *Tracker) ExportJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	snap := Snapshot{
		Transactions: t.Store.Transactions(),
		Categories:   t.Store.Categories(),
		Budgets:      t.Store.Budgets(),
	}
	if snap.Transactions == nil {
		snap.Transactions = []model.Transaction{}
	}
	if snap.Budgets == nil {
		snap.Budgets = []model.Budget{}
	}
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("failed to export JSON: %w", err)
	}
	return nil
}

// ImportJSON replaces every collection with the contents of an exported
// document. Every row is validated first; nothing changes when the document
// is invalid.
func (t *Tracker) ImportJSON(ctx context.Context, r io.Reader) error {
	var doc struct {
		Transactions *[]model.Transaction `json:"transactions"`
		Categories   *[]model.Category    `json:"categories"`
		Budgets      []model.Budget       `json:"budgets"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("%w: invalid import file: %v", common.ErrValidation, err)
	}
	if doc.Transactions == nil || doc.Categories == nil {
		return fmt.Errorf("%w: import file must contain transactions and categories", common.ErrValidation)
	}
	if err := checkRows(t.validator, "transaction", *doc.Transactions, func(tx model.Transaction) int64 { return tx.ID }); err != nil {
		return err
	}
	if err := checkRows(t.validator, "category", *doc.Categories, func(c model.Category) int64 { return c.ID }); err != nil {
		return err
	}
	if err := checkRows(t.validator, "budget", doc.Budgets, func(b model.Budget) int64 { return b.ID }); err != nil {
		return err
	}

	s := t.Store
	s.transactions = append([]model.Transaction{}, *doc.Transactions...)
	s.categories = append([]model.Category{}, *doc.Categories...)
	if len(s.categories) == 0 {
		s.categories = model.DefaultCategories()
	}
	s.budgets = append([]model.Budget{}, doc.Budgets...)
	s.resetLastID()

	slog.Info("imported data",
		"transactions", len(s.transactions),
		"categories", len(s.categories),
		"budgets", len(s.budgets))
	return s.persist(ctx, "failed to save imported data")
}

// checkRows validates every imported row and rejects ids used twice within
// the collection.
func checkRows[T any](v *validation.Validator, kind string, rows []T, id func(T) int64) error {
	seen := make(map[int64]int, len(rows))
	for i, row := range rows {
		if err := v.Struct(row); err != nil {
			return fmt.Errorf("%s %d: %w", kind, i+1, err)
		}
		key := id(row)
		if first, dup := seen[key]; dup {
			return fmt.Errorf("%w: %s %d reuses id %d of %s %d", common.ErrValidation, kind, i+1, key, kind, first+1)
		}
		seen[key] = i
	}
	return nil
}

// ExportCSV writes one row per transaction with every field quoted and the
// category name resolved.
func (t *Tracker) ExportCSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	writeCSVRow(bw, csvHeader, false)
	for _, tx := range t.Store.transactions {
		writeCSVRow(bw, []string{
			tx.Date.String(),
			tx.Description,
			t.Categories.Resolve(tx.CategoryID).Name,
			string(tx.Type),
			tx.Amount.String(),
			tx.Notes,
		}, true)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to export CSV: %w", err)
	}
	return nil
}

// writeCSVRow writes fields separated by commas. Quoted rows wrap every field
// in double quotes and double any embedded quote.
func writeCSVRow(w *bufio.Writer, fields []string, quoted bool) {
	for i, f := range fields {
		if i > 0 {
			_ = w.WriteByte(',')
		}
		if quoted {
			f = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
		}
		_, _ = w.WriteString(f)
	}
	_ = w.WriteByte('\n')
}

// ClearData drops every transaction and budget. Categories and settings are
// kept.
func (t *Tracker) ClearData(ctx context.Context) error {
	t.Store.transactions = []model.Transaction{}
	t.Store.budgets = []model.Budget{}

	slog.Info("cleared transactions and budgets")
	return t.Store.persist(ctx, "failed to save cleared data")
}
