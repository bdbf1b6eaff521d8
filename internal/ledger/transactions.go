package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/the-budget-must-balance/internal/common"
	"github.com/Veraticus/the-budget-must-balance/internal/model"
	"github.com/Veraticus/the-budget-must-balance/internal/validation"
)

// TransactionInput carries the user-editable fields of a transaction.
type TransactionInput struct {
	Date        model.Date      `json:"date" validate:"required"`
	Description string          `json:"description" validate:"notblank"`
	Type        model.Direction `json:"type" validate:"oneof=income expense"`
	Notes       string          `json:"notes"`
	Amount      decimal.Decimal `json:"amount" validate:"gte=0"`
	CategoryID  int64           `json:"categoryId" validate:"required"`
}

// Query narrows a transaction listing. Zero fields match everything.
type Query struct {
	Type       model.Direction
	Search     string
	CategoryID int64
}

// TransactionLedger manages the transaction collection.
type TransactionLedger struct {
	store     *Store
	validator *validation.Validator
}

// Create records a new transaction with a fresh id and creation time.
func (l *TransactionLedger) Create(ctx context.Context, in TransactionInput) (model.Transaction, error) {
	if err := l.validator.Struct(in); err != nil {
		return model.Transaction{}, err
	}

	t := model.Transaction{
		ID:        l.store.nextID(),
		CreatedAt: l.store.Now().UTC(),
	}
	apply(&t, in)
	l.store.transactions = append(l.store.transactions, t)

	slog.Debug("created transaction", "id", t.ID, "amount", t.Amount, "type", t.Type)
	return t, l.store.persist(ctx, "failed to save transaction")
}

// Update replaces every editable field of an existing transaction.
func (l *TransactionLedger) Update(ctx context.Context, id int64, in TransactionInput) error {
	if err := l.validator.Struct(in); err != nil {
		return err
	}

	i := l.index(id)
	if i < 0 {
		return fmt.Errorf("transaction %d: %w", id, common.ErrNotFound)
	}
	apply(&l.store.transactions[i], in)

	slog.Debug("updated transaction", "id", id)
	return l.store.persist(ctx, "failed to save transaction")
}

// Delete removes a transaction.
func (l *TransactionLedger) Delete(ctx context.Context, id int64) error {
	i := l.index(id)
	if i < 0 {
		return fmt.Errorf("transaction %d: %w", id, common.ErrNotFound)
	}
	l.store.transactions = append(l.store.transactions[:i], l.store.transactions[i+1:]...)

	slog.Debug("deleted transaction", "id", id)
	return l.store.persist(ctx, "failed to save transactions")
}

// Get returns the transaction with id.
func (l *TransactionLedger) Get(id int64) (model.Transaction, bool) {
	if i := l.index(id); i >= 0 {
		return l.store.transactions[i], true
	}
	return model.Transaction{}, false
}

// List returns every transaction in entry order.
func (l *TransactionLedger) List() []model.Transaction {
	return l.store.Transactions()
}

// Query returns the transactions matching every non-zero field of q, in
// entry order. Search matches description or notes, ignoring case.
func (l *TransactionLedger) Query(q Query) []model.Transaction {
	search := strings.ToLower(q.Search)

	var out []model.Transaction
	for _, t := range l.store.transactions {
		if q.CategoryID != 0 && t.CategoryID != q.CategoryID {
			continue
		}
		if q.Type != "" && t.Type != q.Type {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Description), search) &&
			!strings.Contains(strings.ToLower(t.Notes), search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// FilterByDateRange returns the transactions dated inside r relative to the
// store's current date.
func (l *TransactionLedger) FilterByDateRange(r model.DateRange) []model.Transaction {
	return FilterByDateRange(l.store.transactions, r, l.store.Now())
}

// Recent returns up to n transactions, most recently entered first.
func (l *TransactionLedger) Recent(n int) []model.Transaction {
	return Recent(l.store.transactions, n)
}

// Contains reports whether a transaction with the same date, amount, type and
// description is already recorded. Imports use it to skip duplicates.
func (l *TransactionLedger) Contains(in TransactionInput) bool {
	for _, t := range l.store.transactions {
		if t.Date.Equal(in.Date.Time) &&
			t.Amount.Equal(in.Amount) &&
			t.Type == in.Type &&
			strings.EqualFold(t.Description, strings.TrimSpace(in.Description)) {
			return true
		}
	}
	return false
}

func (l *TransactionLedger) index(id int64) int {
	for i, t := range l.store.transactions {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func apply(t *model.Transaction, in TransactionInput) {
	t.Date = in.Date
	t.Description = strings.TrimSpace(in.Description)
	t.CategoryID = in.CategoryID
	t.Type = in.Type
	t.Amount = in.Amount
	t.Notes = in.Notes
}

// FilterByDateRange returns the subset of txns dated inside r as of now,
// preserving order.
func FilterByDateRange(txns []model.Transaction, r model.DateRange, now time.Time) []model.Transaction {
	out := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if r.Contains(t.Date, now) {
			out = append(out, t)
		}
	}
	return out
}

// Recent returns up to n transactions from the end of txns, newest first.
func Recent(txns []model.Transaction, n int) []model.Transaction {
	n = min(max(n, 0), len(txns))
	out := make([]model.Transaction, 0, n)
	for i := len(txns) - 1; i >= len(txns)-n; i-- {
		out = append(out, txns[i])
	}
	return out
}
