// Package testutil provides helpers for building ledgers in tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/the-budget-must-balance/internal/ledger"
	"github.com/Veraticus/the-budget-must-balance/internal/model"
	"github.com/Veraticus/the-budget-must-balance/internal/storage"
)

// Today is the fixed clock used by NewTracker: 2024-01-15 09:30 UTC.
var Today = time.Date(2024, time.January, 15, 9, 30, 0, 0, time.UTC)

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// NewTracker opens a tracker over a fresh in-memory store with the clock
// fixed at Today. Later options override the clock.
func NewTracker(t *testing.T, opts ...ledger.Option) (*ledger.Tracker, *storage.MemoryStorage) {
	t.Helper()
	kv := storage.NewMemoryStorage()
	return OpenTracker(t, kv, opts...), kv
}

// OpenTracker opens a tracker over an existing store with the clock fixed at
// Today.
func OpenTracker(t *testing.T, kv *storage.MemoryStorage, opts ...ledger.Option) *ledger.Tracker {
	t.Helper()

	opts = append([]ledger.Option{ledger.WithClock(FixedClock(Today))}, opts...)
	tr, err := ledger.Open(context.Background(), kv, opts...)
	if err != nil {
		t.Fatalf("failed to open tracker: %v", err)
	}
	return tr
}

// MustAdd records a transaction or fails the test.
func MustAdd(t *testing.T, tr *ledger.Tracker, in ledger.TransactionInput) model.Transaction {
	t.Helper()
	tx, err := tr.Transactions.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("failed to add transaction %q: %v", in.Description, err)
	}
	return tx
}

// Expense builds an expense input dated on the given day.
func Expense(date model.Date, categoryID int64, amount, description string) ledger.TransactionInput {
	return ledger.TransactionInput{
		Date:        date,
		Description: description,
		CategoryID:  categoryID,
		Type:        model.DirectionExpense,
		Amount:      decimal.RequireFromString(amount),
	}
}

// Income builds an income input dated on the given day.
func Income(date model.Date, categoryID int64, amount, description string) ledger.TransactionInput {
	in := Expense(date, categoryID, amount, description)
	in.Type = model.DirectionIncome
	return in
}

// RandomTransactions generates n transactions across cats. The same seed
// always yields the same set.
func RandomTransactions(seed uint64, n int, cats []model.Category) []model.Transaction {
	f := gofakeit.New(seed)
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)

	out := make([]model.Transaction, 0, n)
	for i := range n {
		cat := cats[f.IntRange(0, len(cats)-1)]
		typ := model.DirectionExpense
		if f.Bool() {
			typ = model.DirectionIncome
		}
		out = append(out, model.Transaction{
			ID:          int64(i + 1),
			Date:        model.DateOf(f.DateRange(start, end)),
			Description: f.Company(),
			CategoryID:  cat.ID,
			Type:        typ,
			Amount:      decimal.NewFromFloat(f.Float64Range(0.01, 5000)).Round(2),
			Notes:       f.Word(),
			CreatedAt:   start,
		})
	}
	return out
}
