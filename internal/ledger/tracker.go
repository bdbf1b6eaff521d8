package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/the-budget-must-balance/internal/service"
	"github.com/Veraticus/the-budget-must-balance/internal/validation"
)

// Tracker ties the store to the components that operate on it. Each
// component owns one collection; all of them share the same store.
type Tracker struct {
	Store        *Store
	Categories   *CategoryRegistry
	Transactions *TransactionLedger
	Budgets      *BudgetEngine

	validator *validation.Validator
}

type options struct {
	now      func() time.Time
	classify CategoryClassifier
}

// Option configures a Tracker.
type Option func(*options)

// WithClock overrides the clock used for ids, creation times and date
// ranges.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithClassifier overrides how new categories get their direction.
func WithClassifier(c CategoryClassifier) Option {
	return func(o *options) {
		o.classify = c
	}
}

// Open loads persisted state from kv and returns a ready tracker.
func Open(ctx context.Context, kv service.KeyValueStore, opts ...Option) (*Tracker, error) {
	if kv == nil {
		return nil, errors.New("key-value store is required")
	}

	o := options{now: time.Now, classify: KeywordClassifier}
	for _, opt := range opts {
		opt(&o)
	}
	if o.now == nil {
		o.now = time.Now
	}
	if o.classify == nil {
		o.classify = KeywordClassifier
	}

	store := NewStore(kv, o.now)
	if err := store.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	v := validation.New()
	return &Tracker{
		Store:        store,
		Categories:   &CategoryRegistry{store: store, validator: v, classify: o.classify},
		Transactions: &TransactionLedger{store: store, validator: v},
		Budgets:      &BudgetEngine{store: store, validator: v},
		validator:    v,
	}, nil
}
