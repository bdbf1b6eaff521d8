// Package ledger is the in-memory bookkeeping engine: categories, transactions
// and budgets owned by a Store and mirrored to a key-value collaborator after
// every mutation.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/the-budget-must-balance/internal/common"
	"github.com/Veraticus/the-budget-must-balance/internal/model"
	"github.com/Veraticus/the-budget-must-balance/internal/service"
)

// Keys under which the ledger persists its state.
const (
	KeyTransactions = "transactions"
	KeyCategories   = "categories"
	KeyBudgets      = "budgets"
	KeyCurrency     = "currency"
	KeyDateFormat   = "dateFormat"
)

// Store owns every collection and the display settings for the lifetime of
// the process. Components mutate their own collection through it and call
// save afterwards.
type Store struct {
	kv           service.KeyValueStore
	now          func() time.Time
	settings     model.Settings
	transactions []model.Transaction
	categories   []model.Category
	budgets      []model.Budget
	lastID       int64
}

// NewStore creates an empty store. Call Load to read persisted state.
func NewStore(kv service.KeyValueStore, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		kv:         kv,
		now:        now,
		settings:   model.DefaultSettings(),
		categories: model.DefaultCategories(),
	}
}

// Load reads every persisted collection and setting. Missing or malformed
// values fall back to defaults; read failures are logged, never returned.
func (s *Store) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.transactions = nil
	if !s.loadJSON(ctx, KeyTransactions, &s.transactions) || s.transactions == nil {
		s.transactions = []model.Transaction{}
	}

	s.budgets = nil
	if !s.loadJSON(ctx, KeyBudgets, &s.budgets) || s.budgets == nil {
		s.budgets = []model.Budget{}
	}

	s.categories = nil
	if !s.loadJSON(ctx, KeyCategories, &s.categories) || len(s.categories) == 0 {
		s.categories = model.DefaultCategories()
	}

	s.settings = model.DefaultSettings()
	if raw, ok := s.loadRaw(ctx, KeyCurrency); ok {
		if c, err := model.ParseCurrency(raw); err == nil {
			s.settings.Currency = c
		} else {
			slog.Warn("ignoring persisted currency", "value", raw, "error", err)
		}
	}
	if raw, ok := s.loadRaw(ctx, KeyDateFormat); ok {
		if f, err := model.ParseDateFormat(raw); err == nil {
			s.settings.DateFormat = f
		} else {
			slog.Warn("ignoring persisted date format", "value", raw, "error", err)
		}
	}

	s.resetLastID()

	slog.Debug("loaded ledger",
		"transactions", len(s.transactions),
		"categories", len(s.categories),
		"budgets", len(s.budgets))
	return nil
}

func (s *Store) loadRaw(ctx context.Context, key string) (string, bool) {
	value, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		slog.Warn("failed to read persisted value", "key", key, "error", err)
		return "", false
	}
	if !ok {
		return "", false
	}
	return string(value), true
}

func (s *Store) loadJSON(ctx context.Context, key string, dst any) bool {
	raw, ok := s.loadRaw(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		slog.Warn("ignoring malformed persisted value", "key", key, "error", err)
		return false
	}
	return true
}

// Save writes the three collections. Every key is attempted even when an
// earlier one fails.
func (s *Store) Save(ctx context.Context) error {
	var errs []error
	for _, entry := range []struct {
		value any
		key   string
	}{
		{s.transactions, KeyTransactions},
		{s.categories, KeyCategories},
		{s.budgets, KeyBudgets},
	} {
		data, err := json.Marshal(entry.value)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to encode %s: %w", entry.key, err))
			continue
		}
		if err := s.kv.Set(ctx, entry.key, data); err != nil {
			errs = append(errs, fmt.Errorf("failed to save %s: %w", entry.key, err))
		}
	}
	return errors.Join(errs...)
}

// Settings returns the current display settings.
func (s *Store) Settings() model.Settings {
	return s.settings
}

// SetCurrency validates and persists the display currency.
func (s *Store) SetCurrency(ctx context.Context, code string) error {
	c, err := model.ParseCurrency(code)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	s.settings.Currency = c
	if err := s.kv.Set(ctx, KeyCurrency, []byte(c)); err != nil {
		return fmt.Errorf("failed to save currency: %w", err)
	}
	return nil
}

// SetDateFormat validates and persists the display date format.
func (s *Store) SetDateFormat(ctx context.Context, format string) error {
	f, err := model.ParseDateFormat(format)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	s.settings.DateFormat = f
	if err := s.kv.Set(ctx, KeyDateFormat, []byte(f)); err != nil {
		return fmt.Errorf("failed to save date format: %w", err)
	}
	return nil
}

// Now returns the current time according to the store's clock.
func (s *Store) Now() time.Time {
	return s.now()
}

// Transactions returns a copy of the ledger in entry order.
func (s *Store) Transactions() []model.Transaction {
	return append([]model.Transaction(nil), s.transactions...)
}

// Categories returns a copy of the registry in insertion order.
func (s *Store) Categories() []model.Category {
	return append([]model.Category(nil), s.categories...)
}

// Budgets returns a copy of all budgets in insertion order.
func (s *Store) Budgets() []model.Budget {
	return append([]model.Budget(nil), s.budgets...)
}

// nextID derives a fresh id from the clock in milliseconds, bumping past the
// last issued id so ids stay unique and increasing.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) resetLastID() {
	s.lastID = 0
	for _, t := range s.transactions {
		s.lastID = max(s.lastID, t.ID)
	}
	for _, c := range s.categories {
		s.lastID = max(s.lastID, c.ID)
	}
	for _, b := range s.budgets {
		s.lastID = max(s.lastID, b.ID)
	}
}

// persist saves after a mutation and wraps failures with the operation name.
// The in-memory change is kept either way.
func (s *Store) persist(ctx context.Context, op string) error {
	if err := s.Save(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
