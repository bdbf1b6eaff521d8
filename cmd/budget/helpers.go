package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/the-budget-must-balance/internal/common"
	"github.com/Veraticus/the-budget-must-balance/internal/config"
	"github.com/Veraticus/the-budget-must-balance/internal/format"
	"github.com/Veraticus/the-budget-must-balance/internal/ledger"
	"github.com/Veraticus/the-budget-must-balance/internal/model"
	"github.com/Veraticus/the-budget-must-balance/internal/storage"
)

// session is an open ledger for the duration of one command.
type session struct {
	tracker *ledger.Tracker
	store   *storage.SQLiteStorage
	cfg     *config.Config
	close   func()
}

// formatter returns a formatter for the current settings.
func (s *session) formatter() format.Formatter {
	return format.New(s.tracker.Store.Settings())
}

// openSession loads the configuration, opens and migrates the database and
// loads the ledger from it.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	tracker, err := ledger.Open(ctx, store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &session{
		tracker: tracker,
		store:   store,
		cfg:     cfg,
		close: func() {
			if err := store.Close(); err != nil {
				slog.Warn("Failed to close database", "error", err)
			}
		},
	}, nil
}

// parseID parses a numeric entity id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", common.ErrValidation, arg)
	}
	return id, nil
}

// findCategory accepts a category id or a case-insensitive name.
func findCategory(tr *ledger.Tracker, arg string) (model.Category, error) {
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		if c, ok := tr.Categories.Get(id); ok {
			return c, nil
		}
	}
	for _, c := range tr.Categories.List() {
		if strings.EqualFold(c.Name, strings.TrimSpace(arg)) {
			return c, nil
		}
	}
	return model.Category{}, common.NewUserError(
		fmt.Sprintf("No category matches %q", arg),
		fmt.Errorf("category %q: %w", arg, common.ErrNotFound))
}

// parseDirection validates an income/expense flag value.
func parseDirection(s string) (model.Direction, error) {
	d, ok := model.ParseDirection(strings.ToLower(strings.TrimSpace(s)))
	if !ok {
		return "", fmt.Errorf("%w: type must be income or expense, got %q", common.ErrValidation, s)
	}
	return d, nil
}

// signedAmount renders an amount with a sign that reflects its direction.
func signedAmount(f format.Formatter, t model.Transaction) string {
	signed := t.Signed()
	if signed.IsNegative() {
		return "-" + f.Money(signed.Neg())
	}
	return "+" + f.Money(signed)
}

// notFound reports a missing entity with a friendly message.
func notFound(kind string, id int64) error {
	return common.NewUserError(
		fmt.Sprintf("No %s with ID %d", kind, id),
		fmt.Errorf("%s %d: %w", kind, id, common.ErrNotFound))
}
