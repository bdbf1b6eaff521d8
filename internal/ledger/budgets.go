package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/the-budget-must-balance/internal/common"
	"github.com/Veraticus/the-budget-must-balance/internal/model"
	"github.com/Veraticus/the-budget-must-balance/internal/validation"
)

// SaturatedPercentage is reported for budgets whose amount is zero.
var SaturatedPercentage = decimal.NewFromInt(999_999)

var hundred = decimal.NewFromInt(100)

// BudgetInput carries the user-editable fields of a budget. A nil
// AlertThreshold means the default on create and "unchanged" on update.
type BudgetInput struct {
	AlertThreshold *decimal.Decimal `json:"alertThreshold" validate:"omitempty,gte=0,lte=100"`
	Period         model.Period     `json:"period" validate:"oneof=monthly quarterly yearly"`
	Amount         decimal.Decimal  `json:"amount" validate:"gt=0"`
	CategoryID     int64            `json:"categoryId" validate:"required"`
}

// BudgetStatus is the evaluated state of a budget for its current period.
type BudgetStatus struct {
	Level      model.BudgetLevel
	Spent      decimal.Decimal
	Remaining  decimal.Decimal
	Percentage decimal.Decimal
	Budget     model.Budget
}

// BudgetEngine manages budgets and evaluates spending against them.
type BudgetEngine struct {
	store     *Store
	validator *validation.Validator
}

// Create adds a budget. The alert threshold defaults to 80 percent.
func (e *BudgetEngine) Create(ctx context.Context, in BudgetInput) (model.Budget, error) {
	if err := e.validator.Struct(in); err != nil {
		return model.Budget{}, err
	}

	b := model.Budget{
		ID:             e.store.nextID(),
		CategoryID:     in.CategoryID,
		Amount:         in.Amount,
		Period:         in.Period,
		AlertThreshold: model.DefaultAlertThreshold,
		CreatedAt:      e.store.Now().UTC(),
	}
	if in.AlertThreshold != nil {
		b.AlertThreshold = *in.AlertThreshold
	}
	e.store.budgets = append(e.store.budgets, b)

	slog.Debug("created budget", "id", b.ID, "category_id", b.CategoryID, "period", b.Period)
	return b, e.store.persist(ctx, "failed to save budget")
}

// Update replaces the editable fields of an existing budget.
func (e *BudgetEngine) Update(ctx context.Context, id int64, in BudgetInput) error {
	if err := e.validator.Struct(in); err != nil {
		return err
	}

	i := e.index(id)
	if i < 0 {
		return fmt.Errorf("budget %d: %w", id, common.ErrNotFound)
	}

	b := &e.store.budgets[i]
	b.CategoryID = in.CategoryID
	b.Amount = in.Amount
	b.Period = in.Period
	if in.AlertThreshold != nil {
		b.AlertThreshold = *in.AlertThreshold
	}

	slog.Debug("updated budget", "id", id)
	return e.store.persist(ctx, "failed to save budget")
}

// Delete removes a budget.
func (e *BudgetEngine) Delete(ctx context.Context, id int64) error {
	i := e.index(id)
	if i < 0 {
		return fmt.Errorf("budget %d: %w", id, common.ErrNotFound)
	}
	e.store.budgets = append(e.store.budgets[:i], e.store.budgets[i+1:]...)

	slog.Debug("deleted budget", "id", id)
	return e.store.persist(ctx, "failed to save budgets")
}

// Get returns the budget with id.
func (e *BudgetEngine) Get(id int64) (model.Budget, bool) {
	if i := e.index(id); i >= 0 {
		return e.store.budgets[i], true
	}
	return model.Budget{}, false
}

// List returns every budget in insertion order.
func (e *BudgetEngine) List() []model.Budget {
	return e.store.Budgets()
}

// SpentAmount sums the expenses recorded against categoryID inside the
// current window of period.
func (e *BudgetEngine) SpentAmount(categoryID int64, period model.Period) decimal.Decimal {
	now := e.store.Now()
	window := period.Range()

	spent := decimal.Zero
	for _, t := range e.store.transactions {
		if t.CategoryID != categoryID || t.Type != model.DirectionExpense {
			continue
		}
		if window.Contains(t.Date, now) {
			spent = spent.Add(t.Amount)
		}
	}
	return spent
}

// Status evaluates b against the spending in its current period.
func (e *BudgetEngine) Status(b model.Budget) BudgetStatus {
	spent := e.SpentAmount(b.CategoryID, b.Period)
	pct := Percentage(spent, b.Amount)
	return BudgetStatus{
		Budget:     b,
		Spent:      spent,
		Remaining:  b.Amount.Sub(spent),
		Percentage: pct,
		Level:      Level(pct, b.AlertThreshold),
	}
}

// Statuses evaluates every budget in insertion order.
func (e *BudgetEngine) Statuses() []BudgetStatus {
	out := make([]BudgetStatus, 0, len(e.store.budgets))
	for _, b := range e.store.budgets {
		out = append(out, e.Status(b))
	}
	return out
}

func (e *BudgetEngine) index(id int64) int {
	for i, b := range e.store.budgets {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// Percentage returns spent as a percentage of amount. A zero amount
// saturates to SaturatedPercentage.
func Percentage(spent, amount decimal.Decimal) decimal.Decimal {
	if amount.IsZero() {
		return SaturatedPercentage
	}
	return spent.Div(amount).Mul(hundred)
}

// Level classifies a spent percentage against an alert threshold.
func Level(percentage, threshold decimal.Decimal) model.BudgetLevel {
	switch {
	case percentage.GreaterThanOrEqual(hundred):
		return model.BudgetExceeded
	case percentage.GreaterThanOrEqual(threshold):
		return model.BudgetWarning
	default:
		return model.BudgetOK
	}
}
