package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/the-budget-must-balance/internal/common"
	"github.com/Veraticus/the-budget-must-balance/internal/ledger"
	"github.com/Veraticus/the-budget-must-balance/internal/model"
	"github.com/Veraticus/the-budget-must-balance/internal/storage"
	"github.com/Veraticus/the-budget-must-balance/internal/testutil"
)

func budgetInput(categoryID int64, amount string, period model.Period) ledger.BudgetInput {
	return ledger.BudgetInput{
		CategoryID: categoryID,
		Amount:     decimal.RequireFromString(amount),
		Period:     period,
	}
}

func TestBudgetEngine_CreateDefaultsThreshold(t *testing.T) {
	ctx := context.Background()
	tr, _ := testutil.NewTracker(t)

	b, err := tr.Budgets.Create(ctx, budgetInput(3, "100", model.PeriodMonthly))
	require.NoError(t, err)
	assert.True(t, b.AlertThreshold.Equal(decimal.NewFromInt(80)))
	assert.Equal(t, testutil.Today, b.CreatedAt)

	threshold := decimal.NewFromInt(50)
	in := budgetInput(3, "300", model.PeriodYearly)
	in.AlertThreshold = &threshold
	second, err := tr.Budgets.Create(ctx, in)
	require.NoError(t, err)
	assert.True(t, second.AlertThreshold.Equal(threshold))

	assert.Equal(t, []model.Budget{b, second}, tr.Budgets.List(), "several budgets may share a category")
}

func TestBudgetEngine_Validation(t *testing.T) {
	ctx := context.Background()
	over := decimal.NewFromInt(101)

	tests := []struct {
		in   ledger.BudgetInput
		name string
	}{
		{name: "zero amount", in: budgetInput(3, "0", model.PeriodMonthly)},
		{name: "negative amount", in: budgetInput(3, "-5", model.PeriodMonthly)},
		{name: "unknown period", in: budgetInput(3, "10", "weekly")},
		{name: "missing category", in: budgetInput(0, "10", model.PeriodMonthly)},
		{name: "threshold above 100", in: ledger.BudgetInput{CategoryID: 3, Amount: decimal.NewFromInt(10), Period: model.PeriodMonthly, AlertThreshold: &over}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, kv := testutil.NewTracker(t)
			_, err := tr.Budgets.Create(ctx, tt.in)
			require.ErrorIs(t, err, common.ErrValidation)
			assert.Empty(t, tr.Budgets.List())
			assert.Zero(t, kv.Writes())
		})
	}
}

func TestBudgetEngine_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	tr, kv := testutil.NewTracker(t)

	threshold := decimal.NewFromInt(60)
	in := budgetInput(3, "100", model.PeriodMonthly)
	in.AlertThreshold = &threshold
	b, err := tr.Budgets.Create(ctx, in)
	require.NoError(t, err)

	require.NoError(t, tr.Budgets.Update(ctx, b.ID, budgetInput(4, "250", model.PeriodQuarterly)))
	got, ok := tr.Budgets.Get(b.ID)
	require.True(t, ok)
	assert.Equal(t, int64(4), got.CategoryID)
	assert.Equal(t, model.PeriodQuarterly, got.Period)
	assert.True(t, got.AlertThreshold.Equal(threshold), "nil threshold keeps the current one")

	require.NoError(t, tr.Budgets.Delete(ctx, b.ID))
	assert.Empty(t, tr.Budgets.List())

	writes := kv.Writes()
	require.ErrorIs(t, tr.Budgets.Update(ctx, b.ID, in), common.ErrNotFound)
	require.ErrorIs(t, tr.Budgets.Delete(ctx, b.ID), common.ErrNotFound)
	assert.Equal(t, writes, kv.Writes())
}

func TestBudgetEngine_SpentAmount(t *testing.T) {
	tr, _ := testutil.NewTracker(t)
	testutil.MustAdd(t, tr, testutil.Expense(jan(3), 3, "20", "In month"))
	testutil.MustAdd(t, tr, testutil.Expense(model.NewDate(2024, time.February, 20), 3, "30", "Same quarter"))
	testutil.MustAdd(t, tr, testutil.Expense(model.NewDate(2024, time.July, 1), 3, "40", "Same year"))
	testutil.MustAdd(t, tr, testutil.Expense(model.NewDate(2023, time.December, 31), 3, "50", "Last year"))
	testutil.MustAdd(t, tr, testutil.Income(jan(4), 3, "500", "Refund"))
	testutil.MustAdd(t, tr, testutil.Expense(jan(4), 4, "70", "Other category"))

	assert.Equal(t, "20", tr.Budgets.SpentAmount(3, model.PeriodMonthly).String())
	assert.Equal(t, "50", tr.Budgets.SpentAmount(3, model.PeriodQuarterly).String())
	assert.Equal(t, "90", tr.Budgets.SpentAmount(3, model.PeriodYearly).String())
	assert.Equal(t, "0", tr.Budgets.SpentAmount(10, model.PeriodYearly).String())
}

func TestBudgetEngine_StatusBoundaries(t *testing.T) {
	tests := []struct {
		spent string
		want  model.BudgetLevel
	}{
		{spent: "0", want: model.BudgetOK},
		{spent: "79.99", want: model.BudgetOK},
		{spent: "80.00", want: model.BudgetWarning},
		{spent: "99.99", want: model.BudgetWarning},
		{spent: "100.00", want: model.BudgetExceeded},
		{spent: "250", want: model.BudgetExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.spent, func(t *testing.T) {
			tr, _ := testutil.NewTracker(t)
			if tt.spent != "0" {
				testutil.MustAdd(t, tr, testutil.Expense(jan(10), 3, tt.spent, "Spend"))
			}
			b, err := tr.Budgets.Create(context.Background(), budgetInput(3, "100", model.PeriodMonthly))
			require.NoError(t, err)

			status := tr.Budgets.Status(b)
			assert.Equal(t, tt.want, status.Level)
			assert.True(t, status.Spent.Equal(decimal.RequireFromString(tt.spent)))
			assert.True(t, status.Percentage.Equal(decimal.RequireFromString(tt.spent)), "percentage of 100 equals spent")
			assert.True(t, status.Remaining.Equal(decimal.NewFromInt(100).Sub(status.Spent)))
		})
	}
}

func TestBudgetEngine_ZeroAmountSaturates(t *testing.T) {
	kv := storage.NewMemoryStorage()
	kv.Prime(ledger.KeyBudgets, []byte(`[{"id":20,"categoryId":3,"amount":"0","period":"monthly","alertThreshold":"80","createdAt":"2024-01-01T00:00:00Z"}]`))
	tr := testutil.OpenTracker(t, kv)

	statuses := tr.Budgets.Statuses()
	require.Len(t, statuses, 1)
	assert.Equal(t, model.BudgetExceeded, statuses[0].Level)
	assert.True(t, statuses[0].Percentage.Equal(ledger.SaturatedPercentage))
}

func TestLevel(t *testing.T) {
	threshold := decimal.NewFromInt(50)
	assert.Equal(t, model.BudgetOK, ledger.Level(decimal.NewFromInt(49), threshold))
	assert.Equal(t, model.BudgetWarning, ledger.Level(decimal.NewFromInt(50), threshold))
	assert.Equal(t, model.BudgetExceeded, ledger.Level(decimal.NewFromInt(100), threshold))
	assert.Equal(t, model.BudgetExceeded, ledger.Level(decimal.NewFromInt(100), decimal.NewFromInt(100)))
}
