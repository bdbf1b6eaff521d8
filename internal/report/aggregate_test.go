package report_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/the-budget-must-balance/internal/model"
	"github.com/Veraticus/the-budget-must-balance/internal/report"
	"github.com/Veraticus/the-budget-must-balance/internal/testutil"
)

type staticCategories []model.Category

func (s staticCategories) Resolve(id int64) model.Category {
	for _, c := range s {
		if c.ID == id {
			return c
		}
	}
	return s[0]
}

var salaryFood = staticCategories{
	{ID: 1, Name: "Salary", Type: model.DirectionIncome},
	{ID: 2, Name: "Food", Type: model.DirectionExpense},
}

func tx(date string, categoryID int64, typ model.Direction, amount string) model.Transaction {
	d, err := model.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return model.Transaction{Date: d, CategoryID: categoryID, Type: typ, Amount: decimal.RequireFromString(amount)}
}

func TestSalaryFoodScenario(t *testing.T) {
	txns := []model.Transaction{
		tx("2024-01-01", 1, model.DirectionIncome, "1000"),
		tx("2024-01-05", 2, model.DirectionExpense, "200"),
	}

	totals := report.CalculateTotals(txns)
	assert.Equal(t, "1000", totals.Income.String())
	assert.Equal(t, "200", totals.Expense.String())
	assert.Equal(t, "800", totals.Balance.String())
	assert.Equal(t, "80.00", report.SavingsRate(totals).StringFixed(2))
}

func TestSavingsRate(t *testing.T) {
	tests := []struct {
		name    string
		income  string
		expense string
		want    string
	}{
		{name: "no income", income: "0", expense: "50", want: "0"},
		{name: "nothing at all", income: "0", expense: "0", want: "0"},
		{name: "rounds to two places", income: "3", expense: "1", want: "66.67"},
		{name: "overspent", income: "100", expense: "150", want: "-50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			income := decimal.RequireFromString(tt.income)
			expense := decimal.RequireFromString(tt.expense)
			rate := report.SavingsRate(report.Totals{Income: income, Expense: expense, Balance: income.Sub(expense)})
			assert.Equal(t, tt.want, rate.String())
		})
	}
}

func TestCategoryBreakdown(t *testing.T) {
	cats := staticCategories{
		{ID: 1, Name: "Salary", Type: model.DirectionIncome},
		{ID: 2, Name: "Food", Type: model.DirectionExpense},
		{ID: 3, Name: "Food", Type: model.DirectionExpense},
		{ID: 4, Name: "Rent", Type: model.DirectionExpense},
	}
	txns := []model.Transaction{
		tx("2024-01-01", 1, model.DirectionIncome, "1000"),
		tx("2024-01-02", 2, model.DirectionExpense, "10"),
		tx("2024-01-03", 3, model.DirectionExpense, "15.5"),
		tx("2024-01-04", 4, model.DirectionExpense, "500"),
		tx("2024-01-05", 42, model.DirectionExpense, "5"),
	}

	b := report.CategoryBreakdown(txns, cats)
	require.Len(t, b, 3)
	assert.Equal(t, "25.5", b["Food"].String(), "same-named categories share a bucket")
	assert.Equal(t, "500", b["Rent"].String())
	assert.Equal(t, "5", b["Salary"].String(), "dangling ids use the first category")

	rows := report.BreakdownRows(b, report.CalculateTotals(txns))
	require.Len(t, rows, 3)
	assert.Equal(t, "Rent", rows[0].Name)
	assert.Equal(t, "94.25", rows[0].Share.String())
	assert.Equal(t, "Food", rows[1].Name)
	assert.Equal(t, "Salary", rows[2].Name)
}

func TestBreakdownRows_NoExpense(t *testing.T) {
	rows := report.BreakdownRows(report.Breakdown{}, report.Totals{})
	assert.Empty(t, rows)
}

func TestCalculateTrend(t *testing.T) {
	txns := []model.Transaction{
		tx("2024-01-10", 2, model.DirectionExpense, "5"),
		tx("2023-12-31", 1, model.DirectionIncome, "100"),
		tx("2024-01-10", 1, model.DirectionIncome, "20"),
		tx("2024-01-10", 2, model.DirectionExpense, "7"),
		tx("2024-01-02", 2, model.DirectionExpense, "3"),
	}

	trend := report.CalculateTrend(txns)
	assert.Equal(t, []string{"2023-12-31", "2024-01-02", "2024-01-10"}, trend.Labels())
	assert.Equal(t, model.NewDate(2023, time.December, 31), trend.Dates[0])
	require.Len(t, trend.Income, 3)
	require.Len(t, trend.Expense, 3)
	assert.Equal(t, "100", trend.Income[0].String())
	assert.Equal(t, "0", trend.Expense[0].String())
	assert.Equal(t, "3", trend.Expense[1].String())
	assert.Equal(t, "20", trend.Income[2].String())
	assert.Equal(t, "12", trend.Expense[2].String())

	assert.Empty(t, report.CalculateTrend(nil).Dates)
}

func TestTotalsLaws(t *testing.T) {
	cats := staticCategories(model.DefaultCategories())

	for seed := uint64(1); seed <= 25; seed++ {
		txns := testutil.RandomTransactions(seed, int(seed)*8, cats)
		totals := report.CalculateTotals(txns)

		assert.True(t, totals.Balance.Equal(totals.Income.Sub(totals.Expense)), "seed %d: balance law", seed)

		sum := decimal.Zero
		for _, amount := range report.CategoryBreakdown(txns, cats) {
			assert.False(t, amount.IsNegative(), "seed %d: negative bucket", seed)
			sum = sum.Add(amount)
		}
		assert.True(t, sum.Equal(totals.Expense), "seed %d: breakdown sums to %s, expense is %s", seed, sum, totals.Expense)

		trend := report.CalculateTrend(txns)
		trendIncome := decimal.Zero
		for _, v := range trend.Income {
			trendIncome = trendIncome.Add(v)
		}
		assert.True(t, trendIncome.Equal(totals.Income), "seed %d: trend income", seed)
	}
}

func TestBuildDashboard(t *testing.T) {
	txns := []model.Transaction{
		tx("2024-01-01", 1, model.DirectionIncome, "1000"),
		tx("2024-01-05", 2, model.DirectionExpense, "200"),
		tx("2024-01-06", 2, model.DirectionExpense, "50"),
	}

	d := report.BuildDashboard(txns, salaryFood, 2)
	assert.Equal(t, "750", d.Totals.Balance.String())
	assert.Equal(t, "75", d.SavingsRate.String())
	require.Len(t, d.Breakdown, 1)
	assert.Equal(t, "100", d.Breakdown[0].Share.String())
	assert.Len(t, d.Trend.Dates, 3)
	require.Len(t, d.Recent, 2)
	assert.Equal(t, txns[2], d.Recent[0])
	assert.Equal(t, txns[1], d.Recent[1])
}
