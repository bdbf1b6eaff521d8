// Package report derives dashboard figures from a set of transactions. Every
// function is pure: inputs are never modified and nothing is persisted.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/the-budget-must-balance/internal/model"
)

var hundred = decimal.NewFromInt(100)

// CategoryResolver maps a category id to a category, falling back for
// unknown ids.
type CategoryResolver interface {
	Resolve(id int64) model.Category
}

// Totals summarizes income and expense.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// Breakdown maps a category name to its summed expense.
type Breakdown map[string]decimal.Decimal

// BreakdownRow is one category line of a breakdown table.
type BreakdownRow struct {
	Name   string
	Amount decimal.Decimal
	Share  decimal.Decimal
}

// Trend is a date-ordered series of daily income and expense sums. The three
// slices are parallel.
type Trend struct {
	Dates   []model.Date
	Income  []decimal.Decimal
	Expense []decimal.Decimal
}

// CalculateTotals sums income and expense and derives the balance.
func CalculateTotals(txns []model.Transaction) Totals {
	income, expense := decimal.Zero, decimal.Zero
	for _, t := range txns {
		switch t.Type {
		case model.DirectionIncome:
			income = income.Add(t.Amount)
		case model.DirectionExpense:
			expense = expense.Add(t.Amount)
		}
	}
	return Totals{Income: income, Expense: expense, Balance: income.Sub(expense)}
}

// SavingsRate returns the balance as a percentage of income rounded to two
// places, or zero when there is no income.
func SavingsRate(t Totals) decimal.Decimal {
	if t.Income.IsZero() {
		return decimal.Zero
	}
	return t.Balance.Div(t.Income).Mul(hundred).Round(2)
}

// CategoryBreakdown sums expenses per category name. Categories sharing a
// name share a bucket.
func CategoryBreakdown(txns []model.Transaction, categories CategoryResolver) Breakdown {
	out := make(Breakdown)
	for _, t := range txns {
		if t.Type != model.DirectionExpense {
			continue
		}
		name := categories.Resolve(t.CategoryID).Name
		if sum, ok := out[name]; ok {
			out[name] = sum.Add(t.Amount)
		} else {
			out[name] = t.Amount
		}
	}
	return out
}

// BreakdownRows orders a breakdown by amount, largest first, and computes
// each category's share of total expense.
func BreakdownRows(b Breakdown, totals Totals) []BreakdownRow {
	rows := make([]BreakdownRow, 0, len(b))
	for name, amount := range b {
		share := decimal.Zero
		if !totals.Expense.IsZero() {
			share = amount.Div(totals.Expense).Mul(hundred).Round(2)
		}
		rows = append(rows, BreakdownRow{Name: name, Amount: amount, Share: share})
	}
	sort.Slice(rows, func(i, j int) bool {
		if c := rows[i].Amount.Cmp(rows[j].Amount); c != 0 {
			return c > 0
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

// CalculateTrend sums income and expense per exact date in ascending order.
func CalculateTrend(txns []model.Transaction) Trend {
	type day struct {
		date    model.Date
		income  decimal.Decimal
		expense decimal.Decimal
	}
	days := make(map[string]*day)
	for _, t := range txns {
		key := t.Date.String()
		d, ok := days[key]
		if !ok {
			d = &day{date: t.Date, income: decimal.Zero, expense: decimal.Zero}
			days[key] = d
		}
		switch t.Type {
		case model.DirectionIncome:
			d.income = d.income.Add(t.Amount)
		case model.DirectionExpense:
			d.expense = d.expense.Add(t.Amount)
		}
	}

	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	trend := Trend{
		Dates:   make([]model.Date, len(keys)),
		Income:  make([]decimal.Decimal, len(keys)),
		Expense: make([]decimal.Decimal, len(keys)),
	}
	for i, k := range keys {
		trend.Dates[i] = days[k].date
		trend.Income[i] = days[k].income
		trend.Expense[i] = days[k].expense
	}
	return trend
}

// Labels returns the trend dates in ISO form.
func (t Trend) Labels() []string {
	labels := make([]string, len(t.Dates))
	for i, d := range t.Dates {
		labels[i] = d.String()
	}
	return labels
}
