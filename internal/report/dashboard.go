package report

import (
	"github.com/shopspring/decimal"

	"github.com/Veraticus/the-budget-must-balance/internal/ledger"
	"github.com/Veraticus/the-budget-must-balance/internal/model"
)

// Dashboard gathers every figure shown on the overview screen.
type Dashboard struct {
	Totals      Totals
	SavingsRate decimal.Decimal
	Breakdown   []BreakdownRow
	Trend       Trend
	Recent      []model.Transaction
}

// BuildDashboard computes the dashboard for txns. Recent holds up to recent
// transactions, most recently entered first.
func BuildDashboard(txns []model.Transaction, categories CategoryResolver, recent int) Dashboard {
	totals := CalculateTotals(txns)
	return Dashboard{
		Totals:      totals,
		SavingsRate: SavingsRate(totals),
		Breakdown:   BreakdownRows(CategoryBreakdown(txns, categories), totals),
		Trend:       CalculateTrend(txns),
		Recent:      ledger.Recent(txns, recent),
	}
}
