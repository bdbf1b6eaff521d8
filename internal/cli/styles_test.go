package cli

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/the-budget-must-balance/internal/model"
)

func TestRenderBudgetBar(t *testing.T) {
	tests := []struct {
		name       string
		percentage string
		filled     int
	}{
		{name: "empty", percentage: "0", filled: 0},
		{name: "half", percentage: "50", filled: 10},
		{name: "rounds down", percentage: "79.99", filled: 15},
		{name: "full", percentage: "100", filled: 20},
		{name: "capped", percentage: "999999", filled: 20},
		{name: "negative", percentage: "-5", filled: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := RenderBudgetBar(decimal.RequireFromString(tt.percentage), model.BudgetOK, 20)
			assert.Equal(t, tt.filled, strings.Count(bar, "█"))
			assert.Equal(t, 20-tt.filled, strings.Count(bar, "░"))
		})
	}

	assert.Empty(t, RenderBudgetBar(decimal.NewFromInt(50), model.BudgetOK, 0))
}

func TestLevelStyle(t *testing.T) {
	assert.Equal(t, ErrorStyle.GetForeground(), LevelStyle(model.BudgetExceeded).GetForeground())
	assert.Equal(t, WarningStyle.GetForeground(), LevelStyle(model.BudgetWarning).GetForeground())
	assert.Equal(t, SuccessStyle.GetForeground(), LevelStyle(model.BudgetOK).GetForeground())
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(
		[]string{"ID", "Name"},
		[][]string{{"1", "Salary"}, {"10", "Education"}},
	)

	for _, want := range []string{"ID", "Name", "Salary", "Education", "10"} {
		assert.Contains(t, out, want)
	}
	lines := strings.Split(out, "\n")
	assert.GreaterOrEqual(t, len(lines), 3)
}

func TestFormatHelpers(t *testing.T) {
	assert.Contains(t, FormatSuccess("saved"), "saved")
	assert.Contains(t, FormatError("boom"), ErrorIcon)
	assert.Contains(t, FormatTitle("Dashboard"), LedgerIcon)
	assert.Contains(t, RenderBox("Totals", "Income $10.00"), "Income $10.00")
}
