package validation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/the-budget-must-balance/internal/common"
	"github.com/Veraticus/the-budget-must-balance/internal/model"
)

type entry struct {
	Date   model.Date      `json:"date" validate:"required"`
	Label  string          `json:"label" validate:"notblank"`
	Kind   string          `json:"kind" validate:"oneof=income expense"`
	Amount decimal.Decimal `json:"amount" validate:"gt=0"`
	Limit  decimal.Decimal `json:"limit" validate:"gte=0,lte=100"`
}

func validEntry() entry {
	return entry{
		Date:   model.NewDate(2024, time.January, 5),
		Label:  "Lunch",
		Kind:   "expense",
		Amount: decimal.RequireFromString("12.50"),
		Limit:  decimal.NewFromInt(80),
	}
}

func TestValidatorAcceptsValidStruct(t *testing.T) {
	require.NoError(t, New().Struct(validEntry()))
}

func TestValidatorMessages(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*entry)
		want   string
	}{
		{name: "zero date", mutate: func(e *entry) { e.Date = model.Date{} }, want: "date is required"},
		{name: "blank label", mutate: func(e *entry) { e.Label = " \t" }, want: "label is required"},
		{name: "bad kind", mutate: func(e *entry) { e.Kind = "transfer" }, want: "kind must be one of [income expense]"},
		{name: "zero amount", mutate: func(e *entry) { e.Amount = decimal.Zero }, want: "amount must be greater than 0"},
		{name: "negative limit", mutate: func(e *entry) { e.Limit = decimal.NewFromInt(-1) }, want: "limit must be at least 0"},
		{name: "limit over", mutate: func(e *entry) { e.Limit = decimal.RequireFromString("100.5") }, want: "limit must be at most 100"},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEntry()
			tt.mutate(&e)

			err := v.Struct(e)
			require.ErrorIs(t, err, common.ErrValidation)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidatorReportsEveryField(t *testing.T) {
	e := validEntry()
	e.Label = ""
	e.Amount = decimal.Zero

	err := New().Struct(e)
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "label is required; amount must be greater than 0")
}
