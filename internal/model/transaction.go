package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single income or expense entry in the ledger.
// Amount is always a magnitude; Type decides the sign when aggregating.
type Transaction struct {
	CreatedAt   time.Time       `json:"createdAt"`
	Date        Date            `json:"date" validate:"required"`
	Description string          `json:"description" validate:"notblank"`
	Type        Direction       `json:"type" validate:"oneof=income expense"`
	Notes       string          `json:"notes"`
	Amount      decimal.Decimal `json:"amount" validate:"gte=0"`
	ID          int64           `json:"id" validate:"required"`
	CategoryID  int64           `json:"categoryId" validate:"required"`
}

// Signed returns the amount with its sign applied: positive for income,
// negative for expense.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == DirectionIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}
