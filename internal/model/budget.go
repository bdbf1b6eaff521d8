package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period is the recurrence window a budget is measured over.
type Period string

const (
	// PeriodMonthly measures spending in the current calendar month.
	PeriodMonthly Period = "monthly"
	// PeriodQuarterly measures spending in the current calendar quarter.
	PeriodQuarterly Period = "quarterly"
	// PeriodYearly measures spending in the current calendar year.
	PeriodYearly Period = "yearly"
)

// Valid reports whether p is a known period.
func (p Period) Valid() bool {
	switch p {
	case PeriodMonthly, PeriodQuarterly, PeriodYearly:
		return true
	}
	return false
}

// Range maps a budget period onto the equivalent date range filter.
// Unknown periods do not restrict anything.
func (p Period) Range() DateRange {
	switch p {
	case PeriodMonthly:
		return RangeMonth
	case PeriodQuarterly:
		return RangeQuarter
	case PeriodYearly:
		return RangeYear
	default:
		return RangeAll
	}
}

// DefaultAlertThreshold is the percentage at which a budget turns to warning
// when no explicit threshold is given.
var DefaultAlertThreshold = decimal.NewFromInt(80)

// Budget is a spending limit for one category over a recurring period.
type Budget struct {
	CreatedAt      time.Time       `json:"createdAt"`
	Period         Period          `json:"period" validate:"oneof=monthly quarterly yearly"`
	Amount         decimal.Decimal `json:"amount" validate:"gt=0"`
	AlertThreshold decimal.Decimal `json:"alertThreshold" validate:"gte=0,lte=100"`
	ID             int64           `json:"id" validate:"required"`
	CategoryID     int64           `json:"categoryId" validate:"required"`
}

// BudgetLevel classifies how much of a budget has been used.
type BudgetLevel string

const (
	// BudgetOK means spending is below the alert threshold.
	BudgetOK BudgetLevel = "ok"
	// BudgetWarning means spending reached the alert threshold.
	BudgetWarning BudgetLevel = "warning"
	// BudgetExceeded means spending reached or passed the limit.
	BudgetExceeded BudgetLevel = "exceeded"
)
