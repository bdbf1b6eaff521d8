// Package format renders ledger values for display according to the user's
// settings. Stored values are never affected.
package format

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/the-budget-must-balance/internal/model"
)

var dateLayouts = map[model.DateFormat]string{
	model.DateFormatUS:  "01/02/2006",
	model.DateFormatEU:  "02/01/2006",
	model.DateFormatISO: model.DateLayout,
}

// Formatter formats amounts, dates and percentages.
type Formatter struct {
	settings model.Settings
}

// New creates a formatter for settings.
func New(settings model.Settings) Formatter {
	return Formatter{settings: settings}
}

func (f Formatter) currency() *money.Currency {
	// money.New never returns a nil currency, even for unknown codes.
	return money.New(0, string(f.settings.Currency)).Currency()
}

// Money renders an amount in the configured currency, e.g. "$1,234.50".
func (f Formatter) Money(amount decimal.Decimal) string {
	cur := f.currency()
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// Symbol returns the currency symbol.
func (f Formatter) Symbol() string {
	return f.currency().Grapheme
}

// Date renders d in the configured date format.
func (f Formatter) Date(d model.Date) string {
	if d.IsZero() {
		return ""
	}
	layout, ok := dateLayouts[f.settings.DateFormat]
	if !ok {
		layout = dateLayouts[model.DateFormatUS]
	}
	return d.Format(layout)
}

// Percent renders a percentage with two decimals, e.g. "80.00%".
func (f Formatter) Percent(p decimal.Decimal) string {
	return p.StringFixed(2) + "%"
}

// TrendLabel renders a short chart label such as "Jan 5".
func (f Formatter) TrendLabel(d model.Date) string {
	return d.Format("Jan 2")
}
