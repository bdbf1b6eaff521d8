package model

import (
	"fmt"
	"strings"
)

// Currency is a supported display currency.
type Currency string

// Supported currencies.
const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"
)

// Currencies lists every supported currency in display order.
var Currencies = []Currency{CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyJPY}

// Valid reports whether c is supported.
func (c Currency) Valid() bool {
	for _, known := range Currencies {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCurrency validates a currency code, ignoring case.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unsupported currency %q", s)
	}
	return c, nil
}

// DateFormat is a supported display format for dates.
type DateFormat string

// Supported date formats.
const (
	DateFormatUS  DateFormat = "MM/DD/YYYY"
	DateFormatEU  DateFormat = "DD/MM/YYYY"
	DateFormatISO DateFormat = "YYYY-MM-DD"
)

// DateFormats lists every supported date format.
var DateFormats = []DateFormat{DateFormatUS, DateFormatEU, DateFormatISO}

// Valid reports whether f is supported.
func (f DateFormat) Valid() bool {
	for _, known := range DateFormats {
		if f == known {
			return true
		}
	}
	return false
}

// ParseDateFormat validates a date format, ignoring case.
func ParseDateFormat(s string) (DateFormat, error) {
	f := DateFormat(strings.ToUpper(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("unsupported date format %q", s)
	}
	return f, nil
}

// Settings holds display preferences. They never change stored values.
type Settings struct {
	Currency   Currency
	DateFormat DateFormat
}

// DefaultSettings returns the settings used when nothing is persisted.
func DefaultSettings() Settings {
	return Settings{Currency: CurrencyUSD, DateFormat: DateFormatUS}
}
