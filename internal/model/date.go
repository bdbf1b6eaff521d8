package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO form used to persist and export dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time component.
type Date struct {
	time.Time
}

// NewDate creates a Date at UTC midnight.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf drops the clock part of t, keeping its calendar date in t's location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// String returns the ISO form of the date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// Quarter returns the zero-based quarter of the year (0-3).
func (d Date) Quarter() int {
	return (int(d.Month()) - 1) / 3
}

// MarshalJSON writes the date as a YYYY-MM-DD string. It shadows the
// RFC 3339 encoding promoted from time.Time.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON reads a YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("invalid date: %w", err)
	}
	return d.UnmarshalText([]byte(s))
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DateRange selects transactions relative to the current date.
type DateRange string

const (
	// RangeAll does not filter.
	RangeAll DateRange = "all"
	// RangeMonth keeps the current calendar month.
	RangeMonth DateRange = "month"
	// RangeQuarter keeps the current calendar quarter.
	RangeQuarter DateRange = "quarter"
	// RangeYear keeps the current calendar year.
	RangeYear DateRange = "year"
)

// ParseDateRange converts user input into a DateRange.
func ParseDateRange(s string) (DateRange, error) {
	switch r := DateRange(strings.ToLower(strings.TrimSpace(s))); r {
	case RangeAll, RangeMonth, RangeQuarter, RangeYear:
		return r, nil
	case "":
		return RangeAll, nil
	default:
		return "", fmt.Errorf("unknown date range %q (want all, month, quarter or year)", s)
	}
}

// Contains reports whether d falls in the window r anchored at now.
func (r DateRange) Contains(d Date, now time.Time) bool {
	switch r {
	case RangeMonth:
		return d.Year() == now.Year() && d.Month() == now.Month()
	case RangeQuarter:
		return d.Year() == now.Year() && d.Quarter() == DateOf(now).Quarter()
	case RangeYear:
		return d.Year() == now.Year()
	default:
		return true
	}
}
