package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// MinTemperatureC is the lowest synthesized temperature (inclusive)
	MinTemperatureC = -20

	// MaxTemperatureC is the upper bound of synthesized temperatures (exclusive)
	MaxTemperatureC = 55
)

// Summaries is the forecast vocabulary ordered from coldest to hottest
var Summaries = [...]string{
	"Freezing", "Bracing", "Chilly", "Cool", "Mild", "Warm", "Balmy", "Hot", "Sweltering", "Scorching",
}

var fahrenheitDivisor = decimal.RequireFromString("0.5556")

// Forecast represents the weather for one calendar date
type Forecast struct {
	Date         time.Time // Date the record describes, opaque to the store
	TemperatureC int       // Temperature in degrees Celsius
	Summary      string    // Short label, usually one of Summaries
}

// TemperatureF converts TemperatureC to Fahrenheit, truncating toward zero
func (f Forecast) TemperatureF() int {
	return 32 + int(decimal.NewFromInt(int64(f.TemperatureC)).Div(fahrenheitDivisor).IntPart())
}

// IsSummary reports whether s belongs to the forecast vocabulary
func IsSummary(s string) bool {
	for _, summary := range Summaries {
		if summary == s {
			return true
		}
	}
	return false
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
	"1/2/2006 3:04:05 PM",
	"1/2/2006 15:04:05",
	"1/2/2006",
}

// ParseTime parses a caller supplied timestamp in any of the accepted layouts
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrMissingDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// ParseDate parses s like ParseTime and normalizes the result to its calendar day
func ParseDate(s string) (time.Time, error) {
	t, err := ParseTime(s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

// Day truncates t to midnight UTC of the calendar day written in t.
// The wall clock date is kept as is, no zone conversion happens.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayKey returns the storage key for the calendar day of t
func DayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}
