package provider

import (
	"fmt"
	"strings"
	"time"

	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgtime"
	"github.com/shopspring/decimal"
)

// localLayout is the offset-less local wall clock time Amadeus returns.
const localLayout = "2006-01-02T15:04:05"

// parseLocalTime keeps the airport-local wall clock: values without an offset
// are read as UTC so Hour() and the calendar day match what travellers see.
func parseLocalTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(localLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", value, err)
	}
	return t, nil
}

// durationMinutes prefers the ISO duration and falls back to the wall clock
// difference when it is missing or malformed.
func durationMinutes(iso string, depart, arrive time.Time) int {
	if d := pkgtime.ParseISODuration(iso); d > 0 {
		return d
	}
	if depart.IsZero() || arrive.IsZero() || !arrive.After(depart) {
		return 0
	}
	return int(arrive.Sub(depart).Minutes())
}

func parseAmount(value string) (decimal.Decimal, error) {
	if strings.TrimSpace(value) == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", value, err)
	}
	return d, nil
}
