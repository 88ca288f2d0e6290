package pkgtime

import (
	"math"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// DayPart is one of the four fixed six-hour windows of a day.
type DayPart string

const (
	EarlyMorning DayPart = "early-morning"
	Morning      DayPart = "morning"
	Afternoon    DayPart = "afternoon"
	Evening      DayPart = "evening"
)

// DayParts lists every bucket in chronological order.
var DayParts = []DayPart{EarlyMorning, Morning, Afternoon, Evening}

// DayPartOf buckets t by its hour in t's own location. Buckets are
// right-exclusive: 06:00 is morning, 05:59 is early morning.
func DayPartOf(t time.Time) DayPart {
	switch h := t.Hour(); {
	case h < 6:
		return EarlyMorning
	case h < 12:
		return Morning
	case h < 18:
		return Afternoon
	default:
		return Evening
	}
}

func ParseDayPart(value string) (DayPart, bool) {
	switch DayPart(strings.ToLower(strings.TrimSpace(value))) {
	case EarlyMorning, "earlymorning", "early_morning":
		return EarlyMorning, true
	case Morning:
		return Morning, true
	case Afternoon:
		return Afternoon, true
	case Evening:
		return Evening, true
	default:
		return "", false
	}
}

// Label is the human readable name with its hour window.
func (d DayPart) Label() string {
	switch d {
	case EarlyMorning:
		return "Early Morning (00:00-06:00)"
	case Morning:
		return "Morning (06:00-12:00)"
	case Afternoon:
		return "Afternoon (12:00-18:00)"
	case Evening:
		return "Evening (18:00-24:00)"
	default:
		return string(d)
	}
}

// DateKey is the calendar day of t in t's own location, as YYYY-MM-DD.
func DateKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween counts whole calendar days from start to end.
func DaysBetween(start, end time.Time) int {
	s := StartOfDay(start)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, s.Location())
	return int(math.Round(e.Sub(s).Hours() / 24))
}
