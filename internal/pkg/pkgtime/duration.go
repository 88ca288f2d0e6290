package pkgtime

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var isoDurationRe = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?`)

// ParseISODuration converts the PT[nH][nM] subset of ISO-8601 durations into
// minutes. Missing components count as zero and input that does not match
// yields 0. A component too large for an int also counts as zero.
func ParseISODuration(value string) int {
	m := isoDurationRe.FindStringSubmatch(value)
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes
}

// FormatDuration renders minutes as "45m", "2h" or "2h 5m".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

func FormatLongDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d minutes", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d %s", hours, plural(hours, "hour"))
	}
	return fmt.Sprintf("%d %s %d %s", hours, plural(hours, "hour"), mins, plural(mins, "minute"))
}

// FormatCompactDuration renders minutes as h:mm.
func FormatCompactDuration(minutes int) string {
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

func FormatLayover(minutes int) string {
	return FormatDuration(minutes) + " layover"
}

// LayoverMinutes is the whole number of minutes between an arrival and the
// next departure.
func LayoverMinutes(arrival, departure time.Time) int {
	return int(departure.Sub(arrival) / time.Minute)
}

func IsShortLayover(minutes int) bool { return minutes < 60 }

func IsLongLayover(minutes int) bool { return minutes > 240 }

type DurationCategory string

const (
	DurationShort  DurationCategory = "short"
	DurationMedium DurationCategory = "medium"
	DurationLong   DurationCategory = "long"
)

func CategorizeDuration(minutes int) DurationCategory {
	switch {
	case minutes < 180:
		return DurationShort
	case minutes < 360:
		return DurationMedium
	default:
		return DurationLong
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
