package entity

import "github.com/shandysiswandi/goflightsearch/internal/pkg/pkgtime"

type PriceRangeFilter struct {
	Min        float64
	Max        float64
	CurrentMin float64
	CurrentMax float64
}

// IsZero reports an unset range, which restricts nothing.
func (p PriceRangeFilter) IsZero() bool {
	return p == PriceRangeFilter{}
}

// StopsFilter flags are OR'd: a flight passes when it matches any set flag.
// With no flag set the filter does not restrict.
type StopsFilter struct {
	Direct       bool
	OneStop      bool
	TwoPlusStops bool
}

func (s StopsFilter) Any() bool {
	return s.Direct || s.OneStop || s.TwoPlusStops
}

type AirlineOption struct {
	Code     string
	Name     string
	Count    int
	Selected bool
}

type TimeRange struct {
	Part      pkgtime.DayPart
	StartHour int
	EndHour   int
	Selected  bool
}

// TimeRanges holds the four day-part buckets, ordered chronologically.
type TimeRanges [4]TimeRange

func NewTimeRanges() TimeRanges {
	return TimeRanges{
		{Part: pkgtime.EarlyMorning, StartHour: 0, EndHour: 6},
		{Part: pkgtime.Morning, StartHour: 6, EndHour: 12},
		{Part: pkgtime.Afternoon, StartHour: 12, EndHour: 18},
		{Part: pkgtime.Evening, StartHour: 18, EndHour: 24},
	}
}

// Selected returns the selected day parts in chronological order.
func (t TimeRanges) Selected() []pkgtime.DayPart {
	parts := make([]pkgtime.DayPart, 0, len(t))
	for _, r := range t {
		if r.Selected {
			parts = append(parts, r.Part)
		}
	}
	return parts
}

// Select marks part as selected (or not). Unknown parts are ignored.
func (t *TimeRanges) Select(part pkgtime.DayPart, selected bool) {
	for i := range t {
		if t[i].Part == part {
			t[i].Selected = selected
		}
	}
}

type DurationFilter struct {
	MaxDuration int
	CurrentMax  *int
}

type FilterState struct {
	PriceRange    PriceRangeFilter
	Stops         StopsFilter
	Airlines      []AirlineOption
	DepartureTime TimeRanges
	ArrivalTime   TimeRanges
	Duration      DurationFilter
}

// SelectedAirlines returns the codes of every selected airline option.
func (s FilterState) SelectedAirlines() []string {
	codes := make([]string, 0, len(s.Airlines))
	for _, a := range s.Airlines {
		if a.Selected {
			codes = append(codes, a.Code)
		}
	}
	return codes
}

type PriceBounds struct {
	Min float64
	Max float64
}

type AirlineCount struct {
	Code  string
	Name  string
	Count int
}

type StopsDistribution struct {
	Direct       int
	OneStop      int
	TwoPlusStops int
}

// FilterOptions are the bounds derived once from a raw result set.
type FilterOptions struct {
	PriceRange        PriceBounds
	AvailableAirlines []AirlineCount
	MaxDuration       int
	StopsDistribution StopsDistribution
}

type ActiveFilterType string

const (
	ActiveFilterPrice     ActiveFilterType = "price"
	ActiveFilterStops     ActiveFilterType = "stops"
	ActiveFilterAirline   ActiveFilterType = "airline"
	ActiveFilterDeparture ActiveFilterType = "departure"
	ActiveFilterArrival   ActiveFilterType = "arrival"
	ActiveFilterDuration  ActiveFilterType = "duration"
)

// ActiveFilter describes one applied restriction, e.g. for a removable chip.
type ActiveFilter struct {
	Type  ActiveFilterType
	Label string
	Value string
	ID    string
}
