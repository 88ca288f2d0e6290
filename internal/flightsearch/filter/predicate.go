// Package filter narrows a flight list by the user's filter state and derives
// the filter bounds offered for a result set. Every function returns a new
// slice or the input itself; inputs are never modified.
package filter

import (
	"slices"

	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/entity"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgtime"
)

// ByPriceRange keeps flights whose total price lies in [minPrice, maxPrice].
func ByPriceRange(flights []entity.Flight, minPrice, maxPrice float64) []entity.Flight {
	return keep(flights, func(f entity.Flight) bool {
		return f.Price.Total >= minPrice && f.Price.Total <= maxPrice
	})
}

// ByStops keeps flights matching any set flag. No flag set means no restriction.
func ByStops(flights []entity.Flight, stops entity.StopsFilter) []entity.Flight {
	if !stops.Any() {
		return flights
	}
	return keep(flights, func(f entity.Flight) bool {
		switch {
		case stops.Direct && f.TotalStops == 0:
			return true
		case stops.OneStop && f.TotalStops == 1:
			return true
		case stops.TwoPlusStops && f.TotalStops >= 2:
			return true
		default:
			return false
		}
	})
}

// ByAirlines keeps flights with at least one validating airline in codes.
func ByAirlines(flights []entity.Flight, codes []string) []entity.Flight {
	if len(codes) == 0 {
		return flights
	}
	selected := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		selected[c] = struct{}{}
	}
	return keep(flights, func(f entity.Flight) bool {
		for _, code := range f.ValidatingAirlineCodes {
			if _, ok := selected[code]; ok {
				return true
			}
		}
		return false
	})
}

// ByDepartureTime keeps flights departing in any of parts. No part means no
// restriction.
func ByDepartureTime(flights []entity.Flight, parts []pkgtime.DayPart) []entity.Flight {
	if len(parts) == 0 {
		return flights
	}
	return keep(flights, func(f entity.Flight) bool {
		return slices.Contains(parts, pkgtime.DayPartOf(f.DepartureDate))
	})
}

// ByArrivalTime is ByDepartureTime on the arrival timestamp.
func ByArrivalTime(flights []entity.Flight, parts []pkgtime.DayPart) []entity.Flight {
	if len(parts) == 0 {
		return flights
	}
	return keep(flights, func(f entity.Flight) bool {
		return slices.Contains(parts, pkgtime.DayPartOf(f.ArrivalDate))
	})
}

// ByMaxDuration keeps flights no longer than maxDuration minutes. A nil
// ceiling means no restriction.
func ByMaxDuration(flights []entity.Flight, maxDuration *int) []entity.Flight {
	if maxDuration == nil {
		return flights
	}
	limit := *maxDuration
	return keep(flights, func(f entity.Flight) bool {
		return f.TotalDuration <= limit
	})
}

// ApplyAll runs every predicate in a fixed order: price, stops, airline,
// departure time, arrival time, duration. States normally come from
// Initialize or DefaultState; a zero PriceRange is treated as unset.
func ApplyAll(flights []entity.Flight, state entity.FilterState) []entity.Flight {
	filtered := slices.Clone(flights)
	if filtered == nil {
		filtered = []entity.Flight{}
	}

	if !state.PriceRange.IsZero() {
		filtered = ByPriceRange(filtered, state.PriceRange.CurrentMin, state.PriceRange.CurrentMax)
	}
	filtered = ByStops(filtered, state.Stops)
	filtered = ByAirlines(filtered, state.SelectedAirlines())
	filtered = ByDepartureTime(filtered, state.DepartureTime.Selected())
	filtered = ByArrivalTime(filtered, state.ArrivalTime.Selected())
	filtered = ByMaxDuration(filtered, state.Duration.CurrentMax)

	return filtered
}

func keep(flights []entity.Flight, match func(entity.Flight) bool) []entity.Flight {
	filtered := make([]entity.Flight, 0, len(flights))
	for _, f := range flights {
		if match(f) {
			filtered = append(filtered, f)
		}
	}
	return filtered
}
