// Package sorter orders flight lists. Every sort works on a copy and is
// stable, so ties keep their input order.
package sorter

import (
	"sort"

	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/entity"
)

// Calibration constants for ValueScore. They are fixed references rather than
// maxima of the current result set so a flight's score does not move when
// filters change.
const (
	RefMaxPrice    = 10000.0
	RefMaxDuration = 1440.0
)

func ByPrice(flights []entity.Flight, asc bool) []entity.Flight {
	return sortCopy(flights, asc, func(a, b entity.Flight) bool {
		return a.Price.Total < b.Price.Total
	})
}

func ByDuration(flights []entity.Flight, asc bool) []entity.Flight {
	return sortCopy(flights, asc, func(a, b entity.Flight) bool {
		return a.TotalDuration < b.TotalDuration
	})
}

func ByDeparture(flights []entity.Flight, asc bool) []entity.Flight {
	return sortCopy(flights, asc, func(a, b entity.Flight) bool {
		return a.DepartureDate.Before(b.DepartureDate)
	})
}

func ByArrival(flights []entity.Flight, asc bool) []entity.Flight {
	return sortCopy(flights, asc, func(a, b entity.Flight) bool {
		return a.ArrivalDate.Before(b.ArrivalDate)
	})
}

func ByStops(flights []entity.Flight, asc bool) []entity.Flight {
	return sortCopy(flights, asc, func(a, b entity.Flight) bool {
		return a.TotalStops < b.TotalStops
	})
}

// ByBestValue orders by ValueScore, highest first.
func ByBestValue(flights []entity.Flight) []entity.Flight {
	type scored struct {
		flight entity.Flight
		score  float64
	}
	ranked := make([]scored, len(flights))
	for i, f := range flights {
		ranked[i] = scored{flight: f, score: ValueScore(f)}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	sorted := make([]entity.Flight, len(ranked))
	for i, r := range ranked {
		sorted[i] = r.flight
	}
	return sorted
}

// ValueScore rates a flight out of roughly 100:
//
//	(1 - price/(2*RefMaxPrice))*50 + (1 - duration/(2*RefMaxDuration))*30 + stopsBonus
//
// where stopsBonus is 20 for a direct flight, 10 for one stop and 0 otherwise.
func ValueScore(f entity.Flight) float64 {
	priceScore := (1 - f.Price.Total/(2*RefMaxPrice)) * 50
	durationScore := (1 - float64(f.TotalDuration)/(2*RefMaxDuration)) * 30
	return priceScore + durationScore + stopsBonus(f.TotalStops)
}

func stopsBonus(stops int) float64 {
	switch stops {
	case 0:
		return 20
	case 1:
		return 10
	default:
		return 0
	}
}

// Sort dispatches on the public sort options. An unrecognised option returns
// flights unchanged.
func Sort(flights []entity.Flight, option entity.SortOption) []entity.Flight {
	switch option {
	case entity.SortPriceAsc:
		return ByPrice(flights, true)
	case entity.SortPriceDesc:
		return ByPrice(flights, false)
	case entity.SortDurationAsc:
		return ByDuration(flights, true)
	case entity.SortDepartureAsc:
		return ByDeparture(flights, true)
	default:
		return flights
	}
}

// SortBy orders by any sortable field. "best" ignores desc and always puts the
// highest score first.
func SortBy(flights []entity.Flight, field entity.SortField, desc bool) []entity.Flight {
	switch field {
	case entity.SortFieldPrice:
		return ByPrice(flights, !desc)
	case entity.SortFieldDuration:
		return ByDuration(flights, !desc)
	case entity.SortFieldDeparture:
		return ByDeparture(flights, !desc)
	case entity.SortFieldArrival:
		return ByArrival(flights, !desc)
	case entity.SortFieldStops:
		return ByStops(flights, !desc)
	case entity.SortFieldBest:
		return ByBestValue(flights)
	default:
		return flights
	}
}

func sortCopy(flights []entity.Flight, asc bool, less func(a, b entity.Flight) bool) []entity.Flight {
	sorted := make([]entity.Flight, len(flights))
	copy(sorted, flights)

	if asc {
		sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
		return sorted
	}
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[j], sorted[i]) })
	return sorted
}
