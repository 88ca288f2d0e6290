package filter

import (
	"math"
	"sort"

	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/entity"
)

const (
	DefaultMinPrice    = 0
	DefaultMaxPrice    = 10000
	DefaultMaxDuration = 24 * 60
)

// PriceRange returns the floored minimum and ceiled maximum total price, or
// {0, 10000} for an empty list.
func PriceRange(flights []entity.Flight) entity.PriceBounds {
	if len(flights) == 0 {
		return entity.PriceBounds{Min: DefaultMinPrice, Max: DefaultMaxPrice}
	}
	lo, hi := flights[0].Price.Total, flights[0].Price.Total
	for _, f := range flights[1:] {
		lo = math.Min(lo, f.Price.Total)
		hi = math.Max(hi, f.Price.Total)
	}
	return entity.PriceBounds{Min: math.Floor(lo), Max: math.Ceil(hi)}
}

// MaxDuration returns the longest total duration, or 1440 for an empty list.
func MaxDuration(flights []entity.Flight) int {
	if len(flights) == 0 {
		return DefaultMaxDuration
	}
	longest := flights[0].TotalDuration
	for _, f := range flights[1:] {
		longest = max(longest, f.TotalDuration)
	}
	return longest
}

// UniqueAirlines counts flights per validating airline code, most common
// first. Ties keep first-seen order. A flight with two validating codes counts
// towards both.
func UniqueAirlines(flights []entity.Flight) []entity.AirlineCount {
	index := make(map[string]int)
	airlines := make([]entity.AirlineCount, 0)

	for _, f := range flights {
		for _, code := range f.ValidatingAirlineCodes {
			if i, ok := index[code]; ok {
				airlines[i].Count++
				continue
			}
			index[code] = len(airlines)
			airlines = append(airlines, entity.AirlineCount{Code: code, Name: airlineName(f, code), Count: 1})
		}
	}

	sort.SliceStable(airlines, func(i, j int) bool {
		return airlines[i].Count > airlines[j].Count
	})
	return airlines
}

// airlineName resolves a display name for code from the flight's carrier
// names, falling back to the code itself.
func airlineName(f entity.Flight, code string) string {
	for _, it := range f.Itineraries {
		for _, s := range it.Segments {
			if s.CarrierCode == code && s.CarrierName != "" {
				return s.CarrierName
			}
		}
	}
	for _, name := range f.Airlines {
		if name == code {
			return name
		}
	}
	return code
}

func Distribution(flights []entity.Flight) entity.StopsDistribution {
	var d entity.StopsDistribution
	for _, f := range flights {
		switch {
		case f.TotalStops == 0:
			d.Direct++
		case f.TotalStops == 1:
			d.OneStop++
		default:
			d.TwoPlusStops++
		}
	}
	return d
}

// Options derives every filter bound from a raw result set.
func Options(flights []entity.Flight) entity.FilterOptions {
	return entity.FilterOptions{
		PriceRange:        PriceRange(flights),
		AvailableAirlines: UniqueAirlines(flights),
		MaxDuration:       MaxDuration(flights),
		StopsDistribution: Distribution(flights),
	}
}
