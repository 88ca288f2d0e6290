package sorter

import "github.com/shandysiswandi/goflightsearch/internal/flightsearch/entity"

// Recommended returns the best-value flight, or nil for an empty list.
func Recommended(flights []entity.Flight) *entity.Flight {
	return first(ByBestValue(flights))
}

func Cheapest(flights []entity.Flight) *entity.Flight {
	return first(ByPrice(flights, true))
}

func Fastest(flights []entity.Flight) *entity.Flight {
	return first(ByDuration(flights, true))
}

func DirectOnly(flights []entity.Flight) []entity.Flight {
	direct := make([]entity.Flight, 0, len(flights))
	for _, f := range flights {
		if f.TotalStops == 0 {
			direct = append(direct, f)
		}
	}
	return direct
}

// GroupByAirline buckets flights by their first validating airline code.
func GroupByAirline(flights []entity.Flight) map[string][]entity.Flight {
	groups := make(map[string][]entity.Flight)
	for _, f := range flights {
		code := ""
		if len(f.ValidatingAirlineCodes) > 0 {
			code = f.ValidatingAirlineCodes[0]
		}
		groups[code] = append(groups[code], f)
	}
	return groups
}

func GroupByStops(flights []entity.Flight) map[int][]entity.Flight {
	groups := make(map[int][]entity.Flight)
	for _, f := range flights {
		groups[f.TotalStops] = append(groups[f.TotalStops], f)
	}
	return groups
}

func first(flights []entity.Flight) *entity.Flight {
	if len(flights) == 0 {
		return nil
	}
	f := flights[0]
	return &f
}
