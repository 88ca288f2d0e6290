package filter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/entity"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgtime"
)

const (
	IDPriceRange    = "price-range"
	IDStops         = "stops-filter"
	IDDepartureTime = "departure-time"
	IDArrivalTime   = "arrival-time"
	IDMaxDuration   = "max-duration"
	idAirlinePrefix = "airline-"
)

// Initialize builds the default state for a result set: full price range, no
// stop, airline or time selection and no duration ceiling.
func Initialize(opts entity.FilterOptions) entity.FilterState {
	airlines := make([]entity.AirlineOption, 0, len(opts.AvailableAirlines))
	for _, a := range opts.AvailableAirlines {
		airlines = append(airlines, entity.AirlineOption{Code: a.Code, Name: a.Name, Count: a.Count})
	}

	return entity.FilterState{
		PriceRange: entity.PriceRangeFilter{
			Min:        opts.PriceRange.Min,
			Max:        opts.PriceRange.Max,
			CurrentMin: opts.PriceRange.Min,
			CurrentMax: opts.PriceRange.Max,
		},
		Airlines:      airlines,
		DepartureTime: entity.NewTimeRanges(),
		ArrivalTime:   entity.NewTimeRanges(),
		Duration:      entity.DurationFilter{MaxDuration: opts.MaxDuration},
	}
}

// DefaultState is the state used before any result set is known: price
// 0..10000, duration ceiling bound 1440 and no selection.
func DefaultState() entity.FilterState {
	return Initialize(entity.FilterOptions{
		PriceRange:  entity.PriceBounds{Min: 0, Max: DefaultMaxPrice},
		MaxDuration: DefaultMaxDuration,
	})
}

// Clear resets every selection while keeping the bounds.
func Clear(state entity.FilterState) entity.FilterState {
	cleared := state
	cleared.PriceRange.CurrentMin = state.PriceRange.Min
	cleared.PriceRange.CurrentMax = state.PriceRange.Max
	cleared.Stops = entity.StopsFilter{}
	cleared.Airlines = make([]entity.AirlineOption, len(state.Airlines))
	for i, a := range state.Airlines {
		a.Selected = false
		cleared.Airlines[i] = a
	}
	cleared.DepartureTime = entity.NewTimeRanges()
	cleared.ArrivalTime = entity.NewTimeRanges()
	cleared.Duration.CurrentMax = nil
	return cleared
}

func HasActive(state entity.FilterState) bool {
	return len(ActiveFilters(state)) > 0
}

// ActiveFilters lists the restrictions currently applied by state.
func ActiveFilters(state entity.FilterState) []entity.ActiveFilter {
	active := make([]entity.ActiveFilter, 0)

	pr := state.PriceRange
	if pr.CurrentMin != pr.Min || pr.CurrentMax != pr.Max {
		active = append(active, entity.ActiveFilter{
			Type:  entity.ActiveFilterPrice,
			Label: "Price Range",
			Value: fmt.Sprintf("%g - %g", pr.CurrentMin, pr.CurrentMax),
			ID:    IDPriceRange,
		})
	}

	if labels := stopsLabels(state.Stops); len(labels) > 0 {
		active = append(active, entity.ActiveFilter{
			Type:  entity.ActiveFilterStops,
			Label: "Stops",
			Value: strings.Join(labels, ", "),
			ID:    IDStops,
		})
	}

	for _, a := range state.Airlines {
		if a.Selected {
			active = append(active, entity.ActiveFilter{
				Type:  entity.ActiveFilterAirline,
				Label: a.Name,
				Value: a.Code,
				ID:    idAirlinePrefix + a.Code,
			})
		}
	}

	if parts := state.DepartureTime.Selected(); len(parts) > 0 {
		active = append(active, entity.ActiveFilter{
			Type:  entity.ActiveFilterDeparture,
			Label: "Departure Time",
			Value: dayPartLabels(parts),
			ID:    IDDepartureTime,
		})
	}

	if parts := state.ArrivalTime.Selected(); len(parts) > 0 {
		active = append(active, entity.ActiveFilter{
			Type:  entity.ActiveFilterArrival,
			Label: "Arrival Time",
			Value: dayPartLabels(parts),
			ID:    IDArrivalTime,
		})
	}

	if d := state.Duration.CurrentMax; d != nil && *d != state.Duration.MaxDuration {
		active = append(active, entity.ActiveFilter{
			Type:  entity.ActiveFilterDuration,
			Label: "Max Duration",
			Value: pkgtime.FormatDuration(*d),
			ID:    IDMaxDuration,
		})
	}

	return active
}

// Remove drops the restriction identified by id and returns the new state.
// Unknown ids leave the state unchanged.
func Remove(state entity.FilterState, id string) entity.FilterState {
	next := state
	switch {
	case id == IDPriceRange:
		next.PriceRange.CurrentMin = state.PriceRange.Min
		next.PriceRange.CurrentMax = state.PriceRange.Max
	case id == IDStops:
		next.Stops = entity.StopsFilter{}
	case id == IDDepartureTime:
		next.DepartureTime = entity.NewTimeRanges()
	case id == IDArrivalTime:
		next.ArrivalTime = entity.NewTimeRanges()
	case id == IDMaxDuration:
		next.Duration.CurrentMax = nil
	case strings.HasPrefix(id, idAirlinePrefix):
		code := strings.TrimPrefix(id, idAirlinePrefix)
		next.Airlines = slices.Clone(state.Airlines)
		for i := range next.Airlines {
			if next.Airlines[i].Code == code {
				next.Airlines[i].Selected = false
			}
		}
	}
	return next
}

// SelectAirlines marks the given codes as selected. Codes absent from the
// result set are ignored.
func SelectAirlines(state entity.FilterState, codes []string) entity.FilterState {
	next := state
	next.Airlines = slices.Clone(state.Airlines)
	for i := range next.Airlines {
		if slices.Contains(codes, next.Airlines[i].Code) {
			next.Airlines[i].Selected = true
		}
	}
	return next
}

func stopsLabels(s entity.StopsFilter) []string {
	labels := make([]string, 0, 3)
	if s.Direct {
		labels = append(labels, "Direct")
	}
	if s.OneStop {
		labels = append(labels, "1 Stop")
	}
	if s.TwoPlusStops {
		labels = append(labels, "2+ Stops")
	}
	return labels
}

func dayPartLabels(parts []pkgtime.DayPart) string {
	labels := make([]string, 0, len(parts))
	for _, p := range parts {
		labels = append(labels, p.Label())
	}
	return strings.Join(labels, ", ")
}
