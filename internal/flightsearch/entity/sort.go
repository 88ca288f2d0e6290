package entity

import "strings"

type SortOption string

const (
	SortPriceAsc     SortOption = "price-asc"
	SortPriceDesc    SortOption = "price-desc"
	SortDurationAsc  SortOption = "duration-asc"
	SortDepartureAsc SortOption = "departure-asc"
)

// DefaultSort is used when a search does not ask for an order.
const DefaultSort = SortPriceAsc

func (s SortOption) IsValid() bool {
	switch s {
	case SortPriceAsc, SortPriceDesc, SortDurationAsc, SortDepartureAsc:
		return true
	default:
		return false
	}
}

func (s SortOption) Label() string {
	switch s {
	case SortPriceAsc:
		return "Price: Low to High"
	case SortPriceDesc:
		return "Price: High to Low"
	case SortDurationAsc:
		return "Duration: Shortest"
	case SortDepartureAsc:
		return "Departure: Earliest"
	default:
		return string(s)
	}
}

type SortField string

const (
	SortFieldPrice     SortField = "price"
	SortFieldDuration  SortField = "duration"
	SortFieldDeparture SortField = "departure"
	SortFieldArrival   SortField = "arrival"
	SortFieldStops     SortField = "stops"
	SortFieldBest      SortField = "best"
)

// ParseSortKey splits keys such as "arrival-desc" into a field and direction.
// A key without a direction sorts ascending; "best" always sorts by score.
func ParseSortKey(key string) (SortField, bool, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	field, dir, _ := strings.Cut(key, "-")
	desc := false
	switch dir {
	case "", "asc":
	case "desc":
		desc = true
	default:
		return "", false, false
	}
	switch f := SortField(field); f {
	case SortFieldPrice, SortFieldDuration, SortFieldDeparture, SortFieldArrival, SortFieldStops, SortFieldBest:
		return f, desc, true
	default:
		return "", false, false
	}
}
