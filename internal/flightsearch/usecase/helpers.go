package usecase

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/entity"
	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/filter"
	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/provider"
	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/sorter"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgerror"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgmoney"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgtime"
)

const (
	maxAdults          = 9
	maxTotalPassengers = 9
	maxDepartureDays   = 365
	maxTripDays        = 365
	minKeywordLength   = 2
)

var iataPattern = regexp.MustCompile(`^[A-Z]{3}$`)

func invalid(msg string) error {
	return pkgerror.NewBusiness(msg, pkgerror.CodeInvalidInput)
}

func (u *Usecase) validate(in SearchInput) (SearchInput, error) {
	in.Origin = strings.ToUpper(strings.TrimSpace(in.Origin))
	in.Destination = strings.ToUpper(strings.TrimSpace(in.Destination))

	if in.Origin == "" {
		return in, invalid("Origin airport is required")
	}
	if !iataPattern.MatchString(in.Origin) {
		return in, invalid("Please enter a valid origin airport code")
	}
	if in.Destination == "" {
		return in, invalid("Destination airport is required")
	}
	if !iataPattern.MatchString(in.Destination) {
		return in, invalid("Please enter a valid destination airport code")
	}
	if in.Origin == in.Destination {
		return in, invalid("Destination must be different from origin")
	}

	if in.DepartureDate.IsZero() {
		return in, invalid("Departure date is required")
	}
	today := u.now().In(in.DepartureDate.Location())
	daysAhead := pkgtime.DaysBetween(today, in.DepartureDate)
	if daysAhead < 0 {
		return in, invalid("Departure date cannot be in the past")
	}
	if daysAhead > maxDepartureDays {
		return in, invalid(fmt.Sprintf("Departure date cannot be more than %d days from today", maxDepartureDays))
	}
	if in.ReturnDate != nil {
		tripDays := pkgtime.DaysBetween(in.DepartureDate, *in.ReturnDate)
		if tripDays < 1 {
			return in, invalid("Return date must be after departure date")
		}
		if tripDays > maxTripDays {
			return in, invalid(fmt.Sprintf("Trip duration cannot exceed %d days", maxTripDays))
		}
	}

	if in.Adults < 1 {
		return in, invalid("At least 1 adult is required")
	}
	if in.Adults > maxAdults {
		return in, invalid(fmt.Sprintf("Maximum %d adults allowed", maxAdults))
	}
	if in.Children < 0 || in.Infants < 0 {
		return in, invalid("Passenger counts cannot be negative")
	}
	if in.Infants > in.Adults {
		return in, invalid("Number of infants cannot exceed number of adults")
	}
	if in.Adults+in.Children+in.Infants > maxTotalPassengers {
		return in, invalid(fmt.Sprintf("Total passengers cannot exceed %d", maxTotalPassengers))
	}

	if in.CabinClass != "" && !in.CabinClass.IsValid() {
		return in, invalid("invalid cabin class")
	}
	if in.Currency != "" {
		code, ok := pkgmoney.Normalize(in.Currency)
		if !ok {
			return in, invalid("invalid currency")
		}
		in.Currency = code
	}

	f := in.Filters
	if (f.MinPrice != nil && *f.MinPrice < 0) || (f.MinPrice != nil && f.MaxPrice != nil && *f.MaxPrice < *f.MinPrice) {
		return in, invalid("invalid price range")
	}
	if f.MaxDuration != nil && *f.MaxDuration <= 0 {
		return in, invalid("invalid max duration")
	}
	return in, nil
}

type sortKey struct {
	option entity.SortOption
	field  entity.SortField
	desc   bool
}

func parseSort(value string) (sortKey, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return sortKey{option: entity.DefaultSort}, nil
	}
	if option := entity.SortOption(value); option.IsValid() {
		return sortKey{option: option}, nil
	}
	if field, desc, ok := entity.ParseSortKey(value); ok {
		return sortKey{field: field, desc: desc}, nil
	}
	return sortKey{}, invalid("invalid sort option")
}

func (s sortKey) apply(flights []entity.Flight) []entity.Flight {
	if s.option != "" {
		return sorter.Sort(flights, s.option)
	}
	return sorter.SortBy(flights, s.field, s.desc)
}

func (s sortKey) String() string {
	if s.option != "" {
		return string(s.option)
	}
	if s.desc {
		return string(s.field) + "-desc"
	}
	return string(s.field) + "-asc"
}

// searchKey identifies provider results. Filters and sort are applied after
// the fetch, so they are not part of it.
func searchKey(req provider.SearchRequest) string {
	returnDate := ""
	if req.ReturnDate != nil {
		returnDate = req.ReturnDate.Format(pkgtime.DateLayout)
	}
	return strings.Join([]string{
		req.Origin,
		req.Destination,
		req.DepartureDate.Format(pkgtime.DateLayout),
		returnDate,
		strconv.Itoa(req.Adults),
		strconv.Itoa(req.Children),
		strconv.Itoa(req.Infants),
		string(req.CabinClass),
		strconv.FormatBool(req.NonStop),
		req.CurrencyCode,
	}, "|")
}

func overlayFilters(state entity.FilterState, in FilterInput) entity.FilterState {
	if in.MinPrice != nil {
		state.PriceRange.CurrentMin = *in.MinPrice
	}
	if in.MaxPrice != nil {
		state.PriceRange.CurrentMax = *in.MaxPrice
	}
	state.Stops = in.Stops
	if len(in.Airlines) > 0 {
		codes := make([]string, 0, len(in.Airlines))
		for _, code := range in.Airlines {
			codes = append(codes, strings.ToUpper(strings.TrimSpace(code)))
		}
		state = filter.SelectAirlines(state, codes)
	}
	for _, part := range in.DepartureTimes {
		state.DepartureTime.Select(part, true)
	}
	for _, part := range in.ArrivalTimes {
		state.ArrivalTime.Select(part, true)
	}
	if in.MaxDuration != nil {
		v := *in.MaxDuration
		state.Duration.CurrentMax = &v
	}
	return state
}

// convertPrices returns copies of flights priced in currency. Flights without
// a usable rate keep their original price.
func convertPrices(flights []entity.Flight, currency string, rates map[string]float64) []entity.Flight {
	converted := make([]entity.Flight, 0, len(flights))
	for _, f := range flights {
		c := f.Clone()
		from := f.Price.Currency
		_, hasFrom := rates[from]
		_, hasTo := rates[currency]
		if hasFrom && hasTo && from != currency {
			c.Price = entity.Price{
				Currency: currency,
				Total:    round2(pkgmoney.Convert(f.Price.Total, from, currency, rates)),
				Base:     round2(pkgmoney.Convert(f.Price.Base, from, currency, rates)),
				Fees:     round2(pkgmoney.Convert(f.Price.Fees, from, currency, rates)),
				PerAdult: round2(pkgmoney.Convert(f.Price.PerAdult, from, currency, rates)),
			}
		}
		converted = append(converted, c)
	}
	return converted
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// dedupFlights keeps the cheapest offer per identical itinerary, preserving
// first-seen order.
func dedupFlights(flights []entity.Flight) []entity.Flight {
	index := make(map[string]int, len(flights))
	unique := make([]entity.Flight, 0, len(flights))
	for _, f := range flights {
		key := flightKey(f)
		if i, ok := index[key]; ok {
			if f.Price.Total < unique[i].Price.Total {
				unique[i] = f
			}
			continue
		}
		index[key] = len(unique)
		unique = append(unique, f)
	}
	return unique
}

func flightKey(f entity.Flight) string {
	parts := make([]string, 0, 4)
	for _, it := range f.Itineraries {
		for _, s := range it.Segments {
			parts = append(parts, s.CarrierCode+s.FlightNumber+"@"+s.Departure.At.Format(time.RFC3339))
		}
	}
	if len(parts) == 0 {
		return "id:" + f.ID
	}
	return strings.Join(parts, "|")
}

func criteriaOf(in SearchInput, sort string) SearchCriteria {
	c := SearchCriteria{
		Origin:        in.Origin,
		Destination:   in.Destination,
		DepartureDate: in.DepartureDate.Format(pkgtime.DateLayout),
		TripType:      entity.TripOneWay,
		Adults:        in.Adults,
		Children:      in.Children,
		Infants:       in.Infants,
		CabinClass:    in.CabinClass,
		Sort:          sort,
	}
	if in.ReturnDate != nil {
		value := in.ReturnDate.Format(pkgtime.DateLayout)
		c.ReturnDate = &value
		c.TripType = entity.TripRoundTrip
	}
	return c
}

func historyOf(in SearchInput) entity.SearchHistory {
	h := entity.SearchHistory{
		Origin:        in.Origin,
		Destination:   in.Destination,
		DepartureDate: in.DepartureDate,
		TripType:      entity.TripOneWay,
		Adults:        in.Adults,
		Children:      in.Children,
		Infants:       in.Infants,
		CabinClass:    in.CabinClass,
	}
	if in.ReturnDate != nil {
		r := *in.ReturnDate
		h.ReturnDate = &r
		h.TripType = entity.TripRoundTrip
	}
	return h
}

func CloneRawResult(value RawResult) RawResult {
	clone := RawResult{
		Flights:   make([]entity.Flight, len(value.Flights)),
		Succeeded: append([]string(nil), value.Succeeded...),
		Failed:    append([]string(nil), value.Failed...),
	}
	for i, f := range value.Flights {
		clone.Flights[i] = f.Clone()
	}
	return clone
}

func cloneAirports(value []entity.Airport) []entity.Airport {
	return append([]entity.Airport(nil), value...)
}

func cloneRates(value entity.ExchangeRates) entity.ExchangeRates {
	clone := value
	clone.Rates = make(map[string]float64, len(value.Rates))
	for k, v := range value.Rates {
		clone.Rates[k] = v
	}
	return clone
}

func breakdownOf(flights []entity.Flight) Breakdown {
	b := Breakdown{
		Direct:    len(sorter.DirectOnly(flights)),
		ByAirline: make(map[string]int),
		ByStops:   make(map[int]int),
	}
	for code, group := range sorter.GroupByAirline(flights) {
		b.ByAirline[code] = len(group)
	}
	for stops, group := range sorter.GroupByStops(flights) {
		b.ByStops[stops] = len(group)
	}
	return b
}
