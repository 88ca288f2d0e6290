package inbound

import (
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/analytics"
	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/entity"
	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/sorter"
	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/usecase"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgerror"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgmoney"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgtime"
)

func invalid(msg string) error {
	return pkgerror.NewBusiness(msg, pkgerror.CodeInvalidInput)
}

func parseSearchInput(r *http.Request) (usecase.SearchInput, error) {
	q := r.URL.Query()

	departureDate, err := parseDate(q, "departureDate", "departure_date")
	if err != nil {
		return usecase.SearchInput{}, err
	}
	if departureDate == nil {
		return usecase.SearchInput{}, invalid("departureDate is required")
	}
	returnDate, err := parseDate(q, "returnDate", "return_date")
	if err != nil {
		return usecase.SearchInput{}, err
	}

	adults := 1
	if err := parseInt(q, "adults", "passengers", &adults); err != nil {
		return usecase.SearchInput{}, err
	}
	children, infants := 0, 0
	if err := parseInt(q, "children", "children", &children); err != nil {
		return usecase.SearchInput{}, err
	}
	if err := parseInt(q, "infants", "infants", &infants); err != nil {
		return usecase.SearchInput{}, err
	}

	var cabin entity.CabinClass
	if value := strings.TrimSpace(firstNotEmpty(q.Get("cabinClass"), q.Get("cabin_class"))); value != "" {
		parsed, ok := entity.ParseCabinClass(value)
		if !ok {
			return usecase.SearchInput{}, invalid("invalid cabinClass")
		}
		cabin = parsed
	}

	nonStop := false
	if value := strings.TrimSpace(firstNotEmpty(q.Get("nonStop"), q.Get("non_stop"))); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return usecase.SearchInput{}, invalid("invalid nonStop")
		}
		nonStop = parsed
	}

	filters, err := parseFilters(q)
	if err != nil {
		return usecase.SearchInput{}, err
	}

	return usecase.SearchInput{
		Origin:        strings.TrimSpace(q.Get("origin")),
		Destination:   strings.TrimSpace(q.Get("destination")),
		DepartureDate: *departureDate,
		ReturnDate:    returnDate,
		Adults:        adults,
		Children:      children,
		Infants:       infants,
		CabinClass:    cabin,
		NonStop:       nonStop,
		Currency:      strings.TrimSpace(q.Get("currency")),
		Filters:       filters,
		Sort:          strings.TrimSpace(q.Get("sort")),
	}, nil
}

func parseFilters(q url.Values) (usecase.FilterInput, error) {
	var f usecase.FilterInput

	minPrice, err := parseFloat(q, "minPrice", "min_price")
	if err != nil {
		return f, err
	}
	maxPrice, err := parseFloat(q, "maxPrice", "max_price")
	if err != nil {
		return f, err
	}
	f.MinPrice, f.MaxPrice = minPrice, maxPrice

	for _, value := range parseList(q, "stops", "stops") {
		switch value {
		case "0", "direct", "nonstop":
			f.Stops.Direct = true
		case "1", "one", "one-stop":
			f.Stops.OneStop = true
		case "2", "2+", "two-plus":
			f.Stops.TwoPlusStops = true
		default:
			return f, invalid("invalid stops")
		}
	}

	f.Airlines = parseList(q, "airlines", "airline")

	if f.DepartureTimes, err = parseDayParts(q, "departureTime", "departure_time"); err != nil {
		return f, err
	}
	if f.ArrivalTimes, err = parseDayParts(q, "arrivalTime", "arrival_time"); err != nil {
		return f, err
	}

	maxDuration := 0
	if err := parseInt(q, "maxDuration", "max_duration", &maxDuration); err != nil {
		return f, err
	}
	if maxDuration > 0 {
		f.MaxDuration = &maxDuration
	}
	return f, nil
}

func parseDate(q url.Values, key, altKey string) (*time.Time, error) {
	value := strings.TrimSpace(firstNotEmpty(q.Get(key), q.Get(altKey)))
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(pkgtime.DateLayout, value)
	if err != nil {
		return nil, invalid("invalid " + key)
	}
	return &parsed, nil
}

func parseInt(q url.Values, key, altKey string, target *int) error {
	value := strings.TrimSpace(firstNotEmpty(q.Get(key), q.Get(altKey)))
	if value == "" {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return invalid("invalid " + key)
	}
	*target = parsed
	return nil
}

func parseFloat(q url.Values, key, altKey string) (*float64, error) {
	value := strings.TrimSpace(firstNotEmpty(q.Get(key), q.Get(altKey)))
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, invalid("invalid " + key)
	}
	return &parsed, nil
}

func parseList(q url.Values, key, altKey string) []string {
	value := strings.TrimSpace(firstNotEmpty(q.Get(key), q.Get(altKey)))
	if value == "" {
		return nil
	}
	items := make([]string, 0)
	for _, item := range strings.Split(value, ",") {
		if item = strings.ToLower(strings.TrimSpace(item)); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func parseDayParts(q url.Values, key, altKey string) ([]pkgtime.DayPart, error) {
	values := parseList(q, key, altKey)
	parts := make([]pkgtime.DayPart, 0, len(values))
	for _, value := range values {
		part, ok := pkgtime.ParseDayPart(value)
		if !ok {
			return nil, invalid("invalid " + key)
		}
		parts = append(parts, part)
	}
	return parts, nil
}

func firstNotEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

func mapSearchResponse(out *usecase.SearchOutput) SearchResponse {
	summary := out.Analytics
	flights := make([]FlightResponse, 0, len(out.Flights))
	for _, f := range out.Flights {
		flights = append(flights, mapFlight(f, summary))
	}

	active := make([]ActiveFilterResponse, 0, len(out.ActiveFilters))
	for _, a := range out.ActiveFilters {
		active = append(active, ActiveFilterResponse{ID: a.ID, Type: string(a.Type), Label: a.Label, Value: a.Value})
	}

	return SearchResponse{
		SearchCriteria: SearchCriteriaResponse{
			Origin:        out.Criteria.Origin,
			Destination:   out.Criteria.Destination,
			DepartureDate: out.Criteria.DepartureDate,
			ReturnDate:    out.Criteria.ReturnDate,
			TripType:      string(out.Criteria.TripType),
			Adults:        out.Criteria.Adults,
			Children:      out.Criteria.Children,
			Infants:       out.Criteria.Infants,
			CabinClass:    string(out.Criteria.CabinClass),
			Sort:          out.Criteria.Sort,
		},
		Metadata: MetadataResponse{
			TotalResults:       out.Metadata.TotalResults,
			FilteredResults:    out.Metadata.FilteredResults,
			ProvidersQueried:   out.Metadata.ProvidersQueried,
			ProvidersSucceeded: out.Metadata.ProvidersSucceeded,
			ProvidersFailed:    out.Metadata.ProvidersFailed,
			FailedProviders:    out.Metadata.FailedProviders,
			SearchTimeMs:       out.Metadata.SearchTimeMs,
			CacheHit:           out.Metadata.CacheHit,
			Currency:           out.Metadata.Currency,
		},
		Flights:       flights,
		FilterOptions: mapFilterOptions(out.Options, out.Filters),
		ActiveFilters: active,
		HasActive:     out.HasActiveFilters,
		Analytics:     mapAnalytics(summary),
		Highlights:    mapHighlights(out),
	}
}

func mapFlight(f entity.Flight, summary analytics.Summary) FlightResponse {
	itineraries := make([]ItineraryResponse, 0, len(f.Itineraries))
	for _, it := range f.Itineraries {
		itineraries = append(itineraries, mapItinerary(it))
	}

	return FlightResponse{
		ID:                     f.ID,
		Itineraries:            itineraries,
		Price:                  mapPrice(f.Price),
		ValidatingAirlineCodes: append([]string{}, f.ValidatingAirlineCodes...),
		Airlines:               append([]string{}, f.Airlines...),
		AvailableSeats:         f.NumberOfBookableSeats,
		LowSeats:               f.LowSeats(),
		CabinClass:             string(f.CabinClass),
		CabinLabel:             f.CabinClass.Label(),
		Departure:              formatTime(f.DepartureDate),
		Arrival:                formatTime(f.ArrivalDate),
		DepartureTimeOfDay:     string(pkgtime.DayPartOf(f.DepartureDate)),
		Duration:               mapDuration(f.TotalDuration),
		Stops:                  f.TotalStops,
		ValueScore:             roundScore(sorter.ValueScore(f)),
		RelativeScore:          analytics.RelativeValueScore(f, summary.Average, summary.AverageDuration),
		PriceCategory:          string(analytics.PriceCategory(f.Price.Total, summary.Lowest, summary.Highest)),
		GoodDeal:               analytics.IsGoodDeal(f.Price.Total, summary.Average, analytics.DefaultGoodDealThreshold),
		Savings:                analytics.Savings(f.Price.Total, summary.Average),
		SavingsPercentage:      analytics.SavingsPercentage(f.Price.Total, summary.Average),
		DurationEfficiency:     analytics.DurationEfficiency(f),
	}
}

func mapItinerary(it entity.Itinerary) ItineraryResponse {
	segments := make([]SegmentResponse, 0, len(it.Segments))
	for i, s := range it.Segments {
		seg := SegmentResponse{
			ID:           s.ID,
			Carrier:      AirlineResponse{Name: s.CarrierName, Code: s.CarrierCode},
			FlightNumber: s.CarrierCode + s.FlightNumber,
			Aircraft:     s.Aircraft,
			Departure:    FlightPoint{Airport: s.Departure.IATACode, Terminal: s.Departure.Terminal, Datetime: formatTime(s.Departure.At)},
			Arrival:      FlightPoint{Airport: s.Arrival.IATACode, Terminal: s.Arrival.Terminal, Datetime: formatTime(s.Arrival.At)},
			Duration:     mapDuration(s.Duration),
		}
		if i+1 < len(it.Segments) {
			minutes := pkgtime.LayoverMinutes(s.Arrival.At, it.Segments[i+1].Departure.At)
			seg.Layover = &LayoverResponse{
				Minutes:   minutes,
				Formatted: pkgtime.FormatLayover(minutes),
				Short:     pkgtime.IsShortLayover(minutes),
				Long:      pkgtime.IsLongLayover(minutes),
			}
		}
		segments = append(segments, seg)
	}

	return ItineraryResponse{
		Duration: mapDuration(it.Duration),
		Stops:    it.TotalStops,
		Segments: segments,
	}
}

func mapDuration(minutes int) DurationResponse {
	return DurationResponse{
		TotalMinutes: minutes,
		Formatted:    pkgtime.FormatDuration(minutes),
		Long:         pkgtime.FormatLongDuration(minutes),
		Compact:      pkgtime.FormatCompactDuration(minutes),
		Category:     string(pkgtime.CategorizeDuration(minutes)),
	}
}

func mapPrice(p entity.Price) PriceResponse {
	return PriceResponse{
		Amount:    p.Total,
		Base:      p.Base,
		Fees:      p.Fees,
		PerAdult:  p.PerAdult,
		Currency:  p.Currency,
		Formatted: pkgmoney.Format(p.Total, p.Currency),
	}
}

func mapFilterOptions(opts entity.FilterOptions, state entity.FilterState) FilterOptionsResponse {
	airlines := make([]AirlineOptionEntry, 0, len(state.Airlines))
	for _, a := range state.Airlines {
		airlines = append(airlines, AirlineOptionEntry{Code: a.Code, Name: a.Name, Count: a.Count, Selected: a.Selected})
	}

	return FilterOptionsResponse{
		PriceRange: PriceRangeResponse{
			Min:        state.PriceRange.Min,
			Max:        state.PriceRange.Max,
			CurrentMin: state.PriceRange.CurrentMin,
			CurrentMax: state.PriceRange.CurrentMax,
		},
		Airlines:    airlines,
		MaxDuration: opts.MaxDuration,
		StopsDistribution: map[string]int{
			"direct":   opts.StopsDistribution.Direct,
			"one_stop": opts.StopsDistribution.OneStop,
			"two_plus": opts.StopsDistribution.TwoPlusStops,
		},
		DepartureTimes: mapTimeRanges(state.DepartureTime),
		ArrivalTimes:   mapTimeRanges(state.ArrivalTime),
	}
}

func mapTimeRanges(ranges entity.TimeRanges) []TimeRangeResponse {
	resp := make([]TimeRangeResponse, 0, len(ranges))
	for _, r := range ranges {
		resp = append(resp, TimeRangeResponse{Part: string(r.Part), Label: r.Part.Label(), Selected: r.Selected})
	}
	return resp
}

func mapAnalytics(s analytics.Summary) AnalyticsResponse {
	deals := make([]string, 0, len(s.BestDeals))
	for _, f := range s.BestDeals {
		deals = append(deals, f.ID)
	}
	points := make([]PricePointResponse, 0, len(s.PriceData))
	for _, p := range s.PriceData {
		points = append(points, PricePointResponse{Date: p.Date, Price: p.Price, Count: p.Count})
	}

	resp := AnalyticsResponse{
		AveragePrice: s.Average,
		MedianPrice:  s.Median,
		LowestPrice:  s.Lowest,
		HighestPrice: s.Highest,
		P25Price:     s.P25,
		P75Price:     s.P75,
		Distribution: s.Buckets,
		BestDeals:    deals,
		PriceData:    points,
	}
	if s.Trend != nil {
		resp.Trend = &TrendResponse{
			Average:          s.Trend.Average,
			Lowest:           s.Trend.Lowest,
			Highest:          s.Trend.Highest,
			Trend:            string(s.Trend.Trend),
			PercentageChange: s.Trend.PercentageChange,
			GoodDeals:        s.Trend.GoodDeals,
		}
	}
	return resp
}

func mapHighlights(out *usecase.SearchOutput) HighlightsResponse {
	byStops := make(map[string]int, len(out.Breakdown.ByStops))
	for stops, count := range out.Breakdown.ByStops {
		byStops[strconv.Itoa(stops)] = count
	}
	return HighlightsResponse{
		Recommended:   flightID(out.Recommended),
		Cheapest:      flightID(out.Cheapest),
		Fastest:       flightID(out.Fastest),
		DirectFlights: out.Breakdown.Direct,
		ByAirline:     out.Breakdown.ByAirline,
		ByStops:       byStops,
	}
}

func mapHistory(item entity.SearchHistory) HistoryResponse {
	resp := HistoryResponse{
		ID:            item.ID,
		Origin:        item.Origin,
		Destination:   item.Destination,
		DepartureDate: item.DepartureDate.Format(pkgtime.DateLayout),
		TripType:      string(item.TripType),
		Adults:        item.Adults,
		Children:      item.Children,
		Infants:       item.Infants,
		CabinClass:    string(item.CabinClass),
		SearchedAt:    item.SearchedAt.UTC().Format(time.RFC3339),
	}
	if item.ReturnDate != nil {
		value := item.ReturnDate.Format(pkgtime.DateLayout)
		resp.ReturnDate = &value
	}
	return resp
}

// formatTime renders airport-local wall clock time without an offset.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02T15:04:05")
}

func flightID(f *entity.Flight) string {
	if f == nil {
		return ""
	}
	return f.ID
}

func roundScore(v float64) float64 {
	return math.Round(v*100) / 100
}
