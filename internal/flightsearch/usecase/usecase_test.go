package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/entity"
	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/history"
	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/provider"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgerror"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgtime"
)

var testNow = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

type fakeProvider struct {
	name     string
	flights  []entity.Flight
	airports []entity.Airport
	errs     []error
	block    chan struct{}
	calls    atomic.Int32
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Search(ctx context.Context, _ provider.SearchRequest) ([]entity.Flight, error) {
	n := int(f.calls.Add(1))
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if n <= len(f.errs) {
		return nil, f.errs[n-1]
	}
	return f.flights, nil
}

func (f *fakeProvider) Airports(_ context.Context, _ string) ([]entity.Airport, error) {
	f.calls.Add(1)
	if len(f.errs) > 0 {
		return nil, f.errs[0]
	}
	return f.airports, nil
}

type fakeRates struct {
	rates entity.ExchangeRates
	calls atomic.Int32
}

func (f *fakeRates) Rates(_ context.Context, _ string) (entity.ExchangeRates, error) {
	f.calls.Add(1)
	return f.rates, nil
}

type fakeHistory struct {
	mu    sync.Mutex
	items []entity.SearchHistory
}

func (f *fakeHistory) Add(_ context.Context, item entity.SearchHistory) (entity.SearchHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append([]entity.SearchHistory{item}, f.items...)
	return item, nil
}

func (f *fakeHistory) List(_ context.Context, limit int) ([]entity.SearchHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if limit > len(f.items) {
		limit = len(f.items)
	}
	return append([]entity.SearchHistory(nil), f.items[:limit]...), nil
}

func (f *fakeHistory) Remove(_ context.Context, id string) error {
	return history.ErrNotFound
}

func (f *fakeHistory) Clear(_ context.Context) error {
	f.mu.Lock()
	f.items = nil
	f.mu.Unlock()
	return nil
}

func testFlight(id, carrier string, price float64, stops, duration, departHour int) entity.Flight {
	depart := time.Date(2026, 6, 10, departHour, 0, 0, 0, time.UTC)
	arrive := depart.Add(time.Duration(duration) * time.Minute)
	return entity.Flight{
		ID: id,
		Itineraries: []entity.Itinerary{{
			Duration: duration,
			Segments: []entity.Segment{{
				ID:           id,
				CarrierCode:  carrier,
				CarrierName:  carrier + " Air",
				FlightNumber: id,
				Departure:    entity.Endpoint{IATACode: "JFK", At: depart},
				Arrival:      entity.Endpoint{IATACode: "LAX", At: arrive},
			}},
			DepartureTime: depart,
			ArrivalTime:   arrive,
			TotalStops:    stops,
		}},
		Price:                  entity.Price{Currency: "USD", Total: price, Base: price, PerAdult: price},
		ValidatingAirlineCodes: []string{carrier},
		NumberOfBookableSeats:  9,
		CabinClass:             entity.CabinEconomy,
		DepartureDate:          depart,
		ArrivalDate:            arrive,
		TotalDuration:          duration,
		TotalStops:             stops,
		Airlines:               []string{carrier + " Air"},
	}
}

func sampleFlights() []entity.Flight {
	return []entity.Flight{
		testFlight("1", "AA", 500, 0, 330, 8),
		testFlight("2", "UA", 300, 1, 420, 14),
		testFlight("3", "AA", 700, 0, 320, 19),
		testFlight("4", "DL", 250, 2, 600, 3),
	}
}

func newTestUsecase(providers ...provider.Provider) *Usecase {
	u := New(Dependency{
		Providers:          providers,
		CacheTTL:           time.Minute,
		ProviderTimeout:    time.Second,
		MaxProviderRetries: 2,
		Currency:           "USD",
	})
	u.now = func() time.Time { return testNow }
	return u
}

func validInput() SearchInput {
	return SearchInput{
		Origin:        "jfk",
		Destination:   "lax",
		DepartureDate: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
		Adults:        1,
	}
}

func assertCode(t *testing.T, err error, code pkgerror.Code) {
	t.Helper()
	be, ok := pkgerror.As(err)
	if !ok {
		t.Fatalf("expected business error, got %v", err)
	}
	if be.Code() != code {
		t.Fatalf("expected code %d, got %d (%s)", code, be.Code(), be.Error())
	}
}

func TestSearchValidation(t *testing.T) {
	past := time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)
	before := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	tooFar := time.Date(2027, 6, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		modify func(in *SearchInput)
	}{
		{name: "missing origin", modify: func(in *SearchInput) { in.Origin = "" }},
		{name: "bad origin", modify: func(in *SearchInput) { in.Origin = "JF" }},
		{name: "bad destination", modify: func(in *SearchInput) { in.Destination = "L4X" }},
		{name: "same airports", modify: func(in *SearchInput) { in.Destination = "JFK" }},
		{name: "missing date", modify: func(in *SearchInput) { in.DepartureDate = time.Time{} }},
		{name: "past date", modify: func(in *SearchInput) { in.DepartureDate = past }},
		{name: "too far", modify: func(in *SearchInput) { in.DepartureDate = tooFar }},
		{name: "return same day", modify: func(in *SearchInput) { in.ReturnDate = &before }},
		{name: "no adults", modify: func(in *SearchInput) { in.Adults = 0 }},
		{name: "too many adults", modify: func(in *SearchInput) { in.Adults = 10 }},
		{name: "infants exceed adults", modify: func(in *SearchInput) { in.Infants = 2 }},
		{name: "too many passengers", modify: func(in *SearchInput) { in.Adults = 5; in.Children = 5 }},
		{name: "bad cabin", modify: func(in *SearchInput) { in.CabinClass = "LUXURY" }},
		{name: "bad currency", modify: func(in *SearchInput) { in.Currency = "XYZW" }},
		{name: "bad sort", modify: func(in *SearchInput) { in.Sort = "cheapest" }},
		{name: "inverted price range", modify: func(in *SearchInput) {
			lo, hi := 500.0, 100.0
			in.Filters.MinPrice, in.Filters.MaxPrice = &lo, &hi
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{name: "fake", flights: sampleFlights()}
			u := newTestUsecase(p)
			in := validInput()
			tt.modify(&in)

			_, err := u.Search(context.Background(), in)
			assertCode(t, err, pkgerror.CodeInvalidInput)
			if p.calls.Load() != 0 {
				t.Fatalf("provider should not be called on invalid input")
			}
		})
	}
}

func TestSearchPipeline(t *testing.T) {
	u := newTestUsecase(&fakeProvider{name: "fake", flights: sampleFlights()})
	in := validInput()
	in.Sort = "price-desc"
	in.Filters.Stops = entity.StopsFilter{Direct: true}

	out, err := u.Search(context.Background(), in)
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if got := ids(out.Flights); !equal(got, []string{"3", "1"}) {
		t.Fatalf("expected direct flights by price desc [3 1], got %v", got)
	}
	if out.Metadata.TotalResults != 4 || out.Metadata.FilteredResults != 2 {
		t.Fatalf("unexpected counts %+v", out.Metadata)
	}
	if out.Metadata.ProvidersSucceeded != 1 || out.Metadata.CacheHit {
		t.Fatalf("unexpected metadata %+v", out.Metadata)
	}
	if out.Options.PriceRange.Min != 250 || out.Options.PriceRange.Max != 700 || out.Options.MaxDuration != 600 {
		t.Fatalf("options should describe the unfiltered set, got %+v", out.Options)
	}
	if len(out.ActiveFilters) != 1 || out.ActiveFilters[0].Value != "Direct" {
		t.Fatalf("unexpected active filters %+v", out.ActiveFilters)
	}
	if out.Analytics.Average != 600 {
		t.Fatalf("expected average of filtered flights 600, got %v", out.Analytics.Average)
	}
	if out.Cheapest == nil || out.Cheapest.ID != "1" {
		t.Fatalf("unexpected cheapest %+v", out.Cheapest)
	}
	if !out.HasActiveFilters {
		t.Fatal("expected the stops selection to count as an active filter")
	}
	if b := out.Breakdown; b.Direct != 2 || b.ByAirline["AA"] != 2 || b.ByStops[0] != 2 || len(b.ByStops) != 1 {
		t.Fatalf("unexpected breakdown %+v", b)
	}
	if out.Criteria.Origin != "JFK" || out.Criteria.Sort != "price-desc" || out.Criteria.TripType != entity.TripOneWay {
		t.Fatalf("unexpected criteria %+v", out.Criteria)
	}
}

func TestSearchFilterOverlay(t *testing.T) {
	u := newTestUsecase(&fakeProvider{name: "fake", flights: sampleFlights()})
	in := validInput()
	in.Sort = "departure-asc"
	in.Filters.Airlines = []string{"aa", "dl"}
	in.Filters.DepartureTimes = []pkgtime.DayPart{pkgtime.EarlyMorning, pkgtime.Morning}
	maxDuration := 400
	in.Filters.MaxDuration = &maxDuration

	out, err := u.Search(context.Background(), in)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if got := ids(out.Flights); !equal(got, []string{"1"}) {
		t.Fatalf("expected [1], got %v", got)
	}
	if len(out.ActiveFilters) != 4 {
		t.Fatalf("expected 2 airline chips, departure and duration, got %+v", out.ActiveFilters)
	}
}

func TestSearchExtendedSortKey(t *testing.T) {
	u := newTestUsecase(&fakeProvider{name: "fake", flights: sampleFlights()})
	in := validInput()
	in.Sort = "stops-desc"

	out, err := u.Search(context.Background(), in)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if got := ids(out.Flights); !equal(got, []string{"4", "2", "1", "3"}) {
		t.Fatalf("unexpected stops-desc order %v", got)
	}
}

func TestSearchRetriesTemporaryErrors(t *testing.T) {
	p := &fakeProvider{
		name:    "flaky",
		flights: sampleFlights(),
		errs:    []error{provider.ErrTemporary, provider.ErrTemporary},
	}
	u := newTestUsecase(p)

	out, err := u.Search(context.Background(), validInput())
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if p.calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", p.calls.Load())
	}
	if len(out.Flights) != 4 {
		t.Fatalf("expected 4 flights, got %d", len(out.Flights))
	}
}

func TestSearchPermanentErrorIsNotRetried(t *testing.T) {
	p := &fakeProvider{name: "broken", errs: []error{errors.New("bad request")}}
	u := newTestUsecase(p)

	_, err := u.Search(context.Background(), validInput())
	assertCode(t, err, pkgerror.CodeUnavailable)
	if p.calls.Load() != 1 {
		t.Fatalf("expected a single attempt, got %d", p.calls.Load())
	}
}

func TestSearchPartialProviderFailure(t *testing.T) {
	good := &fakeProvider{name: "good", flights: sampleFlights()}
	bad := &fakeProvider{name: "bad", errs: []error{errors.New("down")}}
	u := newTestUsecase(good, bad)

	out, err := u.Search(context.Background(), validInput())
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if out.Metadata.ProvidersQueried != 2 || out.Metadata.ProvidersFailed != 1 || out.Metadata.FailedProviders[0] != "bad" {
		t.Fatalf("unexpected metadata %+v", out.Metadata)
	}
}

func TestSearchUsesCache(t *testing.T) {
	p := &fakeProvider{name: "fake", flights: sampleFlights()}
	u := newTestUsecase(p)

	first, err := u.Search(context.Background(), validInput())
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	first.Flights[0].Price.Total = 1

	in := validInput()
	in.Sort = "duration-asc"
	second, err := u.Search(context.Background(), in)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !second.Metadata.CacheHit {
		t.Fatal("expected cache hit for same criteria with a different sort")
	}
	if p.calls.Load() != 1 {
		t.Fatalf("expected one provider call, got %d", p.calls.Load())
	}
	for _, f := range second.Flights {
		if f.Price.Total == 1 {
			t.Fatal("cached result was mutated through a previous response")
		}
	}
}

func TestSearchSharesInFlightCall(t *testing.T) {
	p := &fakeProvider{name: "slow", flights: sampleFlights(), block: make(chan struct{})}
	u := newTestUsecase(p)
	u.cacheTTL = 0

	const callers = 5
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := u.Search(context.Background(), validInput())
			if err == nil && len(out.Flights) != 4 {
				err = errors.New("unexpected result size")
			}
			errs <- err
		}()
	}

	deadline := time.Now().Add(time.Second)
	for p.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)
	close(p.block)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("search: %v", err)
		}
	}
	if got := p.calls.Load(); got != 1 {
		t.Fatalf("expected concurrent searches to share one call, got %d", got)
	}

	if _, err := u.Search(context.Background(), validInput()); err != nil {
		t.Fatalf("search: %v", err)
	}
	if got := p.calls.Load(); got != 2 {
		t.Fatalf("expected a fresh call once the shared one settled, got %d", got)
	}
}

func TestSearchConvertsCurrency(t *testing.T) {
	rates := &fakeRates{rates: entity.ExchangeRates{Base: "EUR", Rates: map[string]float64{"EUR": 1, "USD": 2}}}
	u := New(Dependency{
		Providers: []provider.Provider{&fakeProvider{name: "fake", flights: sampleFlights()}},
		Rates:     rates,
		CacheTTL:  time.Minute,
		Currency:  "USD",
	})
	u.now = func() time.Time { return testNow }

	in := validInput()
	in.Currency = "eur"
	out, err := u.Search(context.Background(), in)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if out.Metadata.Currency != "EUR" {
		t.Fatalf("expected EUR, got %s", out.Metadata.Currency)
	}
	if out.Flights[0].Price.Total != 125 || out.Flights[0].Price.Currency != "EUR" {
		t.Fatalf("expected cheapest converted to 125 EUR, got %+v", out.Flights[0].Price)
	}
	if out.Options.PriceRange.Max != 350 {
		t.Fatalf("options should use converted prices, got %+v", out.Options.PriceRange)
	}
}

func TestSearchRecordsHistory(t *testing.T) {
	h := &fakeHistory{}
	u := New(Dependency{
		Providers: []provider.Provider{&fakeProvider{name: "fake", flights: sampleFlights()}},
		History:   h,
	})
	u.now = func() time.Time { return testNow }

	in := validInput()
	ret := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	in.ReturnDate = &ret
	if _, err := u.Search(context.Background(), in); err != nil {
		t.Fatalf("search: %v", err)
	}

	items, err := u.History(context.Background(), 50)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(items) != 1 || items[0].Origin != "JFK" || items[0].TripType != entity.TripRoundTrip {
		t.Fatalf("unexpected history %+v", items)
	}

	assertCode(t, u.RemoveHistory(context.Background(), "missing"), pkgerror.CodeNotFound)
	assertCode(t, u.RemoveHistory(context.Background(), ""), pkgerror.CodeInvalidInput)
	if err := u.ClearHistory(context.Background()); err != nil {
		t.Fatalf("clear: %v", err)
	}
}

func TestHistoryDisabled(t *testing.T) {
	u := newTestUsecase()
	_, err := u.History(context.Background(), 5)
	assertCode(t, err, pkgerror.CodeUnavailable)
}

func TestAirports(t *testing.T) {
	down := &fakeProvider{name: "down", errs: []error{provider.ErrTemporary}}
	up := &fakeProvider{name: "up", airports: []entity.Airport{{IATACode: "JFK", Name: "JOHN F KENNEDY INTL"}}}
	u := newTestUsecase(down, up)

	_, err := u.Airports(context.Background(), " j ")
	assertCode(t, err, pkgerror.CodeInvalidInput)

	for i := 0; i < 2; i++ {
		airports, err := u.Airports(context.Background(), "jfk")
		if err != nil {
			t.Fatalf("airports: %v", err)
		}
		if len(airports) != 1 || airports[0].IATACode != "JFK" {
			t.Fatalf("unexpected airports %+v", airports)
		}
	}
	if up.calls.Load() != 1 || down.calls.Load() != 1 {
		t.Fatalf("expected one lookup per provider thanks to cache, got down=%d up=%d", down.calls.Load(), up.calls.Load())
	}
}

func TestRates(t *testing.T) {
	rates := &fakeRates{rates: entity.ExchangeRates{Base: "USD", Rates: map[string]float64{"USD": 1, "EUR": 0.9}}}
	u := New(Dependency{Rates: rates})

	if _, err := u.Rates(context.Background(), "US"); err == nil {
		t.Fatal("expected invalid currency error")
	}
	for i := 0; i < 2; i++ {
		got, err := u.Rates(context.Background(), "")
		if err != nil {
			t.Fatalf("rates: %v", err)
		}
		if got.Rates["EUR"] != 0.9 {
			t.Fatalf("unexpected rates %+v", got)
		}
	}
	if rates.calls.Load() != 1 {
		t.Fatalf("expected cached rates, got %d calls", rates.calls.Load())
	}
}

func ids(flights []entity.Flight) []string {
	out := make([]string, 0, len(flights))
	for _, f := range flights {
		out = append(out, f.ID)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
