package filter

import (
	"testing"
	"time"

	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/entity"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgtime"
)

func newFlight(id string, price float64, stops, duration int, depart time.Time, airlines ...string) entity.Flight {
	return entity.Flight{
		ID:                     id,
		Price:                  entity.Price{Currency: "USD", Total: price, Base: price},
		ValidatingAirlineCodes: airlines,
		DepartureDate:          depart,
		ArrivalDate:            depart.Add(time.Duration(duration) * time.Minute),
		TotalDuration:          duration,
		TotalStops:             stops,
	}
}

func at(hour int) time.Time {
	return time.Date(2024, 5, 1, hour, 0, 0, 0, time.UTC)
}

func sampleFlights() []entity.Flight {
	return []entity.Flight{
		newFlight("1", 320.40, 0, 180, at(7), "AA"),
		newFlight("2", 199.99, 1, 300, at(13), "BA", "AA"),
		newFlight("3", 540.00, 2, 620, at(22), "LH"),
		newFlight("4", 410.10, 0, 200, at(3), "BA"),
	}
}

func ids(flights []entity.Flight) []string {
	out := make([]string, 0, len(flights))
	for _, f := range flights {
		out = append(out, f.ID)
	}
	return out
}

func equalIDs(got []entity.Flight, want ...string) bool {
	g := ids(got)
	if len(g) != len(want) {
		return false
	}
	for i := range g {
		if g[i] != want[i] {
			return false
		}
	}
	return true
}

func TestApplyAllIdentityWithDefaultState(t *testing.T) {
	flights := sampleFlights()
	state := Initialize(Options(flights))

	got := ApplyAll(flights, state)
	if !equalIDs(got, "1", "2", "3", "4") {
		t.Fatalf("ApplyAll with default state = %v, expected all flights in order", ids(got))
	}

	got[0].ID = "mutated"
	if flights[0].ID != "1" {
		t.Error("ApplyAll result shares its backing array with the input")
	}
}

func TestApplyAllEmptyInput(t *testing.T) {
	got := ApplyAll(nil, Initialize(Options(nil)))
	if got == nil || len(got) != 0 {
		t.Errorf("ApplyAll(nil) = %v, expected empty non-nil slice", got)
	}
}

func TestApplyAllZeroAndDefaultState(t *testing.T) {
	flights := sampleFlights()

	tests := []struct {
		name     string
		state    entity.FilterState
		expected []string
	}{
		{name: "zero state", state: entity.FilterState{}, expected: []string{"1", "2", "3", "4"}},
		{name: "default state", state: DefaultState(), expected: []string{"1", "2", "3", "4"}},
		{name: "zero state direct only", state: entity.FilterState{Stops: entity.StopsFilter{Direct: true}}, expected: []string{"1", "4"}},
		{name: "explicit zero ceiling", state: entity.FilterState{PriceRange: entity.PriceRangeFilter{Max: 1000}}, expected: []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ApplyAll(flights, tc.state)
			if !equalIDs(got, tc.expected...) {
				t.Errorf("ApplyAll = %v, expected %v", ids(got), tc.expected)
			}
		})
	}

	def := DefaultState()
	if def.PriceRange.CurrentMax != DefaultMaxPrice || def.Duration.MaxDuration != DefaultMaxDuration || HasActive(def) {
		t.Errorf("unexpected default state %+v", def)
	}
}

func TestByPriceRange(t *testing.T) {
	flights := sampleFlights()

	got := ByPriceRange(flights, 199.99, 410.10)
	if !equalIDs(got, "1", "2", "4") {
		t.Errorf("ByPriceRange inclusive bounds = %v", ids(got))
	}
	for _, f := range got {
		if f.Price.Total < 199.99 || f.Price.Total > 410.10 {
			t.Errorf("flight %s price %v outside range", f.ID, f.Price.Total)
		}
	}

	if got := ByPriceRange(flights, 600, 700); len(got) != 0 {
		t.Errorf("ByPriceRange out of range = %v, expected none", ids(got))
	}
}

func TestByStops(t *testing.T) {
	flights := []entity.Flight{
		newFlight("direct", 100, 0, 60, at(8)),
		newFlight("one", 100, 1, 60, at(8)),
		newFlight("two", 100, 2, 60, at(8)),
		newFlight("three", 100, 3, 60, at(8)),
	}

	tests := []struct {
		name     string
		stops    entity.StopsFilter
		expected []string
	}{
		{"no flags passes everything", entity.StopsFilter{}, []string{"direct", "one", "two", "three"}},
		{"direct only", entity.StopsFilter{Direct: true}, []string{"direct"}},
		{"one stop only", entity.StopsFilter{OneStop: true}, []string{"one"}},
		{"two plus", entity.StopsFilter{TwoPlusStops: true}, []string{"two", "three"}},
		{"direct or two plus", entity.StopsFilter{Direct: true, TwoPlusStops: true}, []string{"direct", "two", "three"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ByStops(flights, tc.stops)
			if !equalIDs(got, tc.expected...) {
				t.Errorf("ByStops = %v, expected %v", ids(got), tc.expected)
			}
		})
	}
}

func TestStopsScenarioThroughPipeline(t *testing.T) {
	flights := []entity.Flight{
		newFlight("a", 100, 0, 60, at(8)),
		newFlight("b", 100, 1, 60, at(8)),
		newFlight("c", 100, 2, 60, at(8)),
	}
	state := Initialize(Options(flights))
	state.Stops = entity.StopsFilter{Direct: true}

	got := ApplyAll(flights, state)
	if !equalIDs(got, "a") {
		t.Errorf("ApplyAll direct only = %v, expected [a]", ids(got))
	}
}

func TestByAirlines(t *testing.T) {
	flights := sampleFlights()

	if got := ByAirlines(flights, nil); len(got) != len(flights) {
		t.Errorf("empty selection should pass everything, got %v", ids(got))
	}

	got := ByAirlines(flights, []string{"AA"})
	if !equalIDs(got, "1", "2") {
		t.Errorf("ByAirlines(AA) = %v, expected [1 2]", ids(got))
	}

	got = ByAirlines(flights, []string{"LH", "XX"})
	if !equalIDs(got, "3") {
		t.Errorf("ByAirlines(LH, XX) = %v, expected [3]", ids(got))
	}
}

func TestByDepartureAndArrivalTime(t *testing.T) {
	flights := sampleFlights()

	got := ByDepartureTime(flights, []pkgtime.DayPart{pkgtime.Morning, pkgtime.EarlyMorning})
	if !equalIDs(got, "1", "4") {
		t.Errorf("ByDepartureTime = %v, expected [1 4]", ids(got))
	}

	// Flight 3 departs 22:00 and lands 08:20 the next day.
	got = ByArrivalTime(flights, []pkgtime.DayPart{pkgtime.Morning})
	if !equalIDs(got, "1", "3", "4") {
		t.Errorf("ByArrivalTime = %v, expected [1 3 4]", ids(got))
	}

	if got := ByArrivalTime(flights, nil); len(got) != len(flights) {
		t.Errorf("empty arrival selection should pass everything, got %v", ids(got))
	}
}

func TestByMaxDuration(t *testing.T) {
	flights := sampleFlights()

	if got := ByMaxDuration(flights, nil); len(got) != len(flights) {
		t.Errorf("nil ceiling should pass everything, got %v", ids(got))
	}

	limit := 300
	got := ByMaxDuration(flights, &limit)
	if !equalIDs(got, "1", "2", "4") {
		t.Errorf("ByMaxDuration(300) = %v, expected [1 2 4]", ids(got))
	}
}

func TestApplyAllCombined(t *testing.T) {
	flights := sampleFlights()
	state := Initialize(Options(flights))
	state = SelectAirlines(state, []string{"BA"})
	state.PriceRange.CurrentMax = 400
	state.DepartureTime.Select(pkgtime.Afternoon, true)

	got := ApplyAll(flights, state)
	if !equalIDs(got, "2") {
		t.Errorf("ApplyAll combined = %v, expected [2]", ids(got))
	}
}

func TestPriceRange(t *testing.T) {
	if got := PriceRange(nil); got.Min != 0 || got.Max != 10000 {
		t.Errorf("PriceRange(nil) = %+v, expected {0 10000}", got)
	}

	got := PriceRange(sampleFlights())
	if got.Min != 199 || got.Max != 540 {
		t.Errorf("PriceRange = %+v, expected {199 540}", got)
	}

	got = PriceRange([]entity.Flight{newFlight("x", 250.5, 0, 60, at(1))})
	if got.Min != 250 || got.Max != 251 {
		t.Errorf("PriceRange single = %+v, expected {250 251}", got)
	}
}

func TestMaxDuration(t *testing.T) {
	if got := MaxDuration(nil); got != 1440 {
		t.Errorf("MaxDuration(nil) = %d, expected 1440", got)
	}
	if got := MaxDuration(sampleFlights()); got != 620 {
		t.Errorf("MaxDuration = %d, expected 620", got)
	}
}

func TestUniqueAirlines(t *testing.T) {
	flights := sampleFlights()
	got := UniqueAirlines(flights)

	expected := []entity.AirlineCount{
		{Code: "AA", Name: "AA", Count: 2},
		{Code: "BA", Name: "BA", Count: 2},
		{Code: "LH", Name: "LH", Count: 1},
	}
	if len(got) != len(expected) {
		t.Fatalf("UniqueAirlines = %+v, expected %+v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("UniqueAirlines[%d] = %+v, expected %+v", i, got[i], expected[i])
		}
	}

	total := 0
	for _, a := range got {
		total += a.Count
	}
	if total < len(flights) {
		t.Errorf("airline counts sum %d is below flight count %d", total, len(flights))
	}
}

func TestUniqueAirlinesResolvesCarrierName(t *testing.T) {
	f := newFlight("1", 100, 0, 60, at(9), "DL")
	f.Itineraries = []entity.Itinerary{{Segments: []entity.Segment{{CarrierCode: "DL", CarrierName: "DELTA AIR LINES"}}}}

	got := UniqueAirlines([]entity.Flight{f})
	if len(got) != 1 || got[0].Name != "DELTA AIR LINES" {
		t.Errorf("UniqueAirlines = %+v, expected carrier name resolved", got)
	}
}

func TestDistribution(t *testing.T) {
	got := Distribution(sampleFlights())
	if got != (entity.StopsDistribution{Direct: 2, OneStop: 1, TwoPlusStops: 1}) {
		t.Errorf("Distribution = %+v", got)
	}
}

func TestStateLifecycle(t *testing.T) {
	flights := sampleFlights()
	state := Initialize(Options(flights))

	if HasActive(state) {
		t.Fatalf("fresh state reports active filters: %+v", ActiveFilters(state))
	}

	limit := 300
	state.PriceRange.CurrentMin = 250
	state.Stops = entity.StopsFilter{Direct: true, OneStop: true}
	state = SelectAirlines(state, []string{"LH"})
	state.DepartureTime.Select(pkgtime.Morning, true)
	state.ArrivalTime.Select(pkgtime.Evening, true)
	state.Duration.CurrentMax = &limit

	active := ActiveFilters(state)
	wantIDs := []string{IDPriceRange, IDStops, "airline-LH", IDDepartureTime, IDArrivalTime, IDMaxDuration}
	if len(active) != len(wantIDs) {
		t.Fatalf("ActiveFilters = %+v, expected ids %v", active, wantIDs)
	}
	for i, id := range wantIDs {
		if active[i].ID != id {
			t.Errorf("ActiveFilters[%d].ID = %q, expected %q", i, active[i].ID, id)
		}
	}
	if active[1].Value != "Direct, 1 Stop" {
		t.Errorf("stops chip value = %q", active[1].Value)
	}
	if active[5].Value != "5h" {
		t.Errorf("duration chip value = %q", active[5].Value)
	}

	removed := Remove(state, "airline-LH")
	if len(removed.SelectedAirlines()) != 0 {
		t.Error("Remove(airline-LH) left the airline selected")
	}
	if len(state.SelectedAirlines()) != 1 {
		t.Error("Remove mutated the original state")
	}

	removed = Remove(removed, IDMaxDuration)
	if removed.Duration.CurrentMax != nil {
		t.Error("Remove(max-duration) kept the ceiling")
	}

	cleared := Clear(state)
	if HasActive(cleared) {
		t.Errorf("Clear left active filters: %+v", ActiveFilters(cleared))
	}
	if cleared.PriceRange.Min != state.PriceRange.Min || cleared.PriceRange.Max != state.PriceRange.Max {
		t.Error("Clear changed the price bounds")
	}
	if got := ApplyAll(flights, cleared); len(got) != len(flights) {
		t.Errorf("ApplyAll after Clear = %v, expected all flights", ids(got))
	}
}

func TestDurationAtBoundIsNotActive(t *testing.T) {
	state := Initialize(Options(sampleFlights()))
	limit := state.Duration.MaxDuration
	state.Duration.CurrentMax = &limit
	if HasActive(state) {
		t.Error("a ceiling equal to the maximum duration should not count as active")
	}
}
