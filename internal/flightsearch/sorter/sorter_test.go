package sorter

import (
	"math"
	"testing"
	"time"

	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/entity"
)

func flight(id string, price float64, duration, stops int, departHour int) entity.Flight {
	depart := time.Date(2024, 6, 1, departHour, 0, 0, 0, time.UTC)
	return entity.Flight{
		ID:                     id,
		Price:                  entity.Price{Total: price},
		TotalDuration:          duration,
		TotalStops:             stops,
		DepartureDate:          depart,
		ArrivalDate:            depart.Add(time.Duration(duration) * time.Minute),
		ValidatingAirlineCodes: []string{"X" + id},
	}
}

func order(flights []entity.Flight) []string {
	out := make([]string, len(flights))
	for i, f := range flights {
		out[i] = f.ID
	}
	return out
}

func sameOrder(got []entity.Flight, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i].ID != want[i] {
			return false
		}
	}
	return true
}

func TestSortPriceScenario(t *testing.T) {
	flights := []entity.Flight{
		flight("500", 500, 100, 0, 8),
		flight("300", 300, 100, 0, 8),
		flight("700", 700, 100, 0, 8),
	}

	got := Sort(flights, entity.SortPriceAsc)
	if !sameOrder(got, "300", "500", "700") {
		t.Errorf("price-asc = %v", order(got))
	}
	if !sameOrder(flights, "500", "300", "700") {
		t.Errorf("Sort mutated its input: %v", order(flights))
	}

	got = Sort(flights, entity.SortPriceDesc)
	if !sameOrder(got, "700", "500", "300") {
		t.Errorf("price-desc = %v", order(got))
	}
}

func TestSortDispatch(t *testing.T) {
	flights := []entity.Flight{
		flight("a", 300, 400, 1, 14),
		flight("b", 200, 120, 0, 6),
		flight("c", 250, 250, 2, 9),
	}

	tests := []struct {
		option   entity.SortOption
		expected []string
	}{
		{entity.SortDurationAsc, []string{"b", "c", "a"}},
		{entity.SortDepartureAsc, []string{"b", "c", "a"}},
		{entity.SortPriceAsc, []string{"b", "c", "a"}},
		{"unknown", []string{"a", "b", "c"}},
	}

	for _, tc := range tests {
		t.Run(string(tc.option), func(t *testing.T) {
			got := Sort(flights, tc.option)
			if !sameOrder(got, tc.expected...) {
				t.Errorf("Sort(%s) = %v, expected %v", tc.option, order(got), tc.expected)
			}
		})
	}
}

func TestSortByFields(t *testing.T) {
	flights := []entity.Flight{
		flight("a", 300, 400, 1, 14),
		flight("b", 200, 120, 0, 6),
		flight("c", 250, 250, 2, 9),
	}

	tests := []struct {
		field    entity.SortField
		desc     bool
		expected []string
	}{
		{entity.SortFieldArrival, false, []string{"b", "c", "a"}},
		{entity.SortFieldArrival, true, []string{"a", "c", "b"}},
		{entity.SortFieldStops, false, []string{"b", "a", "c"}},
		{entity.SortFieldStops, true, []string{"c", "a", "b"}},
		{entity.SortFieldDuration, true, []string{"a", "c", "b"}},
		{entity.SortFieldBest, true, []string{"b", "a", "c"}},
	}

	for _, tc := range tests {
		got := SortBy(flights, tc.field, tc.desc)
		if !sameOrder(got, tc.expected...) {
			t.Errorf("SortBy(%s, desc=%v) = %v, expected %v", tc.field, tc.desc, order(got), tc.expected)
		}
	}
}

func TestSortIsStableAndIdempotent(t *testing.T) {
	flights := []entity.Flight{
		flight("first", 100, 60, 0, 8),
		flight("cheap", 50, 60, 0, 8),
		flight("second", 100, 60, 0, 8),
		flight("third", 100, 60, 0, 8),
	}

	once := ByPrice(flights, true)
	if !sameOrder(once, "cheap", "first", "second", "third") {
		t.Fatalf("ByPrice = %v, ties should keep input order", order(once))
	}
	twice := ByPrice(once, true)
	if !sameOrder(twice, order(once)...) {
		t.Errorf("sorting a sorted list changed it: %v -> %v", order(once), order(twice))
	}

	desc := ByPrice(flights, false)
	if !sameOrder(desc, "first", "second", "third", "cheap") {
		t.Errorf("ByPrice desc = %v, ties should keep input order", order(desc))
	}
}

func TestValueScore(t *testing.T) {
	tests := []struct {
		name     string
		flight   entity.Flight
		expected float64
	}{
		{"free instant direct", flight("a", 0, 0, 0, 8), 100},
		{"direct", flight("b", 1000, 240, 0, 8), (1-1000.0/20000)*50 + (1-240.0/2880)*30 + 20},
		{"one stop", flight("c", 2000, 480, 1, 8), (1-2000.0/20000)*50 + (1-480.0/2880)*30 + 10},
		{"two stops", flight("d", 2000, 480, 2, 8), (1-2000.0/20000)*50 + (1-480.0/2880)*30},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValueScore(tc.flight); math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("ValueScore = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestPicks(t *testing.T) {
	if Recommended(nil) != nil || Cheapest(nil) != nil || Fastest(nil) != nil {
		t.Fatal("picks on empty input should be nil")
	}

	flights := []entity.Flight{
		flight("slow-cheap", 100, 900, 2, 8),
		flight("fast", 900, 60, 0, 8),
		flight("balanced", 300, 200, 0, 8),
	}

	if got := Cheapest(flights); got.ID != "slow-cheap" {
		t.Errorf("Cheapest = %s", got.ID)
	}
	if got := Fastest(flights); got.ID != "fast" {
		t.Errorf("Fastest = %s", got.ID)
	}
	if got := Recommended(flights); got.ID != "balanced" {
		t.Errorf("Recommended = %s", got.ID)
	}

	if got := DirectOnly(flights); !sameOrder(got, "fast", "balanced") {
		t.Errorf("DirectOnly = %v", order(got))
	}
	if got := GroupByStops(flights); len(got[0]) != 2 || len(got[2]) != 1 {
		t.Errorf("GroupByStops = %v", got)
	}
	if got := GroupByAirline(flights); len(got["Xfast"]) != 1 || len(got) != 3 {
		t.Errorf("GroupByAirline = %v", got)
	}
}
