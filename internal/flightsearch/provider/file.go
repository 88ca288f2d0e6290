package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/entity"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgtime"
)

// FileProvider serves flight offers from an Amadeus-shaped JSON file. It is
// the offline provider used in development and tests.
type FileProvider struct {
	path    string
	rng     *SafeRand
	latency time.Duration
}

func NewFileProvider(path string, latency time.Duration) *FileProvider {
	return &FileProvider{path: path, rng: NewSafeRand(), latency: latency}
}

func (f *FileProvider) Name() string {
	return "File"
}

func (f *FileProvider) Search(ctx context.Context, req SearchRequest) ([]entity.Flight, error) {
	resp, err := f.load(ctx)
	if err != nil {
		return nil, err
	}

	flights, errs := transformOffers(resp)
	for _, err := range errs {
		slog.WarnContext(ctx, "skip invalid flight offer", "provider", f.Name(), "error", err)
	}

	date := req.DepartureDate.Format(pkgtime.DateLayout)
	matched := make([]entity.Flight, 0, len(flights))
	for _, flight := range flights {
		if !matchRoute(flight, req, date) {
			continue
		}
		matched = append(matched, flight)
	}

	limit := req.Max
	if limit <= 0 {
		limit = DefaultMaxResults
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *FileProvider) Airports(ctx context.Context, keyword string) ([]entity.Airport, error) {
	resp, err := f.load(ctx)
	if err != nil {
		return nil, err
	}

	keyword = strings.ToUpper(strings.TrimSpace(keyword))
	airports := make([]entity.Airport, 0)
	for code, loc := range resp.Dictionaries.Locations {
		if !strings.HasPrefix(code, keyword) && !strings.HasPrefix(loc.CityCode, keyword) {
			continue
		}
		airports = append(airports, entity.Airport{
			IATACode:    code,
			Name:        code,
			CityCode:    loc.CityCode,
			CountryCode: loc.CountryCode,
		})
	}
	sort.Slice(airports, func(i, j int) bool { return airports[i].IATACode < airports[j].IATACode })
	return airports, nil
}

func (f *FileProvider) load(ctx context.Context) (amadeusOffersResponse, error) {
	var resp amadeusOffersResponse
	if err := f.rng.Sleep(ctx, f.latency); err != nil {
		return resp, err
	}

	data, err := os.ReadFile(filepath.Clean(f.path))
	if err != nil {
		return resp, fmt.Errorf("file provider read: %w", err)
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return resp, fmt.Errorf("file provider decode: %w", err)
	}
	return resp, nil
}

func matchRoute(f entity.Flight, req SearchRequest, date string) bool {
	if len(f.Itineraries) == 0 {
		return false
	}
	outbound := f.Itineraries[0]
	first := outbound.Segments[0]
	last := outbound.Segments[len(outbound.Segments)-1]
	if req.Origin != "" && !strings.EqualFold(first.Departure.IATACode, req.Origin) {
		return false
	}
	if req.Destination != "" && !strings.EqualFold(last.Arrival.IATACode, req.Destination) {
		return false
	}
	if !req.DepartureDate.IsZero() && pkgtime.DateKey(outbound.DepartureTime) != date {
		return false
	}
	if req.NonStop && f.TotalStops > 0 {
		return false
	}
	if req.CabinClass != "" && f.CabinClass != req.CabinClass {
		return false
	}
	return true
}
