package usecase

import (
	"context"
	"time"

	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/cache"
	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/entity"
	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/provider"
	"golang.org/x/sync/singleflight"
)

type HistoryStore interface {
	Add(ctx context.Context, item entity.SearchHistory) (entity.SearchHistory, error)
	List(ctx context.Context, limit int) ([]entity.SearchHistory, error)
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

type Dependency struct {
	Providers          []provider.Provider
	Rates              provider.RatesProvider
	History            HistoryStore
	SearchCache        cache.Store[RawResult]
	AirportCache       cache.Store[[]entity.Airport]
	RatesCache         cache.Store[entity.ExchangeRates]
	CacheTTL           time.Duration
	AirportCacheTTL    time.Duration
	RatesCacheTTL      time.Duration
	ProviderTimeout    time.Duration
	MaxProviderRetries int
	// Currency is requested from providers; results may still come back in
	// another currency.
	Currency string
}

type Usecase struct {
	providers          []provider.Provider
	rates              provider.RatesProvider
	history            HistoryStore
	searchCache        cache.Store[RawResult]
	airportCache       cache.Store[[]entity.Airport]
	ratesCache         cache.Store[entity.ExchangeRates]
	cacheTTL           time.Duration
	airportCacheTTL    time.Duration
	ratesCacheTTL      time.Duration
	providerTimeout    time.Duration
	maxProviderRetries int
	currency           string

	group singleflight.Group
	now   func() time.Time
}

func New(dep Dependency) *Usecase {
	u := &Usecase{
		providers:          dep.Providers,
		rates:              dep.Rates,
		history:            dep.History,
		searchCache:        dep.SearchCache,
		airportCache:       dep.AirportCache,
		ratesCache:         dep.RatesCache,
		cacheTTL:           dep.CacheTTL,
		airportCacheTTL:    dep.AirportCacheTTL,
		ratesCacheTTL:      dep.RatesCacheTTL,
		providerTimeout:    dep.ProviderTimeout,
		maxProviderRetries: dep.MaxProviderRetries,
		currency:           dep.Currency,
		now:                time.Now,
	}
	if u.searchCache == nil {
		u.searchCache = cache.New(CloneRawResult)
	}
	if u.airportCache == nil {
		u.airportCache = cache.New(cloneAirports)
	}
	if u.ratesCache == nil {
		u.ratesCache = cache.New(cloneRates)
	}
	if u.providerTimeout <= 0 {
		u.providerTimeout = 10 * time.Second
	}
	if u.airportCacheTTL <= 0 {
		u.airportCacheTTL = 24 * time.Hour
	}
	if u.ratesCacheTTL <= 0 {
		u.ratesCacheTTL = time.Hour
	}
	return u
}
