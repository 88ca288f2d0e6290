package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/analytics"
	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/entity"
	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/filter"
	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/provider"
	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/sorter"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgerror"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgmetrics"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgtime"
	"golang.org/x/sync/errgroup"
)

type SearchInput struct {
	Origin        string
	Destination   string
	DepartureDate time.Time
	ReturnDate    *time.Time
	Adults        int
	Children      int
	Infants       int
	CabinClass    entity.CabinClass
	NonStop       bool
	// Currency converts prices for display when it differs from the
	// provider's currency. Empty keeps provider prices.
	Currency string
	Filters  FilterInput
	Sort     string
}

// FilterInput holds the user's selections. Nil pointers and empty slices
// leave the matching filter at its default.
type FilterInput struct {
	MinPrice       *float64
	MaxPrice       *float64
	Stops          entity.StopsFilter
	Airlines       []string
	DepartureTimes []pkgtime.DayPart
	ArrivalTimes   []pkgtime.DayPart
	MaxDuration    *int
}

type SearchOutput struct {
	Criteria      SearchCriteria
	Metadata      SearchMetadata
	Flights       []entity.Flight
	Options       entity.FilterOptions
	Filters       entity.FilterState
	ActiveFilters []entity.ActiveFilter
	Analytics     analytics.Summary
	// HasActiveFilters is true when the request narrowed the result set.
	HasActiveFilters bool
	Recommended      *entity.Flight
	Cheapest         *entity.Flight
	Fastest          *entity.Flight
	Breakdown        Breakdown
}

// Breakdown counts the filtered flights per quick-filter bucket.
type Breakdown struct {
	Direct    int
	ByAirline map[string]int
	ByStops   map[int]int
}

type SearchCriteria struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    *string
	TripType      entity.TripType
	Adults        int
	Children      int
	Infants       int
	CabinClass    entity.CabinClass
	Sort          string
}

type SearchMetadata struct {
	TotalResults       int
	FilteredResults    int
	ProvidersQueried   int
	ProvidersSucceeded int
	ProvidersFailed    int
	FailedProviders    []string
	SearchTimeMs       int64
	CacheHit           bool
	Currency           string
}

// RawResult is the unfiltered provider answer for one set of criteria. It is
// what the search cache stores.
type RawResult struct {
	Flights   []entity.Flight
	Succeeded []string
	Failed    []string
}

var errProviderFailed = errors.New("provider search failed")

func (u *Usecase) Search(ctx context.Context, in SearchInput) (*SearchOutput, error) {
	start := u.now()
	in, err := u.validate(in)
	if err != nil {
		return nil, err
	}

	sortKey, err := parseSort(in.Sort)
	if err != nil {
		return nil, err
	}

	req := provider.SearchRequest{
		Origin:        in.Origin,
		Destination:   in.Destination,
		DepartureDate: in.DepartureDate,
		ReturnDate:    in.ReturnDate,
		Adults:        in.Adults,
		Children:      in.Children,
		Infants:       in.Infants,
		CabinClass:    in.CabinClass,
		NonStop:       in.NonStop,
		CurrencyCode:  u.currency,
		Max:           provider.DefaultMaxResults,
	}

	var (
		raw      RawResult
		cacheHit bool
		rates    *entity.ExchangeRates
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		raw, cacheHit, err = u.fetch(gctx, searchKey(req), req)
		return err
	})
	if in.Currency != "" && u.rates != nil {
		g.Go(func() error {
			r, err := u.Rates(gctx, in.Currency)
			if err != nil {
				slog.WarnContext(gctx, "display currency unavailable, keeping provider prices", "currency", in.Currency, "error", err)
				return nil
			}
			rates = &r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	flights := raw.Flights
	if rates != nil {
		flights = convertPrices(flights, in.Currency, rates.Rates)
	}
	currency := u.currency
	if len(flights) > 0 {
		currency = flights[0].Price.Currency
	}

	options := filter.Options(flights)
	state := overlayFilters(filter.Initialize(options), in.Filters)
	filtered := filter.ApplyAll(flights, state)
	sorted := sortKey.apply(filtered)
	pkgmetrics.ObserveSearchResults(len(sorted))

	u.recordHistory(ctx, in)

	return &SearchOutput{
		Criteria: criteriaOf(in, sortKey.String()),
		Metadata: SearchMetadata{
			TotalResults:       len(flights),
			FilteredResults:    len(sorted),
			ProvidersQueried:   len(u.providers),
			ProvidersSucceeded: len(raw.Succeeded),
			ProvidersFailed:    len(raw.Failed),
			FailedProviders:    raw.Failed,
			SearchTimeMs:       u.now().Sub(start).Milliseconds(),
			CacheHit:           cacheHit,
			Currency:           currency,
		},
		Flights:       sorted,
		Options:       options,
		Filters:       state,
		ActiveFilters: filter.ActiveFilters(state),
		Analytics:     analytics.Summarize(sorted),
		Recommended:   sorter.Recommended(sorted),
		Cheapest:      sorter.Cheapest(sorted),
		Fastest:       sorter.Fastest(sorted),
		Breakdown:     breakdownOf(sorted),

		HasActiveFilters: filter.HasActive(state),
	}, nil
}

// fetch returns the raw results for req from the cache, or from the providers
// through a single shared call per key.
func (u *Usecase) fetch(ctx context.Context, key string, req provider.SearchRequest) (RawResult, bool, error) {
	if cached, ok := u.searchCache.Get(ctx, key); ok {
		pkgmetrics.IncCacheLookup("search", "hit")
		return cached, true, nil
	}
	pkgmetrics.IncCacheLookup("search", "miss")

	v, err, shared := u.group.Do(key, func() (any, error) {
		// the shared call must outlive any single caller that gives up
		callCtx := context.WithoutCancel(ctx)
		res := u.searchProviders(callCtx, req)
		if len(res.Succeeded) == 0 && len(u.providers) > 0 {
			return RawResult{}, pkgerror.NewBusiness("flight providers are unavailable, please try again later", pkgerror.CodeUnavailable)
		}
		u.searchCache.Set(callCtx, key, res, u.cacheTTL)
		return res, nil
	})
	if shared {
		pkgmetrics.IncSharedCall()
	}
	if err != nil {
		return RawResult{}, false, err
	}
	return CloneRawResult(v.(RawResult)), false, nil
}

type providerResult struct {
	name    string
	flights []entity.Flight
	err     error
}

func (u *Usecase) searchProviders(ctx context.Context, req provider.SearchRequest) RawResult {
	resCh := make(chan providerResult, len(u.providers))

	for _, p := range u.providers {
		providerItem := p
		go func() {
			providerCtx, cancel := context.WithTimeout(ctx, u.providerTimeout)
			defer cancel()
			flights, err := u.searchWithRetry(providerCtx, providerItem, req)
			resCh <- providerResult{name: providerItem.Name(), flights: flights, err: err}
		}()
	}

	res := RawResult{Flights: make([]entity.Flight, 0)}
	for i := 0; i < len(u.providers); i++ {
		r := <-resCh
		if r.err != nil {
			slog.WarnContext(ctx, "provider search failed", "provider", r.name, "error", r.err)
			res.Failed = append(res.Failed, r.name)
			continue
		}
		res.Succeeded = append(res.Succeeded, r.name)
		res.Flights = append(res.Flights, r.flights...)
	}

	// provider goroutines finish in any order
	res.Flights = dedupFlights(res.Flights)
	res.Flights = sorter.ByPrice(res.Flights, true)
	return res
}

func (u *Usecase) searchWithRetry(ctx context.Context, p provider.Provider, req provider.SearchRequest) ([]entity.Flight, error) {
	backoff := 80 * time.Millisecond
	for attempt := 0; attempt <= u.maxProviderRetries; attempt++ {
		start := time.Now()
		flights, err := p.Search(ctx, req)
		pkgmetrics.ObserveProviderCall(p.Name(), "search", err, time.Since(start))
		if err == nil {
			return flights, nil
		}
		if !errors.Is(err, provider.ErrTemporary) {
			return nil, err
		}
		if attempt == u.maxProviderRetries {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
			backoff *= 2
		}
	}
	return nil, fmt.Errorf("%s: %w", p.Name(), errProviderFailed)
}

func (u *Usecase) recordHistory(ctx context.Context, in SearchInput) {
	if u.history == nil {
		return
	}
	if _, err := u.history.Add(ctx, historyOf(in)); err != nil {
		slog.WarnContext(ctx, "failed to record search history", "error", err)
	}
}
