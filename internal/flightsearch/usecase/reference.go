package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/entity"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgerror"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgmetrics"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgmoney"
)

// Airports looks up airports by IATA code or name prefix. The first provider
// that answers wins.
func (u *Usecase) Airports(ctx context.Context, keyword string) ([]entity.Airport, error) {
	keyword = strings.ToUpper(strings.TrimSpace(keyword))
	if len(keyword) < minKeywordLength {
		return nil, invalid("keyword must be at least 2 characters")
	}

	if cached, ok := u.airportCache.Get(ctx, keyword); ok {
		pkgmetrics.IncCacheLookup("airports", "hit")
		return cached, nil
	}
	pkgmetrics.IncCacheLookup("airports", "miss")

	for _, p := range u.providers {
		callCtx, cancel := context.WithTimeout(ctx, u.providerTimeout)
		start := time.Now()
		airports, err := p.Airports(callCtx, keyword)
		cancel()
		pkgmetrics.ObserveProviderCall(p.Name(), "airports", err, time.Since(start))
		if err != nil {
			slog.WarnContext(ctx, "airport lookup failed", "provider", p.Name(), "error", err)
			continue
		}
		u.airportCache.Set(ctx, keyword, airports, u.airportCacheTTL)
		return airports, nil
	}
	return nil, pkgerror.NewBusiness("airport lookup is unavailable", pkgerror.CodeUnavailable)
}

func (u *Usecase) Rates(ctx context.Context, base string) (entity.ExchangeRates, error) {
	if base == "" {
		base = pkgmoney.DefaultCurrency
	}
	code, ok := pkgmoney.Normalize(base)
	if !ok {
		return entity.ExchangeRates{}, invalid("invalid currency")
	}
	if u.rates == nil {
		return entity.ExchangeRates{}, pkgerror.NewBusiness("exchange rates are unavailable", pkgerror.CodeUnavailable)
	}

	if cached, ok := u.ratesCache.Get(ctx, code); ok {
		pkgmetrics.IncCacheLookup("rates", "hit")
		return cached, nil
	}
	pkgmetrics.IncCacheLookup("rates", "miss")

	start := time.Now()
	rates, err := u.rates.Rates(ctx, code)
	pkgmetrics.ObserveProviderCall("exchange-rate", "rates", err, time.Since(start))
	if err != nil {
		slog.WarnContext(ctx, "exchange rate lookup failed", "base", code, "error", err)
		return entity.ExchangeRates{}, pkgerror.NewBusiness("exchange rates are unavailable", pkgerror.CodeUnavailable)
	}
	u.ratesCache.Set(ctx, code, rates, u.ratesCacheTTL)
	return rates, nil
}
