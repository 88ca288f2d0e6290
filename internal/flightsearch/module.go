package flightsearch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/cache"
	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/entity"
	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/history"
	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/inbound"
	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/provider"
	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/usecase"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkguid"
)

const prefix = "modules.flight-search."

type Dependency struct {
	Config pkgconfig.Config
	Router *pkgrouter.Router
	UUID   pkguid.StringID
}

// Module owns the resources opened for the flight search module.
type Module struct {
	cancel  context.CancelFunc
	closers []func() error
}

func New(ctx context.Context, dep Dependency) (*Module, error) {
	cfg := dep.Config
	m := &Module{}

	bgCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	m.cancel = cancel

	providers := newProviders(cfg)

	var rates provider.RatesProvider
	if baseURL := cfg.GetString(prefix + "exchange.base_url"); baseURL != "" {
		rates = provider.NewExchangeRateClient(baseURL, cfg.GetString(prefix+"exchange.api_key"), milliseconds(cfg, "exchange.timeout_ms", 10*time.Second))
	}

	dependency := usecase.Dependency{
		Providers:          providers,
		Rates:              rates,
		CacheTTL:           seconds(cfg, "cache.ttl_seconds", 60*time.Second),
		AirportCacheTTL:    seconds(cfg, "cache.airport_ttl_seconds", 24*time.Hour),
		RatesCacheTTL:      seconds(cfg, "cache.rates_ttl_seconds", time.Hour),
		ProviderTimeout:    milliseconds(cfg, "provider.timeout_ms", 10*time.Second),
		MaxProviderRetries: 2,
		Currency:           cfg.GetString(prefix + "currency"),
	}
	if retries := cfg.GetInt(prefix + "provider.max_retries"); retries > 0 {
		dependency.MaxProviderRetries = retries
	}

	switch driver := cfg.GetString(prefix + "cache.driver"); driver {
	case "redis":
		client := cache.NewRedisClient(
			cfg.GetString(prefix+"redis.address"),
			cfg.GetString(prefix+"redis.password"),
			cfg.GetInt(prefix+"redis.db"),
		)
		m.closers = append(m.closers, client.Close)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = m.Close(ctx)
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		dependency.SearchCache = cache.NewRedis[usecase.RawResult](client, "flights:search:")
		dependency.AirportCache = cache.NewRedis[[]entity.Airport](client, "flights:airports:")
		dependency.RatesCache = cache.NewRedis[entity.ExchangeRates](client, "flights:rates:")
	case "", "memory":
		searchCache := cache.New(usecase.CloneRawResult)
		searchCache.Janitor(bgCtx, seconds(cfg, "cache.janitor_seconds", time.Minute))
		dependency.SearchCache = searchCache
	default:
		_ = m.Close(ctx)
		return nil, fmt.Errorf("unknown cache driver %q", driver)
	}

	if cfg.GetBool(prefix + "history.enabled") {
		store, err := m.openHistory(ctx, cfg, dep.UUID)
		if err != nil {
			_ = m.Close(ctx)
			return nil, err
		}
		dependency.History = store
	}

	uc := usecase.New(dependency)
	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return m, nil
}

// Close stops background work and releases the module's connections.
func (m *Module) Close(context.Context) error {
	m.cancel()
	var errs []error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	m.closers = nil
	return errors.Join(errs...)
}

func newProviders(cfg pkgconfig.Config) []provider.Provider {
	var providers []provider.Provider

	if key, secret := cfg.GetString(prefix+"amadeus.api_key"), cfg.GetString(prefix+"amadeus.api_secret"); key != "" && secret != "" {
		providers = append(providers, provider.NewAmadeusProvider(provider.AmadeusConfig{
			BaseURL:   cfg.GetString(prefix + "amadeus.base_url"),
			APIKey:    key,
			APISecret: secret,
			Timeout:   milliseconds(cfg, "amadeus.timeout_ms", 10*time.Second),
		}))
	}

	if len(providers) == 0 || cfg.GetBool(prefix+"provider.file.enabled") {
		path := cfg.GetString(prefix + "provider.file.path")
		if path == "" {
			path = "mocks/amadeus_flight_offers.json"
		}
		latency := time.Duration(cfg.GetInt(prefix+"provider.file.latency_ms")) * time.Millisecond
		providers = append(providers, provider.NewFileProvider(path, latency))
	}

	rateLimit := milliseconds(cfg, "provider.rate_limit_ms", 100*time.Millisecond)
	for i := range providers {
		providers[i] = provider.NewRateLimitedProvider(providers[i], rateLimit)
	}

	names := make([]string, 0, len(providers))
	for _, p := range providers {
		names = append(names, p.Name())
	}
	slog.Info("flight providers configured", "providers", names)

	return providers
}

func (m *Module) openHistory(ctx context.Context, cfg pkgconfig.Config, uuid pkguid.StringID) (*history.Store, error) {
	driver := cfg.GetString(prefix + "history.driver")
	if driver == "" {
		driver = history.DriverSQLite
	}
	dsn := cfg.GetString(prefix + "history.dsn")
	if dsn == "" {
		dsn = "flight_history.db"
	}

	db, err := history.Open(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}
	m.closers = append(m.closers, db.Close)

	store := history.NewStore(db, driver, uuid)
	if err := store.Migrate(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func seconds(cfg pkgconfig.Config, key string, fallback time.Duration) time.Duration {
	if v := cfg.GetInt(prefix + key); v > 0 {
		return time.Duration(v) * time.Second
	}
	return fallback
}

func milliseconds(cfg pkgconfig.Config, key string, fallback time.Duration) time.Duration {
	if v := cfg.GetInt(prefix + key); v > 0 {
		return time.Duration(v) * time.Millisecond
	}
	return fallback
}
