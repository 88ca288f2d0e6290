package provider

import (
	"context"
	"errors"
	"time"

	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/entity"
)

// ErrTemporary marks failures worth retrying: timeouts, rate limiting and
// upstream 5xx responses.
var ErrTemporary = errors.New("temporary provider error")

// DefaultMaxResults caps the offers requested per search.
const DefaultMaxResults = 250

type SearchRequest struct {
	Origin        string
	Destination   string
	DepartureDate time.Time
	ReturnDate    *time.Time
	Adults        int
	Children      int
	Infants       int
	CabinClass    entity.CabinClass
	NonStop       bool
	CurrencyCode  string
	MaxPrice      int
	Max           int
}

type Provider interface {
	Name() string
	Search(ctx context.Context, req SearchRequest) ([]entity.Flight, error)
	Airports(ctx context.Context, keyword string) ([]entity.Airport, error)
}

type RatesProvider interface {
	Rates(ctx context.Context, base string) (entity.ExchangeRates, error)
}
