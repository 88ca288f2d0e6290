package inbound

import (
	"context"

	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/entity"
	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/usecase"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgrouter"
)

type uc interface {
	Search(ctx context.Context, in usecase.SearchInput) (*usecase.SearchOutput, error)
	Airports(ctx context.Context, keyword string) ([]entity.Airport, error)
	Rates(ctx context.Context, base string) (entity.ExchangeRates, error)
	History(ctx context.Context, limit int) ([]entity.SearchHistory, error)
	RemoveHistory(ctx context.Context, id string) error
	ClearHistory(ctx context.Context) error
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/flights", end.Flights)
	r.GET("/airports", end.Airports)
	r.GET("/rates", end.Rates)
	r.GET("/history", end.History)
	r.DELETE("/history", end.ClearHistory)
	r.DELETE("/history/{id}", end.RemoveHistory)
}
