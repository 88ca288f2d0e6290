package inbound

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgerror"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgrouter"
)

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) Flights(ctx context.Context, r *http.Request) (any, error) {
	input, err := parseSearchInput(r)
	if err != nil {
		return nil, err
	}

	output, err := h.uc.Search(ctx, input)
	if err != nil {
		return nil, err
	}

	return mapSearchResponse(output), nil
}

func (h *HTTPEndpoint) Airports(ctx context.Context, r *http.Request) (any, error) {
	airports, err := h.uc.Airports(ctx, r.URL.Query().Get("keyword"))
	if err != nil {
		return nil, err
	}

	resp := make([]AirportResponse, 0, len(airports))
	for _, a := range airports {
		resp = append(resp, AirportResponse{
			IATACode:    a.IATACode,
			Name:        a.Name,
			CityName:    a.CityName,
			CityCode:    a.CityCode,
			CountryName: a.CountryName,
			CountryCode: a.CountryCode,
		})
	}
	return AirportsResponse{Airports: resp}, nil
}

func (h *HTTPEndpoint) Rates(ctx context.Context, r *http.Request) (any, error) {
	rates, err := h.uc.Rates(ctx, strings.TrimSpace(r.URL.Query().Get("base")))
	if err != nil {
		return nil, err
	}

	return RatesResponse{
		Base:      rates.Base,
		Rates:     rates.Rates,
		UpdatedAt: rates.UpdatedAt.Unix(),
	}, nil
}

func (h *HTTPEndpoint) History(ctx context.Context, r *http.Request) (any, error) {
	limit := 0
	if value := strings.TrimSpace(r.URL.Query().Get("limit")); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed <= 0 {
			return nil, pkgerror.NewBusiness("invalid limit", pkgerror.CodeInvalidInput)
		}
		limit = parsed
	}

	items, err := h.uc.History(ctx, limit)
	if err != nil {
		return nil, err
	}

	resp := make([]HistoryResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, mapHistory(item))
	}
	return HistoryListResponse{History: resp}, nil
}

func (h *HTTPEndpoint) RemoveHistory(ctx context.Context, r *http.Request) (any, error) {
	if err := h.uc.RemoveHistory(ctx, pkgrouter.Param(r, "id")); err != nil {
		return nil, err
	}
	return MessageResponse{Message: "search history entry removed"}, nil
}

func (h *HTTPEndpoint) ClearHistory(ctx context.Context, _ *http.Request) (any, error) {
	if err := h.uc.ClearHistory(ctx); err != nil {
		return nil, err
	}
	return MessageResponse{Message: "search history cleared"}, nil
}
