package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/entity"
)

// freeAPIKey selects the keyless open endpoint.
const freeAPIKey = "free"

type exchangeRateResponse struct {
	Result             string             `json:"result"`
	BaseCode           string             `json:"base_code"`
	TimeLastUpdateUnix int64              `json:"time_last_update_unix"`
	ConversionRates    map[string]float64 `json:"conversion_rates"`
	Rates              map[string]float64 `json:"rates"`
	ErrorType          string             `json:"error-type"`
}

type ExchangeRateClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewExchangeRateClient(baseURL, apiKey string, timeout time.Duration) *ExchangeRateClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if apiKey == "" {
		apiKey = freeAPIKey
	}
	return &ExchangeRateClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *ExchangeRateClient) Rates(ctx context.Context, base string) (entity.ExchangeRates, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	path := "/latest/" + base
	if c.apiKey != freeAPIKey {
		path = "/" + c.apiKey + path
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return entity.ExchangeRates{}, err
	}
	req.Header.Set("Accept", "application/json")

	var resp exchangeRateResponse
	if err := doJSON(c.client, req, &resp, func(status int, _ io.Reader) error {
		return &APIError{Status: status}
	}); err != nil {
		return entity.ExchangeRates{}, fmt.Errorf("exchange rates: %w", err)
	}
	if resp.Result != "success" {
		return entity.ExchangeRates{}, fmt.Errorf("exchange rates: result %q %s", resp.Result, resp.ErrorType)
	}

	rates := resp.ConversionRates
	if rates == nil {
		rates = resp.Rates
	}
	return entity.ExchangeRates{
		Base:      resp.BaseCode,
		Rates:     rates,
		UpdatedAt: time.Unix(resp.TimeLastUpdateUnix, 0).UTC(),
	}, nil
}
