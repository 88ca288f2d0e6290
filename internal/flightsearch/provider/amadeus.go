package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/entity"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgtime"
)

const (
	amadeusTokenPath     = "/v1/security/oauth2/token"
	amadeusOffersPath    = "/v2/shopping/flight-offers"
	amadeusLocationsPath = "/v1/reference-data/locations"

	// tokenSkew renews the access token a minute before Amadeus expires it.
	tokenSkew = time.Minute
)

// APIError is a non-2xx upstream response.
type APIError struct {
	Status int
	Title  string
	Detail string
}

func (e *APIError) Error() string {
	msg := e.Title
	if e.Detail != "" {
		msg = e.Title + ": " + e.Detail
	}
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("upstream status %d: %s", e.Status, msg)
}

// Unwrap lets errors.Is(err, ErrTemporary) match rate limiting and 5xx.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusTooManyRequests || e.Status >= http.StatusInternalServerError {
		return ErrTemporary
	}
	return nil
}

type AmadeusConfig struct {
	BaseURL   string
	APIKey    string
	APISecret string
	Timeout   time.Duration
}

type AmadeusProvider struct {
	cfg    AmadeusConfig
	client *http.Client
	now    func() time.Time

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewAmadeusProvider(cfg AmadeusConfig) *AmadeusProvider {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &AmadeusProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		now:    time.Now,
	}
}

func (a *AmadeusProvider) Name() string {
	return "Amadeus"
}

func (a *AmadeusProvider) Search(ctx context.Context, req SearchRequest) ([]entity.Flight, error) {
	var resp amadeusOffersResponse
	if err := a.get(ctx, amadeusOffersPath, offersQuery(req), &resp); err != nil {
		return nil, fmt.Errorf("amadeus flight offers: %w", err)
	}

	flights, errs := transformOffers(resp)
	for _, err := range errs {
		slog.WarnContext(ctx, "skip invalid flight offer", "provider", a.Name(), "error", err)
	}
	return flights, nil
}

func (a *AmadeusProvider) Airports(ctx context.Context, keyword string) ([]entity.Airport, error) {
	q := url.Values{}
	q.Set("keyword", strings.ToUpper(strings.TrimSpace(keyword)))
	q.Set("subType", "AIRPORT")
	q.Set("page[limit]", "10")

	var resp amadeusLocationResponse
	if err := a.get(ctx, amadeusLocationsPath, q, &resp); err != nil {
		return nil, fmt.Errorf("amadeus locations: %w", err)
	}

	airports := make([]entity.Airport, 0, len(resp.Data))
	for _, l := range resp.Data {
		if l.IATACode == "" {
			continue
		}
		airports = append(airports, transformLocation(l))
	}
	return airports, nil
}

func offersQuery(req SearchRequest) url.Values {
	q := url.Values{}
	q.Set("originLocationCode", strings.ToUpper(req.Origin))
	q.Set("destinationLocationCode", strings.ToUpper(req.Destination))
	q.Set("departureDate", req.DepartureDate.Format(pkgtime.DateLayout))
	q.Set("adults", strconv.Itoa(max(req.Adults, 1)))
	if req.ReturnDate != nil {
		q.Set("returnDate", req.ReturnDate.Format(pkgtime.DateLayout))
	}
	if req.Children > 0 {
		q.Set("children", strconv.Itoa(req.Children))
	}
	if req.Infants > 0 {
		q.Set("infants", strconv.Itoa(req.Infants))
	}
	if req.CabinClass != "" {
		q.Set("travelClass", string(req.CabinClass))
	}
	if req.NonStop {
		q.Set("nonStop", "true")
	}
	if req.CurrencyCode != "" {
		q.Set("currencyCode", req.CurrencyCode)
	}
	if req.MaxPrice > 0 {
		q.Set("maxPrice", strconv.Itoa(req.MaxPrice))
	}
	limit := req.Max
	if limit <= 0 {
		limit = DefaultMaxResults
	}
	q.Set("max", strconv.Itoa(limit))
	return q
}

func (a *AmadeusProvider) get(ctx context.Context, path string, q url.Values, out any) error {
	token, err := a.accessToken(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.BaseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	err = doJSON(a.client, req, out, decodeAmadeusError)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		a.dropToken()
	}
	return err
}

func (a *AmadeusProvider) accessToken(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.token != "" && a.now().Before(a.tokenExpiry) {
		return a.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", a.cfg.APIKey)
	form.Set("client_secret", a.cfg.APISecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.BaseURL+amadeusTokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var auth amadeusAuthResponse
	if err := doJSON(a.client, req, &auth, decodeAmadeusError); err != nil {
		return "", fmt.Errorf("amadeus auth: %w", err)
	}
	if auth.AccessToken == "" {
		return "", errors.New("amadeus auth: empty access token")
	}

	a.token = auth.AccessToken
	a.tokenExpiry = a.now().Add(time.Duration(auth.ExpiresIn)*time.Second - tokenSkew)
	return a.token, nil
}

func (a *AmadeusProvider) dropToken() {
	a.mu.Lock()
	a.token = ""
	a.tokenExpiry = time.Time{}
	a.mu.Unlock()
}

func decodeAmadeusError(status int, body io.Reader) error {
	apiErr := &APIError{Status: status}
	var resp amadeusErrorResponse
	if err := json.NewDecoder(body).Decode(&resp); err == nil && len(resp.Errors) > 0 {
		apiErr.Title = resp.Errors[0].Title
		apiErr.Detail = resp.Errors[0].Detail
	}
	return apiErr
}
