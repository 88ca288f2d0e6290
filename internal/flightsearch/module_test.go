package flightsearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkguid"
)

func TestNewWiresEndpoints(t *testing.T) {
	cfg := pkgconfig.NewFromMap(map[string]any{
		prefix + "provider.file.path":     "../../mocks/amadeus_flight_offers.json",
		prefix + "provider.rate_limit_ms": 1,
		prefix + "history.enabled":        true,
		prefix + "history.dsn":            filepath.Join(t.TempDir(), "history.db"),
	})
	router := pkgrouter.NewRouter(pkguid.NewUUID())

	mod, err := New(context.Background(), Dependency{Config: cfg, Router: router, UUID: pkguid.NewUUID()})
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	t.Cleanup(func() {
		if err := mod.Close(context.Background()); err != nil {
			t.Errorf("close: %v", err)
		}
	})

	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/airports?keyword=dp")
	if err != nil {
		t.Fatalf("get airports: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		Airports []struct {
			IATACode string `json:"iata_code"`
		} `json:"airports"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Airports) != 1 || body.Airports[0].IATACode != "DPS" {
		t.Fatalf("unexpected airports %+v", body.Airports)
	}

	resp, err = http.Get(srv.URL + "/history")
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected history endpoint to be enabled, got %d", resp.StatusCode)
	}
}

func TestNewRejectsUnknownCacheDriver(t *testing.T) {
	cfg := pkgconfig.NewFromMap(map[string]any{
		prefix + "cache.driver": "memcached",
	})
	_, err := New(context.Background(), Dependency{
		Config: cfg,
		Router: pkgrouter.NewRouter(pkguid.NewUUID()),
		UUID:   pkguid.NewUUID(),
	})
	if err == nil {
		t.Fatal("expected error for unknown cache driver")
	}
}
