package app

import (
	"context"
	"log/slog"
	"os"

	fs "github.com/shandysiswandi/goflightsearch/internal/flightsearch"
)

func (a *App) initModules() {
	if a.closerFn == nil {
		a.closerFn = map[string]func(context.Context) error{}
	}

	if a.config.GetBool("modules.flight-search.enabled") {
		mod, err := fs.New(context.Background(), fs.Dependency{
			Config: a.config,
			Router: a.router,
			UUID:   a.uuid,
		})
		if err != nil {
			slog.Error("failed to init module flight-search", "error", err)
			os.Exit(1)
		}
		a.closerFn["Flight Search"] = mod.Close
	}
}
