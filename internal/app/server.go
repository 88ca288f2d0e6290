package app

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"
)

// Start serves HTTP in the background. The returned channel fires once when
// the process receives a termination signal.
func (a *App) Start() <-chan struct{} {
	terminate := make(chan struct{})

	go func() {
		slog.Info("http server listening", "address", a.httpServer.Addr)

		if err := a.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to listen and serve http server", "error", err)
			os.Exit(1)
		}
	}()

	go func() {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
		defer stop()

		<-ctx.Done()
		slog.Info("termination signal received, shutting down")
		close(terminate)
	}()

	return terminate
}

// Stop drains in-flight requests first, then releases module resources.
func (a *App) Stop(ctx context.Context) {
	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to close resources", "name", "HTTP Server", "error", err)
	}

	for _, name := range slices.Sorted(maps.Keys(a.closerFn)) {
		if err := a.closerFn[name](ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", name, "error", err)
			continue
		}
		slog.InfoContext(ctx, "resource closed", "name", name)
	}

	slog.InfoContext(ctx, "application gracefully shutdown")
}

// ShutdownTimeout bounds Stop; app.server.shutdown_timeout accepts values
// like "15s" and defaults to ten seconds.
func (a *App) ShutdownTimeout() time.Duration {
	if d := a.config.GetDuration("app.server.shutdown_timeout"); d > 0 {
		return d
	}
	return 10 * time.Second
}
