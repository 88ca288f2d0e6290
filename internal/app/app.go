package app

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkglog"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgmetrics"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkguid"
)

type App struct {
	config     pkgconfig.Config
	uuid       pkguid.StringID
	router     *pkgrouter.Router
	httpServer *http.Server
	closerFn   map[string]func(context.Context) error
}

func New() *App {
	app := &App{}
	pkglog.InitLogging()
	pkgmetrics.Register()
	app.initConfig()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()
	return app
}
