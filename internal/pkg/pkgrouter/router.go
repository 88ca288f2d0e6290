package pkgrouter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgerror"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkglog"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgmetrics"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkguid"
)

const HeaderRequestID = "X-Request-ID"

// Handler is the endpoint signature used by modules. The returned value is
// written as JSON with status 200; a returned error is mapped to a status code.
type Handler func(ctx context.Context, r *http.Request) (any, error)

type Router struct {
	mux  chi.Router
	uuid pkguid.StringID
}

func NewRouter(uuid pkguid.StringID) *Router {
	mux := chi.NewRouter()
	r := &Router{mux: mux, uuid: uuid}
	mux.Use(r.requestID, metricsMiddleware, chimw.Recoverer)
	mux.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "endpoint not found"})
	})
	mux.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	})
	return r
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func (r *Router) GET(path string, h Handler) { r.mux.Get(path, r.wrap(h)) }
func (r *Router) POST(path string, h Handler) { r.mux.Post(path, r.wrap(h)) }
func (r *Router) DELETE(path string, h Handler) { r.mux.Delete(path, r.wrap(h)) }

// Raw mounts a plain http.Handler, e.g. the prometheus scrape endpoint.
func (r *Router) Raw(method, path string, h http.Handler) {
	r.mux.Method(method, path, h)
}

// Param returns the named URL parameter of the matched route.
func Param(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

func (r *Router) wrap(h Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		resp, err := h(ctx, req)
		if err != nil {
			status, msg := mapError(err)
			if status >= http.StatusInternalServerError {
				slog.ErrorContext(ctx, "request failed", "path", req.URL.Path, "error", err)
			}
			writeJSON(w, status, errorResponse{Error: msg})
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (r *Router) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := req.Header.Get(HeaderRequestID)
		if id == "" {
			id = r.uuid.Generate()
		}
		w.Header().Set(HeaderRequestID, id)
		ctx := pkglog.WithAttrs(req.Context(), slog.String("request_id", id))
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)
		pkgmetrics.ObserveHTTPRequest(req.Method, routePattern(req), ww.Status(), time.Since(start))
	})
}

func routePattern(r *http.Request) string {
	rc := chi.RouteContext(r.Context())
	if rc == nil {
		return r.URL.Path
	}
	if p := rc.RoutePattern(); p != "" {
		return p
	}
	return r.URL.Path
}

type errorResponse struct {
	Error string `json:"error"`
}

func mapError(err error) (int, string) {
	be, ok := pkgerror.As(err)
	if !ok {
		return http.StatusInternalServerError, pkgerror.MsgInternal
	}
	switch be.Code() {
	case pkgerror.CodeInvalidInput:
		return http.StatusBadRequest, be.Error()
	case pkgerror.CodeNotFound:
		return http.StatusNotFound, be.Error()
	case pkgerror.CodeUnavailable:
		return http.StatusServiceUnavailable, be.Error()
	default:
		return http.StatusInternalServerError, pkgerror.MsgInternal
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // client went away
	json.NewEncoder(w).Encode(v)
}
