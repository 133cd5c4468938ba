// Package api wires the HTTP surface the untrusted server exposes: the
// search endpoint, the encrypted document fetch, and a health probe.
package api

import (
	"net/http"

	"github.com/sseindex/sseindex-server/api/handlers"
	"github.com/sseindex/sseindex-server/internal/index"
	"github.com/sseindex/sseindex-server/internal/rate"
	"github.com/sseindex/sseindex-server/internal/store"
)

// HTTPHandler assembles the API's dependencies: the in-memory index
// loaded at startup, the document store, and a per-peer query limiter.
type HTTPHandler struct {
	Table   *index.Table
	Array   *index.Array
	DB      *store.DB
	Limiter *rate.PerPeerLimiter
}

// NewHTTPHandler returns an HTTPHandler over the given index and store.
func NewHTTPHandler(table *index.Table, array *index.Array, db *store.DB, limiter *rate.PerPeerLimiter) *HTTPHandler {
	return &HTTPHandler{Table: table, Array: array, DB: db, Limiter: limiter}
}

// RegisterRoutes attaches the API's routes to mux (a fresh
// http.NewServeMux() if nil) and returns it. Only the search route is
// wrapped with the per-peer rate limiter; health and document fetches
// are not throttled.
func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux) http.Handler {
	if mux == nil {
		mux = http.NewServeMux()
	}

	mux.HandleFunc("GET /health", handlers.HealthHandler)
	mux.Handle("POST /api/v1/search", h.Limiter.Middleware(handlers.SearchHandler(h.Table, h.Array)))
	mux.HandleFunc("GET /api/v1/documents/{id}", handlers.DocumentHandler(h.DB))

	return mux
}
