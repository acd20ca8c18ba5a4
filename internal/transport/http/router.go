// Package httptransport is the thin HTTP layer over the issuance ledger. It
// delegates to domain services without embedding business logic so transport
// concerns remain isolated.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/platform-web3/hypehaus-contract/internal/platform/metrics"
	"github.com/platform-web3/hypehaus-contract/internal/platform/middleware"
)

// Registrar is a handler group that mounts its routes on the router.
type Registrar interface {
	Register(r chi.Router)
}

// NewRouter assembles the API router: the shared middleware chain, the
// operational endpoints and every handler group's routes. httpMetrics may be
// nil to serve without request instrumentation.
func NewRouter(logger *slog.Logger, httpMetrics *metrics.HTTP, groups ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Logger(logger))
	if httpMetrics != nil {
		r.Use(httpMetrics.Instrument)
	}
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	for _, group := range groups {
		group.Register(r)
	}
	return r
}
