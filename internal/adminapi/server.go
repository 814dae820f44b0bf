// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package adminapi wires together the HTTP router, middleware chain, and
handlers that let an operator probe and manually trigger a sync run,
independent of the batch flow cmd/sync drives on its own schedule.

Architecture:

  - This package is the topmost transport boundary for the admin surface.
  - It composes the platform middleware chain around a chi router.
  - Only this package and cmd/adminapi are allowed to import net/http
    server primitives.
*/
package adminapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/recomendapp/db-sync/internal/platform/constants"
	"github.com/recomendapp/db-sync/internal/platform/middleware"
)

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// Handlers groups the admin API's handler set.
type Handlers struct {
	// Liveness is the /health handler — always 200 while the process runs.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — 200 only once every dependency
	// answers a shallow ping.
	Readiness http.HandlerFunc

	// Trigger mounts the manual-run endpoints under /api/v1/sync.
	Trigger *TriggerHandler
}

// NewServer constructs the chi router with the full middleware chain and
// registers every route.
func NewServer(ctx context.Context, addr string, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	rte := chi.NewRouter()

	rte.Use(middleware.RequestID())
	rte.Use(middleware.StructuredLogger(log))
	rte.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	rte.Use(middleware.RateLimit(ctx))
	rte.Use(middleware.PanicRecovery(log))
	rte.Use(middleware.Authenticate(verifier))
	rte.Use(chimw.CleanPath)

	rte.Get("/health", h.Liveness)
	rte.Get("/ready", h.Readiness)

	rte.Route("/api/v1/sync", func(api chi.Router) {
		api.Use(middleware.RequireAuth)
		h.Trigger.Routes(api)
	})

	return &Server{
		router: rte,
		log:    log,
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           rte,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// ListenAndServe starts the HTTP server. It blocks until the server is
// closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("admin api starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
