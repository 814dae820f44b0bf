// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package adminapi

import (
	"log/slog"
	"net/http"

	"github.com/recomendapp/db-sync/internal/platform/constants"
	"github.com/recomendapp/db-sync/internal/platform/respond"
)

// HealthDependencies holds the injectable dependency checkers for the
// liveness/readiness probes.
type HealthDependencies struct {
	// CheckDatabase performs a shallow ping of the PostgreSQL pool.
	CheckDatabase func() error

	// CheckCache performs a shallow ping of the Redis client. May be nil
	// when the run has no Redis tier configured — refcache's second tier
	// is optional.
	CheckCache func() error
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

// NewHealthHandlers constructs the liveness and readiness [http.HandlerFunc] pair.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health: confirms the process is up and accepting
// connections, without touching any downstream dependency.
func (h *healthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	respond.OK(w, map[string]string{
		constants.FieldStatus: "ok",
	})
}

// readiness handles GET /ready: verifies Postgres (and Redis, if
// configured) are reachable before an orchestrator routes a trigger here.
func (h *healthHandler) readiness(w http.ResponseWriter, _ *http.Request) {
	type checkResult struct {
		Name  string `json:"name"`
		IsOK  bool   `json:"ok"`
		Error string `json:"error,omitempty"`
	}

	var results []checkResult
	ready := true

	if h.dependencies.CheckDatabase != nil {
		result := checkResult{Name: "postgres", IsOK: true}
		if err := h.dependencies.CheckDatabase(); err != nil {
			result.IsOK = false
			result.Error = err.Error()
			ready = false
			h.logger.Error("readiness_check_failed", "dependency", "postgres", "error", err)
		}
		results = append(results, result)
	}

	if h.dependencies.CheckCache != nil {
		result := checkResult{Name: "redis", IsOK: true}
		if err := h.dependencies.CheckCache(); err != nil {
			result.IsOK = false
			result.Error = err.Error()
			ready = false
			h.logger.Error("readiness_check_failed", "dependency", "redis", "error", err)
		}
		results = append(results, result)
	}

	status := "ready"
	httpStatus := http.StatusOK
	if !ready {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	respond.JSON(w, httpStatus, map[string]any{
		constants.FieldStatus: status,
		constants.FieldChecks: results,
	})
}
