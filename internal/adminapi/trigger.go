// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package adminapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/recomendapp/db-sync/internal/driver"
	"github.com/recomendapp/db-sync/internal/platform/ctxutil"
	"github.com/recomendapp/db-sync/internal/platform/respond"
	"github.com/recomendapp/db-sync/internal/registry"
	"github.com/recomendapp/db-sync/internal/runid"
	"github.com/recomendapp/db-sync/internal/search"
	"github.com/recomendapp/db-sync/internal/synclog"
)

// triggerTimeout bounds a manually-triggered run; it is detached from the
// request's own context once accepted, so the run outlives the client's
// connection.
const triggerTimeout = 2 * time.Hour

// TriggerHandler runs kinds on demand, independent of the scheduled batch
// a workflow scheduler drives in production. It accepts a request, starts
// the run in the background, and returns immediately — a kind sync can
// run far longer than any reasonable HTTP client timeout.
type TriggerHandler struct {
	Driver    *driver.Driver
	SyncLog   *synclog.Store
	Projector *search.Projector
	Logger    *slog.Logger
	Now       func() (time.Time, error)
}

// Routes mounts the trigger and status endpoints under a chi.Router,
// guarded by [middleware.RequireAuth] at the call site.
func (h *TriggerHandler) Routes(r chi.Router) {
	r.Post("/{kind}", h.trigger)
	r.Get("/{kind}", h.status)
}

// trigger handles POST /api/v1/sync/{kind}. kind may be a registered kind
// name, or "all" to run the full registry.All order followed by a search
// projection pass, mirroring cmd/sync's own batch flow.
func (h *TriggerHandler) trigger(w http.ResponseWriter, r *http.Request) {
	kindName := chi.URLParam(r, "kind")
	if kindName != "all" {
		if _, ok := registry.ByName(kindName); !ok {
			respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "unknown kind: " + kindName, "code": "UNKNOWN_KIND"})
			return
		}
	}

	date, err := h.Now()
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	runID := runid.New()
	logger := h.Logger.With("run_id", runID, "kind", kindName, "trigger", "manual")
	operator := ctxutil.GetOperator(r.Context())
	if operator != nil {
		logger = logger.With("operator", operator.Subject)
	}

	runCtx := ctxutil.WithRunID(ctxutil.WithLogger(context.Background(), logger), runID)

	go func() {
		ctx, cancel := context.WithTimeout(runCtx, triggerTimeout)
		defer cancel()

		kinds := []string{kindName}
		if kindName == "all" {
			kinds = nil
			for _, k := range registry.All() {
				kinds = append(kinds, k.Name)
			}
		}

		for _, name := range kinds {
			logger.Info("manual_trigger_started", "kind", name)
			if err := h.Driver.Run(ctx, name, date); err != nil {
				logger.Error("manual_trigger_failed", "kind", name, "error", err)
				return
			}
		}

		if kindName == "all" && h.Projector != nil {
			if err := h.Projector.SyncAll(ctx); err != nil {
				logger.Error("manual_trigger_projection_failed", "error", err)
				return
			}
		}

		logger.Info("manual_trigger_finished")
	}()

	respond.Accepted(w, map[string]string{
		"run_id": runID,
		"kind":   kindName,
		"status": "started",
	})
}

// status handles GET /api/v1/sync/{kind}: reports the most recent sync
// log row for kind, whether it was triggered manually or by the batch.
func (h *TriggerHandler) status(w http.ResponseWriter, r *http.Request) {
	kindName := chi.URLParam(r, "kind")
	if _, ok := registry.ByName(kindName); !ok {
		respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "unknown kind: " + kindName, "code": "UNKNOWN_KIND"})
		return
	}

	entry, ok, err := h.SyncLog.Latest(r.Context(), kindName)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if !ok {
		respond.JSON(w, http.StatusNotFound, map[string]string{"kind": kindName, "status": "never_run"})
		return
	}

	respond.OK(w, map[string]any{
		"kind":       entry.Kind,
		"status":     entry.Status,
		"date":       entry.Date.Format("2006-01-02"),
		"updated_at": entry.UpdatedAt,
	})
}
