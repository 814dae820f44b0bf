// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Command sync is the Kind Registry & Top-Level Flow: it wires every
component built under internal/ into one batch run and drives
[registry.All] in order, aborting the remainder on a kind's failure — the
default (non-orchestrator) mode.
*/
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/recomendapp/db-sync/internal/platform/ctxutil"
	"github.com/recomendapp/db-sync/internal/registry"
	"github.com/recomendapp/db-sync/internal/runid"
	"github.com/recomendapp/db-sync/internal/wiring"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, logger); err != nil {
		logger.Error("sync run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	deps, err := wiring.Build(ctx, logger)
	if err != nil {
		return err
	}
	defer deps.Close()

	runID := runid.New()
	ctx = ctxutil.WithRunID(ctx, runID)
	logger = logger.With("run_id", runID)
	ctx = ctxutil.WithLogger(ctx, logger)

	date, err := deps.Config.CurrentDate()
	if err != nil {
		return err
	}

	for _, kind := range registry.All() {
		if !wiring.Enabled(deps.Config, kind.Name) {
			logger.Info("kind disabled, skipping", "kind", kind.Name)
			continue
		}
		logger.Info("starting kind sync", "kind", kind.Name, "date", date.Format("2006-01-02"))
		if err := deps.Driver.Run(ctx, kind.Name, date); err != nil {
			return err
		}
	}

	if err := deps.Projector.SyncAll(ctx); err != nil {
		logger.Error("search projection failed", "error", err)
		return err
	}

	return nil
}
