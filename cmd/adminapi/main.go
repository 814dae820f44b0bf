// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Command adminapi is the entry point for the sync platform's operator
surface.

It exposes liveness/readiness probes and a JWT-guarded manual-trigger
endpoint over the same [driver.Driver] cmd/sync assembles, for an operator
or an external scheduler to kick off a run outside the regular batch
schedule and poll its status.

Usage:

	go run cmd/adminapi/main.go

The flags/environment variables are documented on [config.Config];
ADMIN_API_ADDR, JWT_PRIVATE_KEY_PATH and JWT_PUBLIC_KEY_PATH matter here
specifically.

No business logic lives here. This file is strictly orchestration and
wiring; internal/adminapi holds the router and handlers.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/recomendapp/db-sync/internal/adminapi"
	"github.com/recomendapp/db-sync/internal/platform/constants"
	"github.com/recomendapp/db-sync/internal/platform/postgres"
	"github.com/recomendapp/db-sync/internal/platform/redis"
	"github.com/recomendapp/db-sync/internal/platform/sec"
	"github.com/recomendapp/db-sync/internal/wiring"
)

func main() {
	if err := run(); err != nil {
		slog.Error("admin_api_startup_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	deps, err := wiring.Build(appCtx, log)
	if err != nil {
		return fmt.Errorf("wire dependencies: %w", err)
	}
	defer deps.Close()

	jwtSvc, err := sec.NewTokenService(deps.Config.JWTPrivKeyPath, deps.Config.JWTPubKeyPath, constants.AuthIssuer)
	if err != nil {
		return fmt.Errorf("initialize jwt service: %w", err)
	}

	liveness, readiness := adminapi.NewHealthHandlers(adminapi.HealthDependencies{
		CheckDatabase: func() error {
			return postgres.Ping(context.Background(), deps.Pool)
		},
		CheckCache: func() error {
			if deps.Redis == nil {
				return nil
			}
			return redis.Ping(context.Background(), deps.Redis)
		},
	}, log)

	trigger := &adminapi.TriggerHandler{
		Driver:    deps.Driver,
		SyncLog:   deps.Driver.SyncLog,
		Projector: deps.Projector,
		Logger:    log,
		Now:       deps.Config.CurrentDate,
	}

	server := adminapi.NewServer(appCtx, deps.Config.AdminAPIAddr, log, jwtSvc, adminapi.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Trigger:   trigger,
	})

	shutdownErr := make(chan error, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			shutdownErr <- fmt.Errorf("http server crashed: %w", err)
		}
	}()

	log.Info("admin_api_running", slog.String("addr", deps.Config.AdminAPIAddr))

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-shutdownErr:
		return err
	}

	appCancel()

	log.Info("shutting_down_admin_api", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("graceful_shutdown_complete")
	return nil
}
