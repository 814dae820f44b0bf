// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package wiring is the composition root shared by cmd/sync and cmd/adminapi:
both processes assemble the identical set of dependencies (database pool,
upstream client, loader, ref cache, search projector) from the same
[config.Config], so the construction logic lives here once rather than
being duplicated across two main packages.
*/
package wiring

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/recomendapp/db-sync/internal/credential"
	"github.com/recomendapp/db-sync/internal/driver"
	"github.com/recomendapp/db-sync/internal/httpclient"
	"github.com/recomendapp/db-sync/internal/loader"
	"github.com/recomendapp/db-sync/internal/mapper/langtag"
	"github.com/recomendapp/db-sync/internal/platform/config"
	"github.com/recomendapp/db-sync/internal/platform/constants"
	"github.com/recomendapp/db-sync/internal/platform/postgres"
	"github.com/recomendapp/db-sync/internal/platform/redis"
	"github.com/recomendapp/db-sync/internal/refcache"
	"github.com/recomendapp/db-sync/internal/search"
	"github.com/recomendapp/db-sync/internal/synclog"
	"github.com/recomendapp/db-sync/internal/upstream"
)

// Deps bundles every component a sync run or the admin API needs. Close
// must be called once the caller is done with it.
type Deps struct {
	Config    *config.Config
	Pool      *pgxpool.Pool
	Redis     *goredis.Client
	Driver    *driver.Driver
	Projector *search.Projector
}

// Build loads configuration and constructs Deps. It is the single place
// cmd/sync and cmd/adminapi both call into.
func Build(ctx context.Context, logger *slog.Logger) (*Deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, err
	}

	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL, logger)
		if err != nil {
			pool.Close()
			return nil, err
		}
	}

	creds, err := credential.NewPool(cfg.TMDBAPIKeys())
	if err != nil {
		pool.Close()
		return nil, err
	}

	api := httpclient.New(httpclient.Config{
		BaseURL:        constants.TMDBAPIBaseURL,
		Concurrency:    int64(cfg.HTTPConcurrency),
		RateLimitRPS:   cfg.HTTPRateLimitRPS,
		RateLimitBurst: constants.DefaultHTTPRateLimitBurst,
		MaxRetries:     constants.DefaultHTTPMaxRetries,
		APIKeyParam:    constants.TMDBAPIKeyParam,
	}, creds, nil)
	upstreamClient := upstream.New(api, nil)

	langs, err := langtag.NewAllowlist(cfg.ExtraLanguages())
	if err != nil {
		pool.Close()
		return nil, err
	}

	searchClient := search.New(search.Config{
		BaseURL:    cfg.SearchURL,
		APIKey:     cfg.SearchAPIKey,
		MaxRetries: constants.DefaultHTTPMaxRetries,
	}, nil)
	projector := search.NewProjector(searchClient, pool)

	d := &driver.Driver{
		Upstream: upstreamClient,
		Pool:     pool,
		Loader:   loader.New(pool),
		RefCache: refcache.New(pool, redisClient),
		SyncLog:  synclog.New(pool),
		Langs:    langs,
		// Projector is left nil: the per-chunk raw-document push is an
		// optional path whose raw upstream document shape doesn't match
		// the denormalized rows the declared search collections expect.
		// The dedicated Projector below is the authoritative one.
		FetchConcurrency:   int64(cfg.HTTPConcurrency),
		StagingDir:         cfg.TMPDir,
		ChunkSizeOverrides: ChunkOverrides(cfg),
	}

	return &Deps{Config: cfg, Pool: pool, Redis: redisClient, Driver: d, Projector: projector}, nil
}

// Close releases the pooled resources Build acquired.
func (deps *Deps) Close() {
	if deps.Redis != nil {
		deps.Redis.Close()
	}
	deps.Pool.Close()
}

// ChunkOverrides translates the configured per-kind chunk sizes into the
// map [driver.Driver.ChunkSizeOverrides] consults, falling back to each
// kind's registry default when unset.
func ChunkOverrides(cfg *config.Config) map[string]int {
	return map[string]int{
		"movie":      cfg.ChunkSizeMovie,
		"series":     cfg.ChunkSizeSeries,
		"person":     cfg.ChunkSizePerson,
		"collection": cfg.ChunkSizeOrg,
		"company":    cfg.ChunkSizeOrg,
		"network":    cfg.ChunkSizeOrg,
	}
}

// Enabled reports whether cfg's per-kind switch allows kindName to run.
func Enabled(cfg *config.Config, kindName string) bool {
	switch kindName {
	case "language":
		return cfg.EnableLanguage
	case "country":
		return cfg.EnableCountry
	case "genre":
		return cfg.EnableGenre
	case "keyword":
		return cfg.EnableKeyword
	case "collection":
		return cfg.EnableCollection
	case "company":
		return cfg.EnableCompany
	case "network":
		return cfg.EnableNetwork
	case "person":
		return cfg.EnablePerson
	case "movie":
		return cfg.EnableMovie
	case "series":
		return cfg.EnableSeries
	default:
		return true
	}
}
