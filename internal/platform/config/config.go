// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (postgres, the HTTP client, the
    loader) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for a sync run and for the admin
// API that can trigger one.
type Config struct {

	// Environment selects dev/prod-sensitive defaults (log level, etc).
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG"       envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory,
	// used only to stand up a schema for integration tests — see
	// internal/platform/migration.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis), used only as refcache's optional second tier.
	RedisURL string `env:"REDIS_URL"`

	// TMDBAPIKeysRaw is a comma-separated list of upstream API credentials.
	// The credential pool splits and rotates across these (§4.1).
	TMDBAPIKeysRaw string `env:"TMDB_API_KEYS,required"`

	// SearchURL / SearchAPIKey address the Typesense-like search index (§4.11).
	SearchURL    string `env:"SEARCH_URL,required"`
	SearchAPIKey string `env:"SEARCH_API_KEY,required"`

	// TMPDir is the scratch directory for CSV staging buffers (§4.5).
	TMPDir string `env:"TMP_DIR" envDefault:"/tmp/db-sync"`

	// ChunkSize* bound how many parent entities are fetched, mapped, and
	// loaded together before a transaction commits (§4.10).
	ChunkSizeMovie  int `env:"CHUNK_SIZE_MOVIE"  envDefault:"512"`
	ChunkSizeSeries int `env:"CHUNK_SIZE_SERIES" envDefault:"500"`
	ChunkSizePerson int `env:"CHUNK_SIZE_PERSON" envDefault:"500"`
	ChunkSizeOrg    int `env:"CHUNK_SIZE_ORG"    envDefault:"100"`

	// HTTPConcurrency bounds the number of in-flight upstream detail fetches.
	HTTPConcurrency int `env:"HTTP_CONCURRENCY" envDefault:"20"`

	// HTTPRateLimitRPS is the outbound request rate of the single token
	// bucket shared by all credentials (§4.2).
	HTTPRateLimitRPS float64 `env:"HTTP_RATE_LIMIT_RPS" envDefault:"40"`

	// CurrentDateRaw overrides "today" for replay or deterministic testing
	// (YYYY-MM-DD). Empty means use the real wall-clock date.
	CurrentDateRaw string `env:"CURRENT_DATE"`

	// Per-kind enable switches let an operator run a subset of kinds.
	EnableLanguage   bool `env:"ENABLE_LANGUAGE"   envDefault:"true"`
	EnableCountry    bool `env:"ENABLE_COUNTRY"    envDefault:"true"`
	EnableGenre      bool `env:"ENABLE_GENRE"      envDefault:"true"`
	EnableKeyword    bool `env:"ENABLE_KEYWORD"    envDefault:"true"`
	EnableCollection bool `env:"ENABLE_COLLECTION" envDefault:"true"`
	EnableCompany    bool `env:"ENABLE_COMPANY"    envDefault:"true"`
	EnableNetwork    bool `env:"ENABLE_NETWORK"    envDefault:"true"`
	EnablePerson     bool `env:"ENABLE_PERSON"     envDefault:"true"`
	EnableMovie      bool `env:"ENABLE_MOVIE"      envDefault:"true"`
	EnableSeries     bool `env:"ENABLE_SERIES"     envDefault:"true"`

	// UpdatePopularity is parsed from UPDATE_POPULARITY, but no component
	// reads it: the dedicated low-WAL popularity refresh pass (see
	// SPEC_FULL.md E3.1) runs for every kind with SupportsPopularity
	// whatever its value.
	UpdatePopularity bool `env:"UPDATE_POPULARITY" envDefault:"true"`

	// ExtraLanguagesRaw is a comma-separated allow-list of supplementary
	// locale tags whose translations are also retained, beyond the
	// default "en-US" (SPEC_FULL.md E3.2).
	ExtraLanguagesRaw string `env:"EXTRA_LANGUAGES" envDefault:"fr-FR"`

	// Admin API
	AdminAPIAddr   string `env:"ADMIN_API_ADDR" envDefault:":8090"`
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the process is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the process is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// TMDBAPIKeys splits TMDBAPIKeysRaw into the individual credentials the
// credential pool rotates across.
func (c *Config) TMDBAPIKeys() []string {
	return splitNonEmpty(c.TMDBAPIKeysRaw)
}

// ExtraLanguages splits ExtraLanguagesRaw into the configured locale tag
// allow-list.
func (c *Config) ExtraLanguages() []string {
	return splitNonEmpty(c.ExtraLanguagesRaw)
}

// CurrentDate resolves CurrentDateRaw to a concrete date, defaulting to
// today (UTC) when unset.
func (c *Config) CurrentDate() (time.Time, error) {
	if c.CurrentDateRaw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse("2006-01-02", c.CurrentDateRaw)
	if err != nil {
		return time.Time{}, fmt.Errorf("config: invalid CURRENT_DATE %q: %w", c.CurrentDateRaw, err)
	}
	return d, nil
}

func splitNonEmpty(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
