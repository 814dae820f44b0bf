// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the sync platform.

It defines default timeouts, rate limits, and cross-cutting keys shared between
the HTTP client, the loader, and the admin API.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "db-sync"
	AppVersion = "0.1.0-dev"
)

// # Postgres Statement Timing

const (
	// StatementTimeout bounds a single query issued over a pooled connection.
	// Bulk loads run long COPY + upsert statements, so this is generous
	// compared to a typical request-response API.
	StatementTimeout = 5 * time.Minute

	// ShutdownTimeout is how long the admin API waits for in-flight requests
	// to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Admin API Server Timing

const (
	DefaultReadTimeout       = 5 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 120 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout bounds how long any single admin API request may
	// run before the server cancels it, independent of a sync run's own
	// much longer StatementTimeout.
	GlobalRequestTimeout = 15 * time.Second
)

// # Rate Limiting (Admin API inbound)

const (
	DefaultRateLimitRPS   = 20.0
	DefaultRateLimitBurst = 30

	RateLimitCleanupInterval = 1 * time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # Outbound HTTP Client (TMDB / search index)

const (
	// TMDBAPIBaseURL is the upstream metadata API's REST root.
	TMDBAPIBaseURL = "https://api.themoviedb.org/3"

	// TMDBAPIKeyParam is the query parameter credentials are sent under.
	TMDBAPIKeyParam = "api_key"

	// DefaultHTTPConcurrency bounds the number of in-flight detail fetches.
	DefaultHTTPConcurrency = 20

	// DefaultHTTPRateLimitRPS is the steady-state request rate of the single
	// bucket shared by all credentials.
	DefaultHTTPRateLimitRPS = 40.0

	// DefaultHTTPRateLimitBurst allows brief bursts above the steady rate.
	DefaultHTTPRateLimitBurst = 40

	// DefaultHTTPMaxRetries bounds the exponential backoff attempts for a
	// transient upstream failure (5xx, 429, timeout) before it is fatal.
	DefaultHTTPMaxRetries = 5
)

// # Headers

const (
	HeaderXRequestID     = "X-Request-ID"
	HeaderXRealIP        = "X-Real-IP"
	HeaderXForwardedFor  = "X-Forwarded-For"
	HeaderOrigin         = "Origin"
	HeaderAuthorization  = "Authorization"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in the admin API's JWTs.
	AuthIssuer = "db-sync-admin"
)
