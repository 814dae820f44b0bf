// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package httpclient is the rate-limited, credential-rotating HTTP client
used for every upstream call (§4.2).

It composes three primitives, each grounded in a different repo of the
pack: a [rate.Limiter] token bucket (the same primitive yomira's
middleware.RateLimit uses for *inbound* per-IP limiting, repurposed here for
*outbound* limiting through one bucket shared by every credential), a
[credential.Pool] rotation (grounded
on original_source/sync_tmdb/models/tmdb.py's `api_key_cycle`), and
`cenkalti/backoff/v4` exponential retry (the same dependency
steveyegge-beads and untoldecay-BeadsLog carry for their own upstream
API-retry paths). A weighted semaphore bounds the number of in-flight
requests independently of the rate limiter, since the limiter bounds
*throughput* but not *concurrency*.
*/
package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/recomendapp/db-sync/internal/credential"
	"github.com/recomendapp/db-sync/internal/platform/syncerr"
)

// Config tunes the client's concurrency, rate, and retry behavior.
type Config struct {
	// BaseURL is prepended to every request path.
	BaseURL string

	// Concurrency bounds the number of in-flight requests.
	Concurrency int64

	// RateLimitRPS is the steady-state request rate, shared across all
	// credentials in the pool (each credential still only sees its share
	// of the rotation, but the bucket itself is global to stay under the
	// upstream's account-wide limit).
	RateLimitRPS float64

	// RateLimitBurst allows brief bursts above RateLimitRPS.
	RateLimitBurst int

	// MaxRetries bounds the number of retries for a transient failure
	// before it is surfaced as fatal for that request.
	MaxRetries int

	// APIKeyParam is the query parameter name the credential is sent
	// under (TMDB uses "api_key").
	APIKeyParam string
}

// Client is the shared outbound HTTP client for upstream calls.
type Client struct {
	cfg   Config
	http  *http.Client
	creds *credential.Pool
	limit *rate.Limiter
	sem   *semaphore.Weighted
}

// New builds a [Client] from cfg, an HTTP transport, and the credential pool.
func New(cfg Config, creds *credential.Pool, transport *http.Client) *Client {
	if transport == nil {
		transport = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		cfg:   cfg,
		http:  transport,
		creds: creds,
		limit: rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		sem:   semaphore.NewWeighted(cfg.Concurrency),
	}
}

// Get issues a rate-limited, retried GET request against path with the
// given query parameters, returning the raw response body.
//
// A request is retried (with exponential backoff) on network errors, 5xx
// responses, and 429 responses; any other non-2xx status is fatal for the
// caller to classify.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, syncerr.New(syncerr.NetworkError, "acquire concurrency slot", err)
	}
	defer c.sem.Release(1)

	var body []byte

	operation := func() error {
		if err := c.limit.Wait(ctx); err != nil {
			return backoff.Permanent(syncerr.New(syncerr.NetworkError, "rate limiter wait canceled", err))
		}

		reqURL, err := c.buildURL(path, query)
		if err != nil {
			return backoff.Permanent(syncerr.New(syncerr.UpstreamError, "build request URL", err))
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return backoff.Permanent(syncerr.New(syncerr.UpstreamError, "build request", err))
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return syncerr.New(syncerr.NetworkError, "request failed", err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return syncerr.New(syncerr.NetworkError, "read response body", err)
		}

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return syncerr.Upstream(resp.StatusCode, "transient upstream failure", nil)
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(syncerr.Upstream(resp.StatusCode, "upstream rejected request", nil))
		}

		body = data
		return nil
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.cfg.MaxRetries))
	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return nil, err
	}

	return body, nil
}

func (c *Client) buildURL(path string, query url.Values) (string, error) {
	base, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("httpclient: invalid base URL: %w", err)
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("httpclient: invalid path %q: %w", path, err)
	}

	full := base.ResolveReference(ref)

	q := full.Query()
	for k, vals := range query {
		for _, v := range vals {
			q.Add(k, v)
		}
	}
	q.Set(c.cfg.APIKeyParam, c.creds.Next())
	full.RawQuery = q.Encode()

	return full.String(), nil
}
