// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package upstream implements the three upstream-facing components of the
pipeline: the Export Fetcher (§4.3, C3), the Changed-ID Fetcher (§4.4, C4),
and entity detail fetching (the data source behind §4.6's mapping), all
built on [internal/httpclient.Client].

Grounded on original_source/sync_tmdb/models/tmdb.py's TMDBClient, which
wraps every upstream call in its own method doing rate-limit and
credential-rotation, plus the per-kind flow files (sync_tmdb_movie.py,
sync_tmdb_language.py) that call it for exports, changes, and details.
*/
package upstream

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/recomendapp/db-sync/internal/httpclient"
	"github.com/recomendapp/db-sync/internal/platform/syncerr"
)

// Client is the typed upstream API surface the driver depends on. It wraps
// two underlying transports: api for the rate-limited, credentialed REST
// API, and exports for the unauthenticated, CDN-served bulk export files.
type Client struct {
	api        *httpclient.Client
	exports    *http.Client
	exportBase string
}

// New wraps an [*httpclient.Client] (for the REST API) and a plain
// [*http.Client] (for bulk export downloads, which carry no credential)
// with the upstream's endpoint shapes.
func New(api *httpclient.Client, exports *http.Client) *Client {
	if exports == nil {
		exports = &http.Client{Timeout: 2 * time.Minute}
	}
	return &Client{api: api, exports: exports, exportBase: ExportBaseURL}
}

// WithExportBaseURL overrides the export CDN base URL, for tests that serve
// fixture export files from an [net/http/httptest.Server].
func (c *Client) WithExportBaseURL(base string) *Client {
	clone := *c
	clone.exportBase = base
	return &clone
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	body, err := c.api.Get(ctx, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("upstream: decode response from %s: %w", path, err)
	}
	return nil
}

// downloadGzipLines fetches a gzip-compressed file from a fully-qualified
// URL (not routed through the rate-limited API client, since export files
// are served unauthenticated from a separate host) and invokes fn once per
// decompressed line.
func (c *Client) downloadGzipLines(ctx context.Context, fullURL string, fn func(line []byte) error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return syncerr.New(syncerr.NetworkError, "build export request", err)
	}

	resp, err := c.exports.Do(req)
	if err != nil {
		return syncerr.New(syncerr.NetworkError, "download export", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return syncerr.New(syncerr.ExportUnavailable, "export not published for date: "+fullURL, nil)
	}
	if resp.StatusCode != http.StatusOK {
		return syncerr.New(syncerr.ExportUnavailable, "unexpected export status "+strconv.Itoa(resp.StatusCode), nil)
	}

	gz, err := gzip.NewReader(resp.Body)
	if err != nil {
		return syncerr.New(syncerr.ExportUnavailable, "export is not valid gzip", err)
	}
	defer gz.Close()

	scanned := 0
	scanner := bufio.NewScanner(gz)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if err := fn(line); err != nil {
			return err
		}
		scanned++
	}
	if err := scanner.Err(); err != nil {
		return syncerr.New(syncerr.ExportUnavailable, "read export body", err)
	}
	if scanned == 0 {
		return syncerr.New(syncerr.ExportUnavailable, "export contained no rows: "+fullURL, nil)
	}
	return nil
}
