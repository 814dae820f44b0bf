// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package upstream_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recomendapp/db-sync/internal/credential"
	"github.com/recomendapp/db-sync/internal/httpclient"
	"github.com/recomendapp/db-sync/internal/platform/syncerr"
	"github.com/recomendapp/db-sync/internal/upstream"
)

func gzipLines(t *testing.T, lines ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	for _, line := range lines {
		_, err := gz.Write([]byte(line + "\n"))
		require.NoError(t, err)
	}
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func newTestUpstream(exportsURL string) *upstream.Client {
	pool, _ := credential.NewPool([]string{"k"})
	api := httpclient.New(httpclient.Config{
		BaseURL:        exportsURL,
		Concurrency:    4,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
		MaxRetries:     2,
		APIKeyParam:    "api_key",
	}, pool, nil)
	client := upstream.New(api, nil)
	return client.WithExportBaseURL(exportsURL)
}

func TestExportIDs_ParsesRows(t *testing.T) {
	body := gzipLines(t,
		`{"id":1,"popularity":3.1}`,
		`{"id":2,"popularity":0.4}`,
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "movie_ids_")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	client := newTestUpstream(srv.URL)
	ids, err := client.ExportIDs(context.Background(), "movie", time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []upstream.ExportID{{ID: 1, Popularity: 3.1}, {ID: 2, Popularity: 0.4}}, ids)
}

func TestExportIDs_NotFoundIsExportUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestUpstream(srv.URL)
	_, err := client.ExportIDs(context.Background(), "movie", time.Now())
	require.Error(t, err)
	assert.True(t, syncerr.IsKind(err, syncerr.ExportUnavailable))
}

func TestExportIDs_EmptyFileIsExportUnavailable(t *testing.T) {
	body := gzipLines(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	client := newTestUpstream(srv.URL)
	_, err := client.ExportIDs(context.Background(), "person", time.Now())
	require.Error(t, err)
	assert.True(t, syncerr.IsKind(err, syncerr.ExportUnavailable))
}

func TestExportIDs_UnknownKindErrors(t *testing.T) {
	client := newTestUpstream("http://example.invalid")
	_, err := client.ExportIDs(context.Background(), "genre", time.Now())
	require.Error(t, err)
}
