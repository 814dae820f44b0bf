// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package httpclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recomendapp/db-sync/internal/credential"
	"github.com/recomendapp/db-sync/internal/httpclient"
	"github.com/recomendapp/db-sync/internal/platform/syncerr"
)

func newPool(t *testing.T) *credential.Pool {
	t.Helper()
	pool, err := credential.NewPool([]string{"test-key"})
	require.NoError(t, err)
	return pool
}

func TestClient_Get_SuccessIncludesCredential(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("api_key")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := httpclient.New(httpclient.Config{
		BaseURL:        srv.URL,
		Concurrency:    4,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
		MaxRetries:     2,
		APIKeyParam:    "api_key",
	}, newPool(t), srv.Client())

	body, err := client.Get(context.Background(), "/3/movie/1", url.Values{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, "test-key", gotKey)
}

func TestClient_Get_RetriesTransientFailures(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := httpclient.New(httpclient.Config{
		BaseURL:        srv.URL,
		Concurrency:    1,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
		MaxRetries:     5,
		APIKeyParam:    "api_key",
	}, newPool(t), srv.Client())

	_, err := client.Get(context.Background(), "/", url.Values{})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, int(atomic.LoadInt32(&attempts)), 3)
}

func TestClient_Get_PermanentFailureDoesNotRetry(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := httpclient.New(httpclient.Config{
		BaseURL:        srv.URL,
		Concurrency:    1,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
		MaxRetries:     5,
		APIKeyParam:    "api_key",
	}, newPool(t), srv.Client())

	_, err := client.Get(context.Background(), "/", url.Values{})
	require.Error(t, err)
	assert.True(t, syncerr.IsKind(err, syncerr.UpstreamError))
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}
