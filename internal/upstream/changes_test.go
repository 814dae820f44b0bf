// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package upstream_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recomendapp/db-sync/internal/credential"
	"github.com/recomendapp/db-sync/internal/httpclient"
	"github.com/recomendapp/db-sync/internal/upstream"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestChangedIDs_MergesPagesAndDedupes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		w.WriteHeader(http.StatusOK)
		switch page {
		case "1":
			fmt.Fprint(w, `{"results":[{"id":1},{"id":2}],"page":1,"total_pages":2,"total_results":3}`)
		case "2":
			fmt.Fprint(w, `{"results":[{"id":2},{"id":3}],"page":2,"total_pages":2,"total_results":3}`)
		}
	}))
	defer srv.Close()

	pool, _ := credential.NewPool([]string{"k"})
	api := httpclient.New(httpclient.Config{
		BaseURL: srv.URL, Concurrency: 4, RateLimitRPS: 1000, RateLimitBurst: 1000,
		MaxRetries: 2, APIKeyParam: "api_key",
	}, pool, nil)
	client := upstream.New(api, nil)

	ids, err := client.ChangedIDs(context.Background(), testLogger(), "movie",
		time.Now().AddDate(0, 0, -1), time.Now())
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2, 3}, ids)
}

func TestChangedIDs_UnknownKindErrors(t *testing.T) {
	pool, _ := credential.NewPool([]string{"k"})
	api := httpclient.New(httpclient.Config{BaseURL: "http://example.invalid", Concurrency: 1,
		RateLimitRPS: 10, RateLimitBurst: 10, MaxRetries: 1, APIKeyParam: "api_key"}, pool, nil)
	client := upstream.New(api, nil)

	_, err := client.ChangedIDs(context.Background(), testLogger(), "collection", time.Now(), time.Now())
	require.Error(t, err)
}
