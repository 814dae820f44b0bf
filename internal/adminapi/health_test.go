// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package adminapi_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recomendapp/db-sync/internal/adminapi"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLiveness_AlwaysOK(t *testing.T) {
	liveness, _ := adminapi.NewHealthHandlers(adminapi.HealthDependencies{}, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	liveness(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadiness_AllChecksPassingReturnsReady(t *testing.T) {
	_, readiness := adminapi.NewHealthHandlers(adminapi.HealthDependencies{
		CheckDatabase: func() error { return nil },
		CheckCache:    func() error { return nil },
	}, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	readiness(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadiness_FailingDependencyReturnsDegraded(t *testing.T) {
	_, readiness := adminapi.NewHealthHandlers(adminapi.HealthDependencies{
		CheckDatabase: func() error { return errors.New("connection refused") },
	}, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	readiness(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "degraded", body["status"])
}

func TestReadiness_NilCacheCheckIsSkipped(t *testing.T) {
	_, readiness := adminapi.NewHealthHandlers(adminapi.HealthDependencies{
		CheckDatabase: func() error { return nil },
	}, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	readiness(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
