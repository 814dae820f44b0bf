// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recomendapp/db-sync/internal/platform/respond"
	"github.com/recomendapp/db-sync/internal/platform/syncerr"
)

func TestOK_WrapsPayloadInDataEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.OK(rec, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "world", body["data"].(map[string]any)["hello"])
}

func TestAccepted_UsesStatus202(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.Accepted(rec, map[string]string{"run_id": "abc"})

	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestError_UsesKindAsCode(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	err := syncerr.Upstream(http.StatusBadGateway, "upstream failed", nil)
	respond.Error(rec, req, err)

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, string(syncerr.UpstreamError), body["code"])
}

func TestError_UnclassifiedErrorDefaultsToInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	respond.Error(rec, req, assertAnError{})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "INTERNAL_ERROR", body["code"])
}

type assertAnError struct{}

func (assertAnError) Error() string { return "boom" }
