// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/recomendapp/db-sync/internal/platform/ctxutil"
	"github.com/recomendapp/db-sync/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_RunID verifies that a sync run's correlation ID round-trips.
*/
func TestContext_RunID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.GetRunID(ctx))

	ctx = ctxutil.WithRunID(ctx, "run-123")
	assert.Equal(t, "run-123", ctxutil.GetRunID(ctx))
}

/*
TestContext_Kind verifies that the entity kind under processing round-trips.
*/
func TestContext_Kind(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.GetKind(ctx))

	ctx = ctxutil.WithKind(ctx, "movie")
	assert.Equal(t, "movie", ctxutil.GetKind(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_Operator verifies that OperatorClaims can be stored in context.
*/
func TestContext_Operator(t *testing.T) {
	ctx := context.Background()
	claims := &sec.OperatorClaims{
		Subject: "operator-1",
	}

	assert.Nil(t, ctxutil.GetOperator(ctx))

	ctx = ctxutil.WithOperator(ctx, claims)
	retrieved := ctxutil.GetOperator(ctx)

	assert.NotNil(t, retrieved)
	assert.Equal(t, "operator-1", retrieved.Subject)
}
