// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey defines typed context keys used by the sync driver, the
// HTTP client, and the admin API.
//
// # Safety
//
// Using a private, unexported type for keys prevents collisions with
// third-party packages that might also use context for storage.
package ctxkey

// key is an unexported type used for context keys to ensure type safety.
type key string

const (
	// KeyRequestID is the context key for the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyRunID is the context key for the sync run's correlation ID.
	KeyRunID key = "run_id"

	// KeyKind is the context key for the entity kind a driver invocation is processing.
	KeyKind key = "kind"

	// KeyOperator is the context key for the authenticated admin API caller
	// ([*sec.OperatorClaims]).
	KeyOperator key = "operator"

	// KeyLogger is the context key for the per-request/per-run [*log/slog.Logger].
	KeyLogger key = "logger"
)
