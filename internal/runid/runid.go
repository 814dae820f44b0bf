// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package runid generates the correlation ID attached to every sync run.
//
// A run ID is threaded through the sync log, the structured logger, and the
// admin API's run-status responses, the same way yomira's RequestID
// middleware threads a UUIDv7 through a request's logs.
package runid

import "github.com/recomendapp/db-sync/pkg/uuidv7"

// New generates a new time-sortable run correlation ID.
func New() string {
	return uuidv7.New()
}
