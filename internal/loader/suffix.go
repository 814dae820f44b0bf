// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package loader

import (
	"strings"

	"github.com/google/uuid"
)

// shortSuffix returns a random identifier-safe suffix for temp table
// names, so concurrent batches never collide even though Postgres temp
// tables are already session-scoped.
func shortSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
