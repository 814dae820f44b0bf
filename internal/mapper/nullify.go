// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mapper implements the Entity Mapper (§4.6, C6): pure functions that
shape one upstream detail document into the CSV rows the Bulk Loader will
COPY into each destination table.

Grounded on original_source/sync_tmdb/flows/movie/mapper.py and the
sibling per-kind mapper.py files, which share three conventions this
package preserves: nullify() turns a sentinel "empty" value (an empty
string, a zero) into an absent column so Postgres stores NULL instead of a
false zero value; a child row referencing another kind's id is dropped
entirely when that id isn't in the destination database yet, since the
referenced row's own sync order isn't guaranteed, while a nullable
foreign-key column on the entity's own row (a movie's collection, a
company's or network's origin_country) is written as NULL instead; and a
translation row is
only emitted when at least one of its translatable fields actually carries
content.
*/
package mapper

import (
	"strconv"
	"strings"
)

// Nullify returns an empty string (meaning: write NULL) when v equals
// empty, and v's string form otherwise.
func Nullify(v, empty string) string {
	if v == empty {
		return ""
	}
	return v
}

// NullifyInt returns "" (NULL) when n equals empty, and the decimal
// rendering of n otherwise. Used for counters that are meaningless at
// zero, such as runtime.
func NullifyInt(n, empty int64) string {
	if n == empty {
		return ""
	}
	return strconv.FormatInt(n, 10)
}

// AnyNonEmpty reports whether at least one of the given strings is
// non-empty, used to decide whether a translation row carries content
// worth keeping.
func AnyNonEmpty(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}
