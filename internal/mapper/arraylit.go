// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mapper

import "strings"

// TextArrayLiteral renders values as a Postgres text[] literal, e.g.
// {"PG-13","Some Material"}, or "" (NULL) if values is empty. Grounded on
// original_source's descriptors column, which builds the same literal by
// hand in Python for movie_release_dates.descriptors.
func TextArrayLiteral(values []string) string {
	if len(values) == 0 {
		return ""
	}
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
	}
	return "{" + strings.Join(quoted, ",") + "}"
}

// RefSet is the read side of internal/refcache's materialized id sets: a
// closed universe of ids known to already exist in a reference or
// organizational table, used to decide whether a foreign key on an
// incoming row should be kept or the row dropped.
type RefSet[K comparable] interface {
	Has(key K) bool
}

// RefSets bundles every reference/organizational set the movie and series
// mappers need to filter foreign keys against.
type RefSets struct {
	Languages   RefSet[string]
	Countries   RefSet[string]
	Genres      RefSet[int64]
	Keywords    RefSet[int64]
	Collections RefSet[int64]
	Companies   RefSet[int64]
	Networks    RefSet[int64]
	Persons     RefSet[int64]
}
