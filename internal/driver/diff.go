// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package driver implements the Entity Sync Driver (§4.10, C10): for one
kind and date, it computes the upstream-vs-database symmetric difference,
fans out detail fetches for whatever's missing, maps and stages the
result, and commits it through the Bulk Loader — advancing the Sync-Log
State Machine at each stage.

Grounded on original_source/sync_tmdb/flows/movie/sync_tmdb_movie.py's
top-level run() sequence (init log, diff, prune, fill, update_popularity,
close log), generalized across kinds the way internal/registry generalizes
the per-kind config dataclasses it reads.
*/
package driver

import "strconv"

// formatInt64 renders id in decimal, for building string key slices out of
// an int64 id universe (genre's conflict key is numeric but DiffString
// works in strings).
func formatInt64(id int64) string {
	return strconv.FormatInt(id, 10)
}

// parseInt64 parses a decimal id string, for reading genre's conflict key
// back out of a DiffString result.
func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// DiffInt64 partitions two int64 id universes: extra is present in db but
// not upstream (candidates for deletion); missing is present upstream but
// not in db (candidates for fetch-and-insert).
func DiffInt64(tmdbIDs, dbIDs []int64) (extra, missing []int64) {
	tmdbSet := make(map[int64]struct{}, len(tmdbIDs))
	for _, id := range tmdbIDs {
		tmdbSet[id] = struct{}{}
	}
	dbSet := make(map[int64]struct{}, len(dbIDs))
	for _, id := range dbIDs {
		dbSet[id] = struct{}{}
	}

	for _, id := range dbIDs {
		if _, ok := tmdbSet[id]; !ok {
			extra = append(extra, id)
		}
	}
	for _, id := range tmdbIDs {
		if _, ok := dbSet[id]; !ok {
			missing = append(missing, id)
		}
	}
	return extra, missing
}

// DiffString is DiffInt64's counterpart for the string-keyed reference
// kinds (language's iso_639_1, country's iso_3166_1).
func DiffString(tmdbKeys, dbKeys []string) (extra, missing []string) {
	tmdbSet := make(map[string]struct{}, len(tmdbKeys))
	for _, k := range tmdbKeys {
		tmdbSet[k] = struct{}{}
	}
	dbSet := make(map[string]struct{}, len(dbKeys))
	for _, k := range dbKeys {
		dbSet[k] = struct{}{}
	}

	for _, k := range dbKeys {
		if _, ok := tmdbSet[k]; !ok {
			extra = append(extra, k)
		}
	}
	for _, k := range tmdbKeys {
		if _, ok := dbSet[k]; !ok {
			missing = append(missing, k)
		}
	}
	return extra, missing
}

// UnionInt64 merges a and b, deduplicated, in no particular order.
func UnionInt64(a, b []int64) []int64 {
	set := make(map[int64]struct{}, len(a)+len(b))
	for _, id := range a {
		set[id] = struct{}{}
	}
	for _, id := range b {
		set[id] = struct{}{}
	}
	out := make([]int64, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

// ChunkInt64 splits ids into consecutive chunks of at most size entries.
// size <= 0 returns ids as a single chunk.
func ChunkInt64(ids []int64, size int) [][]int64 {
	if size <= 0 || len(ids) <= size {
		if len(ids) == 0 {
			return nil
		}
		return [][]int64{ids}
	}
	var chunks [][]int64
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
