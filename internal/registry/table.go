// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package registry is the Kind Registry (§4.12): a declarative, data-driven
description of every table the pipeline loads, its columns, its conflict
key, and the order kinds must run in to respect foreign-key dependencies.

It follows the same typed table/column-name constant pattern yomira's
internal/platform/database/schema package uses for its REST resources
(e.g. RefLanguageTable), generalized here into one [Table] type shared by
every kind instead of one bespoke struct per resource — because unlike a
REST API's hand-written repositories, the Bulk Loader (internal/loader) and
the Entity Sync Driver (internal/driver) are themselves generic over a
[Table]: they never need a kind-specific code path to COPY, upsert, or
delete.
*/
package registry

// Table describes one physical destination table: a parent entity table or
// one of its child (one-to-many) tables.
type Table struct {
	// Name is the physical table name.
	Name string

	// Columns lists every column loaded, in the order the mapper emits
	// them and the order COPY FROM STDIN expects.
	Columns []string

	// ConflictKey lists the column(s) used in `ON CONFLICT (...)`. For a
	// parent table this is its primary key; for a child table this is its
	// natural composite key (e.g. movie_id+genre_id), mirroring
	// original_source's per-child on_conflict sets — every child table is
	// still upserted, then any row absent from the current chunk's temp
	// table is deleted, scoped to the parent ids in the chunk (§3 invariant 3).

	// UpdateOnConflict lists columns overwritten by `DO UPDATE SET col =
	// EXCLUDED.col` when ConflictKey is set. If empty and ConflictKey is
	// set, the upsert degrades to `ON CONFLICT (...) DO NOTHING`.
	UpdateOnConflict []string

	// ParentIDColumn names the column a child table uses to reference its
	// parent's primary key. Empty for parent tables themselves.
	ParentIDColumn string
}

// IsParent reports whether t is a kind's primary entity table rather than
// a child (one-to-many) table.
func (t Table) IsParent() bool {
	return t.ParentIDColumn == ""
}

// Kind describes one entity kind the driver can sync: its parent table,
// its child tables, and the metadata the driver needs to sequence and
// chunk a run.
type Kind struct {
	// Name is the kind identifier used in logs, the sync log, and config
	// enable switches (e.g. "movie", "language").
	Name string

	// Parent is the kind's primary entity table.
	Parent Table

	// Children are the kind's one-to-many child tables, all rebuilt
	// wholesale per parent each time that parent is loaded, except the
	// season/episode tables covered by HasSeasonEpisodeCarveOut.
	Children []Table

	// DependsOn lists kind names that must finish syncing before this one,
	// because this kind's rows carry foreign keys into them (e.g. "movie"
	// depends on "genre", "collection", "company", "language", "country").
	DependsOn []string

	// SupportsPopularity marks kinds with a `popularity` column eligible
	// for the dedicated popularity-only update pass.
	SupportsPopularity bool

	// HasSeasonEpisodeCarveOut marks tv_series, whose season/episode child
	// tables keep rows belonging to a parent absent from the current
	// staging set, unlike every other child table (§3 invariant 3 note;
	// design note on season/episode deletion).
	HasSeasonEpisodeCarveOut bool

	// ChunkSize bounds how many parent ids the driver fetches, maps,
	// stages, and loads per transaction (§4.10 step 6): 512 for movies,
	// 500 for persons and series, 100 for collections, companies, and
	// networks. Zero for kinds small enough to load in one chunk
	// (languages, countries, genres, keywords).
	ChunkSize int
}

// EffectiveChunkSize returns ChunkSize, or the full id-set size when
// ChunkSize is zero (unchunked kinds).
func (k Kind) EffectiveChunkSize(total int) int {
	if k.ChunkSize <= 0 {
		return total
	}
	return k.ChunkSize
}

// AllColumns returns the parent table's columns followed by every child
// table's columns, in registration order. Used by tests that assert a
// mapper's output lines up column-for-column with what the loader expects.
func (k Kind) AllColumns() []string {
	cols := append([]string{}, k.Parent.Columns...)
	for _, c := range k.Children {
		cols = append(cols, c.Columns...)
	}
	return cols
}
