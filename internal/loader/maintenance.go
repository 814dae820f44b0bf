// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package loader

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/recomendapp/db-sync/internal/platform/syncerr"
	"github.com/recomendapp/db-sync/internal/registry"
)

// Prune deletes every row in kind's parent table whose id is in ids,
// scoped to a single statement. Grounded on
// original_source/sync_tmdb/flows/movie/config.py's prune() task, which
// the driver calls once per kind with the set of ids present in the
// database but absent from the upstream universe.
func (l *Loader) Prune(ctx context.Context, kind registry.Kind, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	sql := fmt.Sprintf("DELETE FROM %s WHERE id IN (%s)", kind.Parent.Name, strings.Join(placeholders, ","))
	if _, err := l.pool.Exec(ctx, sql, args...); err != nil {
		return syncerr.WrapPG(err, "prune "+kind.Parent.Name)
	}
	return nil
}

// PruneByKey deletes every row in kind's parent table whose conflict-key
// column matches one of keys, for the string-keyed reference tables
// (ref_language.iso_639_1, ref_country.iso_3166_1) that Prune's int64
// signature doesn't fit.
func (l *Loader) PruneByKey(ctx context.Context, kind registry.Kind, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	placeholders := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = k
	}

	sql := fmt.Sprintf("DELETE FROM %s WHERE %s IN (%s)", kind.Parent.Name, kind.Parent.ConflictKey[0], strings.Join(placeholders, ","))
	if _, err := l.pool.Exec(ctx, sql, args...); err != nil {
		return syncerr.WrapPG(err, "prune "+kind.Parent.Name)
	}
	return nil
}

// PopularityUpdate pairs an id with the popularity value the latest export
// row reported for it.
type PopularityUpdate struct {
	ID         int64
	Popularity float64
}

// UpdatePopularity refreshes kind.Parent's popularity column from updates
// without touching any other column, using the same temp-table idiom as
// loadTable but an UPDATE ... FROM instead of an upsert: popularity is the
// one field the daily export itself carries, so a popularity-only pass can
// run far more often than a full detail re-fetch. IS DISTINCT FROM avoids
// writing (and notifying, if a trigger exists) rows whose popularity
// hasn't actually changed.
func (l *Loader) UpdatePopularity(ctx context.Context, kind registry.Kind, updates []PopularityUpdate) error {
	if !kind.SupportsPopularity || len(updates) == 0 {
		return nil
	}

	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return syncerr.WrapPG(err, "begin popularity update transaction")
	}
	defer tx.Rollback(ctx)

	tempName := "tmp_popularity_" + shortSuffix()
	if _, err := tx.Exec(ctx, fmt.Sprintf(
		"CREATE TEMP TABLE %s (id bigint PRIMARY KEY, popularity double precision) ON COMMIT DROP", tempName,
	)); err != nil {
		return syncerr.WrapPG(err, "create popularity temp table")
	}

	rows := make([][]any, len(updates))
	for i, u := range updates {
		rows[i] = []any{u.ID, u.Popularity}
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{tempName},
		[]string{"id", "popularity"},
		pgx.CopyFromRows(rows),
	); err != nil {
		return syncerr.WrapPG(err, "copy popularity updates")
	}

	sql := fmt.Sprintf(
		`UPDATE %s AS dst SET popularity = src.popularity
		 FROM %s AS src
		 WHERE dst.id = src.id AND dst.popularity IS DISTINCT FROM src.popularity`,
		kind.Parent.Name, tempName,
	)
	if _, err := tx.Exec(ctx, sql); err != nil {
		return syncerr.WrapPG(err, "apply popularity update")
	}

	if err := tx.Commit(ctx); err != nil {
		return syncerr.WrapPG(err, "commit popularity update")
	}
	return nil
}
