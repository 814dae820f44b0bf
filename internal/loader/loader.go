// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package loader implements the Bulk Loader (§4.7, C7): the transactional
step that takes a kind's staged CSV files and gets them into Postgres.

Grounded on original_source/sync_tmdb/flows/movie/config.py's push() (and
the sibling push() methods in the other flow configs), which all follow
the same four-step shape per table: CREATE TEMP TABLE ... (LIKE ...
INCLUDING ALL), COPY ... FROM STDIN, INSERT ... ON CONFLICT DO
UPDATE/NOTHING from the temp table into the real table, then DELETE any
row whose conflict key is no longer present in the temp table — scoped to
the parent ids touched by this batch, never the whole table. The temp
table + COPY idiom is reused unchanged; what's new here is that it runs
once per [registry.Table] instead of once per hand-written push() method,
driven entirely by the [registry.Kind] describing the table shapes.
*/
package loader

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/recomendapp/db-sync/internal/platform/syncerr"
	"github.com/recomendapp/db-sync/internal/registry"
	"github.com/recomendapp/db-sync/internal/staging"
)

// Loader streams staged rows into Postgres inside one transaction per
// batch.
type Loader struct {
	pool *pgxpool.Pool
}

// New builds a Loader over pool.
func New(pool *pgxpool.Pool) *Loader {
	return &Loader{pool: pool}
}

// TableBuffer pairs a registry table with the staging buffer holding its
// rows for the current batch.
type TableBuffer struct {
	Table  registry.Table
	Buffer *staging.Buffer
}

// LoadBatch loads one batch's parent rows and every child table's rows for
// kind, inside a single transaction: parent is upserted first (so child
// foreign keys always have a referent), then each child table is upserted
// and its rows absent from the batch are deleted, scoped to parentIDs. The
// season/episode tables of a kind with HasSeasonEpisodeCarveOut are
// upserted only; no row is deleted from them.
//
// children order does not need to match registry.Kind.Children order, but
// every buffer's rows must belong to parent ids included in parentIDs.
func (l *Loader) LoadBatch(ctx context.Context, kind registry.Kind, parent TableBuffer, children []TableBuffer, parentIDs []string) error {
	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return syncerr.WrapPG(err, "begin load transaction")
	}
	defer tx.Rollback(ctx)

	if err := loadTable(ctx, tx, parent.Table, parent.Buffer, nil); err != nil {
		return err
	}

	for _, cb := range children {
		carveOut := kind.HasSeasonEpisodeCarveOut && (cb.Table.Name == "series_seasons" || cb.Table.Name == "series_episodes")
		var scopeIDs []string
		if !carveOut {
			scopeIDs = parentIDs
		}
		if err := loadTable(ctx, tx, cb.Table, cb.Buffer, scopeIDs); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return syncerr.WrapPG(err, "commit load transaction")
	}

	parent.Buffer.Delete()
	for _, cb := range children {
		cb.Buffer.Delete()
	}
	return nil
}

// loadTable runs the temp-table-copy-upsert(-scoped-delete) sequence for
// one table. scopeIDs, when non-nil, restricts the stale-row delete to
// rows whose parent id column is in scopeIDs; nil means "don't delete"
// (used for the season/episode carve-out).
func loadTable(ctx context.Context, tx pgx.Tx, table registry.Table, buf *staging.Buffer, scopeIDs []string) error {
	if buf.IsEmpty() {
		return nil
	}
	if err := buf.Dedup(table.ConflictKey); err != nil {
		return err
	}

	tempName := "tmp_" + table.Name + "_" + shortSuffix()

	if _, err := tx.Exec(ctx, fmt.Sprintf(
		"CREATE TEMP TABLE %s (LIKE %s INCLUDING ALL) ON COMMIT DROP", tempName, table.Name,
	)); err != nil {
		return syncerr.WrapPG(err, "create temp table "+tempName)
	}

	file, err := os.Open(buf.Path())
	if err != nil {
		return fmt.Errorf("loader: open staged file %s: %w", buf.Path(), err)
	}
	defer file.Close()

	copySQL := fmt.Sprintf("COPY %s (%s) FROM STDIN WITH (FORMAT csv)", tempName, strings.Join(table.Columns, ","))
	if _, err := tx.Conn().PgConn().CopyFrom(ctx, file, copySQL); err != nil {
		return syncerr.WrapPG(err, "copy into "+tempName)
	}

	if err := upsertFromTemp(ctx, tx, table, tempName); err != nil {
		return err
	}

	if table.IsParent() || scopeIDs == nil {
		return nil
	}
	return deleteStale(ctx, tx, table, tempName, scopeIDs)
}

func upsertFromTemp(ctx context.Context, tx pgx.Tx, table registry.Table, tempName string) error {
	if _, err := tx.Exec(ctx, upsertSQL(table, tempName)); err != nil {
		return syncerr.WrapPG(err, "upsert into "+table.Name)
	}
	return nil
}

// upsertSQL builds the INSERT ... SELECT ... ON CONFLICT statement that
// moves rows from tempName into table.Name. Split out from upsertFromTemp
// so its shape can be asserted without a live database.
func upsertSQL(table registry.Table, tempName string) string {
	cols := strings.Join(table.Columns, ",")
	conflictCols := strings.Join(table.ConflictKey, ",")

	if len(table.UpdateOnConflict) == 0 {
		return fmt.Sprintf(
			"INSERT INTO %s (%s) SELECT %s FROM %s ON CONFLICT (%s) DO NOTHING",
			table.Name, cols, cols, tempName, conflictCols,
		)
	}

	sets := make([]string, len(table.UpdateOnConflict))
	for i, col := range table.UpdateOnConflict {
		sets[i] = fmt.Sprintf("%s = EXCLUDED.%s", col, col)
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) SELECT %s FROM %s ON CONFLICT (%s) DO UPDATE SET %s",
		table.Name, cols, cols, tempName, conflictCols, strings.Join(sets, ","),
	)
}

// deleteStale removes rows from table whose conflict key is no longer
// present in tempName, scoped to scopeIDs on the table's parent id column
// so an unrelated movie's child rows are never touched by another movie's
// batch.
func deleteStale(ctx context.Context, tx pgx.Tx, table registry.Table, tempName string, scopeIDs []string) error {
	sql := deleteStaleSQL(table, tempName, scopeIDs)
	if sql == "" {
		return nil
	}
	if _, err := tx.Exec(ctx, sql); err != nil {
		return syncerr.WrapPG(err, "delete stale rows from "+table.Name)
	}
	return nil
}

// deleteStaleSQL builds the scoped stale-row DELETE, or "" if scopeIDs is
// empty (nothing to scope the delete to, so skip it rather than delete
// every row in the table).
func deleteStaleSQL(table registry.Table, tempName string, scopeIDs []string) string {
	if len(scopeIDs) == 0 {
		return ""
	}
	conflictCols := strings.Join(table.ConflictKey, ",")
	quoted := make([]string, len(scopeIDs))
	for i, id := range scopeIDs {
		quoted[i] = "'" + strings.ReplaceAll(id, "'", "''") + "'"
	}

	return fmt.Sprintf(
		`DELETE FROM %s WHERE (%s) NOT IN (SELECT %s FROM %s) AND %s IN (%s)`,
		table.Name, conflictCols, conflictCols, tempName, table.ParentIDColumn, strings.Join(quoted, ","),
	)
}
