// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/recomendapp/db-sync/internal/loader"
	"github.com/recomendapp/db-sync/internal/platform/syncerr"
	"github.com/recomendapp/db-sync/internal/registry"
	"github.com/recomendapp/db-sync/internal/synclog"
	"github.com/recomendapp/db-sync/internal/upstream"
)

// mappedRows is one entity's row set, table-name-keyed so the engine can
// append it into the matching staging buffer without per-kind branching.
type mappedRows struct {
	Parent   []string
	Children map[string][][]string
}

// detailMapFunc fetches and maps one entity by id. popularity is the value
// from this run's export row, when the kind has one (0 otherwise). raw is
// the upstream document, handed to the search projector when a Projector
// is configured and ignored otherwise. skip reports a deliberately
// dropped record (adult-flagged); it is not an error and is logged at
// debug, not warn.
type detailMapFunc func(ctx context.Context, id int64, popularity float64) (rows mappedRows, raw json.RawMessage, skip bool, err error)

// exportDiff bundles the result of reconciling one export-backed kind's
// upstream vs database id universes.
type exportDiff struct {
	extra      []int64
	missing    []int64
	popularity map[int64]float64
}

// diffExportKind downloads kind's export, reads its current database ids,
// and computes extra/missing, unioning missing with the changed-ID feed
// since lastSuccess when one exists and the kind has a changes endpoint.
func (d *Driver) diffExportKind(ctx context.Context, logger *slog.Logger, kind registry.Kind, date time.Time, lastSuccess synclog.Entry) (exportDiff, error) {
	exportRows, err := d.Upstream.ExportIDs(ctx, kind.Name, date)
	if err != nil {
		return exportDiff{}, err
	}

	tmdbIDs := make([]int64, 0, len(exportRows))
	popularity := make(map[int64]float64, len(exportRows))
	for _, row := range exportRows {
		tmdbIDs = append(tmdbIDs, row.ID)
		popularity[row.ID] = row.Popularity
	}

	dbIDs, err := d.dbIDsInt64(ctx, kind.Parent.Name, kind.Parent.ConflictKey[0])
	if err != nil {
		return exportDiff{}, err
	}

	extra, missing := DiffInt64(tmdbIDs, dbIDs)

	if !lastSuccess.Date.IsZero() {
		if _, ok := upstream.ChangesPath[kind.Name]; ok {
			changed, err := d.Upstream.ChangedIDs(ctx, logger, kind.Name, lastSuccess.Date, date)
			if err != nil {
				return exportDiff{}, err
			}
			missing = UnionInt64(missing, changed)
		}
	}

	return exportDiff{extra: extra, missing: missing, popularity: popularity}, nil
}

// runChunkedWithPopularity fans missing ids out through mapFn in
// bounded-concurrency chunks and stages and commits each chunk, handing
// each id its export popularity. It does not run the popularity-only
// pass; that is runPopularityPass.
func (d *Driver) runChunkedWithPopularity(ctx context.Context, logger *slog.Logger, kind registry.Kind, missing []int64, popularity map[int64]float64, mapFn detailMapFunc) error {
	return d.runChunkedWithHook(ctx, logger, kind, missing, popularity, mapFn, nil)
}

// runChunkedWithHook is runChunkedWithPopularity plus beforeLoad, a hook run
// once per chunk after every id in it has been fetched and mapped but
// before that chunk's batch is loaded — movie and series use it to flush
// newly harvested keywords into ref_keyword first, so the chunk's own
// movie_keywords/series_keywords rows never reference a keyword id that
// isn't in the database yet.
func (d *Driver) runChunkedWithHook(ctx context.Context, logger *slog.Logger, kind registry.Kind, missing []int64, popularity map[int64]float64, mapFn detailMapFunc, beforeLoad func(context.Context) error) error {
	chunks := ChunkInt64(missing, d.chunkSize(kind))
	for i, chunk := range chunks {
		if err := d.runOneChunk(ctx, logger, kind, chunk, popularity, mapFn, beforeLoad); err != nil {
			return fmt.Errorf("driver: chunk %d/%d for %q: %w", i+1, len(chunks), kind.Name, err)
		}
	}
	return nil
}

func (d *Driver) runOneChunk(ctx context.Context, logger *slog.Logger, kind registry.Kind, ids []int64, popularity map[int64]float64, mapFn detailMapFunc, beforeLoad func(context.Context) error) error {
	buffers, err := newStagingBuffers(d.StagingDir, "chunk", kind)
	if err != nil {
		return err
	}

	results := make([]mappedRows, 0, len(ids))
	var docs []json.RawMessage
	var mu sync.Mutex
	sem := d.sem()

	g, gctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		id := id
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			rows, raw, skip, err := mapFn(gctx, id, popularity[id])
			if err != nil {
				logger.Warn("detail fetch or map failed, skipping id", "kind", kind.Name, "id", id, "error", err)
				return nil
			}
			if skip {
				logger.Debug("dropped record", "kind", kind.Name, "id", id)
				return nil
			}
			mu.Lock()
			results = append(results, rows)
			if raw != nil {
				docs = append(docs, raw)
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		closeAndDeleteBuffers(buffers)
		return err
	}

	parentIDs := make([]string, 0, len(results))
	for _, rows := range results {
		if rows.Parent == nil {
			continue
		}
		if err := buffers[kind.Parent.Name].Append(rows.Parent); err != nil {
			closeAndDeleteBuffers(buffers)
			return err
		}
		parentIDs = append(parentIDs, rows.Parent[0])
		for table, childRows := range rows.Children {
			buf, ok := buffers[table]
			if !ok {
				continue
			}
			if err := buf.AppendAll(childRows); err != nil {
				closeAndDeleteBuffers(buffers)
				return err
			}
		}
	}

	for _, buf := range buffers {
		if err := buf.Flush(); err != nil {
			closeAndDeleteBuffers(buffers)
			return err
		}
	}

	if beforeLoad != nil {
		if err := beforeLoad(ctx); err != nil {
			closeAndDeleteBuffers(buffers)
			return err
		}
	}

	if err := d.loadKindBatch(ctx, kind, buffers, parentIDs); err != nil {
		return err
	}

	if d.Projector != nil && len(docs) > 0 {
		if err := d.Projector.Project(ctx, kind.Name, docs); err != nil {
			logger.Warn("search projection failed for chunk", "kind", kind.Name, "error", err)
		}
	}
	return nil
}

// runPopularityPass streams every one of the export's (id, popularity)
// pairs into the loader's dedicated update path in a single call, so they
// land in one temp table and are applied by one UPDATE.
func (d *Driver) runPopularityPass(ctx context.Context, kind registry.Kind, popularity map[int64]float64) error {
	if !kind.SupportsPopularity {
		return nil
	}
	updates := make([]loader.PopularityUpdate, 0, len(popularity))
	for id, pop := range popularity {
		updates = append(updates, loader.PopularityUpdate{ID: id, Popularity: pop})
	}
	if err := d.Loader.UpdatePopularity(ctx, kind, updates); err != nil {
		return syncerr.New(syncerr.DatabaseError, "update popularity for "+kind.Name, err)
	}
	return nil
}

func (d *Driver) dbIDsInt64(ctx context.Context, table, idColumn string) ([]int64, error) {
	rows, err := d.Pool.Query(ctx, "SELECT "+idColumn+" FROM "+table)
	if err != nil {
		return nil, syncerr.WrapPG(err, "read db ids for "+table)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, syncerr.WrapPG(err, "scan db id for "+table)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, syncerr.WrapPG(err, "iterate db ids for "+table)
	}
	return ids, nil
}

func (d *Driver) dbKeysString(ctx context.Context, table, keyColumn string) ([]string, error) {
	rows, err := d.Pool.Query(ctx, "SELECT "+keyColumn+" FROM "+table)
	if err != nil {
		return nil, syncerr.WrapPG(err, "read db keys for "+table)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, syncerr.WrapPG(err, "scan db key for "+table)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, syncerr.WrapPG(err, "iterate db keys for "+table)
	}
	return keys, nil
}
