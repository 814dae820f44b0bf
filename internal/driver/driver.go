// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/semaphore"

	"github.com/recomendapp/db-sync/internal/loader"
	"github.com/recomendapp/db-sync/internal/mapper/langtag"
	"github.com/recomendapp/db-sync/internal/platform/ctxutil"
	"github.com/recomendapp/db-sync/internal/platform/syncerr"
	"github.com/recomendapp/db-sync/internal/refcache"
	"github.com/recomendapp/db-sync/internal/registry"
	"github.com/recomendapp/db-sync/internal/staging"
	"github.com/recomendapp/db-sync/internal/synclog"
	"github.com/recomendapp/db-sync/internal/upstream"
)

// Projector pushes a chunk's reconciled documents into the search index
// (§4.11, C11). Optional: a nil Projector disables projection entirely,
// letting the driver run standalone in tests and in deployments without a
// search index configured.
type Projector interface {
	Project(ctx context.Context, kind string, documents []json.RawMessage) error
}

// Driver orchestrates one kind's sync run.
type Driver struct {
	Upstream  *upstream.Client
	Pool      *pgxpool.Pool
	Loader    *loader.Loader
	RefCache  *refcache.Cache
	SyncLog   *synclog.Store
	Langs     langtag.Allowlist
	Projector Projector // nil disables search projection

	// FetchConcurrency bounds how many detail fetches run concurrently
	// within one chunk.
	FetchConcurrency int64

	// StagingDir is the scratch directory handed to every staging.Buffer.
	StagingDir string

	// ChunkSizeOverrides lets configuration override a kind's registry
	// default chunk size (e.g. config.ChunkSizeMovie).
	ChunkSizeOverrides map[string]int
}

func (d *Driver) chunkSize(kind registry.Kind) int {
	if override, ok := d.ChunkSizeOverrides[kind.Name]; ok && override > 0 {
		return override
	}
	return kind.ChunkSize
}

func (d *Driver) sem() *semaphore.Weighted {
	n := d.FetchConcurrency
	if n <= 0 {
		n = 1
	}
	return semaphore.NewWeighted(n)
}

// Run syncs one kind for date, advancing the sync log from init through
// success or failed.
func (d *Driver) Run(ctx context.Context, kindName string, date time.Time) error {
	kind, ok := registry.ByName(kindName)
	if !ok {
		return fmt.Errorf("driver: unknown kind %q", kindName)
	}

	ctx = ctxutil.WithKind(ctx, kind.Name)
	logger := ctxutil.GetLogger(ctx)
	if logger == nil {
		logger = slog.Default()
	}

	run, lastSuccess, err := d.SyncLog.Init(ctx, kind.Name, date)
	if err != nil {
		return fmt.Errorf("driver: init sync log for %q: %w", kind.Name, err)
	}

	if err := d.runKind(ctx, logger, kind, date, lastSuccess, run); err != nil {
		if failErr := run.Failed(ctx); failErr != nil {
			logger.Error("failed to mark sync log failed", "kind", kind.Name, "error", failErr)
		}
		return err
	}

	return nil
}

// runKind dispatches to the per-category sync implementation and advances
// the run to success on a clean return.
func (d *Driver) runKind(ctx context.Context, logger *slog.Logger, kind registry.Kind, date time.Time, lastSuccess synclog.Entry, run *synclog.Run) error {
	switch kind.Name {
	case "language", "country", "genre":
		return d.runReferenceKind(ctx, logger, kind, run)
	case "keyword":
		return d.runKeywordKind(ctx, logger, run)
	case "collection":
		return d.runCollectionKind(ctx, logger, kind, date, lastSuccess, run)
	case "company":
		return d.runCompanyKind(ctx, logger, kind, date, lastSuccess, run)
	case "network":
		return d.runNetworkKind(ctx, logger, kind, date, lastSuccess, run)
	case "person":
		return d.runPersonKind(ctx, logger, kind, date, lastSuccess, run)
	case "movie":
		return d.runMovieKind(ctx, logger, kind, date, lastSuccess, run)
	case "series":
		return d.runSeriesKind(ctx, logger, kind, date, lastSuccess, run)
	default:
		return fmt.Errorf("driver: no sync implementation registered for kind %q", kind.Name)
	}
}

// newStagingBuffers allocates one CSV buffer per table in kind (parent
// plus every child), keyed by table name.
func newStagingBuffers(dir, prefix string, kind registry.Kind) (map[string]*staging.Buffer, error) {
	buffers := make(map[string]*staging.Buffer, len(kind.Children)+1)
	parentBuf, err := staging.New(dir, prefix+"_"+kind.Parent.Name, kind.Parent.Columns)
	if err != nil {
		return nil, err
	}
	buffers[kind.Parent.Name] = parentBuf

	for _, child := range kind.Children {
		buf, err := staging.New(dir, prefix+"_"+child.Name, child.Columns)
		if err != nil {
			return nil, err
		}
		buffers[child.Name] = buf
	}
	return buffers, nil
}

// closeAndDeleteBuffers flushes every buffer and deletes its backing file;
// used on the early-return paths that never reach LoadBatch (which deletes
// on success itself).
func closeAndDeleteBuffers(buffers map[string]*staging.Buffer) {
	for _, buf := range buffers {
		buf.Close()
		buf.Delete()
	}
}

// loadKindBatch assembles loader.TableBuffer values from buffers in kind's
// declared table order and commits them as one batch.
func (d *Driver) loadKindBatch(ctx context.Context, kind registry.Kind, buffers map[string]*staging.Buffer, parentIDs []string) error {
	parent := loader.TableBuffer{Table: kind.Parent, Buffer: buffers[kind.Parent.Name]}
	children := make([]loader.TableBuffer, 0, len(kind.Children))
	for _, child := range kind.Children {
		children = append(children, loader.TableBuffer{Table: child, Buffer: buffers[child.Name]})
	}
	if err := d.Loader.LoadBatch(ctx, kind, parent, children, parentIDs); err != nil {
		return syncerr.New(syncerr.DatabaseError, "load batch for "+kind.Name, err)
	}
	return nil
}
