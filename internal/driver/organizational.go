// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package driver

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/recomendapp/db-sync/internal/mapper"
	"github.com/recomendapp/db-sync/internal/registry"
	"github.com/recomendapp/db-sync/internal/synclog"
)

// runCollectionKind syncs org_collection: export+detail, no countries FK.
func (d *Driver) runCollectionKind(ctx context.Context, logger *slog.Logger, kind registry.Kind, date time.Time, lastSuccess synclog.Entry, run *synclog.Run) error {
	diff, err := d.exportDetailRun(ctx, logger, kind, date, lastSuccess, run, func(ctx context.Context, id int64, popularity float64) (mappedRows, json.RawMessage, bool, error) {
		raw, err := d.Upstream.OrganizationalDetail(ctx, "collection", id)
		if err != nil {
			return mappedRows{}, nil, false, err
		}
		row, err := mapper.Collection(raw, popularity)
		if err != nil {
			return mappedRows{}, nil, false, err
		}
		return mappedRows{Parent: row}, raw, false, nil
	})
	if err != nil {
		return err
	}
	return d.finishPopularityRun(ctx, kind, run, diff)
}

// runCompanyKind syncs org_company: export+detail, origin_country FK
// filtered against the country reference set.
func (d *Driver) runCompanyKind(ctx context.Context, logger *slog.Logger, kind registry.Kind, date time.Time, lastSuccess synclog.Entry, run *synclog.Run) error {
	_, err := d.exportDetailRun(ctx, logger, kind, date, lastSuccess, run, func(ctx context.Context, id int64, _ float64) (mappedRows, json.RawMessage, bool, error) {
		countries, err := d.RefCache.StringSetFor(ctx, "ref_country", "iso_3166_1")
		if err != nil {
			return mappedRows{}, nil, false, err
		}
		raw, err := d.Upstream.OrganizationalDetail(ctx, "company", id)
		if err != nil {
			return mappedRows{}, nil, false, err
		}
		row, err := mapper.Company(raw, countries)
		if err != nil {
			return mappedRows{}, nil, false, err
		}
		return mappedRows{Parent: row}, raw, false, nil
	})
	if err != nil {
		return err
	}
	return run.Success(ctx)
}

// runNetworkKind syncs org_network: the same shape as company, against
// org_network instead.
func (d *Driver) runNetworkKind(ctx context.Context, logger *slog.Logger, kind registry.Kind, date time.Time, lastSuccess synclog.Entry, run *synclog.Run) error {
	_, err := d.exportDetailRun(ctx, logger, kind, date, lastSuccess, run, func(ctx context.Context, id int64, _ float64) (mappedRows, json.RawMessage, bool, error) {
		countries, err := d.RefCache.StringSetFor(ctx, "ref_country", "iso_3166_1")
		if err != nil {
			return mappedRows{}, nil, false, err
		}
		raw, err := d.Upstream.OrganizationalDetail(ctx, "network", id)
		if err != nil {
			return mappedRows{}, nil, false, err
		}
		row, err := mapper.Network(raw, countries)
		if err != nil {
			return mappedRows{}, nil, false, err
		}
		return mappedRows{Parent: row}, raw, false, nil
	})
	if err != nil {
		return err
	}
	return run.Success(ctx)
}

// exportDetailRun is the shared export-diff-prune-fetch sequence every
// export-backed kind follows (§4.10 step 6): diff, advance to syncing,
// prune extras, fetch+map missing ids in chunks. It stops short of
// advancing to success so callers needing a popularity pass (collection,
// person, movie, series) can run it first.
func (d *Driver) exportDetailRun(ctx context.Context, logger *slog.Logger, kind registry.Kind, date time.Time, lastSuccess synclog.Entry, run *synclog.Run, mapFn detailMapFunc) (exportDiff, error) {
	return d.exportDetailRunWithHook(ctx, logger, kind, date, lastSuccess, run, mapFn, nil)
}

// exportDetailRunWithHook is exportDetailRun plus a per-chunk beforeLoad
// hook; see runChunkedWithHook.
func (d *Driver) exportDetailRunWithHook(ctx context.Context, logger *slog.Logger, kind registry.Kind, date time.Time, lastSuccess synclog.Entry, run *synclog.Run, mapFn detailMapFunc, beforeLoad func(context.Context) error) (exportDiff, error) {
	if err := run.Advance(ctx, synclog.FetchingData); err != nil {
		return exportDiff{}, err
	}

	diff, err := d.diffExportKind(ctx, logger, kind, date, lastSuccess)
	if err != nil {
		return exportDiff{}, err
	}

	if err := run.Advance(ctx, synclog.DataFetched); err != nil {
		return exportDiff{}, err
	}
	if err := run.Advance(ctx, synclog.SyncingToDB); err != nil {
		return exportDiff{}, err
	}

	if err := d.Loader.Prune(ctx, kind, diff.extra); err != nil {
		return exportDiff{}, err
	}

	if err := d.runChunkedWithHook(ctx, logger, kind, diff.missing, diff.popularity, mapFn, beforeLoad); err != nil {
		return exportDiff{}, err
	}

	return diff, nil
}

// finishPopularityRun runs the dedicated popularity-only pass before
// advancing to success, for kinds with SupportsPopularity set.
func (d *Driver) finishPopularityRun(ctx context.Context, kind registry.Kind, run *synclog.Run, diff exportDiff) error {
	if kind.SupportsPopularity {
		if err := run.Advance(ctx, synclog.UpdatingPopularity); err != nil {
			return err
		}
		if err := d.runPopularityPass(ctx, kind, diff.popularity); err != nil {
			return err
		}
	}
	return run.Success(ctx)
}
