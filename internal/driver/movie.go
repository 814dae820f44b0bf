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

// adultFlag is the one field the driver reads directly off a raw detail
// document rather than through internal/mapper's typed structs: adult
// content is skipped before mapping (§9 E4) and never gets a column of its
// own, so there is no mapper field to carry it.
type adultFlag struct {
	Adult bool `json:"adult"`
}

func isAdult(raw json.RawMessage) bool {
	var flag adultFlag
	if err := json.Unmarshal(raw, &flag); err != nil {
		return false
	}
	return flag.Adult
}

// runMovieKind syncs movie: export+changes, chunked detail fetch,
// keyword-harvesting, then a popularity-only pass.
func (d *Driver) runMovieKind(ctx context.Context, logger *slog.Logger, kind registry.Kind, date time.Time, lastSuccess synclog.Entry, run *synclog.Run) error {
	keywords, err := d.RefCache.Int64SetFor(ctx, "ref_keyword", "id")
	if err != nil {
		return err
	}
	harvester := newKeywordHarvester(keywords)

	diff, err := d.exportDetailRunWithHook(ctx, logger, kind, date, lastSuccess, run, func(ctx context.Context, id int64, _ float64) (mappedRows, json.RawMessage, bool, error) {
		raw, err := d.Upstream.Detail(ctx, "movie", id)
		if err != nil {
			return mappedRows{}, nil, false, err
		}
		if isAdult(raw) {
			return mappedRows{}, nil, true, nil
		}

		harvester.addMovie(raw)

		refs, err := d.RefCache.RefSetsFor(ctx)
		if err != nil {
			return mappedRows{}, nil, false, err
		}
		rows, err := mapper.Movie(raw, refs, d.Langs)
		if err != nil {
			return mappedRows{}, nil, false, err
		}
		return movieMappedRows(rows), raw, false, nil
	}, func(ctx context.Context) error {
		return d.flushHarvestedKeywords(ctx, harvester)
	})
	if err != nil {
		return err
	}

	return d.finishPopularityRun(ctx, kind, run, diff)
}
