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

// runSeriesKind syncs series: export+changes, chunked detail fetch,
// keyword-harvesting, and — unlike every other kind — a second per-season
// fetch to pull each season's full episode list, since a series detail
// document only carries season summaries.
func (d *Driver) runSeriesKind(ctx context.Context, logger *slog.Logger, kind registry.Kind, date time.Time, lastSuccess synclog.Entry, run *synclog.Run) error {
	keywords, err := d.RefCache.Int64SetFor(ctx, "ref_keyword", "id")
	if err != nil {
		return err
	}
	harvester := newKeywordHarvester(keywords)

	diff, err := d.exportDetailRunWithHook(ctx, logger, kind, date, lastSuccess, run, func(ctx context.Context, id int64, _ float64) (mappedRows, json.RawMessage, bool, error) {
		raw, err := d.Upstream.Detail(ctx, "series", id)
		if err != nil {
			return mappedRows{}, nil, false, err
		}
		if isAdult(raw) {
			return mappedRows{}, nil, true, nil
		}

		harvester.addSeries(raw)

		refs, err := d.RefCache.RefSetsFor(ctx)
		if err != nil {
			return mappedRows{}, nil, false, err
		}
		rows, err := mapper.Series(raw, refs, d.Langs)
		if err != nil {
			return mappedRows{}, nil, false, err
		}

		episodes, err := d.fetchSeasonEpisodes(ctx, logger, id, raw)
		if err != nil {
			return mappedRows{}, nil, false, err
		}

		mr := seriesMappedRows(rows)
		mr.Children["series_episodes"] = episodes
		return mr, raw, false, nil
	}, func(ctx context.Context) error {
		return d.flushHarvestedKeywords(ctx, harvester)
	})
	if err != nil {
		return err
	}

	return d.finishPopularityRun(ctx, kind, run, diff)
}

// fetchSeasonEpisodes fetches every season listed in a series detail
// document and maps each one's episode list, one request per season. A
// season whose own fetch fails is logged and skipped rather than failing
// the whole series — a missing season's episodes can be picked up on the
// next run, the way a missing movie credit would be.
func (d *Driver) fetchSeasonEpisodes(ctx context.Context, logger *slog.Logger, seriesID int64, raw json.RawMessage) ([][]string, error) {
	seasons, err := mapper.SeriesSeasonRefs(raw)
	if err != nil {
		return nil, err
	}

	var episodes [][]string
	for _, season := range seasons {
		seasonRaw, err := d.Upstream.SeriesSeason(ctx, seriesID, season.SeasonNumber)
		if err != nil {
			logger.Warn("season fetch failed, skipping its episodes", "series_id", seriesID, "season_number", season.SeasonNumber, "error", err)
			continue
		}
		rows, err := mapper.SeasonEpisodes(seasonRaw, season.ID)
		if err != nil {
			logger.Warn("season episode mapping failed, skipping", "series_id", seriesID, "season_number", season.SeasonNumber, "error", err)
			continue
		}
		episodes = append(episodes, rows...)
	}
	return episodes, nil
}
