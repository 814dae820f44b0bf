// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package driver

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/recomendapp/db-sync/internal/loader"
	"github.com/recomendapp/db-sync/internal/mapper"
	"github.com/recomendapp/db-sync/internal/refcache"
	"github.com/recomendapp/db-sync/internal/registry"
	"github.com/recomendapp/db-sync/internal/staging"
	"github.com/recomendapp/db-sync/internal/synclog"
	"github.com/recomendapp/db-sync/internal/upstream"
)

// runKeywordKind has nothing of its own to fetch: TMDB publishes no bulk
// keyword list, so ref_keyword is populated entirely as a side effect of
// runMovieKind/runSeriesKind harvesting the keywords embedded in movie and
// series detail payloads (see harvestKeywords). This pass exists only to
// give "keyword" the same sync-log lifecycle as every other kind.
func (d *Driver) runKeywordKind(ctx context.Context, logger *slog.Logger, run *synclog.Run) error {
	if err := run.Advance(ctx, synclog.FetchingData); err != nil {
		return err
	}
	if err := run.Advance(ctx, synclog.DataFetched); err != nil {
		return err
	}
	if err := run.Advance(ctx, synclog.SyncingToDB); err != nil {
		return err
	}
	return run.Success(ctx)
}

// movieKeywordsShape and seriesKeywordsShape mirror the two differently
// nested "keywords" sub-objects TMDB's movie and tv detail endpoints embed
// (movie: {"keywords":[...]}, tv: {"results":[...]}) — the raw shape
// movieDetail/seriesDetail don't capture, since they only keep the id for
// FK filtering and drop the name a freshly-discovered keyword needs.
type movieKeywordsShape struct {
	Keywords struct {
		Keywords []upstream.Keyword `json:"keywords"`
	} `json:"keywords"`
}

type seriesKeywordsShape struct {
	Keywords struct {
		Results []upstream.Keyword `json:"results"`
	} `json:"keywords"`
}

// keywordHarvester accumulates newly discovered keyword rows across a
// chunk's concurrent detail fetches and exposes them once for staging.
type keywordHarvester struct {
	mu      sync.Mutex
	known   *refcache.Int64Set
	harvest map[int64]upstream.Keyword
}

func newKeywordHarvester(known *refcache.Int64Set) *keywordHarvester {
	return &keywordHarvester{known: known, harvest: make(map[int64]upstream.Keyword)}
}

// addMovie extracts keywords from a movie detail document.
func (h *keywordHarvester) addMovie(raw json.RawMessage) {
	var shape movieKeywordsShape
	if err := json.Unmarshal(raw, &shape); err != nil {
		return
	}
	h.add(shape.Keywords.Keywords)
}

// addSeries extracts keywords from a series detail document.
func (h *keywordHarvester) addSeries(raw json.RawMessage) {
	var shape seriesKeywordsShape
	if err := json.Unmarshal(raw, &shape); err != nil {
		return
	}
	h.add(shape.Keywords.Results)
}

func (h *keywordHarvester) add(keywords []upstream.Keyword) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, k := range keywords {
		if h.known.Has(k.ID) {
			continue
		}
		if _, ok := h.harvest[k.ID]; ok {
			continue
		}
		h.harvest[k.ID] = k
		h.known.Add(k.ID)
	}
}

// drain returns every keyword harvested since the last drain as
// ref_keyword rows, and resets the harvest set.
func (h *keywordHarvester) drain() [][]string {
	h.mu.Lock()
	defer h.mu.Unlock()
	rows := make([][]string, 0, len(h.harvest))
	for _, k := range h.harvest {
		rows = append(rows, mapper.Keyword(k))
	}
	h.harvest = make(map[int64]upstream.Keyword)
	return rows
}

// flush stages and loads any keywords harvested since the last flush, so a
// keyword discovered mid-chunk is already present in ref_keyword by the
// time the owning movie/series chunk's own batch upserts its FK rows.
func (d *Driver) flushHarvestedKeywords(ctx context.Context, h *keywordHarvester) error {
	rows := h.drain()
	if len(rows) == 0 {
		return nil
	}
	buf, err := staging.New(d.StagingDir, "keyword_harvest", registry.Keyword.Parent.Columns)
	if err != nil {
		return err
	}
	defer buf.Delete()

	if err := buf.AppendAll(rows); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	return d.Loader.LoadBatch(ctx, registry.Keyword, loader.TableBuffer{Table: registry.Keyword.Parent, Buffer: buf}, nil, nil)
}
