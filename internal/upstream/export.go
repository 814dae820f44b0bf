// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// ExportBaseURL is the CDN root the daily ID exports are published under.
// Grounded on original_source/sync_tmdb/models/tmdb.py's EXPORT_BASE_URL.
const ExportBaseURL = "http://files.tmdb.org/p/exports"

// exportRow is the shape common to every kind's daily export file: a bare
// id, optionally accompanied by a popularity figure.
type exportRow struct {
	ID         int64   `json:"id"`
	Popularity float64 `json:"popularity"`
}

// ExportID pairs the upstream id with the popularity the export row carried,
// when the kind's export includes one (movie, series, person, collection).
type ExportID struct {
	ID         int64
	Popularity float64
}

// ExportKindPaths maps a registry kind name to the export file's filename
// stem, since TMDB's export naming doesn't always match the kind name
// ("series" exports as "tv_series_ids", "collection" as
// "collection_ids", etc).
var ExportKindPaths = map[string]string{
	"movie":      "movie_ids",
	"series":     "tv_series_ids",
	"person":     "person_ids",
	"collection": "collection_ids",
	"company":    "production_company_ids",
	"network":    "tv_network_ids",
	"keyword":    "keyword_ids",
}

// ExportIDs downloads and parses the full daily ID export for kind as
// published for date, returning every id (and, where present, popularity)
// in the file.
//
// The export is gzip-compressed newline-delimited JSON; a request for a
// date before the export existed or after today (TMDB publishes each day's
// export once, shortly after 00:00 UTC) returns a 404, surfaced as
// [syncerr.ExportUnavailable].
func (c *Client) ExportIDs(ctx context.Context, kind string, date time.Time) ([]ExportID, error) {
	stem, ok := ExportKindPaths[kind]
	if !ok {
		return nil, fmt.Errorf("upstream: no export mapping for kind %q", kind)
	}

	url := fmt.Sprintf("%s/%s_%s.json.gz", c.exportBase, stem, date.Format("01_02_2006"))

	var ids []ExportID
	err := c.downloadGzipLines(ctx, url, func(line []byte) error {
		var row exportRow
		if err := json.Unmarshal(line, &row); err != nil {
			// Malformed rows are skipped rather than failing the whole
			// export: one corrupt line out of a million should not sink
			// the day's sync.
			return nil
		}
		ids = append(ids, ExportID{ID: row.ID, Popularity: row.Popularity})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
