// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package upstream

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// ChangesPath maps a registry kind name to the upstream's /changes path
// segment, which doesn't always match the kind name ("series" is "tv").
var ChangesPath = map[string]string{
	"movie":  "movie",
	"series": "tv",
	"person": "person",
}

type changesPage struct {
	Results []struct {
		ID     int64 `json:"id"`
		Adult  bool  `json:"adult"`
	} `json:"results"`
	Page         int `json:"page"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

// ChangedIDs returns every id the upstream reports changed for kind between
// startDate and endDate (inclusive), deduplicated across pages.
//
// The endpoint paginates; pages are fetched concurrently once page 1
// reveals the total page count. If the upstream's reported total_results
// doesn't match the number of ids actually collected across pages, that
// discrepancy is logged at warn and the collected ids are returned anyway:
// the changes feed is a performance optimization over a full export diff,
// not a correctness boundary, so a count discrepancy does not fail the
// incremental sync. A page request that still fails after the client's
// retries does fail the whole call.
func (c *Client) ChangedIDs(ctx context.Context, log *slog.Logger, kind string, startDate, endDate time.Time) ([]int64, error) {
	segment, ok := ChangesPath[kind]
	if !ok {
		return nil, fmt.Errorf("upstream: no changes endpoint for kind %q", kind)
	}

	path := fmt.Sprintf("/3/%s/changes", segment)
	baseQuery := url.Values{
		"start_date": {startDate.Format("2006-01-02")},
		"end_date":   {endDate.Format("2006-01-02")},
	}

	var first changesPage
	q1 := cloneValues(baseQuery)
	q1.Set("page", "1")
	if err := c.getJSON(ctx, path, q1, &first); err != nil {
		return nil, err
	}

	var mu sync.Mutex
	seen := make(map[int64]struct{}, first.TotalResults)
	add := func(page changesPage) {
		mu.Lock()
		defer mu.Unlock()
		for _, r := range page.Results {
			seen[r.ID] = struct{}{}
		}
	}
	add(first)

	if first.TotalPages > 1 {
		g, gctx := errgroup.WithContext(ctx)
		for page := 2; page <= first.TotalPages; page++ {
			page := page
			g.Go(func() error {
				q := cloneValues(baseQuery)
				q.Set("page", strconv.Itoa(page))
				var resp changesPage
				if err := c.getJSON(gctx, path, q, &resp); err != nil {
					return err
				}
				add(resp)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}

	if first.TotalResults > 0 && len(ids) != first.TotalResults {
		log.Warn("changes feed count mismatch",
			"kind", kind,
			"reported_total", first.TotalResults,
			"collected", len(ids),
		)
	}

	return ids, nil
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
