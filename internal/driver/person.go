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

// runPersonKind syncs person: export+changes (person has a /person/changes
// feed), detail fetch, no foreign keys of its own — persons are instead
// the referent movie and series credits check against.
func (d *Driver) runPersonKind(ctx context.Context, logger *slog.Logger, kind registry.Kind, date time.Time, lastSuccess synclog.Entry, run *synclog.Run) error {
	diff, err := d.exportDetailRun(ctx, logger, kind, date, lastSuccess, run, func(ctx context.Context, id int64, _ float64) (mappedRows, json.RawMessage, bool, error) {
		raw, err := d.Upstream.Detail(ctx, "person", id)
		if err != nil {
			return mappedRows{}, nil, false, err
		}
		rows, err := mapper.Person(raw, d.Langs)
		if err != nil {
			return mappedRows{}, nil, false, err
		}
		return personMappedRows(rows), raw, false, nil
	})
	if err != nil {
		return err
	}
	return d.finishPopularityRun(ctx, kind, run, diff)
}
