// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/recomendapp/db-sync/internal/platform/syncerr"
)

// batchSize bounds how many rows are fetched from the cursor, mapped, and
// imported per round trip.
const batchSize = 10_000

// Projector drives the Search Projection for every declared collection: it
// reconciles each collection's schema, streams a denormalizing query
// through a server-side cursor to build and upsert documents, then deletes
// whatever the index still holds that the database no longer does.
type Projector struct {
	Client *Client
	Pool   *pgxpool.Pool
}

// NewProjector builds a Projector over client and pool.
func NewProjector(client *Client, pool *pgxpool.Pool) *Projector {
	return &Projector{Client: client, Pool: pool}
}

// SyncAll runs Sync for every declared collection, in no particular order
// (collections are independent of one another).
func (p *Projector) SyncAll(ctx context.Context) error {
	for name := range Collections {
		if err := p.Sync(ctx, name); err != nil {
			return fmt.Errorf("search: sync collection %q: %w", name, err)
		}
	}
	return nil
}

// Sync reconciles collection's schema, then upserts every current database
// row as a document and deletes whatever the index held that is no longer
// present in the database.
func (p *Projector) Sync(ctx context.Context, collection string) error {
	schema, ok := Collections[collection]
	if !ok {
		return fmt.Errorf("search: unknown collection %q", collection)
	}

	if err := p.reconcileSchema(ctx, schema); err != nil {
		return err
	}

	dbIDs, err := p.upsertFromDatabase(ctx, collection)
	if err != nil {
		return err
	}

	return p.deleteStale(ctx, collection, dbIDs)
}

// reconcileSchema creates collection's schema if absent, or drops and
// recreates it if the remote shape has drifted from what this repo
// declares.
func (p *Projector) reconcileSchema(ctx context.Context, schema CollectionSchema) error {
	remote, ok, err := p.Client.GetSchema(ctx, schema.Name)
	if err != nil {
		return err
	}
	if !ok {
		return p.Client.CreateCollection(ctx, schema)
	}
	if remote.Equal(schema) {
		return nil
	}
	if err := p.Client.DeleteCollection(ctx, schema.Name); err != nil {
		return syncerr.New(syncerr.SchemaDrift, "drop drifted collection "+schema.Name, err)
	}
	return p.Client.CreateCollection(ctx, schema)
}

// upsertFromDatabase streams collection's denormalizing query through a
// server-side cursor, batchSize rows at a time, mapping and importing each
// batch before fetching the next. It returns every id seen, for the
// caller's stale-deletion pass.
func (p *Projector) upsertFromDatabase(ctx context.Context, collection string) ([]string, error) {
	query, ok := sourceQuery[collection]
	if !ok {
		return nil, fmt.Errorf("search: no source query declared for collection %q", collection)
	}

	tx, err := p.Pool.Begin(ctx)
	if err != nil {
		return nil, syncerr.WrapPG(err, "begin search sync transaction for "+collection)
	}
	defer tx.Rollback(ctx)

	cursorName := "search_cursor_" + collection
	if _, err := tx.Exec(ctx, fmt.Sprintf("DECLARE %s NO SCROLL CURSOR FOR %s", cursorName, query)); err != nil {
		return nil, syncerr.WrapPG(err, "declare search cursor for "+collection)
	}

	var allIDs []string
	for {
		rows, err := tx.Query(ctx, fmt.Sprintf("FETCH FORWARD %d FROM %s", batchSize, cursorName))
		if err != nil {
			return nil, syncerr.WrapPG(err, "fetch from search cursor for "+collection)
		}

		var documents []map[string]any
		fetched := 0
		for rows.Next() {
			doc, id, err := rowToDocument(collection, rows)
			if err != nil {
				rows.Close()
				return nil, syncerr.WrapPG(err, "scan search row for "+collection)
			}
			documents = append(documents, doc)
			allIDs = append(allIDs, id)
			fetched++
		}
		rowsErr := rows.Err()
		rows.Close()
		if rowsErr != nil {
			return nil, syncerr.WrapPG(rowsErr, "iterate search rows for "+collection)
		}

		if err := p.Client.Import(ctx, collection, documents); err != nil {
			return nil, err
		}

		if fetched < batchSize {
			break
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, syncerr.WrapPG(err, "commit search sync transaction for "+collection)
	}
	return allIDs, nil
}

// deleteStale computes index_ids - db_ids and deletes the remainder from
// collection, the search index's half of the stale-deletion invariant the
// Bulk Loader already enforces on the relational side.
func (p *Projector) deleteStale(ctx context.Context, collection string, dbIDs []string) error {
	indexIDs, err := p.Client.ExportIDs(ctx, collection, "id")
	if err != nil {
		return err
	}

	present := make(map[string]struct{}, len(dbIDs))
	for _, id := range dbIDs {
		present[id] = struct{}{}
	}

	var stale []string
	for _, id := range indexIDs {
		if _, ok := present[id]; !ok {
			stale = append(stale, id)
		}
	}
	if len(stale) == 0 {
		return nil
	}
	return p.Client.DeleteByIDs(ctx, collection, "id", stale)
}

// idString renders an int64 document id as the string the stale-deletion
// diff and filter-delete queries work in.
func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}
