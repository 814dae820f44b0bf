// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package synclog

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/recomendapp/db-sync/internal/platform/syncerr"
)

// Entry mirrors one row of the sync_logs table.
type Entry struct {
	ID        int64
	Kind      string
	Status    Status
	Date      time.Time
	UpdatedAt time.Time
}

// Store reads and writes sync_logs rows.
type Store struct {
	pool  *pgxpool.Pool
	table string
}

// New builds a Store over pool, using the default sync_logs table name.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, table: "sync_logs"}
}

// Run is a handle on the current run's log row, returned by Init and
// advanced in place by Advance/Success/Failed.
type Run struct {
	store *Store
	entry Entry
}

// Entry returns a snapshot of the run's current row.
func (r *Run) Entry() Entry { return r.entry }

// Init inserts a new initialized row for (kind, date) and looks up the
// most recent success row for kind, which bounds the driver's incremental
// changed-ID window. lastSuccess is the zero Entry (Entry{}) if no prior
// success exists, in which case the driver performs a full reconciliation.
func (s *Store) Init(ctx context.Context, kind string, date time.Time) (*Run, Entry, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		"INSERT INTO "+s.table+" (type, status, date, updated_at) VALUES ($1, $2, $3, NOW()) RETURNING id",
		kind, Initialized, date,
	).Scan(&id)
	if err != nil {
		return nil, Entry{}, syncerr.WrapPG(err, "create sync log row")
	}

	run := &Run{store: s, entry: Entry{ID: id, Kind: kind, Status: Initialized, Date: date}}

	lastSuccess, err := s.lastSuccess(ctx, kind)
	if err != nil {
		return nil, Entry{}, err
	}
	return run, lastSuccess, nil
}

// lastSuccess returns the most recent success row for kind, or the zero
// Entry if none exists.
func (s *Store) lastSuccess(ctx context.Context, kind string) (Entry, error) {
	var e Entry
	err := s.pool.QueryRow(ctx,
		"SELECT id, type, status, date, updated_at FROM "+s.table+" WHERE type = $1 AND status = $2 ORDER BY date DESC LIMIT 1",
		kind, Success,
	).Scan(&e.ID, &e.Kind, &e.Status, &e.Date, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, nil
		}
		return Entry{}, syncerr.WrapPG(err, "read last success sync log")
	}
	return e, nil
}

// Latest returns the most recent row for kind regardless of status, for
// the admin API's run-status endpoint. ok is false if kind has never run.
func (s *Store) Latest(ctx context.Context, kind string) (Entry, bool, error) {
	var e Entry
	err := s.pool.QueryRow(ctx,
		"SELECT id, type, status, date, updated_at FROM "+s.table+" WHERE type = $1 ORDER BY updated_at DESC LIMIT 1",
		kind,
	).Scan(&e.ID, &e.Kind, &e.Status, &e.Date, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, false, nil
		}
		return Entry{}, false, syncerr.WrapPG(err, "read latest sync log")
	}
	return e, true, nil
}

// Advance validates and applies a status transition on the run's row.
func (r *Run) Advance(ctx context.Context, to Status) error {
	if err := validateTransition(r.entry.Status, to); err != nil {
		return err
	}
	if _, err := r.store.pool.Exec(ctx,
		"UPDATE "+r.store.table+" SET status = $1, updated_at = NOW() WHERE id = $2",
		to, r.entry.ID,
	); err != nil {
		return syncerr.WrapPG(err, "advance sync log status")
	}
	r.entry.Status = to
	return nil
}

// Success advances the run to the success terminal state.
func (r *Run) Success(ctx context.Context) error {
	return r.Advance(ctx, Success)
}

// Failed advances the run to the failed terminal state. Unlike Advance,
// Failed is legal from any non-terminal status and from an already-failed
// row (idempotent, so a defer-based cleanup path never itself errors).
func (r *Run) Failed(ctx context.Context) error {
	if r.entry.Status == Failed {
		return nil
	}
	if _, err := r.store.pool.Exec(ctx,
		"UPDATE "+r.store.table+" SET status = $1, updated_at = NOW() WHERE id = $2",
		Failed, r.entry.ID,
	); err != nil {
		return syncerr.WrapPG(err, "mark sync log failed")
	}
	r.entry.Status = Failed
	return nil
}
