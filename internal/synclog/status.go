// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package synclog implements the Sync-Log State Machine (§4.9, C9): a
persistent per-(kind, date) run record the driver advances through a
fixed status sequence, so the next run can find the last successful date
and compute an incremental window instead of reconciling the full
universe every time.

Grounded on original_source/sync_tmdb/models/sync_logs_manager.py's
SyncLogsManager, which carries the same init/update_log/get_last_success_log
shape against a hand-rolled connection pool; here the pool is
[github.com/jackc/pgx/v5/pgxpool.Pool] instead of a raw psycopg2 pool, and
status transitions are validated against an explicit graph rather than
left to whichever caller happens to invoke update_log next.
*/
package synclog

import "fmt"

// Status is one node in the sync-log transition graph.
type Status string

const (
	Initialized        Status = "initialized"
	FetchingData       Status = "fetching_data"
	DataFetched        Status = "data_fetched"
	SyncingToDB        Status = "syncing_to_db"
	UpdatingPopularity Status = "updating_popularity"
	Success            Status = "success"
	Failed             Status = "failed"
)

// transitions maps each status to the set of statuses that may legally
// follow it. failed is reachable from every non-terminal status; success
// and failed are both terminal.
var transitions = map[Status][]Status{
	Initialized:        {FetchingData, Failed},
	FetchingData:       {DataFetched, Failed},
	DataFetched:        {SyncingToDB, Failed},
	SyncingToDB:        {UpdatingPopularity, Success, Failed},
	UpdatingPopularity: {Success, Failed},
	Success:            {},
	Failed:             {},
}

// Terminal reports whether s is a terminal status (success or failed);
// no further advance is legal from it.
func (s Status) Terminal() bool {
	return s == Success || s == Failed
}

// validateTransition reports an error if moving from `from` to `to` is not
// an edge in the transition graph.
func validateTransition(from, to Status) error {
	if from.Terminal() {
		return fmt.Errorf("synclog: status %q is terminal, cannot advance to %q", from, to)
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return fmt.Errorf("synclog: illegal transition %q -> %q", from, to)
}
