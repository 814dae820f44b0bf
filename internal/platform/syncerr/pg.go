// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package syncerr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// WrapPG inspects a pgx/Postgres error and classifies it into a
// [*Error], the way [dberr.Wrap] does for yomira's REST handlers — but
// without translating to an HTTP status, since nothing in this repo
// renders a response body for a loader failure.
func WrapPG(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return New(DatabaseError, action+": no matching row", err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return New(DatabaseError, action+": unique constraint violated ("+pgErr.ConstraintName+")", err)
		case pgerrcode.ForeignKeyViolation:
			return New(DatabaseError, action+": foreign key violated ("+pgErr.ConstraintName+")", err)
		case pgerrcode.QueryCanceled:
			return New(NetworkError, action+": statement timeout exceeded", err)
		}
	}

	return New(DatabaseError, action+": unexpected database error", err)
}
