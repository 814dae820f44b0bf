// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package staging implements the Row-Staging Buffer (§4.5, C5): an on-disk
CSV file per destination table that the Entity Mapper appends shaped rows
to, and the Bulk Loader later streams into Postgres via COPY FROM STDIN.

Grounded on original_source/sync_tmdb/models/csv_file.py's CSVFile class,
translated from pandas DataFrame append semantics to Go's [encoding/csv].
No library in the pack offers a CSV-staging abstraction beyond the
standard library's encoding/csv, which is what yomira itself reaches for
whenever it needs delimited text (see its export tooling); this package
follows that precedent.
*/
package staging

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/recomendapp/db-sync/internal/platform/syncerr"
)

// Buffer is a single destination table's staged rows, held as an on-disk
// CSV file with no header row (the Bulk Loader's COPY statement supplies
// the column list itself).
type Buffer struct {
	columns  []string
	filePath string
	file     *os.File
	writer   *csv.Writer
	rows     int
}

// New creates a new, empty staging buffer for a table with the given
// columns, in dir (created if absent), named with prefix and a random
// suffix so concurrent runs never collide.
func New(dir, prefix string, columns []string) (*Buffer, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("staging: columns must be provided")
	}

	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("staging: create directory: %w", err)
		}
	}

	fileName := fmt.Sprintf("%s_%s.csv", prefix, uuid.NewString())
	filePath := fileName
	if dir != "" {
		filePath = dir + string(os.PathSeparator) + fileName
	}

	file, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("staging: create file: %w", err)
	}

	return &Buffer{
		columns:  columns,
		filePath: filePath,
		file:     file,
		writer:   csv.NewWriter(file),
	}, nil
}

// Append writes one row to the buffer. row must have the same length and
// column order as the buffer's columns.
func (b *Buffer) Append(row []string) error {
	if len(row) != len(b.columns) {
		return fmt.Errorf("staging: row has %d fields, expected %d", len(row), len(b.columns))
	}
	if err := b.writer.Write(row); err != nil {
		return syncerr.New(syncerr.StagingFormatError, "write staged row", err)
	}
	b.rows++
	return nil
}

// AppendAll writes every row in rows to the buffer.
func (b *Buffer) AppendAll(rows [][]string) error {
	for _, row := range rows {
		if err := b.Append(row); err != nil {
			return err
		}
	}
	return nil
}

// Columns returns the buffer's column list, in the order rows are written.
func (b *Buffer) Columns() []string {
	return b.columns
}

// Path returns the on-disk path of the staged file. Flush must be called
// first for the path's contents to be complete.
func (b *Buffer) Path() string {
	return b.filePath
}

// Rows returns the number of rows appended so far.
func (b *Buffer) Rows() int {
	return b.rows
}

// Flush writes any buffered data to disk without closing the file, so the
// Bulk Loader can open a second read handle on the same path mid-run.
func (b *Buffer) Flush() error {
	b.writer.Flush()
	if err := b.writer.Error(); err != nil {
		return syncerr.New(syncerr.StagingFormatError, "flush staged rows", err)
	}
	return nil
}

// Close flushes and closes the underlying file handle. It does not delete
// the file; call Delete for that once the loader has consumed it.
func (b *Buffer) Close() error {
	if err := b.Flush(); err != nil {
		_ = b.file.Close()
		return err
	}
	return b.file.Close()
}

// IsEmpty reports whether the buffer has had zero rows appended.
func (b *Buffer) IsEmpty() bool {
	return b.rows == 0
}

// Delete removes the staged file from disk. Safe to call even if the file
// was already removed or never created on this path.
func (b *Buffer) Delete() error {
	if err := os.Remove(b.filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("staging: delete %s: %w", b.filePath, err)
	}
	return nil
}
