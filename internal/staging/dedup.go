// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package staging

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/recomendapp/db-sync/internal/platform/syncerr"
)

// Dedup rewrites the staged file keeping only the last row seen for each
// distinct value of conflictColumns, matching the upsert semantics the
// Bulk Loader will apply anyway (ON CONFLICT DO UPDATE keeps the latest
// write). Without this, a conflict key repeated within one staging batch
// (a movie appearing twice in a changed-ids page, say) would make
// Postgres's COPY + ON CONFLICT fail with "ON CONFLICT DO UPDATE command
// cannot affect row a second time".
//
// Call Close before Dedup; Dedup reopens the file itself.
func (b *Buffer) Dedup(conflictColumns []string) error {
	keyIndexes := make([]int, 0, len(conflictColumns))
	for _, col := range conflictColumns {
		idx := indexOf(b.columns, col)
		if idx < 0 {
			return fmt.Errorf("staging: conflict column %q not in buffer columns", col)
		}
		keyIndexes = append(keyIndexes, idx)
	}

	in, err := os.Open(b.filePath)
	if err != nil {
		return fmt.Errorf("staging: open for dedup: %w", err)
	}
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = len(b.columns)

	order := make([]string, 0)
	last := make(map[string][]string)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			in.Close()
			return syncerr.New(syncerr.StagingFormatError, "read staged row for dedup", err)
		}
		key := rowKey(row, keyIndexes)
		if _, exists := last[key]; !exists {
			order = append(order, key)
		}
		last[key] = row
	}
	in.Close()

	out, err := os.Create(b.filePath)
	if err != nil {
		return fmt.Errorf("staging: recreate file for dedup: %w", err)
	}
	writer := csv.NewWriter(out)
	for _, key := range order {
		if err := writer.Write(last[key]); err != nil {
			out.Close()
			return syncerr.New(syncerr.StagingFormatError, "write deduped row", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		out.Close()
		return syncerr.New(syncerr.StagingFormatError, "flush deduped rows", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("staging: close deduped file: %w", err)
	}

	b.rows = len(order)
	return nil
}

func indexOf(haystack []string, needle string) int {
	for i, v := range haystack {
		if v == needle {
			return i
		}
	}
	return -1
}

func rowKey(row []string, indexes []int) string {
	parts := make([]string, len(indexes))
	for i, idx := range indexes {
		parts[i] = row[idx]
	}
	return strings.Join(parts, "\x1f")
}
