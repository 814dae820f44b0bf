// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/recomendapp/db-sync/internal/registry"
)

func TestUpsertSQL_DoNothingWhenNoUpdateColumns(t *testing.T) {
	sql := upsertSQL(registry.Movie.Children[0], "tmp_movie_genres_x")
	assert.Contains(t, sql, "ON CONFLICT (movie_id,genre_id) DO NOTHING")
}

func TestUpsertSQL_DoUpdateWhenUpdateColumnsPresent(t *testing.T) {
	sql := upsertSQL(registry.Movie.Parent, "tmp_movie_x")
	assert.Contains(t, sql, "ON CONFLICT (id) DO UPDATE SET")
	assert.Contains(t, sql, "title = EXCLUDED.title")
}

func TestDeleteStaleSQL_EmptyScopeSkipsDelete(t *testing.T) {
	sql := deleteStaleSQL(registry.Movie.Children[0], "tmp_x", nil)
	assert.Empty(t, sql)
}

func TestDeleteStaleSQL_ScopesToParentIDs(t *testing.T) {
	sql := deleteStaleSQL(registry.Movie.Children[0], "tmp_movie_genres_x", []string{"1", "2"})
	assert.Contains(t, sql, "NOT IN (SELECT movie_id,genre_id FROM tmp_movie_genres_x)")
	assert.Contains(t, sql, "movie_id IN ('1','2')")
}

func TestDeleteStaleSQL_EscapesQuotes(t *testing.T) {
	sql := deleteStaleSQL(registry.Movie.Children[0], "tmp_x", []string{"a'b"})
	assert.Contains(t, sql, "'a''b'")
}
