// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/recomendapp/db-sync/internal/mapper"
)

func TestMovieMappedRows_CarriesEveryChildTable(t *testing.T) {
	rows := mapper.MovieRows{
		Parent:   []string{"1", "Inception"},
		Genres:   [][]string{{"1", "28"}},
		Keywords: [][]string{{"1", "862"}},
		Credits:  [][]string{{"1", "500"}},
	}

	mr := movieMappedRows(rows)

	assert.Equal(t, rows.Parent, mr.Parent)
	assert.Equal(t, rows.Genres, mr.Children["movie_genres"])
	assert.Equal(t, rows.Keywords, mr.Children["movie_keywords"])
	assert.Equal(t, rows.Credits, mr.Children["movie_credits"])
	assert.Contains(t, mr.Children, "movie_roles")
}

func TestSeriesMappedRows_LeavesEpisodesNilForCallerToFill(t *testing.T) {
	rows := mapper.SeriesRows{
		Parent: []string{"1", "Breaking Bad"},
		Genres: [][]string{{"1", "18"}},
	}

	mr := seriesMappedRows(rows)

	assert.Equal(t, rows.Parent, mr.Parent)
	assert.Nil(t, mr.Children["series_episodes"])

	mr.Children["series_episodes"] = [][]string{{"1", "1", "1"}}
	assert.Equal(t, [][]string{{"1", "1", "1"}}, mr.Children["series_episodes"])
}

func TestPersonMappedRows_CarriesEveryChildTable(t *testing.T) {
	rows := mapper.PersonRows{
		Parent:      []string{"500", "Tom Cruise"},
		AlsoKnownAs: [][]string{{"500", "TC"}},
	}

	mr := personMappedRows(rows)

	assert.Equal(t, rows.Parent, mr.Parent)
	assert.Equal(t, rows.AlsoKnownAs, mr.Children["person_also_known_as"])
	assert.Contains(t, mr.Children, "person_external_ids")
	assert.Contains(t, mr.Children, "person_translations")
	assert.Contains(t, mr.Children, "person_images")
}
