// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mapper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recomendapp/db-sync/internal/mapper"
	"github.com/recomendapp/db-sync/internal/mapper/langtag"
)

type fakeSet[K comparable] map[K]struct{}

func (s fakeSet[K]) Has(k K) bool {
	_, ok := s[k]
	return ok
}

func testRefSets() mapper.RefSets {
	return mapper.RefSets{
		Languages:   fakeSet[string]{"en": {}, "fr": {}},
		Countries:   fakeSet[string]{"US": {}, "FR": {}},
		Genres:      fakeSet[int64]{28: {}},
		Keywords:    fakeSet[int64]{100: {}},
		Collections: fakeSet[int64]{10: {}},
		Companies:   fakeSet[int64]{20: {}},
		Networks:    fakeSet[int64]{30: {}},
		Persons:     fakeSet[int64]{1: {}, 2: {}},
	}
}

func testLangs(t *testing.T) langtag.Allowlist {
	t.Helper()
	langs, err := langtag.NewAllowlist([]string{"fr-FR"})
	require.NoError(t, err)
	return langs
}

func TestNullify(t *testing.T) {
	assert.Equal(t, "", mapper.Nullify("", ""))
	assert.Equal(t, "x", mapper.Nullify("x", ""))
}

func TestAnyNonEmpty(t *testing.T) {
	assert.False(t, mapper.AnyNonEmpty("", "  "))
	assert.True(t, mapper.AnyNonEmpty("", "hello"))
}

func TestTextArrayLiteral(t *testing.T) {
	assert.Equal(t, "", mapper.TextArrayLiteral(nil))
	assert.Equal(t, `{"PG-13"}`, mapper.TextArrayLiteral([]string{"PG-13"}))
}

func TestMovie_DropsUnknownForeignKeys(t *testing.T) {
	raw := []byte(`{
		"id": 42,
		"title": "Test Movie",
		"genres": [{"id": 28}, {"id": 9999}],
		"keywords": {"keywords": [{"id": 100}, {"id": 9999}]},
		"belongs_to_collection": {"id": 9999},
		"credits": {"cast": [{"credit_id": "c1", "id": 1, "character": "Hero", "order": 0}, {"credit_id": "c2", "id": 9999}]}
	}`)

	rows, err := mapper.Movie(raw, testRefSets(), testLangs(t))
	require.NoError(t, err)

	assert.Equal(t, "42", rows.Parent[0])
	assert.Equal(t, "", rows.Parent[len(rows.Parent)-1], "unknown collection id should be dropped to NULL")
	require.Len(t, rows.Genres, 1)
	assert.Equal(t, []string{"42", "28"}, rows.Genres[0])
	require.Len(t, rows.Keywords, 1)
	require.Len(t, rows.Credits, 1)
	assert.Equal(t, "1", rows.Credits[0][2])
	require.Len(t, rows.Roles, 1)
}

func TestMovie_MissingIDErrors(t *testing.T) {
	_, err := mapper.Movie([]byte(`{"title":"no id"}`), testRefSets(), testLangs(t))
	require.Error(t, err)
}

func TestMovie_TranslationOnlyKeptWhenNonEmpty(t *testing.T) {
	raw := []byte(`{
		"id": 1,
		"translations": {"translations": [
			{"iso_639_1": "de", "iso_3166_1": "DE", "data": {"title": "", "overview": "", "tagline": ""}},
			{"iso_639_1": "fr", "iso_3166_1": "FR", "data": {"title": "Le Film", "overview": "", "tagline": ""}}
		]}
	}`)
	rows, err := mapper.Movie(raw, testRefSets(), testLangs(t))
	require.NoError(t, err)
	require.Len(t, rows.Translations, 1)
	assert.Equal(t, "fr", rows.Translations[0][1])
}

func TestPerson_MapsBasicFields(t *testing.T) {
	raw := []byte(`{"id": 7, "name": "Jane Doe", "also_known_as": ["J. Doe", ""]}`)
	rows, err := mapper.Person(raw, testLangs(t))
	require.NoError(t, err)
	assert.Equal(t, "7", rows.Parent[0])
	require.Len(t, rows.AlsoKnownAs, 1)
	assert.Equal(t, "J. Doe", rows.AlsoKnownAs[0][1])
}

func TestSeries_DropsUnknownNetwork(t *testing.T) {
	raw := []byte(`{"id": 5, "name": "Show", "networks": [{"id": 30}, {"id": 9999}]}`)
	rows, err := mapper.Series(raw, testRefSets(), testLangs(t))
	require.NoError(t, err)
	require.Len(t, rows.Networks, 1)
	assert.Equal(t, "30", rows.Networks[0][1])
}

func TestSeriesSeasonRefs_ListsSeasons(t *testing.T) {
	raw := []byte(`{"id": 5, "seasons": [{"id": 99, "season_number": 1}, {"id": 100, "season_number": 2}]}`)
	refs, err := mapper.SeriesSeasonRefs(raw)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, mapper.SeasonRef{ID: 99, SeasonNumber: 1}, refs[0])
}

func TestSeasonEpisodes_MapsEpisodes(t *testing.T) {
	raw := []byte(`{"id": 99, "episodes": [{"id": 1, "episode_number": 1, "name": "Pilot"}]}`)
	rows, err := mapper.SeasonEpisodes(raw, 99)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "99", rows[0][1])
}
