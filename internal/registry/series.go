// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package registry

// TV series kind (§3). Mirrors movie's child-table shapes where the
// upstream sections are the same (genres, keywords, translations,
// external_ids, credits) and adds series_networks (this kind's
// organizational FK is network, not company) plus the two-level
// series_seasons / series_episodes hierarchy.
//
// series_seasons and series_episodes carry [Kind.HasSeasonEpisodeCarveOut]:
// unlike every other child table, the loader only upserts these two
// tables and deletes none of their rows, so a season or episode that has
// disappeared upstream stays in the database, whether or not its parent
// series/season is in the current staging chunk (design note, §9).

var Series = Kind{
	Name: "series",
	Parent: Table{
		Name: "series",
		Columns: []string{
			"id", "name", "original_name", "original_language", "overview",
			"tagline", "status", "type", "first_air_date", "last_air_date",
			"number_of_seasons", "number_of_episodes", "in_production",
			"homepage", "popularity", "vote_average", "vote_count",
			"poster_path", "backdrop_path",
		},
		ConflictKey: []string{"id"},
		UpdateOnConflict: []string{
			"name", "original_name", "original_language", "overview",
			"tagline", "status", "type", "first_air_date", "last_air_date",
			"number_of_seasons", "number_of_episodes", "in_production",
			"homepage", "popularity", "vote_average", "vote_count",
			"poster_path", "backdrop_path",
		},
	},
	Children: []Table{
		{
			Name:           "series_genres",
			Columns:        []string{"series_id", "genre_id"},
			ConflictKey:    []string{"series_id", "genre_id"},
			ParentIDColumn: "series_id",
		},
		{
			Name:           "series_keywords",
			Columns:        []string{"series_id", "keyword_id"},
			ConflictKey:    []string{"series_id", "keyword_id"},
			ParentIDColumn: "series_id",
		},
		{
			Name:           "series_networks",
			Columns:        []string{"series_id", "network_id"},
			ConflictKey:    []string{"series_id", "network_id"},
			ParentIDColumn: "series_id",
		},
		{
			Name:           "series_origin_country",
			Columns:        []string{"series_id", "country_code"},
			ConflictKey:    []string{"series_id", "country_code"},
			ParentIDColumn: "series_id",
		},
		{
			Name:           "series_spoken_languages",
			Columns:        []string{"series_id", "language_code"},
			ConflictKey:    []string{"series_id", "language_code"},
			ParentIDColumn: "series_id",
		},
		{
			Name:             "series_translations",
			Columns:          []string{"series_id", "language", "country", "name", "overview", "tagline"},
			ConflictKey:      []string{"series_id", "language", "country"},
			UpdateOnConflict: []string{"name", "overview", "tagline"},
			ParentIDColumn:   "series_id",
		},
		{
			Name:             "series_external_ids",
			Columns:          []string{"series_id", "source", "external_id"},
			ConflictKey:      []string{"series_id", "source"},
			UpdateOnConflict: []string{"external_id"},
			ParentIDColumn:   "series_id",
		},
		{
			Name: "series_credits",
			Columns: []string{
				"series_id", "credit_id", "person_id", "character", "cast_order",
			},
			ConflictKey:      []string{"credit_id"},
			UpdateOnConflict: []string{"series_id", "person_id", "character", "cast_order"},
			ParentIDColumn:   "series_id",
		},
		{
			Name: "series_seasons",
			Columns: []string{
				"id", "series_id", "season_number", "name", "overview",
				"air_date", "poster_path", "vote_average",
			},
			ConflictKey:      []string{"id"},
			UpdateOnConflict: []string{"series_id", "season_number", "name", "overview", "air_date", "poster_path", "vote_average"},
			ParentIDColumn:   "series_id",
		},
		{
			Name: "series_episodes",
			Columns: []string{
				"id", "season_id", "episode_number", "name", "overview",
				"air_date", "runtime", "still_path", "vote_average",
			},
			ConflictKey:      []string{"id"},
			UpdateOnConflict: []string{"season_id", "episode_number", "name", "overview", "air_date", "runtime", "still_path", "vote_average"},
			ParentIDColumn:   "season_id",
		},
	},
	DependsOn: []string{
		"language", "country", "genre", "keyword", "network", "person",
	},
	SupportsPopularity:       true,
	HasSeasonEpisodeCarveOut: true,
	ChunkSize:                500,
}
