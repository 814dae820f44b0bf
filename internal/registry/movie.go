// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package registry

// Movie kind (§3), the richest media kind. Grounded on
// original_source/sync_tmdb/flows/movie/{sync_tmdb_movie.py,mapper.py,config.py},
// which enumerate roughly fourteen child tables per chunk; this repo
// implements twelve of them, covering nullify, credit_id extraction, FK
// drop-vs-null and translations-only-if-nonempty; none of the twelve has
// an array-literal column. movie_images and movie_videos are not
// implemented and the mapper emits no rows for them; the same
// child shapes carry over to tv_series. The adult flag is dropped entirely
// per §9 (E4).

var Movie = Kind{
	Name: "movie",
	Parent: Table{
		Name: "movie",
		Columns: []string{
			"id", "title", "original_title", "original_language", "overview",
			"tagline", "status", "release_date", "runtime", "budget", "revenue",
			"popularity", "vote_average", "vote_count", "homepage", "imdb_id",
			"poster_path", "backdrop_path", "collection_id",
		},
		ConflictKey: []string{"id"},
		UpdateOnConflict: []string{
			"title", "original_title", "original_language", "overview",
			"tagline", "status", "release_date", "runtime", "budget", "revenue",
			"popularity", "vote_average", "vote_count", "homepage", "imdb_id",
			"poster_path", "backdrop_path", "collection_id",
		},
	},
	Children: []Table{
		{
			Name:           "movie_genres",
			Columns:        []string{"movie_id", "genre_id"},
			ConflictKey:    []string{"movie_id", "genre_id"},
			ParentIDColumn: "movie_id",
		},
		{
			Name:           "movie_keywords",
			Columns:        []string{"movie_id", "keyword_id"},
			ConflictKey:    []string{"movie_id", "keyword_id"},
			ParentIDColumn: "movie_id",
		},
		{
			Name:           "movie_origin_country",
			Columns:        []string{"movie_id", "country_code"},
			ConflictKey:    []string{"movie_id", "country_code"},
			ParentIDColumn: "movie_id",
		},
		{
			Name:           "movie_production_companies",
			Columns:        []string{"movie_id", "company_id"},
			ConflictKey:    []string{"movie_id", "company_id"},
			ParentIDColumn: "movie_id",
		},
		{
			Name:           "movie_production_countries",
			Columns:        []string{"movie_id", "country_code"},
			ConflictKey:    []string{"movie_id", "country_code"},
			ParentIDColumn: "movie_id",
		},
		{
			Name:           "movie_spoken_languages",
			Columns:        []string{"movie_id", "language_code"},
			ConflictKey:    []string{"movie_id", "language_code"},
			ParentIDColumn: "movie_id",
		},
		{
			Name:             "movie_alternative_titles",
			Columns:          []string{"movie_id", "country_code", "title", "type"},
			ConflictKey:      []string{"movie_id", "country_code", "title"},
			UpdateOnConflict: []string{"type"},
			ParentIDColumn:   "movie_id",
		},
		{
			Name:             "movie_translations",
			Columns:          []string{"movie_id", "language", "country", "title", "overview", "tagline"},
			ConflictKey:      []string{"movie_id", "language", "country"},
			UpdateOnConflict: []string{"title", "overview", "tagline"},
			ParentIDColumn:   "movie_id",
		},
		{
			Name:             "movie_external_ids",
			Columns:          []string{"movie_id", "source", "external_id"},
			ConflictKey:      []string{"movie_id", "source"},
			UpdateOnConflict: []string{"external_id"},
			ParentIDColumn:   "movie_id",
		},
		{
			Name: "movie_release_dates",
			Columns: []string{
				"movie_id", "country_code", "release_date", "certification", "release_type",
			},
			ConflictKey:      []string{"movie_id", "country_code", "release_date", "release_type"},
			UpdateOnConflict: []string{"certification"},
			ParentIDColumn:   "movie_id",
		},
		{
			Name: "movie_credits",
			Columns: []string{
				"movie_id", "credit_id", "person_id", "department", "job",
			},
			ConflictKey:      []string{"credit_id"},
			UpdateOnConflict: []string{"movie_id", "person_id", "department", "job"},
			ParentIDColumn:   "movie_id",
		},
		{
			Name: "movie_roles",
			Columns: []string{
				"movie_id", "credit_id", "person_id", "character", "cast_order",
			},
			ConflictKey:      []string{"credit_id"},
			UpdateOnConflict: []string{"movie_id", "person_id", "character", "cast_order"},
			ParentIDColumn:   "movie_id",
		},
	},
	DependsOn: []string{
		"language", "country", "genre", "keyword", "collection", "company", "person",
	},
	SupportsPopularity: true,
	ChunkSize:          512,
}
