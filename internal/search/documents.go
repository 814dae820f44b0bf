// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import "github.com/jackc/pgx/v5"

// sourceQuery is the denormalizing SQL behind one collection's data sync:
// a single row per parent entity, with any one-to-many child aggregated
// into an array by the database rather than the mapper.
var sourceQuery = map[string]string{
	"movies": `
		SELECT
			m.id, m.title, m.overview,
			extract(epoch FROM m.release_date)::bigint,
			m.runtime, m.popularity, m.vote_average,
			coalesce(array_agg(mg.genre_id) FILTER (WHERE mg.genre_id IS NOT NULL), '{}'),
			m.poster_path
		FROM movie m
		LEFT JOIN movie_genres mg ON mg.movie_id = m.id
		GROUP BY m.id
		ORDER BY m.id`,
	"series": `
		SELECT
			s.id, s.name, s.overview,
			extract(epoch FROM s.first_air_date)::bigint,
			s.popularity, s.vote_average,
			coalesce(array_agg(sg.genre_id) FILTER (WHERE sg.genre_id IS NOT NULL), '{}'),
			s.poster_path
		FROM series s
		LEFT JOIN series_genres sg ON sg.series_id = s.id
		GROUP BY s.id
		ORDER BY s.id`,
	"persons": `
		SELECT id, name, popularity, known_for_department, profile_path
		FROM person
		ORDER BY id`,
}

// rowToDocument maps one row of collection's sourceQuery into the document
// shape schema.go declares for it.
func rowToDocument(collection string, row pgx.Rows) (map[string]any, string, error) {
	switch collection {
	case "movies":
		var (
			id                int64
			title, overview   string
			releaseTS         *int64
			runtime           *int32
			popularity        float64
			voteAverage       *float64
			genreIDs          []int64
			posterPath        *string
		)
		if err := row.Scan(&id, &title, &overview, &releaseTS, &runtime, &popularity, &voteAverage, &genreIDs, &posterPath); err != nil {
			return nil, "", err
		}
		doc := map[string]any{
			"id": id, "title": title, "overview": overview,
			"popularity": popularity, "genre_ids": genreIDs,
		}
		setOptional(doc, "release_timestamp", releaseTS)
		setOptional(doc, "runtime", runtime)
		setOptional(doc, "vote_average", voteAverage)
		setOptional(doc, "poster_path", posterPath)
		return doc, idString(id), nil

	case "series":
		var (
			id              int64
			title, overview string
			firstAirTS      *int64
			popularity      float64
			voteAverage     *float64
			genreIDs        []int64
			posterPath      *string
		)
		if err := row.Scan(&id, &title, &overview, &firstAirTS, &popularity, &voteAverage, &genreIDs, &posterPath); err != nil {
			return nil, "", err
		}
		doc := map[string]any{
			"id": id, "title": title, "overview": overview,
			"popularity": popularity, "genre_ids": genreIDs,
		}
		setOptional(doc, "first_air_timestamp", firstAirTS)
		setOptional(doc, "vote_average", voteAverage)
		setOptional(doc, "poster_path", posterPath)
		return doc, idString(id), nil

	case "persons":
		var (
			id                 int64
			name               string
			popularity         float64
			knownForDepartment *string
			profilePath        *string
		)
		if err := row.Scan(&id, &name, &popularity, &knownForDepartment, &profilePath); err != nil {
			return nil, "", err
		}
		doc := map[string]any{"id": id, "name": name, "popularity": popularity}
		setOptional(doc, "known_for_department", knownForDepartment)
		setOptional(doc, "profile_path", profilePath)
		return doc, idString(id), nil
	}
	return nil, "", nil
}

// setOptional assigns v into doc[key] when v is a non-nil pointer,
// mirroring the schema's Optional fields: a NULL database column simply
// doesn't appear in the document rather than being written as null.
func setOptional[T any](doc map[string]any, key string, v *T) {
	if v != nil {
		doc[key] = *v
	}
}
