// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package driver

import "github.com/recomendapp/db-sync/internal/mapper"

// movieMappedRows reshapes mapper.MovieRows' named fields into the
// table-name-keyed form runOneChunk appends into staging buffers.
func movieMappedRows(rows mapper.MovieRows) mappedRows {
	return mappedRows{
		Parent: rows.Parent,
		Children: map[string][][]string{
			"movie_genres":               rows.Genres,
			"movie_keywords":             rows.Keywords,
			"movie_origin_country":       rows.OriginCountry,
			"movie_production_companies": rows.ProductionCompanies,
			"movie_production_countries": rows.ProductionCountries,
			"movie_spoken_languages":     rows.SpokenLanguages,
			"movie_alternative_titles":   rows.AlternativeTitles,
			"movie_translations":         rows.Translations,
			"movie_external_ids":         rows.ExternalIDs,
			"movie_release_dates":        rows.ReleaseDates,
			"movie_credits":              rows.Credits,
			"movie_roles":                rows.Roles,
		},
	}
}

// seriesMappedRows reshapes mapper.SeriesRows into table-name-keyed form.
// series_episodes is populated separately, once each season's own detail
// has been fetched, and merged in by the caller before staging.
func seriesMappedRows(rows mapper.SeriesRows) mappedRows {
	return mappedRows{
		Parent: rows.Parent,
		Children: map[string][][]string{
			"series_genres":           rows.Genres,
			"series_keywords":         rows.Keywords,
			"series_networks":         rows.Networks,
			"series_origin_country":   rows.OriginCountry,
			"series_spoken_languages": rows.SpokenLanguages,
			"series_translations":     rows.Translations,
			"series_external_ids":     rows.ExternalIDs,
			"series_credits":          rows.Credits,
			"series_seasons":          rows.Seasons,
			"series_episodes":         nil,
		},
	}
}

// personMappedRows reshapes mapper.PersonRows into table-name-keyed form.
func personMappedRows(rows mapper.PersonRows) mappedRows {
	return mappedRows{
		Parent: rows.Parent,
		Children: map[string][][]string{
			"person_also_known_as": rows.AlsoKnownAs,
			"person_external_ids":  rows.ExternalIDs,
			"person_translations":  rows.Translations,
			"person_images":        rows.Images,
		},
	}
}
