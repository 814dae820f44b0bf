// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mapper

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/recomendapp/db-sync/internal/mapper/langtag"
	"github.com/recomendapp/db-sync/internal/platform/syncerr"
)

// movieDetail mirrors the shape of a /movie/{id} response with
// append_to_response=alternative_titles,credits,external_ids,images,
// keywords,release_dates,translations. Grounded field-for-field on
// original_source/sync_tmdb/flows/movie/mapper.py.
type movieDetail struct {
	ID                  int64   `json:"id"`
	Title               string  `json:"title"`
	OriginalTitle       string  `json:"original_title"`
	OriginalLanguage    string  `json:"original_language"`
	Overview            string  `json:"overview"`
	Tagline             string  `json:"tagline"`
	Status              string  `json:"status"`
	ReleaseDate         string  `json:"release_date"`
	Runtime             int64   `json:"runtime"`
	Budget              int64   `json:"budget"`
	Revenue             int64   `json:"revenue"`
	Popularity          float64 `json:"popularity"`
	VoteAverage         float64 `json:"vote_average"`
	VoteCount           int64   `json:"vote_count"`
	Homepage            string  `json:"homepage"`
	IMDbID              string  `json:"imdb_id"`
	PosterPath          string  `json:"poster_path"`
	BackdropPath        string  `json:"backdrop_path"`
	BelongsToCollection *struct {
		ID int64 `json:"id"`
	} `json:"belongs_to_collection"`
	Genres []struct {
		ID int64 `json:"id"`
	} `json:"genres"`
	OriginCountry      []string `json:"origin_country"`
	ProductionCompanies []struct {
		ID int64 `json:"id"`
	} `json:"production_companies"`
	ProductionCountries []struct {
		ISO31661 string `json:"iso_3166_1"`
	} `json:"production_countries"`
	SpokenLanguages []struct {
		ISO6391 string `json:"iso_639_1"`
	} `json:"spoken_languages"`
	AlternativeTitles struct {
		Titles []struct {
			ISO31661 string `json:"iso_3166_1"`
			Title    string `json:"title"`
			Type     string `json:"type"`
		} `json:"titles"`
	} `json:"alternative_titles"`
	Translations struct {
		Translations []struct {
			ISO6391  string `json:"iso_639_1"`
			ISO31661 string `json:"iso_3166_1"`
			Data     struct {
				Title    string `json:"title"`
				Overview string `json:"overview"`
				Tagline  string `json:"tagline"`
			} `json:"data"`
		} `json:"translations"`
	} `json:"translations"`
	ExternalIDs map[string]any `json:"external_ids"`
	Keywords    struct {
		Keywords []struct {
			ID int64 `json:"id"`
		} `json:"keywords"`
	} `json:"keywords"`
	ReleaseDates struct {
		Results []struct {
			ISO31661     string `json:"iso_3166_1"`
			ReleaseDates []struct {
				Certification string   `json:"certification"`
				ReleaseDate   string   `json:"release_date"`
				Type          int      `json:"type"`
				Descriptors   []string `json:"descriptors"`
			} `json:"release_dates"`
		} `json:"results"`
	} `json:"release_dates"`
	Credits struct {
		Cast []creditEntry `json:"cast"`
		Crew []creditEntry `json:"crew"`
	} `json:"credits"`
}

type creditEntry struct {
	CreditID   string `json:"credit_id"`
	ID         int64  `json:"id"`
	Department string `json:"department"`
	Job        string `json:"job"`
	Character  string `json:"character"`
	Order      int64  `json:"order"`
}

// MovieRows is the per-table row set produced by mapping one movie detail
// document, ready to append to the matching internal/staging.Buffer for
// each table in registry.Movie.
type MovieRows struct {
	Parent               []string
	Genres               [][]string
	Keywords             [][]string
	OriginCountry        [][]string
	ProductionCompanies  [][]string
	ProductionCountries  [][]string
	SpokenLanguages      [][]string
	AlternativeTitles    [][]string
	Translations         [][]string
	ExternalIDs          [][]string
	ReleaseDates         [][]string
	Credits              [][]string
	Roles                [][]string
}

// Movie maps one movie detail document into MovieRows, dropping any child
// row whose foreign key (genre, keyword, company, country, language,
// person) has no referent in refs, and writing NULL for the parent's
// collection_id when the collection isn't in refs.
func Movie(raw json.RawMessage, refs RefSets, langs langtag.Allowlist) (MovieRows, error) {
	var m movieDetail
	if err := json.Unmarshal(raw, &m); err != nil {
		return MovieRows{}, syncerr.New(syncerr.StagingFormatError, "decode movie detail", err)
	}
	if m.ID == 0 {
		return MovieRows{}, fmt.Errorf("mapper: movie detail missing id")
	}

	var collectionID string
	if m.BelongsToCollection != nil && refs.Collections.Has(m.BelongsToCollection.ID) {
		collectionID = strconv.FormatInt(m.BelongsToCollection.ID, 10)
	}

	rows := MovieRows{
		Parent: []string{
			strconv.FormatInt(m.ID, 10),
			Nullify(m.Title, ""),
			Nullify(m.OriginalTitle, ""),
			Nullify(m.OriginalLanguage, ""),
			Nullify(m.Overview, ""),
			Nullify(m.Tagline, ""),
			Nullify(m.Status, ""),
			Nullify(m.ReleaseDate, ""),
			NullifyInt(m.Runtime, 0),
			strconv.FormatInt(m.Budget, 10),
			strconv.FormatInt(m.Revenue, 10),
			strconv.FormatFloat(m.Popularity, 'f', -1, 64),
			strconv.FormatFloat(m.VoteAverage, 'f', -1, 64),
			strconv.FormatInt(m.VoteCount, 10),
			Nullify(m.Homepage, ""),
			Nullify(m.IMDbID, ""),
			Nullify(m.PosterPath, ""),
			Nullify(m.BackdropPath, ""),
			collectionID,
		},
	}

	id := strconv.FormatInt(m.ID, 10)

	for _, g := range m.Genres {
		if refs.Genres.Has(g.ID) {
			rows.Genres = append(rows.Genres, []string{id, strconv.FormatInt(g.ID, 10)})
		}
	}
	for _, k := range m.Keywords.Keywords {
		if refs.Keywords.Has(k.ID) {
			rows.Keywords = append(rows.Keywords, []string{id, strconv.FormatInt(k.ID, 10)})
		}
	}
	for _, country := range m.OriginCountry {
		if refs.Countries.Has(country) {
			rows.OriginCountry = append(rows.OriginCountry, []string{id, country})
		}
	}
	for _, c := range m.ProductionCompanies {
		if refs.Companies.Has(c.ID) {
			rows.ProductionCompanies = append(rows.ProductionCompanies, []string{id, strconv.FormatInt(c.ID, 10)})
		}
	}
	for _, c := range m.ProductionCountries {
		if refs.Countries.Has(c.ISO31661) {
			rows.ProductionCountries = append(rows.ProductionCountries, []string{id, c.ISO31661})
		}
	}
	for _, l := range m.SpokenLanguages {
		if refs.Languages.Has(l.ISO6391) {
			rows.SpokenLanguages = append(rows.SpokenLanguages, []string{id, l.ISO6391})
		}
	}
	for _, t := range m.AlternativeTitles.Titles {
		rows.AlternativeTitles = append(rows.AlternativeTitles, []string{
			id, t.ISO31661, t.Title, Nullify(t.Type, ""),
		})
	}
	for _, t := range m.Translations.Translations {
		if !langs.Allows(t.ISO6391, t.ISO31661) || !AnyNonEmpty(t.Data.Title, t.Data.Overview, t.Data.Tagline) {
			continue
		}
		rows.Translations = append(rows.Translations, []string{
			id, t.ISO6391, t.ISO31661, Nullify(t.Data.Title, ""), Nullify(t.Data.Overview, ""), Nullify(t.Data.Tagline, ""),
		})
	}
	for source, value := range m.ExternalIDs {
		str, ok := asNonEmptyString(value)
		if !ok {
			continue
		}
		rows.ExternalIDs = append(rows.ExternalIDs, []string{id, trimIDSuffix(source), str})
	}
	for _, country := range m.ReleaseDates.Results {
		if !refs.Countries.Has(country.ISO31661) {
			continue
		}
		for _, rd := range country.ReleaseDates {
			rows.ReleaseDates = append(rows.ReleaseDates, []string{
				id, country.ISO31661, Nullify(rd.ReleaseDate, ""), Nullify(rd.Certification, ""),
				strconv.Itoa(rd.Type),
			})
		}
	}

	credits := append(append([]creditEntry{}, m.Credits.Cast...), m.Credits.Crew...)
	for _, c := range credits {
		if !refs.Persons.Has(c.ID) {
			continue
		}
		department := c.Department
		if department == "" {
			department = "Acting"
		}
		job := c.Job
		if job == "" {
			job = "Actor"
		}
		rows.Credits = append(rows.Credits, []string{id, c.CreditID, strconv.FormatInt(c.ID, 10), department, job})
		if c.Character != "" {
			rows.Roles = append(rows.Roles, []string{
				id, c.CreditID, strconv.FormatInt(c.ID, 10), Nullify(c.Character, ""), strconv.FormatInt(c.Order, 10),
			})
		}
	}

	return rows, nil
}

// trimIDSuffix drops a trailing "_id" from an external_ids source key, the
// same normalization original_source's mapper applies (imdb_id -> imdb).
func trimIDSuffix(source string) string {
	const suffix = "_id"
	if len(source) > len(suffix) && source[len(source)-len(suffix):] == suffix {
		return source[:len(source)-len(suffix)]
	}
	return source
}

func asNonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
