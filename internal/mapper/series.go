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

type seriesDetail struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	OriginalName       string  `json:"original_name"`
	OriginalLanguage   string  `json:"original_language"`
	Overview           string  `json:"overview"`
	Tagline            string  `json:"tagline"`
	Status             string  `json:"status"`
	Type               string  `json:"type"`
	FirstAirDate       string  `json:"first_air_date"`
	LastAirDate        string  `json:"last_air_date"`
	NumberOfSeasons    int64   `json:"number_of_seasons"`
	NumberOfEpisodes   int64   `json:"number_of_episodes"`
	InProduction       bool    `json:"in_production"`
	Homepage           string  `json:"homepage"`
	Popularity         float64 `json:"popularity"`
	VoteAverage        float64 `json:"vote_average"`
	VoteCount          int64   `json:"vote_count"`
	PosterPath         string  `json:"poster_path"`
	BackdropPath       string  `json:"backdrop_path"`
	Genres             []struct {
		ID int64 `json:"id"`
	} `json:"genres"`
	Networks []struct {
		ID int64 `json:"id"`
	} `json:"networks"`
	OriginCountry   []string `json:"origin_country"`
	SpokenLanguages []struct {
		ISO6391 string `json:"iso_639_1"`
	} `json:"spoken_languages"`
	ExternalIDs map[string]any `json:"external_ids"`
	Keywords    struct {
		Results []struct {
			ID int64 `json:"id"`
		} `json:"results"`
	} `json:"keywords"`
	Translations struct {
		Translations []struct {
			ISO6391  string `json:"iso_639_1"`
			ISO31661 string `json:"iso_3166_1"`
			Data     struct {
				Name     string `json:"name"`
				Overview string `json:"overview"`
				Tagline  string `json:"tagline"`
			} `json:"data"`
		} `json:"translations"`
	} `json:"translations"`
	Credits struct {
		Cast []creditEntry `json:"cast"`
	} `json:"credits"`
	Seasons []struct {
		ID           int64   `json:"id"`
		SeasonNumber int64   `json:"season_number"`
		Name         string  `json:"name"`
		Overview     string  `json:"overview"`
		AirDate      string  `json:"air_date"`
		PosterPath   string  `json:"poster_path"`
		VoteAverage  float64 `json:"vote_average"`
	} `json:"seasons"`
}

// seasonDetail mirrors a /tv/{id}/season/{season_number} response, fetched
// separately since the series detail call only lists season summaries.
type seasonDetail struct {
	ID       int64 `json:"id"`
	Episodes []struct {
		ID            int64   `json:"id"`
		EpisodeNumber int64   `json:"episode_number"`
		Name          string  `json:"name"`
		Overview      string  `json:"overview"`
		AirDate       string  `json:"air_date"`
		Runtime       int64   `json:"runtime"`
		StillPath     string  `json:"still_path"`
		VoteAverage   float64 `json:"vote_average"`
	} `json:"episodes"`
}

// SeriesRows is the per-table row set produced by mapping one series
// detail document. Episodes are populated separately via SeasonEpisodes
// once each season's own detail has been fetched.
type SeriesRows struct {
	Parent          []string
	Genres          [][]string
	Keywords        [][]string
	Networks        [][]string
	OriginCountry   [][]string
	SpokenLanguages [][]string
	Translations    [][]string
	ExternalIDs     [][]string
	Credits         [][]string
	Seasons         [][]string
}

// Series maps one series detail document into SeriesRows, dropping any
// foreign key whose referent isn't present in refs.
func Series(raw json.RawMessage, refs RefSets, langs langtag.Allowlist) (SeriesRows, error) {
	var s seriesDetail
	if err := json.Unmarshal(raw, &s); err != nil {
		return SeriesRows{}, syncerr.New(syncerr.StagingFormatError, "decode series detail", err)
	}
	if s.ID == 0 {
		return SeriesRows{}, fmt.Errorf("mapper: series detail missing id")
	}
	id := strconv.FormatInt(s.ID, 10)

	rows := SeriesRows{
		Parent: []string{
			id,
			Nullify(s.Name, ""),
			Nullify(s.OriginalName, ""),
			Nullify(s.OriginalLanguage, ""),
			Nullify(s.Overview, ""),
			Nullify(s.Tagline, ""),
			Nullify(s.Status, ""),
			Nullify(s.Type, ""),
			Nullify(s.FirstAirDate, ""),
			Nullify(s.LastAirDate, ""),
			strconv.FormatInt(s.NumberOfSeasons, 10),
			strconv.FormatInt(s.NumberOfEpisodes, 10),
			strconv.FormatBool(s.InProduction),
			Nullify(s.Homepage, ""),
			strconv.FormatFloat(s.Popularity, 'f', -1, 64),
			strconv.FormatFloat(s.VoteAverage, 'f', -1, 64),
			strconv.FormatInt(s.VoteCount, 10),
			Nullify(s.PosterPath, ""),
			Nullify(s.BackdropPath, ""),
		},
	}

	for _, g := range s.Genres {
		if refs.Genres.Has(g.ID) {
			rows.Genres = append(rows.Genres, []string{id, strconv.FormatInt(g.ID, 10)})
		}
	}
	for _, k := range s.Keywords.Results {
		if refs.Keywords.Has(k.ID) {
			rows.Keywords = append(rows.Keywords, []string{id, strconv.FormatInt(k.ID, 10)})
		}
	}
	for _, n := range s.Networks {
		if refs.Networks.Has(n.ID) {
			rows.Networks = append(rows.Networks, []string{id, strconv.FormatInt(n.ID, 10)})
		}
	}
	for _, country := range s.OriginCountry {
		if refs.Countries.Has(country) {
			rows.OriginCountry = append(rows.OriginCountry, []string{id, country})
		}
	}
	for _, l := range s.SpokenLanguages {
		if refs.Languages.Has(l.ISO6391) {
			rows.SpokenLanguages = append(rows.SpokenLanguages, []string{id, l.ISO6391})
		}
	}
	for _, t := range s.Translations.Translations {
		if !langs.Allows(t.ISO6391, t.ISO31661) || !AnyNonEmpty(t.Data.Name, t.Data.Overview, t.Data.Tagline) {
			continue
		}
		rows.Translations = append(rows.Translations, []string{
			id, t.ISO6391, t.ISO31661, Nullify(t.Data.Name, ""), Nullify(t.Data.Overview, ""), Nullify(t.Data.Tagline, ""),
		})
	}
	for source, value := range s.ExternalIDs {
		str, ok := asNonEmptyString(value)
		if !ok {
			continue
		}
		rows.ExternalIDs = append(rows.ExternalIDs, []string{id, trimIDSuffix(source), str})
	}
	for _, c := range s.Credits.Cast {
		if !refs.Persons.Has(c.ID) {
			continue
		}
		rows.Credits = append(rows.Credits, []string{
			id, c.CreditID, strconv.FormatInt(c.ID, 10), Nullify(c.Character, ""), strconv.FormatInt(c.Order, 10),
		})
	}
	for _, season := range s.Seasons {
		rows.Seasons = append(rows.Seasons, []string{
			strconv.FormatInt(season.ID, 10), id, strconv.FormatInt(season.SeasonNumber, 10),
			Nullify(season.Name, ""), Nullify(season.Overview, ""), Nullify(season.AirDate, ""),
			Nullify(season.PosterPath, ""), strconv.FormatFloat(season.VoteAverage, 'f', -1, 64),
		})
	}

	return rows, nil
}

// SeasonRef identifies one season to fetch episodes for: its own TMDB id
// (the foreign key series_episodes.season_id points at) and the season
// number the /tv/{series_id}/season/{season_number} endpoint expects.
type SeasonRef struct {
	ID           int64
	SeasonNumber int64
}

// SeriesSeasonRefs lists the seasons present in a series detail document,
// for the driver to fan out one episode-list fetch per season.
func SeriesSeasonRefs(raw json.RawMessage) ([]SeasonRef, error) {
	var s seriesDetail
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, syncerr.New(syncerr.StagingFormatError, "decode series detail", err)
	}
	refs := make([]SeasonRef, 0, len(s.Seasons))
	for _, season := range s.Seasons {
		refs = append(refs, SeasonRef{ID: season.ID, SeasonNumber: season.SeasonNumber})
	}
	return refs, nil
}

// SeasonEpisodes maps one season detail document into series_episodes
// rows, scoped to seasonID (the series_seasons.id the episodes belong to).
func SeasonEpisodes(raw json.RawMessage, seasonID int64) ([][]string, error) {
	var season seasonDetail
	if err := json.Unmarshal(raw, &season); err != nil {
		return nil, syncerr.New(syncerr.StagingFormatError, "decode season detail", err)
	}

	sid := strconv.FormatInt(seasonID, 10)
	rows := make([][]string, 0, len(season.Episodes))
	for _, ep := range season.Episodes {
		rows = append(rows, []string{
			strconv.FormatInt(ep.ID, 10), sid, strconv.FormatInt(ep.EpisodeNumber, 10),
			Nullify(ep.Name, ""), Nullify(ep.Overview, ""), Nullify(ep.AirDate, ""),
			NullifyInt(ep.Runtime, 0), Nullify(ep.StillPath, ""),
			strconv.FormatFloat(ep.VoteAverage, 'f', -1, 64),
		})
	}
	return rows, nil
}
