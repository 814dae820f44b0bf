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

type personDetail struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	Biography          string  `json:"biography"`
	Birthday           string  `json:"birthday"`
	Deathday           string  `json:"deathday"`
	Gender             int64   `json:"gender"`
	Homepage           string  `json:"homepage"`
	IMDbID             string  `json:"imdb_id"`
	KnownForDepartment string  `json:"known_for_department"`
	PlaceOfBirth       string  `json:"place_of_birth"`
	Popularity         float64 `json:"popularity"`
	ProfilePath        string  `json:"profile_path"`
	AlsoKnownAs        []string `json:"also_known_as"`
	ExternalIDs        map[string]any `json:"external_ids"`
	Translations       struct {
		Translations []struct {
			ISO6391  string `json:"iso_639_1"`
			ISO31661 string `json:"iso_3166_1"`
			Data     struct {
				Biography string `json:"biography"`
			} `json:"data"`
		} `json:"translations"`
	} `json:"translations"`
	Images struct {
		Profiles []struct {
			FilePath    string  `json:"file_path"`
			Width       int64   `json:"width"`
			Height      int64   `json:"height"`
			AspectRatio float64 `json:"aspect_ratio"`
			VoteAverage float64 `json:"vote_average"`
		} `json:"profiles"`
	} `json:"images"`
}

// PersonRows is the per-table row set produced by mapping one person
// detail document.
type PersonRows struct {
	Parent      []string
	AlsoKnownAs [][]string
	ExternalIDs [][]string
	Translations [][]string
	Images      [][]string
}

// Person maps one person detail document into PersonRows. Persons have no
// foreign keys of their own to filter; they are instead the referent other
// kinds (movie, series) check against via refs.Persons. langs bounds which
// translation locales are retained.
func Person(raw json.RawMessage, langs langtag.Allowlist) (PersonRows, error) {
	var p personDetail
	if err := json.Unmarshal(raw, &p); err != nil {
		return PersonRows{}, syncerr.New(syncerr.StagingFormatError, "decode person detail", err)
	}
	if p.ID == 0 {
		return PersonRows{}, fmt.Errorf("mapper: person detail missing id")
	}

	id := strconv.FormatInt(p.ID, 10)
	rows := PersonRows{
		Parent: []string{
			id,
			Nullify(p.Name, ""),
			Nullify(p.Biography, ""),
			Nullify(p.Birthday, ""),
			Nullify(p.Deathday, ""),
			strconv.FormatInt(p.Gender, 10),
			Nullify(p.Homepage, ""),
			Nullify(p.IMDbID, ""),
			Nullify(p.KnownForDepartment, ""),
			Nullify(p.PlaceOfBirth, ""),
			strconv.FormatFloat(p.Popularity, 'f', -1, 64),
			Nullify(p.ProfilePath, ""),
		},
	}

	for _, name := range p.AlsoKnownAs {
		if name == "" {
			continue
		}
		rows.AlsoKnownAs = append(rows.AlsoKnownAs, []string{id, name})
	}
	for source, value := range p.ExternalIDs {
		str, ok := asNonEmptyString(value)
		if !ok {
			continue
		}
		rows.ExternalIDs = append(rows.ExternalIDs, []string{id, trimIDSuffix(source), str})
	}
	for _, t := range p.Translations.Translations {
		if !langs.Allows(t.ISO6391, t.ISO31661) || !AnyNonEmpty(t.Data.Biography) {
			continue
		}
		rows.Translations = append(rows.Translations, []string{id, t.ISO6391, t.ISO31661, Nullify(t.Data.Biography, "")})
	}
	for _, img := range p.Images.Profiles {
		rows.Images = append(rows.Images, []string{
			id, img.FilePath,
			strconv.FormatInt(img.Width, 10), strconv.FormatInt(img.Height, 10),
			strconv.FormatFloat(img.AspectRatio, 'f', -1, 64),
			strconv.FormatFloat(img.VoteAverage, 'f', -1, 64),
		})
	}

	return rows, nil
}
