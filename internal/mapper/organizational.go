// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mapper

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/recomendapp/db-sync/internal/platform/syncerr"
)

type collectionDetail struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	Popularity   float64 `json:"popularity"`
}

// Collection maps one collection detail document into org_collection
// columns. Popularity is not part of TMDB's collection detail response;
// it is carried over from the export row the driver already fetched,
// since that's the only source for it.
func Collection(raw json.RawMessage, popularity float64) ([]string, error) {
	var c collectionDetail
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, syncerr.New(syncerr.StagingFormatError, "decode collection detail", err)
	}
	if c.ID == 0 {
		return nil, fmt.Errorf("mapper: collection detail missing id")
	}
	return []string{
		strconv.FormatInt(c.ID, 10), Nullify(c.Name, ""), Nullify(c.Overview, ""),
		Nullify(c.PosterPath, ""), Nullify(c.BackdropPath, ""),
		strconv.FormatFloat(popularity, 'f', -1, 64),
	}, nil
}

type companyDetail struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	LogoPath      string `json:"logo_path"`
	OriginCountry string `json:"origin_country"`
}

// Company maps one company detail document into org_company columns,
// writing NULL for origin_country if it isn't in countries.
func Company(raw json.RawMessage, countries RefSet[string]) ([]string, error) {
	var c companyDetail
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, syncerr.New(syncerr.StagingFormatError, "decode company detail", err)
	}
	if c.ID == 0 {
		return nil, fmt.Errorf("mapper: company detail missing id")
	}
	origin := c.OriginCountry
	if origin != "" && !countries.Has(origin) {
		origin = ""
	}
	return []string{strconv.FormatInt(c.ID, 10), Nullify(c.Name, ""), Nullify(c.LogoPath, ""), Nullify(origin, "")}, nil
}

type networkDetail struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	LogoPath      string `json:"logo_path"`
	OriginCountry string `json:"origin_country"`
}

// Network maps one network detail document into org_network columns,
// writing NULL for origin_country if it isn't in countries.
func Network(raw json.RawMessage, countries RefSet[string]) ([]string, error) {
	var n networkDetail
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, syncerr.New(syncerr.StagingFormatError, "decode network detail", err)
	}
	if n.ID == 0 {
		return nil, fmt.Errorf("mapper: network detail missing id")
	}
	origin := n.OriginCountry
	if origin != "" && !countries.Has(origin) {
		origin = ""
	}
	return []string{strconv.FormatInt(n.ID, 10), Nullify(n.Name, ""), Nullify(n.LogoPath, ""), Nullify(origin, "")}, nil
}
