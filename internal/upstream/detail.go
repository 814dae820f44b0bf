// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// appendToResponse lists the sub-resources folded into a single detail call
// via TMDB's append_to_response, avoiding one round trip per child table.
var appendToResponse = map[string]string{
	"movie":  "alternative_titles,credits,external_ids,images,keywords,release_dates,translations",
	"series": "alternative_titles,credits,external_ids,images,keywords,translations",
	"person": "external_ids,images,translations",
}

// Detail fetches the full detail document for id of the given kind,
// folding every append_to_response sub-resource into one response. The
// returned [json.RawMessage] is handed to internal/mapper for shaping into
// per-table rows; upstream does not know the target schema.
func (c *Client) Detail(ctx context.Context, kind string, id int64) (json.RawMessage, error) {
	extra, ok := appendToResponse[kind]
	if !ok {
		return nil, fmt.Errorf("upstream: no detail shape for kind %q", kind)
	}

	path := fmt.Sprintf("/3/%s/%d", detailSegment(kind), id)
	query := url.Values{"append_to_response": {extra}}

	var raw json.RawMessage
	if err := c.getJSON(ctx, path, query, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// organizationalSegment maps the organizational kinds to their TMDB path
// segment; unlike movie/series/person these carry no append_to_response
// shaping, since collection/company/network detail responses are already
// flat.
var organizationalSegment = map[string]string{
	"collection": "collection",
	"company":    "company",
	"network":    "network",
}

// OrganizationalDetail fetches the detail document for a collection,
// company, or network id.
func (c *Client) OrganizationalDetail(ctx context.Context, kind string, id int64) (json.RawMessage, error) {
	segment, ok := organizationalSegment[kind]
	if !ok {
		return nil, fmt.Errorf("upstream: no organizational detail shape for kind %q", kind)
	}

	var raw json.RawMessage
	if err := c.getJSON(ctx, fmt.Sprintf("/3/%s/%d", segment, id), nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func detailSegment(kind string) string {
	if segment, ok := ChangesPath[kind]; ok {
		return segment
	}
	return kind
}

// Language is one row of the /configuration/languages reference list.
type Language struct {
	ISO6391     string `json:"iso_639_1"`
	EnglishName string `json:"english_name"`
	Name        string `json:"name"`
}

// Languages returns the full supported-languages reference list.
func (c *Client) Languages(ctx context.Context) ([]Language, error) {
	var out []Language
	if err := c.getJSON(ctx, "/3/configuration/languages", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Country is one row of the /configuration/countries reference list.
type Country struct {
	ISO31661    string `json:"iso_3166_1"`
	EnglishName string `json:"english_name"`
	NativeName  string `json:"native_name"`
}

// Countries returns the full supported-countries reference list.
func (c *Client) Countries(ctx context.Context) ([]Country, error) {
	var out []Country
	if err := c.getJSON(ctx, "/3/configuration/countries", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Genre is one row of a /genre/{media_type}/list reference list.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Genres returns the genre list for mediaType ("movie" or "tv"). The two
// media types' genre ids overlap but are not identical, so the driver
// merges both lists before loading the shared ref_genre table.
func (c *Client) Genres(ctx context.Context, mediaType string) ([]Genre, error) {
	var resp struct {
		Genres []Genre `json:"genres"`
	}
	path := fmt.Sprintf("/3/genre/%s/list", mediaType)
	if err := c.getJSON(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Genres, nil
}

// Keyword is one row of a keyword lookup. TMDB has no bulk keyword list
// endpoint; keywords are instead harvested from movie_keywords/
// series_keywords append_to_response payloads and upserted as encountered.
type Keyword struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SeriesSeason fetches one season's full detail (including every episode),
// since a series' own detail response only carries season summaries.
func (c *Client) SeriesSeason(ctx context.Context, seriesID, seasonNumber int64) (json.RawMessage, error) {
	path := fmt.Sprintf("/3/tv/%d/season/%d", seriesID, seasonNumber)
	var raw json.RawMessage
	if err := c.getJSON(ctx, path, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
