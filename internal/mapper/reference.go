// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mapper

import (
	"strconv"

	"github.com/recomendapp/db-sync/internal/upstream"
)

// Language maps one upstream language reference row into ref_language
// columns (iso_639_1, english_name, name).
func Language(l upstream.Language) []string {
	return []string{l.ISO6391, Nullify(l.EnglishName, ""), Nullify(l.Name, "")}
}

// Country maps one upstream country reference row into ref_country
// columns (iso_3166_1, english_name, native_name).
func Country(c upstream.Country) []string {
	return []string{c.ISO31661, Nullify(c.EnglishName, ""), Nullify(c.NativeName, "")}
}

// Genre maps one upstream genre reference row into ref_genre columns
// (id, name).
func Genre(g upstream.Genre) []string {
	return []string{strconv.FormatInt(g.ID, 10), g.Name}
}

// Keyword maps one upstream keyword reference row into ref_keyword
// columns (id, name). Unlike language/country/genre, keywords have no
// bulk list endpoint: rows are harvested from movie/series detail
// payloads as they're encountered. It does no deduplication itself; the
// driver's keyword harvester skips ids it has already seen.
func Keyword(k upstream.Keyword) []string {
	return []string{strconv.FormatInt(k.ID, 10), k.Name}
}
