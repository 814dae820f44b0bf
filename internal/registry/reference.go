// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package registry

// Reference kinds (§3): language, country, genre, keyword. Small, flat,
// no child tables — the simplest case the driver handles, grounded on
// original_source/sync_tmdb/flows/language/sync_tmdb_language.py.

var Language = Kind{
	Name: "language",
	Parent: Table{
		Name:        "ref_language",
		Columns:     []string{"iso_639_1", "english_name", "name"},
		ConflictKey: []string{"iso_639_1"},
		UpdateOnConflict: []string{
			"english_name", "name",
		},
	},
}

var Country = Kind{
	Name: "country",
	Parent: Table{
		Name:        "ref_country",
		Columns:     []string{"iso_3166_1", "english_name", "native_name"},
		ConflictKey: []string{"iso_3166_1"},
		UpdateOnConflict: []string{
			"english_name", "native_name",
		},
	},
}

var Genre = Kind{
	Name: "genre",
	Parent: Table{
		Name:             "ref_genre",
		Columns:          []string{"id", "name"},
		ConflictKey:      []string{"id"},
		UpdateOnConflict: []string{"name"},
	},
}

var Keyword = Kind{
	Name: "keyword",
	Parent: Table{
		Name:             "ref_keyword",
		Columns:          []string{"id", "name"},
		ConflictKey:      []string{"id"},
		UpdateOnConflict: []string{"name"},
	},
}
