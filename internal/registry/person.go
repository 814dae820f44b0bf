// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package registry

// Person kind (§3): one parent table plus a representative subset of its
// child tables — also_known_as (array), external_ids, translations, and
// images. The full upstream person detail response carries more sections
// (tagged_images, combined_credits, etc.) that this repo does not persist;
// see DESIGN.md for the scope note.

var Person = Kind{
	Name: "person",
	Parent: Table{
		Name: "person",
		Columns: []string{
			"id", "name", "biography", "birthday", "deathday", "gender",
			"homepage", "imdb_id", "known_for_department", "place_of_birth",
			"popularity", "profile_path",
		},
		ConflictKey: []string{"id"},
		UpdateOnConflict: []string{
			"name", "biography", "birthday", "deathday", "gender", "homepage",
			"imdb_id", "known_for_department", "place_of_birth", "popularity",
			"profile_path",
		},
	},
	Children: []Table{
		{
			Name:           "person_also_known_as",
			Columns:        []string{"person_id", "name"},
			ConflictKey:    []string{"person_id", "name"},
			ParentIDColumn: "person_id",
		},
		{
			Name:             "person_external_ids",
			Columns:          []string{"person_id", "source", "external_id"},
			ConflictKey:      []string{"person_id", "source"},
			UpdateOnConflict: []string{"external_id"},
			ParentIDColumn:   "person_id",
		},
		{
			Name:             "person_translations",
			Columns:          []string{"person_id", "language", "country", "biography"},
			ConflictKey:      []string{"person_id", "language", "country"},
			UpdateOnConflict: []string{"biography"},
			ParentIDColumn:   "person_id",
		},
		{
			Name:           "person_images",
			Columns:        []string{"person_id", "file_path", "width", "height", "aspect_ratio", "vote_average"},
			ConflictKey:    []string{"person_id", "file_path"},
			UpdateOnConflict: []string{"width", "height", "aspect_ratio", "vote_average"},
			ParentIDColumn: "person_id",
		},
	},
	SupportsPopularity: true,
	ChunkSize:          500,
}
