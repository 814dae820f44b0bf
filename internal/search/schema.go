// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

// Collections declares every repository-owned collection's field list.
// Document shape per collection is declared here; the sibling mapper
// function in documents.go takes one row and returns the matching
// document.
var Collections = map[string]CollectionSchema{
	"movies": {
		Name: "movies",
		Fields: []CollectionField{
			{Name: "id", Type: "int64"},
			{Name: "title", Type: "string"},
			{Name: "overview", Type: "string", Optional: true},
			{Name: "release_timestamp", Type: "int64", Optional: true},
			{Name: "runtime", Type: "int32", Optional: true},
			{Name: "popularity", Type: "float"},
			{Name: "vote_average", Type: "float", Optional: true},
			{Name: "genre_ids", Type: "int64[]", Facet: true},
			{Name: "poster_path", Type: "string", Optional: true},
		},
	},
	"series": {
		Name: "series",
		Fields: []CollectionField{
			{Name: "id", Type: "int64"},
			{Name: "title", Type: "string"},
			{Name: "overview", Type: "string", Optional: true},
			{Name: "first_air_timestamp", Type: "int64", Optional: true},
			{Name: "popularity", Type: "float"},
			{Name: "vote_average", Type: "float", Optional: true},
			{Name: "genre_ids", Type: "int64[]", Facet: true},
			{Name: "poster_path", Type: "string", Optional: true},
		},
	},
	"persons": {
		Name: "persons",
		Fields: []CollectionField{
			{Name: "id", Type: "int64"},
			{Name: "name", Type: "string"},
			{Name: "popularity", Type: "float"},
			{Name: "known_for_department", Type: "string", Optional: true, Facet: true},
			{Name: "profile_path", Type: "string", Optional: true},
		},
	},
}
