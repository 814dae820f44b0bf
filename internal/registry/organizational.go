// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package registry

// Organizational kinds (§3): collection, company, network. Flat, like the
// reference kinds, but carry a popularity column (collection) or an
// origin_country foreign key (company, network) into the country
// reference set.

var Collection = Kind{
	Name: "collection",
	Parent: Table{
		Name: "org_collection",
		Columns: []string{
			"id", "name", "overview", "poster_path", "backdrop_path", "popularity",
		},
		ConflictKey: []string{"id"},
		UpdateOnConflict: []string{
			"name", "overview", "poster_path", "backdrop_path", "popularity",
		},
	},
	SupportsPopularity: true,
	DependsOn:          nil,
	ChunkSize:          100,
}

var Company = Kind{
	Name: "company",
	Parent: Table{
		Name:             "org_company",
		Columns:          []string{"id", "name", "logo_path", "origin_country"},
		ConflictKey:      []string{"id"},
		UpdateOnConflict: []string{"name", "logo_path", "origin_country"},
	},
	DependsOn: []string{"country"},
	ChunkSize: 100,
}

var Network = Kind{
	Name: "network",
	Parent: Table{
		Name:             "org_network",
		Columns:          []string{"id", "name", "logo_path", "origin_country"},
		ConflictKey:      []string{"id"},
		UpdateOnConflict: []string{"name", "logo_path", "origin_country"},
	},
	DependsOn: []string{"country"},
	ChunkSize: 100,
}
