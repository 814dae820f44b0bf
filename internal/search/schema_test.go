// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectionSchema_EqualIsOrderInsensitive(t *testing.T) {
	a := CollectionSchema{
		Name: "movies",
		Fields: []CollectionField{
			{Name: "id", Type: "int64"},
			{Name: "title", Type: "string"},
		},
	}
	b := CollectionSchema{
		Name: "movies",
		Fields: []CollectionField{
			{Name: "title", Type: "string"},
			{Name: "id", Type: "int64"},
		},
	}
	assert.True(t, a.Equal(b))
}

func TestCollectionSchema_EqualDetectsFieldDrift(t *testing.T) {
	a := CollectionSchema{Fields: []CollectionField{{Name: "id", Type: "int64"}}}
	b := CollectionSchema{Fields: []CollectionField{{Name: "id", Type: "string"}}}
	assert.False(t, a.Equal(b))
}

func TestCollectionSchema_EqualDetectsFieldCountDrift(t *testing.T) {
	a := CollectionSchema{Fields: []CollectionField{{Name: "id", Type: "int64"}}}
	b := CollectionSchema{Fields: []CollectionField{
		{Name: "id", Type: "int64"},
		{Name: "title", Type: "string"},
	}}
	assert.False(t, a.Equal(b))
}

func TestCollectionSchema_NormalizedSortsFieldsByName(t *testing.T) {
	s := CollectionSchema{Fields: []CollectionField{
		{Name: "title", Type: "string"},
		{Name: "id", Type: "int64"},
		{Name: "genre_ids", Type: "int64[]"},
	}}
	normalized := s.Normalized()
	names := make([]string, len(normalized.Fields))
	for i, f := range normalized.Fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"genre_ids", "id", "title"}, names)
}

func TestCollections_EveryDeclaredSourceQueryHasASchema(t *testing.T) {
	for name := range sourceQuery {
		_, ok := Collections[name]
		assert.True(t, ok, "collection %q has a source query but no declared schema", name)
	}
}
