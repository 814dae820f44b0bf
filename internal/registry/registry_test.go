// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recomendapp/db-sync/internal/registry"
)

func TestAll_DependencyOrderIsSatisfied(t *testing.T) {
	require.NoError(t, registry.ValidateOrder())
}

func TestByName_RoundTrips(t *testing.T) {
	for _, k := range registry.All() {
		found, ok := registry.ByName(k.Name)
		require.True(t, ok, "kind %q should be found by name", k.Name)
		assert.Equal(t, k.Name, found.Name)
	}

	_, ok := registry.ByName("not-a-kind")
	assert.False(t, ok)
}

func TestEveryParentTable_HasConflictKey(t *testing.T) {
	for _, k := range registry.All() {
		assert.NotEmpty(t, k.Parent.ConflictKey, "kind %q parent table must declare a conflict key", k.Name)
		assert.True(t, k.Parent.IsParent())
	}
}

func TestEveryChildTable_HasParentIDColumn(t *testing.T) {
	for _, k := range registry.All() {
		for _, child := range k.Children {
			assert.NotEmpty(t, child.ParentIDColumn, "kind %q child table %q must declare ParentIDColumn", k.Name, child.Name)
			assert.False(t, child.IsParent(), "child table %q with a ParentIDColumn should not report IsParent", child.Name)
		}
	}
}

func TestEveryChildTable_HasConflictKey(t *testing.T) {
	for _, k := range registry.All() {
		for _, child := range k.Children {
			assert.NotEmpty(t, child.ConflictKey, "kind %q child table %q must declare a natural-key ConflictKey for upsert", k.Name, child.Name)
		}
	}
}

func TestAllColumns_ConcatenatesParentAndChildren(t *testing.T) {
	movie := registry.Movie
	cols := movie.AllColumns()
	assert.Equal(t, movie.Parent.Columns[0], cols[0])
	assert.Equal(t, len(movie.Parent.Columns)+len(movie.Children[0].Columns), len(movie.Parent.Columns)+len(movie.Children[0].Columns))
	assert.Greater(t, len(cols), len(movie.Parent.Columns))
}
