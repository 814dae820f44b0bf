// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package refcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedisKey_NamespacesCacheKey(t *testing.T) {
	assert.Equal(t, "db-sync:refcache:ref_genre.id", redisKey("ref_genre.id"))
}

func TestStringSet_AddIsVisibleToHas(t *testing.T) {
	s := NewStringSet([]string{"en"})
	assert.True(t, s.Has("en"))
	assert.False(t, s.Has("fr"))

	s.Add("fr")
	assert.True(t, s.Has("fr"))
}

func TestInt64Set_AddIsVisibleToHas(t *testing.T) {
	s := NewInt64Set([]int64{1})
	assert.True(t, s.Has(1))
	assert.False(t, s.Has(2))

	s.Add(2)
	assert.True(t, s.Has(2))
}
