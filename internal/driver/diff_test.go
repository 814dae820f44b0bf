// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiffInt64_ComputesExtraAndMissing(t *testing.T) {
	extra, missing := DiffInt64([]int64{1, 2, 3}, []int64{2, 3, 4})
	assert.ElementsMatch(t, []int64{4}, extra)
	assert.ElementsMatch(t, []int64{1}, missing)
}

func TestDiffInt64_EmptyBothSidesIsNoOp(t *testing.T) {
	extra, missing := DiffInt64(nil, nil)
	assert.Empty(t, extra)
	assert.Empty(t, missing)
}

func TestDiffString_ComputesExtraAndMissing(t *testing.T) {
	extra, missing := DiffString([]string{"en", "fr"}, []string{"fr", "de"})
	assert.ElementsMatch(t, []string{"de"}, extra)
	assert.ElementsMatch(t, []string{"en"}, missing)
}

func TestUnionInt64_Dedupes(t *testing.T) {
	union := UnionInt64([]int64{1, 2}, []int64{2, 3})
	assert.ElementsMatch(t, []int64{1, 2, 3}, union)
}

func TestChunkInt64_SplitsBySize(t *testing.T) {
	chunks := ChunkInt64([]int64{1, 2, 3, 4, 5}, 2)
	assert.Equal(t, [][]int64{{1, 2}, {3, 4}, {5}}, chunks)
}

func TestChunkInt64_ZeroSizeIsOneChunk(t *testing.T) {
	chunks := ChunkInt64([]int64{1, 2, 3}, 0)
	assert.Equal(t, [][]int64{{1, 2, 3}}, chunks)
}

func TestChunkInt64_EmptyIsNoChunks(t *testing.T) {
	assert.Nil(t, ChunkInt64(nil, 10))
}
