// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package driver

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/recomendapp/db-sync/internal/refcache"
)

func TestKeywordHarvester_AddMovieSkipsAlreadyKnownKeywords(t *testing.T) {
	known := refcache.NewInt64Set([]int64{1})
	h := newKeywordHarvester(known)

	raw := json.RawMessage(`{"keywords":{"keywords":[{"id":1,"name":"already known"},{"id":2,"name":"fresh"}]}}`)
	h.addMovie(raw)

	drained := h.drain()
	assert.Len(t, drained, 1)
	assert.Equal(t, []string{"2", "fresh"}, drained[0])
}

func TestKeywordHarvester_AddSeriesUsesResultsShape(t *testing.T) {
	known := refcache.NewInt64Set(nil)
	h := newKeywordHarvester(known)

	raw := json.RawMessage(`{"keywords":{"results":[{"id":7,"name":"space opera"}]}}`)
	h.addSeries(raw)

	drained := h.drain()
	assert.Len(t, drained, 1)
	assert.Equal(t, []string{"7", "space opera"}, drained[0])
}

func TestKeywordHarvester_DrainResetsAndMarksKeywordsKnown(t *testing.T) {
	known := refcache.NewInt64Set(nil)
	h := newKeywordHarvester(known)

	h.addMovie(json.RawMessage(`{"keywords":{"keywords":[{"id":9,"name":"heist"}]}}`))
	assert.Len(t, h.drain(), 1)
	assert.True(t, known.Has(9))

	// a second chunk that re-encounters the same keyword should not
	// re-harvest it, and draining again with nothing new yields nothing.
	h.addMovie(json.RawMessage(`{"keywords":{"keywords":[{"id":9,"name":"heist"}]}}`))
	assert.Empty(t, h.drain())
}

func TestKeywordHarvester_MalformedDocumentIsIgnored(t *testing.T) {
	known := refcache.NewInt64Set(nil)
	h := newKeywordHarvester(known)

	h.addMovie(json.RawMessage(`not json`))
	assert.Empty(t, h.drain())
}
