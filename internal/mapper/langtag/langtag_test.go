// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package langtag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recomendapp/db-sync/internal/mapper/langtag"
)

func TestNewAllowlist_AlwaysIncludesDefault(t *testing.T) {
	al, err := langtag.NewAllowlist(nil)
	require.NoError(t, err)
	assert.True(t, al.Allows("en", "US"))
	assert.False(t, al.Allows("de", "DE"))
}

func TestNewAllowlist_AddsValidExtras(t *testing.T) {
	al, err := langtag.NewAllowlist([]string{"fr-FR"})
	require.NoError(t, err)
	assert.True(t, al.Allows("fr", "FR"))
}

func TestNewAllowlist_RejectsUnparseableTag(t *testing.T) {
	_, err := langtag.NewAllowlist([]string{"not a tag!!"})
	assert.Error(t, err)
}

func TestAllows_RejectsEmptyLanguage(t *testing.T) {
	al, _ := langtag.NewAllowlist(nil)
	assert.False(t, al.Allows("", "US"))
}
