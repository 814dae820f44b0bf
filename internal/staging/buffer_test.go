// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package staging_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recomendapp/db-sync/internal/staging"
)

func TestNew_RejectsNoColumns(t *testing.T) {
	_, err := staging.New(t.TempDir(), "data", nil)
	require.Error(t, err)
}

func TestBuffer_AppendAndIsEmpty(t *testing.T) {
	buf, err := staging.New(t.TempDir(), "data", []string{"id", "name"})
	require.NoError(t, err)
	defer buf.Delete()

	assert.True(t, buf.IsEmpty())
	require.NoError(t, buf.Append([]string{"1", "Alice"}))
	assert.False(t, buf.IsEmpty())
	assert.Equal(t, 1, buf.Rows())
}

func TestBuffer_AppendRejectsWrongArity(t *testing.T) {
	buf, err := staging.New(t.TempDir(), "data", []string{"id", "name"})
	require.NoError(t, err)
	defer buf.Delete()

	err = buf.Append([]string{"1"})
	require.Error(t, err)
}

func TestBuffer_Delete_RemovesFile(t *testing.T) {
	buf, err := staging.New(t.TempDir(), "data", []string{"id"})
	require.NoError(t, err)
	require.NoError(t, buf.Close())

	require.NoError(t, buf.Delete())
	_, statErr := os.Stat(buf.Path())
	assert.True(t, os.IsNotExist(statErr))
}

func TestBuffer_Dedup_KeepsLastOccurrence(t *testing.T) {
	buf, err := staging.New(t.TempDir(), "data", []string{"id", "name"})
	require.NoError(t, err)
	defer buf.Delete()

	require.NoError(t, buf.Append([]string{"1", "first"}))
	require.NoError(t, buf.Append([]string{"2", "other"}))
	require.NoError(t, buf.Append([]string{"1", "second"}))
	require.NoError(t, buf.Close())

	require.NoError(t, buf.Dedup([]string{"id"}))
	assert.Equal(t, 2, buf.Rows())

	contents, err := os.ReadFile(buf.Path())
	require.NoError(t, err)
	assert.Contains(t, string(contents), "1,second")
	assert.NotContains(t, string(contents), "1,first")
}

func TestBuffer_Dedup_RejectsUnknownConflictColumn(t *testing.T) {
	buf, err := staging.New(t.TempDir(), "data", []string{"id"})
	require.NoError(t, err)
	defer buf.Delete()
	require.NoError(t, buf.Close())

	err = buf.Dedup([]string{"missing"})
	require.Error(t, err)
}
