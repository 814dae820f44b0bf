// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package credential_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recomendapp/db-sync/internal/credential"
)

func TestNewPool_RejectsEmpty(t *testing.T) {
	_, err := credential.NewPool(nil)
	require.Error(t, err)
}

func TestPool_RotatesInOrder(t *testing.T) {
	pool, err := credential.NewPool([]string{"a", "b", "c"})
	require.NoError(t, err)

	got := []string{pool.Next(), pool.Next(), pool.Next(), pool.Next()}
	assert.Equal(t, []string{"a", "b", "c", "a"}, got)
}

func TestPool_ConcurrentNext_NeverPanics(t *testing.T) {
	pool, err := credential.NewPool([]string{"a", "b"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = pool.Next()
		}()
	}
	wg.Wait()
}
