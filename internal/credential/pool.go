// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package credential provides the round-robin API credential pool (§4.1).

Grounded on original_source/sync_tmdb/models/tmdb.py, whose TMDBClient
keeps `api_key_cycle = itertools.cycle(api_keys)` and pulls the next key on
every request. Go has no itertools.cycle, so [Pool] is the same idea built
on a mutex-guarded index — the natural idiom for a small, frequently-hit
shared counter, the way yomira's middleware.rateLimitClient map is guarded
by a plain sync.Mutex rather than reached for a lock-free structure.
*/
package credential

import (
	"fmt"
	"sync"
)

// Pool rotates through a fixed set of API credentials.
type Pool struct {
	mu   sync.Mutex
	keys []string
	next int
}

// NewPool creates a credential pool. It returns an error if keys is empty —
// a pipeline with no credentials can't make a single upstream request.
func NewPool(keys []string) (*Pool, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("credential: at least one API key is required")
	}
	// Copy defensively so the caller can't mutate the pool's backing slice.
	owned := make([]string, len(keys))
	copy(owned, keys)
	return &Pool{keys: owned}, nil
}

// Next returns the next credential in rotation order. Safe for concurrent
// use by the HTTP client's worker goroutines.
func (p *Pool) Next() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := p.keys[p.next]
	p.next = (p.next + 1) % len(p.keys)
	return key
}

// Size returns the number of credentials in the pool.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.keys)
}
