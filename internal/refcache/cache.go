// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package refcache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/recomendapp/db-sync/internal/mapper"
	"github.com/recomendapp/db-sync/internal/platform/syncerr"
)

// redisTTL bounds how long a materialized set is trusted in the second
// tier before the next run re-scans Postgres, so a reference row deleted
// between runs eventually stops being treated as present.
const redisTTL = 30 * time.Minute

// Cache lazily materializes every reference/organizational kind's id set,
// on first use per run, from Postgres, with an optional Redis second tier.
type Cache struct {
	pool  *pgxpool.Pool
	redis *redis.Client // nil disables the second tier

	mu      sync.Mutex
	strings map[string]*StringSet
	int64s  map[string]*Int64Set
}

// New builds a Cache over pool. redisClient may be nil to disable the
// second tier entirely (every load goes straight to Postgres).
func New(pool *pgxpool.Pool, redisClient *redis.Client) *Cache {
	return &Cache{
		pool:    pool,
		redis:   redisClient,
		strings: make(map[string]*StringSet),
		int64s:  make(map[string]*Int64Set),
	}
}

// StringSetFor returns the cached StringSet for table's column, loading it
// (from Redis, then Postgres) on first call.
func (c *Cache) StringSetFor(ctx context.Context, table, column string) (*StringSet, error) {
	cacheKey := table + "." + column

	c.mu.Lock()
	if s, ok := c.strings[cacheKey]; ok {
		c.mu.Unlock()
		return s, nil
	}
	c.mu.Unlock()

	keys, err := c.loadStrings(ctx, cacheKey, table, column)
	if err != nil {
		return nil, err
	}

	set := NewStringSet(keys)
	c.mu.Lock()
	c.strings[cacheKey] = set
	c.mu.Unlock()
	return set, nil
}

// Int64SetFor returns the cached Int64Set for table's column, loading it
// (from Redis, then Postgres) on first call.
func (c *Cache) Int64SetFor(ctx context.Context, table, column string) (*Int64Set, error) {
	cacheKey := table + "." + column

	c.mu.Lock()
	if s, ok := c.int64s[cacheKey]; ok {
		c.mu.Unlock()
		return s, nil
	}
	c.mu.Unlock()

	keys, err := c.loadInt64s(ctx, cacheKey, table, column)
	if err != nil {
		return nil, err
	}

	set := NewInt64Set(keys)
	c.mu.Lock()
	c.int64s[cacheKey] = set
	c.mu.Unlock()
	return set, nil
}

func (c *Cache) loadStrings(ctx context.Context, cacheKey, table, column string) ([]string, error) {
	if c.redis != nil {
		if cached, err := c.readRedis(ctx, cacheKey); err == nil && cached != nil {
			var keys []string
			if jsonErr := json.Unmarshal(cached, &keys); jsonErr == nil {
				return keys, nil
			}
		}
	}

	rows, err := c.pool.Query(ctx, fmt.Sprintf("SELECT %s FROM %s", column, table))
	if err != nil {
		return nil, syncerr.WrapPG(err, "load reference set "+cacheKey)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, syncerr.WrapPG(err, "scan reference set "+cacheKey)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, syncerr.WrapPG(err, "iterate reference set "+cacheKey)
	}

	c.writeRedis(ctx, cacheKey, keys)
	return keys, nil
}

func (c *Cache) loadInt64s(ctx context.Context, cacheKey, table, column string) ([]int64, error) {
	if c.redis != nil {
		if cached, err := c.readRedis(ctx, cacheKey); err == nil && cached != nil {
			var keys []int64
			if jsonErr := json.Unmarshal(cached, &keys); jsonErr == nil {
				return keys, nil
			}
		}
	}

	rows, err := c.pool.Query(ctx, fmt.Sprintf("SELECT %s FROM %s", column, table))
	if err != nil {
		return nil, syncerr.WrapPG(err, "load reference set "+cacheKey)
	}
	defer rows.Close()

	var keys []int64
	for rows.Next() {
		var k int64
		if err := rows.Scan(&k); err != nil {
			return nil, syncerr.WrapPG(err, "scan reference set "+cacheKey)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, syncerr.WrapPG(err, "iterate reference set "+cacheKey)
	}

	c.writeRedis(ctx, cacheKey, keys)
	return keys, nil
}

func (c *Cache) readRedis(ctx context.Context, cacheKey string) ([]byte, error) {
	val, err := c.redis.Get(ctx, redisKey(cacheKey)).Bytes()
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (c *Cache) writeRedis(ctx context.Context, cacheKey string, v any) {
	if c.redis == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	// Best-effort: a failed write just means the next run re-scans
	// Postgres, which is already the no-Redis behavior.
	_ = c.redis.Set(ctx, redisKey(cacheKey), data, redisTTL).Err()
}

func redisKey(cacheKey string) string {
	return "db-sync:refcache:" + cacheKey
}

// RefSetsFor assembles the mapper.RefSets bundle the Movie and Series
// mappers need, loading every backing set (from Redis, then Postgres) as
// required.
func (c *Cache) RefSetsFor(ctx context.Context) (mapper.RefSets, error) {
	languages, err := c.StringSetFor(ctx, "ref_language", "iso_639_1")
	if err != nil {
		return mapper.RefSets{}, err
	}
	countries, err := c.StringSetFor(ctx, "ref_country", "iso_3166_1")
	if err != nil {
		return mapper.RefSets{}, err
	}
	genres, err := c.Int64SetFor(ctx, "ref_genre", "id")
	if err != nil {
		return mapper.RefSets{}, err
	}
	keywords, err := c.Int64SetFor(ctx, "ref_keyword", "id")
	if err != nil {
		return mapper.RefSets{}, err
	}
	collections, err := c.Int64SetFor(ctx, "org_collection", "id")
	if err != nil {
		return mapper.RefSets{}, err
	}
	companies, err := c.Int64SetFor(ctx, "org_company", "id")
	if err != nil {
		return mapper.RefSets{}, err
	}
	networks, err := c.Int64SetFor(ctx, "org_network", "id")
	if err != nil {
		return mapper.RefSets{}, err
	}
	persons, err := c.Int64SetFor(ctx, "person", "id")
	if err != nil {
		return mapper.RefSets{}, err
	}

	return mapper.RefSets{
		Languages:   languages,
		Countries:   countries,
		Genres:      genres,
		Keywords:    keywords,
		Collections: collections,
		Companies:   companies,
		Networks:    networks,
		Persons:     persons,
	}, nil
}
