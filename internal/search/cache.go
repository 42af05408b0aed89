package search

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/gcbaptista/recipe-search/services"
)

// DefaultCacheSize is the number of distinct (strategy, query) results kept.
const DefaultCacheSize = 1024

type cachedHits struct {
	hits  []services.HitResult
	total int
}

// CachedService memoizes ranked hits of a Service. The underlying index never
// changes, so entries stay valid for the lifetime of the Service.
// Errors are not cached.
type CachedService struct {
	inner    *Service
	cache    *lru.Cache[string, cachedHits]
	group    singleflight.Group
	onLookup func(hit bool)
	hits     atomic.Int64
	misses   atomic.Int64
}

// NewCachedService wraps inner with an LRU of the given size. onLookup, if set,
// is called after every cache lookup.
func NewCachedService(inner *Service, size int, onLookup func(hit bool)) *CachedService {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, _ := lru.New[string, cachedHits](size)
	return &CachedService{
		inner:    inner,
		cache:    cache,
		onLookup: onLookup,
	}
}

// Search serves ranked hits from the cache when possible.
func (c *CachedService) Search(query services.SearchQuery) (services.SearchResult, error) {
	startTime := time.Now()

	strategy, err := ParseStrategy(query.Strategy)
	if err != nil {
		return services.SearchResult{}, err
	}
	tokens := c.inner.Tokens(query.QueryString)
	key := cacheKey(strategy, tokens)

	entry, cached := c.cache.Get(key)
	c.record(cached)
	if !cached {
		val, err, _ := c.group.Do(key, func() (interface{}, error) {
			if entry, ok := c.cache.Get(key); ok {
				return entry, nil
			}
			hits, total, err := c.inner.Rank(tokens, strategy)
			if err != nil {
				return nil, err
			}
			computed := cachedHits{hits: hits, total: total}
			c.cache.Add(key, computed)
			return computed, nil
		})
		if err != nil {
			return services.SearchResult{}, err
		}
		entry = val.(cachedHits)
	}

	hits := make([]services.HitResult, len(entry.hits))
	copy(hits, entry.hits)

	return services.SearchResult{
		Hits:     hits,
		Total:    entry.total,
		Tokens:   tokens,
		Strategy: string(strategy),
		Took:     time.Since(startTime).Milliseconds(),
		QueryId:  uuid.New().String(),
		Cached:   cached,
	}, nil
}

// Stats returns the number of cache hits and misses so far.
func (c *CachedService) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *CachedService) record(hit bool) {
	if hit {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	if c.onLookup != nil {
		c.onLookup(hit)
	}
}

func cacheKey(strategy Strategy, tokens []string) string {
	return string(strategy) + "\x00" + strings.Join(tokens, " ")
}
