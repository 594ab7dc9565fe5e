package vtopo

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// SurveyCache keeps recently used surveys in memory with LRU eviction.
//
// Concurrent Gets for the same missing key share a single load.
//
// Example:
//
//	cache, _ := vtopo.NewSurveyCache(64)
//	survey, err := cache.Get("gouffre.tro", func() (*vtopo.Survey, error) {
//	    return parser.Parse("gouffre.tro")
//	})
type SurveyCache struct {
	lru   *lru.Cache[string, *Survey]
	group singleflight.Group
	size  int

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// NewSurveyCache creates a cache holding at most size surveys.
func NewSurveyCache(size int) (*SurveyCache, error) {
	c := &SurveyCache{size: size}
	cache, err := lru.NewWithEvict(size, func(string, *Survey) {
		c.evictions.Add(1)
	})
	if err != nil {
		return nil, fmt.Errorf("create survey cache: %w", err)
	}
	c.lru = cache
	return c, nil
}

// Get retrieves a survey from cache or loads it using the provided loader.
//
// The loader is only called on a cache miss. Load errors are not cached.
func (c *SurveyCache) Get(key string, loader func() (*Survey, error)) (*Survey, error) {
	if s, ok := c.lru.Get(key); ok {
		c.hits.Add(1)
		return s, nil
	}
	c.misses.Add(1)

	v, err, _ := c.group.Do(key, func() (any, error) {
		if s, ok := c.lru.Peek(key); ok {
			return s, nil
		}
		s, err := loader()
		if err != nil {
			return nil, err
		}
		c.lru.Add(key, s)
		return s, nil
	})
	if err != nil {
		return nil, fmt.Errorf("load survey: %w", err)
	}
	return v.(*Survey), nil
}

// Add adds or replaces a survey.
func (c *SurveyCache) Add(key string, s *Survey) {
	c.lru.Add(key, s)
}

// Remove explicitly removes a survey from the cache.
func (c *SurveyCache) Remove(key string) {
	c.lru.Remove(key)
}

// Clear removes all surveys from the cache.
func (c *SurveyCache) Clear() {
	c.lru.Purge()
}

// Stats returns cache statistics.
func (c *SurveyCache) Stats() CacheStats {
	return CacheStats{
		SurveyCount: c.lru.Len(),
		Capacity:    c.size,
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Evictions:   c.evictions.Load(),
	}
}

// CacheStats holds cache performance metrics.
type CacheStats struct {
	SurveyCount int   // Number of surveys currently cached
	Capacity    int   // Maximum number of surveys
	Hits        int64 // Gets served from the cache
	Misses      int64 // Gets that went to the loader
	Evictions   int64 // Surveys dropped by eviction, Remove or Clear
}
