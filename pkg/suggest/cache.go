package suggest

import (
	"sync"

	"github.com/charmbracelet/log"
)

// ResultCache memoizes completion results keyed by prefix and limit.
// Entries are evicted least-recently-used once maxEntries is reached; the
// whole cache is dropped on any index mutation. Each drop starts a new
// generation, and Put refuses results computed against an older one, so a
// query that raced a mutation cannot re-install its stale result set.
type ResultCache struct {
	entries     map[string][]string
	accessTime  map[string]int64
	accessCount int64
	generation  int64
	hits        int64
	misses      int64
	maxEntries  int
	mu          sync.Mutex
}

func NewResultCache(maxEntries int) *ResultCache {
	return &ResultCache{
		entries:    make(map[string][]string, maxEntries),
		accessTime: make(map[string]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

func (rc *ResultCache) Get(key string) ([]string, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	results, ok := rc.entries[key]
	if !ok {
		rc.misses++
		return nil, false
	}

	rc.hits++
	rc.markAccessed(key)
	return results, true
}

// Put stores results computed during the given generation. Results from
// an earlier generation are discarded: the index has mutated since they
// were read, and caching them would serve stale completions forever.
func (rc *ResultCache) Put(key string, results []string, generation int64) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if generation != rc.generation {
		log.Debugf("Discarding stale results for %q", key)
		return
	}

	if _, exists := rc.entries[key]; !exists && len(rc.entries) >= rc.maxEntries {
		rc.evictLRU()
	}

	rc.entries[key] = results
	rc.markAccessed(key)
}

// Generation returns the current cache epoch. Callers capture it before
// reading the index and hand it back to Put.
func (rc *ResultCache) Generation() int64 {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.generation
}

// Invalidate drops every cached result and starts a new generation. A
// single added or removed word can change arbitrarily many cached queries,
// so nothing finer is worth doing. The generation bumps even when the
// cache is empty: an in-flight Put may still carry pre-mutation results.
func (rc *ResultCache) Invalidate() {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	rc.generation++
	if len(rc.entries) == 0 {
		return
	}

	log.Debugf("Dropping %d cached completion results", len(rc.entries))
	rc.entries = make(map[string][]string, rc.maxEntries)
	rc.accessTime = make(map[string]int64, rc.maxEntries)
}

func (rc *ResultCache) Stats() map[string]int {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	return map[string]int{
		"cachedQueries":    len(rc.entries),
		"maxCachedQueries": rc.maxEntries,
		"cacheHits":        int(rc.hits),
		"cacheMisses":      int(rc.misses),
	}
}

func (rc *ResultCache) markAccessed(key string) {
	rc.accessCount++
	rc.accessTime[key] = rc.accessCount
}

func (rc *ResultCache) evictLRU() {
	var oldestKey string
	var oldestTime int64 = 9223372036854775807

	for key, accessTime := range rc.accessTime {
		if accessTime < oldestTime {
			oldestTime = accessTime
			oldestKey = key
		}
	}

	if oldestKey != "" {
		delete(rc.entries, oldestKey)
		delete(rc.accessTime, oldestKey)
		log.Debugf("Evicted cached results for %q", oldestKey)
	}
}
