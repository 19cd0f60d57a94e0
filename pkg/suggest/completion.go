package suggest

import (
	"strconv"
	"sync"

	"github.com/imipolexg/completer/pkg/tst"
	"github.com/imipolexg/completer/pkg/wordlist"
)

// Mutations are rare next to queries, so a small result cache pays for
// itself quickly in editor-driven workloads that re-ask the same prefixes.
const defaultCacheEntries = 512

// Completer serves prefix completions from a ternary search trie behind a
// read/write lock: queries take the shared lock, mutations the exclusive
// one. Any mutation drops the result cache.
type Completer struct {
	mu     sync.RWMutex
	trie   *tst.Trie
	cache  *ResultCache
	loader *wordlist.Loader
}

// NewCompleter returns an engine seeded with the given words.
func NewCompleter(words ...string) *Completer {
	return &Completer{
		trie:  tst.New(words...),
		cache: NewResultCache(defaultCacheEntries),
	}
}

// NewLazyCompleter returns an engine fed from chunk files under dirPath.
// Words start arriving after Initialize; chunkSize and maxWords bound how
// much the loader pulls in.
func NewLazyCompleter(dirPath string, chunkSize, maxWords int) *Completer {
	c := &Completer{
		trie:  tst.New(),
		cache: NewResultCache(defaultCacheEntries),
	}
	c.loader = wordlist.NewLoader(dirPath, chunkSize, maxWords, c)
	return c
}

// Complete returns completions for prefix in ascending lexical order. A
// positive limit caps the result count; zero or negative means unlimited.
func (c *Completer) Complete(prefix string, limit int) []string {
	key := prefix + "\x00" + strconv.Itoa(limit)
	if results, ok := c.cache.Get(key); ok {
		return results
	}

	// The generation is captured under the same read lock as the trie
	// walk. A mutation landing between RUnlock and Put bumps it via
	// Invalidate, so Put drops the now-stale results instead of caching
	// them past the mutation.
	c.mu.RLock()
	generation := c.cache.Generation()
	results := c.trie.Completions(prefix, limit)
	c.mu.RUnlock()

	c.cache.Put(key, results, generation)
	return results
}

// AddWords indexes words and reports how many were not already present.
func (c *Completer) AddWords(words ...string) int {
	c.mu.Lock()
	before := c.trie.Size()
	for _, w := range words {
		c.trie.Add(w)
	}
	added := c.trie.Size() - before
	c.mu.Unlock()

	if added > 0 {
		c.cache.Invalidate()
	}
	return added
}

// AddWord indexes a single word.
func (c *Completer) AddWord(word string) {
	c.AddWords(word)
}

// RemoveWords unindexes words and reports how many were present.
func (c *Completer) RemoveWords(words ...string) int {
	c.mu.Lock()
	removed := 0
	for _, w := range words {
		if c.trie.Remove(w) {
			removed++
		}
	}
	c.mu.Unlock()

	if removed > 0 {
		c.cache.Invalidate()
	}
	return removed
}

// RemoveWord unindexes a single word and reports whether it was present.
func (c *Completer) RemoveWord(word string) bool {
	return c.RemoveWords(word) == 1
}

// Contains reports whether word is indexed.
func (c *Completer) Contains(word string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.trie.Contains(word)
}

// Size returns the number of indexed words.
func (c *Completer) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.trie.Size()
}

// Initialize starts background chunk loading when a loader is attached.
// Seeded engines are ready as soon as NewCompleter returns.
func (c *Completer) Initialize() error {
	if c.loader == nil {
		return nil
	}
	return c.loader.Start()
}

// RequestMoreWords queues additional chunks for loading.
func (c *Completer) RequestMoreWords(additionalWords int) error {
	if c.loader == nil {
		return nil
	}
	return c.loader.RequestMoreChunks(additionalWords)
}

// Stop shuts down background loading.
func (c *Completer) Stop() {
	if c.loader != nil {
		c.loader.Stop()
	}
}

// Stats returns engine counters: index size, cache behavior, and chunk
// loading progress when a loader is attached.
func (c *Completer) Stats() map[string]int {
	stats := map[string]int{
		"totalWords": c.Size(),
	}

	for k, v := range c.cache.Stats() {
		stats[k] = v
	}

	if c.loader != nil {
		ls := c.loader.Stats()
		stats["loadedChunks"] = ls.LoadedChunks
		stats["availableChunks"] = ls.AvailableChunks
		stats["chunkLoader"] = 1
	} else {
		stats["chunkLoader"] = 0
	}

	return stats
}
