// Package suggest wraps the completion trie in the locking, result caching, and statistics the server and CLI front ends need.
package suggest

// ICompleter defines the interface for completion engines
type ICompleter interface {
	// Complete returns completions for a prefix in ascending lexical
	// order, capped at limit when limit is positive
	Complete(prefix string, limit int) []string

	// AddWords indexes words and reports how many were not already present
	AddWords(words ...string) int

	// RemoveWords unindexes words and reports how many were present
	RemoveWords(words ...string) int

	// Contains reports whether word is indexed
	Contains(word string) bool

	// Initialize prepares the engine, starting background chunk loading
	// when a word-list loader is attached
	Initialize() error

	// Size returns the number of indexed words
	Size() int

	// Stats returns statistics about the engine state
	Stats() map[string]int
}
