/*
Package tst implements a ternary search trie for ordered prefix completion.

Each node keys a single byte of a stored string. Sibling links (left, right)
arrange alternative bytes at the same position as a binary search tree, and
the mid link advances to the next position for strings sharing the path so
far. Compared to an array-per-node trie this trades a few extra comparisons
per step for far less memory on sparse alphabets.

Strings are compared byte-wise. For valid UTF-8 input byte order equals code
point order, so completions always come back in ascending lexical order
without a rune layer.

The trie is insert-only at the node level: nodes are created lazily on Add
and never move or disappear. Remove clears the terminal flag only, since a
node's mid chain may spell out other stored strings.

A Trie is not safe for concurrent use. Package suggest wraps one in the
read/write locking needed by the server and CLI front ends.
*/
package tst

import (
	"math/rand"
	"time"
)

// node keys one byte position. left and right hold strictly lesser and
// strictly greater alternatives for the same position; mid holds the next
// position of strings passing through this byte. complete marks the byte
// path from the root through mid links as a stored string.
type node struct {
	char             byte
	left, mid, right *node
	complete         bool
}

// Trie is a ternary search trie over strings.
type Trie struct {
	root *node
	size int
}

// New builds a trie holding the given words. The input positions are
// visited in a uniform random permutation before insertion, so the
// expected node depth stays logarithmic even when the input arrives
// sorted — sequential insertion of a sorted list would degenerate the
// sibling chains into linked lists. The generator is local to the call
// and discarded once the trie is built.
//
// Duplicate words collapse to a single entry. Empty strings are skipped;
// see Add.
func New(words ...string) *Trie {
	t := &Trie{}
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	for _, i := range r.Perm(len(words)) {
		t.Add(words[i])
	}
	return t
}

// Add inserts s, creating nodes along the path as needed and marking the
// terminal node complete. Re-adding a stored string is a no-op. The empty
// string is also a no-op: a zero-length path has no byte to key a node on,
// so it is not indexable.
func (t *Trie) Add(s string) {
	if len(s) == 0 {
		return
	}
	t.root = t.insert(t.root, s, 0)
}

func (t *Trie) insert(n *node, s string, depth int) *node {
	c := s[depth]
	if n == nil {
		n = &node{char: c}
	}
	switch {
	case c < n.char:
		n.left = t.insert(n.left, s, depth)
	case c > n.char:
		n.right = t.insert(n.right, s, depth)
	case depth < len(s)-1:
		n.mid = t.insert(n.mid, s, depth+1)
	default:
		if !n.complete {
			n.complete = true
			t.size++
		}
	}
	return n
}

// Contains reports whether s itself was stored. A string that is only a
// prefix of stored strings reports false.
func (t *Trie) Contains(s string) bool {
	n := t.locate(s)
	return n != nil && n.complete
}

// Remove unindexes s and reports whether it was present. Removal is
// logical: the terminal flag is cleared and the nodes stay put, because
// mid chains below may belong to other stored strings.
func (t *Trie) Remove(s string) bool {
	n := t.locate(s)
	if n == nil || !n.complete {
		return false
	}
	n.complete = false
	t.size--
	return true
}

// Size returns the number of distinct strings stored.
func (t *Trie) Size() int {
	return t.size
}

// locate descends to the node keyed by the last byte of s, or nil when no
// stored string travels that path. The empty string has no such node.
func (t *Trie) locate(s string) *node {
	if len(s) == 0 {
		return nil
	}
	n := t.root
	depth := 0
	for n != nil {
		c := s[depth]
		switch {
		case c < n.char:
			n = n.left
		case c > n.char:
			n = n.right
		default:
			if depth == len(s)-1 {
				return n
			}
			depth++
			n = n.mid
		}
	}
	return nil
}

// Completions returns the stored strings beginning with prefix, in
// ascending lexical order. A limit greater than zero caps the result
// count; any other limit returns the full match set. The empty prefix
// matches nothing: prefix search needs at least one byte to anchor on.
func (t *Trie) Completions(prefix string, limit int) []string {
	if len(prefix) == 0 {
		return nil
	}
	n := t.locate(prefix)
	if n == nil {
		return nil
	}
	var out []string
	if n.complete {
		// The prefix itself is stored. It sorts before every longer
		// match, so it goes first unconditionally.
		out = append(out, prefix)
	}
	t.collect(n.mid, []byte(prefix), limit, &out)
	return out
}

// collect appends every stored string under n to out via an in-order walk:
// left siblings, the node's own completion, mid extensions, then right
// siblings. That visit order is what keeps the result ascending. The limit
// check runs at node entry, so a filled result set unwinds the remaining
// stack without touching further subtrees.
func (t *Trie) collect(n *node, acc []byte, limit int, out *[]string) {
	if n == nil || capped(limit, *out) {
		return
	}
	t.collect(n.left, acc, limit, out)
	word := append(acc, n.char)
	if n.complete && !capped(limit, *out) {
		// string() copies, so later writes into the shared backing
		// array cannot reach results already collected.
		*out = append(*out, string(word))
	}
	t.collect(n.mid, word, limit, out)
	t.collect(n.right, acc, limit, out)
}

func capped(limit int, out []string) bool {
	return limit > 0 && len(out) >= limit
}
