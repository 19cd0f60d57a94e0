package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeCompleter struct {
	added   []string
	removed []string
	more    int
}

func (f *fakeCompleter) Complete(prefix string, limit int) []string {
	return []string{prefix + "x"}
}

func (f *fakeCompleter) AddWords(words ...string) int {
	f.added = append(f.added, words...)
	return len(words)
}

func (f *fakeCompleter) RemoveWords(words ...string) int {
	f.removed = append(f.removed, words...)
	return len(words)
}

func (f *fakeCompleter) Contains(word string) bool { return false }
func (f *fakeCompleter) Initialize() error         { return nil }
func (f *fakeCompleter) Size() int                 { return len(f.added) }

func (f *fakeCompleter) Stats() map[string]int {
	return map[string]int{"totalWords": len(f.added)}
}

func (f *fakeCompleter) RequestMoreWords(n int) error {
	f.more += n
	return nil
}

func TestHandleCommand(t *testing.T) {
	f := &fakeCompleter{}
	h := NewInputHandler(f, 1, 24, 10, false)

	assert.False(t, h.handleCommand(":add alpha beta"))
	assert.Equal(t, []string{"alpha", "beta"}, f.added)

	assert.False(t, h.handleCommand(":remove alpha"))
	assert.Equal(t, []string{"alpha"}, f.removed)

	assert.False(t, h.handleCommand(":more 500"))
	assert.Equal(t, 500, f.more)

	assert.False(t, h.handleCommand(":add"))
	assert.Empty(t, f.added[2:])

	assert.False(t, h.handleCommand(":stats"))
	assert.False(t, h.handleCommand(":help"))
	assert.False(t, h.handleCommand(":bogus"))

	assert.True(t, h.handleCommand(":quit"))
	assert.True(t, h.handleCommand(":q"))
}

func TestHandleCommandMoreValidatesCount(t *testing.T) {
	f := &fakeCompleter{}
	h := NewInputHandler(f, 1, 24, 10, false)

	h.handleCommand(":more nope")
	h.handleCommand(":more -3")
	assert.Equal(t, 0, f.more)
}

func TestHandleInputBounds(t *testing.T) {
	f := &fakeCompleter{}
	h := NewInputHandler(f, 2, 5, 10, false)

	// Out-of-bounds and filtered prefixes never reach the completer, so
	// the request counter is the only observable change.
	h.handleInput("a")
	h.handleInput("toolong")
	h.handleInput("12345")
	h.handleInput("abc")
	assert.Equal(t, 4, h.requestCount)
}
