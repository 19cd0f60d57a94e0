package wordlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTextFile(t *testing.T) {
	content := "# word list\nx-ray\n\n  apple  \nbanana\n# trailing comment\ncafé\n"
	filename := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(filename, []byte(content), 0644))

	words, err := ReadTextFile(filename)
	require.NoError(t, err)

	// The decomposed "café" comes back in composed form.
	assert.Equal(t, []string{"x-ray", "apple", "banana", "café"}, words)
}

func TestReadTextFileMissing(t *testing.T) {
	_, err := ReadTextFile(filepath.Join(t.TempDir(), "words.txt"))
	assert.Error(t, err)
}
