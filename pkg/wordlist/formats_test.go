package wordlist

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	dir := t.TempDir()
	chunkFile := writeTestChunk(t, dir, 1, []string{"alpha"})

	textFile := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(textFile, []byte("alpha\n"), 0644))

	format, err := DetectFormat(chunkFile)
	require.NoError(t, err)
	assert.Equal(t, FormatChunk, format)

	format, err = DetectFormat(textFile)
	require.NoError(t, err)
	assert.Equal(t, FormatText, format)

	_, err = DetectFormat(filepath.Join(dir, "words.dat"))
	assert.Error(t, err)

	// Chunk naming pattern without a readable header.
	bogus := filepath.Join(dir, "words_0002.bin")
	require.NoError(t, os.WriteFile(bogus, []byte{0xff}, 0644))
	_, err = DetectFormat(bogus)
	assert.Error(t, err)
}

func TestValidateFormat(t *testing.T) {
	dir := t.TempDir()
	chunkFile := writeTestChunk(t, dir, 1, []string{"alpha", "beta"})

	assert.NoError(t, ValidateFormat(chunkFile, FormatChunk))

	// Extension mismatch.
	assert.Error(t, ValidateFormat(chunkFile, FormatText))

	// Missing file.
	assert.Error(t, ValidateFormat(filepath.Join(dir, "words_0002.bin"), FormatChunk))

	// Negative entry count in the header.
	negative := filepath.Join(dir, "words_0003.bin")
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, int32(-5)))
	require.NoError(t, os.WriteFile(negative, buf.Bytes(), 0644))
	assert.Error(t, ValidateFormat(negative, FormatChunk))

	// Too small to hold the header.
	tiny := filepath.Join(dir, "words_0004.bin")
	require.NoError(t, os.WriteFile(tiny, []byte{1, 0}, 0644))
	assert.Error(t, ValidateFormat(tiny, FormatChunk))
}
