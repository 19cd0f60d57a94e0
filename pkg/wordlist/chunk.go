package wordlist

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DefaultChunkSize is the number of words per chunk file when no size is
// configured.
const DefaultChunkSize = 10000

// maxWordBytes is the largest word the uint16 length prefix can encode.
const maxWordBytes = 65535

// ChunkFileName returns the file name for a chunk ID (words_0001.bin for 1).
func ChunkFileName(chunkID int) string {
	return fmt.Sprintf("words_%04d.bin", chunkID)
}

// ReadChunkFile reads every word stored in a chunk file. The format is a
// little-endian int32 entry count followed by uint16 length-prefixed UTF-8
// words.
func ReadChunkFile(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open chunk file %s: %w", filename, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)

	var entryCount int32
	if err := binary.Read(reader, binary.LittleEndian, &entryCount); err != nil {
		return nil, fmt.Errorf("failed to read chunk header: %w", err)
	}
	if entryCount < 0 {
		return nil, fmt.Errorf("invalid entry count %d in chunk file %s", entryCount, filename)
	}

	// The header also sizes the allocation, so a corrupt count must not
	// drive it; the read loop stops at EOF regardless.
	capHint := int(entryCount)
	if capHint > DefaultChunkSize {
		capHint = DefaultChunkSize
	}
	words := make([]string, 0, capHint)
	for len(words) < int(entryCount) {
		var wordLen uint16
		if err := binary.Read(reader, binary.LittleEndian, &wordLen); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to read word length: %w", err)
		}

		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(reader, wordBytes); err != nil {
			return nil, fmt.Errorf("failed to read word: %w", err)
		}
		words = append(words, string(wordBytes))
	}

	return words, nil
}

// readChunkWordCount reads the entry count from a chunk file's header.
func readChunkWordCount(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var entryCount int32
	if err := binary.Read(file, binary.LittleEndian, &entryCount); err != nil {
		return 0, err
	}
	return int(entryCount), nil
}

// WriteChunk writes words to w in the chunk format.
func WriteChunk(w io.Writer, words []string) error {
	if err := binary.Write(w, binary.LittleEndian, int32(len(words))); err != nil {
		return fmt.Errorf("failed to write chunk header: %w", err)
	}

	for _, word := range words {
		if len(word) > maxWordBytes {
			return fmt.Errorf("word of %d bytes exceeds the chunk entry limit", len(word))
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(len(word))); err != nil {
			return fmt.Errorf("failed to write word length: %w", err)
		}
		if _, err := io.WriteString(w, word); err != nil {
			return fmt.Errorf("failed to write word: %w", err)
		}
	}
	return nil
}

// WriteChunks splits words into chunk files of chunkSize words under dir,
// numbered from words_0001.bin, and returns the number of chunks written.
// The directory is created if needed.
func WriteChunks(dir string, words []string, chunkSize int) (int, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create chunk directory %s: %w", dir, err)
	}

	chunks := 0
	for start := 0; start < len(words); start += chunkSize {
		end := start + chunkSize
		if end > len(words) {
			end = len(words)
		}
		chunks++
		filename := filepath.Join(dir, ChunkFileName(chunks))
		if err := writeChunkFile(filename, words[start:end]); err != nil {
			return chunks - 1, err
		}
	}
	return chunks, nil
}

func writeChunkFile(filename string, words []string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create chunk file %s: %w", filename, err)
	}

	writer := bufio.NewWriter(file)
	if err := WriteChunk(writer, words); err != nil {
		file.Close()
		return err
	}
	if err := writer.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("failed to flush chunk file %s: %w", filename, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close chunk file %s: %w", filename, err)
	}
	return nil
}
