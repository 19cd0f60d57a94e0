package wordlist

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents the supported word-list file formats
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatChunk              // Chunked binary format
	FormatText               // Plain text format
)

// FormatInfo contains metadata about a word-list file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatChunk: {
		Format:      FormatChunk,
		Description: "Chunked Binary Word List",
		Extensions:  []string{".bin"},
		MinSize:     4, // At least the entry count header
	},
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Word List",
		Extensions:  []string{".txt"},
		MinSize:     1, // At least one character
	},
}

// ValidateFormat checks whether a file matches the expected format.
func ValidateFormat(filename string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}

	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("unknown format: %v", expectedFormat)
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	validExt := false
	for _, validExtension := range formatInfo.Extensions {
		if ext == validExtension {
			validExt = true
			break
		}
	}
	if !validExt {
		return fmt.Errorf("file %s has invalid extension %s for format %s (expected: %v)",
			filename, ext, formatInfo.Description, formatInfo.Extensions)
	}

	switch expectedFormat {
	case FormatChunk:
		return validateChunkFormat(filename)
	case FormatText:
		return validateTextFormat(filename)
	}

	return nil
}

// validateChunkFormat checks the entry count header of a chunk file
func validateChunkFormat(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	var entryCount int32
	if err := binary.Read(file, binary.LittleEndian, &entryCount); err != nil {
		return fmt.Errorf("failed to read header from %s: %w", filename, err)
	}

	if entryCount < 0 {
		return fmt.Errorf("invalid entry count in %s: %d (negative)", filename, entryCount)
	}

	if entryCount > 1000000 { // Sanity check: more than 1M words per chunk is suspicious
		return fmt.Errorf("suspicious entry count in %s: %d (too large)", filename, entryCount)
	}

	log.Debugf("Chunk file %s validated: %d words", filename, entryCount)
	return nil
}

// validateTextFormat checks that a text file is readable
func validateTextFormat(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	buffer := make([]byte, 1024)
	if _, err := file.Read(buffer); err != nil {
		return fmt.Errorf("failed to read from text file %s: %w", filename, err)
	}

	log.Debugf("Text file %s validated", filename)
	return nil
}

// DetectFormat attempts to detect the format of a file from its name and
// contents.
func DetectFormat(filename string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	basename := strings.ToLower(filepath.Base(filename))

	// Chunk files by naming pattern (words_0001.bin -> chunk 1)
	if strings.HasPrefix(basename, "words_") && ext == ".bin" {
		if err := ValidateFormat(filename, FormatChunk); err == nil {
			return FormatChunk, nil
		}
	}

	if ext == ".txt" {
		if err := ValidateFormat(filename, FormatText); err == nil {
			return FormatText, nil
		}
	}

	return FormatUnknown, fmt.Errorf("unable to detect format for file %s", filename)
}
