package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ReadTextFile reads a plain-text word list: one word per line, blank lines
// and #-comments skipped, surrounding whitespace trimmed. Words are
// normalized to NFC so composed and decomposed spellings of the same text
// index identically.
func ReadTextFile(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list %s: %w", filename, err)
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, norm.NFC.String(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list %s: %w", filename, err)
	}

	return words, nil
}
