// Package cli handles cmd line input and suggestions for DBG and testing various features
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/imipolexg/completer/internal/utils"
	"github.com/imipolexg/completer/pkg/suggest"
)

// InputHandler processes user input from stdin, providing suggestions.
// It accepts many flags to control behavior such as minimum and maximum
// prefix length, suggestion limits, and filtering options. Lines starting
// with a colon are commands against the running index.
type InputHandler struct {
	completer       suggest.ICompleter
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	requestCount    int
	noFilter        bool
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(completer suggest.ICompleter, minLength, maxLength, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		completer:       completer,
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
		noFilter:        noFilter,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin, and passes
// the trimmed input to handleInput() or handleCommand() for processing.
// Loop terminates on a :quit command or an error reading from stdin.
func (h *InputHandler) Start() error {
	log.Print("Completer CLI")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a prefix and press Enter for suggestions (:help for commands, Ctrl+C to exit):")

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if h.handleCommand(line) {
				return nil
			}
			continue
		}
		h.handleInput(line)
	}
}

// handleCommand runs a colon command and reports whether the loop should exit.
func (h *InputHandler) handleCommand(line string) bool {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case ":quit", ":q":
		return true
	case ":help", ":h":
		h.printHelp()
	case ":stats":
		h.printStats()
	case ":add":
		if len(args) == 0 {
			log.Error("Usage: :add <word> [word ...]")
			break
		}
		added := h.completer.AddWords(args...)
		log.Printf("Added %d of %d words", added, len(args))
	case ":remove":
		if len(args) == 0 {
			log.Error("Usage: :remove <word> [word ...]")
			break
		}
		removed := h.completer.RemoveWords(args...)
		log.Printf("Removed %d of %d words", removed, len(args))
	case ":more":
		count := 10000
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				log.Errorf("Not a word count: %s", args[0])
				break
			}
			count = n
		}
		h.requestMore(count)
	default:
		log.Errorf("Unknown command: %s", cmd)
	}
	return false
}

func (h *InputHandler) printHelp() {
	log.Print(":stats             index and cache counters")
	log.Print(":more [n]          load n more words from chunk files")
	log.Print(":add <word> ...    index words")
	log.Print(":remove <word> ... unindex words")
	log.Print(":quit              exit")
}

func (h *InputHandler) printStats() {
	stats := h.completer.Stats()
	log.Printf("indexed words: %s", utils.FormatWithCommas(stats["totalWords"]))
	log.Printf("cached queries: %d (hits %d, misses %d)",
		stats["cachedQueries"], stats["cacheHits"], stats["cacheMisses"])
	if stats["chunkLoader"] == 1 {
		log.Printf("chunks loaded: %d of %d", stats["loadedChunks"], stats["availableChunks"])
	}
	log.Printf("session requests: %d", h.requestCount)
}

// requestMore queues more chunk-backed words when the engine supports
// lazy loading.
func (h *InputHandler) requestMore(words int) {
	loader, ok := h.completer.(interface{ RequestMoreWords(int) error })
	if !ok {
		log.Warn("This engine has no chunk loader")
		return
	}
	if err := loader.RequestMoreWords(words); err != nil {
		log.Errorf("Requesting more words: %v", err)
		return
	}
	log.Printf("Queued up to %s more words", utils.FormatWithCommas(words))
}

// handleInput processes a single prefix to generate suggestions.
// It validates the prefix's length and content, then asks the completer
// for suggestions. Results are formatted and printed to the log.
func (h *InputHandler) handleInput(prefix string) {
	h.requestCount++

	if len(prefix) < h.minPrefixLength {
		log.Errorf("Prefix too short: %s", prefix)
		return
	}

	if len(prefix) > h.maxPrefixLength {
		log.Errorf("Prefix too long: %s", prefix)
		return
	}

	// input filtering by default (unless --no-filter flag is used)
	if !h.noFilter {
		if !utils.IsValidInput(prefix) {
			log.Infof("No results found for prefix: '%s'", prefix)
			return
		}
	} else {
		log.Debug("Input filtering disabled")
	}

	start := time.Now()
	words := h.completer.Complete(prefix, h.suggestLimit)
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for prefix '%s'", elapsed, prefix)

	if len(words) == 0 {
		log.Warnf("No suggestions found for prefix: '%s'", prefix)
		return
	}

	log.Printf("Found %d suggestions for prefix '%s':", len(words), prefix)
	for i, w := range words {
		clWord := fmt.Sprintf("\033[38;5;75m%s\033[0m", w)
		log.Printf("%2d. %s", i+1, clWord)
	}
}
