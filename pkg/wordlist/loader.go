// Package wordlist reads and writes the word-list files that seed a completion index: plain-text lists and chunked binary lists loaded lazily in the background.
package wordlist

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Sink receives words as chunks are loaded. The completion engine
// implements it; deduplication is the sink's business.
type Sink interface {
	AddWords(words ...string) int
}

// ChunkInfo describes one chunk file found on disk
type ChunkInfo struct {
	ChunkID   int
	Filename  string
	WordCount int
}

// LoaderStats provides statistics about the loading process
type LoaderStats struct {
	TotalWords      int
	LoadedChunks    int
	AvailableChunks int
	IsLoading       bool
}

// Loader feeds chunked word lists into a Sink. Chunks are queued at Start
// and loaded by a background goroutine with bounded retries, so the index
// becomes usable before the whole list is in memory.
type Loader struct {
	dirPath      string
	chunkSize    int
	maxWords     int
	sink         Sink
	loadedChunks map[int]bool
	totalWords   int
	mu           sync.RWMutex
	loadingCh    chan int
	done         chan struct{}
	stopOnce     sync.Once
	errorCount   map[int]int
	maxRetries   int
}

// NewLoader creates a loader over the chunk files in dirPath. maxWords
// bounds how many words Start queues (0 means all); chunkSize is the
// generation-time chunk size, used to budget chunks whose header cannot
// be read.
func NewLoader(dirPath string, chunkSize, maxWords int, sink Sink) *Loader {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Loader{
		dirPath:      dirPath,
		chunkSize:    chunkSize,
		maxWords:     maxWords,
		sink:         sink,
		loadedChunks: make(map[int]bool),
		loadingCh:    make(chan int, 10),
		done:         make(chan struct{}),
		errorCount:   make(map[int]int),
		maxRetries:   3,
	}
}

// AvailableChunks scans the directory for chunk files, skipping any that
// fail format validation, and returns them ordered by chunk ID.
func (l *Loader) AvailableChunks() ([]ChunkInfo, error) {
	pattern := filepath.Join(l.dirPath, "words_*.bin")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		basename := filepath.Base(file)
		// words_0001.bin -> 1
		idStr := strings.TrimPrefix(basename, "words_")
		idStr = strings.TrimSuffix(idStr, ".bin")
		chunkID, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}

		if err := ValidateFormat(file, FormatChunk); err != nil {
			log.Warnf("Skipping invalid chunk file %s: %v", file, err)
			continue
		}

		wordCount, err := readChunkWordCount(file)
		if err != nil {
			log.Warnf("Failed to read word count for chunk %s: %v", file, err)
			wordCount = l.chunkSize // best guess for budgeting
		}

		chunks = append(chunks, ChunkInfo{
			ChunkID:   chunkID,
			Filename:  file,
			WordCount: wordCount,
		})
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ChunkID < chunks[j].ChunkID
	})

	return chunks, nil
}

// Start scans for chunks, spawns the background loader, and queues chunks
// until the word budget is reached.
func (l *Loader) Start() error {
	chunks, err := l.AvailableChunks()
	if err != nil {
		return fmt.Errorf("failed to get available chunks: %w", err)
	}
	if len(chunks) == 0 {
		return fmt.Errorf("no chunk files found in %s", l.dirPath)
	}

	log.Debugf("Found %d chunk files", len(chunks))

	go l.backgroundLoader()

	wordBudget := l.maxWords
	if wordBudget == 0 {
		for _, chunk := range chunks {
			wordBudget += chunk.WordCount
		}
	}

	queued := 0
	for _, chunk := range chunks {
		if queued >= wordBudget {
			break
		}

		// The background loader is already draining, so a full queue only
		// means waiting for a slot. Dropping the chunk here would lose it
		// for good: retries cover read errors, not queueing.
		select {
		case l.loadingCh <- chunk.ChunkID:
			log.Debugf("Queued chunk %d for loading", chunk.ChunkID)
		case <-l.done:
			return nil
		}

		queued += chunk.WordCount
	}

	return nil
}

// backgroundLoader drains the queue until Stop.
func (l *Loader) backgroundLoader() {
	for {
		select {
		case chunkID := <-l.loadingCh:
			if err := l.loadChunk(chunkID); err != nil {
				log.Errorf("Failed to load chunk %d: %v", chunkID, err)
				l.retryChunk(chunkID)
			}
		case <-l.done:
			return
		}
	}
}

// retryChunk requeues a failed chunk after a backoff, up to maxRetries.
func (l *Loader) retryChunk(chunkID int) {
	l.mu.Lock()
	l.errorCount[chunkID]++
	attempts := l.errorCount[chunkID]
	l.mu.Unlock()

	if attempts >= l.maxRetries {
		log.Errorf("Chunk %d failed %d times, giving up", chunkID, attempts)
		return
	}

	log.Debugf("Retrying chunk %d (attempt %d/%d)", chunkID, attempts+1, l.maxRetries)
	go func() {
		select {
		case <-time.After(time.Duration(attempts) * time.Second):
		case <-l.done:
			return
		}
		select {
		case l.loadingCh <- chunkID:
		case <-l.done:
		}
	}()
}

// LoadChunk synchronously loads a single chunk by ID. Chunks already
// loaded are skipped.
func (l *Loader) LoadChunk(chunkID int) error {
	return l.loadChunk(chunkID)
}

func (l *Loader) loadChunk(chunkID int) error {
	l.mu.Lock()
	if l.loadedChunks[chunkID] {
		l.mu.Unlock()
		return nil
	}
	l.loadedChunks[chunkID] = true
	l.mu.Unlock()

	filename := filepath.Join(l.dirPath, ChunkFileName(chunkID))
	words, err := ReadChunkFile(filename)
	if err != nil {
		l.mu.Lock()
		delete(l.loadedChunks, chunkID)
		l.mu.Unlock()
		return err
	}

	added := l.sink.AddWords(words...)

	l.mu.Lock()
	l.totalWords += len(words)
	l.mu.Unlock()

	log.Debugf("Chunk %d loaded: %d words (%d new)", chunkID, len(words), added)
	return nil
}

// RequestMoreChunks queues unloaded chunks covering at least
// additionalWords more words.
func (l *Loader) RequestMoreChunks(additionalWords int) error {
	if additionalWords <= 0 {
		return nil
	}

	chunks, err := l.AvailableChunks()
	if err != nil {
		return err
	}

	queued := 0
	for _, chunk := range chunks {
		if queued >= additionalWords {
			break
		}

		l.mu.RLock()
		alreadyLoaded := l.loadedChunks[chunk.ChunkID]
		l.mu.RUnlock()
		if alreadyLoaded {
			continue
		}

		select {
		case l.loadingCh <- chunk.ChunkID:
			log.Debugf("Queued additional chunk %d for loading", chunk.ChunkID)
			queued += chunk.WordCount
		default:
			log.Warnf("Loading queue full, cannot queue chunk %d", chunk.ChunkID)
		}
	}

	return nil
}

// LoadedChunkIDs returns the IDs of loaded chunks in ascending order.
func (l *Loader) LoadedChunkIDs() []int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ids := make([]int, 0, len(l.loadedChunks))
	for chunkID := range l.loadedChunks {
		ids = append(ids, chunkID)
	}
	sort.Ints(ids)
	return ids
}

// Stats returns current loading statistics.
func (l *Loader) Stats() LoaderStats {
	chunks, _ := l.AvailableChunks()

	l.mu.RLock()
	defer l.mu.RUnlock()

	return LoaderStats{
		TotalWords:      l.totalWords,
		LoadedChunks:    len(l.loadedChunks),
		AvailableChunks: len(chunks),
		IsLoading:       len(l.loadingCh) > 0,
	}
}

// Stop shuts down the background loader. Safe to call more than once.
func (l *Loader) Stop() {
	l.stopOnce.Do(func() {
		close(l.done)
	})
}
