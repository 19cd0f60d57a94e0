package server

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/imipolexg/completer/internal/utils"
	"github.com/imipolexg/completer/pkg/config"
	"github.com/imipolexg/completer/pkg/suggest"
)

// reloadInterval is the number of requests between config reloads.
const reloadInterval = 100

// request is the superset of every incoming message's fields. A non-empty
// Action marks an index management message, anything else is a completion.
type request struct {
	ID     string   `msgpack:"id"`
	Prefix string   `msgpack:"p"`
	Limit  int      `msgpack:"l"`
	Action string   `msgpack:"action"`
	Words  []string `msgpack:"words"`
}

// Server handles the IPC for prefix completions
type Server struct {
	completer    suggest.ICompleter
	config       *config.Config
	configPath   string
	reader       io.Reader
	writer       io.Writer
	decoder      *msgpack.Decoder
	encoder      *msgpack.Encoder
	requestCount int
}

// NewServer creates a completion server using stdin/stdout for IPC.
// Logs must go to stderr: stdout carries the msgpack stream.
func NewServer(completer suggest.ICompleter, cfg *config.Config, configPath string) *Server {
	return &Server{
		completer:  completer,
		config:     cfg,
		configPath: configPath,
		reader:     os.Stdin,
		writer:     os.Stdout,
	}
}

// Start begins listening for IPC requests. It returns nil when the client
// closes its end of the stream.
func (s *Server) Start() error {
	log.Debug("Starting completion server")

	s.decoder = msgpack.NewDecoder(s.reader)
	s.encoder = msgpack.NewEncoder(s.writer)

	for {
		var req request
		if err := s.decoder.Decode(&req); err != nil {
			if err == io.EOF {
				log.Debug("Client closed the stream")
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return fmt.Errorf("failed to decode request: %w", err)
		}

		s.requestCount++
		if s.requestCount%reloadInterval == 0 {
			s.reloadConfig()
		}

		if req.Action != "" {
			s.handleIndex(IndexRequest{ID: req.ID, Action: req.Action, Words: req.Words})
		} else {
			s.handleCompletion(CompletionRequest{ID: req.ID, Prefix: req.Prefix, Limit: req.Limit})
		}
	}
}

// handleCompletion validates the request against the configured bounds,
// queries the completer, and sends suggestions in ascending lexical order.
func (s *Server) handleCompletion(req CompletionRequest) {
	start := time.Now()

	if req.Prefix == "" {
		s.sendCompletionError(req.ID, "Missing 'p' prefix parameter", 400)
		return
	}
	if len(req.Prefix) < s.config.Server.MinPrefix {
		s.sendCompletionError(req.ID,
			fmt.Sprintf("Prefix must be at least %d characters", s.config.Server.MinPrefix), 400)
		return
	}
	if len(req.Prefix) > s.config.Server.MaxPrefix {
		s.sendCompletionError(req.ID,
			fmt.Sprintf("Prefix exceeds maximum length of %d characters", s.config.Server.MaxPrefix), 400)
		return
	}

	// Noise like bare digits or separators gets an empty result, not an
	// error: editor clients fire these constantly.
	if s.config.Server.EnableFilter && !utils.IsValidInput(req.Prefix) {
		s.sendResponse(CompletionResponse{
			ID:          req.ID,
			Suggestions: []CompletionSuggestion{},
			Count:       0,
			TimeTaken:   time.Since(start).Microseconds(),
		})
		return
	}

	limit := req.Limit
	if limit < 1 {
		limit = s.config.CLI.DefaultLimit
	}
	if limit > s.config.Server.MaxLimit {
		limit = s.config.Server.MaxLimit
	}

	words := s.completer.Complete(req.Prefix, limit)

	suggestions := make([]CompletionSuggestion, len(words))
	for i, w := range words {
		suggestions[i] = CompletionSuggestion{Word: w}
	}

	s.sendResponse(CompletionResponse{
		ID:          req.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   time.Since(start).Microseconds(),
	})
}

// handleIndex processes index management requests.
func (s *Server) handleIndex(req IndexRequest) {
	switch req.Action {
	case "get_info":
		stats := s.completer.Stats()
		s.sendResponse(IndexResponse{
			ID:              req.ID,
			Status:          "success",
			Size:            stats["totalWords"],
			CurrentChunks:   stats["loadedChunks"],
			AvailableChunks: stats["availableChunks"],
		})
	case "add":
		if len(req.Words) == 0 {
			s.sendIndexError(req.ID, "No words provided for add")
			return
		}
		added := s.completer.AddWords(req.Words...)
		s.sendResponse(IndexResponse{
			ID:     req.ID,
			Status: "success",
			Size:   s.completer.Size(),
			Added:  added,
		})
	case "remove":
		if len(req.Words) == 0 {
			s.sendIndexError(req.ID, "No words provided for remove")
			return
		}
		removed := s.completer.RemoveWords(req.Words...)
		s.sendResponse(IndexResponse{
			ID:      req.ID,
			Status:  "success",
			Size:    s.completer.Size(),
			Removed: removed,
		})
	default:
		s.sendIndexError(req.ID, fmt.Sprintf("Unknown action: %s", req.Action))
	}
}

// reloadConfig picks up on-disk config edits without restarting the server.
func (s *Server) reloadConfig() {
	if s.configPath == "" {
		return
	}
	cfg, err := config.LoadConfig(s.configPath)
	if err != nil {
		log.Warnf("Config reload failed: %v", err)
		return
	}
	s.config = cfg
	log.Debugf("Config reloaded after %d requests", s.requestCount)
}

func (s *Server) sendCompletionError(id, message string, code int) {
	log.Debugf("Request %s rejected: %s", id, message)
	s.sendResponse(CompletionError{ID: id, Error: message, Code: code})
}

func (s *Server) sendIndexError(id, message string) {
	log.Debugf("Index request %s rejected: %s", id, message)
	s.sendResponse(IndexResponse{ID: id, Status: "error", Error: message})
}

func (s *Server) sendResponse(response any) {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}
