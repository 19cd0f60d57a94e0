/*
Package server implements msgpack IPC for prefix completion services.

The server package provides a minimal interface for text completion using msgpack serialization over stdin/stdout.

The protocol uses binary msgpack encoding and supports completion requests and runtime index management ops.
Messages are processed synchronously with timing info included in responses.

# IPC

The server operates on a request response model where clients send structured messages via stdin and receive responses through stdout.
Each message contains an ID field and other fields based on the operation type.

Completion requests use mainly this structure:

	{"id": "req_001", "p": "ame", "l": 24}

The server responds with suggestions in ascending lexical order:

	{"id": "req_001", "s": [{"w": "amenity"}, {"w": "america"}], "c": 2, "t": 145}

Index management enables runtime adjustment of the word set:

	{"id": "idx_001", "action": "get_info"}
	{"id": "idx_002", "action": "add", "words": ["amelioration"]}
	{"id": "idx_003", "action": "remove", "words": ["america"]}

Response structures include status information and error details when an op fails.

The server maintains request counts for periodic config reloading, so
TOML edits apply without a restart.

# Message Types

CompletionRequest and CompletionResponse handle the main prefix suggestion.
Request includes a prefix string and optional limit for result count.
Responses contain suggestion arrays with word strings plus timing data in microseconds.

IndexRequest and IndexResponse manage runtime index operations.
Supported actions include: getting current information, adding words, and removing words.

msgpack encoding has ~30 to 50% smaller message sizes compared to JSON.
binary format enables faster parsing and generation, less errors and reducing latency in most cases.
*/
package server

// CompletionRequest - minimal completion request
type CompletionRequest struct {
	ID     string `msgpack:"id"`
	Prefix string `msgpack:"p"`
	Limit  int    `msgpack:"l,omitempty"`
}

// CompletionSuggestion - minimal suggestion response
type CompletionSuggestion struct {
	Word string `msgpack:"w"`
}

// CompletionResponse - completion response
type CompletionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
}

// IndexRequest - runtime index management request
type IndexRequest struct {
	ID     string   `msgpack:"id"`
	Action string   `msgpack:"action"`          // "get_info", "add", "remove"
	Words  []string `msgpack:"words,omitempty"` // for "add" and "remove"
}

// IndexResponse - index operation response
type IndexResponse struct {
	ID              string `msgpack:"id"`
	Status          string `msgpack:"status"`
	Error           string `msgpack:"error,omitempty"`
	Size            int    `msgpack:"size,omitempty"`
	Added           int    `msgpack:"added,omitempty"`
	Removed         int    `msgpack:"removed,omitempty"`
	CurrentChunks   int    `msgpack:"current_chunks,omitempty"`
	AvailableChunks int    `msgpack:"available_chunks,omitempty"`
}

// CompletionError holds basic error information for completion requests
type CompletionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
