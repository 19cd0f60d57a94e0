// Copyright 2025 The Completer Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the prefix completion server and CLI [DBG] application.

Note: This is a BETA release. APIs and functionality may rapidly change.

Completer provides fast prefix completions from a ternary search trie. It
can operate as a MessagePack IPC server for integration with text editors,
or as a CLI application for testing and debugging.

The server mode uses lazy-loaded chunked word lists to efficiently handle
large datasets while keeping startup fast. Suggestions come back in
ascending lexical order, filtered against noise like bare digits unless
filtering is disabled.

# Usage

Start the server with default settings:

	completer

Use a custom data directory and enable debug mode:

	completer -data /path/to/chunks -d

Run in CLI mode for interactive testing:

	completer -c -limit 10 -prmin 2

The data directory should contain chunked binary files named words_0001.bin,
words_0002.bin, etc. These files are generated from plain word lists with
the mkwordlist tool and loaded on demand based on the configured limits.

# Configuration

Runtime configuration is managed through a TOML file that supports server
parameters, index settings, and CLI defaults:

	[server]
	max_limit = 64
	min_prefix = 1
	max_prefix = 60
	enable_filter = true

	[index]
	max_words = 50000
	chunk_size = 10000

The config file is automatically created with defaults if it doesn't exist.
Server mode reloads configuration periodically without restart.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Completion
requests are processed synchronously with microsecond timing information
included in responses.

Send a completion request:

	{"id": "req1", "p": "hel", "l": 20}

Receive suggestions in ascending lexical order:

	{"id": "req1", "s": [{"w": "hello"}, {"w": "help"}], "c": 2, "t": 145}

Index management requests allow runtime changes to the word set:

	{"id": "idx1", "action": "get_info"}
	{"id": "idx2", "action": "add", "words": ["helix"]}

# Server Mode

The default mode starts a MessagePack IPC server that processes completion
requests from stdin and writes responses to stdout. This design enables
integration with text editors and other applications through process
communication.

	srv := server.NewServer(completer, config, configPath)
	err := srv.Start()

The server handles request parsing, validation, and response formatting,
and reloads its configuration periodically for long-running sessions. Logs
go to stderr so the stdout stream stays clean for msgpack frames.

# CLI Mode

CLI mode provides an interactive interface for testing and debugging
completion functionality. It reads prefixes from stdin and displays
suggestions, and accepts colon commands (:stats, :add, :remove, :more)
against the running index.

	inputHandler := cli.NewInputHandler(completer, minLen, maxLen, limit, noFilter)
	err := inputHandler.Start()

This mode is primarily intended for development and testing new features
before deploying to server mode. It supports the same filtering logic as
the server but with human-readable output.

# Completion Engine

The core completion functionality is provided by the suggest package,
which wraps a ternary search trie built in randomized insertion order so
lookups stay fast even when word lists arrive alphabetically sorted.

	completer := suggest.NewLazyCompleter(dataDir, chunkSize, maxWords)
	err := completer.Initialize()
	words := completer.Complete("prefix", 20)

The completer supports both static word addition and lazy loading from
chunked binary files, with a small LRU cache over repeated queries.

# Command Line Flags

The following flags control application behavior:

	-data string
	    Directory containing binary chunk files (default "data/")
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-config string
	    Path to a config.toml (default: user config dir)
	-limit int
	    Number of suggestions to return (default from config)
	-prmin int
	    Minimum prefix length for suggestions
	-prmax int
	    Maximum prefix length for suggestions
	-no-filter
	    Disable input filtering for debugging
	-words int
	    Maximum words to load (0 for all)
	-chunk int
	    Words per chunk for lazy loading

The application automatically resolves data and config paths relative to the
executable location, supporting both development and production deployments.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/imipolexg/completer/internal/cli"
	"github.com/imipolexg/completer/internal/utils"
	"github.com/imipolexg/completer/pkg/config"
	"github.com/imipolexg/completer/pkg/server"
	"github.com/imipolexg/completer/pkg/suggest"
)

const (
	Version = "0.4.0-beta"
	AppName = "completer"
	gh      = "https://github.com/imipolexg/completer"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	// custom Flags
	showVersion := flag.Bool("version", false, "Show current version")
	binaryDir := flag.String("data", "data/", "Directory containing the binary chunk files")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	configFile := flag.String("config", "", "Path to a config.toml (default: user config dir)")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of suggestions to return")
	minPrefix := flag.Int("prmin", defaultConfig.CLI.DefaultMinLen, "Minimum prefix length for suggestions (1 < n <= prmax)")
	maxPrefix := flag.Int("prmax", defaultConfig.CLI.DefaultMaxLen, "Maximum prefix length for suggestions")
	noFilter := flag.Bool("no-filter", defaultConfig.CLI.DefaultNoFilter, "Disable input filtering (DBG only) - serves all raw entries (numbers, symbols, etc)")
	wordLimit := flag.Int("words", defaultConfig.Index.MaxWords, "Maximum number of words to load (use 0 for all words)")
	chunkSize := flag.Int("chunk", defaultConfig.Index.ChunkSize, "Number of words per chunk for lazy loading")

	flag.Parse()

	if *showVersion {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    false,
			ReportTimestamp: false,
			Prefix:          "",
		})

		styles := log.DefaultStyles()

		styles.Values["version"] = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
			Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})

		styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})

		logger.SetStyles(styles)

		logger.Print("")
		logger.Print("[ Completer ] Serves really fast prefix completions!")
		logger.Print("", "version", Version)
		logger.Print("")
		logger.Print("use -h or --help to see available options")
		logger.Print("Github Repo", "gh", gh)

		os.Exit(0)
	}

	// Initialize path resolver for robust path handling
	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	// Pathfinder for bin dir
	resolvedDataDir, err := pathResolver.GetDataDir(*binaryDir)
	if err != nil {
		log.Fatalf("Failed to resolve data dir: (%v)", err)
	}

	log.Debugf("Using data dir at: %s", resolvedDataDir)
	log.Debugf("Init completer: maxWords=[%d], chunkSize=[%d]", *wordLimit, *chunkSize)

	completer := suggest.NewLazyCompleter(resolvedDataDir, *chunkSize, *wordLimit)

	if *binaryDir != "" {
		if err := completer.Initialize(); err != nil {
			log.Fatalf("Failed to init completer: %v", err)
		}
		log.Debug("Completer init done")
	} else {
		log.Warn("No binary dir specified, running with empty index...")
	}

	// CLI would be mainly used for testing and dbg purposes.
	// Any new features or changes should be tested in CLI mode first.
	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"minPrefix", *minPrefix,
			"maxPrefix", *maxPrefix,
			"limit", *limit,
			"noFilter", *noFilter)

		inputHandler := cli.NewInputHandler(completer, *minPrefix, *maxPrefix, *limit, *noFilter)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	appConfig, configPath, err := config.LoadConfigWithPriority(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(configPath))

	srv := server.NewServer(completer, appConfig, configPath)

	showStartupInfo(resolvedDataDir)

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dataDir string) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("===========")
	println(" Completer ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Infof("data dir: ( %s )", dataDir)
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
