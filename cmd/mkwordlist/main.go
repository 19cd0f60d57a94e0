package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"

	"github.com/imipolexg/completer/internal/logger"
	"github.com/imipolexg/completer/pkg/wordlist"
)

// mkwordlist converts a plain-text word list into the chunked binary
// format the completer loads lazily.
func main() {
	input := flag.String("in", "", "Plain-text word list, one word per line")
	output := flag.String("out", "data", "Directory to write chunk files into")
	chunkSize := flag.Int("chunk", wordlist.DefaultChunkSize, "Words per chunk file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	flag.Parse()

	l := logger.New("mkwordlist")
	if *debugMode {
		l.SetLevel(log.DebugLevel)
	}

	if *input == "" {
		l.Error("No input file given, use -in <file>")
		flag.Usage()
		os.Exit(1)
	}

	format, err := wordlist.DetectFormat(*input)
	if err != nil {
		l.Fatalf("Unrecognized input %s: %v", *input, err)
	}
	if format != wordlist.FormatText {
		l.Fatal("Input is already a chunk file, expected a plain-text word list")
	}

	words, err := wordlist.ReadTextFile(*input)
	if err != nil {
		l.Fatalf("Reading %s: %v", *input, err)
	}
	if len(words) == 0 {
		l.Fatalf("No words found in %s", *input)
	}
	l.Debugf("Read %d words from %s", len(words), *input)

	chunks, err := wordlist.WriteChunks(*output, words, *chunkSize)
	if err != nil {
		l.Fatalf("Writing chunks: %v", err)
	}

	l.Printf("Wrote %d words into %d chunk files under %s", len(words), chunks, *output)
}
