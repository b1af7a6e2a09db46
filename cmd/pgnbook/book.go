package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pgnbook/book"
	"pgnbook/chess"
	"pgnbook/pgn"
	"pgnbook/replay"

	"github.com/rs/zerolog"
)

type statsJSON struct {
	Games              int64   `json:"Games"`
	Moves              int64   `json:"Moves"`
	IncorrectMoves     int64   `json:"Incorrect moves"`
	UniquePositionsPct int64   `json:"Unique positions (%)"`
	GamesPerSecond     int64   `json:"Games/second"`
	MovesPerSecond     int64   `json:"Moves/second"`
	MBytesPerSecond    float64 `json:"MBytes/second"`
	IndexSizeBytes     int64   `json:"Size of index file (bytes)"`
	BookFile           string  `json:"Book file"`
	ProcessingTimeMs   int64   `json:"Processing time (ms)"`
}

// runBook implements the "book" verb: ingest <pgn-path>, optionally
// "full" to retain every game's contribution, write <basename>.bin,
// and print JSON ingestion stats to stdout.
func runBook(args []string, log zerolog.Logger) error {
	if len(args) == 0 {
		return fmt.Errorf("pgnbook: missing PGN file name")
	}
	pgnPath := args[0]
	if pgnPath == "" {
		return fmt.Errorf("pgnbook: missing PGN file name")
	}
	full := len(args) > 1 && args[1] == "full"

	mapped, err := pgn.OpenMapped(pgnPath)
	if err != nil {
		return fmt.Errorf("pgnbook: %w", err)
	}
	defer mapped.Close()

	size := int64(len(mapped.Data))
	entries := make([]book.Entry, 0, 2*size/int64(book.EntrySize))

	root := chess.NewPosition()
	replayer := replay.NewReplayer(root, log)
	parser := pgn.NewParser(log)

	start := time.Now()
	stats := parser.Parse(mapped.Data, func(moves, fen []byte, gameOfs uint64, result pgn.Result) int {
		es, _, fixed := replayer.Replay(moves, fen, gameOfs, result)
		entries = append(entries, es...)
		return fixed
	})
	elapsedMs := time.Since(start).Milliseconds()
	if elapsedMs == 0 {
		elapsedMs = 1
	}

	book.Sort(entries)
	book.Normalize(entries)

	uniqueKeys := int64(0)
	for i, e := range entries {
		if i == 0 || e.Key != entries[i-1].Key {
			uniqueKeys++
		}
	}

	bookPath := strings.TrimSuffix(pgnPath, filepath.Ext(pgnPath)) + ".bin"
	out, err := os.Create(bookPath)
	if err != nil {
		return fmt.Errorf("pgnbook: %w", err)
	}
	bookSize, err := book.Write(out, entries, full)
	closeErr := out.Close()
	if err != nil {
		return fmt.Errorf("pgnbook: writing book: %w", err)
	}
	if closeErr != nil {
		return fmt.Errorf("pgnbook: %w", closeErr)
	}

	uniquePct := int64(0)
	if stats.Moves != 0 {
		uniquePct = 100 * uniqueKeys / stats.Moves
	}

	report := statsJSON{
		Games:              stats.Games,
		Moves:              stats.Moves,
		IncorrectMoves:     stats.Fixed,
		UniquePositionsPct: uniquePct,
		GamesPerSecond:     1000 * stats.Games / elapsedMs,
		MovesPerSecond:     1000 * stats.Moves / elapsedMs,
		MBytesPerSecond:    float64(size) / float64(elapsedMs) / 1000,
		IndexSizeBytes:     bookSize,
		BookFile:           bookPath,
		ProcessingTimeMs:   elapsedMs,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "    ")
	return enc.Encode(report)
}
