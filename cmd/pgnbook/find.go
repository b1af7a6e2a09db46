package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"pgnbook/book"
	"pgnbook/chess"
	"pgnbook/pgn"
	"pgnbook/replay"

	"github.com/rs/zerolog"
)

type moveJSON struct {
	Move       string   `json:"move"`
	Weight     uint16   `json:"weight"`
	Games      int      `json:"games"`
	Wins       int      `json:"wins"`
	Losses     int      `json:"losses"`
	Draws      int      `json:"draws"`
	PGNOffsets []uint64 `json:"pgn offsets"`
	Verified   []bool   `json:"verified,omitempty"`
}

type findResultJSON struct {
	FEN   string     `json:"fen"`
	Key   uint64     `json:"key"`
	Moves []moveJSON `json:"moves"`
}

// verifier dry-replays the game found at a probe's reported archive
// offset, confirming the offset lands inside a real, syntactically
// sound game rather than just trusting the approximate, 8-byte-aligned
// value PackLearn stored (spec.md §9).
type verifier struct {
	archive  *pgn.MappedFile
	parser   *pgn.Parser
	replayer *replay.Replayer
}

func (v *verifier) verify(ofs uint64) bool {
	moves, fen, ok := v.parser.ExtractGame(v.archive.Data, ofs)
	if !ok {
		return false
	}
	var pos *chess.Position
	if len(fen) > 0 {
		p, err := chess.FromFEN(string(fen))
		if err != nil {
			return false
		}
		pos = p
	} else {
		pos = chess.NewPosition()
	}
	_, replayOK := v.replayer.ReplayDryRun(pos, moves)
	return replayOK
}

// runFind implements the "find" verb: probe <book-path> for one or
// more FEN positions (a single FEN on the command line, or a batch
// supplied via --config) and print JSON results.
func runFind(args []string, log zerolog.Logger) error {
	if len(args) == 0 {
		return fmt.Errorf("pgnbook: missing book file name")
	}
	bookPath := args[0]
	if bookPath == "" {
		return fmt.Errorf("pgnbook: missing book file name")
	}
	rest := args[1:]

	var configPath, verifyPath string
	limit, skip := 10, 0
	var fenWords []string

	i := 0
	for i < len(rest) {
		switch rest[i] {
		case "--config":
			if i+1 >= len(rest) {
				return fmt.Errorf("pgnbook: --config requires a path")
			}
			configPath = rest[i+1]
			i += 2
		case "--verify":
			if i+1 >= len(rest) {
				return fmt.Errorf("pgnbook: --verify requires a PGN archive path")
			}
			verifyPath = rest[i+1]
			i += 2
		case "limit":
			if i+1 >= len(rest) {
				return fmt.Errorf("pgnbook: limit requires a value")
			}
			n, err := strconv.Atoi(rest[i+1])
			if err != nil {
				return fmt.Errorf("pgnbook: invalid limit %q: %w", rest[i+1], err)
			}
			limit = n
			i += 2
		case "skip":
			if i+1 >= len(rest) {
				return fmt.Errorf("pgnbook: skip requires a value")
			}
			n, err := strconv.Atoi(rest[i+1])
			if err != nil {
				return fmt.Errorf("pgnbook: invalid skip %q: %w", rest[i+1], err)
			}
			skip = n
			i += 2
		default:
			fenWords = append(fenWords, rest[i])
			i++
		}
	}

	if limit < 1 {
		return fmt.Errorf("pgnbook: limit must be greater than 0")
	}

	f, err := os.Open(bookPath)
	if err != nil {
		return fmt.Errorf("pgnbook: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return fmt.Errorf("pgnbook: %w", err)
	}

	var v *verifier
	if verifyPath != "" {
		archive, err := pgn.OpenMapped(verifyPath)
		if err != nil {
			return fmt.Errorf("pgnbook: %w", err)
		}
		defer archive.Close()
		v = &verifier{
			archive:  archive,
			parser:   pgn.NewParser(log),
			replayer: replay.NewReplayer(chess.NewPosition(), log),
		}
	}

	queries, err := loadQueries(configPath, strings.Join(fenWords, " "), limit, skip)
	if err != nil {
		return err
	}
	if len(queries) == 0 {
		return fmt.Errorf("pgnbook: missing FEN string")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "    ")

	if configPath == "" {
		result, err := probeOne(f, fi.Size(), queries[0], v)
		if err != nil {
			return err
		}
		return enc.Encode(result)
	}

	var results []findResultJSON
	for _, q := range queries {
		r, err := probeOne(f, fi.Size(), q, v)
		if err != nil {
			log.Warn().Err(err).Str("fen", q.FEN).Msg("skipping query")
			continue
		}
		results = append(results, r)
	}
	return enc.Encode(results)
}

func probeOne(f *os.File, size int64, q query, v *verifier) (findResultJSON, error) {
	pos, err := chess.FromFEN(q.FEN)
	if err != nil {
		return findResultJSON{}, fmt.Errorf("pgnbook: invalid FEN %q: %w", q.FEN, err)
	}
	key := pos.Key()

	recs, found, err := book.Probe(f, size, key, q.Limit, q.Skip)
	if err != nil {
		return findResultJSON{}, fmt.Errorf("pgnbook: %w", err)
	}

	result := findResultJSON{FEN: pos.FEN(), Key: key}
	if !found {
		return result, nil
	}

	for _, rec := range recs {
		mv := moveJSON{
			Move:       chess.DecodeUCI(pos, rec.Move),
			Weight:     rec.Weight,
			Games:      rec.Games,
			Wins:       rec.Wins,
			Losses:     rec.Losses,
			Draws:      rec.Draws,
			PGNOffsets: rec.PGNOffsets,
		}
		if v != nil {
			mv.Verified = make([]bool, len(rec.PGNOffsets))
			for i, ofs := range rec.PGNOffsets {
				mv.Verified[i] = v.verify(ofs)
			}
		}
		result.Moves = append(result.Moves, mv)
	}
	return result, nil
}
