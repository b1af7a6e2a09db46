// Package replay turns a parsed game's SAN move stream into book
// entries by walking a chess position move by move.
package replay

import (
	"pgnbook/book"
	"pgnbook/chess"
	"pgnbook/pgn"

	"github.com/rs/zerolog"
)

// Replayer applies a game's SAN stream against a chess position,
// producing one book.Entry per non-null move played. It is safe to
// reuse across games; each call to Replay starts from a fresh clone
// of the root position.
type Replayer struct {
	root *chess.Position
	log  zerolog.Logger
}

// NewReplayer builds a Replayer whose games start from root unless a
// game supplies its own FEN tag. root is cloned per game, never
// mutated directly.
func NewReplayer(root *chess.Position, log zerolog.Logger) *Replayer {
	return &Replayer{root: root, log: log}
}

// Replay replays one game's zero-delimited SAN buffer (as produced by
// pgn.Parser) into book entries. fen, if non-empty, overrides the
// starting position. result and gameOfs are packed into each entry's
// learn field. It returns the number of moves successfully replayed
// and the number of SAN "fix" corrections applied; replay stops at
// the first SAN token with no legal match, discarding the rest of the
// game, per spec.
func (rp *Replayer) Replay(moves []byte, fen []byte, gameOfs uint64, result pgn.Result) (entries []book.Entry, movesReplayed, fixed int) {
	var pos *chess.Position
	if len(fen) > 0 {
		p, err := chess.FromFEN(string(fen))
		if err != nil {
			rp.log.Warn().Err(err).Str("fen", string(fen)).Msg("invalid FEN tag, using root position")
			pos = rp.root.Clone()
		} else {
			pos = p
		}
	} else {
		pos = rp.root.Clone()
	}

	learn := book.PackLearn(book.Result(result), gameOfs)

	for _, san := range splitSAN(moves) {
		if len(san) == 0 {
			continue
		}

		m, ok := chess.SANToMove(pos, san, &fixed)
		if !ok {
			sep := "..."
			if pos.SideToMove() == chess.White {
				sep = ""
			}
			rp.log.Warn().
				Str("san", sep+string(san)).
				Str("fen", pos.FEN()).
				Msg("no legal move matches SAN token")
			break
		}

		if m.Null {
			pos.DoNullMove()
			continue
		}

		entries = append(entries, book.Entry{
			Key:    pos.Key(),
			Move:   chess.Pack(m),
			Weight: 1,
			Learn:  learn,
		})
		movesReplayed++

		pos.DoMove(m)
	}

	return entries, movesReplayed, fixed
}

// ReplayDryRun walks a game's SAN stream starting from pos without
// recording book entries, reporting only how far the replay got
// before either running out of moves or hitting a SAN with no legal
// match. It is used to sanity-check a probe's reported archive offset
// against the bytes actually found there, not to build a book.
func (rp *Replayer) ReplayDryRun(pos *chess.Position, moves []byte) (movesReplayed int, ok bool) {
	pos = pos.Clone()
	var fixed int

	for _, san := range splitSAN(moves) {
		if len(san) == 0 {
			continue
		}
		m, matched := chess.SANToMove(pos, san, &fixed)
		if !matched {
			return movesReplayed, false
		}
		if m.Null {
			pos.DoNullMove()
			continue
		}
		pos.DoMove(m)
		movesReplayed++
	}

	return movesReplayed, true
}

// splitSAN splits a zero-delimited SAN buffer into its tokens.
func splitSAN(moves []byte) [][]byte {
	var out [][]byte
	start := 0
	for i, b := range moves {
		if b == 0 {
			out = append(out, moves[start:i])
			start = i + 1
		}
	}
	return out
}
