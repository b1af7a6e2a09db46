package pgn

import (
	"bytes"

	"github.com/rs/zerolog"
)

// Result is a game's outcome, coded the same way the PGN result token
// is: White win, Black win, draw, or unknown if no result token was
// ever seen.
type Result int8

const (
	ResultWhiteWin Result = 0
	ResultBlackWin Result = 1
	ResultDraw     Result = 2
	ResultUnknown  Result = 3
)

// getResult classifies the result token starting at data[i], looking
// back a couple of bytes to disambiguate "1-0" from "0-1" and to
// tolerate the "1 - 0" dialect.
func getResult(data []byte, i int) Result {
	switch data[i] {
	case '/':
		return ResultDraw
	case '0':
		return ResultBlackWin
	case '-':
		if i >= 1 && data[i-1] == '1' {
			return ResultWhiteWin
		}
		if i >= 2 && data[i-1] == ' ' && data[i-2] == '1' {
			return ResultWhiteWin
		}
		if i >= 1 && data[i-1] == '0' {
			return ResultBlackWin
		}
		if i >= 2 && data[i-1] == ' ' && data[i-2] == '0' {
			return ResultBlackWin
		}
	}
	return ResultUnknown
}

// Stats accumulates totals across an entire PGN archive.
type Stats struct {
	Games int64
	Moves int64
	Fixed int64
}

const (
	maxFENLen     = 256
	maxMovesLen   = 8 * 1024
	stateStackCap = 16
)

// GameHandler is invoked at every game boundary with the game's flat,
// zero-delimited SAN move buffer, its starting FEN (empty meaning the
// standard starting position), the byte offset where the game's text
// starts (0 for the first game, otherwise just past the previous
// committed game, so it can sit on blank lines before the game's first
// header tag), and the parsed result token. It returns the number of
// SAN tokens the replayer had to "fix" (recover from a file/rank
// qualifier that matched no legal move), which Parse folds into
// Stats.Fixed. Stats.Moves is
// not derived from the handler's return: it counts every SAN token the
// tokenizer itself lexes (END_MOVE), including null moves and moves in
// games the handler later fails to fully replay, matching moveCnt in
// the original parse_pgn.
type GameHandler func(moves []byte, fen []byte, gameOfs uint64, result Result) (fixed int)

// Parser runs the pushdown PGN tokenizer described by token.go and
// state.go over an in-memory buffer, invoking a GameHandler at each
// game boundary.
type Parser struct {
	log zerolog.Logger
}

// NewParser returns a Parser that logs recoverable errors (bad
// (state,token) transitions) to log. Unresolved SAN tokens are logged
// by replay.Replayer, not here.
func NewParser(log zerolog.Logger) *Parser {
	return &Parser{log: log}
}

// Parse scans data end to end, calling handle for every completed
// game, and returns accumulated stats. It never copies or mutates
// data; all scratch state lives in fixed-size buffers local to this
// call.
func (p *Parser) Parse(data []byte, handle GameHandler) Stats {
	var stats Stats

	var stateStack [stateStackCap]parserState
	sp := 0
	pushState := func(s parserState) {
		if sp < len(stateStack) {
			stateStack[sp] = s
			sp++
		}
	}
	popState := func() parserState {
		if sp == 0 {
			return stateHeader
		}
		sp--
		return stateStack[sp]
	}

	var fen [maxFENLen]byte
	fenEnd := 0

	var moves [maxMovesLen]byte
	end := 0

	result := ResultUnknown
	var gameOfs uint64
	stm := 0 // 0 = white, 1 = black
	state := stateHeader

	commitGame := func(i int, advance bool) {
		fx := handle(moves[:end], fen[:fenEnd], gameOfs, result)
		stats.Games++
		stats.Fixed += int64(fx)
		result = ResultUnknown
		if advance {
			gameOfs = uint64(i) + 1
		} else {
			gameOfs = uint64(i)
		}
		end, fenEnd = 0, 0
		state = stateHeader
		stm = 0
	}

	for i := 0; i < len(data); i++ {
		b := data[i]
		tk := classify(b)
		act := actionTable[state][tk]

		switch act {
		case actionFail:
			p.logFail(state, data, i)

		case actionContinue:

		case actionGameStart:
			if i >= 1 && bytes.HasPrefix(data[i-1:], []byte("[Event ")) {
				state = stateHeader
				i -= 2
			}

		case actionOpenTag:
			pushState(state)
			switch {
			case i+6 < len(data) && bytes.HasPrefix(data[i+1:], []byte("FEN \"")):
				i += 5
				state = stateFENTag
			case i+9 < len(data) && bytes.HasPrefix(data[i+1:], []byte("Variant ")) &&
				!bytes.HasPrefix(data[i+9:], []byte("\"Standard\"")):
				popState()
				state = stateSkipGame
			default:
				state = stateTag
			}

		case actionOpenBraceComment:
			pushState(state)
			state = stateBraceComment

		case actionReadFEN:
			if fenEnd < len(fen) {
				fen[fenEnd] = b
				fenEnd++
			}

		case actionCloseFENTag:
			state = stateTag
			if bytes.Contains(fen[:fenEnd], []byte(" b ")) {
				stm = 1
			}

		case actionOpenVariation:
			pushState(state)
			state = stateVariation

		case actionStartNAG:
			pushState(state)
			state = stateNumericAnnotationGlyph

		case actionPopState:
			state = popState()

		case actionStartMoveNumber:
			state = stateMoveNumber

		case actionStartNextSAN:
			state = stateNextSAN

		case actionCastleOrResult:
			if i+2 < len(data) && data[i+2] != '0' {
				result = getResult(data, i)
				state = stateResult
				continue
			}
			fallthrough

		case actionStartReadSAN:
			if b == '-' && (i+1 >= len(data) || data[i+1] != '-') {
				// A lone dash (not the null move "--") is the spaced
				// "1 - 0" / "0 - 1" result dialect.
				result = getResult(data, i)
				state = stateResult
				continue
			}
			if end < len(moves) {
				moves[end] = b
				end++
			}
			state = stateReadSAN

		case actionReadMoveChar:
			if end < len(moves) {
				moves[end] = b
				end++
			}

		case actionEndMove:
			stats.Moves++
			if end < len(moves) {
				moves[end] = 0
				end++
			}
			if stm == 0 {
				state = stateNextSAN
			} else {
				state = stateNextMove
			}
			stm ^= 1

		case actionStartResult:
			result = getResult(data, i)
			state = stateResult

		case actionEndGame:
			if b != '\n' {
				state = stateResult
				continue
			}
			commitGame(i, true)

		case actionTagInBrace:
			if !bytes.HasPrefix(data[i:], []byte("[Event ")) {
				continue
			}
			fallthrough

		case actionMissingResult:
			commitGame(i, false)
			pushState(state)
			state = stateTag
		}
	}

	if state != stateHeader && state != stateSkipGame && end > 0 {
		fx := handle(moves[:end], fen[:fenEnd], gameOfs, result)
		stats.Games++
		stats.Fixed += int64(fx)
	}

	return stats
}

// extractGameWindow bounds how far ExtractGame will scan forward from
// an offset looking for a game's end, large enough to hold any
// realistically-sized game's header and movetext.
const extractGameWindow = 1 << 20

// ExtractGame parses a single game out of data starting at or shortly
// after byte offset ofs, returning its SAN move buffer and FEN tag.
// Book entries store offsets 8-byte aligned (spec.md §9), so ofs may
// land a few bytes before the game's "[Event " header; ExtractGame
// scans a short distance forward to find it. ok is false if no game
// header turns up nearby or nothing parses out of the window.
func (p *Parser) ExtractGame(data []byte, ofs uint64) (moves []byte, fen []byte, ok bool) {
	start := int(ofs)
	if start < 0 || start >= len(data) {
		return nil, nil, false
	}

	const scanWindow = 32
	scanEnd := start + scanWindow
	if scanEnd > len(data) {
		scanEnd = len(data)
	}
	rel := bytes.Index(data[start:scanEnd], []byte("[Event "))
	if rel < 0 {
		return nil, nil, false
	}
	start += rel

	window := start + extractGameWindow
	if window > len(data) {
		window = len(data)
	}

	var gotMoves, gotFEN []byte
	found := false
	p.Parse(data[start:window], func(mv, f []byte, _ uint64, _ Result) int {
		if !found {
			gotMoves = append([]byte(nil), mv...)
			gotFEN = append([]byte(nil), f...)
			found = true
		}
		return 0
	})
	return gotMoves, gotFEN, found
}

func (p *Parser) logFail(state parserState, data []byte, i int) {
	end := i + 50
	if end > len(data) {
		end = len(data)
	}
	p.log.Warn().
		Str("state", state.String()).
		Str("context", string(data[i:end])).
		Msg("unexpected token")
}
