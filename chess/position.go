package chess

import (
	"fmt"
	"strconv"
	"strings"
)

const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// CastleRights is a 4-bit mask, bit order K,Q,k,q (matches the
// PolyGlot castling key offsets in zobrist.go).
type CastleRights uint8

const (
	WhiteKingside  CastleRights = 1 << 0
	WhiteQueenside CastleRights = 1 << 1
	BlackKingside  CastleRights = 1 << 2
	BlackQueenside CastleRights = 1 << 3
)

// Position is a mutable chess position. The zero value is not a legal
// position; use NewPosition or FromFEN.
type Position struct {
	board         [64]Piece
	sideToMove    Color
	castling      CastleRights
	epSquare      Square
	halfmoveClock int
	fullmove      int
}

// NewPosition returns the standard starting position.
func NewPosition() *Position {
	p, err := FromFEN(StartFEN)
	if err != nil {
		panic(err) // StartFEN is a compile-time constant, never invalid
	}
	return p
}

// Clone returns an independent copy. The replayer clones the shared
// root position into every game rather than aliasing it (spec.md §9).
func (p *Position) Clone() *Position {
	cp := *p
	return &cp
}

// FromFEN parses a FEN position string. Only the first four fields are
// required; halfmove clock and fullmove number default to 0 and 1.
func FromFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("chess: FEN %q has too few fields", fen)
	}
	for len(fields) < 6 {
		fields = append(fields, []string{"0", "1"}[len(fields)-4])
	}

	p := &Position{}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("chess: FEN %q does not have 8 ranks", fen)
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, c := range rankStr {
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			pt, color := pieceFromFENByte(byte(c))
			if pt == NoPieceType {
				return nil, fmt.Errorf("chess: FEN %q has invalid piece %q", fen, c)
			}
			if file > 7 {
				return nil, fmt.Errorf("chess: FEN %q rank %d overflows", fen, i)
			}
			p.board[squareFromFileRank(file, rank)] = Piece{Type: pt, Color: color}
			file++
		}
	}

	switch fields[1] {
	case "w":
		p.sideToMove = White
	case "b":
		p.sideToMove = Black
	default:
		return nil, fmt.Errorf("chess: FEN %q has invalid side to move %q", fen, fields[1])
	}

	for _, c := range fields[2] {
		switch c {
		case 'K':
			p.castling |= WhiteKingside
		case 'Q':
			p.castling |= WhiteQueenside
		case 'k':
			p.castling |= BlackKingside
		case 'q':
			p.castling |= BlackQueenside
		case '-':
		default:
			return nil, fmt.Errorf("chess: FEN %q has invalid castling field %q", fen, fields[2])
		}
	}

	if fields[3] == "-" {
		p.epSquare = NoSquare
	} else {
		sq, err := SquareFromString(fields[3])
		if err != nil {
			return nil, fmt.Errorf("chess: FEN %q has invalid en passant field: %w", fen, err)
		}
		p.epSquare = sq
	}

	p.halfmoveClock, _ = strconv.Atoi(fields[4])
	p.fullmove, _ = strconv.Atoi(fields[5])
	if p.fullmove == 0 {
		p.fullmove = 1
	}

	return p, nil
}

func pieceFromFENByte(b byte) (PieceType, Color) {
	color := White
	lb := b
	if b >= 'a' && b <= 'z' {
		color = Black
	} else {
		lb = b + ('a' - 'A')
	}
	switch lb {
	case 'p':
		return Pawn, color
	case 'n':
		return Knight, color
	case 'b':
		return Bishop, color
	case 'r':
		return Rook, color
	case 'q':
		return Queen, color
	case 'k':
		return King, color
	default:
		return NoPieceType, White
	}
}

// FEN renders the position back to Forsyth-Edwards notation.
func (p *Position) FEN() string {
	var sb strings.Builder
	for i := 7; i >= 0; i-- {
		blanks := 0
		for file := 0; file < 8; file++ {
			pc := p.board[squareFromFileRank(file, i)]
			if pc.Type == NoPieceType {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteByte(pc.byte())
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if i > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	castling := ""
	if p.castling&WhiteKingside != 0 {
		castling += "K"
	}
	if p.castling&WhiteQueenside != 0 {
		castling += "Q"
	}
	if p.castling&BlackKingside != 0 {
		castling += "k"
	}
	if p.castling&BlackQueenside != 0 {
		castling += "q"
	}
	if castling == "" {
		castling = "-"
	}
	sb.WriteString(castling)

	sb.WriteByte(' ')
	sb.WriteString(p.epSquare.String())

	fmt.Fprintf(&sb, " %d %d", p.halfmoveClock, p.fullmove)

	return sb.String()
}

func (p *Position) SideToMove() Color { return p.sideToMove }

func (p *Position) PieceAt(sq Square) Piece { return p.board[sq] }

func (p *Position) kingSquare(c Color) Square {
	for sq := Square(0); sq < 64; sq++ {
		pc := p.board[sq]
		if pc.Type == King && pc.Color == c {
			return sq
		}
	}
	return NoSquare
}

// Undo captures enough state to reverse a single DoMove/DoNullMove call.
type Undo struct {
	move          Move
	captured      Piece
	capturedAt    Square
	prevCastling  CastleRights
	prevEP        Square
	prevHalfmove  int
	prevFullmove  int
	prevSide      Color
}

// DoMove applies a move produced by SANToMove/LegalMoves and returns an
// Undo token by value. No undo stack is kept here; the replayer
// discards the token.
func (p *Position) DoMove(m Move) Undo {
	u := Undo{
		move:         m,
		prevCastling: p.castling,
		prevEP:       p.epSquare,
		prevHalfmove: p.halfmoveClock,
		prevFullmove: p.fullmove,
		prevSide:     p.sideToMove,
	}

	mover := p.board[m.From]

	if m.Castle != NoCastle {
		p.doCastle(m)
	} else {
		capturedAt := m.To
		if m.EnPassant {
			if mover.Color == White {
				capturedAt = m.To - 8
			} else {
				capturedAt = m.To + 8
			}
		}
		u.captured = p.board[capturedAt]
		u.capturedAt = capturedAt

		if m.EnPassant {
			p.board[capturedAt] = NoPiece
		}

		p.board[m.To] = mover
		p.board[m.From] = NoPiece

		if m.Promotion != NoPieceType {
			p.board[m.To] = Piece{Type: m.Promotion, Color: mover.Color}
		}
	}

	p.updateCastlingRights(m)

	p.epSquare = NoSquare
	if mover.Type == Pawn {
		diff := int(m.To) - int(m.From)
		if diff == 16 || diff == -16 {
			p.epSquare = Square((int(m.From) + int(m.To)) / 2)
		}
	}

	if mover.Type == Pawn || u.captured.Type != NoPieceType {
		p.halfmoveClock = 0
	} else {
		p.halfmoveClock++
	}

	if p.sideToMove == Black {
		p.fullmove++
	}
	p.sideToMove = p.sideToMove.Other()

	return u
}

func (p *Position) doCastle(m Move) {
	king := p.board[m.From]
	rook := p.board[m.To]

	var kingTo, rookTo Square
	if m.Castle == KingsideCastle {
		kingTo = m.From + 2
		rookTo = m.From + 1
	} else {
		kingTo = m.From - 2
		rookTo = m.From - 1
	}

	p.board[m.From] = NoPiece
	p.board[m.To] = NoPiece
	p.board[kingTo] = king
	p.board[rookTo] = rook
}

func (p *Position) updateCastlingRights(m Move) {
	clearIfTouched := func(sq Square, right CastleRights) {
		if m.From == sq || m.To == sq {
			p.castling &^= right
		}
	}
	clearIfTouched(Square(4), WhiteKingside|WhiteQueenside)
	clearIfTouched(Square(7), WhiteKingside)
	clearIfTouched(Square(0), WhiteQueenside)
	clearIfTouched(Square(60), BlackKingside|BlackQueenside)
	clearIfTouched(Square(63), BlackKingside)
	clearIfTouched(Square(56), BlackQueenside)
}

// UndoMove reverses the effect of the DoMove call that produced u. Only
// valid when called immediately after that DoMove (no intervening move).
func (p *Position) UndoMove(u Undo) {
	m := u.move
	p.castling = u.prevCastling
	p.epSquare = u.prevEP
	p.halfmoveClock = u.prevHalfmove
	p.fullmove = u.prevFullmove
	p.sideToMove = u.prevSide

	if m.Castle != NoCastle {
		var kingTo, rookTo Square
		if m.Castle == KingsideCastle {
			kingTo = m.From + 2
			rookTo = m.From + 1
		} else {
			kingTo = m.From - 2
			rookTo = m.From - 1
		}
		p.board[m.From] = p.board[kingTo]
		p.board[m.To] = p.board[rookTo]
		p.board[kingTo] = NoPiece
		p.board[rookTo] = NoPiece
		return
	}

	mover := p.board[m.To]
	if m.Promotion != NoPieceType {
		mover = Piece{Type: Pawn, Color: mover.Color}
	}
	p.board[m.From] = mover
	p.board[m.To] = NoPiece
	if u.captured.Type != NoPieceType {
		p.board[u.capturedAt] = u.captured
	}
}

// DoNullMove toggles side to move without changing the board, matching
// the Position::do_null_move contract consumed by the replayer.
func (p *Position) DoNullMove() Undo {
	u := Undo{
		move:         NullMove,
		prevCastling: p.castling,
		prevEP:       p.epSquare,
		prevHalfmove: p.halfmoveClock,
		prevFullmove: p.fullmove,
		prevSide:     p.sideToMove,
	}
	p.epSquare = NoSquare
	if p.sideToMove == Black {
		p.fullmove++
	}
	p.sideToMove = p.sideToMove.Other()
	return u
}

// UndoNullMove reverses DoNullMove.
func (p *Position) UndoNullMove(u Undo) {
	p.castling = u.prevCastling
	p.epSquare = u.prevEP
	p.halfmoveClock = u.prevHalfmove
	p.fullmove = u.prevFullmove
	p.sideToMove = u.prevSide
}
