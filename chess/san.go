package chess

import "strings"

// SANToMove matches a single zero-delimited SAN token (as already
// isolated by the parser's READ_SAN state) against pos's legal moves.
// It returns (NullMove, true) for the null-move token "--", the
// matching legal move and true on success, or the zero Move and false
// if no legal move matches even after relaxing disambiguation, or if
// several legal moves match the token.
//
// fixed is incremented whenever the token's file/rank qualifier matches
// no legal move but exactly one legal move remains once the qualifier
// is ignored. A token that omits a required qualifier (e.g. two knights
// can reach the same square) matches several moves and is not fixed.
func SANToMove(pos *Position, san []byte, fixed *int) (Move, bool) {
	s := string(san)
	if s == "--" {
		return NullMove, true
	}

	if isCastleToken(s) {
		side := KingsideCastle
		if isQueensideCastleToken(s) {
			side = QueensideCastle
		}
		for _, m := range pos.LegalMoves() {
			if m.Castle == side {
				return m, true
			}
		}
		return Move{}, false
	}

	tok, ok := parseSANToken(s)
	if !ok {
		return Move{}, false
	}

	legal := pos.LegalMoves()

	candidates := filterSANCandidates(pos, legal, tok, true)
	if len(candidates) == 1 {
		return candidates[0], true
	}

	if len(candidates) == 0 {
		relaxed := filterSANCandidates(pos, legal, tok, false)
		if len(relaxed) == 1 {
			*fixed++
			return relaxed[0], true
		}
	}

	return Move{}, false
}

type sanToken struct {
	piece       PieceType
	to          Square
	disambFile  int // -1 if absent
	disambRank  int // -1 if absent
	promotion   PieceType
}

func isCastleToken(s string) bool {
	switch s {
	case "O-O", "0-0", "O-O+", "0-0+", "O-O#", "0-0#":
		return true
	}
	return isQueensideCastleToken(s)
}

func isQueensideCastleToken(s string) bool {
	switch s {
	case "O-O-O", "0-0-0", "O-O-O+", "0-0-0+", "O-O-O#", "0-0-0#":
		return true
	}
	return false
}

// parseSANToken extracts piece type, destination square, optional
// disambiguation, and optional promotion from a SAN move token. It
// tolerates the capture marker 'x' and check/mate suffixes, neither of
// which affects matching.
func parseSANToken(s string) (sanToken, bool) {
	s = strings.TrimRight(s, "+#!?")
	if s == "" {
		return sanToken{}, false
	}

	tok := sanToken{disambFile: -1, disambRank: -1}

	if eq := strings.IndexByte(s, '='); eq >= 0 {
		if eq+1 >= len(s) {
			return sanToken{}, false
		}
		tok.promotion = pieceTypeFromLetter(s[eq+1])
		s = s[:eq]
	}

	tok.piece = Pawn
	i := 0
	if isPieceLetter(s[0]) {
		tok.piece = pieceTypeFromLetter(s[0])
		i = 1
	}

	s = s[i:]
	s = strings.ReplaceAll(s, "x", "")
	s = strings.ReplaceAll(s, "X", "")

	if len(s) < 2 {
		return sanToken{}, false
	}

	dest, err := SquareFromString(s[len(s)-2:])
	if err != nil {
		return sanToken{}, false
	}
	tok.to = dest

	for _, c := range s[:len(s)-2] {
		switch {
		case c >= 'a' && c <= 'h':
			tok.disambFile = int(c - 'a')
		case c >= '1' && c <= '8':
			tok.disambRank = int(c - '1')
		default:
			return sanToken{}, false
		}
	}

	return tok, true
}

func isPieceLetter(b byte) bool {
	switch b {
	case 'N', 'B', 'R', 'Q', 'K':
		return true
	}
	return false
}

func pieceTypeFromLetter(b byte) PieceType {
	switch b {
	case 'N':
		return Knight
	case 'B':
		return Bishop
	case 'R':
		return Rook
	case 'Q':
		return Queen
	case 'K':
		return King
	default:
		return NoPieceType
	}
}

// filterSANCandidates narrows legal moves to those matching tok. When
// strict is true, an explicit file/rank qualifier in tok must match
// the moving piece's origin square; when false, qualifiers are
// ignored, the relaxation SANToMove uses to recover from an
// under-disambiguated token.
func filterSANCandidates(pos *Position, legal []Move, tok sanToken, strict bool) []Move {
	var out []Move
	for _, m := range legal {
		if m.Castle != NoCastle || m.Null {
			continue
		}
		if m.To != tok.to {
			continue
		}
		if m.Promotion != tok.promotion {
			continue
		}
		if pos.PieceAt(m.From).Type != tok.piece {
			continue
		}
		if strict {
			if tok.disambFile >= 0 && m.From.File() != tok.disambFile {
				continue
			}
			if tok.disambRank >= 0 && m.From.Rank() != tok.disambRank {
				continue
			}
		}
		out = append(out, m)
	}
	return out
}

// MoveToSAN renders m as SAN against pos, which must be the position
// m was generated from (i.e. before DoMove is applied). The +/# suffix
// reflects whether the resulting position leaves the opponent in
// check or checkmate.
func MoveToSAN(pos *Position, m Move) string {
	if m.Null {
		return "--"
	}

	var sb strings.Builder

	if m.Castle == KingsideCastle {
		sb.WriteString("O-O")
	} else if m.Castle == QueensideCastle {
		sb.WriteString("O-O-O")
	} else {
		mover := pos.PieceAt(m.From)
		capture := pos.PieceAt(m.To).Type != NoPieceType || m.EnPassant

		if mover.Type == Pawn {
			if capture {
				sb.WriteByte('a' + byte(m.From.File()))
				sb.WriteByte('x')
			}
			sb.WriteString(m.To.String())
			if m.Promotion != NoPieceType {
				sb.WriteByte('=')
				sb.WriteByte(pieceLetter(m.Promotion))
			}
		} else {
			sb.WriteByte(pieceLetter(mover.Type))
			sb.WriteString(disambiguation(pos, m))
			if capture {
				sb.WriteByte('x')
			}
			sb.WriteString(m.To.String())
		}
	}

	u := pos.DoMove(m)
	inCheck := pos.InCheck(pos.sideToMove)
	mate := inCheck && len(pos.LegalMoves()) == 0
	pos.UndoMove(u)

	if mate {
		sb.WriteByte('#')
	} else if inCheck {
		sb.WriteByte('+')
	}

	return sb.String()
}

func pieceLetter(pt PieceType) byte {
	switch pt {
	case Knight:
		return 'N'
	case Bishop:
		return 'B'
	case Rook:
		return 'R'
	case Queen:
		return 'Q'
	case King:
		return 'K'
	default:
		return 0
	}
}

// disambiguation returns the minimal file/rank/square qualifier needed
// to distinguish m from other legal moves of the same piece type to
// the same destination.
func disambiguation(pos *Position, m Move) string {
	mover := pos.PieceAt(m.From)
	var sameFile, sameRank, any int
	for _, other := range pos.LegalMoves() {
		if other.To != m.To || other.From == m.From {
			continue
		}
		op := pos.PieceAt(other.From)
		if op.Type != mover.Type || op.Color != mover.Color {
			continue
		}
		any++
		if other.From.File() == m.From.File() {
			sameFile++
		}
		if other.From.Rank() == m.From.Rank() {
			sameRank++
		}
	}
	if any == 0 {
		return ""
	}
	if sameFile == 0 {
		return string('a' + byte(m.From.File()))
	}
	if sameRank == 0 {
		return m.From.String()[1:]
	}
	return m.From.String()
}

// DecodeUCI renders a PolyGlot packed move as UCI (e.g. "e2e4",
// "e7e8q"), resolving the packed promotion field and the "king
// captures rook" castling convention against the board context in
// pos, mirroring what a book probe reports for a move it read back
// off disk.
func DecodeUCI(pos *Position, packed uint16) string {
	from, to, promoField := UnpackRaw(packed)

	mover := pos.PieceAt(from)
	if mover.Type == King {
		if to.File() > from.File() && to.Rank() == from.Rank() && pos.PieceAt(to).Type == Rook {
			kingTo := squareFromFileRank(from.File()+2, from.Rank())
			return from.String() + kingTo.String()
		}
		if to.File() < from.File() && to.Rank() == from.Rank() && pos.PieceAt(to).Type == Rook {
			kingTo := squareFromFileRank(from.File()-2, from.Rank())
			return from.String() + kingTo.String()
		}
	}

	s := from.String() + to.String()
	if mover.Type == Pawn && (to.Rank() == 7 || to.Rank() == 0) {
		pt := pieceTypeFromPromotionIndex(int(promoField) + 1)
		if pt != NoPieceType {
			s += strings.ToLower(string(pieceLetter(pt)))
		}
	}
	return s
}
