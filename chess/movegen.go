package chess

type delta struct{ file, rank int }

var (
	knightDeltas = []delta{
		{1, 2}, {2, 1}, {2, -1}, {1, -2},
		{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
	}
	bishopDeltas = []delta{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	rookDeltas   = []delta{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	kingDeltas   = append(append([]delta{}, bishopDeltas...), rookDeltas...)
)

// LegalMoves returns every legal move for the side to move, including
// all four promotion choices (knight, bishop, rook, queen) for pawn
// moves that reach the last rank.
func (p *Position) LegalMoves() []Move {
	pseudo := p.pseudoMoves()
	legal := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		if p.isLegal(m) {
			legal = append(legal, m)
		}
	}
	return legal
}

func (p *Position) isLegal(m Move) bool {
	u := p.DoMove(m)
	inCheck := p.InCheck(u.prevSide)
	p.UndoMove(u)
	return !inCheck
}

func (p *Position) InCheck(c Color) bool {
	k := p.kingSquare(c)
	if k == NoSquare {
		return false
	}
	return p.isAttacked(k, c.Other())
}

// IsMate reports checkmate for the side to move.
func (p *Position) IsMate() bool {
	return p.InCheck(p.sideToMove) && len(p.LegalMoves()) == 0
}

// IsStalemate reports stalemate for the side to move.
func (p *Position) IsStalemate() bool {
	return !p.InCheck(p.sideToMove) && len(p.LegalMoves()) == 0
}

func (p *Position) pseudoMoves() []Move {
	var moves []Move
	for sq := Square(0); sq < 64; sq++ {
		pc := p.board[sq]
		if pc.Type == NoPieceType || pc.Color != p.sideToMove {
			continue
		}
		switch pc.Type {
		case Pawn:
			moves = append(moves, p.pawnMoves(sq)...)
		case Knight:
			moves = append(moves, p.stepMoves(sq, knightDeltas)...)
		case Bishop:
			moves = append(moves, p.slideMoves(sq, bishopDeltas)...)
		case Rook:
			moves = append(moves, p.slideMoves(sq, rookDeltas)...)
		case Queen:
			moves = append(moves, p.slideMoves(sq, kingDeltas)...)
		case King:
			moves = append(moves, p.stepMoves(sq, kingDeltas)...)
			moves = append(moves, p.castleMoves(sq)...)
		}
	}
	return moves
}

func (p *Position) stepMoves(from Square, deltas []delta) []Move {
	var moves []Move
	ff, fr := from.File(), from.Rank()
	for _, d := range deltas {
		file, rank := ff+d.file, fr+d.rank
		if file < 0 || file > 7 || rank < 0 || rank > 7 {
			continue
		}
		to := squareFromFileRank(file, rank)
		target := p.board[to]
		if target.Type == NoPieceType || target.Color != p.sideToMove {
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}

func (p *Position) slideMoves(from Square, deltas []delta) []Move {
	var moves []Move
	ff, fr := from.File(), from.Rank()
	for _, d := range deltas {
		file, rank := ff+d.file, fr+d.rank
		for file >= 0 && file <= 7 && rank >= 0 && rank <= 7 {
			to := squareFromFileRank(file, rank)
			target := p.board[to]
			if target.Type == NoPieceType {
				moves = append(moves, Move{From: from, To: to})
			} else {
				if target.Color != p.sideToMove {
					moves = append(moves, Move{From: from, To: to})
				}
				break
			}
			file += d.file
			rank += d.rank
		}
	}
	return moves
}

func (p *Position) pawnMoves(from Square) []Move {
	var moves []Move
	file, rank := from.File(), from.Rank()

	dir, startRank, lastRank := 1, 1, 7
	if p.sideToMove == Black {
		dir, startRank, lastRank = -1, 6, 0
	}

	addWithPromotions := func(to Square) {
		if to.Rank() == lastRank {
			for _, pt := range []PieceType{Knight, Bishop, Rook, Queen} {
				moves = append(moves, Move{From: from, To: to, Promotion: pt})
			}
		} else {
			moves = append(moves, Move{From: from, To: to})
		}
	}

	oneRank := rank + dir
	if oneRank >= 0 && oneRank <= 7 {
		oneSquare := squareFromFileRank(file, oneRank)
		if p.board[oneSquare].Type == NoPieceType {
			addWithPromotions(oneSquare)
			if rank == startRank {
				twoSquare := squareFromFileRank(file, rank+2*dir)
				if p.board[twoSquare].Type == NoPieceType {
					moves = append(moves, Move{From: from, To: twoSquare})
				}
			}
		}

		for _, df := range [2]int{-1, 1} {
			cf := file + df
			if cf < 0 || cf > 7 {
				continue
			}
			to := squareFromFileRank(cf, oneRank)
			target := p.board[to]
			if target.Type != NoPieceType && target.Color != p.sideToMove {
				addWithPromotions(to)
			} else if to == p.epSquare {
				moves = append(moves, Move{From: from, To: to, EnPassant: true})
			}
		}
	}

	return moves
}

func (p *Position) castleMoves(kingSq Square) []Move {
	var moves []Move
	c := p.sideToMove

	try := func(right CastleRights, rookSq Square, emptySquares, attackCheckSquares []Square, side CastleSide) {
		if p.castling&right == 0 {
			return
		}
		if p.board[rookSq].Type != Rook || p.board[rookSq].Color != c {
			return
		}
		for _, sq := range emptySquares {
			if p.board[sq].Type != NoPieceType {
				return
			}
		}
		for _, sq := range attackCheckSquares {
			if p.isAttacked(sq, c.Other()) {
				return
			}
		}
		moves = append(moves, Move{From: kingSq, To: rookSq, Castle: side})
	}

	if c == White {
		try(WhiteKingside, Square(7), []Square{Square(5), Square(6)}, []Square{Square(4), Square(5), Square(6)}, KingsideCastle)
		try(WhiteQueenside, Square(0), []Square{Square(1), Square(2), Square(3)}, []Square{Square(4), Square(3), Square(2)}, QueensideCastle)
	} else {
		try(BlackKingside, Square(63), []Square{Square(61), Square(62)}, []Square{Square(60), Square(61), Square(62)}, KingsideCastle)
		try(BlackQueenside, Square(56), []Square{Square(57), Square(58), Square(59)}, []Square{Square(60), Square(59), Square(58)}, QueensideCastle)
	}

	return moves
}

// isAttacked reports whether sq is attacked by a piece of color by.
// Castling's empty-square-on-the-rook-side check is handled separately
// in castleMoves since b1/b8 may be attacked without blocking castling.
func (p *Position) isAttacked(sq Square, by Color) bool {
	file, rank := sq.File(), sq.Rank()

	pawnDir := 1
	if by == White {
		pawnDir = -1
	}
	for _, df := range [2]int{-1, 1} {
		pf, pr := file+df, rank+pawnDir
		if pf < 0 || pf > 7 || pr < 0 || pr > 7 {
			continue
		}
		pc := p.board[squareFromFileRank(pf, pr)]
		if pc.Type == Pawn && pc.Color == by {
			return true
		}
	}

	for _, d := range knightDeltas {
		f, r := file+d.file, rank+d.rank
		if f < 0 || f > 7 || r < 0 || r > 7 {
			continue
		}
		pc := p.board[squareFromFileRank(f, r)]
		if pc.Type == Knight && pc.Color == by {
			return true
		}
	}

	for _, d := range kingDeltas {
		f, r := file+d.file, rank+d.rank
		if f < 0 || f > 7 || r < 0 || r > 7 {
			continue
		}
		pc := p.board[squareFromFileRank(f, r)]
		if pc.Type == King && pc.Color == by {
			return true
		}
	}

	for _, d := range bishopDeltas {
		f, r := file+d.file, rank+d.rank
		for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
			pc := p.board[squareFromFileRank(f, r)]
			if pc.Type != NoPieceType {
				if pc.Color == by && (pc.Type == Bishop || pc.Type == Queen) {
					return true
				}
				break
			}
			f += d.file
			r += d.rank
		}
	}

	for _, d := range rookDeltas {
		f, r := file+d.file, rank+d.rank
		for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
			pc := p.board[squareFromFileRank(f, r)]
			if pc.Type != NoPieceType {
				if pc.Color == by && (pc.Type == Rook || pc.Type == Queen) {
					return true
				}
				break
			}
			f += d.file
			r += d.rank
		}
	}

	return false
}
