package chess

import "testing"

func TestFromFENRoundTrip(t *testing.T) {
	cases := []string{
		StartFEN,
		"r1b1kbnr/pppp1ppp/2n5/4P3/1q6/5N2/PPPBPPPP/RN1QKB1R b KQkq - 6 5",
		"4k3/8/8/8/8/8/8/4K2R w K - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}

	for _, fen := range cases {
		t.Run(fen, func(t *testing.T) {
			p, err := FromFEN(fen)
			if err != nil {
				t.Fatalf("FromFEN: %v", err)
			}
			if got := p.FEN(); got != fen {
				t.Errorf("FEN() = %q, want %q", got, fen)
			}
		})
	}
}

func TestFromFENRejectsGarbage(t *testing.T) {
	cases := []string{
		"",
		"not a fen",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
	}
	for _, fen := range cases {
		t.Run(fen, func(t *testing.T) {
			if _, err := FromFEN(fen); err == nil {
				t.Errorf("FromFEN(%q): want error, got nil", fen)
			}
		})
	}
}

func TestDoMoveUndoMoveRestoresFEN(t *testing.T) {
	cases := []struct {
		fen  string
		move Move
	}{
		{StartFEN, Move{From: Square(12), To: Square(28)}},                              // e2e4
		{"4k3/8/8/8/8/8/8/4K2R w K - 0 1", Move{From: Square(4), To: Square(7), Castle: KingsideCastle}},
		{"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3", Move{From: Square(36), To: Square(43), EnPassant: true}},
		{"8/P7/8/8/8/8/8/4K2k w - - 0 1", Move{From: Square(48), To: Square(56), Promotion: Queen}},
	}

	for _, c := range cases {
		t.Run(c.fen, func(t *testing.T) {
			p, err := FromFEN(c.fen)
			if err != nil {
				t.Fatalf("FromFEN: %v", err)
			}
			u := p.DoMove(c.move)
			p.UndoMove(u)
			if got := p.FEN(); got != c.fen {
				t.Errorf("after DoMove/UndoMove FEN() = %q, want %q", got, c.fen)
			}
		})
	}
}

func TestDoNullMoveTogglesSideOnly(t *testing.T) {
	p := NewPosition()
	before := p.FEN()
	u := p.DoNullMove()
	if p.sideToMove != Black {
		t.Fatalf("side to move = %v, want Black", p.sideToMove)
	}
	p.UndoNullMove(u)
	if got := p.FEN(); got != before {
		t.Errorf("after DoNullMove/UndoNullMove FEN() = %q, want %q", got, before)
	}
}
