package chess

import "testing"

func countMoves(t *testing.T, fen string) int {
	p, err := FromFEN(fen)
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	return len(p.LegalMoves())
}

func TestLegalMovesStartingPosition(t *testing.T) {
	if got, want := countMoves(t, StartFEN), 20; got != want {
		t.Errorf("legal moves from start = %d, want %d", got, want)
	}
}

func TestLegalMovesPinnedPieceCannotMove(t *testing.T) {
	// White rook on e2 is pinned to its own king by the black rook on e7;
	// moving it off the file would expose check and must not appear among
	// legal moves.
	p, err := FromFEN("4k3/4r3/8/8/8/8/4R3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	for _, m := range p.LegalMoves() {
		if m.From == Square(12) && m.To.File() != 4 {
			t.Errorf("pinned rook produced illegal off-file move %v", m)
		}
	}
}

func TestCastlingRequiresEmptyAndSafeSquares(t *testing.T) {
	// Queenside: b1 is attacked (by the black rook on b8) but empty, rook
	// path c1/d1 empty and unattacked — queenside castle must still be legal.
	p, err := FromFEN("1r2k3/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	var foundQueenside, foundKingside bool
	for _, m := range p.LegalMoves() {
		if m.Castle == QueensideCastle {
			foundQueenside = true
		}
		if m.Castle == KingsideCastle {
			foundKingside = true
		}
	}
	if !foundQueenside {
		t.Error("expected legal queenside castle")
	}
	if !foundKingside {
		t.Error("expected legal kingside castle")
	}
}

func TestCastlingBlockedWhenKingPassesThroughCheck(t *testing.T) {
	// Black rook on f8 covers f1, through which the white king must
	// pass to castle kingside; that castle must be illegal.
	p, err := FromFEN("5r2/8/8/8/8/8/8/4K2R w K - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	for _, m := range p.LegalMoves() {
		if m.Castle == KingsideCastle {
			t.Error("castling through check should be illegal")
		}
	}
}

func TestEnPassantCapture(t *testing.T) {
	p, err := FromFEN("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	var found bool
	for _, m := range p.LegalMoves() {
		if m.EnPassant {
			found = true
			if m.To != Square(43) {
				t.Errorf("en passant target = %v, want d6", m.To)
			}
		}
	}
	if !found {
		t.Error("expected an en passant capture among legal moves")
	}
}

func TestCheckmateDetection(t *testing.T) {
	// Fool's mate final position.
	p, err := FromFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	if !p.IsMate() {
		t.Error("expected checkmate")
	}
}

func TestStalemateDetection(t *testing.T) {
	p, err := FromFEN("k7/8/1Q6/8/8/8/8/7K b - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	if !p.IsStalemate() {
		t.Error("expected stalemate")
	}
}
