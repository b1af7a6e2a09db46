package chess

import "testing"

func TestKeyDeterministic(t *testing.T) {
	p1 := NewPosition()
	p2 := NewPosition()
	if p1.Key() != p2.Key() {
		t.Error("two fresh starting positions produced different keys")
	}
}

func TestKeyChangesAcrossMoveAndRestoresOnUndo(t *testing.T) {
	p := NewPosition()
	before := p.Key()
	u := p.DoMove(Move{From: Square(12), To: Square(28)})
	after := p.Key()
	if after == before {
		t.Error("key did not change after a move")
	}
	p.UndoMove(u)
	if got := p.Key(); got != before {
		t.Errorf("key after undo = %#x, want %#x", got, before)
	}
}

func TestKeyDistinguishesCastlingRights(t *testing.T) {
	withRights, err := FromFEN("4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	withoutRights, err := FromFEN("4k3/8/8/8/8/8/8/4K2R w - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	if withRights.Key() == withoutRights.Key() {
		t.Error("castling rights did not affect the key")
	}
}

func TestKeyDistinguishesSideToMove(t *testing.T) {
	white, err := FromFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	black, err := FromFEN("4k3/8/8/8/8/8/8/4K3 b - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	if white.Key() == black.Key() {
		t.Error("side to move did not affect the key")
	}
}
