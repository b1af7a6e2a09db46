package chess

import "testing"

func TestSANToMoveBasic(t *testing.T) {
	cases := []struct {
		fen  string
		san  string
		from Square
		to   Square
	}{
		{StartFEN, "e4", Square(12), Square(28)},
		{StartFEN, "Nf3", Square(6), Square(21)},
		{"rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2", "exd5", Square(28), Square(35)},
	}

	for _, c := range cases {
		t.Run(c.san, func(t *testing.T) {
			p, err := FromFEN(c.fen)
			if err != nil {
				t.Fatalf("FromFEN: %v", err)
			}
			var fixed int
			m, ok := SANToMove(p, []byte(c.san), &fixed)
			if !ok {
				t.Fatalf("SANToMove(%q): no match", c.san)
			}
			if m.From != c.from || m.To != c.to {
				t.Errorf("SANToMove(%q) = {From:%v To:%v}, want {From:%v To:%v}", c.san, m.From, m.To, c.from, c.to)
			}
		})
	}
}

func TestSANToMoveNullMove(t *testing.T) {
	p := NewPosition()
	var fixed int
	m, ok := SANToMove(p, []byte("--"), &fixed)
	if !ok || !m.Null {
		t.Fatalf("SANToMove(\"--\") = %v, %v, want null move, true", m, ok)
	}
}

func TestSANToMoveCastling(t *testing.T) {
	p, err := FromFEN("4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	var fixed int
	m, ok := SANToMove(p, []byte("O-O"), &fixed)
	if !ok || m.Castle != KingsideCastle {
		t.Fatalf("SANToMove(\"O-O\") = %v, %v, want kingside castle", m, ok)
	}
}

func TestSANToMoveAmbiguousWithoutDisambiguationFails(t *testing.T) {
	// Two white knights can both reach d2; "Nd2" alone is ambiguous and
	// there's no unique relaxed match either, so it should fail rather
	// than silently pick one.
	p, err := FromFEN("4k3/8/8/8/8/8/8/1N1K1N2 w - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	var fixed int
	if _, ok := SANToMove(p, []byte("Nd2"), &fixed); ok {
		t.Error("expected ambiguous SAN with no unique match to fail")
	}
}

func TestSANToMoveUnqualifiedWhenOtherPathBlocked(t *testing.T) {
	// Two rooks on the same rank and an unqualified token, but only the
	// a1 rook can reach b1: the h1 rook's path is blocked by the king.
	p, err := FromFEN("4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	var fixed int
	m, ok := SANToMove(p, []byte("Rb1"), &fixed)
	if !ok {
		t.Fatalf("SANToMove(\"Rb1\"): no match")
	}
	if m.From != Square(0) {
		t.Errorf("SANToMove(\"Rb1\").From = %v, want a1", m.From)
	}
}

func TestMoveToSANPawnPush(t *testing.T) {
	p := NewPosition()
	m := Move{From: Square(12), To: Square(28)}
	if got, want := MoveToSAN(p, m), "e4"; got != want {
		t.Errorf("MoveToSAN = %q, want %q", got, want)
	}
}

func TestDecodeUCIPromotion(t *testing.T) {
	p, err := FromFEN("8/P7/8/8/8/8/8/4K2k w - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	m := Move{From: Square(48), To: Square(56), Promotion: Queen}
	packed := Pack(m)
	if got, want := DecodeUCI(p, packed), "a7a8q"; got != want {
		t.Errorf("DecodeUCI = %q, want %q", got, want)
	}
}
