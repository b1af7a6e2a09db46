package chess

import "testing"

func TestPackUnpackRoundTrip(t *testing.T) {
	cases := []Move{
		{From: Square(12), To: Square(28)},
		{From: Square(6), To: Square(21)},
		{From: Square(48), To: Square(56), Promotion: Queen},
		{From: Square(8), To: Square(0), Promotion: Knight},
	}

	for _, m := range cases {
		packed := Pack(m)
		from, to, promoField := UnpackRaw(packed)
		if from != m.From || to != m.To {
			t.Errorf("Pack/UnpackRaw(%v): got From=%v To=%v", m, from, to)
		}
		if m.Promotion != NoPieceType {
			if got := pieceTypeFromPromotionIndex(int(promoField) + 1); got != m.Promotion {
				t.Errorf("Pack/UnpackRaw(%v): promotion = %v, want %v", m, got, m.Promotion)
			}
		}
	}
}

func TestPromotionIndexRoundTrip(t *testing.T) {
	for idx := 1; idx <= 4; idx++ {
		pt := pieceTypeFromPromotionIndex(idx)
		if got := promotionIndex(pt); got != idx {
			t.Errorf("promotionIndex(pieceTypeFromPromotionIndex(%d)) = %d, want %d", idx, got, idx)
		}
	}
}

func TestSquareStringRoundTrip(t *testing.T) {
	for _, s := range []string{"a1", "h1", "a8", "h8", "e4", "d5"} {
		sq, err := SquareFromString(s)
		if err != nil {
			t.Fatalf("SquareFromString(%q): %v", s, err)
		}
		if got := sq.String(); got != s {
			t.Errorf("SquareFromString(%q).String() = %q", s, got)
		}
	}
}
