package book

import (
	"bytes"
	"testing"
)

func buildTestBook(t *testing.T, entries []Entry, full bool) *bytes.Reader {
	t.Helper()
	Sort(entries)
	Normalize(entries)
	var buf bytes.Buffer
	if _, err := Write(&buf, entries, full); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestProbeFindsAllMovesForKey(t *testing.T) {
	entries := []Entry{
		{Key: 42, Move: 0xAAAA, Weight: 1, Learn: PackLearn(ResultWhiteWin, 0)},
		{Key: 42, Move: 0xBBBB, Weight: 1, Learn: PackLearn(ResultBlackWin, 8)},
		{Key: 99, Move: 0xCCCC, Weight: 1, Learn: PackLearn(ResultDraw, 16)},
	}
	r := buildTestBook(t, entries, true)

	moves, found, err := Probe(r, r.Size(), 42, 10, 0)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if !found {
		t.Fatal("expected key 42 to be found")
	}
	if len(moves) != 2 {
		t.Fatalf("got %d moves, want 2", len(moves))
	}
}

func TestProbeMissingKeyNotFound(t *testing.T) {
	entries := []Entry{
		{Key: 42, Move: 1, Weight: 1, Learn: PackLearn(ResultDraw, 0)},
	}
	r := buildTestBook(t, entries, true)

	_, found, err := Probe(r, r.Size(), 7, 10, 0)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if found {
		t.Error("expected key 7 to be absent")
	}
}

func TestProbeAggregatesResultsAndOffsets(t *testing.T) {
	entries := []Entry{
		{Key: 1, Move: 0xAAAA, Weight: 1, Learn: PackLearn(ResultWhiteWin, 0)},
		{Key: 1, Move: 0xAAAA, Weight: 1, Learn: PackLearn(ResultWhiteWin, 800)},
		{Key: 1, Move: 0xAAAA, Weight: 1, Learn: PackLearn(ResultDraw, 1600)},
	}
	r := buildTestBook(t, entries, true)

	moves, found, err := Probe(r, r.Size(), 1, 10, 0)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if !found {
		t.Fatal("expected key 1 to be found")
	}
	if len(moves) != 1 {
		t.Fatalf("got %d distinct moves, want 1", len(moves))
	}
	m := moves[0]
	if m.Games != 3 || m.Wins != 2 || m.Draws != 1 {
		t.Errorf("aggregated = %+v, want games=3 wins=2 draws=1", m)
	}
	if len(m.PGNOffsets) != 3 {
		t.Errorf("pgn offsets = %v, want 3 entries", m.PGNOffsets)
	}
}

func TestProbeRespectsLimitAndSkip(t *testing.T) {
	entries := make([]Entry, 0, 5)
	for i := uint64(0); i < 5; i++ {
		entries = append(entries, Entry{Key: 1, Move: 1, Weight: 1, Learn: PackLearn(ResultDraw, i*8)})
	}
	r := buildTestBook(t, entries, true)

	moves, found, err := Probe(r, r.Size(), 1, 2, 1)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if !found {
		t.Fatal("expected key 1 to be found")
	}
	if len(moves) != 1 {
		t.Fatalf("got %d moves, want 1", len(moves))
	}
	if moves[0].Games != 5 {
		t.Errorf("games = %d, want 5", moves[0].Games)
	}
	if len(moves[0].PGNOffsets) != 2 {
		t.Errorf("pgn offsets = %v, want 2 (limit), skipped first", moves[0].PGNOffsets)
	}
}
