package book

import (
	"io"
	"sort"
)

// Sort orders entries ascending by key, then descending by weight,
// then descending by move — the book file's on-disk invariant.
func Sort(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Key != b.Key {
			return a.Key < b.Key
		}
		if a.Weight != b.Weight {
			return a.Weight > b.Weight
		}
		return a.Move > b.Move
	})
}

// Normalize groups entries by equal key and, for any group of more
// than two, rewrites each member's weight to its move's share of
// 0xFFFF within the group and re-sorts the group by (weight desc,
// move desc). Groups of two or fewer are left at their initial
// weight of 1. entries must already be Sort-ed by key.
func Normalize(entries []Entry) {
	start := 0
	for start < len(entries) {
		end := start + 1
		for end < len(entries) && entries[end].Key == entries[start].Key {
			end++
		}
		if end-start > 2 {
			normalizeGroup(entries[start:end])
		}
		start = end
	}
}

func normalizeGroup(group []Entry) {
	counts := make(map[uint16]int, len(group))
	for _, e := range group {
		counts[e.Move]++
	}
	n := len(group)
	for i := range group {
		group[i].Weight = uint16(counts[group[i].Move] * 0xFFFF / n)
	}
	sort.Slice(group, func(i, j int) bool {
		a, b := group[i], group[j]
		if a.Weight != b.Weight {
			return a.Weight > b.Weight
		}
		return a.Move > b.Move
	})
}

// Write emits entries (already Sort-ed and, if desired, Normalize-d)
// as a PolyGlot book to w. In full mode every entry is written; in
// deduplicated mode an entry is only written when its (Key, Move)
// pair differs from the previously written entry's. Write returns the
// number of bytes written.
func Write(w io.Writer, entries []Entry, full bool) (int64, error) {
	var buf [EntrySize]byte
	var written int64
	havePrev := false
	var prevKey uint64
	var prevMove uint16

	for _, e := range entries {
		if !full && havePrev && e.Key == prevKey && e.Move == prevMove {
			continue
		}
		e.Encode(buf[:])
		n, err := w.Write(buf[:])
		if err != nil {
			return written, err
		}
		written += int64(n)
		prevKey, prevMove, havePrev = e.Key, e.Move, true
	}

	return written, nil
}
