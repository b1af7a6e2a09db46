package book

import (
	"fmt"
	"io"
)

// MoveRecord is one distinct move reported by Probe: the move itself,
// its stored weight, and result statistics aggregated across every
// record sharing (key, move) in the probed book.
type MoveRecord struct {
	Move       uint16
	Weight     uint16
	Games      int
	Wins       int
	Losses     int
	Draws      int
	PGNOffsets []uint64
}

// Probe locates key in a book file (sorted ascending by key, as Write
// produces) via binary search, then walks forward over every record
// sharing that key, grouping by move. Records for the same key are
// assumed contiguous-by-move, which holds because Sort/Normalize make
// move a tiebreaker. limit bounds how many PGN offsets are collected
// per move, after first discarding skip of them. Probe reports found
// = false without error when key is absent.
func Probe(r io.ReaderAt, size int64, key uint64, limit, skip int) (moves []MoveRecord, found bool, err error) {
	if size%EntrySize != 0 {
		return nil, false, fmt.Errorf("book: file size %d is not a multiple of %d", size, EntrySize)
	}
	count := size / EntrySize
	if count == 0 {
		return nil, false, nil
	}

	idx, ok, err := binarySearchKey(r, count, key)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	var buf [EntrySize]byte
	i := idx
	for i < count {
		e, err := readEntryAt(r, &buf, i)
		if err != nil {
			return nil, false, err
		}
		if e.Key != key {
			break
		}

		move := e.Move
		rec := MoveRecord{Move: move, Weight: e.Weight}
		skipRemaining := skip

		for i < count {
			e, err = readEntryAt(r, &buf, i)
			if err != nil {
				return nil, false, err
			}
			if e.Key != key || e.Move != move {
				break
			}

			result, ofs := UnpackLearn(e.Learn)
			switch result {
			case ResultWhiteWin:
				rec.Wins++
			case ResultBlackWin:
				rec.Losses++
			case ResultDraw:
				rec.Draws++
			}
			rec.Games++

			if skipRemaining > 0 {
				skipRemaining--
			} else if len(rec.PGNOffsets) < limit {
				rec.PGNOffsets = append(rec.PGNOffsets, ofs)
			}

			i++
		}

		moves = append(moves, rec)
	}

	return moves, true, nil
}

func readEntryAt(r io.ReaderAt, buf *[EntrySize]byte, idx int64) (Entry, error) {
	if _, err := r.ReadAt(buf[:], idx*EntrySize); err != nil {
		return Entry{}, err
	}
	return Decode(buf[:]), nil
}

// binarySearchKey finds the lowest index whose record's key equals
// target, returning ok=false if no record matches.
func binarySearchKey(r io.ReaderAt, count int64, target uint64) (int64, bool, error) {
	var buf [EntrySize]byte
	lo, hi := int64(0), count
	for lo < hi {
		mid := lo + (hi-lo)/2
		e, err := readEntryAt(r, &buf, mid)
		if err != nil {
			return 0, false, err
		}
		if e.Key < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo >= count {
		return 0, false, nil
	}
	e, err := readEntryAt(r, &buf, lo)
	if err != nil {
		return 0, false, err
	}
	if e.Key != target {
		return 0, false, nil
	}
	return lo, true, nil
}
