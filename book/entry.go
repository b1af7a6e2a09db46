// Package book implements the PolyGlot-compatible binary opening book:
// the 16-byte record format, the sort/normalize/dedup pass that turns
// a raw entry table into a book file, and the probe reader used by
// lookups.
package book

import "encoding/binary"

// EntrySize is the fixed on-disk width of a book record.
const EntrySize = 16

// Entry is one book record: a PolyGlot-compatible (key, move, weight,
// learn) tuple. Learn packs the game result in its top 2 bits and the
// source archive's byte offset (shifted right 3) in the low 30.
type Entry struct {
	Key    uint64
	Move   uint16
	Weight uint16
	Learn  uint32
}

// Result is the outcome encoded in an Entry's learn field.
type Result uint8

const (
	ResultWhiteWin Result = 0
	ResultBlackWin Result = 1
	ResultDraw     Result = 2
	ResultUnknown  Result = 3
)

// PackLearn builds the learn field for a game ending in result, whose
// first header tag starts at byte offset gameOfs in the source
// archive. The offset is stored 8-byte-aligned, so probes only
// recover an approximate position and must scan for the enclosing
// game themselves.
func PackLearn(result Result, gameOfs uint64) uint32 {
	return uint32(result&3)<<30 | uint32((gameOfs>>3)&0x3FFFFFFF)
}

// UnpackLearn reverses PackLearn.
func UnpackLearn(learn uint32) (result Result, gameOfs uint64) {
	result = Result(learn>>30) & 3
	gameOfs = uint64(learn&0x3FFFFFFF) << 3
	return
}

// Encode writes e as 16 big-endian bytes into dst, which must be at
// least EntrySize long.
func (e Entry) Encode(dst []byte) {
	binary.BigEndian.PutUint64(dst[0:8], e.Key)
	binary.BigEndian.PutUint16(dst[8:10], e.Move)
	binary.BigEndian.PutUint16(dst[10:12], e.Weight)
	binary.BigEndian.PutUint32(dst[12:16], e.Learn)
}

// Decode reads an Entry out of a 16-byte big-endian record.
func Decode(src []byte) Entry {
	return Entry{
		Key:    binary.BigEndian.Uint64(src[0:8]),
		Move:   binary.BigEndian.Uint16(src[8:10]),
		Weight: binary.BigEndian.Uint16(src[10:12]),
		Learn:  binary.BigEndian.Uint32(src[12:16]),
	}
}
