//go:build !unix

package pgn

import (
	"fmt"
	"os"
)

// MappedFile is a read-only view of a PGN archive. On non-unix
// platforms this falls back to reading the whole file into memory
// rather than mapping it.
type MappedFile struct {
	Data []byte
}

// OpenMapped reads the named file fully into memory.
func OpenMapped(name string) (*MappedFile, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("pgn: %s is empty", name)
	}
	return &MappedFile{Data: data}, nil
}

// Close releases the buffer. On this platform there is nothing to
// unmap; it exists to keep the call site platform-independent.
func (m *MappedFile) Close() error {
	m.Data = nil
	return nil
}
