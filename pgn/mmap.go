//go:build unix

package pgn

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// MappedFile is a read-only memory mapping of a PGN archive. The
// parser walks Data by index and never copies it; Close unmaps it.
type MappedFile struct {
	Data []byte
	f    *os.File
}

// OpenMapped mmaps the named file read-only and shared, matching the
// original tool's map()/unmap() pair.
func OpenMapped(name string) (*MappedFile, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	size := fi.Size()
	if size == 0 {
		f.Close()
		return nil, fmt.Errorf("pgn: %s is empty", name)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("pgn: mmap %s: %w", name, err)
	}

	return &MappedFile{Data: data, f: f}, nil
}

// Close unmaps the region and closes the underlying file.
func (m *MappedFile) Close() error {
	err := unix.Munmap(m.Data)
	if cerr := m.f.Close(); err == nil {
		err = cerr
	}
	return err
}
