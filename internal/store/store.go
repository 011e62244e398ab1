package store

import (
	"errors"
	"fmt"
)

// ErrOffsetOutOfRange is returned for reads and writes addressed outside
// [0, Len()).
var ErrOffsetOutOfRange = errors.New("offset out of range")

// Store holds the bytes of a loaded file plus a sparse overlay of edits.
// The loaded data is never mutated; every edit lands in the overlay, and
// readers see the overlay value wherever one exists. Export materializes
// the merged result.
type Store struct {
	filename string
	data     []byte
	edits    map[int64]byte
}

func New() *Store {
	return &Store{
		data:  make([]byte, 0),
		edits: make(map[int64]byte),
	}
}

// Load replaces the file contents and discards all pending edits. The
// store takes ownership of data. An empty slice is a valid file.
func (s *Store) Load(data []byte) {
	if data == nil {
		data = make([]byte, 0)
	}
	s.data = data
	s.edits = make(map[int64]byte)
}

func (s *Store) Filename() string {
	return s.filename
}

func (s *Store) SetFilename(name string) {
	s.filename = name
}

func (s *Store) Len() int64 {
	return int64(len(s.data))
}

// Modified reports whether any edit is pending. Saving does not clear
// edits; they clear only when a new file is loaded.
func (s *Store) Modified() bool {
	return len(s.edits) > 0
}

func (s *Store) EditCount() int {
	return len(s.edits)
}

// IsEdited reports whether offset carries an overlay value.
func (s *Store) IsEdited(offset int64) bool {
	_, ok := s.edits[offset]
	return ok
}

// ReadByte returns the effective byte at offset: the overlay value if one
// exists, otherwise the loaded byte.
func (s *Store) ReadByte(offset int64) (byte, error) {
	if offset < 0 || offset >= int64(len(s.data)) {
		return 0, fmt.Errorf("read at %d (len %d): %w", offset, len(s.data), ErrOffsetOutOfRange)
	}
	if v, ok := s.edits[offset]; ok {
		return v, nil
	}
	return s.data[offset], nil
}

// WriteByte records value at offset in the overlay. The loaded data is
// left untouched.
func (s *Store) WriteByte(offset int64, value byte) error {
	if offset < 0 || offset >= int64(len(s.data)) {
		return fmt.Errorf("write at %d (len %d): %w", offset, len(s.data), ErrOffsetOutOfRange)
	}
	s.edits[offset] = value
	return nil
}

// Export returns a copy of the file with every pending edit applied. The
// returned slice is detached from the store, so edits arriving after the
// call do not alter bytes already handed out.
func (s *Store) Export() []byte {
	out := make([]byte, len(s.data))
	copy(out, s.data)
	for off, v := range s.edits {
		out[off] = v
	}
	return out
}
