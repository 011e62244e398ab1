package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ReadWrite(t *testing.T) {
	t.Run("write then read returns the written value", func(t *testing.T) {
		s := New()
		s.Load([]byte{0x00, 0x11, 0x22, 0x33})

		for off := int64(0); off < s.Len(); off++ {
			require.NoError(t, s.WriteByte(off, 0xAB))
			got, err := s.ReadByte(off)
			require.NoError(t, err)
			assert.Equal(t, byte(0xAB), got)
		}
	})

	t.Run("read falls through to loaded data when unedited", func(t *testing.T) {
		s := New()
		s.Load([]byte{0xDE, 0xAD})

		got, err := s.ReadByte(1)
		require.NoError(t, err)
		assert.Equal(t, byte(0xAD), got)
	})

	t.Run("rejects out of range offsets", func(t *testing.T) {
		s := New()
		s.Load([]byte{0x01, 0x02})

		for _, off := range []int64{-1, 2, 100} {
			_, err := s.ReadByte(off)
			assert.ErrorIs(t, err, ErrOffsetOutOfRange, "read at %d", off)

			err = s.WriteByte(off, 0xFF)
			assert.ErrorIs(t, err, ErrOffsetOutOfRange, "write at %d", off)
		}
		assert.False(t, s.Modified(), "rejected writes must not dirty the store")
	})

	t.Run("empty store rejects every read", func(t *testing.T) {
		s := New()
		_, err := s.ReadByte(0)
		assert.ErrorIs(t, err, ErrOffsetOutOfRange)
	})
}

func TestStore_Export(t *testing.T) {
	t.Run("no edits yields the loaded bytes", func(t *testing.T) {
		data := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
		s := New()
		s.Load(data)

		assert.Equal(t, data, s.Export())
	})

	t.Run("edits are applied at their offsets", func(t *testing.T) {
		s := New()
		s.Load([]byte{0x00, 0x00, 0x00})
		require.NoError(t, s.WriteByte(1, 0x7F))

		assert.Equal(t, []byte{0x00, 0x7F, 0x00}, s.Export())
	})

	t.Run("returned slice is a snapshot", func(t *testing.T) {
		s := New()
		s.Load([]byte{0x10, 0x20})

		snap := s.Export()
		require.NoError(t, s.WriteByte(0, 0xFF))

		assert.Equal(t, []byte{0x10, 0x20}, snap)
	})

	t.Run("empty file exports empty", func(t *testing.T) {
		s := New()
		s.Load(nil)
		assert.Empty(t, s.Export())
		assert.Zero(t, s.Len())
	})
}

func TestStore_Load(t *testing.T) {
	t.Run("loading a new file discards prior edits", func(t *testing.T) {
		s := New()
		s.Load([]byte{0xAA, 0xBB})
		require.NoError(t, s.WriteByte(0, 0x00))
		require.True(t, s.Modified())

		s.Load([]byte{0xCC, 0xDD})

		assert.False(t, s.Modified())
		assert.Zero(t, s.EditCount())
		assert.Equal(t, []byte{0xCC, 0xDD}, s.Export())
	})
}

func TestStore_Modified(t *testing.T) {
	s := New()
	s.Load([]byte{0x01})
	assert.False(t, s.Modified())
	assert.False(t, s.IsEdited(0))

	require.NoError(t, s.WriteByte(0, 0x02))
	assert.True(t, s.Modified())
	assert.True(t, s.IsEdited(0))
	assert.Equal(t, 1, s.EditCount())

	// Overwriting the same offset stays a single overlay entry.
	require.NoError(t, s.WriteByte(0, 0x03))
	assert.Equal(t, 1, s.EditCount())
}
