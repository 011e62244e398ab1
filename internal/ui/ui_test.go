package ui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hexpane/internal/save"
)

func newTestModel(t *testing.T, data []byte) *Model {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.bin")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	m, err := NewModel(path, save.Disk{})
	require.NoError(t, err)

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_TypeHexPair(t *testing.T) {
	m := newTestModel(t, make([]byte, 32))

	m.Update(key("4"))
	assert.Equal(t, "4", m.pendingNibble)

	m.Update(key("2"))
	assert.Empty(t, m.pendingNibble)

	b, err := m.ctrl.Store().ReadByte(0)
	require.NoError(t, err)
	assert.Equal(t, byte(0x42), b)
	assert.Equal(t, int64(1), m.cursor, "cursor advances after a completed pair")
}

func TestModel_EscapeCancelsPendingNibble(t *testing.T) {
	m := newTestModel(t, make([]byte, 8))

	m.Update(key("f"))
	m.Update(tea.KeyMsg{Type: tea.KeyEscape})

	assert.Empty(t, m.pendingNibble)
	assert.False(t, m.ctrl.Store().Modified())
}

func TestModel_CursorNavigation(t *testing.T) {
	m := newTestModel(t, make([]byte, 64))

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, int64(16), m.cursor)

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, int64(17), m.cursor)

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, int64(1), m.cursor)

	// Clamped at the ends.
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlHome})
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Zero(t, m.cursor)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlEnd})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, int64(63), m.cursor)
}

func TestModel_CursorScrollsViewport(t *testing.T) {
	// 4096 bytes is 256 rows; the 30-line window shows 25 of them.
	m := newTestModel(t, make([]byte, 4096))

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlEnd})
	assert.Equal(t, int64(255), m.ctrl.RowForOffset(m.cursor))
	assert.Positive(t, m.ctrl.ScrollOffsetPx())

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlHome})
	assert.Zero(t, m.ctrl.ScrollOffsetPx())
}

func TestModel_ViewShowsEdit(t *testing.T) {
	m := newTestModel(t, make([]byte, 16))

	m.Update(key("4"))
	m.Update(key("2"))

	view := m.View()
	assert.Contains(t, view, "42")
	assert.Contains(t, view, "B")
	assert.Contains(t, view, "*1 edit(s)")
}

func TestModel_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roundtrip.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x00, 0x01}, 0o644))

	m, err := NewModel(path, save.Disk{})
	require.NoError(t, err)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	m.Update(key("f"))
	m.Update(key("f"))
	m.Update(key("s"))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0x01}, got)
	assert.Contains(t, m.statusMsg, "saved")
}

func TestModel_QuitConfirmsWithEdits(t *testing.T) {
	m := newTestModel(t, make([]byte, 4))

	m.Update(key("0"))
	m.Update(key("1"))
	m.Update(key("q"))

	assert.Equal(t, ViewConfirmQuit, m.view)

	m.Update(key("n"))
	assert.Equal(t, ViewMain, m.view)
}

func TestModel_GotoOffset(t *testing.T) {
	m := newTestModel(t, make([]byte, 256))

	m.Update(key("g"))
	require.Equal(t, ViewGoto, m.view)

	for _, ch := range []string{"0", "x", "4", "0"} {
		m.Update(key(ch))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, ViewMain, m.view)
	assert.Equal(t, int64(0x40), m.cursor)
}
