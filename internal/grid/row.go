package grid

import (
	"fmt"

	"hexpane/internal/store"
)

// Cell is one byte position in a formatted row. Blank cells pad the short
// final row of a file whose length is not a multiple of the row width;
// they carry no byte and must not be edited.
type Cell struct {
	Offset int64
	Text   string
	Blank  bool
}

// Row is the display form of one grid row: an offset label plus paired
// hex and ASCII cells. The two cell slices always have the same length
// and describe the same underlying bytes.
type Row struct {
	Index       int64
	Offset      int64
	OffsetLabel string
	HexCells    []Cell
	ASCIICells  []Cell
}

const placeholderGlyph = "."

// Glyph returns the display character for b: the character itself inside
// the printable ASCII range, '.' otherwise.
func Glyph(b byte) string {
	if b >= 0x20 && b <= 0x7E {
		return string(b)
	}
	return placeholderGlyph
}

// FormatRow renders row rowIndex of s as hex pairs and ASCII glyphs. It
// reads the store fresh on every call, so edits made since the last
// render always show up, and both columns reflect the same effective
// byte. Cells past end of file come back blank rather than reading past
// the end.
func FormatRow(s *store.Store, rowIndex int64, rowWidth int) Row {
	offset := rowIndex * int64(rowWidth)
	row := Row{
		Index:       rowIndex,
		Offset:      offset,
		OffsetLabel: fmt.Sprintf("%08X", offset),
		HexCells:    make([]Cell, rowWidth),
		ASCIICells:  make([]Cell, rowWidth),
	}

	for col := 0; col < rowWidth; col++ {
		off := offset + int64(col)
		if off >= s.Len() {
			row.HexCells[col] = Cell{Offset: off, Text: "  ", Blank: true}
			row.ASCIICells[col] = Cell{Offset: off, Text: " ", Blank: true}
			continue
		}
		b, err := s.ReadByte(off)
		if err != nil {
			// Unreachable given the bounds check above.
			row.HexCells[col] = Cell{Offset: off, Text: "  ", Blank: true}
			row.ASCIICells[col] = Cell{Offset: off, Text: " ", Blank: true}
			continue
		}
		row.HexCells[col] = Cell{Offset: off, Text: fmt.Sprintf("%02X", b)}
		row.ASCIICells[col] = Cell{Offset: off, Text: Glyph(b)}
	}

	return row
}
