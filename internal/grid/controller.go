package grid

import (
	"errors"
	"fmt"
	"strconv"

	"hexpane/internal/store"
)

// ErrInvalidByteValue is returned when edit text does not parse as
// exactly two hexadecimal digits.
var ErrInvalidByteValue = errors.New("invalid byte value")

// Saver hands an exported byte sequence to whatever actually persists
// it. The controller never retries a failed hand-off.
type Saver interface {
	Save(filename string, data []byte) error
}

// Config fixes the grid geometry. RowHeightPx is 1 for terminal targets,
// where a row occupies one screen line.
type Config struct {
	RowWidth     int
	RowHeightPx  int
	OverscanRows int
}

const (
	DefaultRowWidth     = 16
	DefaultOverscanRows = 8
)

func (c Config) withDefaults() Config {
	if c.RowWidth < 1 {
		c.RowWidth = DefaultRowWidth
	}
	if c.RowHeightPx < 1 {
		c.RowHeightPx = 1
	}
	if c.OverscanRows < 0 {
		c.OverscanRows = DefaultOverscanRows
	}
	return c
}

// Frame is the output of one render pass: the window geometry plus the
// formatted rows for [Window.StartRow, Window.EndRow).
type Frame struct {
	Window Window
	Rows   []Row
}

// Controller wires the store, formatter, and window math together. It is
// purely reactive: each event method mutates what it must, recomputes
// the window, and returns the frame the caller should paint. Not safe
// for concurrent use; drive it from a single event loop.
type Controller struct {
	store            *store.Store
	cfg              Config
	scrollOffsetPx   int64
	viewportHeightPx int64
}

func NewController(cfg Config) *Controller {
	return &Controller{
		store: store.New(),
		cfg:   cfg.withDefaults(),
	}
}

func (c *Controller) Store() *store.Store {
	return c.store
}

func (c *Controller) Config() Config {
	return c.cfg
}

func (c *Controller) ScrollOffsetPx() int64 {
	return c.scrollOffsetPx
}

func (c *Controller) ViewportHeightPx() int64 {
	return c.viewportHeightPx
}

// TotalRows is ceil(length / rowWidth).
func (c *Controller) TotalRows() int64 {
	w := int64(c.cfg.RowWidth)
	return (c.store.Len() + w - 1) / w
}

// RowForOffset returns the row index containing the given byte offset.
func (c *Controller) RowForOffset(offset int64) int64 {
	return offset / int64(c.cfg.RowWidth)
}

// Frame recomputes the current window and formats its rows. It reads the
// store fresh, so it always reflects the latest edits.
func (c *Controller) Frame() Frame {
	win := ComputeWindow(c.TotalRows(), int64(c.cfg.RowHeightPx),
		c.viewportHeightPx, c.scrollOffsetPx, int64(c.cfg.OverscanRows))

	rows := make([]Row, 0, win.Rows())
	for r := win.StartRow; r < win.EndRow; r++ {
		rows = append(rows, FormatRow(c.store, r, c.cfg.RowWidth))
	}
	return Frame{Window: win, Rows: rows}
}

// FileLoaded replaces the store contents, drops any pending edits, and
// resets the scroll position to the top.
func (c *Controller) FileLoaded(name string, data []byte) Frame {
	c.store.Load(data)
	c.store.SetFilename(name)
	c.scrollOffsetPx = 0
	return c.Frame()
}

// Scrolled records a new scroll position, clamped to the content extent.
func (c *Controller) Scrolled(offsetPx int64) Frame {
	c.scrollOffsetPx = ClampScroll(offsetPx, c.TotalRows(),
		int64(c.cfg.RowHeightPx), c.viewportHeightPx)
	return c.Frame()
}

// Resized records a new viewport height and re-clamps the unchanged
// scroll position against it.
func (c *Controller) Resized(heightPx int64) Frame {
	if heightPx < 0 {
		heightPx = 0
	}
	c.viewportHeightPx = heightPx
	c.scrollOffsetPx = ClampScroll(c.scrollOffsetPx, c.TotalRows(),
		int64(c.cfg.RowHeightPx), c.viewportHeightPx)
	return c.Frame()
}

// CellEdited parses hexText as a byte and writes it at offset, returning
// the re-rendered row containing the edit. On any failure the store is
// left unchanged and the error reports why: ErrInvalidByteValue for bad
// text, store.ErrOffsetOutOfRange for a bad offset.
func (c *Controller) CellEdited(offset int64, hexText string) (Row, error) {
	value, err := ParseByte(hexText)
	if err != nil {
		return Row{}, err
	}
	if err := c.store.WriteByte(offset, value); err != nil {
		return Row{}, err
	}
	return FormatRow(c.store, c.RowForOffset(offset), c.cfg.RowWidth), nil
}

// SaveRequested exports the effective bytes and hands them to the saver
// under the store's current filename. The export is snapshotted before
// the hand-off, so later edits cannot alter what the saver received.
func (c *Controller) SaveRequested(saver Saver) error {
	name := c.store.Filename()
	if err := saver.Save(name, c.store.Export()); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

// ParseByte parses exactly two hexadecimal digits into a byte value.
func ParseByte(hexText string) (byte, error) {
	if len(hexText) != 2 || !isHexDigit(hexText[0]) || !isHexDigit(hexText[1]) {
		return 0, fmt.Errorf("%q is not two hex digits: %w", hexText, ErrInvalidByteValue)
	}
	v, err := strconv.ParseUint(hexText, 16, 8)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", hexText, ErrInvalidByteValue)
	}
	return byte(v), nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
