package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"hexpane/internal/config"
	"hexpane/internal/grid"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type View int

const (
	ViewMain View = iota
	ViewHelp
	ViewGoto
	ViewOpen
	ViewSaveAs
	ViewConfirmQuit
)

// Model is the widget layer around the grid engine. It translates key
// and resize messages into controller events and paints the frames the
// controller hands back. All state changes happen inside Update, one
// message at a time.
type Model struct {
	ctrl   *grid.Controller
	saver  grid.Saver
	config *config.Config
	styles *config.Styles

	view   View
	cursor int64

	// pendingNibble holds the first of two typed hex digits.
	pendingNibble string

	width  int
	height int

	// Goto dialog state
	gotoInput string

	// Save As dialog state
	saveAsInput string

	// File browser state
	browserPath  string
	browserItems []os.DirEntry
	browserIndex int

	statusMsg string
	statusErr bool
}

// NewModel builds the UI around a fresh controller. When path is empty
// the file browser opens first.
func NewModel(path string, saver grid.Saver) (*Model, error) {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	m := &Model{
		ctrl: grid.NewController(grid.Config{
			RowWidth:     cfg.Grid.RowWidth,
			RowHeightPx:  1,
			OverscanRows: cfg.Grid.OverscanRows,
		}),
		saver:  saver,
		config: cfg,
		styles: config.NewStyles(&cfg.Theme),
	}

	if path == "" {
		m.view = ViewOpen
		cwd, _ := os.Getwd()
		m.browserPath = cwd
		m.loadBrowserItems()
	} else {
		if err := m.loadFile(path); err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
	}

	return m, nil
}

func (m *Model) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	m.ctrl.FileLoaded(path, data)
	m.cursor = 0
	m.pendingNibble = ""
	return nil
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ctrl.Resized(int64(m.visibleRows()))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Clear the status line on any key; handlers below may set it anew.
	m.statusMsg = ""
	m.statusErr = false

	switch m.view {
	case ViewHelp:
		return m.handleHelpKey(msg)
	case ViewGoto:
		return m.handleGotoKey(msg)
	case ViewOpen:
		return m.handleOpenKey(msg)
	case ViewSaveAs:
		return m.handleSaveAsKey(msg)
	case ViewConfirmQuit:
		return m.handleConfirmQuitKey(msg)
	default:
		return m.handleMainKey(msg)
	}
}

func (m *Model) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEscape {
		m.pendingNibble = ""
		return m, nil
	}

	if isHexChar(msg.String()) && m.ctrl.Store().Len() > 0 {
		m.typeNibble(msg.String())
		return m, nil
	}

	rowWidth := int64(m.ctrl.Config().RowWidth)

	switch msg.String() {
	// Navigation
	case "up":
		m.moveCursor(-rowWidth)
	case "down":
		m.moveCursor(rowWidth)
	case "left":
		m.moveCursor(-1)
	case "right":
		m.moveCursor(1)
	case "pgup":
		m.moveCursor(-int64(m.visibleRows()) * rowWidth)
	case "pgdown":
		m.moveCursor(int64(m.visibleRows()) * rowWidth)
	case "home":
		m.setCursor(m.ctrl.RowForOffset(m.cursor) * rowWidth)
	case "end":
		m.setCursor(m.ctrl.RowForOffset(m.cursor)*rowWidth + rowWidth - 1)
	case "ctrl+home":
		m.setCursor(0)
	case "ctrl+end":
		if m.ctrl.Store().Len() > 0 {
			m.setCursor(m.ctrl.Store().Len() - 1)
		}

	// Commands
	case "q", "Q":
		return m.tryQuit()
	case "h", "H":
		m.view = ViewHelp
	case "o", "O":
		m.view = ViewOpen
		cwd, _ := os.Getwd()
		m.browserPath = cwd
		m.loadBrowserItems()
	case "s", "S", "ctrl+s":
		m.doSave()
	case "w", "W":
		m.view = ViewSaveAs
		m.saveAsInput = m.ctrl.Store().Filename()
	case "g", "G":
		m.view = ViewGoto
		m.gotoInput = ""
	}

	return m, nil
}

// typeNibble accumulates two hex digits and delivers the completed pair
// as a cell edit. A rejected edit surfaces on the status line and leaves
// the byte untouched.
func (m *Model) typeNibble(char string) {
	if m.pendingNibble == "" {
		m.pendingNibble = char
		return
	}

	hexText := m.pendingNibble + char
	m.pendingNibble = ""

	if _, err := m.ctrl.CellEdited(m.cursor, hexText); err != nil {
		m.setError(fmt.Sprintf("Edit rejected: %v", err))
		return
	}
	m.moveCursor(1)
}

func (m *Model) setError(msg string) {
	m.statusMsg = msg
	m.statusErr = true
}

func (m *Model) setNotice(msg string) {
	m.statusMsg = msg
	m.statusErr = false
}

func (m *Model) moveCursor(delta int64) {
	m.setCursor(m.cursor + delta)
}

func (m *Model) setCursor(pos int64) {
	m.pendingNibble = ""
	if pos < 0 {
		pos = 0
	}
	maxPos := m.ctrl.Store().Len() - 1
	if maxPos < 0 {
		maxPos = 0
	}
	if pos > maxPos {
		pos = maxPos
	}
	m.cursor = pos
	m.ensureCursorVisible()
}

// ensureCursorVisible issues a scroll event when the cursor row has left
// the viewport.
func (m *Model) ensureCursorVisible() {
	cursorRow := m.ctrl.RowForOffset(m.cursor)
	first := m.ctrl.ScrollOffsetPx() // row height is one line
	vis := int64(m.visibleRows())

	if cursorRow < first {
		m.ctrl.Scrolled(cursorRow)
	} else if vis > 0 && cursorRow >= first+vis {
		m.ctrl.Scrolled(cursorRow - vis + 1)
	}
}

// visibleRows is the viewport height in grid rows: total height minus
// legend, badges, column header, and status line.
func (m *Model) visibleRows() int {
	rows := m.height - 5
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *Model) doSave() {
	if m.ctrl.Store().Filename() == "" {
		m.view = ViewSaveAs
		m.saveAsInput = ""
		return
	}
	if err := m.ctrl.SaveRequested(m.saver); err != nil {
		m.setError(fmt.Sprintf("Error saving: %v", err))
	} else {
		m.setNotice("File saved")
	}
}

func (m *Model) tryQuit() (tea.Model, tea.Cmd) {
	if m.ctrl.Store().Modified() {
		m.view = ViewConfirmQuit
		return m, nil
	}
	return m, tea.Quit
}

func (m *Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEscape || msg.String() == "h" || msg.String() == "H" {
		m.view = ViewMain
	}
	return m, nil
}

func (m *Model) handleGotoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.view = ViewMain
	case tea.KeyEnter:
		m.doGoto()
		m.view = ViewMain
	case tea.KeyBackspace:
		if len(m.gotoInput) > 0 {
			m.gotoInput = m.gotoInput[:len(m.gotoInput)-1]
		}
	default:
		char := msg.String()
		if len(char) == 1 && (isHexChar(char) || char == "x" || char == "X") {
			m.gotoInput += char
		}
	}
	return m, nil
}

func (m *Model) doGoto() {
	if m.gotoInput == "" {
		return
	}

	var offset int64
	input := strings.ToLower(m.gotoInput)
	if strings.HasPrefix(input, "0x") {
		offset, _ = strconv.ParseInt(input[2:], 16, 64)
	} else {
		offset, _ = strconv.ParseInt(input, 10, 64)
	}

	m.setCursor(offset)
}

func (m *Model) handleOpenKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		if m.ctrl.Store().Len() > 0 || m.ctrl.Store().Filename() != "" {
			m.view = ViewMain
		}
	case tea.KeyUp:
		if m.browserIndex > 0 {
			m.browserIndex--
		}
	case tea.KeyDown:
		if m.browserIndex < len(m.browserItems)-1 {
			m.browserIndex++
		}
	case tea.KeyEnter:
		return m.handleBrowserEnter()
	}
	return m, nil
}

func (m *Model) handleBrowserEnter() (tea.Model, tea.Cmd) {
	if m.browserIndex >= len(m.browserItems) {
		return m, nil
	}

	item := m.browserItems[m.browserIndex]
	path := filepath.Join(m.browserPath, item.Name())

	if item.IsDir() {
		m.browserPath = path
		m.loadBrowserItems()
		m.browserIndex = 0
		return m, nil
	}

	if err := m.loadFile(path); err != nil {
		m.setError(fmt.Sprintf("Error: %v", err))
	} else {
		m.view = ViewMain
	}
	return m, nil
}

func (m *Model) loadBrowserItems() {
	entries, err := os.ReadDir(m.browserPath)
	if err != nil {
		m.browserItems = nil
		return
	}

	var dirs, files []os.DirEntry
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e)
		} else {
			files = append(files, e)
		}
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name() < dirs[j].Name() })
	sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })

	m.browserItems = make([]os.DirEntry, 0, len(entries)+1)
	if m.browserPath != "/" {
		m.browserItems = append(m.browserItems, &parentDirEntry{})
	}
	m.browserItems = append(m.browserItems, dirs...)
	m.browserItems = append(m.browserItems, files...)
}

type parentDirEntry struct{}

func (p *parentDirEntry) Name() string               { return ".." }
func (p *parentDirEntry) IsDir() bool                { return true }
func (p *parentDirEntry) Type() os.FileMode          { return os.ModeDir }
func (p *parentDirEntry) Info() (os.FileInfo, error) { return nil, nil }

func (m *Model) handleSaveAsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.view = ViewMain
	case tea.KeyEnter:
		if m.saveAsInput != "" {
			m.ctrl.Store().SetFilename(m.saveAsInput)
			if err := m.ctrl.SaveRequested(m.saver); err != nil {
				m.setError(fmt.Sprintf("Error: %v", err))
			} else {
				m.setNotice("File saved")
				m.view = ViewMain
			}
		}
	case tea.KeyBackspace:
		if len(m.saveAsInput) > 0 {
			m.saveAsInput = m.saveAsInput[:len(m.saveAsInput)-1]
		}
	default:
		if len(msg.String()) == 1 || msg.String() == " " {
			m.saveAsInput += msg.String()
		}
	}
	return m, nil
}

func (m *Model) handleConfirmQuitKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return m, tea.Quit
	case "n", "N", "escape":
		m.view = ViewMain
	}
	return m, nil
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderLegend())
	b.WriteString("\n")

	switch m.view {
	case ViewHelp:
		b.WriteString(m.renderHelp())
	case ViewGoto:
		b.WriteString(m.renderGoto())
	case ViewOpen:
		b.WriteString(m.renderOpen())
	case ViewSaveAs:
		b.WriteString(m.renderSaveAs())
	case ViewConfirmQuit:
		b.WriteString(m.renderMainView())
		b.WriteString("\n")
		b.WriteString(m.renderConfirmDialog("Unsaved edits. Quit anyway? (Y/N)"))
	default:
		b.WriteString(m.renderMainView())
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(m.styles.StatusError.Render(m.statusMsg))
		} else {
			b.WriteString(m.styles.StatusInfo.Render(m.statusMsg))
		}
	}

	return b.String()
}

func (m *Model) renderLegend() string {
	var items []string

	hl := func(text string, highlightIdx int) string {
		var result strings.Builder
		for i, ch := range text {
			if i == highlightIdx {
				result.WriteString(m.styles.LegendHighlight.Render(string(ch)))
			} else {
				result.WriteString(m.styles.Legend.Render(string(ch)))
			}
		}
		return result.String()
	}

	items = append(items, hl("Quit", 0))
	items = append(items, hl("Help", 0))

	if m.view == ViewMain {
		items = append(items, hl("Open", 0))
		items = append(items, hl("Save", 0))
		items = append(items, hl("Write as", 0))
		items = append(items, hl("Goto", 0))
		items = append(items, m.styles.Legend.Render("type two hex digits to edit"))
	} else if m.view != ViewHelp {
		items = append(items, m.styles.LegendHighlight.Render("ESC")+" Back")
	}

	legend := strings.Join(items, m.styles.Legend.Render(" | "))
	return m.styles.Legend.Width(m.width).Render(legend)
}

func (m *Model) renderMainView() string {
	var b strings.Builder

	b.WriteString(m.renderBadges())
	b.WriteString("\n")

	if m.ctrl.Store().Len() == 0 && m.ctrl.Store().Filename() == "" {
		b.WriteString("\nNo file open. Press O to open a file.\n")
		return b.String()
	}

	b.WriteString(m.renderColumnHeader())
	b.WriteString("\n")
	b.WriteString(m.renderGrid())

	return b.String()
}

func (m *Model) renderBadges() string {
	s := m.ctrl.Store()

	name := s.Filename()
	if name == "" {
		name = "no file loaded"
	} else {
		name = filepath.Base(name)
	}

	parts := []string{
		m.styles.FilenameBadge.Render(name),
		m.styles.ByteCountBadge.Render(fmt.Sprintf("%d bytes", s.Len())),
	}
	if s.Modified() {
		parts = append(parts,
			m.styles.ModifiedBadge.Render(fmt.Sprintf("*%d edit(s)", s.EditCount())))
	}
	return strings.Join(parts, "  ")
}

// cellGap returns the spacing that follows column col, shared by the
// header and every grid row so the columns stay aligned.
func (m *Model) cellGap(col int) string {
	rowWidth := m.ctrl.Config().RowWidth
	if col >= rowWidth-1 {
		return ""
	}
	gap := " "
	if (col+1)%8 == 0 {
		gap = "   "
	} else if (col+1)%4 == 0 {
		gap = "  "
	}
	return gap
}

func (m *Model) renderColumnHeader() string {
	rowWidth := m.ctrl.Config().RowWidth
	cursorCol := int(m.cursor % int64(rowWidth))

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", 10))
	for i := 0; i < rowWidth; i++ {
		hex := fmt.Sprintf("%02X", i)
		if i == cursorCol {
			b.WriteString(m.styles.Cursor.Render(hex))
		} else {
			b.WriteString(m.styles.Header.Render(hex))
		}
		b.WriteString(m.cellGap(i))
	}
	return b.String()
}

// renderGrid paints the visible slice of the materialized window. The
// frame carries overscan rows on both sides; the viewport's first line
// sits (scrollOffset - TranslateY) rows into the block.
func (m *Model) renderGrid() string {
	frame := m.ctrl.Frame()
	if len(frame.Rows) == 0 {
		return ""
	}

	skip := m.ctrl.ScrollOffsetPx() - frame.Window.TranslateYPx
	vis := int64(m.visibleRows())

	var lines []string
	for i := skip; i < int64(len(frame.Rows)) && i < skip+vis; i++ {
		lines = append(lines, m.renderRow(frame.Rows[i]))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderRow(row grid.Row) string {
	s := m.ctrl.Store()
	cursorRow := m.ctrl.RowForOffset(m.cursor)

	var offsetLabel string
	if row.Index == cursorRow {
		offsetLabel = m.styles.Cursor.Render(row.OffsetLabel) + "  "
	} else {
		offsetLabel = m.styles.Offset.Render(row.OffsetLabel) + "  "
	}

	var hexLine, asciiLine strings.Builder
	for col, cell := range row.HexCells {
		hexText := cell.Text
		asciiText := row.ASCIICells[col].Text

		style := m.styles.Normal
		switch {
		case cell.Blank:
			// keep padding unstyled
		case cell.Offset == m.cursor:
			style = m.styles.Cursor
			if m.pendingNibble != "" {
				hexText = m.pendingNibble + "_"
			}
		case s.IsEdited(cell.Offset):
			style = m.styles.Edited
		}

		hexLine.WriteString(style.Render(hexText))
		asciiLine.WriteString(style.Render(asciiText))
		hexLine.WriteString(m.cellGap(col))
	}

	return offsetLabel + hexLine.String() + "  " + asciiLine.String()
}

func (m *Model) renderHelp() string {
	return `
HELP - hexpane

NAVIGATION
  Arrow keys      Move cursor
  PgUp/PgDown     Page up/down
  Home/End        Start/end of row
  Ctrl+Home/End   Start/end of file
  G               Goto offset

EDITING
  0-9, a-f        Type two hex digits to replace the byte under
                  the cursor; ESC cancels a half-typed pair.
                  Edits live in memory until saved.

FILE
  O               Open file (discards unsaved edits)
  S / Ctrl+S      Save
  W               Write to another file (Save As)
  Q               Quit

Press ESC or H to close this help screen.
`
}

func (m *Model) renderGoto() string {
	var b strings.Builder
	b.WriteString("\nGOTO OFFSET\n")
	b.WriteString("===========\n\n")
	b.WriteString("Offset: ")
	b.WriteString(m.gotoInput)
	b.WriteString("_\n\n")
	b.WriteString("(Prefix with 0x for hex offset)\n")
	b.WriteString("\nPress Enter to go, ESC to close\n")
	return b.String()
}

func (m *Model) renderOpen() string {
	var b strings.Builder
	b.WriteString("\nOPEN FILE\n")
	b.WriteString("=========\n\n")
	b.WriteString("Path: ")
	b.WriteString(m.browserPath)
	b.WriteString("\n\n")

	visibleItems := 15
	startIdx := 0
	if m.browserIndex >= visibleItems {
		startIdx = m.browserIndex - visibleItems + 1
	}

	for i := startIdx; i < len(m.browserItems) && i < startIdx+visibleItems; i++ {
		item := m.browserItems[i]
		prefix := "  "
		if i == m.browserIndex {
			prefix = "> "
		}
		name := item.Name()
		if item.IsDir() {
			name += "/"
		}
		b.WriteString(fmt.Sprintf("%s%s\n", prefix, name))
	}

	return b.String()
}

func (m *Model) renderSaveAs() string {
	var b strings.Builder
	b.WriteString("\nSAVE AS\n")
	b.WriteString("=======\n\n")
	b.WriteString("Filename: ")
	b.WriteString(m.saveAsInput)
	b.WriteString("_\n\n")
	b.WriteString("Press Enter to save, ESC to cancel\n")
	return b.String()
}

func (m *Model) renderConfirmDialog(message string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.config.Theme.BorderColor)).
		Padding(1, 2).
		Render(message)
}

func isHexChar(s string) bool {
	if len(s) != 1 {
		return false
	}
	c := s[0]
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
