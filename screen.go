package termview

import (
	"io"

	"github.com/danielgatis/go-ansicode"
)

// Ensure Screen implements ansicode.Handler
var _ ansicode.Handler = (*Screen)(nil)

// TerminalMode is a bitmask of terminal behavior flags.
type TerminalMode uint32

const (
	// ModeCursorKeys enables cursor key mode (DECCKM).
	ModeCursorKeys TerminalMode = 1 << iota
	// ModeColumnMode enables 132-column mode.
	ModeColumnMode
	// ModeInsert shifts characters right instead of overwriting.
	ModeInsert
	// ModeOrigin makes cursor positioning relative to the scroll region.
	ModeOrigin
	// ModeLineWrap enables automatic line wrapping at column boundaries.
	ModeLineWrap
	// ModeBlinkingCursor enables blinking cursor.
	ModeBlinkingCursor
	// ModeLineFeedNewLine makes line feed also move to column 0.
	ModeLineFeedNewLine
	// ModeShowCursor makes the cursor visible.
	ModeShowCursor
	// ModeReportMouseClicks enables mouse click reporting.
	ModeReportMouseClicks
	// ModeReportCellMouseMotion enables cell-based mouse motion reporting.
	ModeReportCellMouseMotion
	// ModeReportAllMouseMotion enables reporting of all mouse motion.
	ModeReportAllMouseMotion
	// ModeReportFocusInOut enables focus in/out event reporting.
	ModeReportFocusInOut
	// ModeUTF8Mouse enables UTF-8 mouse encoding.
	ModeUTF8Mouse
	// ModeSGRMouse enables SGR mouse encoding.
	ModeSGRMouse
	// ModeAlternateScroll enables alternate scroll mode.
	ModeAlternateScroll
	// ModeUrgencyHints enables urgency hints.
	ModeUrgencyHints
	// ModeSwapScreenAndSetRestoreCursor swaps to the alternate screen and
	// saves the cursor; unsetting restores both.
	ModeSwapScreenAndSetRestoreCursor
	// ModeBracketedPaste enables bracketed paste mode.
	ModeBracketedPaste
	// ModeKeypadApplication enables application keypad mode.
	ModeKeypadApplication
)

const (
	// DefaultRows is the default viewport height.
	DefaultRows = 24
	// DefaultCols is the default viewport width.
	DefaultCols = 80
	// DefaultScrollRatio is the fraction of the viewport height one page
	// scroll moves by.
	DefaultScrollRatio = 0.5
)

// BellHandler receives bell events (BEL characters in the stream).
type BellHandler interface {
	Ring()
}

// TitleHandler receives window title changes (OSC 0/1/2).
type TitleHandler interface {
	SetTitle(title string)
}

// Logger receives optional diagnostics. The default discards everything.
type Logger func(format string, args ...any)

// Screen owns the mutable state one terminal session renders from: the
// live cell grid, the scrollback history with its paging offset, the
// cursor, and the set of rows changed since the last render pass.
//
// Screen is not safe for concurrent use. Feed, Resize, paging and the
// render pass are serialized by the owning Session; the decoder invokes
// the ansicode.Handler methods synchronously from within Feed.
type Screen struct {
	rows int
	cols int

	grid      *Grid
	altGrid   *Grid
	activeAlt bool

	history *History
	dirty   *DirtySet
	cursor  *Cursor

	ratio float64

	// Current SGR attribute template applied to new input.
	template Cell

	savedCursor   *SavedCursor
	charsets      [4]Charset
	activeCharset int

	scrollTop    int
	scrollBottom int

	modes TerminalMode

	title      string
	titleStack []string

	keyboardModes   []ansicode.KeyboardMode
	modifyOtherKeys ansicode.ModifyOtherKeys

	decoder *ansicode.Decoder

	// Set while a render pass is consuming the dirty set; Feed refuses to
	// mutate mid-pass.
	syncing bool

	response io.Writer
	bell     BellHandler
	titleFn  TitleHandler
	logf     Logger
}

// NewScreen creates a screen with the given viewport size and scrollback
// depth. The page-scroll step is ratio*rows, minimum one line.
func NewScreen(rows, cols, scrollback int, ratio float64) *Screen {
	if rows <= 0 {
		rows = DefaultRows
	}
	if cols <= 0 {
		cols = DefaultCols
	}
	if ratio <= 0 || ratio > 1 {
		ratio = DefaultScrollRatio
	}

	s := &Screen{
		rows:    rows,
		cols:    cols,
		history: NewHistory(scrollback),
		dirty:   NewDirtySet(),
		cursor:  NewCursor(),
		ratio:   ratio,
		logf:    func(string, ...any) {},
	}

	s.grid = NewGrid(rows, cols, s.dirty, s.history)
	// The alternate grid never feeds scrollback.
	s.altGrid = NewGrid(rows, cols, s.dirty, nil)
	s.template = NewCell()
	s.scrollBottom = rows
	s.modes = ModeLineWrap | ModeShowCursor
	s.decoder = ansicode.NewDecoder(s)

	return s
}

// activeGrid returns the grid mutations currently target.
func (s *Screen) activeGrid() *Grid {
	if s.activeAlt {
		return s.altGrid
	}
	return s.grid
}

// Rows returns the viewport height.
func (s *Screen) Rows() int { return s.rows }

// Cols returns the viewport width.
func (s *Screen) Cols() int { return s.cols }

// CursorPos returns the current cursor position (row, col), 0-based.
func (s *Screen) CursorPos() (int, int) {
	return s.cursor.Row, s.cursor.Col
}

// CursorVisible returns true if the cursor should be shown.
func (s *Screen) CursorVisible() bool {
	return s.cursor.Visible
}

// Title returns the current window title.
func (s *Screen) Title() string { return s.title }

// HasMode returns true if the given mode flag is enabled.
func (s *Screen) HasMode(mode TerminalMode) bool {
	return s.modes&mode != 0
}

// History exposes the scrollback for inspection (size, position).
func (s *Screen) History() *History { return s.history }

// Dirty exposes the dirty-row set.
func (s *Screen) Dirty() *DirtySet { return s.dirty }

// Cell returns the cell at (row, col) of the active grid, or nil if out
// of bounds.
func (s *Screen) Cell(row, col int) *Cell {
	return s.activeGrid().Cell(row, col)
}

// Feed decodes raw terminal output and applies the resulting cell and
// cursor mutations. The paging offset is forced back to live first, so a
// detached history view never interleaves with fresh output. Feeding
// from inside a render pass (a ViewBuffer callback) fails with
// ErrConcurrentMutation.
func (s *Screen) Feed(data []byte) (int, error) {
	if s.syncing {
		return 0, ErrConcurrentMutation
	}
	s.ScrollToBottom()
	return s.decoder.Write(data)
}

// Resize changes the viewport dimensions. Every row index up to
// max(rows, previousRows) is marked dirty: grown rows need rendering and
// rows beyond a shrunk bound need deletion edits. The cursor is clamped
// into the new bounds.
func (s *Screen) Resize(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		return
	}

	s.ScrollToBottom()

	prev := s.rows
	dirtyRows := rows
	if prev > dirtyRows {
		dirtyRows = prev
	}
	s.dirty.MarkRange(0, dirtyRows)

	s.rows = rows
	s.cols = cols
	s.grid.Resize(rows, cols)
	s.altGrid.Resize(rows, cols)

	s.cursor.Row = clamp(s.cursor.Row, 0, rows-1)
	s.cursor.Col = clamp(s.cursor.Col, 0, cols-1)

	s.scrollTop = 0
	s.scrollBottom = rows
}

// pageStep returns how many rows one page scroll moves by.
func (s *Screen) pageStep() int {
	step := int(float64(s.rows) * s.ratio)
	if step < 1 {
		step = 1
	}
	return step
}

// pageBy moves the paging offset and, if it actually moved, marks the
// whole viewport dirty since every displayed row may have changed.
func (s *Screen) pageBy(delta int) {
	before := s.history.Position()
	s.history.ScrollBy(delta)
	if s.history.Position() != before {
		s.dirty.MarkRange(0, s.rows)
	}
}

// PrevPage scrolls one page up into history.
func (s *Screen) PrevPage() { s.pageBy(-s.pageStep()) }

// NextPage scrolls one page down toward live output.
func (s *Screen) NextPage() { s.pageBy(s.pageStep()) }

// PrevLine scrolls one line up into history.
func (s *Screen) PrevLine() { s.pageBy(-1) }

// NextLine scrolls one line down toward live output.
func (s *Screen) NextLine() { s.pageBy(1) }

// ScrollToBottom reattaches the viewport to live output.
func (s *Screen) ScrollToBottom() {
	before := s.history.Position()
	s.history.ScrollToBottom()
	if s.history.Position() != before {
		s.dirty.MarkRange(0, s.rows)
	}
}

// displayRow resolves a viewport row to its cells. When detached, the
// window starts at the paging offset inside history and runs into the
// live rows. Returns ok=false for rows outside the current viewport,
// which the synchronizer treats as "row removed" (this occurs transiently
// for stale dirty indices after a shrink).
func (s *Screen) displayRow(row int) ([]Cell, bool) {
	if row < 0 || row >= s.rows {
		return nil, false
	}
	if s.activeAlt {
		return s.altGrid.Row(row), true
	}

	global := s.history.Position() + row
	if global < s.history.Size() {
		return s.history.Line(global), true
	}
	live := global - s.history.Size()
	cells := s.grid.Row(live)
	if cells == nil {
		return blankRow(s.cols), true
	}
	return cells, true
}

// DisplayLine returns the rendered text of a viewport row. ok is false if
// the row is outside the current viewport.
func (s *Screen) DisplayLine(row int) (string, bool) {
	cells, ok := s.displayRow(row)
	if !ok {
		return "", false
	}
	return rowText(cells), true
}

// Display returns the text of every viewport row: the live rows, or a
// historical window when detached.
func (s *Screen) Display() []string {
	out := make([]string, s.rows)
	for row := 0; row < s.rows; row++ {
		out[row], _ = s.DisplayLine(row)
	}
	return out
}

// TextRange returns the trimmed text of viewport rows [start, end)
// joined by newlines, clamped to the viewport. Used for clipboard
// extraction.
func (s *Screen) TextRange(start, end int) string {
	start = clamp(start, 0, s.rows)
	end = clamp(end, start, s.rows)

	text := ""
	for row := start; row < end; row++ {
		line, _ := s.DisplayLine(row)
		if row > start {
			text += "\n"
		}
		text += line
	}
	return text
}

// ColorMap compresses the given rows of the displayed window into
// highlight runs.
func (s *Screen) ColorMap(rows []int) RunMap {
	return compressDisplay(s, rows)
}

// ClearDirty empties the dirty-row set. Called by the synchronizer once a
// render pass has consumed it.
func (s *Screen) ClearDirty() {
	s.dirty.Clear()
}

// SetResponseWriter sets the writer terminal responses (cursor position
// reports, identification) are sent to, typically the PTY input.
func (s *Screen) SetResponseWriter(w io.Writer) { s.response = w }

// SetBellHandler sets the handler for bell events.
func (s *Screen) SetBellHandler(b BellHandler) { s.bell = b }

// SetTitleHandler sets the handler for window title changes.
func (s *Screen) SetTitleHandler(t TitleHandler) { s.titleFn = t }

// SetLogger sets the diagnostic logger.
func (s *Screen) SetLogger(logf Logger) {
	if logf != nil {
		s.logf = logf
	}
}

func (s *Screen) writeResponse(response string) {
	if s.response != nil {
		_, _ = io.WriteString(s.response, response)
	}
}

// clamp ensures the value is within [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// effectiveRow returns the row adjusted for origin mode.
func (s *Screen) effectiveRow(row int) int {
	if s.modes&ModeOrigin != 0 {
		return row + s.scrollTop
	}
	return row
}

// scrollIfNeeded scrolls the active grid when the cursor leaves the
// scroll region.
func (s *Screen) scrollIfNeeded() {
	if s.cursor.Row >= s.scrollBottom {
		n := s.cursor.Row - s.scrollBottom + 1
		s.activeGrid().ScrollUp(s.scrollTop, s.scrollBottom, n)
		s.cursor.Row = s.scrollBottom - 1
	} else if s.cursor.Row < s.scrollTop {
		n := s.scrollTop - s.cursor.Row
		s.activeGrid().ScrollDown(s.scrollTop, s.scrollBottom, n)
		s.cursor.Row = s.scrollTop
	}
}
