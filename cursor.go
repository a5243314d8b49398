package termview

// CursorStyle determines how the host should render the cursor.
type CursorStyle int

const (
	CursorStyleBlinkingBlock CursorStyle = iota
	CursorStyleSteadyBlock
	CursorStyleBlinkingUnderline
	CursorStyleSteadyUnderline
	CursorStyleBlinkingBar
	CursorStyleSteadyBar
)

// Cursor tracks the current position and rendering style (0-based).
type Cursor struct {
	Row     int
	Col     int
	Style   CursorStyle
	Visible bool
}

// NewCursor creates a cursor at (0, 0), visible, blinking block style.
func NewCursor() *Cursor {
	return &Cursor{Style: CursorStyleBlinkingBlock, Visible: true}
}

// SavedCursor stores cursor position, the SGR template, and charset state
// for DECSC/DECRC restoration.
type SavedCursor struct {
	Row          int
	Col          int
	Template     Cell
	OriginMode   bool
	CharsetIndex int
	Charsets     [4]Charset
}

// Charset selects the character encoding variant for one of the G0-G3
// slots.
type Charset int

const (
	CharsetASCII Charset = iota
	CharsetLineDrawing
)
