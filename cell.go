package termview

// CellFlags is a bitmask of cell rendering attributes.
type CellFlags uint16

const (
	CellFlagBold CellFlags = 1 << iota
	CellFlagDim
	CellFlagItalic
	CellFlagUnderline
	CellFlagBlink
	CellFlagReverse
	CellFlagHidden
	CellFlagStrike
	CellFlagWideChar
	CellFlagWideCharSpacer
)

// Cell stores the character and styling of one grid position. Wide
// characters (2 columns) use a spacer cell in the second position.
type Cell struct {
	Char  rune
	Fg    Color
	Bg    Color
	Flags CellFlags
}

// NewCell creates a cell initialized with a space character and default
// colors. A cell in this state is "unstyled" and never produces a
// highlight run.
func NewCell() Cell {
	return Cell{Char: ' ', Fg: ColorDefault, Bg: ColorDefault}
}

// Reset returns the cell to its default state.
func (c *Cell) Reset() {
	c.Char = ' '
	c.Fg = ColorDefault
	c.Bg = ColorDefault
	c.Flags = 0
}

// HasFlag returns true if the specified flag is set.
func (c *Cell) HasFlag(flag CellFlags) bool {
	return c.Flags&flag != 0
}

// SetFlag enables the specified flag without affecting others.
func (c *Cell) SetFlag(flag CellFlags) {
	c.Flags |= flag
}

// ClearFlag disables the specified flag without affecting others.
func (c *Cell) ClearFlag(flag CellFlags) {
	c.Flags &^= flag
}

// IsWideSpacer returns true if this is the second cell of a wide character
// (skipped during text extraction).
func (c *Cell) IsWideSpacer() bool {
	return c.HasFlag(CellFlagWideCharSpacer)
}

// Pair returns the effective color pair of the cell after default
// normalization and reverse-video swapping.
func (c *Cell) Pair() ColorPair {
	return Normalize(c.Fg, c.Bg, c.HasFlag(CellFlagReverse))
}

// Unstyled returns true if the cell renders in the baseline pair.
func (c *Cell) Unstyled() bool {
	return c.Pair() == BaselinePair
}

// Position identifies a cell location in the terminal grid (0-based).
type Position struct {
	Row int
	Col int
}

// Equal returns true if both row and column match.
func (p Position) Equal(other Position) bool {
	return p.Row == other.Row && p.Col == other.Col
}
