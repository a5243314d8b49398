package termview

// Grid stores the live 2D matrix of cells. Every mutation reports the
// affected row indices into the shared DirtySet; rows scrolled off the top
// of the full-screen region are pushed into History.
type Grid struct {
	rows    int
	cols    int
	cells   [][]Cell
	tabStop []bool
	dirty   *DirtySet
	history *History
}

// NewGrid creates a grid with the given dimensions. Tab stops are
// initialized every 8 columns. The dirty set and history may be shared
// with the owning screen.
func NewGrid(rows, cols int, dirty *DirtySet, history *History) *Grid {
	g := &Grid{
		rows:    rows,
		cols:    cols,
		cells:   make([][]Cell, rows),
		tabStop: make([]bool, cols),
		dirty:   dirty,
		history: history,
	}

	for i := range g.cells {
		g.cells[i] = blankRow(cols)
	}
	for i := 0; i < cols; i += 8 {
		g.tabStop[i] = true
	}

	return g
}

func blankRow(cols int) []Cell {
	row := make([]Cell, cols)
	for i := range row {
		row[i] = NewCell()
	}
	return row
}

// Rows returns the grid height in character rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the grid width in character columns.
func (g *Grid) Cols() int {
	return g.cols
}

// Cell returns a pointer to the cell at (row, col).
// Returns nil if coordinates are out of bounds.
func (g *Grid) Cell(row, col int) *Cell {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return nil
	}
	return &g.cells[row][col]
}

// Row returns the cells of one row, or nil if out of bounds.
func (g *Grid) Row(row int) []Cell {
	if row < 0 || row >= g.rows {
		return nil
	}
	return g.cells[row]
}

// SetCell replaces the cell at (row, col) and marks the row dirty.
// Does nothing if coordinates are out of bounds.
func (g *Grid) SetCell(row, col int, cell Cell) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return
	}
	g.cells[row][col] = cell
	g.dirty.Mark(row)
}

// MarkRow marks a row as changed.
func (g *Grid) MarkRow(row int) {
	if row >= 0 && row < g.rows {
		g.dirty.Mark(row)
	}
}

// ClearRow resets all cells in the row to default state.
func (g *Grid) ClearRow(row int) {
	if row < 0 || row >= g.rows {
		return
	}
	for col := range g.cells[row] {
		g.cells[row][col].Reset()
	}
	g.dirty.Mark(row)
}

// ClearRowRange resets cells in the row from startCol (inclusive) to
// endCol (exclusive).
func (g *Grid) ClearRowRange(row, startCol, endCol int) {
	if row < 0 || row >= g.rows {
		return
	}
	if startCol < 0 {
		startCol = 0
	}
	if endCol > g.cols {
		endCol = g.cols
	}
	for col := startCol; col < endCol; col++ {
		g.cells[row][col].Reset()
	}
	g.dirty.Mark(row)
}

// ClearAll resets every cell in the grid.
func (g *Grid) ClearAll() {
	for row := range g.cells {
		g.ClearRow(row)
	}
}

// ScrollUp shifts lines up by n positions within [top, bottom).
// Lines scrolled off a region starting at row 0 are retained in history.
// All rows in the region are marked dirty.
func (g *Grid) ScrollUp(top, bottom, n int) {
	if n <= 0 || top >= bottom {
		return
	}
	if top < 0 {
		top = 0
	}
	if bottom > g.rows {
		bottom = g.rows
	}
	if n > bottom-top {
		n = bottom - top
	}

	if g.history != nil && top == 0 {
		for i := 0; i < n; i++ {
			g.history.Push(g.cells[i])
		}
	}

	for row := top; row < bottom-n; row++ {
		g.cells[row] = g.cells[row+n]
		g.dirty.Mark(row)
	}
	for row := bottom - n; row < bottom; row++ {
		g.cells[row] = blankRow(g.cols)
		g.dirty.Mark(row)
	}
}

// ScrollDown shifts lines down by n positions within [top, bottom).
// Top lines are cleared; all rows in the region are marked dirty.
func (g *Grid) ScrollDown(top, bottom, n int) {
	if n <= 0 || top >= bottom {
		return
	}
	if top < 0 {
		top = 0
	}
	if bottom > g.rows {
		bottom = g.rows
	}
	if n > bottom-top {
		n = bottom - top
	}

	for row := bottom - 1; row >= top+n; row-- {
		g.cells[row] = g.cells[row-n]
		g.dirty.Mark(row)
	}
	for row := top; row < top+n; row++ {
		g.cells[row] = blankRow(g.cols)
		g.dirty.Mark(row)
	}
}

// InsertLines inserts n blank lines at row, shifting existing lines down
// within the region bounded by bottom.
func (g *Grid) InsertLines(row, n, bottom int) {
	if row < 0 || row >= bottom || n <= 0 {
		return
	}
	g.ScrollDown(row, bottom, n)
}

// DeleteLines removes n lines at row, shifting remaining lines up within
// the region bounded by bottom.
func (g *Grid) DeleteLines(row, n, bottom int) {
	if row < 0 || row >= bottom || n <= 0 {
		return
	}
	g.ScrollUp(row, bottom, n)
}

// InsertBlanks inserts n blank cells at (row, col), shifting existing
// characters right. Characters pushed past the last column are lost.
func (g *Grid) InsertBlanks(row, col, n int) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols || n <= 0 {
		return
	}

	for c := g.cols - 1; c >= col+n; c-- {
		g.cells[row][c] = g.cells[row][c-n]
	}
	for c := col; c < col+n && c < g.cols; c++ {
		g.cells[row][c].Reset()
	}
	g.dirty.Mark(row)
}

// DeleteChars removes n characters at (row, col), shifting remaining
// characters left and blanking the end of the line.
func (g *Grid) DeleteChars(row, col, n int) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols || n <= 0 {
		return
	}

	for c := col; c < g.cols-n; c++ {
		g.cells[row][c] = g.cells[row][c+n]
	}
	for c := g.cols - n; c < g.cols; c++ {
		if c >= col {
			g.cells[row][c].Reset()
		}
	}
	g.dirty.Mark(row)
}

// EraseChars resets n cells starting at (row, col) without shifting.
func (g *Grid) EraseChars(row, col, n int) {
	if row < 0 || row >= g.rows || n <= 0 {
		return
	}
	for c := col; c < col+n && c < g.cols; c++ {
		if c >= 0 {
			g.cells[row][c].Reset()
		}
	}
	g.dirty.Mark(row)
}

// Resize changes grid dimensions, preserving existing cells at the
// top-left corner. New cells are blank. Tab stops are extended if columns
// increase. Every surviving row is marked dirty by the caller (the screen
// marks max(old, new) rows so shrunk rows produce deletion edits).
func (g *Grid) Resize(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		return
	}

	newCells := make([][]Cell, rows)
	for i := range newCells {
		newCells[i] = blankRow(cols)
		if i < g.rows {
			n := g.cols
			if cols < n {
				n = cols
			}
			copy(newCells[i], g.cells[i][:n])
		}
	}

	newTabStop := make([]bool, cols)
	copy(newTabStop, g.tabStop)
	for i := len(g.tabStop); i < cols; i++ {
		if i%8 == 0 {
			newTabStop[i] = true
		}
	}

	g.cells = newCells
	g.tabStop = newTabStop
	g.rows = rows
	g.cols = cols
}

// SetTabStop enables a tab stop at the specified column.
func (g *Grid) SetTabStop(col int) {
	if col >= 0 && col < g.cols {
		g.tabStop[col] = true
	}
}

// ClearTabStop disables the tab stop at the specified column.
func (g *Grid) ClearTabStop(col int) {
	if col >= 0 && col < g.cols {
		g.tabStop[col] = false
	}
}

// ClearAllTabStops disables all tab stops.
func (g *Grid) ClearAllTabStops() {
	for i := range g.tabStop {
		g.tabStop[i] = false
	}
}

// NextTabStop returns the column of the next enabled tab stop after col,
// or the last column if none is found.
func (g *Grid) NextTabStop(col int) int {
	for c := col + 1; c < g.cols; c++ {
		if g.tabStop[c] {
			return c
		}
	}
	return g.cols - 1
}

// PrevTabStop returns the column of the previous enabled tab stop before
// col, or 0 if none is found.
func (g *Grid) PrevTabStop(col int) int {
	for c := col - 1; c >= 0; c-- {
		if g.tabStop[c] {
			return c
		}
	}
	return 0
}

// FillWithE fills all cells with 'E' (DECALN alignment pattern).
func (g *Grid) FillWithE() {
	for row := range g.cells {
		for col := range g.cells[row] {
			g.cells[row][col].Reset()
			g.cells[row][col].Char = 'E'
		}
		g.dirty.Mark(row)
	}
}

// LineText returns the text content of a row, padded with spaces up to the
// last styled or non-blank cell so highlight offsets stay valid, then
// trimmed of the remaining unstyled tail. Wide-character spacers are
// skipped.
func (g *Grid) LineText(row int) string {
	if row < 0 || row >= g.rows {
		return ""
	}
	return rowText(g.cells[row])
}

// rowText renders a slice of cells to a display string. Trailing cells are
// dropped only when both blank and unstyled, so colored spans of spaces
// keep their highlight coverage.
func rowText(cells []Cell) string {
	last := -1
	for col := len(cells) - 1; col >= 0; col-- {
		cell := &cells[col]
		if cell.IsWideSpacer() {
			continue
		}
		if (cell.Char != ' ' && cell.Char != 0) || !cell.Unstyled() {
			last = col
			break
		}
	}
	if last < 0 {
		return ""
	}

	runes := make([]rune, 0, last+1)
	for col := 0; col <= last; col++ {
		cell := &cells[col]
		if cell.IsWideSpacer() {
			continue
		}
		if cell.Char == 0 {
			runes = append(runes, ' ')
		} else {
			runes = append(runes, cell.Char)
		}
	}
	return string(runes)
}
