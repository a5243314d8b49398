package termview

// ColorRun is one maximal span of cells sharing an effective color pair,
// positioned by rune offset within the rendered row text.
type ColorRun struct {
	Start  int
	Length int
	Color  ColorPair
}

// RowRuns maps a start offset to the run beginning there.
type RowRuns map[int]ColorRun

// RunMap maps a row index to its highlight runs. A row present with an
// empty RowRuns previously had highlights that must now be cleared; an
// absent row needs no highlight changes beyond the regular removal the
// synchronizer performs for dirty rows.
type RunMap map[int]RowRuns

// CompressRow converts one row of cells into its minimal ordered set of
// highlight runs. Adjacent cells sharing an effective color pair merge
// into a single run; runs in the baseline pair (white on black) are
// omitted since they represent "no highlighting needed". Wide-character
// spacer cells are skipped so offsets line up with the rendered text.
func CompressRow(cells []Cell) RowRuns {
	runs := make(RowRuns)
	if len(cells) == 0 {
		return runs
	}

	var (
		current ColorPair
		start   int
		length  int
		offset  int
		open    bool
	)

	flush := func() {
		if open && length > 0 && current != BaselinePair {
			runs[start] = ColorRun{Start: start, Length: length, Color: current}
		}
	}

	for i := range cells {
		cell := &cells[i]
		if cell.IsWideSpacer() {
			continue
		}

		pair := cell.Pair()
		if open && pair == current {
			length++
		} else {
			flush()
			current = pair
			start = offset
			length = 1
			open = true
		}
		offset++
	}
	flush()

	return runs
}

// compressDisplay produces the run map for the given dirty rows against
// the currently displayed window. Rows outside the window are skipped;
// the synchronizer turns those into deletion edits instead.
func compressDisplay(s *Screen, rows []int) RunMap {
	out := make(RunMap, len(rows))
	for _, row := range rows {
		cells, ok := s.displayRow(row)
		if !ok {
			continue
		}
		out[row] = CompressRow(cells)
	}
	return out
}
