package termview

import "sort"

// Snapshot captures the displayed state of a screen at one instant:
// the visible text, its highlight runs, and the cursor. Hosts serialize
// it to restore a view across editor reloads, or to hand the state to
// something that cannot drive a ViewBuffer incrementally.
type Snapshot struct {
	Rows   int       `json:"rows"`
	Cols   int       `json:"cols"`
	Title  string    `json:"title,omitempty"`
	Cursor Position  `json:"cursor"`
	Lines  []string  `json:"lines"`
	Runs   []RunSpan `json:"runs,omitempty"`
}

// RunSpan is one highlight run in a snapshot, addressed by row.
type RunSpan struct {
	Row    int    `json:"row"`
	Start  int    `json:"start"`
	Length int    `json:"length"`
	Pair   string `json:"pair"`
}

// Snapshot captures the current viewport. The dirty set is untouched, so
// taking a snapshot never disturbs incremental rendering.
func (s *Screen) Snapshot() Snapshot {
	snap := Snapshot{
		Rows:   s.rows,
		Cols:   s.cols,
		Title:  s.title,
		Cursor: Position{Row: s.cursor.Row, Col: s.cursor.Col},
		Lines:  s.Display(),
	}

	for row := 0; row < s.rows; row++ {
		cells, ok := s.displayRow(row)
		if !ok {
			continue
		}
		runs := CompressRow(cells)
		for _, run := range runs {
			snap.Runs = append(snap.Runs, RunSpan{
				Row:    row,
				Start:  run.Start,
				Length: run.Length,
				Pair:   run.Color.Key(),
			})
		}
	}

	sort.Slice(snap.Runs, func(i, j int) bool {
		if snap.Runs[i].Row != snap.Runs[j].Row {
			return snap.Runs[i].Row < snap.Runs[j].Row
		}
		return snap.Runs[i].Start < snap.Runs[j].Start
	})
	return snap
}
