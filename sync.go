package termview

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// ViewBuffer is the editor-side surface the synchronizer drives. Offsets
// are rune positions into a buffer that holds one line of text per
// rendered row, each terminated by a newline.
//
// AddRegion attaches a keyed highlight span; EraseRegion removes one by
// key. Keys are opaque to the host but stable per call site, so a host
// can back them with whatever region mechanism it has.
type ViewBuffer interface {
	Replace(start, end int, text string)
	Erase(start, end int)
	AddRegion(key string, start, end int, color ColorPair)
	EraseRegion(key string)
	SetCursor(row, col int)
}

// rowCache remembers what one row looked like after the last pass: the
// text written to the buffer (without the trailing newline), its rune
// width, and the highlight region keys added for it, oldest first.
type rowCache struct {
	text    string
	width   int
	regions []string
}

// Synchronizer incrementally mirrors a screen into a ViewBuffer. Each
// Sync pass consumes the dirty-row set, rewrites only the rows that
// changed, swaps their highlight regions, and finally moves the cursor.
//
// Rows are processed in ascending order so the buffer offset of a row is
// always computed from already-updated rows above it. The cursor moves
// last, and only when its position actually changed, so hosts that
// scroll or flash on cursor movement stay quiet during pure content
// updates.
type Synchronizer struct {
	screen *Screen
	view   ViewBuffer

	cache      map[int]*rowCache
	lastCursor Position
	cursorSet  bool

	showColors bool
	logf       Logger
}

// NewSynchronizer creates a synchronizer binding a screen to a view
// buffer. When showColors is false, color runs are never computed and no
// regions are added.
func NewSynchronizer(screen *Screen, view ViewBuffer, showColors bool) *Synchronizer {
	return &Synchronizer{
		screen:     screen,
		view:       view,
		cache:      make(map[int]*rowCache),
		showColors: showColors,
		logf:       func(string, ...any) {},
	}
}

// SetLogger sets the diagnostic logger.
func (s *Synchronizer) SetLogger(logf Logger) {
	if logf != nil {
		s.logf = logf
	}
}

// Sync applies all pending changes to the view buffer and clears the
// dirty set. Calling it again with no intervening mutations performs no
// buffer edits.
func (s *Synchronizer) Sync() {
	s.screen.syncing = true
	defer func() { s.screen.syncing = false }()

	rows := s.screen.Dirty().Sorted()

	var runs RunMap
	if s.showColors && len(rows) > 0 {
		runs = s.screen.ColorMap(rows)
	}

	for _, row := range rows {
		s.syncRow(row, runs[row])
	}
	s.screen.ClearDirty()

	s.syncCursor()
}

// Invalidate forgets everything previously written and marks the whole
// viewport dirty, forcing the next Sync to rewrite it. Used when the
// host recreated its buffer out from under the synchronizer.
func (s *Synchronizer) Invalidate() {
	s.release()
	s.screen.Dirty().MarkRange(0, s.screen.Rows())
}

// release erases every highlight region previously added to the view
// and drops the render cache.
func (s *Synchronizer) release() {
	for _, entry := range s.cache {
		for _, key := range entry.regions {
			s.view.EraseRegion(key)
		}
	}
	s.cache = make(map[int]*rowCache)
	s.cursorSet = false
}

// syncRow brings one row of the buffer up to date: old highlight regions
// come off first, then the text edit, then the new regions.
func (s *Synchronizer) syncRow(row int, rowRuns RowRuns) {
	cached := s.cache[row]
	if cached != nil {
		for _, key := range cached.regions {
			s.view.EraseRegion(key)
		}
		cached.regions = cached.regions[:0]
	}

	text, ok := s.screen.DisplayLine(row)
	start := s.rowOffset(row)

	if !ok {
		// Stale dirty index past the viewport bound, typically after a
		// shrink. Remove the row's text from the buffer entirely.
		if cached != nil {
			s.logf("row %d left the viewport, erasing", row)
			s.view.Erase(start, start+cached.width+1)
			delete(s.cache, row)
		}
		return
	}

	if cached == nil {
		cached = &rowCache{}
		s.cache[row] = cached
		s.view.Replace(start, start, text+"\n")
	} else if cached.text != text {
		s.view.Replace(start, start+cached.width+1, text+"\n")
	}
	cached.text = text
	cached.width = utf8.RuneCountInString(text)

	if len(rowRuns) == 0 {
		return
	}

	offsets := make([]int, 0, len(rowRuns))
	for off := range rowRuns {
		offsets = append(offsets, off)
	}
	sort.Ints(offsets)

	for _, off := range offsets {
		run := rowRuns[off]
		key := fmt.Sprintf("termview_%d_%d", row, off)
		s.view.AddRegion(key, start+off, start+off+run.Length, run.Color)
		cached.regions = append(cached.regions, key)
	}
}

// rowOffset returns the buffer position of the first rune of a row. Rows
// never rendered occupy no buffer space and contribute nothing.
func (s *Synchronizer) rowOffset(row int) int {
	offset := 0
	for i := 0; i < row; i++ {
		if entry, ok := s.cache[i]; ok {
			offset += entry.width + 1
		}
	}
	return offset
}

// syncCursor moves the host cursor, skipping the call when the position
// is unchanged since the previous pass.
func (s *Synchronizer) syncCursor() {
	row, col := s.screen.CursorPos()
	pos := Position{Row: row, Col: col}
	if s.cursorSet && pos.Equal(s.lastCursor) {
		return
	}
	s.view.SetCursor(row, col)
	s.lastCursor = pos
	s.cursorSet = true
}
