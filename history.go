package termview

// History retains rows scrolled off the top of the live grid in a single
// ring buffer sized to the configured scrollback depth, and tracks the
// paging offset used when the viewport is detached from live output.
//
// The paging offset lives in [0, Size()]: an offset equal to Size() means
// "live" (following new output); any smaller value is "detached", pinned
// to a historical window. Feeding new data always forces the offset back
// to live before mutation, so live output never interleaves with a
// detached view.
type History struct {
	lines    [][]Cell
	head     int
	size     int
	capacity int
	position int
}

// NewHistory creates a history ring with the given capacity. A capacity of
// zero disables retention (every push is discarded).
func NewHistory(capacity int) *History {
	if capacity < 0 {
		capacity = 0
	}
	return &History{
		lines:    make([][]Cell, capacity),
		capacity: capacity,
	}
}

// Capacity returns the maximum number of retained rows.
func (h *History) Capacity() int {
	return h.capacity
}

// Size returns the number of rows currently retained.
func (h *History) Size() int {
	return h.size
}

// Position returns the current paging offset in [0, Size()].
func (h *History) Position() int {
	return h.position
}

// Live returns true if the viewport follows new output.
func (h *History) Live() bool {
	return h.position == h.size
}

// Push retains a copy of a row scrolled off the top. The oldest row is
// evicted when the ring is full. Pushing while live keeps the offset live;
// the screen guarantees no push happens while detached.
func (h *History) Push(row []Cell) {
	if h.capacity == 0 {
		return
	}

	line := make([]Cell, len(row))
	copy(line, row)

	if h.size < h.capacity {
		h.lines[(h.head+h.size)%h.capacity] = line
		h.size++
		if h.position == h.size-1 {
			h.position = h.size
		}
	} else {
		h.lines[h.head] = line
		h.head = (h.head + 1) % h.capacity
	}
}

// Line returns the retained row at index, where 0 is the oldest.
// Returns nil if index is out of range.
func (h *History) Line(index int) []Cell {
	if index < 0 || index >= h.size {
		return nil
	}
	return h.lines[(h.head+index)%h.capacity]
}

// ScrollBy moves the paging offset by delta rows, clamped to [0, Size()].
// Moving away from Size() enters detached mode.
func (h *History) ScrollBy(delta int) {
	h.position += delta
	if h.position < 0 {
		h.position = 0
	}
	if h.position > h.size {
		h.position = h.size
	}
}

// ScrollToBottom resets the offset to live. Called before every feed.
func (h *History) ScrollToBottom() {
	h.position = h.size
}

// Clear discards all retained rows and returns to live.
func (h *History) Clear() {
	for i := range h.lines {
		h.lines[i] = nil
	}
	h.head = 0
	h.size = 0
	h.position = 0
}
