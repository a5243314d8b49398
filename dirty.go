package termview

import "sort"

// DirtySet tracks which rows of the visible window changed since the last
// render pass. It is rebuilt on every feed/resize/scroll cycle and cleared
// atomically once a pass has consumed it.
type DirtySet struct {
	rows map[int]struct{}
}

// NewDirtySet creates an empty dirty-row set.
func NewDirtySet() *DirtySet {
	return &DirtySet{rows: make(map[int]struct{})}
}

// Mark records a single changed row.
func (d *DirtySet) Mark(row int) {
	if row < 0 {
		return
	}
	d.rows[row] = struct{}{}
}

// MarkRange records rows in [start, end) as changed.
func (d *DirtySet) MarkRange(start, end int) {
	for row := start; row < end; row++ {
		d.Mark(row)
	}
}

// Has returns true if the row is marked dirty.
func (d *DirtySet) Has(row int) bool {
	_, ok := d.rows[row]
	return ok
}

// Len returns the number of dirty rows.
func (d *DirtySet) Len() int {
	return len(d.rows)
}

// Sorted returns the dirty rows in ascending order. Ascending order is
// required by the synchronizer: each row's buffer offset depends on the
// cumulative length of all preceding rows.
func (d *DirtySet) Sorted() []int {
	rows := make([]int, 0, len(d.rows))
	for row := range d.rows {
		rows = append(rows, row)
	}
	sort.Ints(rows)
	return rows
}

// Clear empties the set.
func (d *DirtySet) Clear() {
	clear(d.rows)
}
