package termview

import "testing"

type viewOp struct {
	kind  string
	start int
	end   int
	text  string
	key   string
	row   int
	col   int
}

// recordView captures every edit the synchronizer issues, in order.
type recordView struct {
	ops []viewOp
}

func (v *recordView) Replace(start, end int, text string) {
	v.ops = append(v.ops, viewOp{kind: "replace", start: start, end: end, text: text})
}

func (v *recordView) Erase(start, end int) {
	v.ops = append(v.ops, viewOp{kind: "erase", start: start, end: end})
}

func (v *recordView) AddRegion(key string, start, end int, color ColorPair) {
	v.ops = append(v.ops, viewOp{kind: "region", start: start, end: end, key: key})
}

func (v *recordView) EraseRegion(key string) {
	v.ops = append(v.ops, viewOp{kind: "unregion", key: key})
}

func (v *recordView) SetCursor(row, col int) {
	v.ops = append(v.ops, viewOp{kind: "cursor", row: row, col: col})
}

func (v *recordView) reset() {
	v.ops = nil
}

func (v *recordView) count(kind string) int {
	n := 0
	for _, op := range v.ops {
		if op.kind == kind {
			n++
		}
	}
	return n
}

func newSyncFixture(t *testing.T, rows, cols int) (*Screen, *Synchronizer, *recordView) {
	t.Helper()
	screen := NewScreen(rows, cols, 100, 0.5)
	view := &recordView{}
	return screen, NewSynchronizer(screen, view, true), view
}

func TestSyncWritesDirtyRows(t *testing.T) {
	screen, syncer, view := newSyncFixture(t, 4, 20)
	feed(t, screen, "one\r\ntwo")

	syncer.Sync()

	if got := view.count("replace"); got != 2 {
		t.Errorf("expected 2 replaces, got %d", got)
	}
	first := view.ops[0]
	if first.kind != "replace" || first.start != 0 || first.end != 0 || first.text != "one\n" {
		t.Errorf("unexpected first edit: %+v", first)
	}
	second := view.ops[1]
	if second.start != 4 || second.end != 4 || second.text != "two\n" {
		t.Errorf("unexpected second edit: %+v", second)
	}
}

func TestSyncIdempotent(t *testing.T) {
	screen, syncer, view := newSyncFixture(t, 4, 20)
	feed(t, screen, "\x1b[31mcolored\x1b[0m plain")
	syncer.Sync()
	view.reset()

	syncer.Sync()

	if len(view.ops) != 0 {
		t.Errorf("expected no edits on clean pass, got %v", view.ops)
	}
}

func TestSyncOnlyChangedRows(t *testing.T) {
	screen, syncer, view := newSyncFixture(t, 4, 20)
	feed(t, screen, "aaa\r\nbbb\r\nccc")
	syncer.Sync()
	view.reset()

	feed(t, screen, "\x1b[2;1HBBB")
	syncer.Sync()

	if got := view.count("replace"); got != 1 {
		t.Fatalf("expected 1 replace, got %d: %v", got, view.ops)
	}
	for _, op := range view.ops {
		if op.kind == "replace" {
			// Row 1 sits after "aaa\n".
			if op.start != 4 || op.end != 8 || op.text != "BBB\n" {
				t.Errorf("unexpected edit: %+v", op)
			}
		}
	}
}

func TestSyncCursorLast(t *testing.T) {
	screen, syncer, view := newSyncFixture(t, 4, 20)
	feed(t, screen, "\x1b[35mhello")

	syncer.Sync()

	last := view.ops[len(view.ops)-1]
	if last.kind != "cursor" {
		t.Errorf("expected cursor op last, got %+v", last)
	}
	if last.row != 0 || last.col != 5 {
		t.Errorf("expected cursor (0, 5), got (%d, %d)", last.row, last.col)
	}
}

func TestSyncCursorOnlyWhenMoved(t *testing.T) {
	screen, syncer, view := newSyncFixture(t, 4, 20)
	feed(t, screen, "abc")
	syncer.Sync()
	view.reset()

	// Overwrite in place and return the cursor to the same column.
	feed(t, screen, "\x1b[1;1Hxbc\x1b[1;4H")
	syncer.Sync()

	if got := view.count("cursor"); got != 0 {
		t.Errorf("expected no cursor op for unmoved cursor, got %d", got)
	}
	if got := view.count("replace"); got != 1 {
		t.Errorf("expected the row rewrite, got %d replaces", got)
	}
}

func TestSyncRegions(t *testing.T) {
	screen, syncer, view := newSyncFixture(t, 4, 20)
	feed(t, screen, "\x1b[31mred\x1b[0m rest")

	syncer.Sync()

	if got := view.count("region"); got != 1 {
		t.Fatalf("expected 1 region, got %d: %v", got, view.ops)
	}
	for _, op := range view.ops {
		if op.kind == "region" {
			if op.start != 0 || op.end != 3 {
				t.Errorf("expected region [0:3], got [%d:%d]", op.start, op.end)
			}
			if op.key != "termview_0_0" {
				t.Errorf("unexpected region key %s", op.key)
			}
		}
	}
}

func TestSyncRegionsClearedWhenBaseline(t *testing.T) {
	screen, syncer, view := newSyncFixture(t, 4, 20)
	feed(t, screen, "\x1b[31mred\x1b[0m")
	syncer.Sync()
	view.reset()

	// Overwrite the colored text with unstyled text.
	feed(t, screen, "\x1b[1;1H\x1b[0mxyz")
	syncer.Sync()

	if got := view.count("unregion"); got != 1 {
		t.Errorf("expected old region erased, got %d", got)
	}
	if got := view.count("region"); got != 0 {
		t.Errorf("expected no new regions, got %d", got)
	}
}

func TestSyncRegionsSwappedOnRecolor(t *testing.T) {
	screen, syncer, view := newSyncFixture(t, 4, 20)
	feed(t, screen, "\x1b[31mab\x1b[0m")
	syncer.Sync()
	view.reset()

	feed(t, screen, "\x1b[1;1H\x1b[34mab\x1b[0m")
	syncer.Sync()

	// Old region comes off before the new one goes on.
	var order []string
	for _, op := range view.ops {
		if op.kind == "region" || op.kind == "unregion" {
			order = append(order, op.kind)
		}
	}
	if len(order) != 2 || order[0] != "unregion" || order[1] != "region" {
		t.Errorf("expected unregion then region, got %v", order)
	}
}

func TestSyncColorsDisabled(t *testing.T) {
	screen := NewScreen(4, 20, 100, 0.5)
	view := &recordView{}
	syncer := NewSynchronizer(screen, view, false)
	feed(t, screen, "\x1b[31mred")

	syncer.Sync()

	if got := view.count("region"); got != 0 {
		t.Errorf("expected no regions with colors disabled, got %d", got)
	}
	if got := view.count("replace"); got != 1 {
		t.Errorf("expected text still synced, got %d replaces", got)
	}
}

func TestSyncShrinkErasesStaleRows(t *testing.T) {
	screen, syncer, view := newSyncFixture(t, 3, 20)
	feed(t, screen, "a\r\nb\r\nc")
	syncer.Sync()
	view.reset()

	screen.Resize(2, 20)
	syncer.Sync()

	if got := view.count("erase"); got != 1 {
		t.Fatalf("expected 1 erase, got %d: %v", got, view.ops)
	}
	for _, op := range view.ops {
		if op.kind == "erase" {
			// Row 2 occupied [4:6] after "a\n" and "b\n".
			if op.start != 4 || op.end != 6 {
				t.Errorf("expected erase [4:6], got [%d:%d]", op.start, op.end)
			}
		}
	}
}

func TestSyncRowLengthChangeShiftsOffsets(t *testing.T) {
	screen, syncer, view := newSyncFixture(t, 3, 20)
	feed(t, screen, "short\r\nsecond")
	syncer.Sync()
	view.reset()

	// Grow row 0, then touch row 1; row 1's offset must account for the
	// new length of row 0 within the same pass.
	feed(t, screen, "\x1b[1;1Hmuch longer\x1b[2;1HSECOND")
	syncer.Sync()

	var edits []viewOp
	for _, op := range view.ops {
		if op.kind == "replace" {
			edits = append(edits, op)
		}
	}
	if len(edits) != 2 {
		t.Fatalf("expected 2 replaces, got %d", len(edits))
	}
	if edits[0].start != 0 || edits[0].end != 6 || edits[0].text != "much longer\n" {
		t.Errorf("unexpected row 0 edit: %+v", edits[0])
	}
	// "much longer\n" is 12 runes, so row 1 starts at 12.
	if edits[1].start != 12 || edits[1].end != 19 || edits[1].text != "SECOND\n" {
		t.Errorf("unexpected row 1 edit: %+v", edits[1])
	}
}

// feedbackView tries to mutate the screen from inside a render callback.
type feedbackView struct {
	recordView
	screen *Screen
	err    error
	tried  bool
}

func (v *feedbackView) Replace(start, end int, text string) {
	if !v.tried {
		v.tried = true
		_, v.err = v.screen.Feed([]byte("loop"))
	}
	v.recordView.Replace(start, end, text)
}

func TestSyncRejectsMutationMidPass(t *testing.T) {
	screen := NewScreen(4, 20, 100, 0.5)
	view := &feedbackView{screen: screen}
	syncer := NewSynchronizer(screen, view, true)
	feed(t, screen, "text")

	syncer.Sync()

	if !view.tried {
		t.Fatal("expected the callback to run")
	}
	if view.err != ErrConcurrentMutation {
		t.Errorf("expected ErrConcurrentMutation from mid-pass feed, got %v", view.err)
	}
	// The pass itself completed untorn.
	if line, _ := screen.DisplayLine(0); line != "text" {
		t.Errorf("expected 'text', got '%s'", line)
	}

	// Outside a pass, feeding works again.
	if _, err := screen.Feed([]byte("!")); err != nil {
		t.Errorf("expected feed to succeed after the pass, got %v", err)
	}
}

func TestSyncInvalidate(t *testing.T) {
	screen, syncer, view := newSyncFixture(t, 2, 20)
	feed(t, screen, "one\r\ntwo")
	syncer.Sync()
	view.reset()

	syncer.Invalidate()
	syncer.Sync()

	if got := view.count("replace"); got != 2 {
		t.Errorf("expected full rewrite after invalidate, got %d replaces", got)
	}
}

func TestSyncPagingRewritesViewport(t *testing.T) {
	screen, syncer, view := newSyncFixture(t, 2, 20)
	feed(t, screen, "1\r\n2\r\n3\r\n4")
	syncer.Sync()
	view.reset()

	screen.PrevLine()
	syncer.Sync()

	if got := view.count("replace"); got != 2 {
		t.Fatalf("expected both rows rewritten, got %d", got)
	}
	if view.ops[0].text != "2\n" || view.ops[1].text != "3\n" {
		t.Errorf("unexpected paged content: %+v", view.ops)
	}

	screen.NextLine()
	syncer.Sync()

	if line, _ := screen.DisplayLine(1); line != "4" {
		t.Errorf("expected live content restored, got '%s'", line)
	}
}
