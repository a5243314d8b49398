package termview

import "testing"

func TestNewCellUnstyled(t *testing.T) {
	c := NewCell()

	if c.Char != ' ' {
		t.Errorf("expected space, got %c", c.Char)
	}
	if !c.Unstyled() {
		t.Error("expected new cell unstyled")
	}
}

func TestCellFlags(t *testing.T) {
	c := NewCell()

	c.SetFlag(CellFlagBold | CellFlagUnderline)
	if !c.HasFlag(CellFlagBold) || !c.HasFlag(CellFlagUnderline) {
		t.Error("expected bold and underline set")
	}

	c.ClearFlag(CellFlagBold)
	if c.HasFlag(CellFlagBold) {
		t.Error("expected bold cleared")
	}
	if !c.HasFlag(CellFlagUnderline) {
		t.Error("expected underline preserved")
	}
}

func TestCellReset(t *testing.T) {
	c := NewCell()
	c.Char = 'x'
	c.Fg = ColorRed
	c.SetFlag(CellFlagItalic)

	c.Reset()

	if c.Char != ' ' || c.Fg != ColorDefault || c.Flags != 0 {
		t.Errorf("expected defaults after reset, got %+v", c)
	}
}

func TestCellPairReverse(t *testing.T) {
	c := NewCell()
	c.Fg = ColorGreen
	c.SetFlag(CellFlagReverse)

	pair := c.Pair()

	if pair.Bg != ColorGreen || pair.Fg != ColorBlack {
		t.Errorf("expected green bg, black fg, got %v", pair)
	}
}

func TestPositionEqual(t *testing.T) {
	a := Position{Row: 1, Col: 2}
	b := Position{Row: 1, Col: 2}
	c := Position{Row: 1, Col: 3}

	if !a.Equal(b) {
		t.Error("expected equal positions")
	}
	if a.Equal(c) {
		t.Error("expected unequal positions")
	}
}
