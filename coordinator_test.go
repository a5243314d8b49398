package termview

import "testing"

func TestCoordinatorDrainConsumesOnce(t *testing.T) {
	c := NewCoordinator()
	c.RequestScroll(ScrollRequest{Granularity: ScrollLine, Direction: ScrollUp})
	c.RequestScroll(ScrollRequest{Granularity: ScrollPage, Direction: ScrollDown})

	scrolls, resize := c.Drain()

	if len(scrolls) != 2 {
		t.Fatalf("expected 2 scrolls, got %d", len(scrolls))
	}
	if resize != nil {
		t.Error("expected no resize")
	}

	scrolls, _ = c.Drain()
	if len(scrolls) != 0 {
		t.Errorf("expected empty queue after drain, got %d", len(scrolls))
	}
}

func TestCoordinatorResizeReplaces(t *testing.T) {
	c := NewCoordinator()
	c.RequestResize(10, 40)
	c.RequestResize(20, 80)

	_, resize := c.Drain()

	if resize == nil {
		t.Fatal("expected a resize request")
	}
	if resize.Rows != 20 || resize.Cols != 80 {
		t.Errorf("expected latest geometry 20x80, got %dx%d", resize.Rows, resize.Cols)
	}
}

func TestCoordinatorPending(t *testing.T) {
	c := NewCoordinator()

	if c.Pending() {
		t.Error("expected no pending requests")
	}

	c.RequestScroll(ScrollRequest{})
	if !c.Pending() {
		t.Error("expected pending after enqueue")
	}

	c.Drain()
	if c.Pending() {
		t.Error("expected no pending after drain")
	}
}

func TestCoordinatorApply(t *testing.T) {
	s := NewScreen(4, 20, 100, 0.5)
	if _, err := s.Feed([]byte("1\r\n2\r\n3\r\n4\r\n5\r\n6")); err != nil {
		t.Fatalf("feed failed: %v", err)
	}

	c := NewCoordinator()
	c.RequestResize(6, 40)
	c.RequestScroll(ScrollRequest{Granularity: ScrollLine, Direction: ScrollUp})

	c.Apply(s)

	if s.Rows() != 6 || s.Cols() != 40 {
		t.Errorf("expected 6x40, got %dx%d", s.Rows(), s.Cols())
	}
	if s.History().Live() {
		t.Error("expected detached after scroll request")
	}

	// Requests were consumed; another apply changes nothing.
	pos := s.History().Position()
	c.Apply(s)
	if s.History().Position() != pos {
		t.Error("expected no movement on second apply")
	}
}
