package termview

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"
)

func TestSessionFeedRender(t *testing.T) {
	view := &recordView{}
	s := NewSession(view, WithSize(4, 20))

	if err := s.Feed([]byte("hello")); err != nil {
		t.Fatalf("feed failed: %v", err)
	}
	if err := s.Render(); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if got := view.count("replace"); got != 1 {
		t.Errorf("expected 1 replace, got %d", got)
	}

	line, err := s.Line(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line != "hello" {
		t.Errorf("expected 'hello', got '%s'", line)
	}
}

func TestSessionUniqueIDs(t *testing.T) {
	a := NewSession(&recordView{})
	b := NewSession(&recordView{})

	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("expected distinct non-empty ids, got %q and %q", a.ID(), b.ID())
	}
}

func TestSessionClosed(t *testing.T) {
	s := NewSession(&recordView{})

	if err := s.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if !s.Closed() {
		t.Error("expected closed")
	}

	if err := s.Feed([]byte("x")); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed from Feed, got %v", err)
	}
	if err := s.Render(); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed from Render, got %v", err)
	}
	if _, err := s.Line(0); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed from Line, got %v", err)
	}

	// Closing again is harmless.
	if err := s.Close(); err != nil {
		t.Errorf("expected nil from second close, got %v", err)
	}
}

func TestSessionCloseReleasesRegions(t *testing.T) {
	view := &recordView{}
	s := NewSession(view, WithSize(4, 20))
	if err := s.Feed([]byte("\x1b[31mred")); err != nil {
		t.Fatalf("feed failed: %v", err)
	}
	if err := s.Render(); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if got := view.count("region"); got != 1 {
		t.Fatalf("expected 1 region before close, got %d", got)
	}
	view.reset()

	if err := s.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	if got := view.count("unregion"); got != 1 {
		t.Errorf("expected region erased on close, got %d unregions", got)
	}
	if len(s.syncer.cache) != 0 {
		t.Errorf("expected render cache dropped, got %d entries", len(s.syncer.cache))
	}
}

func TestSessionLineOutOfRange(t *testing.T) {
	s := NewSession(&recordView{}, WithSize(4, 20))

	if _, err := s.Line(99); !errors.Is(err, ErrOutOfRangeRow) {
		t.Errorf("expected ErrOutOfRangeRow, got %v", err)
	}
}

// stallView blocks inside Replace until released, holding a render pass
// open so another goroutine can interleave.
type stallView struct {
	recordView
	entered chan struct{}
	release chan struct{}
	once    bool
}

func (v *stallView) Replace(start, end int, text string) {
	if !v.once {
		v.once = true
		close(v.entered)
		<-v.release
	}
	v.recordView.Replace(start, end, text)
}

func TestSessionFeedSerializesWithRender(t *testing.T) {
	view := &stallView{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := NewSession(view, WithSize(4, 20))
	if err := s.Feed([]byte("first")); err != nil {
		t.Fatalf("feed failed: %v", err)
	}

	rendered := make(chan error, 1)
	go func() { rendered <- s.Render() }()
	<-view.entered

	// The pass is mid-flight inside Replace; a feed from another
	// goroutine must wait for it, not fail.
	fed := make(chan error, 1)
	go func() { fed <- s.Feed([]byte(" second")) }()

	time.Sleep(20 * time.Millisecond)
	close(view.release)

	if err := <-rendered; err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if err := <-fed; err != nil {
		t.Fatalf("expected feed to serialize with render, got %v", err)
	}

	line, _ := s.Line(0)
	if line != "first second" {
		t.Errorf("expected 'first second', got '%s'", line)
	}
}

func TestSessionScrollRequestAppliedOnRender(t *testing.T) {
	view := &recordView{}
	s := NewSession(view, WithSize(2, 20))
	if err := s.Feed([]byte("1\r\n2\r\n3\r\n4")); err != nil {
		t.Fatalf("feed failed: %v", err)
	}
	if err := s.Render(); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	s.RequestScroll(ScrollRequest{Granularity: ScrollLine, Direction: ScrollUp})

	// The request sits queued until the next render pass.
	if s.Screen().History().Position() != s.Screen().History().Size() {
		t.Fatal("expected request not yet applied")
	}

	if err := s.Render(); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if s.Screen().History().Live() {
		t.Error("expected detached after render applied the scroll")
	}
}

func TestSessionResizeRequestAppliedOnRender(t *testing.T) {
	s := NewSession(&recordView{}, WithSize(4, 20))

	s.RequestResize(10, 40)
	if err := s.Render(); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if s.Screen().Rows() != 10 || s.Screen().Cols() != 40 {
		t.Errorf("expected 10x40, got %dx%d", s.Screen().Rows(), s.Screen().Cols())
	}
}

func TestSessionTextRange(t *testing.T) {
	s := NewSession(&recordView{}, WithSize(4, 20))
	if err := s.Feed([]byte("one\r\ntwo")); err != nil {
		t.Fatalf("feed failed: %v", err)
	}

	text, err := s.TextRange(0, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "one\ntwo" {
		t.Errorf("expected 'one\\ntwo', got %q", text)
	}
}

func TestSessionPump(t *testing.T) {
	view := &recordView{}
	s := NewSession(view, WithSize(4, 20))

	err := s.Pump(context.Background(), bytes.NewReader([]byte("pumped")))
	if err != nil {
		t.Fatalf("pump failed: %v", err)
	}

	line, _ := s.Line(0)
	if line != "pumped" {
		t.Errorf("expected 'pumped', got '%s'", line)
	}
	if got := view.count("replace"); got == 0 {
		t.Error("expected render passes during pump")
	}
}

func TestSessionPumpCanceled(t *testing.T) {
	s := NewSession(&recordView{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Pump(ctx, bytes.NewReader([]byte("ignored")))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSessionManager(t *testing.T) {
	m := NewSessionManager()
	a := NewSession(&recordView{})
	b := NewSession(&recordView{})

	m.Register(a)
	m.Register(b)

	if m.Len() != 2 {
		t.Errorf("expected 2 sessions, got %d", m.Len())
	}
	if got := m.Get(a.ID()); got != a {
		t.Error("expected to find session a")
	}

	m.Deregister(a.ID())
	if m.Get(a.ID()) != nil {
		t.Error("expected session a removed")
	}
	if m.Len() != 1 {
		t.Errorf("expected 1 session, got %d", m.Len())
	}

	count := 0
	m.Each(func(*Session) { count++ })
	if count != 1 {
		t.Errorf("expected Each over 1 session, got %d", count)
	}
}
