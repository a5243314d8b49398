package termview

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
)

// Session ties one screen, one synchronizer, and one request queue
// together behind a single mutex. Feed, Render, and Close serialize
// against each other; scroll and resize requests can be enqueued from
// any goroutine and are applied at the head of the next render pass.
type Session struct {
	id string

	mu     sync.Mutex
	closed bool

	screen *Screen
	syncer *Synchronizer
	coord  *Coordinator

	// Construction-time settings, populated by options.
	rows       int
	cols       int
	scrollback int
	ratio      float64
	showColors bool
	response   io.Writer
	bell       BellHandler
	titleFn    TitleHandler
	logf       Logger
}

// NewSession creates a session rendering into the given view buffer.
func NewSession(view ViewBuffer, opts ...Option) *Session {
	s := &Session{
		id:         uuid.NewString(),
		rows:       DefaultRows,
		cols:       DefaultCols,
		scrollback: DefaultScrollback,
		ratio:      DefaultScrollRatio,
		showColors: true,
		logf:       func(string, ...any) {},
	}

	for _, opt := range opts {
		opt(s)
	}

	s.screen = NewScreen(s.rows, s.cols, s.scrollback, s.ratio)
	s.screen.SetLogger(s.logf)
	if s.response != nil {
		s.screen.SetResponseWriter(s.response)
	}
	if s.bell != nil {
		s.screen.SetBellHandler(s.bell)
	}
	if s.titleFn != nil {
		s.screen.SetTitleHandler(s.titleFn)
	}

	s.syncer = NewSynchronizer(s.screen, view, s.showColors)
	s.syncer.SetLogger(s.logf)
	s.coord = NewCoordinator()

	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Screen exposes the underlying screen for inspection. Mutating it
// outside Feed and Render bypasses the session's serialization.
func (s *Session) Screen() *Screen { return s.screen }

// Feed decodes terminal output into the screen. It blocks until any
// in-flight render pass completes, and fails with ErrSessionClosed
// after Close. Calling it from inside a ViewBuffer callback deadlocks;
// a callback that must mutate the screen gets ErrConcurrentMutation
// from Screen.Feed instead.
func (s *Session) Feed(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if _, err := s.screen.Feed(data); err != nil {
		return fmt.Errorf("feed: %w", err)
	}
	return nil
}

// Render applies queued scroll and resize requests, then synchronizes
// the view buffer with every dirty row. A pass over a clean screen with
// an unmoved cursor performs no buffer edits.
func (s *Session) Render() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}

	s.coord.Apply(s.screen)
	s.syncer.Sync()
	return nil
}

// RequestScroll queues a paging action for the next render pass.
func (s *Session) RequestScroll(req ScrollRequest) {
	s.coord.RequestScroll(req)
}

// RequestResize queues a viewport size change for the next render pass.
func (s *Session) RequestResize(rows, cols int) {
	s.coord.RequestResize(rows, cols)
}

// Line returns the rendered text of one viewport row.
func (s *Session) Line(row int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", ErrSessionClosed
	}
	text, ok := s.screen.DisplayLine(row)
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrOutOfRangeRow, row)
	}
	return text, nil
}

// TextRange returns the text of viewport rows [start, end) joined by
// newlines. Used for copy extraction.
func (s *Session) TextRange(start, end int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", ErrSessionClosed
	}
	return s.screen.TextRange(start, end), nil
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close marks the session closed: subsequent Feed and Render calls fail
// with ErrSessionClosed, the host's highlight regions are erased, and
// the render cache is dropped. Closing twice is a no-op.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.syncer.release()
	return nil
}

// Pump reads terminal output from r and feeds it through the session,
// rendering after every chunk, until the reader drains, the context is
// canceled, or the session closes. A closed session ends the pump
// without error.
//
// Cancellation is only observed between reads. A Read blocked on a quiet
// reader holds the pump until the reader itself is closed, so hosts
// cancel by closing the producer (Shell.Stop) as well as the context.
func (s *Session) Pump(ctx context.Context, r io.Reader) error {
	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := r.Read(buf)
		if n > 0 {
			if ferr := s.Feed(buf[:n]); ferr != nil {
				if ferr == ErrSessionClosed {
					return nil
				}
				return ferr
			}
			if rerr := s.Render(); rerr != nil {
				if rerr == ErrSessionClosed {
					return nil
				}
				return rerr
			}
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("pump: %w", err)
		}
	}
}

// SessionManager tracks live sessions by id. Hosts embedding multiple
// terminals register each session here and look it up from view
// callbacks instead of holding globals.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionManager creates an empty manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]*Session)}
}

// Register adds a session to the manager.
func (m *SessionManager) Register(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID()] = s
}

// Deregister removes a session by id.
func (m *SessionManager) Deregister(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Get returns the session with the given id, or nil.
func (m *SessionManager) Get(id string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// Each calls fn for every registered session.
func (m *SessionManager) Each(fn func(*Session)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.sessions {
		fn(s)
	}
}

// Len returns the number of registered sessions.
func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
