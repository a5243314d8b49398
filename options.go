package termview

import "io"

// Option configures a Session at construction time.
type Option func(*Session)

// WithSize sets the initial viewport dimensions.
func WithSize(rows, cols int) Option {
	return func(s *Session) {
		s.rows = rows
		s.cols = cols
	}
}

// WithScrollback sets the scrollback depth in rows. Zero disables
// retention.
func WithScrollback(depth int) Option {
	return func(s *Session) {
		s.scrollback = depth
	}
}

// WithScrollRatio sets the fraction of the viewport height one page
// scroll moves by.
func WithScrollRatio(ratio float64) Option {
	return func(s *Session) {
		s.ratio = ratio
	}
}

// WithHighlights enables or disables color run computation. Disabled,
// render passes only produce text and cursor edits.
func WithHighlights(enabled bool) Option {
	return func(s *Session) {
		s.showColors = enabled
	}
}

// WithResponse sets the writer terminal responses are sent to. A session
// created by StartShell wires this to the PTY automatically.
func WithResponse(w io.Writer) Option {
	return func(s *Session) {
		s.response = w
	}
}

// WithBell sets the handler for bell events.
func WithBell(b BellHandler) Option {
	return func(s *Session) {
		s.bell = b
	}
}

// WithTitle sets the handler for window title changes.
func WithTitle(t TitleHandler) Option {
	return func(s *Session) {
		s.titleFn = t
	}
}

// WithLogger sets the diagnostic logger for the session, screen, and
// synchronizer.
func WithLogger(logf Logger) Option {
	return func(s *Session) {
		s.logf = logf
	}
}
