package termview

import "errors"

var (
	// ErrSessionClosed is returned by operations on a closed session.
	ErrSessionClosed = errors.New("termview: session closed")

	// ErrConcurrentMutation is returned when a feed arrives from inside a
	// render pass, i.e. a ViewBuffer callback mutating the screen it is
	// being rendered from. The session lock makes any other interleaving
	// impossible; this error surfaces the one that remains instead of
	// producing a torn pass.
	ErrConcurrentMutation = errors.New("termview: concurrent mutation during render pass")

	// ErrOutOfRangeRow is returned for row indices outside the viewport.
	ErrOutOfRangeRow = errors.New("termview: row out of range")

	// ErrInvalidColorPair is returned when a color pair key cannot be
	// parsed back into named colors.
	ErrInvalidColorPair = errors.New("termview: invalid color pair")

	// ErrShellStopped is returned when writing to a shell whose process
	// has exited.
	ErrShellStopped = errors.New("termview: shell stopped")
)
