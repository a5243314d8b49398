package termview

import (
	"fmt"
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"
)

// keySequences maps special key names to the escape sequences a linux
// terminal sends for them.
var keySequences = map[string]string{
	"enter":     "\r",
	"tab":       "\t",
	"backspace": "\x7f",
	"escape":    "\x1b",
	"space":     " ",
	"up":        "\x1b[A",
	"down":      "\x1b[B",
	"right":     "\x1b[C",
	"left":      "\x1b[D",
	"home":      "\x1b[1~",
	"end":       "\x1b[4~",
	"insert":    "\x1b[2~",
	"delete":    "\x1b[3~",
	"pageup":    "\x1b[5~",
	"pagedown":  "\x1b[6~",
	"f1":        "\x1bOP",
	"f2":        "\x1bOQ",
	"f3":        "\x1bOR",
	"f4":        "\x1bOS",
	"f5":        "\x1b[15~",
	"f6":        "\x1b[17~",
	"f7":        "\x1b[18~",
	"f8":        "\x1b[19~",
	"f9":        "\x1b[20~",
	"f10":       "\x1b[21~",
	"f11":       "\x1b[23~",
	"f12":       "\x1b[24~",
}

// appCursorSequences overrides arrow keys when the guest enabled
// application cursor key mode.
var appCursorSequences = map[string]string{
	"up":    "\x1bOA",
	"down":  "\x1bOB",
	"right": "\x1bOC",
	"left":  "\x1bOD",
}

// Shell runs a command on a pseudo-terminal and exposes its output
// stream and input channel. It is the producer side a Session's Pump
// consumes.
type Shell struct {
	cmd  *exec.Cmd
	ptmx *os.File

	mu      sync.Mutex
	stopped bool
	done    chan struct{}
}

// StartShell launches the configured command on a new PTY sized to
// rows x cols. An empty Config.Shell falls back to $SHELL, then /bin/sh.
func StartShell(cfg Config, rows, cols int) (*Shell, error) {
	prog := cfg.Shell
	if prog == "" {
		prog = os.Getenv("SHELL")
	}
	if prog == "" {
		prog = "/bin/sh"
	}

	cmd := exec.Command(prog, cfg.ShellArgs...)
	cmd.Env = append(os.Environ(), "TERM=linux")

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
	if err != nil {
		return nil, fmt.Errorf("start shell: %w", err)
	}

	sh := &Shell{
		cmd:  cmd,
		ptmx: ptmx,
		done: make(chan struct{}),
	}

	go func() {
		_ = cmd.Wait()
		sh.mu.Lock()
		sh.stopped = true
		sh.mu.Unlock()
		close(sh.done)
	}()

	return sh, nil
}

// Read reads terminal output produced by the shell. It returns io.EOF
// (wrapped in a PathError on linux) once the process exits and the PTY
// drains.
func (sh *Shell) Read(p []byte) (int, error) {
	return sh.ptmx.Read(p)
}

// Write sends raw bytes to the shell's input.
func (sh *Shell) Write(p []byte) (int, error) {
	if !sh.Running() {
		return 0, ErrShellStopped
	}
	return sh.ptmx.Write(p)
}

// SendString types a string into the shell.
func (sh *Shell) SendString(text string) error {
	_, err := sh.Write([]byte(text))
	return err
}

// SendKey encodes a named key (or single character) with modifiers and
// sends it. appCursor selects application-mode arrow sequences; the
// caller reads it off the screen's ModeCursorKeys flag.
func (sh *Shell) SendKey(key string, ctrl, alt, appCursor bool) error {
	seq, err := encodeKey(key, ctrl, alt, appCursor)
	if err != nil {
		return err
	}
	return sh.SendString(seq)
}

// encodeKey translates a key name plus modifiers into the byte sequence
// a linux terminal would send.
func encodeKey(key string, ctrl, alt, appCursor bool) (string, error) {
	seq, ok := keySequences[key]
	if appCursor {
		if app, found := appCursorSequences[key]; found {
			seq = app
			ok = true
		}
	}

	if !ok {
		if len(key) != 1 {
			return "", fmt.Errorf("send key: unknown key %q", key)
		}
		seq = key
		if ctrl {
			c := key[0]
			if c >= 'a' && c <= 'z' {
				c -= 'a' - 'A'
			}
			if c >= '@' && c <= '_' {
				seq = string([]byte{c & 0x1f})
			}
		}
	}

	if alt {
		seq = "\x1b" + seq
	}
	return seq, nil
}

// Resize updates the PTY's window size. The guest receives SIGWINCH.
func (sh *Shell) Resize(rows, cols int) error {
	if !sh.Running() {
		return ErrShellStopped
	}
	if err := pty.Setsize(sh.ptmx, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	}); err != nil {
		return fmt.Errorf("resize pty: %w", err)
	}
	return nil
}

// Running reports whether the shell process is still alive.
func (sh *Shell) Running() bool {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return !sh.stopped
}

// Done is closed when the shell process exits.
func (sh *Shell) Done() <-chan struct{} {
	return sh.done
}

// Stop kills the shell process and closes the PTY. Safe to call more
// than once.
func (sh *Shell) Stop() error {
	sh.mu.Lock()
	if sh.stopped {
		sh.mu.Unlock()
		_ = sh.ptmx.Close()
		return nil
	}
	sh.mu.Unlock()

	if sh.cmd.Process != nil {
		_ = sh.cmd.Process.Kill()
	}
	<-sh.done
	return sh.ptmx.Close()
}
