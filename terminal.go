package linereader

import (
	"io"
	"os"
	"runtime"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-tty"
	"golang.org/x/term"
)

// terminalInterface abstracts the terminal operations the editor needs.
//
// Implementations:
//   - realTerminal: go-tty input, x/term raw mode
//   - mockTerminal: scripted input for tests
type terminalInterface interface {
	SetRaw() error                        // Enter raw mode for immediate key processing
	Restore() error                       // Restore original terminal settings
	Size() (width, height int, err error) // Get terminal dimensions with safe fallbacks
	ReadRune() (rune, int, error)         // Read a single Unicode character from input
	Buffered() bool                       // Report input that can be read without blocking
	Output() io.Writer                    // Writer for rendering
	Close() error                         // Clean up resources and prevent fd leaks
}

// realTerminal implements terminalInterface on top of go-tty.
//
// Raw mode is handled with golang.org/x/term on stdin so the original state
// can be restored after every line, including when the line ends with Ctrl+C.
// On Windows the output goes through go-colorable for ANSI support.
type realTerminal struct {
	tty           *tty.TTY    // TTY handle from go-tty for cross-platform terminal operations
	output        io.Writer   // Color-capable output writer (colorable on Windows, stdout elsewhere)
	probe         *fdProbe    // Zero-timeout poll on the tty input
	closed        bool        // Track if terminal is already closed to prevent double-close panic on Windows
	stdinFd       int         // File descriptor for stdin for raw mode management
	originalState *term.State // Original terminal state to restore on exit
}

func newRealTerminal() (*realTerminal, error) {
	t, err := tty.Open()
	if err != nil {
		return nil, err
	}

	return &realTerminal{
		tty:     t,
		output:  newOutput(),
		probe:   newFDProbe(t.Input().Fd()),
		stdinFd: int(os.Stdin.Fd()),
	}, nil
}

// newOutput returns stdout, wrapped for ANSI sequences on Windows.
func newOutput() io.Writer {
	if runtime.GOOS == "windows" {
		return colorable.NewColorableStdout()
	}
	return os.Stdout
}

func (t *realTerminal) SetRaw() error {
	if term.IsTerminal(t.stdinFd) {
		state, err := term.GetState(t.stdinFd)
		if err != nil {
			return err
		}
		t.originalState = state

		if _, err := term.MakeRaw(t.stdinFd); err != nil {
			return err
		}
	}
	return nil
}

func (t *realTerminal) Restore() error {
	if t.originalState != nil && term.IsTerminal(t.stdinFd) {
		err := term.Restore(t.stdinFd, t.originalState)
		// Reset the state so that SetRaw can capture a fresh baseline next time
		t.originalState = nil
		return err
	}
	return nil
}

func (t *realTerminal) Size() (width, height int, err error) {
	w, h, err := t.tty.Size()
	if err != nil || w <= 0 || h <= 0 {
		// Safe fallback so layout math never divides by zero
		return 80, 24, err
	}
	return w, h, nil
}

func (t *realTerminal) ReadRune() (rune, int, error) {
	r, err := t.tty.ReadRune()
	if err != nil {
		return 0, 0, err
	}
	return r, 1, nil
}

// Buffered checks go-tty's read buffer first; bytes there are invisible to poll.
func (t *realTerminal) Buffered() bool {
	return t.tty.Buffered() || t.probe.HasPendingInput()
}

func (t *realTerminal) Output() io.Writer {
	return t.output
}

func (t *realTerminal) Close() error {
	// Prevent double-close which causes panic on Windows
	if t.closed {
		return nil
	}
	if t.tty != nil {
		err := t.tty.Close()
		t.closed = true
		return err
	}
	return nil
}
