package linereader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"golang.org/x/term"
)

// InputStatus is the outcome of reading one physical line.
type InputStatus int

const (
	// StatusAbort means the input is closed or unusable. The text is undefined.
	StatusAbort InputStatus = iota
	// StatusInputLine means a line was read.
	StatusInputLine
	// StatusResetLine asks the reader to drop what has been assembled so far
	// and start over with the first prompt (Ctrl+C in an interactive editor).
	StatusResetLine
)

// String returns the status name.
func (s InputStatus) String() string {
	switch s {
	case StatusAbort:
		return "abort"
	case StatusInputLine:
		return "input_line"
	case StatusResetLine:
		return "reset_line"
	default:
		return fmt.Sprintf("InputStatus(%d)", int(s))
	}
}

// LineInput reads exactly one physical line after showing prompt.
//
// This is the seam to the character-editing engine. Editor is the built-in
// terminal implementation and StdioInput the plain one; tests use scripted
// fakes.
type LineInput interface {
	ReadOneLine(prompt string) (InputStatus, string)
}

// StdioInput reads cooked lines from a stream, the way a shell reads from a
// pipe or a terminal without raw mode.
type StdioInput struct {
	reader *bufio.Reader
	output io.Writer
	fd     ReadinessChecker // nil unless the input is a terminal
	eof    bool
}

// NewStdioInput creates a line input reading from in and writing prompts to
// out. A nil out discards prompts.
func NewStdioInput(in io.Reader, out io.Writer) *StdioInput {
	if out == nil {
		out = io.Discard
	}
	si := &StdioInput{
		reader: bufio.NewReader(in),
		output: out,
	}
	// Regular files always poll as readable, so only terminals are probed.
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		si.fd = newFDProbe(f.Fd())
	}
	return si
}

// ReadOneLine writes prompt and reads up to the next newline. A final line
// without a newline is returned once; the following call aborts.
func (si *StdioInput) ReadOneLine(prompt string) (InputStatus, string) {
	if si.eof {
		return StatusAbort, ""
	}
	if _, err := fmt.Fprint(si.output, prompt); err != nil {
		return StatusAbort, ""
	}

	text, err := si.reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || text == "" {
			si.eof = true
			return StatusAbort, ""
		}
		si.eof = true
	}
	return StatusInputLine, trimRight(text)
}

// HasPendingInput reports bytes already buffered by the reader or, for a
// terminal, queued in the kernel.
func (si *StdioInput) HasPendingInput() bool {
	if si.reader.Buffered() > 0 {
		return true
	}
	return si.fd != nil && si.fd.HasPendingInput()
}

// trimRight removes trailing whitespace.
func trimRight(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}
