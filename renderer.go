package linereader

import (
	"fmt"
	"io"
	"strings"
)

// maxListedCompletions limits the completion listing below the input line.
const maxListedCompletions = 10

// renderer paints one physical input line and, on request, the list of
// completion candidates under it.
//
// The editor works in raw mode, so every line break is written as "\r\n".
// Completions are painted below the input and the cursor is moved back up,
// which keeps redraws to "return, clear to end of screen, paint".
type renderer struct {
	output      io.Writer    // Target output writer (typically stdout or colorable wrapper)
	colorScheme *ColorScheme // Color configuration for themed rendering
	width       int          // Terminal width; the listing is cut to fit one row
}

// newRenderer creates a new renderer with the given output and color scheme.
func newRenderer(output io.Writer, colorScheme *ColorScheme) *renderer {
	if colorScheme == nil {
		colorScheme = ThemeDefault
	}
	return &renderer{
		output:      output,
		colorScheme: colorScheme,
		width:       80,
	}
}

// render displays the prompt with the current input.
func (r *renderer) render(prompt, input string, cursor int) error {
	return r.renderWithCompletions(prompt, input, cursor, nil)
}

// renderWithCompletions displays the prompt, the input and a completion listing.
func (r *renderer) renderWithCompletions(prompt, input string, cursor int, completions []string) error {
	var sb strings.Builder

	// Return to column zero and clear everything painted last time.
	sb.WriteString("\r\x1b[J")
	sb.WriteString(r.colorScheme.paint(r.colorScheme.Prompt, prompt))
	sb.WriteString(r.colorScheme.paint(r.colorScheme.Input, input))

	listed := completions
	if len(listed) > maxListedCompletions {
		listed = listed[:maxListedCompletions]
	}
	if len(listed) > 0 {
		listing := strings.Join(listed, "  ")
		if len(completions) > len(listed) {
			listing += fmt.Sprintf("  (+%d more)", len(completions)-len(listed))
		}
		if runes := []rune(listing); r.width > 1 && len(runes) >= r.width {
			listing = string(runes[:r.width-1])
		}
		sb.WriteString("\r\n")
		sb.WriteString(r.colorScheme.paint(r.colorScheme.Completion, listing))
		sb.WriteString("\x1b[1A")
	}

	// Place the cursor: column = prompt width + runes before the cursor.
	sb.WriteString("\r")
	if col := len([]rune(prompt)) + cursor; col > 0 {
		fmt.Fprintf(&sb, "\x1b[%dC", col)
	}

	_, err := io.WriteString(r.output, sb.String())
	return err
}

// finish repaints the line without a listing, appends suffix (such as
// "^C") and moves to the next row.
func (r *renderer) finish(prompt, input, suffix string) error {
	if err := r.render(prompt, input, len([]rune(input))); err != nil {
		return err
	}
	_, err := io.WriteString(r.output, suffix+"\r\n")
	return err
}
