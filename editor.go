package linereader

import (
	"strings"
)

// Completer returns completion candidates for prefix, the text before the
// cursor. prefixLength is the byte length of the token being completed.
// LineReader.GetCompletions has this signature.
type Completer func(prefix string, prefixLength int) []string

// EditorConfig configures the terminal editor.
type EditorConfig struct {
	Completer           Completer       // Tab completion (nil disables it)
	History             func() []string // Entries for Up/Down, oldest first (nil disables it)
	ColorScheme         *ColorScheme    // nil selects ThemeDefault
	WordBreakCharacters string          // "" selects DefaultWordBreakCharacters
}

// Editor is a raw-mode terminal line editor. It edits one physical line at a
// time and reports how the line ended:
//
//   - Enter: StatusInputLine with the edited text
//   - Ctrl+C: StatusResetLine
//   - Ctrl+D on an empty line, or a read error: StatusAbort
//
// Supported editing keys: Left/Right, Home/End (Ctrl+A/Ctrl+E), Ctrl+Left/Right,
// Backspace, Delete, Ctrl+K, Ctrl+U, Ctrl+W, Up/Down for history and Tab for
// completion.
//
// Editor is not safe for concurrent use.
type Editor struct {
	terminal            terminalInterface
	renderer            *renderer
	keyMap              *keyMap
	completer           Completer
	history             func() []string
	wordBreakCharacters string
	buffer              []rune
	cursor              int
}

// NewEditor opens the controlling terminal.
func NewEditor(config EditorConfig) (*Editor, error) {
	t, err := newRealTerminal()
	if err != nil {
		return nil, err
	}
	return newEditor(t, config), nil
}

func newEditor(t terminalInterface, config EditorConfig) *Editor {
	if config.WordBreakCharacters == "" {
		config.WordBreakCharacters = DefaultWordBreakCharacters
	}
	return &Editor{
		terminal:            t,
		renderer:            newRenderer(t.Output(), config.ColorScheme),
		keyMap:              newDefaultKeyMap(),
		completer:           config.Completer,
		history:             config.History,
		wordBreakCharacters: config.WordBreakCharacters,
	}
}

// ReadOneLine shows prompt and edits one line in raw mode.
func (e *Editor) ReadOneLine(prompt string) (InputStatus, string) {
	if err := e.terminal.SetRaw(); err != nil {
		return StatusAbort, ""
	}
	defer func() {
		_ = e.terminal.Restore()
	}()

	// Size falls back to 80x24 on error, which is good enough for the listing.
	if width, _, _ := e.terminal.Size(); width > 0 {
		e.renderer.width = width
	}

	e.buffer = e.buffer[:0]
	e.cursor = 0
	if err := e.renderer.render(prompt, "", 0); err != nil {
		return StatusAbort, ""
	}

	var history []string
	if e.history != nil {
		history = e.history()
	}
	historyIndex := len(history)

	for {
		r, _, err := e.terminal.ReadRune()
		if err != nil {
			return StatusAbort, ""
		}

		var action editAction
		if r == '\x1b' {
			seq, err := e.readEscapeSequence()
			if err != nil {
				continue
			}
			action = e.keyMap.sequenceAction(seq)
		} else {
			action = e.keyMap.action(r)
		}

		var completions []string

		switch action {
		case actionSubmit:
			line := string(e.buffer)
			_ = e.renderer.finish(prompt, line, "")
			return StatusInputLine, trimRight(line)

		case actionReset:
			_ = e.renderer.finish(prompt, string(e.buffer), "^C")
			return StatusResetLine, ""

		case actionEOF:
			if len(e.buffer) == 0 {
				_ = e.renderer.finish(prompt, "", "")
				return StatusAbort, ""
			}
			e.deleteForward()

		case actionMoveLeft:
			if e.cursor > 0 {
				e.cursor--
			}

		case actionMoveRight:
			if e.cursor < len(e.buffer) {
				e.cursor++
			}

		case actionMoveHome:
			e.cursor = 0

		case actionMoveEnd:
			e.cursor = len(e.buffer)

		case actionMoveWordLeft:
			e.cursor = e.findWordBoundary(-1)

		case actionMoveWordRight:
			e.cursor = e.findWordBoundary(1)

		case actionDeleteBack:
			if e.cursor > 0 {
				e.buffer = append(e.buffer[:e.cursor-1], e.buffer[e.cursor:]...)
				e.cursor--
			}

		case actionDeleteForward:
			e.deleteForward()

		case actionDeleteLine:
			e.buffer = e.buffer[:0]
			e.cursor = 0

		case actionDeleteToEnd:
			e.buffer = e.buffer[:e.cursor]

		case actionDeleteWordBack:
			if e.cursor > 0 {
				start := e.findWordBoundary(-1)
				e.buffer = append(e.buffer[:start], e.buffer[e.cursor:]...)
				e.cursor = start
			}

		case actionHistoryUp:
			if historyIndex > 0 {
				historyIndex--
				e.setBuffer(history[historyIndex])
			}

		case actionHistoryDown:
			if historyIndex < len(history) {
				historyIndex++
				if historyIndex == len(history) {
					e.setBuffer("")
				} else {
					e.setBuffer(history[historyIndex])
				}
			}

		case actionComplete:
			completions = e.complete()

		default:
			if r >= 32 && r != 127 {
				e.insertText(string(r))
				historyIndex = len(history)
			}
		}

		if err := e.renderer.renderWithCompletions(prompt, string(e.buffer), e.cursor, completions); err != nil {
			return StatusAbort, ""
		}
	}
}

// HasPendingInput reports keystrokes that are already queued, as happens
// when a block of text is pasted.
func (e *Editor) HasPendingInput() bool {
	return e.terminal.Buffered()
}

// Close releases the terminal.
func (e *Editor) Close() error {
	return e.terminal.Close()
}

// complete asks the completer about the token before the cursor. A single
// candidate replaces the token; several extend it to their common prefix
// and are returned for listing.
func (e *Editor) complete() []string {
	if e.completer == nil {
		return nil
	}

	before := string(e.buffer[:e.cursor])
	token := before
	if pos := strings.LastIndexAny(before, e.wordBreakCharacters); pos >= 0 {
		token = before[pos+1:]
	}

	candidates := e.completer(before, len(token))
	switch len(candidates) {
	case 0:
		return nil
	case 1:
		e.replaceToken(token, candidates[0])
		return nil
	}

	common := commonPrefix(candidates, !hasUpperASCII(before))
	if len(common) > len(token) {
		// Keep what was typed; only the missing tail comes from the candidates.
		e.replaceToken(token, token+common[len(token):])
	}
	return candidates
}

// replaceToken swaps the token that ends at the cursor for word.
func (e *Editor) replaceToken(token, word string) {
	start := e.cursor - len([]rune(token))
	if start < 0 {
		start = 0
	}
	tail := append([]rune{}, e.buffer[e.cursor:]...)
	e.buffer = append(append(e.buffer[:start], []rune(word)...), tail...)
	e.cursor = start + len([]rune(word))
}

func (e *Editor) insertText(text string) {
	runes := []rune(text)
	e.buffer = append(e.buffer[:e.cursor], append(runes, e.buffer[e.cursor:]...)...)
	e.cursor += len(runes)
}

func (e *Editor) setBuffer(text string) {
	e.buffer = []rune(text)
	e.cursor = len(e.buffer)
}

func (e *Editor) deleteForward() {
	if e.cursor < len(e.buffer) {
		e.buffer = append(e.buffer[:e.cursor], e.buffer[e.cursor+1:]...)
	}
}

// findWordBoundary returns the start of the next word (direction > 0) or
// of the previous word (direction < 0).
func (e *Editor) findWordBoundary(direction int) int {
	if direction > 0 {
		pos := e.cursor
		for pos < len(e.buffer) && !isWordChar(e.buffer[pos]) {
			pos++
		}
		for pos < len(e.buffer) && isWordChar(e.buffer[pos]) {
			pos++
		}
		return pos
	}
	pos := e.cursor
	if pos > 0 {
		pos--
	}
	for pos > 0 && !isWordChar(e.buffer[pos]) {
		pos--
	}
	for pos > 0 && isWordChar(e.buffer[pos-1]) {
		pos--
	}
	return pos
}

// isWordChar treats letters, digits and underscore as word characters.
func isWordChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
}

func (e *Editor) readEscapeSequence() (string, error) {
	seq := make([]rune, 0, 10)
	for range 10 { // Limit to prevent infinite loop
		r, _, err := e.terminal.ReadRune()
		if err != nil {
			return "", err
		}
		seq = append(seq, r)

		s := string(seq)
		if s == "[A" || s == "[B" || s == "[C" || s == "[D" || s == "[H" || s == "[F" {
			return s, nil
		}
		if strings.HasSuffix(s, "~") && len(s) >= 3 {
			return s, nil
		}
		if len(seq) >= 3 && (seq[len(seq)-1] < '0' || seq[len(seq)-1] > '9') && seq[len(seq)-1] != ';' {
			return s, nil
		}
	}
	return string(seq), nil
}

// commonPrefix returns the longest prefix shared by all words, taken from
// the first word. With fold set, letters are compared ignoring ASCII case.
func commonPrefix(words []string, fold bool) string {
	if len(words) == 0 {
		return ""
	}
	prefix := words[0]
	for _, word := range words[1:] {
		n := 0
		for n < len(prefix) && n < len(word) {
			a, b := prefix[n], word[n]
			if fold {
				a, b = toLowerASCII(a), toLowerASCII(b)
			}
			if a != b {
				break
			}
			n++
		}
		prefix = prefix[:n]
	}
	return prefix
}

// editAction is what a key does in the editor.
type editAction int

const (
	actionNone editAction = iota
	actionSubmit
	actionReset
	actionEOF
	actionMoveLeft
	actionMoveRight
	actionMoveHome
	actionMoveEnd
	actionMoveWordLeft
	actionMoveWordRight
	actionDeleteBack
	actionDeleteForward
	actionDeleteLine
	actionDeleteToEnd
	actionDeleteWordBack
	actionHistoryUp
	actionHistoryDown
	actionComplete
)

// keyMap maps single keys and escape sequences (without the leading ESC)
// to actions.
type keyMap struct {
	bindings  map[rune]editAction
	sequences map[string]editAction
}

func newDefaultKeyMap() *keyMap {
	return &keyMap{
		bindings: map[rune]editAction{
			'\r':   actionSubmit,
			'\n':   actionSubmit,
			'\x03': actionReset,          // Ctrl+C
			'\x04': actionEOF,            // Ctrl+D
			'\x01': actionMoveHome,       // Ctrl+A
			'\x05': actionMoveEnd,        // Ctrl+E
			'\x02': actionMoveLeft,       // Ctrl+B
			'\x06': actionMoveRight,      // Ctrl+F
			'\x0B': actionDeleteToEnd,    // Ctrl+K
			'\x15': actionDeleteLine,     // Ctrl+U
			'\x17': actionDeleteWordBack, // Ctrl+W
			'\x10': actionHistoryUp,      // Ctrl+P
			'\x0E': actionHistoryDown,    // Ctrl+N
			'\t':   actionComplete,
			'\x7f': actionDeleteBack, // Backspace
			'\b':   actionDeleteBack, // Backspace
		},
		sequences: map[string]editAction{
			"[A":    actionHistoryUp,
			"[B":    actionHistoryDown,
			"[C":    actionMoveRight,
			"[D":    actionMoveLeft,
			"[H":    actionMoveHome,
			"[F":    actionMoveEnd,
			"[1~":   actionMoveHome,
			"[4~":   actionMoveEnd,
			"[1;5C": actionMoveWordRight, // Ctrl+Right
			"[1;5D": actionMoveWordLeft,  // Ctrl+Left
			"[3~":   actionDeleteForward, // Delete
		},
	}
}

func (km *keyMap) action(key rune) editAction {
	return km.bindings[key]
}

func (km *keyMap) sequenceAction(seq string) editAction {
	return km.sequences[seq]
}
