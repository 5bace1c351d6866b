package linereader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEditor(input string, config EditorConfig) (*Editor, *mockTerminal) {
	mock := newMockTerminal(input)
	if config.ColorScheme == nil {
		config.ColorScheme = ThemeMonochrome
	}
	return newEditor(mock, config), mock
}

func TestEditorReadOneLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		wantStatus InputStatus
		want       string
	}{
		{name: "simple line", input: "hello\r", wantStatus: StatusInputLine, want: "hello"},
		{name: "newline submits", input: "hello\n", wantStatus: StatusInputLine, want: "hello"},
		{name: "trailing spaces trimmed", input: "hello  \r", wantStatus: StatusInputLine, want: "hello"},
		{name: "empty line", input: "\r", wantStatus: StatusInputLine, want: ""},
		{name: "unicode", input: "こんにちは\r", wantStatus: StatusInputLine, want: "こんにちは"},
		{name: "ctrl+c resets", input: "SELECT\x03", wantStatus: StatusResetLine, want: ""},
		{name: "ctrl+d on empty line aborts", input: "\x04", wantStatus: StatusAbort, want: ""},
		{name: "end of input aborts", input: "partial", wantStatus: StatusAbort, want: ""},
		{name: "ctrl+d deletes under cursor", input: "ab\x01\x04\r", wantStatus: StatusInputLine, want: "b"},
		{name: "backspace", input: "abc\x7f\r", wantStatus: StatusInputLine, want: "ab"},
		{name: "ctrl+h backspace", input: "abc\b\b\r", wantStatus: StatusInputLine, want: "a"},
		{name: "backspace at start", input: "\x7fa\r", wantStatus: StatusInputLine, want: "a"},
		{name: "left arrow then insert", input: "ac\x1b[Db\r", wantStatus: StatusInputLine, want: "abc"},
		{name: "right arrow", input: "ac\x1b[D\x1b[Cb\r", wantStatus: StatusInputLine, want: "acb"},
		{name: "home key", input: "bc\x1b[Ha\r", wantStatus: StatusInputLine, want: "abc"},
		{name: "home tilde key", input: "bc\x1b[1~a\r", wantStatus: StatusInputLine, want: "abc"},
		{name: "end key", input: "ab\x01\x1b[Fc\r", wantStatus: StatusInputLine, want: "abc"},
		{name: "ctrl+a and ctrl+e", input: "b\x01a\x05c\r", wantStatus: StatusInputLine, want: "abc"},
		{name: "ctrl+b and ctrl+f", input: "ac\x02\x02\x06b\r", wantStatus: StatusInputLine, want: "abc"},
		{name: "delete key", input: "abc\x01\x1b[3~\r", wantStatus: StatusInputLine, want: "bc"},
		{name: "ctrl+k", input: "abc\x01\x06\x0b\r", wantStatus: StatusInputLine, want: "a"},
		{name: "ctrl+u", input: "abc\x15x\r", wantStatus: StatusInputLine, want: "x"},
		{name: "ctrl+w", input: "foo bar\x17\r", wantStatus: StatusInputLine, want: "foo"},
		{name: "ctrl+left", input: "foo bar\x1b[1;5Dx\r", wantStatus: StatusInputLine, want: "foo xbar"},
		{name: "ctrl+right", input: "foo bar\x01\x1b[1;5Cx\r", wantStatus: StatusInputLine, want: "foox bar"},
		{name: "unbound control characters ignored", input: "a\x07b\r", wantStatus: StatusInputLine, want: "ab"},
		{name: "tab without completer", input: "a\t\r", wantStatus: StatusInputLine, want: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			editor, mock := newTestEditor(tt.input, EditorConfig{})
			status, got := editor.ReadOneLine("> ")

			assert.Equal(t, tt.wantStatus, status)
			if status == StatusInputLine {
				assert.Equal(t, tt.want, got)
			}
			assert.False(t, mock.rawMode, "raw mode must be restored")
		})
	}
}

func TestEditorResetEchoesInterrupt(t *testing.T) {
	t.Parallel()

	editor, mock := newTestEditor("SELECT\x03", EditorConfig{})

	status, _ := editor.ReadOneLine("> ")
	require.Equal(t, StatusResetLine, status)
	assert.True(t, strings.HasSuffix(mock.output.String(), "> SELECT\r\x1b[8C^C\r\n"), "output: %q", mock.output.String())
}

func TestEditorReadsConsecutiveLines(t *testing.T) {
	t.Parallel()

	editor, mock := newTestEditor("one\rtwo\r", EditorConfig{})

	status, got := editor.ReadOneLine("> ")
	require.Equal(t, StatusInputLine, status)
	assert.Equal(t, "one", got)
	assert.True(t, editor.HasPendingInput(), "second line is still queued")

	status, got = editor.ReadOneLine("> ")
	require.Equal(t, StatusInputLine, status)
	assert.Equal(t, "two", got)
	assert.False(t, editor.HasPendingInput())

	status, _ = editor.ReadOneLine("> ")
	assert.Equal(t, StatusAbort, status)
	assert.Equal(t, 2, strings.Count(mock.output.String(), "\r\n"), "only submitted lines move to the next row")
}

func TestEditorHistory(t *testing.T) {
	t.Parallel()

	entries := []string{"SELECT 1;", "SELECT 2;"}
	history := func() []string { return entries }

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "up recalls last entry", input: "\x1b[A\r", want: "SELECT 2;"},
		{name: "up twice", input: "\x1b[A\x1b[A\r", want: "SELECT 1;"},
		{name: "up stops at oldest", input: "\x1b[A\x1b[A\x1b[A\r", want: "SELECT 1;"},
		{name: "up then down clears", input: "\x1b[A\x1b[B\r", want: ""},
		{name: "ctrl+p and ctrl+n", input: "\x10\x10\x0e\r", want: "SELECT 2;"},
		{name: "down at newest does nothing", input: "abc\x1b[B\r", want: "abc"},
		{name: "recalled entry can be edited", input: "\x1b[A\x7f\x7f3;\r", want: "SELECT 3;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			editor, _ := newTestEditor(tt.input, EditorConfig{History: history})
			status, got := editor.ReadOneLine("> ")

			require.Equal(t, StatusInputLine, status)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEditorCompletion(t *testing.T) {
	t.Parallel()

	suggest := NewSuggest("")
	suggest.AddWords([]string{"select", "selection", "from", "FROM_UNIXTIME", "where", "session"})

	tests := []struct {
		name    string
		input   string
		want    string
		listing string
	}{
		{name: "single candidate replaces token", input: "wh\t\r", want: "where"},
		{name: "completes last token only", input: "select * fr\t\r", want: "select * from"},
		{name: "uppercase query is case sensitive", input: "SELECT * FROM_\t\r", want: "SELECT * FROM_UNIXTIME"},
		{name: "common prefix extends token", input: "sel\t\r", want: "select", listing: "select  selection"},
		{name: "ambiguous prefix lists candidates", input: "se\t\r", want: "se", listing: "select  selection  session"},
		{name: "no candidates", input: "xyz\t\r", want: "xyz"},
		{name: "completion before cursor", input: "wh x\x01\x06\x06\t\r", want: "where x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			editor, mock := newTestEditor(tt.input, EditorConfig{Completer: suggest.GetCompletions})
			status, got := editor.ReadOneLine("> ")

			require.Equal(t, StatusInputLine, status)
			assert.Equal(t, tt.want, got)
			if tt.listing != "" {
				assert.Contains(t, mock.output.String(), "\r\n"+tt.listing+"\x1b[1A")
			}
		})
	}
}

func TestEditorCompletionUsesWordBreakCharacters(t *testing.T) {
	t.Parallel()

	var gotPrefix string
	var gotLength int
	completer := func(prefix string, prefixLength int) []string {
		gotPrefix, gotLength = prefix, prefixLength
		return []string{"users"}
	}

	editor, _ := newTestEditor("db.us\t\r", EditorConfig{
		Completer:           completer,
		WordBreakCharacters: ".",
	})
	status, got := editor.ReadOneLine("> ")

	require.Equal(t, StatusInputLine, status)
	assert.Equal(t, "db.users", got)
	assert.Equal(t, "db.us", gotPrefix)
	assert.Equal(t, 2, gotLength)
}

func TestEditorClose(t *testing.T) {
	t.Parallel()

	editor, mock := newTestEditor("", EditorConfig{})
	require.NoError(t, editor.Close())
	assert.True(t, mock.closed)
}

func TestCommonPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		words []string
		fold  bool
		want  string
	}{
		{name: "empty", words: nil, want: ""},
		{name: "single", words: []string{"select"}, want: "select"},
		{name: "shared", words: []string{"select", "selection"}, want: "select"},
		{name: "nothing shared", words: []string{"a", "b"}, want: ""},
		{name: "case sensitive", words: []string{"Select", "select"}, want: ""},
		{name: "case folded", words: []string{"Select", "select"}, fold: true, want: "Select"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, commonPrefix(tt.words, tt.fold))
		})
	}
}
