package linereader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

// ErrEOF is returned by ReadLine when the input is closed or unusable.
// Anything assembled so far is discarded.
var ErrEOF = errors.New("EOF")

// assemblyState tracks where ReadLine is within one logical line.
type assemblyState int

const (
	stateAwaitFirstPrompt assemblyState = iota
	stateAwaitContinuationPrompt
	stateDone
	stateAborted
)

func (s assemblyState) String() string {
	switch s {
	case stateAwaitFirstPrompt:
		return "await_first_prompt"
	case stateAwaitContinuationPrompt:
		return "await_continuation_prompt"
	case stateDone:
		return "done"
	case stateAborted:
		return "aborted"
	default:
		return fmt.Sprintf("assemblyState(%d)", int(s))
	}
}

// LineReader assembles logical commands from physical input lines and
// offers prefix completion over a vocabulary.
//
// A command continues on the next line when the line ends with an extender
// (the marker is dropped), when multiline mode is on and the line does not
// end with a delimiter, or when more input is already queued (a paste).
//
// ReadLine must be called from one goroutine at a time. AddWords and
// GetCompletions may be called from any goroutine, including while ReadLine
// is blocked.
type LineReader struct {
	input      LineInput
	probe      ReadinessChecker
	history    History
	suggest    *Suggest
	logger     *log.Logger
	multiline  bool
	extenders  []string
	delimiters []string
	prevLine   string // last line handed to history
}

// New creates a LineReader reading from the process's standard input.
//
// Example:
//
//	lr, err := linereader.New(
//		linereader.WithExtenders(`\`),
//		linereader.WithDelimiters(";"),
//		linereader.WithHistoryFile("~/.myapp_history"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer lr.Close()
//
//	for {
//		query, err := lr.ReadLine(":) ", ":-] ")
//		if errors.Is(err, linereader.ErrEOF) {
//			break
//		}
//		run(query)
//	}
func New(options ...Option) (*LineReader, error) {
	return NewFromConfig(DefaultConfig(), options...)
}

// NewFromConfig creates a LineReader from config, with options applied on
// top. It is the way to use a Config returned by LoadConfigFile.
func NewFromConfig(config Config, options ...Option) (*LineReader, error) {
	for _, option := range options {
		option(&config)
	}

	logger := config.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "linereader",
			Level:  log.WarnLevel,
		})
	}

	lr := &LineReader{
		suggest:    NewSuggest(config.WordBreakCharacters),
		logger:     logger,
		multiline:  config.Multiline,
		extenders:  slices.Clone(config.Extenders),
		delimiters: slices.Clone(config.Delimiters),
	}

	for _, extender := range lr.extenders {
		if slices.Contains(lr.delimiters, extender) {
			logger.Debug("marker configured as both extender and delimiter", "marker", extender)
		}
	}

	var entries func() []string
	lr.history = config.History
	if lr.history == nil {
		hm := NewHistoryManager(config.HistoryConfig)
		if err := hm.LoadHistory(); err != nil {
			return nil, fmt.Errorf("failed to load history: %w", err)
		}
		lr.history = hm
		entries = hm.Entries
	}

	lr.input = config.Input
	if lr.input == nil {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			editor, err := NewEditor(EditorConfig{
				Completer:           lr.GetCompletions,
				History:             entries,
				ColorScheme:         config.ColorScheme,
				WordBreakCharacters: config.WordBreakCharacters,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to create terminal editor: %w", err)
			}
			lr.input = editor
		} else {
			lr.input = NewStdioInput(os.Stdin, newOutput())
		}
	}

	lr.probe = config.ReadinessChecker
	if lr.probe == nil {
		if checker, ok := lr.input.(ReadinessChecker); ok {
			lr.probe = checker
		} else {
			lr.probe = noPendingInput
		}
	}

	return lr, nil
}

// ReadLine reads one logical command. firstPrompt is shown for its first
// physical line, secondPrompt for continuation lines.
//
// The command is returned with its physical lines joined by "\n" and
// extenders removed. A line that differs from the previously returned one is
// added to the history. When the input ends ReadLine returns "" and ErrEOF;
// a partially assembled command is discarded.
func (lr *LineReader) ReadLine(firstPrompt, secondPrompt string) (string, error) {
	var line string
	state := stateAwaitFirstPrompt

	for state == stateAwaitFirstPrompt || state == stateAwaitContinuationPrompt {
		prompt := firstPrompt
		if state == stateAwaitContinuationPrompt {
			prompt = secondPrompt
		}

		status, input := lr.input.ReadOneLine(prompt)
		switch status {
		case StatusAbort:
			state = stateAborted
			continue
		case StatusResetLine:
			lr.logger.Debug("line reset", "discarded", len(line))
			line = ""
			state = stateAwaitFirstPrompt
			continue
		}

		input = trimRight(input)
		if input == "" {
			if line != "" && !lr.multiline && !lr.probe.HasPendingInput() {
				state = stateDone
			}
			continue
		}

		extender, hasExtender := matchSuffix(input, lr.extenders)
		_, hasDelimiter := matchSuffix(input, lr.delimiters)

		needNextLine := hasExtender || (lr.multiline && !hasDelimiter) || lr.probe.HasPendingInput()

		if hasExtender {
			input = trimRight(input[:len(input)-len(extender)])
			if input == "" {
				state = stateAwaitContinuationPrompt
				continue
			}
		}

		if line != "" {
			line += "\n"
		}
		line += input

		if needNextLine {
			state = stateAwaitContinuationPrompt
		} else {
			state = stateDone
		}
	}

	if state == stateAborted {
		lr.logger.Debug("input aborted", "discarded", len(line))
		return "", ErrEOF
	}

	if line != "" && line != lr.prevLine {
		if err := lr.history.Add(line); err != nil {
			lr.logger.Warn("failed to add line to history", "err", err)
		}
		lr.prevLine = line
	}
	return line, nil
}

// GetCompletions returns the vocabulary words completing the last token of
// prefix. See Suggest.GetCompletions.
func (lr *LineReader) GetCompletions(prefix string, prefixLength int) []string {
	return lr.suggest.GetCompletions(prefix, prefixLength)
}

// AddWords adds words to the completion vocabulary. It may be called at any
// time, from any goroutine, including before the first ReadLine.
func (lr *LineReader) AddWords(words []string) {
	lr.suggest.AddWords(words)
}

// Suggest returns the completion vocabulary.
func (lr *LineReader) Suggest() *Suggest {
	return lr.suggest
}

// Close releases the input if it holds resources, such as the terminal
// opened by the editor.
func (lr *LineReader) Close() error {
	if closer, ok := lr.input.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// matchSuffix returns the first marker that input ends with.
func matchSuffix(input string, markers []string) (string, bool) {
	for _, marker := range markers {
		if strings.HasSuffix(input, marker) {
			return marker, true
		}
	}
	return "", false
}
