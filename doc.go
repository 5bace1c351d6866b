// Package linereader is the line-input front end of an interactive command
// shell. It reads physical lines, decides when a logical command (possibly
// spanning several lines) is complete, and offers prefix completion over a
// vocabulary that can grow while the shell is running.
//
// Key Features:
//
//   - Multi-line commands driven by extender and delimiter suffixes
//   - Pasted blocks kept together as one command
//   - Case-aware prefix completion backed by two sorted word lists
//   - Vocabulary loading in the background while the user types
//   - Append-only history shared by concurrent sessions
//   - Raw-mode terminal editor, with a plain line reader for pipes
//   - TOML configuration file support
//
// Quick Start:
//
//	package main
//
//	import (
//		"errors"
//		"fmt"
//		"log"
//
//		"github.com/nao1215/linereader"
//	)
//
//	func main() {
//		lr, err := linereader.New(
//			linereader.WithExtenders(`\`),
//			linereader.WithDelimiters(";"),
//		)
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer lr.Close()
//
//		lr.AddWords([]string{"SELECT", "FROM", "WHERE"})
//
//		for {
//			query, err := lr.ReadLine(":) ", ":-] ")
//			if errors.Is(err, linereader.ErrEOF) {
//				return
//			}
//			fmt.Printf("query: %q\n", query)
//		}
//	}
//
// Command Assembly:
//
// After each physical line ReadLine decides whether to keep reading:
//
//   - A line ending with an extender continues; the extender is removed.
//   - In multiline mode a line continues until it ends with a delimiter.
//   - A line continues when more input is already queued, as with a paste.
//   - An empty line ends a command that has already started, unless one of
//     the rules above still applies.
//
// Lines are joined with "\n". Ctrl+C in the editor discards what has been
// typed so far and shows the first prompt again. When the input ends,
// ReadLine returns ErrEOF and drops any partial command.
//
// Completion:
//
// GetCompletions completes the last token of its argument, that is the text
// after the last word-break character. A query without uppercase ASCII
// letters matches case-insensitively; any uppercase letter makes it exact.
// The vocabulary may be extended from any goroutine:
//
//	go func() {
//		if err := lr.LoadWordFiles(ctx, "keywords.txt"); err != nil {
//			log.Printf("vocabulary: %v", err)
//		}
//	}()
//
// Configuration:
//
// Settings can come from options, from a TOML file, or both:
//
//	config, err := linereader.LoadConfigFile("linereader.toml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	lr, err := linereader.NewFromConfig(config, linereader.WithLogger(logger))
//
// Key Bindings:
//
// The terminal editor supports:
//
//   - Enter: Submit the line
//   - Ctrl+C: Reset the command
//   - Ctrl+D: EOF when the line is empty, otherwise delete forward
//   - Up/Down, Ctrl+P/Ctrl+N: Navigate history
//   - Left/Right, Ctrl+B/Ctrl+F: Move the cursor
//   - Ctrl+A / Home, Ctrl+E / End: Move to the start or end of the line
//   - Ctrl+Left/Right: Move by word
//   - Ctrl+K, Ctrl+U, Ctrl+W: Delete to end, whole line, word backwards
//   - Tab: Complete the token before the cursor
//
// Thread Safety:
//
// ReadLine must be called from a single goroutine. AddWords, GetCompletions,
// LoadWordFiles and WatchWordFiles are safe for concurrent use.
package linereader
