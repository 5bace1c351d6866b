package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	charmlog "github.com/charmbracelet/log"
	"github.com/nao1215/linereader"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

type rootOptions struct {
	configFile         string
	wordFiles          []string
	watch              bool
	multiline          bool
	extenders          []string
	delimiters         []string
	historyFile        string
	prompt             string
	continuationPrompt string
	null               bool
	logFile            string
	debug              bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "linereader",
		Short: "Read multi-line commands and print them one per line",
		Long: `linereader reads commands from the terminal, or from stdin when it is not a
terminal, and prints each complete command to stdout.

A command ends when its last line ends with a delimiter, or, outside
multiline mode, at the end of any line that does not end with an extender.
Flags override the values read from --config.`,
		Example: `  linereader --delimiter ';' --extender '\' --words keywords.txt
  linereader --config ~/.config/myapp/linereader.toml --null | xargs -0 -n1 run`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "TOML configuration file")
	flags.StringSliceVarP(&opts.wordFiles, "words", "w", nil, "word files for completion (one word per line)")
	flags.BoolVar(&opts.watch, "watch", false, "reload word files when they change")
	flags.BoolVarP(&opts.multiline, "multiline", "m", false, "keep reading until a line ends with a delimiter")
	flags.StringSliceVar(&opts.extenders, "extender", nil, "suffix that continues a command on the next line")
	flags.StringSliceVar(&opts.delimiters, "delimiter", nil, "suffix that completes a command")
	flags.StringVar(&opts.historyFile, "history", "", "history file shared by all sessions")
	flags.StringVarP(&opts.prompt, "prompt", "p", "> ", "prompt for the first line of a command")
	flags.StringVar(&opts.continuationPrompt, "continuation-prompt", ". ", "prompt for continuation lines")
	flags.BoolVarP(&opts.null, "null", "0", false, "end each command with NUL instead of newline")
	flags.StringVar(&opts.logFile, "log-file", "", "write diagnostics to this file, rotated by size")
	flags.BoolVar(&opts.debug, "debug", false, "log debug messages")

	return cmd
}

func run(cmd *cobra.Command, opts *rootOptions) error {
	logger, closeLog := newLogger(cmd.ErrOrStderr(), opts)
	defer closeLog()

	config := linereader.DefaultConfig()
	if opts.configFile != "" {
		var err error
		config, err = linereader.LoadConfigFile(opts.configFile)
		if err != nil {
			return err
		}
	}

	flags := cmd.Flags()
	options := []linereader.Option{linereader.WithLogger(logger)}
	if flags.Changed("multiline") {
		options = append(options, linereader.WithMultiline(opts.multiline))
	}
	if flags.Changed("extender") {
		options = append(options, linereader.WithExtenders(opts.extenders...))
	}
	if flags.Changed("delimiter") {
		options = append(options, linereader.WithDelimiters(opts.delimiters...))
	}
	if opts.historyFile != "" {
		options = append(options, linereader.WithHistoryFile(opts.historyFile))
	}
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		// Piped input is always buffered ahead, so only markers join its lines.
		// Prompts go to stderr to keep stdout for commands.
		options = append(options,
			linereader.WithInput(linereader.NewStdioInput(in, cmd.ErrOrStderr())),
			linereader.WithReadinessChecker(linereader.ReadinessFunc(func() bool { return false })),
		)
	}

	lr, err := linereader.NewFromConfig(config, options...)
	if err != nil {
		return err
	}
	defer lr.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var wg sync.WaitGroup
	if len(opts.wordFiles) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			load := lr.LoadWordFiles
			if opts.watch {
				load = lr.WatchWordFiles
			}
			if err := load(ctx, opts.wordFiles...); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("failed to load word files", "err", err)
			}
		}()
	}

	terminator := "\n"
	if opts.null {
		terminator = "\x00"
	}

	out := cmd.OutOrStdout()
	for {
		command, err := lr.ReadLine(opts.prompt, opts.continuationPrompt)
		if errors.Is(err, linereader.ErrEOF) {
			break
		}
		if err != nil {
			return err
		}
		if _, err := fmt.Fprint(out, command, terminator); err != nil {
			return fmt.Errorf("failed to write command: %w", err)
		}
	}

	// A one-shot load runs to completion; a watch runs until canceled.
	if opts.watch {
		cancel()
	}
	wg.Wait()
	return nil
}

func newLogger(stderr io.Writer, opts *rootOptions) (*charmlog.Logger, func()) {
	level := charmlog.WarnLevel
	if opts.debug {
		level = charmlog.DebugLevel
	}

	if opts.logFile == "" {
		return charmlog.NewWithOptions(stderr, charmlog.Options{
			Prefix: "linereader",
			Level:  level,
		}), func() {}
	}

	logFile := &lumberjack.Logger{
		Filename:   opts.logFile,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	logger := charmlog.NewWithOptions(logFile, charmlog.Options{
		Level:           level,
		ReportTimestamp: true,
		Formatter:       charmlog.LogfmtFormatter,
	})
	return logger, func() { _ = logFile.Close() }
}
