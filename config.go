package linereader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Config holds the configuration for a LineReader.
type Config struct {
	Multiline           bool             // Never end a line just because no delimiter was seen
	Extenders           []string         // Suffixes that continue the command on the next line (marker removed)
	Delimiters          []string         // Suffixes that mark the command as complete
	WordBreakCharacters string           // Characters that end the token being completed
	HistoryConfig       *HistoryConfig   // Settings for the built-in history (ignored if History is set)
	History             History          // Custom history sink (nil uses HistoryManager)
	Input               LineInput        // Line source (nil picks Editor for terminals, StdioInput otherwise)
	ReadinessChecker    ReadinessChecker // Paste probe (nil uses the input's own, if any)
	ColorScheme         *ColorScheme     // Editor colors (nil for default)
	Logger              *log.Logger      // Diagnostics (nil logs warnings to stderr)
}

// DefaultConfig returns the configuration used by New.
func DefaultConfig() Config {
	return Config{
		WordBreakCharacters: DefaultWordBreakCharacters,
		HistoryConfig:       DefaultHistoryConfig(),
	}
}

// Option represents a configuration option for a LineReader.
type Option func(*Config)

// WithMultiline enables or disables multiline mode.
func WithMultiline(multiline bool) Option {
	return func(c *Config) {
		c.Multiline = multiline
	}
}

// WithExtenders sets the line-continuation markers, checked in order.
//
// Example:
//
//	linereader.New(linereader.WithExtenders(`\`))
func WithExtenders(extenders ...string) Option {
	return func(c *Config) {
		c.Extenders = slices.Clone(extenders)
	}
}

// WithDelimiters sets the command-terminating markers, checked in order.
//
// Example:
//
//	linereader.New(linereader.WithDelimiters(";", `\G`))
func WithDelimiters(delimiters ...string) Option {
	return func(c *Config) {
		c.Delimiters = slices.Clone(delimiters)
	}
}

// WithWordBreakCharacters sets the characters that separate completion tokens.
func WithWordBreakCharacters(chars string) Option {
	return func(c *Config) {
		c.WordBreakCharacters = chars
	}
}

// WithHistory configures the built-in history.
//
// Example:
//
//	linereader.New(linereader.WithHistory(&linereader.HistoryConfig{
//		Enabled:    true,
//		MaxEntries: 100,
//		File:       "~/.myapp_history",
//	}))
func WithHistory(historyConfig *HistoryConfig) Option {
	return func(c *Config) {
		c.HistoryConfig = historyConfig
	}
}

// WithHistoryFile is a convenience function for file-backed history.
func WithHistoryFile(file string) Option {
	return func(c *Config) {
		c.HistoryConfig = &HistoryConfig{
			Enabled:     true,
			MaxEntries:  1000,
			File:        file,
			MaxFileSize: 1024 * 1024, // 1MB default
			MaxBackups:  3,
		}
	}
}

// WithHistorySink sends submitted lines to h instead of the built-in history.
func WithHistorySink(h History) Option {
	return func(c *Config) {
		c.History = h
	}
}

// WithInput sets the source of physical lines.
func WithInput(input LineInput) Option {
	return func(c *Config) {
		c.Input = input
	}
}

// WithReadinessChecker overrides the paste probe.
func WithReadinessChecker(checker ReadinessChecker) Option {
	return func(c *Config) {
		c.ReadinessChecker = checker
	}
}

// WithColorScheme sets the editor colors.
func WithColorScheme(colorScheme *ColorScheme) Option {
	return func(c *Config) {
		c.ColorScheme = colorScheme
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// fileConfig is the TOML layout accepted by LoadConfigFile.
type fileConfig struct {
	Multiline           bool              `toml:"multiline"`
	Extenders           []string          `toml:"extenders"`
	Delimiters          []string          `toml:"delimiters"`
	WordBreakCharacters string            `toml:"word_break_characters"`
	Theme               string            `toml:"theme"`
	History             fileHistoryConfig `toml:"history"`
}

type fileHistoryConfig struct {
	Enabled     *bool  `toml:"enabled"`
	File        string `toml:"file"`
	MaxEntries  int    `toml:"max_entries"`
	MaxFileSize int64  `toml:"max_file_size"`
	MaxBackups  *int   `toml:"max_backups"`
}

// LoadConfigFile reads a TOML file on top of DefaultConfig. Keys missing
// from the file keep their defaults; unknown keys are an error.
//
// Example file:
//
//	multiline = false
//	extenders = ['\']
//	delimiters = [";", '\G']
//	theme = "dark"
//
//	[history]
//	file = "~/.config/myapp/history"
//	max_entries = 1000
func LoadConfigFile(path string) (Config, error) {
	config := DefaultConfig()

	var fc fileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return config, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return config, fmt.Errorf("unknown keys in config file %s: %s", path, strings.Join(keys, ", "))
	}

	config.Multiline = fc.Multiline
	if md.IsDefined("extenders") {
		config.Extenders = fc.Extenders
	}
	if md.IsDefined("delimiters") {
		config.Delimiters = fc.Delimiters
	}
	if md.IsDefined("word_break_characters") {
		config.WordBreakCharacters = fc.WordBreakCharacters
	}
	if fc.Theme != "" {
		theme := ThemeByName(fc.Theme)
		if theme == nil {
			return config, fmt.Errorf("unknown theme %q in config file %s", fc.Theme, path)
		}
		config.ColorScheme = theme
	}

	history := config.HistoryConfig
	if fc.History.Enabled != nil {
		history.Enabled = *fc.History.Enabled
	}
	if fc.History.File != "" {
		history.File = fc.History.File
	}
	if fc.History.MaxEntries > 0 {
		history.MaxEntries = fc.History.MaxEntries
	}
	if fc.History.MaxFileSize > 0 {
		history.MaxFileSize = fc.History.MaxFileSize
	}
	if fc.History.MaxBackups != nil {
		history.MaxBackups = *fc.History.MaxBackups
	}

	return config, nil
}
