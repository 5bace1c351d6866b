package linereader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "linereader.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()

	assert.False(t, config.Multiline)
	assert.Empty(t, config.Extenders)
	assert.Empty(t, config.Delimiters)
	assert.Equal(t, DefaultWordBreakCharacters, config.WordBreakCharacters)
	require.NotNil(t, config.HistoryConfig)
	assert.True(t, config.HistoryConfig.Enabled)
	assert.Nil(t, config.History)
	assert.Nil(t, config.Input)
	assert.Nil(t, config.Logger)
}

func TestOptions(t *testing.T) {
	t.Parallel()

	extenders := []string{`\`}
	input := newScriptedInput()
	history := &recordingHistory{}
	checker := ReadinessFunc(func() bool { return true })
	logger := log.New(os.Stderr)

	config := DefaultConfig()
	for _, option := range []Option{
		WithMultiline(true),
		WithExtenders(extenders...),
		WithDelimiters(";", `\G`),
		WithWordBreakCharacters(" ."),
		WithHistoryFile("/tmp/history"),
		WithHistorySink(history),
		WithInput(input),
		WithReadinessChecker(checker),
		WithColorScheme(ThemeLight),
		WithLogger(logger),
	} {
		option(&config)
	}

	assert.True(t, config.Multiline)
	assert.Equal(t, []string{`\`}, config.Extenders)
	assert.Equal(t, []string{";", `\G`}, config.Delimiters)
	assert.Equal(t, " .", config.WordBreakCharacters)
	assert.Equal(t, "/tmp/history", config.HistoryConfig.File)
	assert.True(t, config.HistoryConfig.Enabled)
	assert.Same(t, history, config.History)
	assert.Same(t, input, config.Input)
	assert.NotNil(t, config.ReadinessChecker)
	assert.Same(t, ThemeLight, config.ColorScheme)
	assert.Same(t, logger, config.Logger)

	// Options copy their slices.
	extenders[0] = "changed"
	assert.Equal(t, []string{`\`}, config.Extenders)
}

func TestWithHistory(t *testing.T) {
	t.Parallel()

	historyConfig := &HistoryConfig{Enabled: false}
	config := DefaultConfig()
	WithHistory(historyConfig)(&config)

	assert.Same(t, historyConfig, config.HistoryConfig)
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
multiline = true
extenders = ['\']
delimiters = [";", '\G']
word_break_characters = " ."
theme = "dark"

[history]
enabled = true
file = "/var/tmp/linereader/history"
max_entries = 50
max_file_size = 4096
max_backups = 0
`)

	config, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.True(t, config.Multiline)
	assert.Equal(t, []string{`\`}, config.Extenders)
	assert.Equal(t, []string{";", `\G`}, config.Delimiters)
	assert.Equal(t, " .", config.WordBreakCharacters)
	assert.Same(t, ThemeDark, config.ColorScheme)

	require.NotNil(t, config.HistoryConfig)
	assert.True(t, config.HistoryConfig.Enabled)
	assert.Equal(t, "/var/tmp/linereader/history", config.HistoryConfig.File)
	assert.Equal(t, 50, config.HistoryConfig.MaxEntries)
	assert.Equal(t, int64(4096), config.HistoryConfig.MaxFileSize)
	assert.Equal(t, 0, config.HistoryConfig.MaxBackups)
}

func TestLoadConfigFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
delimiters = [";"]

[history]
enabled = false
`)

	config, err := LoadConfigFile(path)
	require.NoError(t, err)

	defaults := DefaultConfig()
	assert.False(t, config.Multiline)
	assert.Empty(t, config.Extenders)
	assert.Equal(t, []string{";"}, config.Delimiters)
	assert.Equal(t, DefaultWordBreakCharacters, config.WordBreakCharacters)
	assert.Nil(t, config.ColorScheme)
	assert.False(t, config.HistoryConfig.Enabled)
	assert.Equal(t, defaults.HistoryConfig.MaxEntries, config.HistoryConfig.MaxEntries)
	assert.Equal(t, defaults.HistoryConfig.MaxFileSize, config.HistoryConfig.MaxFileSize)
	assert.Equal(t, defaults.HistoryConfig.MaxBackups, config.HistoryConfig.MaxBackups)
}

func TestLoadConfigFileErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		errText string
	}{
		{
			name:    "unknown key",
			content: "colour = \"red\"\n",
			errText: "unknown keys",
		},
		{
			name:    "unknown history key",
			content: "[history]\nsise = 10\n",
			errText: "history.sise",
		},
		{
			name:    "unknown theme",
			content: "theme = \"solarized\"\n",
			errText: `unknown theme "solarized"`,
		},
		{
			name:    "syntax error",
			content: "multiline = \n",
			errText: "failed to decode config file",
		},
		{
			name:    "wrong type",
			content: "extenders = \"\\\\\"\n",
			errText: "failed to decode config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadConfigFile(writeConfigFile(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestLoadConfigFileMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewFromConfigFile(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
multiline = true
delimiters = [";"]
`)
	config, err := LoadConfigFile(path)
	require.NoError(t, err)

	input := newScriptedInput(line("SELECT *"), line("FROM t;"))
	lr, err := NewFromConfig(config,
		WithInput(input),
		WithHistorySink(&recordingHistory{}),
		WithLogger(log.New(os.Stderr)),
	)
	require.NoError(t, err)

	got, err := lr.ReadLine("> ", ". ")
	require.NoError(t, err)
	assert.Equal(t, "SELECT *\nFROM t;", got)
}
