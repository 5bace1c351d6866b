package linereader

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// History receives every distinct line returned by ReadLine.
type History interface {
	Add(line string) error
}

// HistoryConfig holds all history-related configuration.
//
// File path supports multiple formats:
// - Empty string: Memory-only history (no persistence)
// - Absolute path: "/home/user/.app_history"
// - Home directory: "~/.app_history"
// - Relative path: "./app_history" (converted to absolute)
// - XDG compliant: Use GetDefaultHistoryFile() for "~/.config/linereader/history"
type HistoryConfig struct {
	Enabled     bool   // Enable/disable history functionality
	MaxEntries  int    // Maximum number of entries to keep in memory (default: 1000)
	File        string // File path for history persistence (empty = memory only)
	MaxFileSize int64  // Maximum file size in bytes before rotation (default: 1MB)
	MaxBackups  int    // Maximum number of backup files to keep (default: 3)
}

// DefaultHistoryConfig returns a memory-only history configuration.
func DefaultHistoryConfig() *HistoryConfig {
	return &HistoryConfig{
		Enabled:     true,
		MaxEntries:  1000,
		File:        "",
		MaxFileSize: 1024 * 1024, // 1MB
		MaxBackups:  3,
	}
}

// GetDefaultHistoryFile returns the default history file path following XDG Base Directory Specification.
// Returns ~/.config/linereader/history or $XDG_CONFIG_HOME/linereader/history if XDG_CONFIG_HOME is set.
func GetDefaultHistoryFile() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "linereader", "history")
}

// HistoryManager is an append-only history log. Each added line is written
// to the file immediately, so several sessions sharing a file interleave
// their entries instead of overwriting each other.
//
// A logical line may span several physical lines; newlines and backslashes
// are escaped so that one entry is one line in the file.
type HistoryManager struct {
	config  *HistoryConfig
	entries []string
}

// NewHistoryManager creates a new history manager with the given configuration
func NewHistoryManager(config *HistoryConfig) *HistoryManager {
	if config == nil {
		config = DefaultHistoryConfig()
	}
	cfg := *config
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 1000
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = 1024 * 1024 // 1MB default
	}
	if cfg.MaxBackups < 0 {
		cfg.MaxBackups = 3
	}

	// Expand and convert file path to absolute path if specified
	if cfg.File != "" {
		if absPath, err := expandHistoryPath(cfg.File); err == nil {
			cfg.File = absPath
		}
	}

	return &HistoryManager{
		config:  &cfg,
		entries: make([]string, 0),
	}
}

// IsEnabled returns whether history functionality is enabled
func (hm *HistoryManager) IsEnabled() bool {
	return hm.config.Enabled
}

// File returns the resolved history file path, or "" for memory-only history.
func (hm *HistoryManager) File() string {
	return hm.config.File
}

// LoadHistory loads history from the configured file
func (hm *HistoryManager) LoadHistory() error {
	if !hm.config.Enabled || hm.config.File == "" {
		return nil
	}

	file, err := os.Open(hm.config.File)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist yet, that's ok
		}
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), int(hm.config.MaxFileSize)+1)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			hm.append(unescapeHistoryEntry(line))
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read history file: %w", err)
	}

	return nil
}

// Add records an entry in memory and appends it to the history file.
func (hm *HistoryManager) Add(entry string) error {
	if !hm.config.Enabled || entry == "" {
		return nil
	}

	hm.append(entry)

	if hm.config.File == "" {
		return nil
	}

	if err := hm.rotateIfNeeded(); err != nil {
		return fmt.Errorf("failed to rotate history file: %w", err)
	}

	dir := filepath.Dir(hm.config.File)
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	file, err := os.OpenFile(hm.config.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer file.Close()

	if _, err := fmt.Fprintln(file, escapeHistoryEntry(entry)); err != nil {
		return fmt.Errorf("failed to write history entry: %w", err)
	}
	return nil
}

// Entries returns a copy of the in-memory history, oldest first.
func (hm *HistoryManager) Entries() []string {
	if !hm.config.Enabled {
		return []string{}
	}
	return append([]string{}, hm.entries...)
}

func (hm *HistoryManager) append(entry string) {
	hm.entries = append(hm.entries, entry)
	if len(hm.entries) > hm.config.MaxEntries {
		hm.entries = hm.entries[len(hm.entries)-hm.config.MaxEntries:]
	}
}

// rotateIfNeeded checks if the history file needs rotation and performs it
func (hm *HistoryManager) rotateIfNeeded() error {
	info, err := os.Stat(hm.config.File)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, no rotation needed
		}
		return err
	}

	if info.Size() < hm.config.MaxFileSize {
		return nil
	}

	return hm.rotateHistoryFile()
}

// rotateHistoryFile shifts numbered backups and starts a new file seeded
// with the most recent entries.
func (hm *HistoryManager) rotateHistoryFile() error {
	if hm.config.MaxBackups <= 0 {
		// If no backups allowed, just truncate the file
		return os.Truncate(hm.config.File, 0)
	}

	oldestBackup := hm.config.File + "." + strconv.Itoa(hm.config.MaxBackups)
	if _, err := os.Stat(oldestBackup); err == nil {
		if err := os.Remove(oldestBackup); err != nil {
			return fmt.Errorf("failed to remove oldest backup: %w", err)
		}
	}

	for i := hm.config.MaxBackups - 1; i >= 1; i-- {
		oldFile := hm.config.File + "." + strconv.Itoa(i)
		newFile := hm.config.File + "." + strconv.Itoa(i+1)

		if _, err := os.Stat(oldFile); err == nil {
			if err := os.Rename(oldFile, newFile); err != nil {
				return fmt.Errorf("failed to rotate backup %d: %w", i, err)
			}
		}
	}

	if err := os.Rename(hm.config.File, hm.config.File+".1"); err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}

	return hm.seedRotatedFile()
}

// seedRotatedFile writes the newer half of the in-memory history (the entry
// being added excluded) to a fresh file so recent entries survive rotation.
func (hm *HistoryManager) seedRotatedFile() error {
	previous := hm.entries[:len(hm.entries)-1]
	keep := len(previous) / 2
	if keep < 100 {
		keep = len(previous)
	}

	file, err := os.OpenFile(hm.config.File, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer file.Close()

	for _, entry := range previous[len(previous)-keep:] {
		if _, err := fmt.Fprintln(file, escapeHistoryEntry(entry)); err != nil {
			return err
		}
	}
	return nil
}

var (
	historyEscaper   = strings.NewReplacer(`\`, `\\`, "\n", `\n`)
	historyUnescaper = strings.NewReplacer(`\\`, `\`, `\n`, "\n")
)

func escapeHistoryEntry(entry string) string {
	return historyEscaper.Replace(entry)
}

func unescapeHistoryEntry(line string) string {
	return historyUnescaper.Replace(line)
}

// expandHistoryPath expands and validates the history file path
// Supports:
// - Absolute paths: /home/user/.history
// - Home directory expansion: ~/.history or ~/config/.history
// - Relative paths: ./.history or config/.history (converted to absolute)
func expandHistoryPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = home
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to convert to absolute path: %w", err)
	}

	return absPath, nil
}
