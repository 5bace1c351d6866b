package linereader

import (
	"fmt"
	"strings"
)

// ColorScheme defines the colors the editor paints with.
type ColorScheme struct {
	Name       string `json:"name" toml:"name"`
	Prompt     Color  `json:"prompt" toml:"prompt"`         // prompt text
	Input      Color  `json:"input" toml:"input"`           // typed text
	Completion Color  `json:"completion" toml:"completion"` // completion listing
}

// Color represents an RGB color with optional formatting.
type Color struct {
	R    uint8 `json:"r" toml:"r"`
	G    uint8 `json:"g" toml:"g"`
	B    uint8 `json:"b" toml:"b"`
	Bold bool  `json:"bold" toml:"bold"`
}

// ThemeDefault is the default color scheme with green prompt and white text
var ThemeDefault = &ColorScheme{
	Name:       "default",
	Prompt:     Color{R: 0, G: 255, B: 0, Bold: true},
	Input:      Color{R: 255, G: 255, B: 255, Bold: true},
	Completion: Color{R: 200, G: 200, B: 200, Bold: false},
}

// ThemeDark is a dark theme with light blue prompt and off-white text
var ThemeDark = &ColorScheme{
	Name:       "Dark",
	Prompt:     Color{R: 102, G: 217, B: 239, Bold: true},
	Input:      Color{R: 248, G: 248, B: 242, Bold: false},
	Completion: Color{R: 189, G: 147, B: 249, Bold: false},
}

// ThemeLight is a light theme with blue prompt and dark gray text
var ThemeLight = &ColorScheme{
	Name:       "Light",
	Prompt:     Color{R: 0, G: 119, B: 187, Bold: true},
	Input:      Color{R: 36, G: 41, B: 46, Bold: false},
	Completion: Color{R: 88, G: 96, B: 105, Bold: false},
}

// ThemeAccessible is a colorblind-safe theme with high contrast
var ThemeAccessible = &ColorScheme{
	Name:       "Accessible",
	Prompt:     Color{R: 0, G: 114, B: 178, Bold: true},
	Input:      Color{R: 255, G: 255, B: 255, Bold: false},
	Completion: Color{R: 204, G: 204, B: 204, Bold: false},
}

// ThemeMonochrome disables colors entirely.
var ThemeMonochrome = &ColorScheme{Name: "Monochrome"}

// themes indexes the built-in schemes by lower-case name for config files.
var themes = map[string]*ColorScheme{
	"default":    ThemeDefault,
	"dark":       ThemeDark,
	"light":      ThemeLight,
	"accessible": ThemeAccessible,
	"monochrome": ThemeMonochrome,
}

// ThemeByName returns a built-in color scheme, or nil if name is unknown.
func ThemeByName(name string) *ColorScheme {
	return themes[strings.ToLower(name)]
}

// paint wraps text in the color's escape sequences. The monochrome scheme
// leaves text untouched.
func (cs *ColorScheme) paint(c Color, text string) string {
	if cs == nil || cs == ThemeMonochrome || text == "" {
		return text
	}
	return c.ToANSI() + text + Reset()
}

// ToANSI converts a Color to an ANSI escape sequence.
func (c Color) ToANSI() string {
	var codes []string

	// Bold formatting comes first
	if c.Bold {
		codes = append(codes, "1")
	}

	// RGB color (true color support)
	codes = append(codes, fmt.Sprintf("38;2;%d;%d;%d", c.R, c.G, c.B))

	return fmt.Sprintf("\x1b[%sm", strings.Join(codes, ";"))
}

// Reset returns the ANSI reset sequence.
func Reset() string {
	return "\x1b[0m"
}
