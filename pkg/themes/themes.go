// Package themes holds the built-in card color palettes.
//
// The catalog is a fixed map literal; it is never mutated after package
// initialization and is safe for concurrent reads. Lookups are
// case-sensitive and unknown names fall back to [Default].
package themes

import (
	"regexp"
	"slices"
)

// Default is the theme used when none is requested or the name is unknown.
const Default = "dark"

var hexColor = regexp.MustCompile(`^[0-9a-fA-F]{6}$`)

// Theme is a palette of seven colors. Values are six hex digits without
// the leading '#'.
type Theme struct {
	Background string `json:"bg"`
	Border     string `json:"border"`
	Title      string `json:"title"`
	Text       string `json:"text"`
	Subtext    string `json:"subtext"` // secondary text, icons
	Accent     string `json:"accent"`  // timeline dots
	SHA        string `json:"sha"`     // commit hashes
}

// Colors returns the palette in declaration order.
func (t Theme) Colors() []string {
	return []string{t.Background, t.Border, t.Title, t.Text, t.Subtext, t.Accent, t.SHA}
}

// Valid reports whether every color is a six-digit hex value.
func (t Theme) Valid() bool {
	for _, c := range t.Colors() {
		if !hexColor.MatchString(c) {
			return false
		}
	}
	return true
}

var catalog = map[string]Theme{
	"dark": {
		Background: "0d1117",
		Border:     "30363d",
		Title:      "58a6ff",
		Text:       "e6edf3",
		Subtext:    "8b949e",
		Accent:     "238636",
		SHA:        "7ee787",
	},
	"light": {
		Background: "ffffff",
		Border:     "d0d7de",
		Title:      "0969da",
		Text:       "24292f",
		Subtext:    "57606a",
		Accent:     "1a7f37",
		SHA:        "1a7f37",
	},
	"github_dark": {
		Background: "0d1117",
		Border:     "30363d",
		Title:      "58a6ff",
		Text:       "c9d1d9",
		Subtext:    "8b949e",
		Accent:     "238636",
		SHA:        "7ee787",
	},
	"github_light": {
		Background: "ffffff",
		Border:     "d0d7de",
		Title:      "0969da",
		Text:       "24292f",
		Subtext:    "57606a",
		Accent:     "1a7f37",
		SHA:        "1a7f37",
	},
	"dracula": {
		Background: "282a36",
		Border:     "44475a",
		Title:      "ff79c6",
		Text:       "f8f8f2",
		Subtext:    "6272a4",
		Accent:     "50fa7b",
		SHA:        "bd93f9",
	},
	"nord": {
		Background: "2e3440",
		Border:     "4c566a",
		Title:      "88c0d0",
		Text:       "eceff4",
		Subtext:    "d8dee9",
		Accent:     "a3be8c",
		SHA:        "b48ead",
	},
	"monokai": {
		Background: "272822",
		Border:     "49483e",
		Title:      "f92672",
		Text:       "f8f8f2",
		Subtext:    "75715e",
		Accent:     "a6e22e",
		SHA:        "e6db74",
	},
	"tokyo_night": {
		Background: "1a1b26",
		Border:     "33467c",
		Title:      "7aa2f7",
		Text:       "c0caf5",
		Subtext:    "565f89",
		Accent:     "9ece6a",
		SHA:        "bb9af7",
	},
	"catppuccin": {
		Background: "1e1e2e",
		Border:     "313244",
		Title:      "cba6f7",
		Text:       "cdd6f4",
		Subtext:    "6c7086",
		Accent:     "a6e3a1",
		SHA:        "f5c2e7",
	},
	"gruvbox": {
		Background: "282828",
		Border:     "3c3836",
		Title:      "fabd2f",
		Text:       "ebdbb2",
		Subtext:    "a89984",
		Accent:     "b8bb26",
		SHA:        "d3869b",
	},
	"one_dark": {
		Background: "282c34",
		Border:     "4b5263",
		Title:      "61afef",
		Text:       "abb2bf",
		Subtext:    "5c6370",
		Accent:     "98c379",
		SHA:        "c678dd",
	},
	"synthwave": {
		Background: "2b213a",
		Border:     "495495",
		Title:      "e92efb",
		Text:       "f4eee4",
		Subtext:    "b6a1c4",
		Accent:     "72f1b8",
		SHA:        "fede5d",
	},
}

// Lookup returns the named theme and whether it exists.
func Lookup(name string) (Theme, bool) {
	t, ok := catalog[name]
	return t, ok
}

// Resolve returns the named theme, or the [Default] theme if name is unknown.
func Resolve(name string) Theme {
	if t, ok := catalog[name]; ok {
		return t
	}
	return catalog[Default]
}

// Names returns all theme names in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
