// Package fonts provides the CSS font stacks available to cards.
//
// Cards never embed font files. Each stack names a preferred web font first
// and ends in a generic family, so viewers without the font still get a
// sensible fallback. [ImportURL] is the Google Fonts stylesheet pulled in by
// the card's style block.
package fonts

import "slices"

// Stack is an ordered CSS font-family list ending in a generic family.
type Stack string

// DefaultKey is the font used when none is requested or the key is unknown.
const DefaultKey = "jetbrains"

// ImportURL loads the web fonts referenced by the built-in stacks.
const ImportURL = "https://fonts.googleapis.com/css2?family=JetBrains+Mono:wght@400;500;600;700&family=Inter:wght@400;500;600;700&family=Fira+Code:wght@400;500;600&display=swap"

var stacks = map[string]Stack{
	"jetbrains": `'JetBrains Mono', 'Fira Code', 'Cascadia Code', monospace`,
	"fira":      `'Fira Code', 'JetBrains Mono', monospace`,
	"source":    `'Source Code Pro', monospace`,
	"ubuntu":    `'Ubuntu Mono', monospace`,
	"cascadia":  `'Cascadia Code', 'Fira Code', monospace`,
	"inter":     `'Inter', -apple-system, BlinkMacSystemFont, sans-serif`,
}

// Lookup returns the stack for key and whether it exists.
func Lookup(key string) (Stack, bool) {
	s, ok := stacks[key]
	return s, ok
}

// Resolve returns the stack for key, falling back to [DefaultKey].
func Resolve(key string) Stack {
	if s, ok := stacks[key]; ok {
		return s
	}
	return stacks[DefaultKey]
}

// Keys returns the registered font keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(stacks))
	for k := range stacks {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
