// Package config turns loosely-typed card parameters into a validated [Card].
//
// Parameters come from URL query strings or CLI flags converted to
// url.Values. [Normalize] never fails on malformed optional values: numbers
// fall back to defaults and are clamped silently, unknown themes and fonts
// resolve to the registry defaults, and invalid color overrides are ignored.
// The only error is a missing repository identity.
package config

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/commitcard/pkg/errors"
	"github.com/matzehuels/commitcard/pkg/fonts"
	"github.com/matzehuels/commitcard/pkg/themes"
)

// Numeric parameter defaults and bounds.
const (
	DefaultCount = 5
	MinCount     = 1
	MaxCount     = 20

	DefaultWidth = 500
	MinWidth     = 300
	MaxWidth     = 800

	DefaultRadius = 10
	MinRadius     = 0
	MaxRadius     = 30

	BorderWidth = 1
)

// MissingIdentityMessage is shown when no username or repository is given.
const MissingIdentityMessage = "Missing username (u) or repository (repo)"

// Values is the parameter source. url.Values satisfies it.
type Values interface {
	Get(key string) string
}

// Card is the fully resolved configuration for one card.
type Card struct {
	Username string
	Repo     string

	Count       int // commits to show, [MinCount, MaxCount]
	Width       int // pixels, [MinWidth, MaxWidth]
	Radius      int // corner radius, [MinRadius, MaxRadius]
	BorderWidth int

	Theme  string       // requested theme name, kept even if unknown
	Colors themes.Theme // resolved palette with overrides applied

	Font       string // requested font key
	FontFamily fonts.Stack

	ShowIcons  bool
	ShowStats  bool
	ShowAvatar bool
	ShowDate   bool
}

// Normalize builds a Card from v. It returns an [errors.ErrCodeMissingParameter]
// error when the username or repository is absent.
func Normalize(v Values) (Card, error) {
	user := first(v, "u", "username")
	repo := first(v, "repo", "r")
	if user == "" || repo == "" {
		return Card{}, errors.New(errors.ErrCodeMissingParameter, MissingIdentityMessage)
	}

	themeName := v.Get("theme")
	if themeName == "" {
		themeName = themes.Default
	}
	colors := themes.Resolve(themeName)
	override(&colors.Background, v.Get("bg"))
	override(&colors.Border, v.Get("border"))
	override(&colors.Title, v.Get("title"))
	override(&colors.Text, v.Get("text"))
	override(&colors.Accent, v.Get("accent"))

	font := v.Get("font")
	if font == "" {
		font = fonts.DefaultKey
	}

	return Card{
		Username:    user,
		Repo:        repo,
		Count:       intParam(first(v, "count", "c"), DefaultCount, MinCount, MaxCount),
		Width:       intParam(first(v, "w", "width"), DefaultWidth, MinWidth, MaxWidth),
		Radius:      intParam(v.Get("radius"), DefaultRadius, MinRadius, MaxRadius),
		BorderWidth: BorderWidth,
		Theme:       themeName,
		Colors:      colors,
		Font:        font,
		FontFamily:  fonts.Resolve(font),
		ShowIcons:   toggle(v.Get("icons")),
		ShowStats:   toggle(v.Get("stats")),
		ShowAvatar:  toggle(v.Get("avatar")),
		ShowDate:    toggle(v.Get("date")),
	}, nil
}

// first returns the value of the first key with a non-empty value.
func first(v Values, keys ...string) string {
	for _, k := range keys {
		if s := v.Get(k); s != "" {
			return s
		}
	}
	return ""
}

// toggle is true unless the value is exactly "false".
func toggle(s string) bool {
	return s != "false"
}

func override(dst *string, s string) {
	if c, ok := SanitizeColor(s); ok {
		*dst = c
	}
}

var hexColor = regexp.MustCompile(`^(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// SanitizeColor strips an optional leading '#' from s and reports whether
// the rest is a 3, 4, 6 or 8 digit hex color. Anything else, including
// empty input, is rejected so it never reaches the SVG.
func SanitizeColor(s string) (string, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if !hexColor.MatchString(s) {
		return "", false
	}
	return s, true
}

func intParam(s string, def, lo, hi int) int {
	n, ok := ParseIntPrefix(s)
	if !ok {
		return def
	}
	return min(max(n, lo), hi)
}

// ParseIntPrefix parses the leading base-10 integer of s, ignoring
// surrounding whitespace and any trailing garbage ("12px" is 12). It
// reports false when s does not start with a number.
func ParseIntPrefix(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Overflow: saturate in the direction of the sign.
		if s[0] == '-' {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	return n, true
}
