// Package text provides the string helpers used while laying out cards:
// XML escaping, ellipsis truncation, compact number formatting and the
// small commit-field extractors (first message line, short SHA, short date).
//
// All functions are pure and safe for concurrent use.
package text

import (
	"strconv"
	"strings"
	"time"
)

const (
	// Ellipsis is appended to truncated text.
	Ellipsis = "..."

	// ShortSHALen is the number of hash characters shown per commit.
	ShortSHALen = 7

	// ShortDateLayout formats dates as abbreviated month and day ("Jan 15").
	ShortDateLayout = "Jan 2"
)

// xmlReplacer escapes the five XML special characters in one pass.
// strings.Replacer never rescans its own output, so "&" in produced
// entities is not escaped twice.
var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeXML escapes &, <, >, " and ' so s can be placed in SVG text
// content or attribute values.
func EscapeXML(s string) string {
	return xmlReplacer.Replace(s)
}

// Truncate shortens s to maxLen runes, replacing the tail with [Ellipsis].
// Text that already fits is returned unchanged.
//
// When truncation happens the result is always exactly maxLen runes long.
// For maxLen below the ellipsis width the kept prefix is empty and the
// ellipsis itself is cut, so Truncate("hello", 2) == "..", and any
// maxLen <= 0 yields "".
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 0 {
		return ""
	}
	keep := max(maxLen-len(Ellipsis), 0)
	tail := Ellipsis[:min(len(Ellipsis), maxLen)]
	return string(runes[:keep]) + tail
}

// CompactNumber formats n with a k or M suffix once it reaches a thousand.
// Values are rounded to one decimal before the suffix is appended, so
// 99999 becomes "100.0k".
func CompactNumber(n int) string {
	switch {
	case n >= 1_000_000:
		return strconv.FormatFloat(float64(n)/1_000_000, 'f', 1, 64) + "M"
	case n >= 1_000:
		return strconv.FormatFloat(float64(n)/1_000, 'f', 1, 64) + "k"
	default:
		return strconv.Itoa(n)
	}
}

// FirstLine returns the text before the first line break.
func FirstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSuffix(s, "\r")
}

// ShortSHA returns the first [ShortSHALen] characters of a commit hash.
func ShortSHA(sha string) string {
	if len(sha) <= ShortSHALen {
		return sha
	}
	return sha[:ShortSHALen]
}

// ShortDate formats t as abbreviated month and day in UTC.
func ShortDate(t time.Time) string {
	return t.UTC().Format(ShortDateLayout)
}
