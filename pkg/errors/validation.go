package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// cardNameRegex matches names usable as a plain SVG file basename.
var cardNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateCardName validates the name of a batch manifest entry. The name
// becomes "<name>.svg" inside the output directory, so it must be a plain
// basename:
//   - No empty names
//   - Maximum length of 128 characters
//   - No control characters
//   - No path separators or traversal sequences
func ValidateCardName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "card name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "card name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "card name contains invalid control characters")
		}
	}

	for _, pattern := range []string{"..", "/", "\\"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidInput, "card name contains invalid characters: %q", pattern)
		}
	}

	if !cardNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid card name: %q", name)
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
