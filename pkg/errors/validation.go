package errors

import (
	"strings"
	"unicode"
)

// maxIDLength bounds shape and connector identifiers.
const maxIDLength = 256

// ValidateShapeID validates a shape or connector identifier.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - Maximum length of 256 characters
//
// Identifiers end up as element ids in SVG output and node names in DOT
// output, so control characters are rejected outright.
func ValidateShapeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidDocument, "shape id cannot be empty")
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidDocument, "shape id too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDocument, "shape id %q contains control characters", id)
		}
	}

	return nil
}

// ValidatePageName validates a page name for use as an output file name.
// It rejects names that could be used for path traversal.
func ValidatePageName(name string) error {
	if name == "" {
		return nil
	}

	if len(name) > maxIDLength {
		return New(ErrCodeInvalidPath, "page name too long (max %d characters)", maxIDLength)
	}

	for _, r := range name {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "page name contains invalid characters")
		}
	}

	dangerousPatterns := []string{
		"..", // Parent directory
		"/",  // Path separator
		"\\", // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPath, "page name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateFormat checks that format is one of the supported output formats.
func ValidateFormat(format string, supported []string) error {
	for _, f := range supported {
		if f == format {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(supported, ", "))
}
