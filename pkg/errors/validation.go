package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// variantNameRegex matches names usable as output file stems and URL segments.
var variantNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidateVariantName checks that a background variant name is safe to use
// as a file name and a URL path segment.
func ValidateVariantName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidVariant, "variant name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidVariant, "variant name too long (max 64 characters)")
	}
	if !variantNameRegex.MatchString(name) {
		return New(ErrCodeInvalidVariant, "invalid variant name: %q (lowercase letters, digits, '-' and '_')", name)
	}
	return nil
}

// ValidatePath validates a relative path taken from a config file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
