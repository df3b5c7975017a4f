package errors

import (
	"strings"
	"unicode"
)

// maxTokenLength bounds a single token. Longer strings are almost always
// binary garbage or minified text rather than words.
const maxTokenLength = 256

// ValidateToken validates a normalized token before it enters a layout.
//
// The validation rules are intentionally conservative:
//   - No empty tokens
//   - No whitespace (tokens are produced by splitting on whitespace)
//   - No control characters or null bytes
//   - Maximum length of 256 bytes
func ValidateToken(token string) error {
	if token == "" {
		return New(ErrCodeInvalidInput, "token cannot be empty")
	}

	if len(token) > maxTokenLength {
		return New(ErrCodeInvalidInput, "token too long (max %d characters)", maxTokenLength)
	}

	for _, r := range token {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "token %q contains control characters", token)
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "token %q contains whitespace", token)
		}
	}

	return nil
}

// ValidateCount validates a token's occurrence count.
func ValidateCount(token string, count int) error {
	if count < 1 {
		return New(ErrCodeInvalidInput, "count for %q must be positive, got %d", token, count)
	}
	return nil
}

// ValidatePath validates a user supplied input or output path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "path contains null bytes")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
