package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// caseIDRegex matches case identifiers as they appear in exported filenames.
var caseIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateCaseID validates a case identifier before it is used in a filename.
//
// The rules are intentionally conservative:
//   - No empty identifiers
//   - Maximum length of 128 characters
//   - Letters, digits, dot, underscore and dash only
func ValidateCaseID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidPayload, "case id is required")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidPayload, "case id too long (max 128 characters)")
	}
	if !caseIDRegex.MatchString(id) {
		return New(ErrCodeInvalidPayload, "case id contains invalid characters: %q", id)
	}
	return nil
}

// reportVersionRegex matches report version strings such as "v1" or "2024.2".
var reportVersionRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9.-]{0,31}$`)

// ValidateReportVersion validates a report version string.
func ValidateReportVersion(version string) error {
	if !reportVersionRegex.MatchString(version) {
		return New(ErrCodeInvalidInput, "invalid report version: %q", version)
	}
	return nil
}

// ValidatePath validates a file path referenced from a request file.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
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

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateURL validates a chart URL.
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
