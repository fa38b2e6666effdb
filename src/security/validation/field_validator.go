// backend/src/security/validation/field_validator.go
package validation

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

var ErrValidationFailed = fmt.Errorf("validation failed")

const (
	MaxIndustryLength = 64
	MaxFilenameLength = 255
)

// --- String Validators ---

// ValidateStringNotEmpty checks if a string is not empty after trimming.
func ValidateStringNotEmpty(s, fieldName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrValidationFailed, fieldName)
	}
	return nil
}

// ValidateStringMaxLength checks if a string's UTF-8 character count is within max bounds.
func ValidateStringMaxLength(s string, maxLength int, fieldName string) error {
	if utf8.RuneCountInString(s) > maxLength {
		return fmt.Errorf("%w: %s exceeds maximum length of %d characters", ErrValidationFailed, fieldName, maxLength)
	}
	return nil
}

// ValidateStringRegex checks if a string matches a given regex pattern.
func ValidateStringRegex(s string, pattern *regexp.Regexp, fieldName, formatDescription string) error {
	if !pattern.MatchString(s) {
		return fmt.Errorf("%w: %s ('%s') is not in the expected format (%s)", ErrValidationFailed, fieldName, s, formatDescription)
	}
	return nil
}

var (
	alphanumericWithSpacesRegex = regexp.MustCompile(`^[a-zA-Z0-9 ]*$`)
	languageCodeRegex           = regexp.MustCompile(`^[a-z]{2}$`)
)

// ValidateAlphanumericWithSpaces checks if a string contains only letters, numbers, and spaces.
func ValidateAlphanumericWithSpaces(s, fieldName string) error {
	if !alphanumericWithSpacesRegex.MatchString(s) {
		return fmt.Errorf("%w: field '%s' may only contain letters, numbers and spaces", ErrValidationFailed, fieldName)
	}
	return nil
}

// --- Specific Format Validators ---

// ValidateIndustry accepts an optional industry label. Empty means "General".
func ValidateIndustry(s string) error {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	if err := ValidateStringMaxLength(trimmed, MaxIndustryLength, "industry"); err != nil {
		return err
	}
	return ValidateAlphanumericWithSpaces(trimmed, "industry")
}

// ValidateLanguageCode accepts an optional two-letter lowercase language code.
func ValidateLanguageCode(s string) error {
	if s == "" {
		return nil
	}
	return ValidateStringRegex(s, languageCodeRegex, "language", "two lowercase letters")
}

// ValidateFilename checks an upload's declared filename. Only the base name
// is kept by callers, so path separators are tolerated here.
func ValidateFilename(s string) error {
	base := filepath.Base(strings.TrimSpace(s))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return fmt.Errorf("%w: filename cannot be empty", ErrValidationFailed)
	}
	if err := ValidateStringMaxLength(base, MaxFilenameLength, "filename"); err != nil {
		return err
	}
	if StripUnprintable(base) != base {
		return fmt.Errorf("%w: filename contains control characters", ErrValidationFailed)
	}
	return CheckXSSPatterns(base, "filename", "upload")
}
