package service

import (
	"strings"
	"unicode"

	"tasktrack/internal/errors"
)

// Structural rules for credentials. These run before any store access so a
// malformed request never costs a database round trip.
const (
	usernameMinLen = 3
	usernameMaxLen = 50
	passwordMinLen = 8
)

// ValidateUsername enforces length and character-set rules: 3-50 chars,
// letters, digits, underscore and hyphen only.
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return errors.NewValidationError("username cannot be empty")
	}
	if len(username) < usernameMinLen || len(username) > usernameMaxLen {
		return errors.NewValidationError("username must be between %d and %d characters", usernameMinLen, usernameMaxLen)
	}
	for _, r := range username {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
			return errors.NewValidationError("username may only contain letters, digits, underscores and hyphens")
		}
	}
	return nil
}

// ValidatePassword enforces minimum strength: at least 8 characters with
// at least one letter and one digit.
func ValidatePassword(password string) error {
	if len(password) < passwordMinLen {
		return errors.NewValidationError("password must be at least %d characters", passwordMinLen)
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter {
		return errors.NewValidationError("password must contain at least one letter")
	}
	if !hasDigit {
		return errors.NewValidationError("password must contain at least one digit")
	}
	return nil
}
