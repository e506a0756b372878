package userstore

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/streak"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 64
	MinPasswordLength = 8
	MaxPasswordLength = 128
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// ValidateUsername checks length and charset of a username after trimming
// surrounding spaces.
func ValidateUsername(username string) error {
	u := strings.TrimSpace(username)
	switch n := len(u); {
	case n < MinUsernameLength:
		return common.NewValidationError("username", fmt.Sprintf("must be at least %d characters", MinUsernameLength))
	case n > MaxUsernameLength:
		return common.NewValidationError("username", fmt.Sprintf("must be at most %d characters", MaxUsernameLength))
	}
	if !usernamePattern.MatchString(u) {
		return common.NewValidationError("username", "may contain only letters, digits, underscore, hyphen and dot")
	}
	return nil
}

// ValidatePassword checks the password length in characters.
func ValidatePassword(password []byte) error {
	if !utf8.Valid(password) {
		return common.NewValidationError("password", "must be valid UTF-8 text")
	}
	switch n := utf8.RuneCount(password); {
	case n < MinPasswordLength:
		return common.NewValidationError("password", fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	case n > MaxPasswordLength:
		return common.NewValidationError("password", fmt.Sprintf("must be at most %d characters", MaxPasswordLength))
	}
	return nil
}

// ValidateDateKey checks that key is a calendar date in YYYY-MM-DD form.
func ValidateDateKey(key string) error {
	if _, err := streak.ParseDateKey(key); err != nil {
		return common.NewValidationError("date", "must be a date in YYYY-MM-DD form")
	}
	return nil
}
