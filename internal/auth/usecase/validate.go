package usecase

import (
	"regexp"
	"unicode"

	authdomain "altweb/internal/auth/domain"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	msgInvalidEmail      = "Please enter a valid email address"
	msgWeakPassword      = "Password must be at least 8 characters long and contain both letters and numbers"
	msgAlreadyRegistered = "This user is already registered"
)

// validateCredentials checks email format and password strength, reporting
// every offending field together. It touches no storage, so registration
// input can be rejected before any store interaction.
func validateCredentials(email, password string) *authdomain.ValidationError {
	verr := authdomain.NewValidationError()

	if !emailPattern.MatchString(email) {
		verr.Add("email", msgInvalidEmail)
	}
	if !strongPassword(password) {
		verr.Add("password", msgWeakPassword)
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

// strongPassword requires at least 8 characters with at least one letter
// and one digit.
func strongPassword(password string) bool {
	if len(password) < 8 {
		return false
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
	return hasLetter && hasDigit
}
