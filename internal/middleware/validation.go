package middleware

import (
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxTripDays is the largest day count a plan request may ask for.
const MaxTripDays = 14

// ValidateDestination validates a destination string.
func ValidateDestination(destination string) error {
	if len(destination) == 0 {
		return errors.New("destination cannot be empty")
	}
	if len(destination) > 256 {
		return errors.New("destination exceeds maximum length")
	}
	if !utf8.ValidString(destination) {
		return errors.New("destination must be valid UTF-8")
	}
	return nil
}

// ValidateDays validates a requested day count.
func ValidateDays(days int) error {
	if days < 1 {
		return errors.New("days must be at least 1")
	}
	if days > MaxTripDays {
		return errors.New("days exceeds maximum trip length")
	}
	return nil
}

// ValidateIATACode validates an airport code. Empty is allowed; the
// price lookup is simply skipped.
func ValidateIATACode(code string) error {
	if code == "" {
		return nil
	}
	if len(code) != 3 {
		return errors.New("airport code must be 3 letters")
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return errors.New("airport code must be uppercase letters")
		}
	}
	return nil
}

// ValidateSessionID validates a session ID.
func ValidateSessionID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.New("invalid session ID format")
	}
	return nil
}

// ValidateTitle validates a session title.
func ValidateTitle(title string) error {
	if len(title) > 256 {
		return errors.New("title exceeds maximum length")
	}
	if !utf8.ValidString(title) {
		return errors.New("title must be valid UTF-8")
	}
	return nil
}
