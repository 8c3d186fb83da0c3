package shortcode

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var customCodePattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// Custom code validation failures.
var (
	ErrEmpty         = errors.New("short code cannot be empty")
	ErrTooLong       = errors.New("short code is too long")
	ErrInvalidFormat = errors.New("short code can only contain letters, numbers, and hyphens")
	ErrReserved      = errors.New("short code is reserved")
)

// Reserved short codes that cannot be used. They are the first path segment
// of routes that would otherwise be shadowed by the redirect route.
var reservedCodes = map[string]bool{
	"admin":     true,
	"api":       true,
	"docs":      true,
	"favicon":   true,
	"health":    true,
	"metrics":   true,
	"redirect":  true,
	"robots":    true,
	"shorten":   true,
	"static":    true,
	"stats":     true,
	"url":       true,
	"urls":      true,
	"analytics": true,
}

// IsReserved reports whether code collides with a route name, ignoring case.
func IsReserved(code string) bool {
	return reservedCodes[strings.ToLower(code)]
}

// ValidateCustom checks a user supplied code.
func ValidateCustom(code string, maxLength int) error {
	if code == "" {
		return ErrEmpty
	}
	if len(code) > maxLength {
		return fmt.Errorf("%w: at most %d characters", ErrTooLong, maxLength)
	}
	if !customCodePattern.MatchString(code) {
		return ErrInvalidFormat
	}
	if IsReserved(code) {
		return fmt.Errorf("%w: %q", ErrReserved, code)
	}
	return nil
}
