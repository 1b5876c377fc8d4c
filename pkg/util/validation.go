package util

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// E.164-ish: optional +, 7 to 15 digits
var phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// ValidatePhone checks that a phone number has only digits with an optional leading +.
func ValidatePhone(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("phone cannot be empty")
	}
	if !phoneRegex.MatchString(value) {
		return fmt.Errorf("phone must be 7-15 digits with an optional leading '+'")
	}
	return nil
}

// IsPhone checks if a string is a valid phone number without returning an error.
func IsPhone(value string) bool {
	return ValidatePhone(value) == nil
}

// ParseID converts a path parameter to a positive numeric id.
func ParseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}
