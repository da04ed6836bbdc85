package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Compiled regular expressions for validation
var (
	// Detect potentially dangerous characters - more focused on injection patterns
	dangerousPattern = regexp.MustCompile(`[<>]|--|\/\*|\*\/|;.*--`)

	// Detect HTML/script tags
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

	clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
)

// ValidateName validates that a name parameter is safe and within reasonable limits.
// Route and stop names may contain Hangul, so only length and injection
// patterns are checked.
func ValidateName(name string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}

	if len(name) > 100 {
		return errors.New("name too long (max 100 characters)")
	}

	if dangerousPattern.MatchString(name) || htmlTagPattern.MatchString(name) {
		return errors.New("name contains invalid characters")
	}

	return nil
}

// ValidateQuery validates search query strings
func ValidateQuery(query string) error {
	// Empty queries are allowed
	if query == "" {
		return nil
	}

	if len(query) > 200 {
		return errors.New("query too long (max 200 characters)")
	}

	// Check for dangerous characters that could indicate injection attempts
	if dangerousPattern.MatchString(query) {
		return errors.New("query contains invalid characters")
	}

	return nil
}

// ValidateLatitude validates latitude values
func ValidateLatitude(lat float64) error {
	if lat < -90.0 || lat > 90.0 {
		return errors.New("latitude must be between -90 and 90")
	}
	return nil
}

// ValidateLongitude validates longitude values
func ValidateLongitude(lon float64) error {
	if lon < -180.0 || lon > 180.0 {
		return errors.New("longitude must be between -180 and 180")
	}
	return nil
}

// ValidateDate validates date strings in YYYY-MM-DD format
func ValidateDate(date string) error {
	// Empty dates are allowed (will default to current date)
	if date == "" {
		return nil
	}

	// Parse date in YYYY-MM-DD format
	_, err := time.Parse("2006-01-02", date)
	if err != nil {
		return errors.New("invalid date format, use YYYY-MM-DD")
	}

	return nil
}

// ParseClock converts an HH:MM or HH:MM:SS string to seconds since
// midnight. Hours up to 28 are accepted for after-midnight departures.
func ParseClock(clock string) (int64, error) {
	match := clockPattern.FindStringSubmatch(clock)
	if match == nil {
		return 0, fmt.Errorf("invalid time %q, use HH:MM or HH:MM:SS", clock)
	}

	hours := mustAtoi(match[1])
	minutes := mustAtoi(match[2])
	seconds := int64(0)
	if match[3] != "" {
		seconds = mustAtoi(match[3])
	}

	if hours > 28 || minutes > 59 || seconds > 59 {
		return 0, fmt.Errorf("time %q out of range", clock)
	}
	return hours*3600 + minutes*60 + seconds, nil
}

func mustAtoi(s string) int64 {
	var n int64
	for _, c := range s {
		n = n*10 + int64(c-'0')
	}
	return n
}

// SanitizeInput removes HTML tags and other potentially dangerous content
func SanitizeInput(input string) string {
	// Remove HTML tags
	sanitized := htmlTagPattern.ReplaceAllString(input, "")

	// Trim whitespace
	sanitized = strings.TrimSpace(sanitized)

	return sanitized
}
