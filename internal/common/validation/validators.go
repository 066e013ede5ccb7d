// internal/common/validation/validators.go

// Package validation provides field-level checks shared by the feature
// packages, beyond what request binding covers.
package validation

import "regexp"

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-\(\)]{7,}$`)
)

// ValidateEmail validates email format.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePhone validates basic phone number format. Mauritius numbers
// are eight digits, so the floor sits below the usual ten.
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ValidateCoordinate reports whether a latitude/longitude pair is on
// the globe.
func ValidateCoordinate(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
