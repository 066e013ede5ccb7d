// internal/common/validation/validators_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"anita@example.mu", true},
		{"a.b+c@sub.domain.org", true},
		{"", false},
		{"no-at-sign", false},
		{"user@host", false},
		{"@example.mu", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, ValidateEmail(tt.email), tt.email)
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"+23057123456", true},
		{"5712 3456", true},
		{"(230) 5712-3456", true},
		{"", false},
		{"12345", false},
		{"call me", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, ValidatePhone(tt.phone), tt.phone)
	}
}

func TestValidateCoordinate(t *testing.T) {
	tests := []struct {
		lat, lng float64
		valid    bool
	}{
		{-20.348404, 57.552152, true},
		{90, 180, true},
		{-90, -180, true},
		{-95, 57.5, false},
		{-20.3, 190, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, ValidateCoordinate(tt.lat, tt.lng))
	}
}
