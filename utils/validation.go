// utils/validation.go
package utils

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Clean the phone number
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// Allows + prefix followed by 7-15 digits
	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

var (
	ErrInvalidDuration = errors.New("invalid duration format")
	ErrInvalidPrice    = errors.New("invalid price format")
	ErrNegativePrice   = errors.New("price cannot be negative")
)

// ParseDuration validates a session duration submitted as a form field.
// Empty input falls back to the 60 minute default.
func ParseDuration(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 60, nil
	}
	d, err := strconv.Atoi(raw)
	if err != nil || d <= 0 {
		return 0, ErrInvalidDuration
	}
	return d, nil
}

// ParsePrice validates a session price submitted as a form field.
// Empty input means zero; negative values are rejected.
func ParsePrice(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	p, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrInvalidPrice
	}
	if p.IsNegative() {
		return decimal.Zero, ErrNegativePrice
	}
	return p, nil
}

// ParseRate parses a commission rate field. Unparseable or empty input is
// coerced to zero rather than rejected.
func ParseRate(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	r, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return r
}
