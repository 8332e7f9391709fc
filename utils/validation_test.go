package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr error
	}{
		{"default when empty", "", 60, nil},
		{"valid", "45", 45, nil},
		{"trims whitespace", " 90 ", 90, nil},
		{"non-numeric", "abc", 0, ErrInvalidDuration},
		{"zero", "0", 0, ErrInvalidDuration},
		{"negative", "-30", 0, ErrInvalidDuration},
		{"fractional", "45.5", 0, ErrInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDuration(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{"zero when empty", "", "0", nil},
		{"valid", "1500.50", "1500.50", nil},
		{"integer", "1000", "1000", nil},
		{"non-numeric", "abc", "", ErrInvalidPrice},
		{"negative", "-10.00", "", ErrNegativePrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePrice(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseRate_CoercesBadInputToZero(t *testing.T) {
	assert.True(t, ParseRate("").IsZero())
	assert.True(t, ParseRate("not-a-number").IsZero())
	assert.Equal(t, "12.5", ParseRate("12.50").String())
	// Negative rates pass through; the calculator does not clamp
	assert.Equal(t, "-5", ParseRate("-5").String())
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+905321234567"))
	assert.True(t, ValidatePhone("5321234567"))
	assert.True(t, ValidatePhone("+1 (555) 123-4567"))
	assert.False(t, ValidatePhone("abc"))
	assert.False(t, ValidatePhone("+0123"))
}
