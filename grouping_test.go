package l10n

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGroupDigits(t *testing.T) {
	tests := []struct {
		digits string
		indian string
		thou   string
	}{
		{digits: "1", indian: "1", thou: "1"},
		{digits: "999", indian: "999", thou: "999"},
		{digits: "1234", indian: "1,234", thou: "1,234"},
		{digits: "12345", indian: "12,345", thou: "12,345"},
		{digits: "123456", indian: "1,23,456", thou: "123,456"},
		{digits: "1234567", indian: "12,34,567", thou: "1,234,567"},
		{digits: "12345678", indian: "1,23,45,678", thou: "12,345,678"},
		{digits: "123456789", indian: "12,34,56,789", thou: "123,456,789"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.indian, groupIndian(tc.digits, ","), tc.digits)
		assert.Equal(t, tc.thou, groupThousands(tc.digits, ","), tc.digits)
	}

	assert.Equal(t, "1 234 567", groupThousands("1234567", " "))
	assert.Equal(t, "123", groupDigits("123", 0, 0, ","))
}

func TestRoundHalfAway(t *testing.T) {
	tests := []struct {
		value  string
		places int
		want   string
	}{
		{value: "2.5", places: 0, want: "3"},
		{value: "-2.5", places: 0, want: "-3"},
		{value: "1.005", places: 2, want: "1.01"},
		{value: "1.2", places: 3, want: "1.200"},
		{value: "7.9", places: -1, want: "8"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, roundHalfAway(decimal.RequireFromString(tc.value), tc.places), tc.value)
	}
}

func TestSplitFixed(t *testing.T) {
	negative, integer, fraction := splitFixed("-1234.50")
	assert.True(t, negative)
	assert.Equal(t, "1234", integer)
	assert.Equal(t, "50", fraction)

	negative, _, _ = splitFixed("-0.00")
	assert.False(t, negative)

	negative, integer, fraction = splitFixed("42")
	assert.False(t, negative)
	assert.Equal(t, "42", integer)
	assert.Empty(t, fraction)
}

func TestRoundsNegative(t *testing.T) {
	assert.True(t, roundsNegative(-0.5, 0))
	assert.False(t, roundsNegative(-0.004, 2))
	assert.True(t, roundsNegative(-0.005, 2))
	assert.False(t, roundsNegative(3, 2))
}

func TestTrimFractionZeros(t *testing.T) {
	assert.Equal(t, "1.5", trimFractionZeros("1.50", "."))
	assert.Equal(t, "1", trimFractionZeros("1.00", "."))
	assert.Equal(t, "1,024", trimFractionZeros("1,024", "."))
	assert.Equal(t, "1.024", trimFractionZeros("1.024,00", ","))
	assert.Equal(t, "12,5", trimFractionZeros("12,50", ","))
}
