package entity

import (
	"testing"

	errs "github.com/roozbehm/ledger-service/internal/domain/error"
	"github.com/stretchr/testify/assert"
)

func TestValidateAndConvertAmount(t *testing.T) {
	t.Run("Valid amounts", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected int64
		}{
			{"100.00", 10000},
			{"0.01", 1},
			{"0.10", 10},
			{"1", 100},
			{"1.5", 150},
			{"1234567.89", 123456789},
			{"0.00", 0},
			{"0", 0},
			{"10.", 1000},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				cents, err := ValidateAndConvertAmount(tc.input)
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, cents)
			})
		}
	})

	t.Run("Invalid amounts", func(t *testing.T) {
		testCases := []struct {
			input       string
			errorType   error
			description string
		}{
			{"", errs.ErrInvalidAmount, "Empty string"},
			{"   ", errs.ErrInvalidAmount, "Whitespace only"},
			{"-1.00", errs.ErrNegativeAmount, "Negative amount"},
			{"1.234", errs.ErrInvalidAmount, "Too many decimal places"},
			{"abc", errs.ErrInvalidAmount, "Non-numeric"},
			{"1,000.00", errs.ErrInvalidAmount, "Comma as thousands separator"},
			{"1.00.00", errs.ErrInvalidAmount, "Multiple decimal points"},
			{"$100", errs.ErrInvalidAmount, "Currency symbol"},
		}

		for _, tc := range testCases {
			t.Run(tc.description, func(t *testing.T) {
				_, err := ValidateAndConvertAmount(tc.input)
				assert.Error(t, err)
				assert.ErrorIs(t, err, tc.errorType)
			})
		}
	})

	t.Run("Edge cases", func(t *testing.T) {
		// Very large valid number
		cents, err := ValidateAndConvertAmount("9999999999.99")
		assert.NoError(t, err)
		assert.Equal(t, int64(999999999999), cents)

		// Zero with decimal
		cents, err = ValidateAndConvertAmount("0.00")
		assert.NoError(t, err)
		assert.Equal(t, int64(0), cents)
	})
}

func TestValidatePositiveAmount(t *testing.T) {
	t.Run("Positive amount passes", func(t *testing.T) {
		cents, err := ValidatePositiveAmount("30.00")
		assert.NoError(t, err)
		assert.Equal(t, int64(3000), cents)
	})

	t.Run("Zero amount is rejected", func(t *testing.T) {
		_, err := ValidatePositiveAmount("0.00")
		assert.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("Negative amount is rejected", func(t *testing.T) {
		_, err := ValidatePositiveAmount("-5.00")
		assert.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrNegativeAmount)
	})
}

func TestAmountInCentsToString(t *testing.T) {
	testCases := []struct {
		cents    int64
		expected string
	}{
		{10000, "100.00"},
		{1, "0.01"},
		{10, "0.10"},
		{100, "1.00"},
		{150, "1.50"},
		{123456789, "1234567.89"},
		{0, "0.00"},
		{7000, "70.00"},
		{-2500, "-25.00"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, AmountInCentsToString(tc.cents))
		})
	}
}

func TestAmountRoundTrip(t *testing.T) {
	// String -> cents -> string must be stable for canonical inputs
	inputs := []string{"100.00", "0.01", "70.00", "1234567.89"}
	for _, in := range inputs {
		cents, err := ValidateAndConvertAmount(in)
		assert.NoError(t, err)
		assert.Equal(t, in, AmountInCentsToString(cents))
	}
}
