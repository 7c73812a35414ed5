package step

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatReal(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0."},
		{1, "1."},
		{-3, "-3."},
		{100, "100."},
		{0.5, "0.5"},
		{-2.25, "-2.25"},
		{0.0001, "0.0001"},
		{123456.789, "123456.789"},
		{0.123456, "0.123456"},
		{0.1234567, "1.234567E-01"},
		{1e-5, "1.E-05"},
		{-5e-5, "-5.E-05"},
		{1e-7, "1.E-07"},
		{1.5e-7, "1.5E-07"},
		{0.7071067811865476, "7.071067811865476E-01"},
		{1e20, "1.E+20"},
	}

	for _, tt := range tests {
		t.Run(strconv.FormatFloat(tt.in, 'g', -1, 64), func(t *testing.T) {
			assert.Equal(t, tt.want, FormatReal(tt.in))
		})
	}
}

func TestFormatRealRoundTrip(t *testing.T) {
	for _, text := range []string{"1.", "0.5", "-12.75", "0.0001", "1.E-05", "1.E-07", "1.5E-07", "7.071067811865476E-01", "1.E+20"} {
		t.Run(text, func(t *testing.T) {
			r, err := NewParser(text).Real()
			require.NoError(t, err)
			assert.Equal(t, text, FormatReal(float64(r)))
		})
	}
}

// Spellings other than the canonical one parse to the same value but are
// written back canonically.
func TestFormatRealCanonicalizes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.0E-05", "1.E-05"},
		{"1.E-5", "1.E-05"},
		{"0.00001", "1.E-05"},
		{"0.50", "0.5"},
		{"1.0", "1."},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, err := NewParser(tt.in).Real()
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatReal(float64(r)))
		})
	}
}
