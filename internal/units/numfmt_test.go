package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{1, "1"},
		{-0.5, "-0.5"},
		{0.001, "0.001"},
		{123.456, "123.456"},
		{1000000000, "1000000000"},
		{1e-6, "0.000001"},
		{3.861e-7, "3.861e-7"},
		{1.0 / 1073741824, "9.313225746154785e-10"},
		{8.0 / 1024, "0.0078125"},
		{1e21, "1e+21"},
		{1.5e300, "1.5e+300"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, FormatNumber(tc.in), "FormatNumber(%v)", tc.in)
	}
}

func TestToFixed(t *testing.T) {
	tests := []struct {
		in     float64
		digits int
		want   string
	}{
		{32, 4, "32.0000"},
		{0.01, 6, "0.010000"},
		{-273.15, 4, "-273.1500"},
		{1.03125, 4, "1.0313"},
		{-1.03125, 4, "-1.0313"},
		{2.5, 0, "3"},
		{1.005, 2, "1.00"},
		{0.00005, 4, "0.0001"},
		{0.00001, 4, "0.0000"},
		{-0.00001, 4, "-0.0000"},
		{math.Copysign(0, -1), 4, "0.0000"},
		{0.0009765625, 4, "0.0010"},
		{123456.789, 6, "123456.789000"},
		{1e21, 4, "1e+21"},
		{math.NaN(), 6, "NaN"},
		{math.Inf(-1), 6, "-Infinity"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, ToFixed(tc.in, tc.digits), "ToFixed(%v, %d)", tc.in, tc.digits)
	}
}

func TestFormatResult(t *testing.T) {
	assert.Equal(t, "212.000000", FormatResult(212))
	assert.Equal(t, "0.000977", FormatResult(0.0009765625))
}
