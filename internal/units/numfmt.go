package units

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// ResultDigits is the precision of a displayed converted value;
// FormulaDigits is the precision of results inside formula text.
const (
	ResultDigits  = 6
	FormulaDigits = 4
)

// FormatNumber renders f with the shortest digits that round-trip, switching
// to exponent notation below 1e-6 and from 1e21 ("1e-7", "1.5e+21").
// This is the rendering an ECMAScript host gives a number in a template.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		digits := strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + exp[:1] + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ToFixed renders f with exactly digits fractional digits. Rounding works on
// the exact binary value and resolves ties away from zero; magnitudes from
// 1e21 up fall back to FormatNumber.
func ToFixed(f float64, digits int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= 1e21 {
		return FormatNumber(f)
	}

	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}

	// 2048 bits hold any float64 times 10^digits plus one half exactly.
	scaled := new(big.Float).SetPrec(2048).SetFloat64(f)
	pow := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil))
	scaled.Mul(scaled, pow)
	scaled.Add(scaled, big.NewFloat(0.5))
	n, _ := scaled.Int(nil)

	s := n.String()
	if digits == 0 {
		return sign + s
	}
	if len(s) <= digits {
		s = strings.Repeat("0", digits-len(s)+1) + s
	}
	return sign + s[:len(s)-digits] + "." + s[len(s)-digits:]
}

// FormatResult renders a converted value for display.
func FormatResult(f float64) string {
	return ToFixed(f, ResultDigits)
}
