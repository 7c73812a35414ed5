package step

import (
	"math"
	"strconv"
	"strings"
)

// MaxFixedFractionDigits is the longest fractional part written in fixed
// notation. Reals whose shortest decimal expansion needs more fractional
// digits are written in exponent notation.
const MaxFixedFractionDigits = 6

// maxIntegralFixed bounds the integral values written as "N.".
const maxIntegralFixed = 1e15

// minFixedMagnitude is the smallest non-zero magnitude written in fixed
// notation, so tolerances such as 1.E-05 keep their exponent form.
const minFixedMagnitude = 1e-4

// FormatReal formats f the way STEP files write reals:
//
//	1      -> "1."
//	0.25   -> "0.25"
//	0.0001 -> "0.0001"
//	1e-05  -> "1.E-05"
//	1e-07  -> "1.E-07"
//	1.5e-7 -> "1.5E-07"
//
// The exponent is signed and has at least two digits.
func FormatReal(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'E', -1, 64)
	}
	if f == math.Trunc(f) && math.Abs(f) < maxIntegralFixed {
		return strconv.FormatFloat(f, 'f', 0, 64) + "."
	}
	if math.Abs(f) < minFixedMagnitude {
		return formatExponent(f)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if dot := strings.IndexByte(s, '.'); dot >= 0 && len(s)-dot-1 <= MaxFixedFractionDigits {
		return s
	}
	return formatExponent(f)
}

func formatExponent(f float64) string {
	s := strconv.FormatFloat(f, 'E', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "E")
	if !strings.Contains(mantissa, ".") {
		mantissa += "."
	}
	return mantissa + "E" + exp
}
