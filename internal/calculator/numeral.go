package calculator

import (
	"math"
	"strconv"
	"strings"
)

const roundingScale = 1e8

// roundResult rounds half up to eight decimal places, which hides binary
// floating point drift such as 0.1 + 0.2.
func roundResult(x float64) float64 {
	y := x * roundingScale
	// At or past 2^52 every float64 is already a whole number of 1e-8 units,
	// and adding 0.5 there would round ties to even.
	if math.Abs(y) >= 1<<52 {
		return x
	}
	r := math.Floor(y)
	if y-r >= 0.5 {
		r++
	}
	return r / roundingScale
}

// ParseOperand reads the longest numeric prefix of s, so "5." is 5 and
// "12e" is 12. It reports false when no number can be read, as for "" or ".".
func ParseOperand(s string) (float64, bool) {
	s = strings.TrimLeft(s, " \t\n\r")

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	if strings.HasPrefix(s[i:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}

	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			end = k
		}
	}

	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		// Out of range exponents still carry a signed infinity or zero.
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return v, true
		}
		return 0, false
	}
	return v, true
}

// FormatOperand renders x as the shortest decimal that reads back to x.
// Magnitudes below 1e-6 or at least 1e21 use exponent form, e.g. "1e+21".
func FormatOperand(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	case x == 0:
		return "0"
	}

	abs := math.Abs(x)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}

	s := strconv.FormatFloat(x, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign := exp[0]
	exp = strings.TrimLeft(exp[1:], "0")
	if exp == "" {
		exp = "0"
	}
	return mantissa + "e" + string(sign) + exp
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// validToken reports whether token is a single digit or a decimal point.
func validToken(token string) bool {
	return len(token) == 1 && (isDigit(token[0]) || token[0] == '.')
}
