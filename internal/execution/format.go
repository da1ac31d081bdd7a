package execution

import (
	"math"
	"strconv"
	"strings"
)

// ToPrecision formats v with p significant digits, keeping trailing zeros.
// Exponential notation is used when the exponent is below -6 or at least p,
// e.g. ToPrecision(5, 4) == "5.000" and ToPrecision(123456, 4) == "1.235e+5".
func ToPrecision(v float64, p int) string {
	if p < 1 {
		p = 1
	}
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return strconv.FormatFloat(0, 'f', p-1, 64)
	}

	// Round to p significant digits first so the exponent reflects carries (9.9996 -> 10.00)
	mantissa := strconv.FormatFloat(v, 'e', p-1, 64)
	exp, err := strconv.Atoi(mantissa[strings.IndexByte(mantissa, 'e')+1:])
	if err != nil {
		return mantissa
	}

	if exp < -6 || exp >= p {
		m, e, _ := strings.Cut(mantissa, "e")
		e = strings.TrimLeft(e, "+")
		if e != "" && e[0] != '-' {
			e = "+" + strings.TrimLeft(e, "0")
		} else {
			e = "-" + strings.TrimLeft(e[1:], "0")
		}
		return m + "e" + e
	}
	return strconv.FormatFloat(v, 'f', p-1-exp, 64)
}
