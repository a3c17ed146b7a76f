package analysis

import (
	"math"
	"strconv"
	"strings"
)

// round is half-up rounding used for every integer figure the engine
// reports (ratios, patient counts, prices and scores).
func round(x float64) float64 {
	return math.Floor(x + 0.5)
}

// maxFigure bounds every integer figure so absurd inputs saturate instead
// of wrapping around on conversion.
const maxFigure = math.MaxInt32

// toInt converts x, saturating at ±maxFigure.
func toInt(x float64) int {
	switch {
	case math.IsNaN(x):
		return 0
	case x > maxFigure:
		return maxFigure
	case x < -maxFigure:
		return -maxFigure
	}
	return int(x)
}

// FormatNumber renders n with thousands separators and at most three
// fraction digits, e.g. 15000000 -> "15,000,000" and 37.5 -> "37.5".
func FormatNumber(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return "0"
	}

	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	s := strconv.FormatFloat(n, 'f', 3, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	frac = strings.TrimRight(frac, "0")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}

	out := b.String()
	if out == "-0" {
		return "0"
	}
	return out
}

// plain renders a number the way it was entered, without separators.
func plain(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
