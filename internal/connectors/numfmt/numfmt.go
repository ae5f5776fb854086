// Package numfmt formats feed figures for signal descriptions and data points.
package numfmt

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Fixed formats v with exactly dec decimals.
func Fixed(v float64, dec int) string {
	return strconv.FormatFloat(v, 'f', dec, 64)
}

// Signed formats v with dec decimals and a leading "+" when positive.
// Zero and negative values carry no extra sign.
func Signed(v float64, dec int) string {
	s := Fixed(v, dec)
	if v > 0 {
		return "+" + s
	}
	return s
}

// Precision formats v with sig significant digits without exponent notation.
func Precision(v float64, sig int) string {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return Fixed(v, sig-1)
	}
	exp := int(math.Floor(math.Log10(math.Abs(v))))
	dec := sig - 1 - exp
	if dec < 0 {
		dec = 0
	}
	return Fixed(v, dec)
}

// Billions formats a USD amount as "$X.XXB".
func Billions(v float64, dec int) string {
	return "$" + Fixed(v/1e9, dec) + "B"
}

// Millions formats a USD amount as "$X.XM".
func Millions(v float64, dec int) string {
	return "$" + Fixed(v/1e6, dec) + "M"
}

// Price formats a token price: three significant digits below one dollar,
// two decimals otherwise.
func Price(v float64) string {
	if v < 1 {
		return "$" + Precision(v, 3)
	}
	return "$" + Fixed(v, 2)
}

// Grouped formats an integer with thousands separators.
func Grouped(n int64) string {
	return printer.Sprintf("%d", n)
}

// Round rounds half away from zero and clamps into [0,100].
func Round(v float64) float64 {
	return math.Min(100, math.Max(0, math.Round(v)))
}
