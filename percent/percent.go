// Package percent implements the four everyday percentage formulas of a
// calculator's percentage panel.
package percent

import (
	"math"
	"strconv"
	"strings"

	"github.com/zephyrtronium/calc/display"
)

// Of computes x% of y, e.g. Of("15", "200") is "30.00".
func Of(x, y string) (string, bool) {
	a, b, ok := operands(x, y)
	if !ok {
		return "", false
	}
	return fixed(a/100*b, true)
}

// Ratio computes what percentage x is of y, e.g. Ratio("30", "200") is
// "15.00%". It fails when y is zero.
func Ratio(x, y string) (string, bool) {
	a, b, ok := operands(x, y)
	if !ok || b == 0 {
		return "", false
	}
	r, ok := fixed(a/b*100, false)
	if !ok {
		return "", false
	}
	return r + "%", true
}

// Change computes the percentage change from x to y with an explicit sign on
// increases, e.g. Change("50", "75") is "+50.00%". It fails when x is zero.
func Change(x, y string) (string, bool) {
	a, b, ok := operands(x, y)
	if !ok || a == 0 {
		return "", false
	}
	pct := (b - a) / a * 100
	r, ok := fixed(pct, false)
	if !ok {
		return "", false
	}
	if pct >= 0 {
		r = "+" + r
	}
	return r + "%", true
}

// Whole computes the number of which x is y%, e.g. Whole("30", "15") is
// "200.00". It fails when y is zero.
func Whole(x, y string) (string, bool) {
	a, b, ok := operands(x, y)
	if !ok || b == 0 {
		return "", false
	}
	return fixed(a*100/b, true)
}

// Formula is one of the percentage formulas.
type Formula func(x, y string) (string, bool)

// Formulas maps the name of each formula to its implementation.
var Formulas = map[string]Formula{
	"of":     Of,
	"ratio":  Ratio,
	"change": Change,
	"whole":  Whole,
}

func operands(x, y string) (a, b float64, ok bool) {
	a, ok = number(x)
	if !ok {
		return 0, 0, false
	}
	b, ok = number(y)
	return a, b, ok
}

// number parses decimal text, ignoring grouping commas and surrounding space.
func number(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func fixed(f float64, group bool) (string, bool) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "", false
	}
	s := strconv.FormatFloat(f, 'f', 2, 64)
	if group {
		s = display.Format(s, display.DefaultDigitLimit)
	}
	return s, true
}
