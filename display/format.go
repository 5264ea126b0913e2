// Package display renders calculator numbers for a screen. It groups the
// integer digits of every number in a text with commas and switches numbers
// with too many integer digits to scientific notation.
package display

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultDigitLimit is the integer digit count past which Format switches a
// number to scientific notation for callers with no limit of their own.
const DefaultDigitLimit = 20

// chunk matches a run of digits, possibly already grouped, with an optional
// decimal fraction.
var chunk = regexp.MustCompile(`(\d{1,3}(?:,\d{3})+|\d+)(\.\d*)?`)

// Format groups the integer part of every number in text with thousands
// separators. A number whose integer part has more than digitLimit digits is
// rendered entirely, fraction included, in scientific notation instead. Text
// which already contains scientific notation is returned unchanged, so Format
// is idempotent on its own output.
func Format(text string, digitLimit int) string {
	if text == "" || IsScientific(text) {
		return text
	}
	return chunk.ReplaceAllStringFunc(text, func(m string) string {
		m = strings.ReplaceAll(m, ",", "")
		ip, fp := m, ""
		if k := strings.IndexByte(m, '.'); k >= 0 {
			ip, fp = m[:k], m[k:]
		}
		if len(ip) <= digitLimit {
			return Group(ip) + fp
		}
		// Overlong digit strings parse as ±Inf with ErrRange, which Exponential
		// renders as Infinity.
		f, _ := strconv.ParseFloat(m, 64)
		return Exponential(f)
	})
}

// IsScientific reports whether text contains a number in scientific notation.
func IsScientific(text string) bool {
	return strings.Contains(text, "e+") || strings.Contains(text, "e-")
}

// Group inserts a comma between every three digits of a string of decimal
// digits, counting from the right. Leading zeros are dropped, except that a
// string of only zeros becomes "0".
func Group(digits string) string {
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return "0"
	}
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	b.Grow(n + (n-1)/3)
	lead := n % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < n; i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Exponential renders x in scientific notation with exactly four fractional
// digits in the mantissa and an exponent without zero padding, e.g.
// "1.2346e+25" or "5.0000e-7".
func Exponential(x float64) string {
	switch {
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	case math.IsNaN(x):
		return "NaN"
	}
	s := strconv.FormatFloat(x, 'e', 4, 64)
	k := strings.IndexByte(s, 'e')
	if k < 0 || k+2 >= len(s) {
		return s
	}
	// s[k+1] is the exponent sign.
	exp := strings.TrimLeft(s[k+2:], "0")
	if exp == "" {
		exp = "0"
	}
	return s[:k+2] + exp
}
