// Package frac implements exact arithmetic on fractions and mixed numbers of
// int64 parts, with a trace of the steps a person would write down.
package frac

import (
	"errors"
	"math"
	"strconv"
)

var (
	// ErrZeroDenominator is returned for a fraction with a zero denominator.
	ErrZeroDenominator = errors.New("frac: zero denominator")
	// ErrDivideByZero is returned for division by a zero fraction.
	ErrDivideByZero = errors.New("frac: division by zero")
	// ErrOverflow is returned when a numerator or denominator does not fit in
	// an int64.
	ErrOverflow = errors.New("frac: integer overflow")
	// ErrSyntax is returned for text which is not a decimal number.
	ErrSyntax = errors.New("frac: invalid decimal")
)

// Fraction is a ratio of integers. A simplified Fraction has Den > 0 and no
// common factor between Num and Den.
type Fraction struct {
	Num, Den int64
}

// String renders f as "Num/Den", or just "Num" when Den is 1.
func (f Fraction) String() string {
	if f.Den == 1 {
		return strconv.FormatInt(f.Num, 10)
	}
	return strconv.FormatInt(f.Num, 10) + "/" + strconv.FormatInt(f.Den, 10)
}

// Mixed is a mixed number. The sign of the number is the sign of Whole; Num
// is a non-negative remainder over Den.
type Mixed struct {
	Whole, Num, Den int64
}

// String renders m as "Whole Num/Den", dropping a zero whole part or a zero
// remainder.
func (m Mixed) String() string {
	switch {
	case m.Whole == 0:
		return Fraction{m.Num, m.Den}.String()
	case m.Num == 0:
		return strconv.FormatInt(m.Whole, 10)
	default:
		return strconv.FormatInt(m.Whole, 10) + " " + Fraction{m.Num, m.Den}.String()
	}
}

// Improper converts m to an improper fraction. The whole part's sign applies
// to the entire number, so a signed Num is added to the magnitude of Whole:
// -1 1/2 is -3/2, and 1 -1/2 is 1/2.
func (m Mixed) Improper() (Fraction, error) {
	w := m.Whole
	sign := int64(1)
	if w < 0 {
		if w == math.MinInt64 {
			return Fraction{}, ErrOverflow
		}
		sign, w = -1, -w
	}
	n, err := mul(w, m.Den)
	if err != nil {
		return Fraction{}, err
	}
	n, err = add(n, m.Num)
	if err != nil {
		return Fraction{}, err
	}
	return Fraction{Num: sign * n, Den: m.Den}, nil
}

// Add returns a+b over the product of the denominators, without reducing.
func Add(a, b Fraction) (Fraction, error) {
	return addsub(a, b, add)
}

// Sub returns a-b over the product of the denominators, without reducing.
func Sub(a, b Fraction) (Fraction, error) {
	return addsub(a, b, sub)
}

func addsub(a, b Fraction, op func(x, y int64) (int64, error)) (Fraction, error) {
	t1, err := mul(a.Num, b.Den)
	if err != nil {
		return Fraction{}, err
	}
	t2, err := mul(b.Num, a.Den)
	if err != nil {
		return Fraction{}, err
	}
	n, err := op(t1, t2)
	if err != nil {
		return Fraction{}, err
	}
	d, err := mul(a.Den, b.Den)
	if err != nil {
		return Fraction{}, err
	}
	return Fraction{Num: n, Den: d}, nil
}

// Mul returns a×b without reducing.
func Mul(a, b Fraction) (Fraction, error) {
	n, err := mul(a.Num, b.Num)
	if err != nil {
		return Fraction{}, err
	}
	d, err := mul(a.Den, b.Den)
	if err != nil {
		return Fraction{}, err
	}
	return Fraction{Num: n, Den: d}, nil
}

// Div returns a÷b, i.e. a×(1/b), without reducing. The denominator of the
// result is negative when b is.
func Div(a, b Fraction) (Fraction, error) {
	if b.Num == 0 {
		return Fraction{}, ErrDivideByZero
	}
	return Mul(a, Fraction{Num: b.Den, Den: b.Num})
}

// Simplify reduces f to lowest terms with a positive denominator.
func Simplify(f Fraction) (Fraction, error) {
	if f.Den == 0 {
		return Fraction{}, ErrZeroDenominator
	}
	g := gcd(abs(f.Num), abs(f.Den))
	// g divides both magnitudes, so the quotients are at most 2^63. That fits
	// only as a negative numerator.
	n, d := abs(f.Num)/g, abs(f.Den)/g
	neg := f.Num != 0 && (f.Num < 0) != (f.Den < 0)
	if d > math.MaxInt64 || n > math.MaxInt64 && !neg {
		return Fraction{}, ErrOverflow
	}
	// int64(2^63) wraps to MinInt64, which is its own negation.
	r := Fraction{Num: int64(n), Den: int64(d)}
	if neg {
		r.Num = -r.Num
	}
	return r, nil
}

// SimplifyFraction reduces num/den to lowest terms with a positive
// denominator. A zero denominator, or a result that doesn't fit, gives the
// zero Fraction.
func SimplifyFraction(num, den int64) Fraction {
	r, err := Simplify(Fraction{Num: num, Den: den})
	if err != nil {
		return Fraction{}
	}
	return r
}

// ToMixed splits f into a whole part and a remainder. Whole is ⌊|Num|/|Den|⌋
// carrying the sign of Num, the remainder is |Num| mod |Den|, and Den is
// |f.Den|. A proper negative fraction loses its sign, as the whole part is 0;
// callers convert only fractions with |Num| ≥ |Den|. Panics if f.Den is 0.
func ToMixed(f Fraction) Mixed {
	n, d := abs(f.Num), abs(f.Den)
	w := int64(n / d)
	if f.Num < 0 {
		w = -w
	}
	return Mixed{Whole: w, Num: int64(n % d), Den: int64(d)}
}

// ToMixedNumber is ToMixed on num/den. A zero denominator gives the zero
// Mixed.
func ToMixedNumber(num, den int64) Mixed {
	if den == 0 {
		return Mixed{}
	}
	return ToMixed(Fraction{Num: num, Den: den})
}

// DecimalToFraction converts decimal text, an optional sign followed by digits
// with at most one point, into a simplified fraction. The sign applies to the
// whole number, so "-0.5" is -1/2. The second result is false for any other
// text or a value which does not fit.
func DecimalToFraction(text string) (Fraction, bool) {
	f, err := parseDecimal(text)
	if err != nil {
		return Fraction{}, false
	}
	r, err := Simplify(f)
	if err != nil {
		return Fraction{}, false
	}
	return r, true
}

// parseDecimal converts decimal text into a fraction over a power of ten
// without reducing it.
func parseDecimal(text string) (Fraction, error) {
	neg := false
	if text != "" && (text[0] == '-' || text[0] == '+') {
		neg = text[0] == '-'
		text = text[1:]
	}
	var n, d int64 = 0, 1
	digits, dot := 0, false
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case '0' <= c && c <= '9':
			var err error
			if n, err = mul(n, 10); err != nil {
				return Fraction{}, err
			}
			if n, err = add(n, int64(c-'0')); err != nil {
				return Fraction{}, err
			}
			if dot {
				if d, err = mul(d, 10); err != nil {
					return Fraction{}, err
				}
			}
			digits++
		case c == '.' && !dot:
			dot = true
		default:
			return Fraction{}, ErrSyntax
		}
	}
	if digits == 0 {
		return Fraction{}, ErrSyntax
	}
	if neg {
		n = -n
	}
	return Fraction{Num: n, Den: d}, nil
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(x int64) uint64 {
	if x < 0 {
		return uint64(-(x + 1)) + 1
	}
	return uint64(x)
}

func add(a, b int64) (int64, error) {
	c := a + b
	if (c > a) != (b > 0) {
		return 0, ErrOverflow
	}
	return c, nil
}

func sub(a, b int64) (int64, error) {
	c := a - b
	if (c < a) != (b > 0) {
		return 0, ErrOverflow
	}
	return c, nil
}

func mul(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	c := a * b
	if c/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, ErrOverflow
	}
	return c, nil
}
