package frac

import (
	"errors"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSimplifyFraction(t *testing.T) {
	cases := []struct {
		num, den int64
		want     Fraction
	}{
		{4, 8, Fraction{1, 2}},
		{-3, -9, Fraction{1, 3}},
		{3, -9, Fraction{-1, 3}},
		{-3, 9, Fraction{-1, 3}},
		{0, 5, Fraction{0, 1}},
		{0, -5, Fraction{0, 1}},
		{7, 1, Fraction{7, 1}},
		{12, 12, Fraction{1, 1}},
		{5, 0, Fraction{}},
		{math.MinInt64, 1, Fraction{math.MinInt64, 1}},
		{math.MinInt64, -1, Fraction{}},
		{math.MinInt64, math.MinInt64, Fraction{1, 1}},
		{1, math.MinInt64, Fraction{}},
		{2, math.MinInt64, Fraction{-1, math.MinInt64 / -2}},
		{math.MinInt64, 2, Fraction{math.MinInt64 / 2, 1}},
		{math.MaxInt64, -1, Fraction{-math.MaxInt64, 1}},
	}
	for _, c := range cases {
		if diff := cmp.Diff(c.want, SimplifyFraction(c.num, c.den)); diff != "" {
			t.Errorf("SimplifyFraction(%d, %d) mismatch (-want +got):\n%s", c.num, c.den, diff)
		}
	}
}

func TestSimplifyZeroDenominator(t *testing.T) {
	if _, err := Simplify(Fraction{1, 0}); !errors.Is(err, ErrZeroDenominator) {
		t.Errorf("want ErrZeroDenominator, got %v", err)
	}
}

func TestSimplifyInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		num := rng.Int63n(2000001) - 1000000
		den := rng.Int63n(2000001) - 1000000
		if den == 0 {
			continue
		}
		r, err := Simplify(Fraction{num, den})
		if err != nil {
			t.Fatalf("%d/%d: %v", num, den, err)
		}
		if r.Den <= 0 {
			t.Errorf("%d/%d simplified to %v with non-positive denominator", num, den, r)
		}
		if g := gcd(abs(r.Num), abs(r.Den)); g != 1 {
			t.Errorf("%d/%d simplified to %v with common factor %d", num, den, r, g)
		}
		if r.Num*den != num*r.Den {
			t.Errorf("%d/%d simplified to different value %v", num, den, r)
		}
	}
}

func TestToMixedNumber(t *testing.T) {
	cases := []struct {
		num, den int64
		want     Mixed
	}{
		{7, 2, Mixed{3, 1, 2}},
		{-7, 2, Mixed{-3, 1, 2}},
		{7, -2, Mixed{3, 1, 2}},
		{4, 2, Mixed{2, 0, 2}},
		{2, 3, Mixed{0, 2, 3}},
		{0, 3, Mixed{0, 0, 3}},
		{1, 0, Mixed{}},
	}
	for _, c := range cases {
		if diff := cmp.Diff(c.want, ToMixedNumber(c.num, c.den)); diff != "" {
			t.Errorf("ToMixedNumber(%d, %d) mismatch (-want +got):\n%s", c.num, c.den, diff)
		}
	}
}

func TestImproper(t *testing.T) {
	cases := []struct {
		m    Mixed
		want Fraction
		err  error
	}{
		{Mixed{1, 1, 2}, Fraction{3, 2}, nil},
		{Mixed{-1, 1, 2}, Fraction{-3, 2}, nil},
		{Mixed{0, 3, 4}, Fraction{3, 4}, nil},
		{Mixed{2, 0, 5}, Fraction{10, 5}, nil},
		{Mixed{1, -1, 2}, Fraction{1, 2}, nil},
		{Mixed{math.MinInt64, 0, 1}, Fraction{}, ErrOverflow},
		{Mixed{math.MaxInt64, 1, 2}, Fraction{}, ErrOverflow},
	}
	for _, c := range cases {
		got, err := c.m.Improper()
		if !errors.Is(err, c.err) {
			t.Errorf("%+v: want error %v, got %v", c.m, c.err, err)
		}
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("%+v.Improper() mismatch (-want +got):\n%s", c.m, diff)
		}
	}
}

func TestDecimalToFraction(t *testing.T) {
	cases := []struct {
		text string
		want Fraction
		ok   bool
	}{
		{"1.25", Fraction{5, 4}, true},
		{"-0.5", Fraction{-1, 2}, true},
		{"0.5", Fraction{1, 2}, true},
		{"3", Fraction{3, 1}, true},
		{"-3", Fraction{-3, 1}, true},
		{".5", Fraction{1, 2}, true},
		{"5.", Fraction{5, 1}, true},
		{"+2.50", Fraction{5, 2}, true},
		{"-1.05", Fraction{-21, 20}, true},
		{"0", Fraction{0, 1}, true},
		{"-0", Fraction{0, 1}, true},
		{"", Fraction{}, false},
		{".", Fraction{}, false},
		{"-", Fraction{}, false},
		{"1.2.3", Fraction{}, false},
		{"abc", Fraction{}, false},
		{"1e5", Fraction{}, false},
		{"--1", Fraction{}, false},
		{"1,000", Fraction{}, false},
		{"99999999999999999999", Fraction{}, false},
		{"0.0000000000000000001", Fraction{}, false},
	}
	for _, c := range cases {
		got, ok := DecimalToFraction(c.text)
		if ok != c.ok {
			t.Errorf("DecimalToFraction(%q) ok = %t, want %t", c.text, ok, c.ok)
		}
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("DecimalToFraction(%q) mismatch (-want +got):\n%s", c.text, diff)
		}
	}
}

func TestDecimalRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 5000; i++ {
		var b strings.Builder
		if rng.Intn(2) == 0 {
			b.WriteByte('-')
		}
		for k := rng.Intn(9) + 1; k > 0; k-- {
			b.WriteByte(byte('0' + rng.Intn(10)))
		}
		if rng.Intn(3) != 0 {
			b.WriteByte('.')
			for k := rng.Intn(9); k > 0; k-- {
				b.WriteByte(byte('0' + rng.Intn(10)))
			}
		}
		d := b.String()
		f, ok := DecimalToFraction(d)
		if !ok {
			t.Fatalf("%q did not convert", d)
		}
		want, err := strconv.ParseFloat(d, 64)
		if err != nil {
			t.Fatalf("%q did not parse: %v", d, err)
		}
		got := float64(f.Num) / float64(f.Den)
		if math.Abs(got-want) > 1e-12*math.Max(1, math.Abs(want)) {
			t.Errorf("%q converted to %v = %g", d, f, got)
		}
	}
}

func TestArithmeticErrors(t *testing.T) {
	big := Fraction{math.MaxInt64, 1}
	cases := []struct {
		name string
		f    func(a, b Fraction) (Fraction, error)
		a, b Fraction
		err  error
	}{
		{"add", Add, big, Fraction{1, 1}, ErrOverflow},
		{"sub", Sub, Fraction{math.MinInt64, 1}, Fraction{1, 1}, ErrOverflow},
		{"mul", Mul, big, Fraction{2, 1}, ErrOverflow},
		{"mul-den", Mul, Fraction{1, math.MaxInt64}, Fraction{1, 2}, ErrOverflow},
		{"div", Div, Fraction{1, 2}, Fraction{0, 3}, ErrDivideByZero},
		{"div-overflow", Div, big, Fraction{1, 2}, ErrOverflow},
	}
	for _, c := range cases {
		got, err := c.f(c.a, c.b)
		if !errors.Is(err, c.err) {
			t.Errorf("%s(%v, %v) = %v, %v; want error %v", c.name, c.a, c.b, got, err, c.err)
		}
	}
}

func TestArithmetic(t *testing.T) {
	cases := []struct {
		name string
		f    func(a, b Fraction) (Fraction, error)
		a, b Fraction
		want Fraction
	}{
		{"add", Add, Fraction{1, 2}, Fraction{1, 3}, Fraction{5, 6}},
		{"add-unreduced", Add, Fraction{1, 4}, Fraction{1, 4}, Fraction{8, 16}},
		{"sub", Sub, Fraction{1, 2}, Fraction{1, 3}, Fraction{1, 6}},
		{"mul", Mul, Fraction{2, 3}, Fraction{3, 4}, Fraction{6, 12}},
		{"div", Div, Fraction{1, 2}, Fraction{1, 4}, Fraction{4, 2}},
		{"div-neg", Div, Fraction{1, 2}, Fraction{-1, 4}, Fraction{4, -2}},
	}
	for _, c := range cases {
		got, err := c.f(c.a, c.b)
		if err != nil {
			t.Errorf("%s: %v", c.name, err)
			continue
		}
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("%s(%v, %v) mismatch (-want +got):\n%s", c.name, c.a, c.b, diff)
		}
	}
}

func TestStrings(t *testing.T) {
	cases := []struct {
		s    interface{ String() string }
		want string
	}{
		{Fraction{3, 4}, "3/4"},
		{Fraction{-3, 4}, "-3/4"},
		{Fraction{5, 1}, "5"},
		{Mixed{1, 1, 2}, "1 1/2"},
		{Mixed{-3, 1, 2}, "-3 1/2"},
		{Mixed{2, 0, 1}, "2"},
		{Mixed{0, 2, 3}, "2/3"},
		{OpAdd, "+"},
		{OpSub, "−"},
		{OpMul, "×"},
		{OpDiv, "÷"},
	}
	for _, c := range cases {
		if got := c.s.String(); got != c.want {
			t.Errorf("%#v rendered as %q, want %q", c.s, got, c.want)
		}
	}
}
