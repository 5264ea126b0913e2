package calc

import (
	"math"
	"testing"
)

func TestGlobalFuncsCoverNames(t *testing.T) {
	for _, name := range Functions {
		if globalfuncs[name] == nil {
			t.Errorf("no function for %q", name)
		}
	}
	for _, name := range names {
		if globalfuncs[name] == nil && constants[name] == nil {
			t.Errorf("lexer name %q is neither a function nor a constant", name)
		}
	}
	if constants["π"] == nil {
		t.Error("no constant for π")
	}
}

func TestTrigDegreesSnap(t *testing.T) {
	deg := Context{Angle: Degrees}
	cases := []struct {
		name string
		f    func(Context, float64) (float64, error)
		x    float64
		want float64
	}{
		{"sin", sin, 0, 0},
		{"sin", sin, 90, 1},
		{"sin", sin, 180, 0},
		{"sin", sin, 270, -1},
		{"sin", sin, 360, 0},
		{"sin", sin, -180, 0},
		{"sin", sin, 450, 1},
		{"cos", cos, 0, 1},
		{"cos", cos, 90, 0},
		{"cos", cos, 180, -1},
		{"cos", cos, 270, 0},
		{"cos", cos, -90, 0},
		{"cos", cos, 3600, 1},
		{"tan", tan, 0, 0},
		{"tan", tan, 180, 0},
		{"tan", tan, -180, 0},
		{"tan", tan, 540, 0},
	}
	for _, c := range cases {
		r, err := c.f(deg, c.x)
		if err != nil {
			t.Errorf("%s(%g) gave error %v", c.name, c.x, err)
			continue
		}
		if r != c.want {
			t.Errorf("%s(%g) = %g, want exactly %g", c.name, c.x, r, c.want)
		}
	}
}

func TestTanAsymptotes(t *testing.T) {
	for _, x := range []float64{90, 270, -90, 450} {
		if r, err := tan(Context{Angle: Degrees}, x); err == nil {
			t.Errorf("tan(%g°) = %g, want error", x, r)
		}
	}
	if r, err := tan(Context{Angle: Radians}, math.Pi/2); err == nil {
		t.Errorf("tan(π/2) = %g, want error", r)
	}
}

func TestSnap(t *testing.T) {
	cases := []struct {
		x, want float64
	}{
		{1e-16, 0},
		{-1e-16, 0},
		{1e-15, 1e-15},
		{0.5, 0.5},
	}
	for _, c := range cases {
		if r := snap(c.x); r != c.want {
			t.Errorf("snap(%g) = %g, want %g", c.x, r, c.want)
		}
	}
}

func TestNormdeg(t *testing.T) {
	cases := []struct {
		x, m, want float64
	}{
		{0, 360, 0},
		{360, 360, 0},
		{-90, 360, 270},
		{725, 360, 5},
		{-45, 180, 135},
		{90.5, 180, 90.5},
	}
	for _, c := range cases {
		if r := normdeg(c.x, c.m); r != c.want {
			t.Errorf("normdeg(%g, %g) = %g, want %g", c.x, c.m, r, c.want)
		}
	}
}

func TestInverseAngleMode(t *testing.T) {
	atan := globalfuncs["atan"]
	r, err := atan.Call(Context{Angle: Radians}, 1)
	if err != nil || math.Abs(r-math.Pi/4) > 1e-15 {
		t.Errorf("atan(1) in radians = %g, %v", r, err)
	}
	r, err = atan.Call(Context{Angle: Degrees}, 1)
	if err != nil || math.Abs(r-45) > 1e-12 {
		t.Errorf("atan(1) in degrees = %g, %v", r, err)
	}
}

func TestPow(t *testing.T) {
	cases := []struct {
		x, y float64
		want float64
	}{
		{2, 10, 1024},
		{-2, 3, -8},
		{2, -1, 0.5},
		{9, 0.5, 3},
		{2, 0.5, math.Sqrt2},
		{0, 0, 1},
		{1e10, 0.5, 1e5},
	}
	ctx := NewContext()
	for _, c := range cases {
		r, err := pow(ctx, c.x, c.y)
		if err != nil {
			t.Errorf("%g^%g gave error %v", c.x, c.y, err)
			continue
		}
		if math.Abs(r-c.want) > 1e-12*math.Max(1, math.Abs(c.want)) {
			t.Errorf("%g^%g = %g, want %g", c.x, c.y, r, c.want)
		}
	}
	for _, c := range [][2]float64{{-1, 0.5}, {0, -1}, {10, 400}, {2, 5000.5}} {
		if r, err := pow(ctx, c[0], c[1]); err == nil {
			t.Errorf("%g^%g = %g, want error", c[0], c[1], r)
		}
	}
}

func TestMonadicDomain(t *testing.T) {
	cases := []struct {
		name string
		x    float64
	}{
		{"ln", 0},
		{"ln", -1},
		{"log", 0},
		{"√", -1e-300},
	}
	for _, c := range cases {
		r, err := globalfuncs[c.name].Call(Context{}, c.x)
		de, ok := err.(*DomainError)
		if !ok {
			t.Errorf("%s(%g) = %g, %#v; want *DomainError", c.name, c.x, r, err)
			continue
		}
		if de.Func != c.name || de.X != c.x {
			t.Errorf("%s(%g) gave wrong domain error %+v", c.name, c.x, de)
		}
	}
}
