package calc

import (
	"errors"
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a function from reals to reals.
type Func interface {
	// Call evaluates the function at x. x is always finite. A result outside
	// the function's domain is reported as a *DomainError.
	Call(ctx Context, x float64) (float64, error)
}

// Functions contains the names of the functions an expression may call.
var Functions = []string{"sin", "cos", "tan", "asin", "acos", "atan", "√", "log", "ln"}

var globalfuncs = map[string]Func{
	"ln": Monadic("ln", positive, bigfloat.Log),
	"log": Monadic("log", positive, func(out, in *big.Float) *big.Float {
		bigfloat.Log(out, in)
		in.SetFloat64(10).SetPrec(out.Prec())
		bigfloat.Log(in, in)
		return out.Quo(out, in)
	}),
	"√": Monadic("√", nonnegative, (*big.Float).Sqrt),

	"sin":  native(sin),
	"cos":  native(cos),
	"tan":  native(tan),
	"asin": inverse("asin", math.Asin),
	"acos": inverse("acos", math.Acos),
	"atan": inverse("atan", math.Atan),
}

var constants = map[string]Func{
	"π": Niladic(bigfloat.Pi),
	"e": Niladic(func(out *big.Float) *big.Float {
		var one big.Float
		one.SetFloat64(1)
		return bigfloat.Exp(out, &one)
	}),
}

func positive(x float64) bool    { return x > 0 }
func nonnegative(x float64) bool { return x >= 0 }

type monadic struct {
	name string
	dom  func(float64) bool
	f    func(out, in *big.Float) *big.Float
}

func (m monadic) Call(ctx Context, x float64) (r float64, err error) {
	if m.dom != nil && !m.dom(x) {
		return 0, &DomainError{X: x, Func: m.name}
	}
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		err = p.(error) // panic if not error
		if errors.As(err, &big.ErrNaN{}) {
			r, err = 0, &DomainError{X: x, Func: m.name}
			return
		}
		panic(err)
	}()
	prec := ctx.prec()
	in := new(big.Float).SetPrec(prec).SetFloat64(x)
	out := new(big.Float).SetPrec(prec)
	m.f(out, in)
	r, _ = out.Float64()
	return finite(r, m.name)
}

// Monadic wraps a function of one variable computed with big floats into a
// Func. dom reports whether an argument is inside the function's domain; nil
// means all reals. f must set out to its result, to the precision of in; its
// return value is always ignored. If f is nevertheless called on an argument
// outside its domain, it should panic with an error of type big.ErrNaN, or
// that unwraps to it.
func Monadic(name string, dom func(float64) bool, f func(out, in *big.Float) *big.Float) Func {
	return monadic{name: name, dom: dom, f: f}
}

type niladic struct {
	f func(out *big.Float) *big.Float
}

func (n niladic) Call(ctx Context, x float64) (float64, error) {
	r := new(big.Float).SetPrec(ctx.prec())
	n.f(r)
	v, _ := r.Float64()
	return v, nil
}

// Niladic wraps a function of zero variables, generally a function which
// computes a constant, into a Func which ignores its argument. f must set out
// to its result; its return value is always ignored. Unlike Monadic, the
// wrapped function is expected never to panic.
func Niladic(f func(out *big.Float) *big.Float) Func {
	return niladic{f}
}

// native is a Func computed in float64.
type native func(ctx Context, x float64) (float64, error)

func (f native) Call(ctx Context, x float64) (float64, error) {
	return f(ctx, x)
}

// epsilon is the magnitude below which trigonometric results are zero.
const epsilon = 1e-15

func snap(x float64) float64 {
	if math.Abs(x) < epsilon {
		return 0
	}
	return x
}

// normdeg reduces an angle in degrees to [0, m).
func normdeg(x, m float64) float64 {
	return math.Mod(math.Mod(x, m)+m, m)
}

func radians(ctx Context, x float64) float64 {
	if ctx.Angle == Degrees {
		return x * (math.Pi / 180)
	}
	return x
}

func sin(ctx Context, x float64) (float64, error) {
	if ctx.Angle == Degrees {
		switch normdeg(x, 360) {
		case 0, 180:
			return 0, nil
		case 90:
			return 1, nil
		case 270:
			return -1, nil
		}
	}
	return snap(math.Sin(radians(ctx, x))), nil
}

func cos(ctx Context, x float64) (float64, error) {
	if ctx.Angle == Degrees {
		switch normdeg(x, 360) {
		case 90, 270:
			return 0, nil
		case 0:
			return 1, nil
		case 180:
			return -1, nil
		}
	}
	return snap(math.Cos(radians(ctx, x))), nil
}

func tan(ctx Context, x float64) (float64, error) {
	if ctx.Angle == Degrees {
		switch normdeg(x, 180) {
		case 90:
			return 0, &DomainError{X: x, Func: "tan"}
		case 0:
			return 0, nil
		}
	}
	rad := radians(ctx, x)
	if math.Abs(math.Cos(rad)) < epsilon {
		return 0, &DomainError{X: x, Func: "tan"}
	}
	return snap(math.Tan(rad)), nil
}

// inverse creates an inverse trigonometric Func which gives its result in the
// context's angle mode.
func inverse(name string, f func(float64) float64) Func {
	return native(func(ctx Context, x float64) (float64, error) {
		r := f(x)
		if math.IsNaN(r) {
			return 0, &DomainError{X: x, Func: name}
		}
		if ctx.Angle == Degrees {
			r *= 180 / math.Pi
		}
		return r, nil
	})
}

// pow computes x^y. Positive bases with fractional exponents are computed
// with big floats; everything else, including results which overflow, uses
// math.Pow.
func pow(ctx Context, x, y float64) (float64, error) {
	if x > 0 && y != math.Trunc(y) && math.Abs(y*math.Log2(x)) <= 1000 {
		prec := ctx.prec()
		z := new(big.Float).SetPrec(prec)
		bx := new(big.Float).SetPrec(prec).SetFloat64(x)
		by := new(big.Float).SetPrec(prec).SetFloat64(y)
		bigfloat.Pow(z, bx, by)
		r, _ := z.Float64()
		return finite(r, "^")
	}
	return finite(math.Pow(x, y), "^")
}

// maxFactorial is the largest n for which n! is finite in a float64.
const maxFactorial = 170

// Factorial computes n! by iterated multiplication. The result is +Inf if it
// overflows. Negative n is a DomainError.
func Factorial(n int) (float64, error) {
	if n < 0 {
		return 0, &DomainError{X: float64(n), Func: "!"}
	}
	r := 1.0
	for i := 2; i <= n; i++ {
		r *= float64(i)
		if math.IsInf(r, 1) {
			break
		}
	}
	return r, nil
}

// DomainError is an error returned when an operation is applied to arguments
// outside its domain, or when its result is not a finite number.
type DomainError struct {
	// X is the out-of-domain argument or the non-finite result.
	X float64
	// Func is a name identifying the function or operator.
	Func string
}

func (err *DomainError) Error() string {
	r := strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	return r
}
