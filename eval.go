package calc

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/zephyrtronium/calc/display"
)

// ErrorText is the result of Evaluate for any input that cannot be parsed or
// evaluated.
const ErrorText = "Error"

// DefaultThreshold is the magnitude at which results of callers with no
// display width of their own switch to scientific notation.
const DefaultThreshold = 1e20

// AngleMode is the unit of angles for trigonometric functions. It is also a
// ContextOption.
type AngleMode int8

const (
	// Degrees measures angles in degrees. It is the zero value.
	Degrees AngleMode = iota
	// Radians measures angles in radians.
	Radians
)

func (m AngleMode) String() string {
	switch m {
	case Degrees:
		return "deg"
	case Radians:
		return "rad"
	default:
		return "AngleMode(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseAngleMode parses "deg" or "rad" into an AngleMode. The second result
// is false for any other text.
func ParseAngleMode(s string) (AngleMode, bool) {
	switch s {
	case "deg":
		return Degrees, true
	case "rad":
		return Radians, true
	default:
		return Degrees, false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m AngleMode) MarshalText() ([]byte, error) {
	if m != Degrees && m != Radians {
		return nil, errors.New("calc: invalid angle mode " + m.String())
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *AngleMode) UnmarshalText(text []byte) error {
	r, ok := ParseAngleMode(string(text))
	if !ok {
		return errors.New("calc: unknown angle mode " + strconv.Quote(string(text)))
	}
	*m = r
	return nil
}

// Context is a context for evaluating expressions. Contexts are values and are
// safe to share.
type Context struct {
	// Angle is the angle mode for trigonometric functions.
	Angle AngleMode
	// Prec is the precision in bits of functions and constants computed with
	// big floats. Zero means 64.
	Prec uint
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type precopt uint

func (precopt) ctxOption()   {}
func (AngleMode) ctxOption() {}

// Prec sets the precision of calculations.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// NewContext creates a new evaluation context. If no precision is given, the
// default is 64. If no angle mode is given, the default is Degrees. Later
// options override earlier ones.
func NewContext(opts ...ContextOption) Context {
	ctx := Context{Prec: 64}
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil:
			// do nothing
		case precopt:
			ctx.Prec = uint(opt)
		case AngleMode:
			ctx.Angle = opt
		default:
			panic("calc: unknown option type")
		}
	}
	return ctx
}

func (ctx Context) prec() uint {
	if ctx.Prec == 0 {
		return 64
	}
	return ctx.Prec
}

// Eval evaluates the expression. If an argument to a function or operator is
// outside its domain, or any intermediate value is not finite, the error is a
// *DomainError.
func (e *Expr) Eval(ctx Context) (float64, error) {
	return e.n.eval(ctx)
}

// finite returns x if it is a finite number and a DomainError otherwise.
func finite(x float64, fn string) (float64, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, &DomainError{X: x, Func: fn}
	}
	return x, nil
}

// eval computes the node's value.
func (n *node) eval(ctx Context) (float64, error) {
	switch n.kind {
	case nodeNum:
		// Overlong literals parse as ±Inf, which finite rejects.
		x, _ := strconv.ParseFloat(n.name, 64)
		return finite(x, "")
	case nodeConst:
		return constants[n.name].Call(ctx, 0)
	case nodeCall:
		x, err := n.left.eval(ctx)
		if err != nil {
			return 0, err
		}
		f := globalfuncs[n.name]
		if f == nil {
			panic("calc: call of unknown function " + strconv.Quote(n.name))
		}
		return f.Call(ctx, x)
	case nodeNeg:
		x, err := n.left.eval(ctx)
		if err != nil {
			return 0, err
		}
		return -x, nil
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		l, err := n.left.eval(ctx)
		if err != nil {
			return 0, err
		}
		r, err := n.right.eval(ctx)
		if err != nil {
			return 0, err
		}
		switch n.kind {
		case nodeAdd:
			return finite(l+r, "+")
		case nodeSub:
			return finite(l-r, "−")
		case nodeMul:
			return finite(l*r, "×")
		case nodeDiv:
			// Guard against division by zero, including 0/0.
			if r == 0 {
				return 0, &DomainError{X: r, Func: "÷"}
			}
			return finite(l/r, "÷")
		default:
			return pow(ctx, l, r)
		}
	case nodePercent:
		x, err := n.left.eval(ctx)
		if err != nil {
			return 0, err
		}
		return x / 100, nil
	case nodeFact:
		return finite(n.num, "!")
	case nodeGroup:
		return n.left.eval(ctx)
	default:
		panic("calc: invalid AST node " + n.kind.String())
	}
}

// Eval is a shortcut to parse and evaluate a string expression.
func Eval(src string, ctx Context) (float64, error) {
	a, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return a.Eval(ctx)
}

// Evaluate parses and evaluates an expression and formats the result with
// FormatResult. Any failure gives ErrorText. Empty or whitespace-only input
// gives the empty string. Callers without a display width of their own can
// pass DefaultThreshold.
func Evaluate(src string, angle AngleMode, threshold float64) string {
	return EvaluateContext(src, Context{Angle: angle}, threshold)
}

// EvaluateContext is Evaluate with a full evaluation context, for callers
// that set the working precision.
func EvaluateContext(src string, ctx Context, threshold float64) (result string) {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	defer func() {
		if recover() != nil {
			result = ErrorText
		}
	}()
	x, err := Eval(src, ctx)
	if err != nil {
		return ErrorText
	}
	return FormatResult(x, threshold)
}

// EvaluateMode is Evaluate with the angle mode given as "deg" or "rad". Any
// other mode gives ErrorText.
func EvaluateMode(src, mode string, threshold float64) string {
	angle, ok := ParseAngleMode(mode)
	if !ok {
		return ErrorText
	}
	return Evaluate(src, angle, threshold)
}

// FormatResult renders a finite result. Magnitudes of at least threshold use
// scientific notation with four fractional digits. Everything else is rounded
// to ten decimal places and printed in its shortest form, with no negative
// zero.
func FormatResult(x, threshold float64) string {
	if math.Abs(x) >= threshold {
		return display.Exponential(x)
	}
	r, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 10, 64), 64)
	if r == 0 {
		// Normalize negative zero.
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
