package frac

import (
	"strconv"
	"strings"
)

// Op is an arithmetic operation on fractions.
type Op byte

const (
	OpAdd Op = '+'
	OpSub Op = '-'
	OpMul Op = '*'
	OpDiv Op = '/'
)

// ParseOp parses an operator written in ASCII or as a keypad glyph.
func ParseOp(s string) (Op, bool) {
	switch s {
	case "+":
		return OpAdd, true
	case "-", "−":
		return OpSub, true
	case "*", "×", "x":
		return OpMul, true
	case "/", "÷":
		return OpDiv, true
	default:
		return 0, false
	}
}

// String returns the keypad glyph for op.
func (op Op) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "−"
	case OpMul:
		return "×"
	case OpDiv:
		return "÷"
	default:
		return "Op(" + strconv.Itoa(int(op)) + ")"
	}
}

func (op Op) apply(a, b Fraction) (Fraction, error) {
	switch op {
	case OpAdd:
		return Add(a, b)
	case OpSub:
		return Sub(a, b)
	case OpMul:
		return Mul(a, b)
	case OpDiv:
		return Div(a, b)
	default:
		panic("frac: invalid operation " + op.String())
	}
}

// StepKind identifies a line of a derivation.
type StepKind int8

const (
	stepNone StepKind = iota
	// StepCommon is the operation rewritten for computing: both terms over a
	// common denominator for + and −, the products for ×, and the reciprocal
	// of the divisor for ÷.
	StepCommon
	// StepImproper is mixed operands rewritten as improper fractions.
	StepImproper
	// StepDecimal is a decimal written over a power of ten.
	StepDecimal
	// StepRaw is the unreduced result.
	StepRaw
	// StepSimplified is the result in lowest terms, when that differs from
	// the raw result.
	StepSimplified
	// StepMixed is the result as a mixed number, when it is improper.
	StepMixed
	// StepQuotient is a fraction divided out to a decimal.
	StepQuotient
)

func (k StepKind) String() string {
	switch k {
	case StepCommon:
		return "Common"
	case StepImproper:
		return "Improper"
	case StepDecimal:
		return "Decimal"
	case StepRaw:
		return "Raw"
	case StepSimplified:
		return "Simplify"
	case StepMixed:
		return "Mixed Number"
	case StepQuotient:
		return "Quotient"
	default:
		return "StepKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Step is one line of a derivation.
type Step struct {
	Kind StepKind
	// A and B are the terms of Common and Improper steps. Raw, Simplified,
	// Decimal and Quotient steps hold their fraction in A.
	A, B Fraction
	// Op is the operation of Common and Improper steps.
	Op Op
	// Mixed is the number of a Mixed step.
	Mixed Mixed
	// Decimal is the decimal text of Decimal and Quotient steps.
	Decimal string
}

// String renders the step as plain text, e.g. "3/6 + 2/6".
func (s Step) String() string {
	var b strings.Builder
	switch s.Kind {
	case StepCommon:
		switch s.Op {
		case OpMul:
			b.WriteString(strconv.FormatInt(s.A.Num, 10) + "×" + strconv.FormatInt(s.B.Num, 10))
			b.WriteByte('/')
			b.WriteString(strconv.FormatInt(s.A.Den, 10) + "×" + strconv.FormatInt(s.B.Den, 10))
		case OpDiv:
			// B is already the reciprocal of the divisor.
			b.WriteString(s.A.String() + " × " + s.B.String())
		default:
			b.WriteString(s.A.String() + " " + s.Op.String() + " " + s.B.String())
		}
	case StepImproper:
		b.WriteString("Improper: " + s.A.String() + " " + s.Op.String() + " " + s.B.String())
	case StepDecimal:
		b.WriteString(s.Decimal + " = " + s.A.String())
	case StepRaw:
		b.WriteString(s.A.String())
	case StepSimplified:
		b.WriteString("Simplify: " + s.A.String())
	case StepMixed:
		b.WriteString("Mixed Number: " + s.Mixed.String())
	case StepQuotient:
		b.WriteString(strconv.FormatInt(s.A.Num, 10) + " ÷ " + strconv.FormatInt(s.A.Den, 10) + " = " + s.Decimal)
	default:
		b.WriteString("?")
	}
	return b.String()
}

// Result is the outcome of a fraction calculation.
type Result struct {
	// Value is the simplified result.
	Value Fraction
	// Mixed is Value as a mixed number. It is set only if IsMixed.
	Mixed Mixed
	// IsMixed is whether |Value.Num| ≥ Value.Den.
	IsMixed bool
	// Steps is the derivation of the result.
	Steps []Step
}

// String renders the result as a mixed number if it is one and as a fraction
// otherwise.
func (r Result) String() string {
	if r.IsMixed {
		return r.Mixed.String()
	}
	return r.Value.String()
}

// Calculate computes a op b, simplifies the result, and converts it to a mixed
// number if it is improper. On error, the Result is zero.
func Calculate(a Fraction, op Op, b Fraction) (Result, error) {
	if a.Den == 0 || b.Den == 0 {
		return Result{}, ErrZeroDenominator
	}
	if op == OpDiv && b.Num == 0 {
		return Result{}, ErrDivideByZero
	}
	raw, err := op.apply(a, b)
	if err != nil {
		return Result{}, err
	}
	s := Step{Kind: StepCommon, A: a, B: b, Op: op}
	switch op {
	case OpAdd, OpSub:
		s.A = Fraction{Num: a.Num * b.Den, Den: raw.Den}
		s.B = Fraction{Num: b.Num * a.Den, Den: raw.Den}
	case OpDiv:
		s.B = Fraction{Num: b.Den, Den: b.Num}
	}
	return finish(raw, []Step{s})
}

// CalculateMixed computes a op b on mixed numbers by way of improper
// fractions. On error, the Result is zero.
func CalculateMixed(a Mixed, op Op, b Mixed) (Result, error) {
	if a.Den == 0 || b.Den == 0 {
		return Result{}, ErrZeroDenominator
	}
	x, err := a.Improper()
	if err != nil {
		return Result{}, err
	}
	y, err := b.Improper()
	if err != nil {
		return Result{}, err
	}
	if op == OpDiv && y.Num == 0 {
		return Result{}, ErrDivideByZero
	}
	raw, err := op.apply(x, y)
	if err != nil {
		return Result{}, err
	}
	return finish(raw, []Step{{Kind: StepImproper, A: x, B: y, Op: op}})
}

// FromDecimal converts decimal text to a simplified fraction, with the
// decimal over a power of ten as the first step.
func FromDecimal(text string) (Result, error) {
	f, err := parseDecimal(text)
	if err != nil {
		return Result{}, err
	}
	return reduce(f, []Step{{Kind: StepDecimal, A: f, Decimal: text}})
}

// ToDecimal divides out f.
func ToDecimal(f Fraction) (string, []Step, error) {
	if f.Den == 0 {
		return "", nil, ErrZeroDenominator
	}
	d := strconv.FormatFloat(float64(f.Num)/float64(f.Den), 'f', -1, 64)
	return d, []Step{{Kind: StepQuotient, A: f, Decimal: d}}, nil
}

// finish appends the raw result to steps and reduces it.
func finish(raw Fraction, steps []Step) (Result, error) {
	steps = append(steps, Step{Kind: StepRaw, A: raw})
	return reduce(raw, steps)
}

// reduce simplifies f and converts it to a mixed number, recording both.
func reduce(f Fraction, steps []Step) (Result, error) {
	v, err := Simplify(f)
	if err != nil {
		return Result{}, err
	}
	if v != f {
		steps = append(steps, Step{Kind: StepSimplified, A: v})
	}
	r := Result{Value: v, Steps: steps}
	if abs(v.Num) >= uint64(v.Den) {
		r.Mixed = ToMixed(v)
		r.IsMixed = true
		r.Steps = append(r.Steps, Step{Kind: StepMixed, Mixed: r.Mixed})
	}
	return r, nil
}
