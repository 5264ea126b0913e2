package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	log "github.com/inconshreveable/log15"
	"github.com/mattn/go-colorable"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/urfave/cli.v1"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/frac"
	"github.com/zephyrtronium/calc/percent"
)

var (
	evalCommand = cli.Command{
		Action:          evalAction,
		Name:            "eval",
		Usage:           "Evaluate expressions",
		ArgsUsage:       "[EXPR...]",
		SkipFlagParsing: true,
		Category:        "CALCULATOR COMMANDS",
		Description: `Evaluates each argument as an expression and prints its value, or "Error".
With no arguments, expressions are read from standard input, one per line.`,
	}
	fracCommand = cli.Command{
		Action:          fracAction,
		Name:            "frac",
		Usage:           "Work a fraction problem step by step",
		ArgsUsage:       "A OP B",
		SkipFlagParsing: true,
		Category:        "FRACTION COMMANDS",
		Description: `Computes A OP B exactly, where A and B are fractions like 3/4, whole
numbers, or mixed numbers like "1 1/2", and OP is one of + - x /.`,
	}
	decCommand = cli.Command{
		Action:          decAction,
		Name:            "dec",
		Usage:           "Convert a decimal to a fraction",
		ArgsUsage:       "DECIMAL",
		SkipFlagParsing: true,
		Category:        "FRACTION COMMANDS",
	}
	toDecCommand = cli.Command{
		Action:          toDecAction,
		Name:            "todec",
		Usage:           "Convert a fraction to a decimal",
		ArgsUsage:       "N/D",
		SkipFlagParsing: true,
		Category:        "FRACTION COMMANDS",
	}
	percentCommand = cli.Command{
		Action:          percentAction,
		Name:            "percent",
		Usage:           "Percentage formulas",
		ArgsUsage:       "of|ratio|change|whole X Y",
		SkipFlagParsing: true,
		Category:        "CALCULATOR COMMANDS",
		Description: `of X Y      X% of Y
ratio X Y   X is what percent of Y
change X Y  percentage change from X to Y
whole X Y   X is Y% of what`,
	}
)

var (
	errColor    = color.New(color.FgRed)
	resultColor = color.New(color.Bold)
	stepColor   = color.New(color.FgCyan)
)

// errFailed reports that some input could not be evaluated after the rest
// has been.
var errFailed = errors.New("some expressions failed")

func evalAction(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	w := colorable.NewColorableStdout()
	echo := ctx.GlobalBool(echoFlag.Name)
	ok := true
	if ctx.NArg() == 0 {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			if strings.TrimSpace(sc.Text()) == "" {
				continue
			}
			ok = evalLine(w, sc.Text(), &cfg, echo) && ok
		}
		if err := sc.Err(); err != nil {
			return err
		}
	}
	for _, arg := range ctx.Args() {
		ok = evalLine(w, arg, &cfg, echo) && ok
	}
	if !ok {
		return errFailed
	}
	return nil
}

// evalLine evaluates one expression and prints its value or the reason it
// has none. It reports whether evaluation succeeded.
func evalLine(w io.Writer, src string, cfg *calcConfig, echo bool) bool {
	ectx := calc.NewContext(calc.Prec(cfg.Engine.Prec), cfg.Engine.Angle)
	a, err := calc.Parse(src)
	if err != nil {
		printInputError(w, src, err)
		return false
	}
	if echo {
		fmt.Fprintf(w, "%v = ", a)
	}
	x, err := a.Eval(ectx)
	if err != nil {
		log.Debug("Evaluation failed", "expr", src, "err", err)
		errColor.Fprintf(w, "%s: %v\n", calc.ErrorText, err)
		return false
	}
	r := calc.FormatResult(x, threshold(cfg.Display.DigitLimit))
	log.Debug("Evaluated", "expr", src, "result", r)
	resultColor.Fprintln(w, r)
	return true
}

// printInputError prints a parse error with a caret under its position when
// it has one.
func printInputError(w io.Writer, src string, err error) {
	errColor.Fprintf(w, "%s: %v\n", calc.ErrorText, err)
	var ie calc.InputError
	if !errors.As(err, &ie) {
		return
	}
	// Columns count runes of the input with spaces removed, from 1.
	stripped := strings.Join(strings.Fields(src), "")
	p := ie.Pos()
	if p < 1 || p > len([]rune(stripped))+1 {
		return
	}
	fmt.Fprintf(w, "  %s\n  %s^\n", stripped, strings.Repeat(" ", p-1))
}

func threshold(digits int) float64 {
	return math.Pow10(digits)
}

func fracAction(ctx *cli.Context) error {
	if _, err := makeConfig(ctx); err != nil {
		return err
	}
	a, op, b, err := parseProblem(ctx.Args())
	if err != nil {
		return err
	}
	var r frac.Result
	if a.Whole != 0 || b.Whole != 0 {
		r, err = frac.CalculateMixed(a, op, b)
	} else {
		r, err = frac.Calculate(frac.Fraction{Num: a.Num, Den: a.Den}, op, frac.Fraction{Num: b.Num, Den: b.Den})
	}
	if err != nil {
		return err
	}
	w := colorable.NewColorableStdout()
	printResult(w, r)
	return nil
}

func decAction(ctx *cli.Context) error {
	if _, err := makeConfig(ctx); err != nil {
		return err
	}
	if ctx.NArg() != 1 {
		return errors.New("usage: calc dec DECIMAL")
	}
	r, err := frac.FromDecimal(ctx.Args().First())
	if err != nil {
		return err
	}
	printResult(colorable.NewColorableStdout(), r)
	return nil
}

func toDecAction(ctx *cli.Context) error {
	if _, err := makeConfig(ctx); err != nil {
		return err
	}
	if ctx.NArg() != 1 {
		return errors.New("usage: calc todec N/D")
	}
	m, err := parseMixed(ctx.Args().First())
	if err != nil {
		return err
	}
	f, err := m.Improper()
	if err != nil {
		return err
	}
	d, steps, err := frac.ToDecimal(f)
	if err != nil {
		return err
	}
	w := colorable.NewColorableStdout()
	resultColor.Fprintln(w, d)
	printSteps(w, steps)
	return nil
}

func percentAction(ctx *cli.Context) error {
	if _, err := makeConfig(ctx); err != nil {
		return err
	}
	args := ctx.Args()
	if len(args) != 3 {
		return errors.New("usage: calc percent of|ratio|change|whole X Y")
	}
	f := percent.Formulas[strings.ToLower(args[0])]
	if f == nil {
		return fmt.Errorf("unknown percentage formula %q", args[0])
	}
	r, ok := f(args[1], args[2])
	w := colorable.NewColorableStdout()
	if !ok {
		errColor.Fprintln(w, calc.ErrorText)
		return errFailed
	}
	log.Debug("Percentage", "formula", args[0], "x", args[1], "y", args[2], "result", r)
	resultColor.Fprintln(w, r)
	return nil
}

// parseProblem splits arguments like ["1", "1/2", "+", "3/4"] into two mixed
// numbers and an operation.
func parseProblem(args []string) (a frac.Mixed, op frac.Op, b frac.Mixed, err error) {
	i := -1
	for k, arg := range args {
		// A leading argument is an operand even if it is "-".
		if _, ok := frac.ParseOp(arg); ok && k > 0 {
			i = k
			break
		}
	}
	if i < 0 || i == len(args)-1 {
		return a, 0, b, errors.New("usage: calc frac A OP B")
	}
	op, _ = frac.ParseOp(args[i])
	if a, err = parseMixed(strings.Join(args[:i], " ")); err != nil {
		return a, 0, b, err
	}
	if b, err = parseMixed(strings.Join(args[i+1:], " ")); err != nil {
		return a, 0, b, err
	}
	return a, op, b, nil
}

// parseMixed parses "N/D", "W N/D", or "W" into a mixed number.
func parseMixed(s string) (frac.Mixed, error) {
	f := strings.Fields(s)
	var m frac.Mixed
	switch len(f) {
	case 1:
		if !strings.Contains(f[0], "/") {
			w, err := strconv.ParseInt(f[0], 10, 64)
			if err != nil {
				return m, fmt.Errorf("invalid number %q", f[0])
			}
			return frac.Mixed{Whole: w, Den: 1}, nil
		}
		n, d, err := parseRatio(f[0])
		return frac.Mixed{Num: n, Den: d}, err
	case 2:
		w, err := strconv.ParseInt(f[0], 10, 64)
		if err != nil {
			return m, fmt.Errorf("invalid whole part %q", f[0])
		}
		n, d, err := parseRatio(f[1])
		if err != nil {
			return m, err
		}
		if n < 0 {
			return m, fmt.Errorf("mixed number %q has a negative fraction part", s)
		}
		return frac.Mixed{Whole: w, Num: n, Den: d}, nil
	default:
		return m, fmt.Errorf("invalid fraction %q", s)
	}
}

func parseRatio(s string) (num, den int64, err error) {
	ns, ds, ok := strings.Cut(s, "/")
	if !ok {
		return 0, 0, fmt.Errorf("invalid fraction %q", s)
	}
	num, err = strconv.ParseInt(ns, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid numerator %q", ns)
	}
	den, err = strconv.ParseInt(ds, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid denominator %q", ds)
	}
	return num, den, nil
}

func printResult(w io.Writer, r frac.Result) {
	resultColor.Fprintln(w, r.String())
	printSteps(w, r.Steps)
}

func printSteps(w io.Writer, steps []frac.Step) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Step", "Work"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for i, s := range steps {
		table.Append([]string{strconv.Itoa(i + 1), stepColor.Sprint(s.Kind.String()), s.String()})
	}
	table.Render()
}
