// Package session implements a calculator keypad as transitions over a
// caller-owned State. Every transition is a pure function returning the next
// state, so a session can be driven from a terminal, a test, or a UI.
package session

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/display"
)

// State is the keypad's screen and memory.
type State struct {
	// Display is the expression being typed.
	Display string
	// Result is the value of the last calculation, until the next key.
	Result string
	// History is the expression which produced Result.
	History string
	// Err is set when the last calculation failed. Display is kept so that
	// it can be corrected.
	Err bool
	// LastAnswer is the most recent result. It survives Clear when the
	// session's Config has KeepAnswer.
	LastAnswer string
}

// Config describes a keypad.
type Config struct {
	// Angle is the angle mode of trigonometric functions.
	Angle calc.AngleMode
	// Prec is the working precision in bits of functions and constants. Zero
	// means the engine's default.
	Prec uint
	// DigitLimit is the integer digit count past which numbers are shown in
	// scientific notation. Results at or above 10^DigitLimit are computed in
	// scientific notation as well.
	DigitLimit int
	// Chain lists the keys which continue from a result rather than
	// replacing it.
	Chain []string
	// ChainPrefix, if not empty, makes every key starting with it a chaining
	// key too, e.g. "^" for the "^2" and "^(-1)" keys.
	ChainPrefix string
	// Trailing is the set of characters stripped from the end of the
	// display before it is previewed.
	Trailing string
	// KeepAnswer keeps LastAnswer across Clear.
	KeepAnswer bool
}

// Basic is a four-function keypad.
var Basic = Config{
	Angle:      calc.Degrees,
	DigitLimit: 15,
	Chain:      []string{"+", "−", "×", "/", "%"},
	Trailing:   "+-×/",
}

// Scientific is a keypad with functions, powers, and an answer key.
var Scientific = Config{
	Angle:       calc.Degrees,
	DigitLimit:  20,
	Chain:       []string{"+", "−", "×", "/", "%", "!", "^"},
	ChainPrefix: "^",
	Trailing:    "+-×/(*^−",
	KeepAnswer:  true,
}

// Preset returns the keypad configuration with the given name, "basic" or
// "scientific".
func Preset(name string) (Config, bool) {
	switch strings.ToLower(name) {
	case "basic":
		return Basic, true
	case "scientific", "sci":
		return Scientific, true
	default:
		return Config{}, false
	}
}

func (cfg Config) context() calc.Context {
	return calc.Context{Angle: cfg.Angle, Prec: cfg.Prec}
}

// Threshold is the magnitude at which results switch to scientific notation.
func (cfg Config) Threshold() float64 {
	return math.Pow10(cfg.DigitLimit)
}

func (cfg Config) chains(key string) bool {
	for _, k := range cfg.Chain {
		if k == key {
			return true
		}
	}
	return cfg.ChainPrefix != "" && strings.HasPrefix(key, cfg.ChainPrefix)
}

// Press types key. After a result, a chaining key continues from the result
// and any other key starts a new expression.
func Press(s State, cfg Config, key string) State {
	s.Err = false
	if s.Result != "" {
		if cfg.chains(key) {
			s.Display = operand(s.Result) + key
		} else {
			s.Display = key
		}
		s.Result = ""
		return s
	}
	s.Display += key
	return s
}

// Func types a function name and its opening bracket.
func Func(s State, name string) State {
	s.Err = false
	if s.Result != "" {
		s.Display = name + "("
		s.Result = ""
		return s
	}
	s.Display += name + "("
	return s
}

// Clear resets the keypad. The last answer is the result on the screen, if
// any, and is kept only if cfg.KeepAnswer.
func Clear(s State, cfg Config) State {
	var r State
	if cfg.KeepAnswer {
		r.LastAnswer = s.Result
		if r.LastAnswer == "" {
			r.LastAnswer = s.LastAnswer
		}
	}
	return r
}

// Backspace deletes the last character of the display and drops the result.
func Backspace(s State) State {
	_, n := utf8.DecodeLastRuneInString(s.Display)
	s.Display = s.Display[:len(s.Display)-n]
	s.Result = ""
	return s
}

// Answer inserts the result on the screen, or the last answer if there is
// none. After a result, the result replaces the display.
func Answer(s State) State {
	v := s.Result
	if v == "" {
		v = s.LastAnswer
	}
	if v == "" {
		return s
	}
	s.Err = false
	v = operand(v)
	if s.Result != "" {
		s.Display = v
		s.Result = ""
		return s
	}
	s.Display += v
	return s
}

// scientific matches a result in scientific notation.
var scientific = regexp.MustCompile(`^(-?\d*\.?\d+)e([+-]?)(\d+)$`)

// operand rewrites a result so that it can be typed into an expression. A
// result in scientific notation becomes a bracketed power of ten, since the
// e of the notation would otherwise be read as Euler's number.
func operand(r string) string {
	m := scientific.FindStringSubmatch(r)
	if m == nil {
		return r
	}
	exp := m[3]
	if m[2] == "-" {
		exp = "-" + exp
	}
	return "(" + m[1] + "×10^" + exp + ")"
}

// trailingNumber matches the last number of the display with its sign.
var trailingNumber = regexp.MustCompile(`(-?)((\d*\.)?\d+)$`)

// ToggleSign negates the last number typed. After an operator or bracket, it
// starts a negative number instead. After a result, the display becomes the
// negated result.
func ToggleSign(s State) State {
	if s.Result != "" {
		s.Display = operand(negate(s.Result))
		s.Result = ""
		s.Err = false
		return s
	}
	d := s.Display
	if d == "" {
		s.Display = "-"
		return s
	}
	if r, _ := utf8.DecodeLastRuneInString(d); strings.ContainsRune("+−×/()^", r) {
		s.Display = d + "-"
		return s
	}
	m := trailingNumber.FindStringSubmatchIndex(d)
	if m == nil {
		s.Display = d + "-"
		return s
	}
	num := d[m[4]:m[5]]
	if m[3] == m[2] {
		num = "-" + num
	}
	s.Display = d[:m[0]] + num
	s.Err = false
	return s
}

// negate negates a result without disturbing its notation.
func negate(r string) string {
	if f, err := strconv.ParseFloat(r, 64); err == nil && f == 0 {
		return "0"
	}
	if strings.HasPrefix(r, "-") {
		return r[1:]
	}
	return "-" + r
}

// Calculate evaluates the display. On success, the display moves to History
// and the value becomes both Result and LastAnswer. On failure, Err is set
// and the display is kept.
func Calculate(s State, cfg Config) State {
	r := calc.EvaluateContext(s.Display, cfg.context(), cfg.Threshold())
	if r == calc.ErrorText {
		s.Err = true
		return s
	}
	return State{History: s.Display, Result: r, LastAnswer: r}
}

// Preview evaluates the display as typed so far, ignoring trailing
// operators. It is empty when the display is only a number or does not yet
// evaluate.
func Preview(s State, cfg Config) string {
	if s.Display == "" {
		return ""
	}
	cleaned := strings.TrimRight(s.Display, cfg.Trailing)
	if plain(cleaned) {
		return ""
	}
	r := calc.EvaluateContext(cleaned, cfg.context(), cfg.Threshold())
	if r == calc.ErrorText {
		return ""
	}
	return r
}

// plain reports whether text is already just a number, so that previewing
// it would only repeat it.
func plain(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return true
	}
	_, err := strconv.ParseFloat(text, 64)
	return err == nil
}

// Screen returns the two lines of the calculator screen: the display and,
// below it, the result or live preview. Both are grouped for reading. The
// second line is "Error" after a failed calculation.
func Screen(s State, cfg Config) (input, result string) {
	return screen(s, cfg, Preview(s, cfg))
}

func screen(s State, cfg Config, preview string) (input, result string) {
	input = display.Format(s.Display, cfg.DigitLimit)
	r := s.Result
	if r == "" {
		r = preview
	}
	if r != "" && r != calc.ErrorText {
		return input, display.Format(r, cfg.DigitLimit)
	}
	if s.Err {
		return input, calc.ErrorText
	}
	return input, ""
}
