package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/frac"
	"github.com/zephyrtronium/calc/session"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestDecodeConfig(t *testing.T) {
	const src = `
[Engine]
Angle = "rad"
Prec = 128

[Display]
DigitLimit = 12
Color = false

[Console]
Preset = "basic"
PreviewCache = 16
`
	cfg := defaultConfig
	require.NoError(t, decodeConfig(strings.NewReader(src), &cfg))
	assert.Equal(t, calc.Radians, cfg.Engine.Angle)
	assert.Equal(t, uint(128), cfg.Engine.Prec)
	assert.Equal(t, 12, cfg.Display.DigitLimit)
	assert.False(t, cfg.Display.Color)
	assert.Equal(t, "basic", cfg.Console.Preset)
	assert.Equal(t, 16, cfg.Console.PreviewCache)

	kp := cfg.keypad()
	assert.Equal(t, calc.Radians, kp.Angle)
	assert.Equal(t, uint(128), kp.Prec)
	assert.Equal(t, 12, kp.DigitLimit)
	assert.False(t, kp.KeepAnswer)
}

func TestDecodeConfigPartial(t *testing.T) {
	cfg := defaultConfig
	require.NoError(t, decodeConfig(strings.NewReader("[Display]\nDigitLimit = 15\n"), &cfg))
	assert.Equal(t, 15, cfg.Display.DigitLimit)
	assert.Equal(t, defaultConfig.Engine, cfg.Engine)
	assert.Equal(t, defaultConfig.Console, cfg.Console)
}

func TestDecodeConfigErrors(t *testing.T) {
	cases := map[string]string{
		"unknown-field": "[Engine]\nRadix = 16\n",
		"bad-angle":     "[Engine]\nAngle = \"grad\"\n",
		"bad-limit":     "[Display]\nDigitLimit = 0\n",
		"bad-preset":    "[Console]\nPreset = \"graphing\"\n",
		"bad-cache":     "[Console]\nPreviewCache = -1\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := defaultConfig
			assert.Error(t, decodeConfig(strings.NewReader(src), &cfg))
		})
	}
}

func TestLoadConfigNamesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "calc.toml")
	require.NoError(t, os.WriteFile(file, []byte("[Engine]\nRadix = 16\n"), 0644))
	cfg := defaultConfig
	err := loadConfig(file, &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), file)
}

func TestConfigRoundTrip(t *testing.T) {
	out, err := tomlSettings.Marshal(&defaultConfig)
	require.NoError(t, err)
	var cfg calcConfig
	require.NoError(t, decodeConfig(bytes.NewReader(out), &cfg))
	assert.Equal(t, defaultConfig, cfg)
}

func TestEvalLine(t *testing.T) {
	cfg := defaultConfig
	cases := []struct {
		src  string
		echo bool
		ok   bool
		want string
	}{
		{"2+3×4", false, true, "14\n"},
		{"sin(90)", false, true, "1\n"},
		{"10^25", false, true, "1.0000e+25\n"},
		{"2×3", true, true, "([2] × [3]) = 6\n"},
		{"1÷0", false, false, "Error: "},
		{"2+", false, false, "Error: "},
	}
	for _, c := range cases {
		var b bytes.Buffer
		ok := evalLine(&b, c.src, &cfg, c.echo)
		assert.Equal(t, c.ok, ok, c.src)
		if c.ok {
			assert.Equal(t, c.want, b.String(), c.src)
		} else {
			assert.True(t, strings.HasPrefix(b.String(), c.want), "%s gave %q", c.src, b.String())
		}
	}
}

func TestEvalLineCaret(t *testing.T) {
	cfg := defaultConfig
	var b bytes.Buffer
	assert.False(t, evalLine(&b, "2 + 3 $", &cfg, false))
	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "  2+3$", lines[1])
	assert.Equal(t, "     ^", lines[2])

	b.Reset()
	assert.False(t, evalLine(&b, "1..2", &cfg, false))
	lines = strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "  1..2", lines[1])
	assert.Equal(t, "    ^", lines[2])
}

func TestParseProblem(t *testing.T) {
	cases := []struct {
		args []string
		a    frac.Mixed
		op   frac.Op
		b    frac.Mixed
	}{
		{[]string{"1/2", "+", "1/3"}, frac.Mixed{Num: 1, Den: 2}, frac.OpAdd, frac.Mixed{Num: 1, Den: 3}},
		{[]string{"1", "1/2", "x", "2", "1/3"}, frac.Mixed{Whole: 1, Num: 1, Den: 2}, frac.OpMul, frac.Mixed{Whole: 2, Num: 1, Den: 3}},
		{[]string{"1 1/2", "÷", "3"}, frac.Mixed{Whole: 1, Num: 1, Den: 2}, frac.OpDiv, frac.Mixed{Whole: 3, Den: 1}},
		{[]string{"-1/2", "-", "-1/4"}, frac.Mixed{Num: -1, Den: 2}, frac.OpSub, frac.Mixed{Num: -1, Den: 4}},
	}
	for _, c := range cases {
		a, op, b, err := parseProblem(c.args)
		require.NoError(t, err, c.args)
		assert.Equal(t, c.a, a, c.args)
		assert.Equal(t, c.op, op, c.args)
		assert.Equal(t, c.b, b, c.args)
	}
	for _, args := range [][]string{nil, {"1/2"}, {"1/2", "+"}, {"a/b", "+", "1/2"}, {"1", "2", "3/4", "+", "1"}, {"1 -1/2", "+", "1"}} {
		_, _, _, err := parseProblem(args)
		assert.Error(t, err, args)
	}
}

type lines []string

func (l *lines) Prompt(string) (string, error) {
	if len(*l) == 0 {
		return "", io.EOF
	}
	s := (*l)[0]
	*l = (*l)[1:]
	return s, nil
}

func TestRunConsole(t *testing.T) {
	pv, err := session.NewPreviewer(16)
	require.NoError(t, err)
	in := lines{"12*3", "+4", "=", "*2", "=", "ac", "ans", "neg", "=", "exit", "99"}
	var b bytes.Buffer
	var hist []string
	require.NoError(t, runConsole(&in, &b, session.Scientific, pv, func(s string) { hist = append(hist, s) }))
	want := strings.Join([]string{
		"  12×3", "  36",
		"  12×3+4", "  40",
		"  12×3+4 =", "  40",
		"  40×2", "  80",
		"  40×2 =", "  80",
		"  ",
		"  80",
		"  -80",
		"  -80 =", "  -80",
	}, "\n") + "\n"
	assert.Equal(t, want, b.String())
	assert.Equal(t, []string{"12*3", "+4", "=", "*2", "=", "ac", "ans", "neg", "=", "exit"}, hist)
	assert.Equal(t, []string{"99"}, []string(in))
}

func TestConsoleLine(t *testing.T) {
	kp := session.Scientific
	s, kp, done := consoleLine(session.State{}, kp, "sin(30)")
	assert.False(t, done)
	assert.Equal(t, "sin(30)", s.Display)
	s, kp, _ = consoleLine(s, kp, "rad")
	assert.Equal(t, calc.Radians, kp.Angle)
	s, kp, _ = consoleLine(s, kp, "deg")
	s, _, _ = consoleLine(s, kp, "=")
	assert.Equal(t, "0.5", s.Result)
	s, _, _ = consoleLine(session.State{Display: "12"}, kp, "del")
	assert.Equal(t, "1", s.Display)
	_, _, done = consoleLine(s, kp, "QUIT")
	assert.True(t, done)
}

func TestCompleteFunc(t *testing.T) {
	assert.Equal(t, []string{"2×sin("}, completeFunc("2×si"))
	assert.ElementsMatch(t, []string{"asin(", "acos(", "atan("}, completeFunc("a"))
	assert.Nil(t, completeFunc("2+"))
}
