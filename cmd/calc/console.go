package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	log "github.com/inconshreveable/log15"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"gopkg.in/urfave/cli.v1"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/display"
	"github.com/zephyrtronium/calc/session"
)

var consoleCommand = cli.Command{
	Action:   consoleAction,
	Name:     "console",
	Usage:    "Start an interactive keypad",
	Category: "CALCULATOR COMMANDS",
	Description: `The console is a keypad. Each line is typed as keys; a function name
followed by "(" is a function key. These lines are commands:
  =          calculate
  ac         clear
  del        delete the last key
  ans        insert the last answer
  neg        toggle the sign of the last number
  deg, rad   set the angle mode
  exit       leave the console`,
}

const consolePrompt = "> "

// prompter reads lines of console input.
type prompter interface {
	Prompt(prompt string) (string, error)
}

// scanPrompter reads lines without editing when input is not a terminal.
type scanPrompter struct {
	sc *bufio.Scanner
}

func (p scanPrompter) Prompt(string) (string, error) {
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.sc.Text(), nil
}

func consoleAction(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	pv, err := session.NewPreviewer(cfg.Console.PreviewCache)
	if err != nil {
		return err
	}
	w := colorable.NewColorableStdout()
	if !isatty.IsTerminal(os.Stdin.Fd()) || !liner.TerminalSupported() {
		return runConsole(scanPrompter{bufio.NewScanner(os.Stdin)}, w, cfg.keypad(), pv, nil)
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completeFunc)
	if cfg.Console.History != "" {
		if f, err := os.Open(cfg.Console.History); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
		defer func() {
			f, err := os.Create(cfg.Console.History)
			if err != nil {
				log.Warn("Failed to save console history", "file", cfg.Console.History, "err", err)
				return
			}
			line.WriteHistory(f)
			f.Close()
		}()
	}
	fmt.Fprintf(w, "calc %s, %s keypad, %s. Type exit to leave.\n", version, cfg.Console.Preset, cfg.Engine.Angle)
	return runConsole(line, w, cfg.keypad(), pv, line.AppendHistory)
}

// runConsole drives a keypad session from input lines until input ends or
// the user exits, printing the screen after every line.
func runConsole(in prompter, w io.Writer, kp session.Config, pv *session.Previewer, remember func(string)) error {
	var s session.State
	for {
		text, err := in.Prompt(consolePrompt)
		switch {
		case errors.Is(err, io.EOF), errors.Is(err, liner.ErrPromptAborted):
			return nil
		case err != nil:
			return err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if remember != nil {
			remember(text)
		}
		var done bool
		s, kp, done = consoleLine(s, kp, text)
		if done {
			return nil
		}
		printScreen(w, s, kp, pv)
	}
}

// consoleLine applies one line of input to the session.
func consoleLine(s session.State, kp session.Config, text string) (session.State, session.Config, bool) {
	switch strings.ToLower(text) {
	case "exit", "quit":
		return s, kp, true
	case "=":
		s = session.Calculate(s, kp)
		log.Debug("Calculated", "expr", s.History, "result", s.Result, "err", s.Err)
	case "ac", "clear":
		s = session.Clear(s, kp)
	case "del":
		s = session.Backspace(s)
	case "ans":
		s = session.Answer(s)
	case "neg":
		s = session.ToggleSign(s)
	case "deg":
		kp.Angle = calc.Degrees
	case "rad":
		kp.Angle = calc.Radians
	default:
		s = typeKeys(s, kp, text)
	}
	return s, kp, false
}

// keyboard maps keys typed on a keyboard to the keypad's glyphs.
var keyboard = map[rune]string{
	'-': "−",
	'*': "×",
}

// typeKeys presses each key in text. A function name followed by a bracket is
// a single function key.
func typeKeys(s session.State, kp session.Config, text string) session.State {
	for text != "" {
		if name := funcKey(text); name != "" {
			s = session.Func(s, name)
			text = text[len(name)+1:]
			continue
		}
		r, n := utf8.DecodeRuneInString(text)
		key, ok := keyboard[r]
		if !ok {
			key = text[:n]
		}
		s = session.Press(s, kp, key)
		text = text[n:]
	}
	return s
}

// funcKey returns the name of the function key at the start of text, if any.
func funcKey(text string) string {
	for _, name := range calc.Functions {
		if strings.HasPrefix(text, name+"(") {
			return name
		}
	}
	return ""
}

func completeFunc(line string) []string {
	i := len(line)
	for i > 0 && 'a' <= line[i-1] && line[i-1] <= 'z' {
		i--
	}
	prefix, word := line[:i], line[i:]
	if word == "" {
		return nil
	}
	var r []string
	for _, name := range calc.Functions {
		if strings.HasPrefix(name, word) {
			r = append(r, prefix+name+"(")
		}
	}
	return r
}

func printScreen(w io.Writer, s session.State, kp session.Config, pv *session.Previewer) {
	input, result := pv.Screen(s, kp)
	if s.History != "" && s.Display == "" {
		input = display.Format(s.History, kp.DigitLimit) + " ="
	}
	fmt.Fprintf(w, "  %s\n", input)
	switch {
	case result == "":
	case s.Err:
		errColor.Fprintf(w, "  %s\n", result)
	case s.Result == "":
		// A live preview.
		fmt.Fprintf(w, "  %s\n", result)
	default:
		resultColor.Fprintf(w, "  %s\n", result)
	}
}
