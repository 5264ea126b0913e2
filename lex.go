package calc

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=tokenKind -trimprefix=token
//go:generate go mod tidy

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is a decimal literal.
	tokenNum
	// tokenOp is an operator, always in its canonical glyph.
	tokenOp
	// tokenFunc is a function name.
	tokenFunc
	// tokenConst is π or e.
	tokenConst
	// tokenOpen is (.
	tokenOpen
	// tokenClose is ).
	tokenClose
)

// Operators contains the runes which are lexed as operators. Keypad glyphs
// and their ASCII spellings are both accepted.
const Operators = "+-−*×/÷^%!"

// opglyphs maps each operator rune to its canonical glyph.
var opglyphs = map[rune]string{
	'+': "+",
	'-': "−",
	'−': "−",
	'*': "×",
	'×': "×",
	'/': "÷",
	'÷': "÷",
	'^': "^",
	'%': "%",
	'!': "!",
}

// names lists the function and constant names which may appear in a run of
// letters, longest first, so that e.g. "asin" is never split as "a" "sin".
var names = []string{"asin", "acos", "atan", "sin", "cos", "tan", "log", "ln", "e"}

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	p    lexToken
	// q holds names split from a letter run which have not been returned yet.
	q []lexToken
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{
		src:  src,
		rune: 1,
	}
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *lexer) push(tok lexToken) {
	if l.p.kind != tokenNone {
		panic("calc: double push")
	}
	l.p = tok
}

// must scans the pushed token. Panics if there is no pushed token.
func (l *lexer) must() lexToken {
	tok := l.p
	if tok.kind == tokenNone {
		panic("calc: no pushed token")
	}
	l.p = lexToken{}
	return tok
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. At the end of the input, every
// call returns an EOF token.
func (l *lexer) next() (lexToken, error) {
	if l.p.kind != tokenNone {
		tok := l.p
		l.p = lexToken{}
		return tok, nil
	}
	if len(l.q) != 0 {
		tok := l.q[0]
		l.q = l.q[1:]
		return tok, nil
	}
	defer l.buf.Reset()
	tok := lexToken{pos: l.rune}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.kind = tokenEOF
				return tok, nil
			}
			return tok, err
		}
		switch {
		case unicode.IsSpace(r):
			tok.pos++
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			if err := l.scanNum(); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenNum
			return tok, nil
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
			l.unreadRune()
			return l.scanWord(tok.pos)
		case r == 'π':
			tok.text = "π"
			tok.kind = tokenConst
			return tok, nil
		case r == '√':
			tok.text = "√"
			tok.kind = tokenFunc
			return tok, nil
		case r == '(':
			tok.text = "("
			tok.kind = tokenOpen
			return tok, nil
		case r == ')':
			tok.text = ")"
			tok.kind = tokenClose
			return tok, nil
		default:
			if op, ok := opglyphs[r]; ok {
				tok.text = op
				tok.kind = tokenOp
				return tok, nil
			}
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return tok, l.error("")
		}
	}
}

// scanNum scans a decimal literal: digits with at most one point, and at
// least one digit.
func (l *lexer) scanNum() error {
	var dig, dot bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		switch {
		case '0' <= r && r <= '9':
			dig = true
		case r == '.':
			if dot {
				l.buf.WriteRune(r)
				return l.error("number")
			}
			dot = true
		default:
			l.unreadRune()
			if !dig {
				return l.error("number")
			}
			return nil
		}
		l.buf.WriteRune(r)
	}
	if !dig {
		return l.error("number")
	}
	return nil
}

// scanWord scans a run of letters and splits it into function and constant
// names by longest match. The first name is returned and the rest are queued.
func (l *lexer) scanWord(pos int) (lexToken, error) {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return lexToken{pos: pos}, err
		}
		if !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z') {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(r)
	}
	w := l.buf.String()
	start := pos
	var q []lexToken
	for w != "" {
		name := matchName(w)
		if name == "" {
			return lexToken{pos: start}, &LexError{Text: l.buf.String(), Kind: "name", Col: pos}
		}
		kind := tokenFunc
		if name == "e" {
			kind = tokenConst
		}
		q = append(q, lexToken{text: name, kind: kind, pos: pos})
		pos += len(name)
		w = w[len(name):]
	}
	l.q = q[1:]
	return q[0], nil
}

// matchName returns the longest name that prefixes w, or the empty string if
// there is none.
func matchName(w string) string {
	for _, name := range names {
		if strings.HasPrefix(w, name) {
			return name
		}
	}
	return ""
}

// error creates a LexError at the column of the last rune read.
func (l *lexer) error(kind string) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  l.rune - 1,
	}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This may be "number",
	// "name", or the empty string (if a token kind hadn't been decided).
	Kind string
	// Col is the total number of runes scanned by the lexer up to and
	// including this error.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + err.Text
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}
