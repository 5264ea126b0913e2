package calc

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Expr = num | const | Call | Neg | Plus | Add | Sub | Mul | Div | Pow | Percent | Fact | '(' Expr ')' | Expr Expr
// Call = funcname '(' Expr ')'
// Neg = '−' Expr
// Plus = '+' Expr
// Add = Expr '+' Expr
// Sub = Expr '−' Expr
// Mul = Expr '×' Expr
// Div = Expr '÷' Expr
// Pow = Expr '^' Expr
// Percent = num '%'
// Fact = num '!'

// Expr is a parsed expression that can be evaluated with a context.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// Parse parses an expression so it can be evaluated with a context.
// Whitespace is removed before parsing, so "1 000" is the same as "1000".
// Positions in errors count runes of the input without whitespace.
func Parse(src string) (*Expr, error) {
	src = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, src)
	scan := lex(strings.NewReader(src))
	n, err := parseterm(scan, exprprec)
	if err != nil {
		return nil, err
	}
	tok := scan.must()
	if n == nil {
		// parselhs pushed a close bracket.
		return nil, itShouldNotHaveEndedThisWay(tok, false)
	}
	if tok.kind != tokenEOF {
		return nil, itShouldNotHaveEndedThisWay(tok, false)
	}
	return &Expr{n: n}, nil
}

// parseterm parses a single term. If there is no error, then parseterm pushes
// the last token it scans, including EOF. If the input is an empty
// subexpression ended by a close bracket, the result is nil with no error;
// callers must create an error in contexts where empty subexpressions are
// illegal.
func parseterm(scan *lexer, until operator) (*node, error) {
	n, err := parselhs(scan, until)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenNum, tokenFunc, tokenConst, tokenOpen:
			// (parsed) x -> (parsed) × (x)
			// 2 sin(x) -> (2) × (sin(x))
			// a^(parsed) x -> (a^(parsed)) × (x)
			if !implicit(n.end(), tok.kind) {
				return nil, &MissingOperatorError{Col: tok.pos, Token: tok.text}
			}
			scan.push(tok)
			prec := termprec
			if !prec.moreBinding(until) {
				return n, nil
			}
			rhs, err := parseterm(scan, prec)
			if err != nil {
				return nil, err
			}
			n = &node{kind: nodeMul, left: n, right: rhs}
		case tokenOp:
			switch tok.text {
			case "%", "!":
				// Postfix operators bind only to the literal just before them,
				// which is always the term currently being parsed.
				n, err = postfix(n, tok)
				if err != nil {
					return nil, err
				}
				continue
			}
			prec := binop(tok.text)
			if prec.op == nodeNone {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseterm(scan, prec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				end := scan.must()
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			n = &node{kind: prec.op, left: n, right: rhs}
		case tokenClose, tokenEOF:
			// End of expression.
			scan.push(tok)
			return n, nil
		default:
			panic("calc: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary
// and any encountered token must be valid as the start of a subexpression.
func parselhs(scan *lexer, until operator) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	var n *node
	switch tok.kind {
	case tokenNum:
		n = &node{kind: nodeNum, name: tok.text}
	case tokenConst:
		n = &node{kind: nodeConst, name: tok.text}
	case tokenFunc:
		n, err = parsecall(scan, tok)
		if err != nil {
			return nil, err
		}
	case tokenOp:
		// unary operator
		prec := unop(tok.text)
		if prec.op == nodeNone {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		if !prec.moreBinding(until) {
			// Just use the new operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := parseterm(scan, prec)
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			end := scan.must()
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		if prec.op == nodeGroup {
			// Unary plus is its operand.
			return rhs, nil
		}
		n = &node{kind: prec.op, left: rhs}
	case tokenOpen:
		rhs, err := parseterm(scan, exprprec)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.kind != tokenClose {
			return nil, itShouldNotHaveEndedThisWay(end, true)
		}
		if rhs == nil {
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		n = &node{kind: nodeGroup, left: rhs}
	case tokenClose:
		// Let the caller decide what to do.
		scan.push(tok)
		return nil, nil
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos, End: ""}
	default:
		panic("calc: unknown token: " + tok.String())
	}
	return n, nil
}

// parsecall parses the bracketed argument of a call to the function named by
// tok.
func parsecall(scan *lexer, tok lexToken) (*node, error) {
	open, err := scan.next()
	if err != nil {
		return nil, err
	}
	if open.kind != tokenOpen {
		return nil, &CallError{Col: open.pos, Func: tok.text}
	}
	arg, err := parseterm(scan, exprprec)
	if err != nil {
		return nil, err
	}
	end := scan.must()
	if end.kind != tokenClose {
		return nil, itShouldNotHaveEndedThisWay(end, true)
	}
	if arg == nil {
		return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
	}
	return &node{kind: nodeCall, name: tok.text, left: arg}, nil
}

// postfix applies a postfix operator to n. Only a bare numeric literal takes a
// postfix operator.
func postfix(n *node, tok lexToken) (*node, error) {
	if n.kind != nodeNum {
		return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Postfix: true}
	}
	if tok.text == "%" {
		return &node{kind: nodePercent, left: n}, nil
	}
	if strings.Contains(n.name, ".") {
		return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Postfix: true}
	}
	// Every factorial beyond 170! overflows, so there's no need to compute
	// anything for literals that don't fit in an int.
	v := math.Inf(1)
	if k, err := strconv.Atoi(n.name); err == nil && k <= maxFactorial {
		v, _ = Factorial(k)
	}
	return &node{kind: nodeFact, name: n.name, num: v}, nil
}

// implicit returns whether a term ending in e may be followed by a token of
// kind k with an implied multiplication.
func implicit(e ending, k tokenKind) bool {
	switch e {
	case endClose:
		return true
	case endNum:
		return k != tokenNum
	default:
		return false
	}
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. open is whether the subexpression
// began with an open bracket.
func itShouldNotHaveEndedThisWay(tok lexToken, open bool) error {
	switch tok.kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.pos, Left: "(", Right: ""}
	case tokenClose:
		if open {
			panic("calc: close bracket ended a bracketed subexpression: " + tok.String())
		}
		return &BracketError{Col: tok.pos, Left: "", Right: tok.text}
	default:
		panic("calc: it really should not have ended this way: " + tok.String())
	}
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b, false)
	return b.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "−":
		return operator{1, false, nodeSub}
	case "×":
		return operator{5, false, nodeMul}
	case "÷":
		return operator{5, false, nodeDiv}
	case "^":
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{20, true, nodeGroup}
	case "−":
		return operator{20, true, nodeNeg}
	default:
		return operator{}
	}
}

var (
	// termprec is the precedence of implicit multiplication. It matches
	// explicit multiplication, so 6÷2(3) is 9.
	termprec = operator{5, false, nodeMul}
	// exprprec is the precedence required to parse an entire subexpression.
	exprprec = operator{-128, true, nodeNone}
)
