package calc

import "strconv"

// OperatorError is an error indicating an operator token that is not
// understood by the parser in its position. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
	// Unary is whether the parser expected a unary operator at the time.
	Unary bool
	// Postfix is whether the operator is a postfix operator which followed
	// something other than a literal it applies to.
	Postfix bool
}

func (err *OperatorError) Error() string {
	if err.Postfix {
		return errpos(err.Col, "postfix operator "+strconv.Quote(err.Operator)+" must follow a number")
	}
	s := "binary"
	if err.Unary {
		s = "unary"
	}
	return errpos(err.Col, "unknown "+s+" operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// BracketError is an error indicating mismatched brackets in the
// input. It implements InputError.
type BracketError struct {
	// Col is the position of the operator.
	Col int
	// Left is the opening bracket.
	Left string
	// Right is the mismatched closing bracket.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// CallError is an error indicating a function name which is not followed by a
// bracketed argument. It implements InputError.
type CallError struct {
	// Col is the position of the token after the function name.
	Col int
	// Func is the function name that was called.
	Func string
}

func (err *CallError) Error() string {
	return errpos(err.Col, "call of "+err.Func+" needs a bracketed argument")
}

func (err *CallError) Pos() int {
	return err.Col
}

// MissingOperatorError is an error indicating two adjacent terms which cannot
// be an implicit multiplication, like π2 or 2 3. It implements InputError.
type MissingOperatorError struct {
	// Col is the position of the second term.
	Col int
	// Token is the first token of the second term.
	Token string
}

func (err *MissingOperatorError) Error() string {
	return errpos(err.Col, "missing operator before "+strconv.Quote(err.Token))
}

func (err *MissingOperatorError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an empty subexpression.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*MissingOperatorError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*LexError)(nil)
)
