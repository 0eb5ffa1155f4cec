package infix

import (
	"errors"
	"strconv"
	"strings"
)

// ErrNilSource is returned when a nil reader is given as the source of an
// expression. It is an argument error, not an InputError.
var ErrNilSource = errors.New("infix: nil expression source")

// LexError indicates a rune that cannot begin an operand, or a malformed
// number. It implements InputError.
type LexError struct {
	// Col is the offset of the start of the token.
	Col int
	// Text is the offending text.
	Text string
	// Kind is the type of token the lexer was scanning. It is "number" for
	// malformed numbers and the empty string for invalid operand starts.
	Kind string
}

func (err *LexError) Error() string {
	if err.Kind == "" {
		return errpos(err.Col, "character "+strconv.Quote(err.Text)+" is not a valid operand start")
	}
	return errpos(err.Col, "invalid "+err.Kind+" "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int      { return err.Col }
func (err *LexError) Token() string { return err.Text }

// BracketError indicates an open parenthesis with no matching close
// parenthesis. It implements InputError.
type BracketError struct {
	// Col is the position of the open parenthesis.
	Col int
}

func (err *BracketError) Error() string {
	return errpos(err.Col, "closing ')' expected for '('")
}

func (err *BracketError) Pos() int      { return err.Col }
func (err *BracketError) Token() string { return "(" }

// OperatorError is an error indicating an operator token that is not in the
// parser's registry. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the first rune of the text that was not understood.
	Operator string
}

func (err *OperatorError) Error() string {
	return errpos(err.Col, "unrecognized operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int      { return err.Col }
func (err *OperatorError) Token() string { return err.Operator }

// OperandError indicates an operator with no operand to its right. It
// implements InputError.
type OperandError struct {
	// Col is the position at which the operand was expected.
	Col int
	// Operator is the operator missing its right operand.
	Operator string
}

func (err *OperandError) Error() string {
	return errpos(err.Col, "operand expected to the right of "+strconv.Quote(err.Operator))
}

func (err *OperandError) Pos() int      { return err.Col }
func (err *OperandError) Token() string { return err.Operator }

// NameError is an error indicating an identifier that is neither a boolean
// literal, a function, nor a parameter. It implements InputError.
type NameError struct {
	// Col is the position of the identifier.
	Col int
	// Name is the identifier.
	Name string
}

func (err *NameError) Error() string {
	return errpos(err.Col, "unrecognized identifier "+strconv.Quote(err.Name))
}

func (err *NameError) Pos() int      { return err.Col }
func (err *NameError) Token() string { return err.Name }

// CallError is an error indicating a malformed call of a named function, or a
// token rejected by the function's validator. It implements InputError.
type CallError struct {
	// Col is the position of the function name.
	Col int
	// Func is the name of the function.
	Func string
	// Arg is the token passed to the function. It is empty if the call had no
	// parenthesized token.
	Arg string
	// Rejected indicates that the function's validator rejected Arg.
	Rejected bool
}

func (err *CallError) Error() string {
	if !err.Rejected {
		return errpos(err.Col, "expected '(' after function "+err.Func)
	}
	return errpos(err.Col, "token "+strconv.Quote(err.Arg)+" is not valid for function "+err.Func)
}

func (err *CallError) Pos() int { return err.Col }

func (err *CallError) Token() string {
	if err.Rejected {
		return err.Arg
	}
	return err.Func
}

// TypeError indicates an operator applied to operand types that its
// combination rule does not accept. It implements InputError.
type TypeError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the operator symbol.
	Operator string
	// Left and Right are the operand types.
	Left, Right Type
}

func (err *TypeError) Error() string {
	return errpos(err.Col, "operator "+strconv.Quote(err.Operator)+" cannot combine "+err.Left.String()+" and "+err.Right.String())
}

func (err *TypeError) Pos() int      { return err.Col }
func (err *TypeError) Token() string { return err.Operator }

// ResultTypeError indicates that an expression's type differs from the
// parser's declared result type. It implements InputError.
type ResultTypeError struct {
	// Want is the declared result type.
	Want Type
	// Got is the type of the parsed expression.
	Got Type
	// Text is the source of the expression.
	Text string
}

func (err *ResultTypeError) Error() string {
	return errpos(0, "expression has type "+err.Got.String()+", expected "+err.Want.String())
}

func (err *ResultTypeError) Pos() int      { return 0 }
func (err *ResultTypeError) Token() string { return err.Text }

// ConflictError indicates that a function and a parameter, or two
// parameters, share a name.
type ConflictError struct {
	// Name is the shared name.
	Name string
	// With describes what Name conflicts with.
	With string
}

func (err *ConflictError) Error() string {
	return "infix: " + strconv.Quote(err.Name) + " conflicts with " + err.With
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the offset in runes of the start of the token that caused
	// the error. The first rune of the input is at offset 0.
	Pos() int
	// Token returns the offending text.
	Token() string
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*OperandError)(nil)
	_ InputError = (*NameError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*TypeError)(nil)
	_ InputError = (*ResultTypeError)(nil)
)

// Caret renders a diagnostic for an input error: the line of src containing
// the error, and a caret under the offending position.
func Caret(src string, err InputError) string {
	r := []rune(src)
	pos := err.Pos()
	if pos > len(r) {
		pos = len(r)
	}
	start := pos
	for start > 0 && r[start-1] != '\n' {
		start--
	}
	end := pos
	for end < len(r) && r[end] != '\n' {
		end++
	}
	var b strings.Builder
	b.WriteString(string(r[start:end]))
	b.WriteByte('\n')
	for _, c := range r[start:pos] {
		if c == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteByte('^')
	return b.String()
}
