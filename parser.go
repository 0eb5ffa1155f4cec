package infix

import (
	"errors"
	"io"
	"strconv"

	"go.uber.org/zap"
)

// Parser parses expressions into functions of no arguments returning R. R is
// float64 for arithmetic, bool for boolean logic, or Value to accept either.
//
// A Parser may be reused to parse any number of expressions. A Parser is not
// safe for concurrent use if its context compares names with a culture-aware
// policy. The functions it returns are always safe for concurrent use.
type Parser[R Result] struct {
	base
}

// Parser1 parses expressions into functions of one argument of type T1
// returning R.
type Parser1[T1 any, R Result] struct {
	base
}

// Parser2 parses expressions into functions of two arguments of types T1 and
// T2 returning R.
type Parser2[T1, T2 any, R Result] struct {
	base
}

// NewParser creates a parser for expressions without parameters.
func NewParser[R Result](opts ...ParseOption) (*Parser[R], error) {
	e, err := newEngine(resultType[R](), nil, opts)
	if err != nil {
		return nil, err
	}
	return &Parser[R]{base{e}}, nil
}

// NewParser1 creates a parser for expressions with one parameter.
func NewParser1[T1 any, R Result](p1 *Param[T1], opts ...ParseOption) (*Parser1[T1, R], error) {
	if p1 == nil {
		return nil, errors.New("infix: nil parameter")
	}
	e, err := newEngine(resultType[R](), []paramDescriptor{p1}, opts)
	if err != nil {
		return nil, err
	}
	return &Parser1[T1, R]{base{e}}, nil
}

// NewParser2 creates a parser for expressions with two parameters.
func NewParser2[T1, T2 any, R Result](p1 *Param[T1], p2 *Param[T2], opts ...ParseOption) (*Parser2[T1, T2, R], error) {
	if p1 == nil || p2 == nil {
		return nil, errors.New("infix: nil parameter")
	}
	e, err := newEngine(resultType[R](), []paramDescriptor{p1, p2}, opts)
	if err != nil {
		return nil, err
	}
	return &Parser2[T1, T2, R]{base{e}}, nil
}

// Parse parses an expression. Parsing an empty or all-whitespace expression
// produces a function returning the zero value of R.
func (p *Parser[R]) Parse(src string) (func() R, error) {
	n, err := p.e.parse(src)
	if err != nil {
		return nil, err
	}
	f := compile[R](n)
	return func() R { return f(&frame{}) }, nil
}

// ParseReader parses an expression read in its entirety from r.
func (p *Parser[R]) ParseReader(r io.Reader) (func() R, error) {
	src, err := readSource(r)
	if err != nil {
		return nil, err
	}
	return p.Parse(src)
}

// Parse parses an expression which may refer to the parser's parameter.
func (p *Parser1[T1, R]) Parse(src string) (func(T1) R, error) {
	n, err := p.e.parse(src)
	if err != nil {
		return nil, err
	}
	f := compile[R](n)
	return func(a T1) R { return f(&frame{args: [2]any{a}}) }, nil
}

// ParseReader parses an expression read in its entirety from r.
func (p *Parser1[T1, R]) ParseReader(r io.Reader) (func(T1) R, error) {
	src, err := readSource(r)
	if err != nil {
		return nil, err
	}
	return p.Parse(src)
}

// Parse parses an expression which may refer to the parser's parameters.
func (p *Parser2[T1, T2, R]) Parse(src string) (func(T1, T2) R, error) {
	n, err := p.e.parse(src)
	if err != nil {
		return nil, err
	}
	f := compile[R](n)
	return func(a T1, b T2) R { return f(&frame{args: [2]any{a, b}}) }, nil
}

// ParseReader parses an expression read in its entirety from r.
func (p *Parser2[T1, T2, R]) ParseReader(r io.Reader) (func(T1, T2) R, error) {
	src, err := readSource(r)
	if err != nil {
		return nil, err
	}
	return p.Parse(src)
}

// base holds the methods common to all parsers.
type base struct {
	e *engine
}

// Explain parses an expression and returns a string representation of its
// tree, with alternating round and square brackets grouping each operation.
func (b base) Explain(src string) (string, error) {
	n, err := b.e.parse(src)
	if err != nil {
		return "", err
	}
	return n.String(), nil
}

// Check parses an expression and reports whether it is valid, without
// compiling it. The result is the expression's type.
func (b base) Check(src string) (Type, error) {
	n, err := b.e.parse(src)
	if err != nil {
		return TypeNone, err
	}
	return n.typ, nil
}

// Context returns the parser's context.
func (b base) Context() *Context {
	return b.e.ctx
}

// Operators returns the parser's operator registry.
func (b base) Operators() *Registry {
	return b.e.reg
}

// ResultType returns the parser's declared result type.
func (b base) ResultType() Type {
	return b.e.result
}

// newEngine creates the shared parser configuration.
func newEngine(result Type, params []paramDescriptor, opts []ParseOption) (*engine, error) {
	e := engine{result: result, log: zap.NewNop()}
	if result == TypeNumber {
		e.reg = ArithmeticOperators()
	} else {
		e.reg = LogicOperators()
		e.bools = true
	}
	for _, opt := range opts {
		if opt != nil {
			opt.parseOption(&e)
		}
	}
	if e.ctx == nil {
		e.ctx = MustContext()
	}
	if e.locale != nil {
		ctx, err := e.ctx.Clone(Locale(*e.locale))
		if err != nil {
			return nil, err
		}
		e.ctx = ctx
	}
	if e.reg == nil {
		return nil, errors.New("infix: nil operator registry")
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	if e.reg.isOpRune(e.ctx.sep) {
		return nil, errors.New("infix: decimal separator " + strconv.QuoteRune(e.ctx.sep) + " is used by an operator")
	}
	for i, d := range params {
		e.params = append(e.params, boundParam{d: d, m: newMatcher(d.Comparison(), e.ctx.tag), slot: i})
	}
	if err := checkConflicts(e.ctx, e.params); err != nil {
		return nil, err
	}
	e.ctx.reserve(e.params)
	return &e, nil
}

// readSource reads all of r.
func readSource(r io.Reader) (string, error) {
	if r == nil {
		return "", ErrNilSource
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// EvalString is a shortcut to parse and evaluate an expression without
// parameters in open mode.
func EvalString(src string, opts ...ParseOption) (Value, error) {
	p, err := NewParser[Value](opts...)
	if err != nil {
		return Value{}, err
	}
	f, err := p.Parse(src)
	if err != nil {
		return Value{}, err
	}
	return f(), nil
}
