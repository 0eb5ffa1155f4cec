package infix

import (
	"strconv"
	"strings"
)

// Rule is the combination rule of a binary operator. Each field handles one
// pairing of operand types; a nil field means the operator rejects that
// pairing. At least one field must be set.
type Rule struct {
	// Num combines two numbers into a number.
	Num func(a, b float64) float64
	// Cmp combines two numbers into a boolean.
	Cmp func(a, b float64) bool
	// Bool combines two booleans into a boolean.
	Bool func(a, b bool) bool
}

// Operator describes a binary operator. Operators are immutable once placed
// in a Registry.
type Operator struct {
	// Symbol is the exact text of the operator.
	Symbol string
	// Rank is the precedence of the operator. Lower ranks bind more tightly.
	// Operators of equal rank associate to the left.
	Rank int
	// Rule is the operator's combination rule.
	Rule Rule
}

// moreBinding reports whether o must be reduced before in is pushed.
func (o *Operator) moreBinding(in *Operator) bool {
	return o.Rank <= in.Rank
}

// Documented operator ranks.
const (
	RankMul   = 9
	RankAdd   = 10
	RankOrder = 11
	RankEqual = 12
	RankAnd   = 13
	RankOr    = 14
)

// Registry is an ordered set of operators. A Registry is immutable after
// creation and safe for concurrent use.
type Registry struct {
	ops   []*Operator
	bysym map[string]*Operator
	// chars is every rune that appears in any symbol.
	chars string
	// longest is the length in runes of the longest symbol.
	longest int
}

// NewRegistry creates a registry from a list of operators. Symbols must be
// non-empty and unique and must not contain whitespace, parentheses, or
// underscores.
func NewRegistry(ops ...Operator) (*Registry, error) {
	r := Registry{
		ops:   make([]*Operator, 0, len(ops)),
		bysym: make(map[string]*Operator, len(ops)),
	}
	var chars strings.Builder
	for i := range ops {
		op := ops[i]
		switch {
		case op.Symbol == "":
			return nil, &RegistryError{Symbol: op.Symbol, Reason: "empty symbol"}
		case strings.ContainsAny(op.Symbol, " \t\r\n()_"):
			return nil, &RegistryError{Symbol: op.Symbol, Reason: "symbol contains reserved characters"}
		case op.Rule.Num == nil && op.Rule.Cmp == nil && op.Rule.Bool == nil:
			return nil, &RegistryError{Symbol: op.Symbol, Reason: "no combination rule"}
		}
		if op.Rule.Num != nil && op.Rule.Cmp != nil {
			return nil, &RegistryError{Symbol: op.Symbol, Reason: "ambiguous result type for numbers"}
		}
		if r.bysym[op.Symbol] != nil {
			return nil, &RegistryError{Symbol: op.Symbol, Reason: "duplicate symbol"}
		}
		r.ops = append(r.ops, &op)
		r.bysym[op.Symbol] = &op
		for _, c := range op.Symbol {
			if !strings.ContainsRune(chars.String(), c) {
				chars.WriteRune(c)
			}
		}
		if n := len([]rune(op.Symbol)); n > r.longest {
			r.longest = n
		}
	}
	r.chars = chars.String()
	return &r, nil
}

// MustRegistry is like NewRegistry but panics on error.
func MustRegistry(ops ...Operator) *Registry {
	r, err := NewRegistry(ops...)
	if err != nil {
		panic("infix: " + err.Error())
	}
	return r
}

// Lookup returns the operator with exactly the given symbol, or nil.
func (r *Registry) Lookup(symbol string) *Operator {
	return r.bysym[symbol]
}

// Symbols returns the registered symbols in registration order.
func (r *Registry) Symbols() []string {
	s := make([]string, len(r.ops))
	for i, op := range r.ops {
		s[i] = op.Symbol
	}
	return s
}

// Operators returns copies of the registered operators in registration order.
func (r *Registry) Operators() []Operator {
	s := make([]Operator, len(r.ops))
	for i, op := range r.ops {
		s[i] = *op
	}
	return s
}

// isOpRune reports whether c appears in any registered symbol.
func (r *Registry) isOpRune(c rune) bool {
	return strings.ContainsRune(r.chars, c)
}

// match finds the longest registered symbol that prefixes run. The result is
// nil if no prefix of run is a symbol.
func (r *Registry) match(run []rune) *Operator {
	n := len(run)
	if n > r.longest {
		n = r.longest
	}
	for ; n > 0; n-- {
		if op := r.bysym[string(run[:n])]; op != nil {
			return op
		}
	}
	return nil
}

// Arithmetic operators.
var (
	OpAdd = Operator{"+", RankAdd, Rule{Num: func(a, b float64) float64 { return a + b }}}
	OpSub = Operator{"-", RankAdd, Rule{Num: func(a, b float64) float64 { return a - b }}}
	OpMul = Operator{"*", RankMul, Rule{Num: func(a, b float64) float64 { return a * b }}}
	OpDiv = Operator{"/", RankMul, Rule{Num: func(a, b float64) float64 { return a / b }}}
)

// Comparison and logical operators.
var (
	OpLess      = Operator{"<", RankOrder, Rule{Cmp: func(a, b float64) bool { return a < b }}}
	OpLessEq    = Operator{"<=", RankOrder, Rule{Cmp: func(a, b float64) bool { return a <= b }}}
	OpGreater   = Operator{">", RankOrder, Rule{Cmp: func(a, b float64) bool { return a > b }}}
	OpGreaterEq = Operator{">=", RankOrder, Rule{Cmp: func(a, b float64) bool { return a >= b }}}
	OpEqual     = Operator{"==", RankEqual, Rule{
		Cmp:  func(a, b float64) bool { return a == b },
		Bool: func(a, b bool) bool { return a == b },
	}}
	OpNotEqual = Operator{"!=", RankEqual, Rule{
		Cmp:  func(a, b float64) bool { return a != b },
		Bool: func(a, b bool) bool { return a != b },
	}}
	OpAnd = Operator{"&&", RankAnd, Rule{Bool: func(a, b bool) bool { return a && b }}}
	OpOr  = Operator{"||", RankOr, Rule{Bool: func(a, b bool) bool { return a || b }}}
)

var (
	arithmetic = MustRegistry(OpAdd, OpSub, OpMul, OpDiv)
	logic      = MustRegistry(
		OpAdd, OpSub, OpMul, OpDiv,
		OpLess, OpLessEq, OpGreater, OpGreaterEq,
		OpEqual, OpNotEqual,
		OpAnd, OpOr,
	)
)

// ArithmeticOperators returns the registry of + - * /.
func ArithmeticOperators() *Registry {
	return arithmetic
}

// LogicOperators returns the registry of arithmetic, comparison, equality,
// and logical operators.
func LogicOperators() *Registry {
	return logic
}

// RegistryError is an error creating a Registry.
type RegistryError struct {
	// Symbol is the offending operator symbol.
	Symbol string
	// Reason describes the problem.
	Reason string
}

func (err *RegistryError) Error() string {
	return "invalid operator " + strconv.Quote(err.Symbol) + ": " + err.Reason
}
