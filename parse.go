package infix

import (
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// engine holds the configuration shared by all parser facades.
type engine struct {
	reg    *Registry
	ctx    *Context
	params []boundParam
	// result is the declared result type.
	result Type
	// bools indicates whether true and false are literals.
	bools bool
	log   *zap.Logger
	// locale, if not nil, replaces the context's language.
	locale *language.Tag
}

// parse parses and type-checks an expression.
func (e *engine) parse(src string) (*node, error) {
	s := scanner{src: []rune(src), e: e}
	empty := e.result
	if empty == TypeAny {
		empty = TypeNumber
	}
	n, err := e.reduce(&s, len(s.src), empty)
	if err != nil {
		e.log.Debug("parse failed", zap.String("src", src), zap.Error(err), zap.Int("pos", errPos(err)))
		return nil, err
	}
	if e.result != TypeAny && n.typ != e.result {
		err := &ResultTypeError{Want: e.result, Got: n.typ, Text: src}
		e.log.Debug("parse failed", zap.String("src", src), zap.Error(err))
		return nil, err
	}
	e.log.Debug("parsed", zap.String("src", src), zap.Stringer("tree", n), zap.Stringer("type", n.typ))
	return n, nil
}

// reduce parses the source from the scanner's position up to end into a
// single node. If the range holds no expression, the result is the zero value
// of empty.
//
// Operands and operators are kept on two stacks. An operator that binds no
// more tightly than the operator on top of the stack first reduces the stack,
// so that operators of equal rank apply left to right.
func (e *engine) reduce(s *scanner, end int, empty Type) (*node, error) {
	var (
		operands  []*node
		operators []*Operator
		positions []int
	)
	pop := func() error {
		k := len(operators) - 1
		op, pos := operators[k], positions[k]
		operators, positions = operators[:k], positions[:k]
		l, r := operands[len(operands)-2], operands[len(operands)-1]
		operands = operands[:len(operands)-2]
		n, err := combine(op, pos, l, r)
		if err != nil {
			return err
		}
		operands = append(operands, n)
		return nil
	}

	start := s.pos
	n, err := s.operand(end)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return zero(empty, start), nil
	}
	operands = append(operands, n)
	for {
		op, pos, err := s.operator(end)
		if err != nil {
			return nil, err
		}
		if op == nil {
			break
		}
		for len(operators) > 0 && operators[len(operators)-1].moreBinding(op) {
			if err := pop(); err != nil {
				return nil, err
			}
		}
		operators = append(operators, op)
		positions = append(positions, pos)
		n, err := s.operand(end)
		if err != nil {
			return nil, err
		}
		if n == nil {
			return nil, &OperandError{Col: s.pos, Operator: op.Symbol}
		}
		operands = append(operands, n)
	}
	for len(operators) > 0 {
		if err := pop(); err != nil {
			return nil, err
		}
	}
	return operands[0], nil
}

// errPos gets the position of an input error, or -1 for other errors.
func errPos(err error) int {
	if ie, ok := err.(InputError); ok {
		return ie.Pos()
	}
	return -1
}
