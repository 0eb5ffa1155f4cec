package infix

import (
	"strconv"
	"strings"
	"unicode"
)

// scanner reads operands and operators from an expression. Positions are
// offsets in runes from the start of the source.
type scanner struct {
	src []rune
	pos int
	e   *engine
}

// skipSpace advances past whitespace before end.
func (s *scanner) skipSpace(end int) {
	for s.pos < end && unicode.IsSpace(s.src[s.pos]) {
		s.pos++
	}
}

// operand reads one operand before end. If there is no operand because the
// scanner is at end, the result is nil with no error.
func (s *scanner) operand(end int) (*node, error) {
	s.skipSpace(end)
	if s.pos >= end {
		return nil, nil
	}
	switch r := s.src[s.pos]; {
	case r == '_', unicode.IsLetter(r):
		return s.ident(end)
	case '0' <= r && r <= '9', r == '-', r == s.e.ctx.sep:
		return s.number(end)
	case r == '(':
		return s.group(end)
	default:
		return nil, &LexError{Col: s.pos, Text: string(r)}
	}
}

// word scans a run of letters, digits, and underscores.
func (s *scanner) word(end int) string {
	start := s.pos
	for s.pos < end {
		r := s.src[s.pos]
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		s.pos++
	}
	return string(s.src[start:s.pos])
}

// ident reads an operand beginning with an identifier: a boolean literal, a
// function call, or a parameter reference.
func (s *scanner) ident(end int) (*node, error) {
	start := s.pos
	name := s.word(end)
	if s.e.bools {
		switch {
		case strings.EqualFold(name, "true"):
			return &node{kind: nodeBool, typ: TypeBool, pos: start, b: true}, nil
		case strings.EqualFold(name, "false"):
			return &node{kind: nodeBool, typ: TypeBool, pos: start, b: false}, nil
		}
	}
	if fn := s.e.ctx.lookup(name); fn != nil {
		return s.call(end, start, fn)
	}
	for _, p := range s.e.params {
		if !p.m.equal(p.d.Token(), name) {
			continue
		}
		var acc string
		if s.pos < end && s.src[s.pos] == '.' {
			s.pos++
			acc = s.word(end)
		}
		n := p.d.bind(p.slot, acc)
		n.pos = start
		return n, nil
	}
	return nil, &NameError{Col: start, Name: name}
}

// call reads the parenthesized token following a function name.
func (s *scanner) call(end, start int, fn *Function) (*node, error) {
	s.skipSpace(end)
	if s.pos >= end || s.src[s.pos] != '(' {
		return nil, &CallError{Col: start, Func: fn.Name}
	}
	open := s.pos
	rp, err := s.groupEnd(open, end)
	if err != nil {
		return nil, err
	}
	tok := strings.TrimSpace(string(s.src[open+1 : rp]))
	if fn.Valid != nil && !fn.Valid(tok) {
		return nil, &CallError{Col: start, Func: fn.Name, Arg: tok, Rejected: true}
	}
	s.pos = rp + 1
	return &node{kind: nodeCall, typ: TypeNumber, pos: start, name: fn.Name, arg: tok, fn: fn}, nil
}

// number reads a numeric constant: an optional leading minus sign followed by
// digits and decimal separators.
func (s *scanner) number(end int) (*node, error) {
	start := s.pos
	if s.src[s.pos] == '-' {
		s.pos++
	}
	for s.pos < end {
		r := s.src[s.pos]
		if (r < '0' || r > '9') && r != s.e.ctx.sep {
			break
		}
		s.pos++
	}
	text := string(s.src[start:s.pos])
	num := text
	if s.e.ctx.sep != '.' {
		num = strings.ReplaceAll(text, string(s.e.ctx.sep), ".")
	}
	x, err := strconv.ParseFloat(num, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
			return nil, &LexError{Col: start, Text: text, Kind: "number"}
		}
		// Out of range values parse as ±Inf, which is what we want.
	}
	return &node{kind: nodeNum, typ: TypeNumber, pos: start, num: x}, nil
}

// group reads a parenthesized subexpression.
func (s *scanner) group(end int) (*node, error) {
	open := s.pos
	rp, err := s.groupEnd(open, end)
	if err != nil {
		return nil, err
	}
	s.pos = open + 1
	n, err := s.e.reduce(s, rp, TypeNumber)
	if err != nil {
		return nil, err
	}
	s.pos = rp + 1
	return n, nil
}

// groupEnd finds the close parenthesis matching the open parenthesis at open.
func (s *scanner) groupEnd(open, end int) (int, error) {
	depth := 0
	for i := open; i < end; i++ {
		switch s.src[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, &BracketError{Col: open}
}

// operator reads an operator before end. If the scanner is at end, the result
// is nil with no error. Otherwise the longest registered symbol that prefixes
// the run of operator runes at the scanner's position is the operator.
func (s *scanner) operator(end int) (*Operator, int, error) {
	s.skipSpace(end)
	if s.pos >= end {
		return nil, s.pos, nil
	}
	start := s.pos
	k := start
	for k < end && s.e.reg.isOpRune(s.src[k]) {
		k++
	}
	op := s.e.reg.match(s.src[start:k])
	if op == nil {
		return nil, start, &OperatorError{Col: start, Operator: string(s.src[start])}
	}
	s.pos = start + len([]rune(op.Symbol))
	return op, start, nil
}
