package infix

import (
	"strconv"
	"strings"
)

// node is a node in the tree of a parsed expression. Every node has a static
// type of TypeNumber or TypeBool.
type node struct {
	kind nodeKind
	typ  Type
	// pos is the offset of the token that produced the node.
	pos int

	// num and b are constant values.
	num float64
	b   bool

	// name is the function name, parameter token, or operator symbol.
	name string
	// arg is the function token or parameter accessor.
	arg string

	fn   *Function
	op   *Operator
	slot int
	// numf and boolf resolve a parameter against a call frame.
	numf  func(*frame) float64
	boolf func(*frame) bool

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum    // constant number
	nodeBool   // constant boolean
	nodeParam  // resolve arg against parameter in slot
	nodeCall   // call fn with arg
	nodeBinary // combine left and right with op
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeNum:
		return "Num"
	case nodeBool:
		return "Bool"
	case nodeParam:
		return "Param"
	case nodeCall:
		return "Call"
	case nodeBinary:
		return "Binary"
	default:
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// zero creates a constant node holding the zero value of t.
func zero(t Type, pos int) *node {
	if t == TypeBool {
		return &node{kind: nodeBool, typ: TypeBool, pos: pos}
	}
	return &node{kind: nodeNum, typ: TypeNumber, pos: pos}
}

// combine applies op to two operands, checking that op's rule accepts their
// types.
func combine(op *Operator, pos int, l, r *node) (*node, error) {
	n := &node{kind: nodeBinary, pos: pos, name: op.Symbol, op: op, left: l, right: r}
	switch {
	case l.typ == TypeNumber && r.typ == TypeNumber && op.Rule.Num != nil:
		n.typ = TypeNumber
	case l.typ == TypeNumber && r.typ == TypeNumber && op.Rule.Cmp != nil:
		n.typ = TypeBool
	case l.typ == TypeBool && r.typ == TypeBool && op.Rule.Bool != nil:
		n.typ = TypeBool
	default:
		return nil, &TypeError{Col: pos, Operator: op.Symbol, Left: l.typ, Right: r.typ}
	}
	return n, nil
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

// fmt writes the node with alternating round and square brackets grouping
// each binary operation.
func (n *node) fmt(b *strings.Builder, square bool) {
	switch n.kind {
	case nodeNum:
		b.WriteString(strconv.FormatFloat(n.num, 'g', -1, 64))
	case nodeBool:
		b.WriteString(strconv.FormatBool(n.b))
	case nodeParam:
		b.WriteString(n.name)
		if n.arg != "" {
			b.WriteByte('.')
			b.WriteString(n.arg)
		}
	case nodeCall:
		b.WriteString(n.name)
		b.WriteByte('{')
		b.WriteString(n.arg)
		b.WriteByte('}')
	case nodeBinary:
		var l, r byte = '(', ')'
		if square {
			l, r = '[', ']'
		}
		b.WriteByte(l)
		n.left.fmt(b, !square)
		b.WriteByte(' ')
		b.WriteString(n.name)
		b.WriteByte(' ')
		n.right.fmt(b, !square)
		b.WriteByte(r)
	default:
		panic("infix: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}
