package infix

// compileNum compiles a number-typed node into a closure.
func compileNum(n *node) func(*frame) float64 {
	switch n.kind {
	case nodeNum:
		x := n.num
		return func(*frame) float64 { return x }
	case nodeParam:
		return n.numf
	case nodeCall:
		f, tok := n.fn.Func, n.arg
		return func(*frame) float64 { return f(tok) }
	case nodeBinary:
		l, r := compileNum(n.left), compileNum(n.right)
		f := n.op.Rule.Num
		return func(fr *frame) float64 { return f(l(fr), r(fr)) }
	default:
		panic("infix: cannot compile " + n.kind.String() + " node as number")
	}
}

// compileBool compiles a bool-typed node into a closure.
func compileBool(n *node) func(*frame) bool {
	switch n.kind {
	case nodeBool:
		b := n.b
		return func(*frame) bool { return b }
	case nodeParam:
		return n.boolf
	case nodeBinary:
		if n.left.typ == TypeNumber {
			l, r := compileNum(n.left), compileNum(n.right)
			f := n.op.Rule.Cmp
			return func(fr *frame) bool { return f(l(fr), r(fr)) }
		}
		l, r := compileBool(n.left), compileBool(n.right)
		f := n.op.Rule.Bool
		return func(fr *frame) bool { return f(l(fr), r(fr)) }
	default:
		panic("infix: cannot compile " + n.kind.String() + " node as bool")
	}
}

// compile compiles a type-checked tree into a closure returning R.
func compile[R Result](n *node) func(*frame) R {
	var f any
	switch resultType[R]() {
	case TypeNumber:
		f = compileNum(n)
	case TypeBool:
		f = compileBool(n)
	default:
		if n.typ == TypeBool {
			b := compileBool(n)
			f = func(fr *frame) Value { return Boolean(b(fr)) }
		} else {
			x := compileNum(n)
			f = func(fr *frame) Value { return Number(x(fr)) }
		}
	}
	return f.(func(*frame) R)
}
