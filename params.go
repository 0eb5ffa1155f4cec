package infix

import "strings"

// Param describes an external parameter of type T that compiled expressions
// accept when they are called. An identifier in an expression matching the
// parameter's token, optionally followed by a dot and an accessor, resolves to
// the parameter; e.g. with a token of "Rx", the expression "Rx.A" calls the
// resolver with the bound value and the accessor "A".
type Param[T any] struct {
	token   string
	cmp     Comparison
	typ     Type
	num     func(v T, accessor string) float64
	boolean func(v T, accessor string) bool
}

// NumberParam creates a parameter whose accessors resolve to numbers. The
// token is matched case-insensitively unless changed with Compare.
func NumberParam[T any](token string, resolve func(v T, accessor string) float64) *Param[T] {
	if resolve == nil {
		panic("infix: nil resolver for parameter " + token)
	}
	return &Param[T]{token: token, cmp: OrdinalIgnoreCase, typ: TypeNumber, num: resolve}
}

// BoolParam creates a parameter whose accessors resolve to booleans. The
// token is matched case-insensitively unless changed with Compare.
func BoolParam[T any](token string, resolve func(v T, accessor string) bool) *Param[T] {
	if resolve == nil {
		panic("infix: nil resolver for parameter " + token)
	}
	return &Param[T]{token: token, cmp: OrdinalIgnoreCase, typ: TypeBool, boolean: resolve}
}

// Compare returns a copy of p which matches its token under cmp.
func (p *Param[T]) Compare(cmp Comparison) *Param[T] {
	q := *p
	q.cmp = cmp
	return &q
}

// Token returns the parameter's token.
func (p *Param[T]) Token() string {
	return p.token
}

// Comparison returns the policy for matching the parameter's token.
func (p *Param[T]) Comparison() Comparison {
	return p.cmp
}

// Type returns the type that the parameter's accessors resolve to.
func (p *Param[T]) Type() Type {
	return p.typ
}

// bind creates a node which resolves accessor against the argument in the
// given slot of the call frame.
func (p *Param[T]) bind(slot int, accessor string) *node {
	n := &node{kind: nodeParam, typ: p.typ, name: p.token, arg: accessor, slot: slot}
	switch p.typ {
	case TypeNumber:
		f := p.num
		n.numf = func(fr *frame) float64 {
			v, _ := fr.args[slot].(T)
			return f(v, accessor)
		}
	case TypeBool:
		f := p.boolean
		n.boolf = func(fr *frame) bool {
			v, _ := fr.args[slot].(T)
			return f(v, accessor)
		}
	}
	return n
}

// paramDescriptor is the type-erased form of a Param.
type paramDescriptor interface {
	Token() string
	Comparison() Comparison
	Type() Type
	bind(slot int, accessor string) *node
}

var _ paramDescriptor = (*Param[struct{}])(nil)

// boundParam is a parameter placed in a slot of a parser's call frame.
type boundParam struct {
	d    paramDescriptor
	m    *matcher
	slot int
}

// frame holds the arguments of a call to a compiled expression.
type frame struct {
	args [2]any
}

// MapParam creates a number parameter over a map from names to values. An
// accessor names a key; missing keys resolve to zero.
func MapParam(token string) *Param[map[string]float64] {
	return NumberParam(token, func(v map[string]float64, accessor string) float64 {
		return v[accessor]
	})
}

// checkConflicts verifies that no two of the parser's names collide under
// either side's comparison policy.
func checkConflicts(ctx *Context, params []boundParam) error {
	for i, p := range params {
		if !isIdent(p.d.Token()) {
			return &ConflictError{Name: p.d.Token(), With: "identifier syntax"}
		}
		if strings.EqualFold(p.d.Token(), "true") || strings.EqualFold(p.d.Token(), "false") {
			return &ConflictError{Name: p.d.Token(), With: "boolean literal"}
		}
		for _, f := range ctx.funcs {
			if p.m.equal(p.d.Token(), f.Name) || ctx.m.equal(f.Name, p.d.Token()) {
				return &ConflictError{Name: p.d.Token(), With: "function " + f.Name}
			}
		}
		for _, q := range params[:i] {
			if p.m.equal(p.d.Token(), q.d.Token()) || q.m.equal(q.d.Token(), p.d.Token()) {
				return &ConflictError{Name: p.d.Token(), With: "parameter " + q.d.Token()}
			}
		}
	}
	return nil
}
