package infix_test

import (
	"math"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/zephyrtronium/infix"
)

// expr is a randomly generated arithmetic expression with its value computed
// by float64 arithmetic in the order the parser should use.
type expr struct {
	src string
	val float64
}

// generator creates random expressions.
type generator struct {
	rng *rand.Rand
	// parens is whether to parenthesize every binary operation.
	parens bool
}

func (g *generator) operand() expr {
	n := g.rng.Intn(2000) - 1000
	if g.rng.Intn(4) == 0 {
		x := float64(n) / 8
		return expr{strconv.FormatFloat(x, 'f', -1, 64), x}
	}
	return expr{strconv.Itoa(n), float64(n)}
}

// tree generates a fully parenthesized expression with the given maximum
// nesting depth.
func (g *generator) tree(depth int) expr {
	if depth == 0 || g.rng.Intn(depth+1) == 0 {
		return g.operand()
	}
	l, r := g.tree(depth-1), g.tree(depth-1)
	sym, f := g.op()
	return expr{"(" + l.src + " " + sym + " " + r.src + ")", f(l.val, r.val)}
}

// chain generates an unparenthesized chain of n operands. The value applies
// multiplicative operators first, then additive ones, each left to right.
func (g *generator) chain(n int) expr {
	var (
		b     strings.Builder
		terms []float64
		signs []string
	)
	first := g.operand()
	b.WriteString(first.src)
	cur := first.val
	for i := 1; i < n; i++ {
		sym, f := g.op()
		x := g.operand()
		b.WriteString(spaces[g.rng.Intn(len(spaces))])
		b.WriteString(sym)
		b.WriteString(spaces[g.rng.Intn(len(spaces))])
		b.WriteString(x.src)
		switch sym {
		case "*", "/":
			cur = f(cur, x.val)
		default:
			terms = append(terms, cur)
			signs = append(signs, sym)
			cur = x.val
		}
	}
	terms = append(terms, cur)
	v := terms[0]
	for i, s := range signs {
		if s == "+" {
			v += terms[i+1]
		} else {
			v -= terms[i+1]
		}
	}
	return expr{b.String(), v}
}

var spaces = []string{"", " ", "  ", "\t", "\n"}

func (g *generator) op() (string, func(a, b float64) float64) {
	switch g.rng.Intn(4) {
	case 0:
		return "+", func(a, b float64) float64 { return a + b }
	case 1:
		return "-", func(a, b float64) float64 { return a - b }
	case 2:
		return "*", func(a, b float64) float64 { return a * b }
	default:
		return "/", func(a, b float64) float64 { return a / b }
	}
}

func same(a, b float64) bool {
	return a == b || math.IsNaN(a) && math.IsNaN(b)
}

func TestRandomTrees(t *testing.T) {
	g := generator{rng: rand.New(rand.NewSource(1))}
	p, err := infix.NewParser[float64]()
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 1000; i++ {
		e := g.tree(8)
		f, err := p.Parse(e.src)
		if err != nil {
			t.Fatalf("%q failed to parse: %v", e.src, err)
		}
		if r := f(); !same(r, e.val) {
			t.Errorf("%q gave %g, want %g", e.src, r, e.val)
		}
	}
}

func TestRandomChains(t *testing.T) {
	g := generator{rng: rand.New(rand.NewSource(2))}
	p, err := infix.NewParser[float64]()
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 1000; i++ {
		e := g.chain(1 + g.rng.Intn(12))
		f, err := p.Parse(e.src)
		if err != nil {
			t.Fatalf("%q failed to parse: %v", e.src, err)
		}
		if r := f(); !same(r, e.val) {
			t.Errorf("%q gave %g, want %g", e.src, r, e.val)
		}
	}
}
