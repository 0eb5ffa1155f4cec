package infix_test

import (
	"fmt"

	"github.com/zephyrtronium/infix"
)

func ExampleParser() {
	p, err := infix.NewParser[float64]()
	if err != nil {
		panic(err)
	}
	f, err := p.Parse("2 + 3 * 4")
	if err != nil {
		panic(err)
	}
	fmt.Println(f())
	// Output: 14
}

func ExampleParser1() {
	type reading struct{ A, B float64 }
	rx := infix.NumberParam("Rx", func(v reading, accessor string) float64 {
		if accessor == "A" {
			return v.A
		}
		return v.B
	})
	p, err := infix.NewParser1[reading, bool](rx)
	if err != nil {
		panic(err)
	}
	f, err := p.Parse("Rx.A * 2 > Rx.B && true")
	if err != nil {
		panic(err)
	}
	fmt.Println(f(reading{A: 2, B: 3}), f(reading{A: 1, B: 3}))
	// Output: true false
}

func ExampleFunction() {
	m := infix.Function{
		Name: "M",
		Func: func(token string) float64 {
			return float64(len(token))
		},
	}
	ctx := infix.MustContext(infix.Funcs(m))
	p, err := infix.NewParser[float64](infix.WithContext(ctx))
	if err != nil {
		panic(err)
	}
	f, err := p.Parse("M(abc) + M(  (x y)  )")
	if err != nil {
		panic(err)
	}
	fmt.Println(f())
	// Output: 8
}

func ExampleCaret() {
	p, err := infix.NewParser[float64]()
	if err != nil {
		panic(err)
	}
	src := "2 + 3 *"
	_, err = p.Parse(src)
	if ie, ok := err.(infix.InputError); ok {
		fmt.Println(ie)
		fmt.Println(infix.Caret(src, ie))
	}
	// Output:
	// 7: operand expected to the right of "*"
	// 2 + 3 *
	//        ^
}

func ExampleEvalString() {
	v, err := infix.EvalString("false || true && false || true && true && true || false")
	if err != nil {
		panic(err)
	}
	fmt.Println(v, v.Type)
	// Output: true bool
}
