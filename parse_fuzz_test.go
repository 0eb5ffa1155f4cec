package infix_test

import (
	"errors"
	"testing"

	"github.com/zephyrtronium/infix"
)

func FuzzParse(f *testing.F) {
	f.Add("2 + 3 * 4")
	f.Add("(((2+3)*4+(((1))))*5)")
	f.Add("false || true && 1 < 2")
	f.Add("v.x <= -1.5")
	f.Add("pi() * sqrt(2)")
	f.Add("((")
	f.Add("1 +")
	ctx := infix.MustContext()
	if err := ctx.AddStandardFuncs(); err != nil {
		f.Fatal(err)
	}
	p, err := infix.NewParser1[map[string]float64, infix.Value](infix.MapParam("v"), infix.WithContext(ctx))
	if err != nil {
		f.Fatal(err)
	}
	f.Fuzz(func(t *testing.T, s string) {
		fn, err := p.Parse(s)
		if err != nil {
			var ie infix.InputError
			if !errors.As(err, &ie) {
				t.Fatalf("%q gave non-input error %v", s, err)
			}
			if ie.Pos() < 0 || ie.Pos() > len([]rune(s)) {
				t.Fatalf("%q gave error at %d: %v", s, ie.Pos(), err)
			}
			return
		}
		v := fn(map[string]float64{"x": 1})
		if v.Type != infix.TypeNumber && v.Type != infix.TypeBool {
			t.Fatalf("%q gave value of type %v", s, v.Type)
		}
	})
}
