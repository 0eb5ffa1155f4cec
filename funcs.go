package infix

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// funcPrec is the precision in bits of intermediate results of the standard
// functions. It is more than float64 needs so that rounding happens once.
const funcPrec = 80

// StandardFuncs returns the standard function set: exp, ln, log, and sqrt,
// which take a numeric token written with the given decimal separator, and the
// constants pi and e, which take an empty token, as in "pi()".
func StandardFuncs(sep rune) []Function {
	return []Function{
		Monadic("exp", bigfloat.Exp, sep),
		Monadic("ln", bigfloat.Log, sep),
		Monadic("log", func(out, in *big.Float) *big.Float {
			bigfloat.Log(out, in)
			in.SetFloat64(10).SetPrec(out.Prec())
			bigfloat.Log(in, in)
			return out.Quo(out, in)
		}, sep),
		Monadic("sqrt", (*big.Float).Sqrt, sep),
		Niladic("pi", bigfloat.Pi),
		Niladic("e", func(out *big.Float) *big.Float {
			var one big.Float
			one.SetFloat64(1)
			return bigfloat.Exp(out, &one)
		}),
	}
}

// AddStandardFuncs adds StandardFuncs to the context using its decimal
// separator. If any of them conflicts, none are added.
func (ctx *Context) AddStandardFuncs() error {
	fns := make([]Function, 0, len(ctx.funcs)+6)
	for _, f := range ctx.funcs {
		fns = append(fns, *f)
	}
	return ctx.SetFuncs(append(fns, StandardFuncs(ctx.sep)...)...)
}

// Monadic creates a function named name whose token is a number written with
// the decimal separator sep. f must set out to its result; its return value is
// ignored. If the argument is outside f's domain, f should panic, usually
// with big.ErrNaN, and the function returns NaN.
func Monadic(name string, f func(out, in *big.Float) *big.Float, sep rune) Function {
	return Function{
		Name: name,
		Func: func(tok string) float64 {
			x, ok := tokenNumber(tok, sep)
			if !ok {
				return math.NaN()
			}
			return monadic(f, x)
		},
		Valid: func(tok string) bool {
			_, ok := tokenNumber(tok, sep)
			return ok
		},
	}
}

// Niladic creates a function named name which computes a constant and accepts
// only an empty token. f must set out to its result; its return value is
// ignored. The constant is computed once.
func Niladic(name string, f func(out *big.Float) *big.Float) Function {
	var out big.Float
	out.SetPrec(funcPrec)
	f(&out)
	x, _ := out.Float64()
	return Function{
		Name:  name,
		Func:  func(string) float64 { return x },
		Valid: func(tok string) bool { return tok == "" },
	}
}

func monadic(f func(out, in *big.Float) *big.Float, x float64) (r float64) {
	if math.IsNaN(x) {
		return x
	}
	defer func() {
		if recover() != nil {
			r = math.NaN()
		}
	}()
	var in, out big.Float
	in.SetPrec(funcPrec).SetFloat64(x)
	out.SetPrec(funcPrec)
	f(&out, &in)
	r, _ = out.Float64()
	return r
}

// tokenNumber parses a function token as a number.
func tokenNumber(tok string, sep rune) (float64, bool) {
	if tok == "" {
		return 0, false
	}
	if sep != '.' {
		if strings.ContainsRune(tok, '.') {
			return 0, false
		}
		tok = strings.ReplaceAll(tok, string(sep), ".")
	}
	x, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		var ne *strconv.NumError
		if !errors.As(err, &ne) || ne.Err != strconv.ErrRange {
			return 0, false
		}
	}
	return x, true
}
