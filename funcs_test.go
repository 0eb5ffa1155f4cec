package infix_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/infix"
)

func TestStandardFuncs(t *testing.T) {
	ctx := infix.MustContext()
	require.NoError(t, ctx.AddStandardFuncs())
	cases := []struct {
		src  string
		want float64
	}{
		{"pi()", math.Pi},
		{"e()", math.E},
		{"exp(1)", math.E},
		{"exp(0)", 1},
		{"ln(1)", 0},
		{"log(1000)", 3},
		{"sqrt(16)", 4},
		{"sqrt(2)", math.Sqrt2},
		{"2 * pi()", 2 * math.Pi},
		{"sqrt( 9 ) + ln(1)", 3},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			assert.InDelta(t, c.want, mustNum(t, c.src, infix.WithContext(ctx)), 1e-12)
		})
	}

	t.Run("domain", func(t *testing.T) {
		assert.True(t, math.IsNaN(mustNum(t, "sqrt(-1)", infix.WithContext(ctx))))
	})

	p, err := infix.NewParser[float64](infix.WithContext(ctx))
	require.NoError(t, err)
	for _, src := range []string{"sqrt()", "sqrt(x)", "pi(1)", "exp(1 + 1)", "ln(1,5)"} {
		_, err := p.Parse(src)
		var ce *infix.CallError
		if assert.ErrorAs(t, err, &ce, "%q", src) {
			assert.True(t, ce.Rejected, "%q", src)
		}
	}

	assert.Error(t, ctx.AddStandardFuncs(), "adding twice conflicts")
}

func TestStandardFuncsLocale(t *testing.T) {
	ctx := infix.MustContext(infix.Separator(','))
	require.NoError(t, ctx.AddStandardFuncs())
	assert.Equal(t, 1.5, mustNum(t, "sqrt(2,25)", infix.WithContext(ctx)))

	p, err := infix.NewParser[float64](infix.WithContext(ctx))
	require.NoError(t, err)
	_, err = p.Parse("sqrt(2.25)")
	assert.Error(t, err)
}

func TestMonadic(t *testing.T) {
	half := infix.Monadic("half", func(out, in *big.Float) *big.Float {
		return out.Quo(in, big.NewFloat(2))
	}, '.')
	assert.Equal(t, "half", half.Name)
	assert.True(t, half.Valid("3"))
	assert.False(t, half.Valid("three"))
	assert.Equal(t, 1.5, half.Func("3"))
	assert.True(t, math.IsNaN(half.Func("three")))

	panics := infix.Monadic("bad", func(out, in *big.Float) *big.Float {
		panic(big.ErrNaN{})
	}, '.')
	assert.True(t, math.IsNaN(panics.Func("1")))
}

func TestNiladic(t *testing.T) {
	calls := 0
	two := infix.Niladic("two", func(out *big.Float) *big.Float {
		calls++
		return out.SetInt64(2)
	})
	assert.True(t, two.Valid(""))
	assert.False(t, two.Valid("0"))
	assert.Equal(t, 2.0, two.Func(""))
	assert.Equal(t, 2.0, two.Func(""))
	assert.Equal(t, 1, calls)
}
