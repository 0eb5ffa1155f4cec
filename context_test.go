package infix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/zephyrtronium/infix"
)

func zeroFunc(name string) infix.Function {
	return infix.Function{Name: name, Func: func(string) float64 { return 0 }}
}

func TestNewContext(t *testing.T) {
	ctx, err := infix.NewContext()
	require.NoError(t, err)
	assert.Equal(t, '.', ctx.DecimalSeparator())
	assert.Equal(t, infix.Ordinal, ctx.Comparison())
	assert.Equal(t, language.Und, ctx.Language())
	assert.Empty(t, ctx.FuncNames())
}

func TestContextFuncs(t *testing.T) {
	ctx := infix.MustContext(infix.Funcs(zeroFunc("a"), zeroFunc("b")))
	assert.Equal(t, []string{"a", "b"}, ctx.FuncNames())

	var ce *infix.ConflictError
	assert.ErrorAs(t, ctx.AddFunc(zeroFunc("a")), &ce)
	assert.NoError(t, ctx.AddFunc(zeroFunc("A")))
	assert.ErrorAs(t, ctx.AddFunc(zeroFunc("True")), &ce)
	assert.Error(t, ctx.AddFunc(zeroFunc("1a")))
	assert.Error(t, ctx.AddFunc(zeroFunc("")))
	assert.Error(t, ctx.AddFunc(infix.Function{Name: "nil"}))

	c2, err := ctx.Clone()
	require.NoError(t, err)
	c2.ClearFuncs()
	assert.Empty(t, c2.FuncNames())
	assert.Equal(t, []string{"a", "b", "A"}, ctx.FuncNames())

	_, err = infix.NewContext(infix.Compare(infix.OrdinalIgnoreCase), infix.Funcs(zeroFunc("x"), zeroFunc("X")))
	assert.ErrorAs(t, err, &ce)
}

func TestContextLocale(t *testing.T) {
	cases := []struct {
		tag  language.Tag
		want rune
	}{
		{language.English, '.'},
		{language.German, ','},
		{language.French, ','},
		{language.Japanese, '.'},
	}
	for _, c := range cases {
		t.Run(c.tag.String(), func(t *testing.T) {
			assert.Equal(t, c.want, infix.DecimalSeparator(c.tag))
			ctx, err := infix.NewContext(infix.Locale(c.tag))
			require.NoError(t, err)
			assert.Equal(t, c.want, ctx.DecimalSeparator())
			assert.Equal(t, c.tag, ctx.Language())
		})
	}

	// An explicit separator wins regardless of order.
	ctx, err := infix.NewContext(infix.Separator('.'), infix.Locale(language.German))
	require.NoError(t, err)
	assert.Equal(t, '.', ctx.DecimalSeparator())

	de := infix.MustContext(infix.Locale(language.German))
	assert.Equal(t, 0.5, mustNum(t, "1,25 - 0,75", infix.WithContext(de)))
}

func TestParseComparison(t *testing.T) {
	for _, c := range []infix.Comparison{infix.Ordinal, infix.OrdinalIgnoreCase, infix.Culture, infix.CultureIgnoreCase} {
		got, ok := infix.ParseComparison(c.String())
		assert.True(t, ok)
		assert.Equal(t, c, got)
	}
	got, ok := infix.ParseComparison("IgnoreCase")
	assert.True(t, ok)
	assert.Equal(t, infix.OrdinalIgnoreCase, got)
	_, ok = infix.ParseComparison("nope")
	assert.False(t, ok)
}

func TestCultureCompare(t *testing.T) {
	ärger := infix.Function{Name: "Ärger", Func: func(string) float64 { return 1 }}
	ctx := infix.MustContext(infix.Locale(language.German), infix.Compare(infix.CultureIgnoreCase), infix.Funcs(ärger))
	assert.Equal(t, 1.0, mustNum(t, "ÄRGER()", infix.WithContext(ctx)))
	assert.Equal(t, 1.0, mustNum(t, "ärger()", infix.WithContext(ctx)))

	exact := infix.MustContext(infix.Locale(language.German), infix.Compare(infix.Culture), infix.Funcs(ärger))
	assert.Equal(t, 1.0, mustNum(t, "Ärger()", infix.WithContext(exact)))
	p, err := infix.NewParser[float64](infix.WithContext(exact))
	require.NoError(t, err)
	_, err = p.Parse("ärger()")
	assert.Error(t, err)
}

func TestWithLocale(t *testing.T) {
	assert.Equal(t, 3.0, mustNum(t, "1,5 * 2", infix.WithLocale(language.German)))

	ctx := infix.MustContext(infix.Funcs(zeroFunc("z")))
	p, err := infix.NewParser[float64](infix.WithContext(ctx), infix.WithLocale(language.French))
	require.NoError(t, err)
	assert.Equal(t, ',', p.Context().DecimalSeparator())
	assert.Equal(t, []string{"z"}, p.Context().FuncNames())
	assert.Equal(t, '.', ctx.DecimalSeparator(), "original context is unchanged")
}
