package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/infix"
	"github.com/zephyrtronium/infix/internal/config"
)

func TestEvaluator(t *testing.T) {
	cases := []struct {
		mode string
		src  string
		want string
		err  bool
	}{
		{"math", "1 + v.x * 2", "7", false},
		{"math", "1 < 2", "", true},
		{"logic", "v.x > 2 && 1 == 1", "true", false},
		{"logic", "1 + 1", "", true},
		{"any", "v.x / 2", "1.5", false},
		{"any", "v.x != 3", "false", false},
	}
	vars := map[string]float64{"x": 3}
	for _, c := range cases {
		t.Run(c.mode+" "+c.src, func(t *testing.T) {
			ev, err := newEvaluator(c.mode, "%v")
			require.NoError(t, err)
			f, err := ev.parse(c.src)
			if c.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, f(vars))
		})
	}
	_, err := newEvaluator("calculus", "%v")
	assert.Error(t, err)
}

func TestNewContext(t *testing.T) {
	dir := t.TempDir()
	tab := filepath.Join(dir, "t.yaml")
	require.NoError(t, os.WriteFile(tab, []byte("size:\n  small: 1\n  large: 10\n"), 0o644))

	cfg := config.Default()
	cfg.Locale = "de"
	cfg.Compare = "ignorecase"
	cfg.Tables = tab
	ctx, tables, err := newContext(cfg)
	require.NoError(t, err)
	assert.Equal(t, ',', ctx.DecimalSeparator())
	assert.Equal(t, infix.OrdinalIgnoreCase, ctx.Comparison())
	assert.Equal(t, []string{"size"}, tables.Names())
	assert.Contains(t, ctx.FuncNames(), "sqrt")

	v, err := infix.EvalString("SIZE(large) * 0,5", infix.WithContext(ctx))
	require.NoError(t, err)
	assert.Equal(t, infix.Number(5), v)

	cfg.Compare = "sideways"
	_, _, err = newContext(cfg)
	assert.Error(t, err)
	cfg.Compare = ""
	cfg.Locale = "!!"
	_, _, err = newContext(cfg)
	assert.Error(t, err)
}

func TestSources(t *testing.T) {
	in := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(in, []byte("1 + 1\n\n2 * 3\n"), 0o644))

	srcs, err := sources(in, []string{"4"}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"1 + 1", "2 * 3", "4"}, srcs)

	srcs, err = sources(in, nil, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"1 + 1\n\n2 * 3\n"}, srcs)

	srcs, err = sources("", []string{"5", "6"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"5", "6"}, srcs)
}
