// Package tables loads lookup tables from YAML and exposes them as named
// functions. A table file maps function names to tables of tokens:
//
//	color:
//	  red: 1
//	  green: 2
//
// makes "color(red)" evaluate to 1. Tokens not in a table are rejected when
// the expression is parsed.
package tables

import (
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/infix"
)

// Tables maps function names to their tables.
type Tables map[string]map[string]float64

// Parse parses the YAML text of a table file.
func Parse(b []byte) (Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("tables: %w", err)
	}
	return t, nil
}

// Load reads and parses a table file.
func Load(file string) (Tables, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Names returns the table names in sorted order.
func (t Tables) Names() []string {
	r := make([]string, 0, len(t))
	for k := range t {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

// Funcs returns a function for each table, in sorted order by name.
func (t Tables) Funcs() []infix.Function {
	r := make([]infix.Function, 0, len(t))
	for _, name := range t.Names() {
		tab := t[name]
		r = append(r, infix.Function{
			Name: name,
			Func: func(tok string) float64 {
				x, ok := tab[tok]
				if !ok {
					return math.NaN()
				}
				return x
			},
			Valid: func(tok string) bool {
				_, ok := tab[tok]
				return ok
			},
		})
	}
	return r
}

// Install replaces the functions of ctx with the standard functions, if std
// is true, followed by the tables. If any table cannot be installed, ctx keeps
// its previous functions.
func (t Tables) Install(ctx *infix.Context, std bool) error {
	var fns []infix.Function
	if std {
		fns = infix.StandardFuncs(ctx.DecimalSeparator())
	}
	if err := ctx.SetFuncs(append(fns, t.Funcs()...)...); err != nil {
		return fmt.Errorf("installing tables: %w", err)
	}
	return nil
}
