package infix

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
)

// Function is a named function taking a literal string token. A call
// Name(some text) passes the trimmed text between the parentheses to Func
// verbatim; the text is never parsed as an expression.
type Function struct {
	// Name is the function name. It must be an identifier.
	Name string
	// Func computes the function's value for a token. It is called each time
	// a compiled expression is evaluated, so it should be pure.
	Func func(token string) float64
	// Valid, if not nil, is called once at parse time to check the token.
	Valid func(token string) bool
}

// Context holds settings shared among parsers: the decimal separator, the
// name comparison policy, and the set of named functions. A Context must not
// be modified while any parser using it is parsing.
type Context struct {
	sep   rune
	cmp   Comparison
	tag   language.Tag
	funcs []*Function
	m     *matcher
	// params are the names of parameters of parsers using the context.
	params []reservation
}

// reservation is a parameter name bound to a context.
type reservation struct {
	name string
	m    *matcher
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	localeopt struct{ tag language.Tag }
	sepopt    rune
	cmpopt    Comparison
	funcsopt  []Function
)

func (localeopt) ctxOption() {}
func (sepopt) ctxOption()    {}
func (cmpopt) ctxOption()    {}
func (funcsopt) ctxOption()  {}

// Locale sets the language of the context. The decimal separator becomes the
// language's, unless Separator is also given, and culture-aware comparisons
// collate in the language.
func Locale(tag language.Tag) ContextOption {
	return localeopt{tag}
}

// Separator sets the decimal separator.
func Separator(r rune) ContextOption {
	return sepopt(r)
}

// Compare sets the policy for matching function names.
func Compare(cmp Comparison) ContextOption {
	return cmpopt(cmp)
}

// Funcs adds named functions to the context.
func Funcs(fns ...Function) ContextOption {
	return funcsopt(fns)
}

// NewContext creates a new parser context. By default, the decimal separator
// is '.', function names are compared ordinally, and there are no functions.
func NewContext(opts ...ContextOption) (*Context, error) {
	ctx := Context{sep: '.', cmp: Ordinal, tag: language.Und}
	return ctx.Clone(opts...)
}

// MustContext is like NewContext but panics on error.
func MustContext(opts ...ContextOption) *Context {
	ctx, err := NewContext(opts...)
	if err != nil {
		panic("infix: " + err.Error())
	}
	return ctx
}

// Clone creates a copy of a context and applies options to it.
func (ctx *Context) Clone(opts ...ContextOption) (*Context, error) {
	n := Context{
		sep:   ctx.sep,
		cmp:   ctx.cmp,
		tag:   ctx.tag,
		funcs: make([]*Function, 0, len(ctx.funcs)),
	}
	// Settings first, so that functions are checked under the final policy.
	explicit := false
	for _, opt := range opts {
		switch opt := opt.(type) {
		case localeopt:
			n.tag = opt.tag
			if !explicit {
				n.sep = DecimalSeparator(opt.tag)
			}
		case sepopt:
			n.sep = rune(opt)
			explicit = true
		case cmpopt:
			n.cmp = Comparison(opt)
		case funcsopt, nil:
			// Do nothing yet.
		default:
			panic("infix: unknown context option type")
		}
	}
	if !validSeparator(n.sep) || strings.ContainsRune(LogicOperators().chars, n.sep) {
		return nil, errors.New("infix: invalid decimal separator " + strconv.QuoteRune(n.sep))
	}
	n.m = newMatcher(n.cmp, n.tag)
	n.funcs = append(n.funcs, ctx.funcs...)
	for _, opt := range opts {
		if fns, ok := opt.(funcsopt); ok {
			for _, f := range fns {
				if err := n.AddFunc(f); err != nil {
					return nil, err
				}
			}
		}
	}
	return &n, nil
}

// AddFunc adds a named function to the context. It is an error if the name is
// not an identifier or matches an existing function's name or the name of a
// parameter of any parser using the context.
func (ctx *Context) AddFunc(f Function) error {
	if !isIdent(f.Name) {
		return errors.New("infix: invalid function name " + strconv.Quote(f.Name))
	}
	if strings.EqualFold(f.Name, "true") || strings.EqualFold(f.Name, "false") {
		return &ConflictError{Name: f.Name, With: "boolean literal"}
	}
	if f.Func == nil {
		return errors.New("infix: nil callback for function " + f.Name)
	}
	if ctx.lookup(f.Name) != nil {
		return &ConflictError{Name: f.Name, With: "function"}
	}
	for _, p := range ctx.params {
		if p.m.equal(p.name, f.Name) || ctx.m.equal(f.Name, p.name) {
			return &ConflictError{Name: f.Name, With: "parameter " + p.name}
		}
	}
	ctx.funcs = append(ctx.funcs, &f)
	return nil
}

// SetFuncs replaces the context's functions. If any function is invalid or
// conflicts, the context is unchanged.
func (ctx *Context) SetFuncs(fns ...Function) error {
	n := *ctx
	n.funcs = make([]*Function, 0, len(fns))
	for _, f := range fns {
		if err := n.AddFunc(f); err != nil {
			return err
		}
	}
	ctx.funcs = n.funcs
	return nil
}

// reserve records the parameters of a parser using the context so that later
// functions cannot shadow them.
func (ctx *Context) reserve(params []boundParam) {
outer:
	for _, p := range params {
		tok := p.d.Token()
		for _, q := range ctx.params {
			if q.name == tok && q.m.cmp == p.m.cmp {
				continue outer
			}
		}
		ctx.params = append(ctx.params, reservation{name: tok, m: p.m})
	}
}

// ClearFuncs removes all named functions from the context.
func (ctx *Context) ClearFuncs() {
	ctx.funcs = nil
}

// FuncNames returns the names of the context's functions in the order they
// were added.
func (ctx *Context) FuncNames() []string {
	r := make([]string, len(ctx.funcs))
	for i, f := range ctx.funcs {
		r[i] = f.Name
	}
	return r
}

// DecimalSeparator returns the context's decimal separator.
func (ctx *Context) DecimalSeparator() rune {
	return ctx.sep
}

// Comparison returns the context's policy for matching function names.
func (ctx *Context) Comparison() Comparison {
	return ctx.cmp
}

// Language returns the context's language.
func (ctx *Context) Language() language.Tag {
	return ctx.tag
}

// lookup finds the function matching name, or nil.
func (ctx *Context) lookup(name string) *Function {
	for _, f := range ctx.funcs {
		if ctx.m.equal(f.Name, name) {
			return f
		}
	}
	return nil
}

// isIdent reports whether s is an identifier: a letter or underscore followed
// by letters, digits, and underscores.
func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
