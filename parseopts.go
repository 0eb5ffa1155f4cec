package infix

import (
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// ParseOption is an option for creating a parser.
type ParseOption interface {
	parseOption(*engine)
}

type (
	ctxopt  struct{ ctx *Context }
	regopt  struct{ reg *Registry }
	boolopt bool
	logopt  struct{ log *zap.Logger }
	langopt struct{ tag language.Tag }
)

// WithContext sets the parser's context. The parser uses the context directly,
// so later changes to the context's functions affect later parses.
func WithContext(ctx *Context) ParseOption {
	return ctxopt{ctx}
}

func (o ctxopt) parseOption(e *engine) {
	e.ctx = o.ctx
}

// WithOperators sets the parser's operators. The default is
// ArithmeticOperators for number results and LogicOperators otherwise.
func WithOperators(reg *Registry) ParseOption {
	return regopt{reg}
}

func (o regopt) parseOption(e *engine) {
	e.reg = o.reg
}

// BoolLiterals sets whether true and false, in any case, are boolean literals.
// The default is false for number results and true otherwise.
func BoolLiterals(enable bool) ParseOption {
	return boolopt(enable)
}

func (o boolopt) parseOption(e *engine) {
	e.bools = bool(o)
}

// WithLogger sets a logger which receives debug traces of each parse.
func WithLogger(log *zap.Logger) ParseOption {
	return logopt{log}
}

func (o logopt) parseOption(e *engine) {
	e.log = o.log
}

// WithLocale makes the parser use a copy of its context in the given language,
// with that language's decimal separator.
func WithLocale(tag language.Tag) ParseOption {
	return langopt{tag}
}

func (o langopt) parseOption(e *engine) {
	e.locale = &o.tag
}
