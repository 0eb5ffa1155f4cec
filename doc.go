// Package infix parses infix expressions into compiled Go functions.
//
// An expression is a sequence of operands separated by binary operators.
// Operands are numbers such as "-1.5", parenthesized groups, the literals true
// and false, calls of named functions such as "M(some text)", and parameter
// references such as "Rx.A". Operators come from a Registry; the default
// registries provide arithmetic, comparisons, equality, && and ||, each with
// conventional precedence and left associativity. "2 + 3 * 4" is 14.
//
// A parser is created for a result type, float64, bool, or Value, and for up
// to two parameter types. Parsing produces a closure which evaluates the
// expression for given arguments without parsing it again:
//
//	p, _ := infix.NewParser1[Reading, bool](infix.NumberParam("Rx", resolve))
//	f, _ := p.Parse("Rx.A * 2 > Rx.B")
//	ok := f(reading)
//
// Function calls never parse their contents as expressions. The text between
// the parentheses is trimmed and passed to the function verbatim, so "M(a b)"
// calls M with the token "a b".
//
// Every error caused by invalid input implements InputError, which reports
// the offset in runes of the offending token.
package infix
