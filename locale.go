package infix

import (
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DecimalSeparator returns the rune that separates the integer and fraction
// parts of numbers in the given language. If the language's separator cannot
// be determined, the result is '.'.
func DecimalSeparator(tag language.Tag) rune {
	p := message.NewPrinter(tag)
	s := p.Sprint(number.Decimal(1.5, number.MinFractionDigits(1), number.NoSeparator()))
	sep := rune(-1)
	for _, r := range s {
		if unicode.IsDigit(r) {
			continue
		}
		if sep != -1 {
			// More than one non-digit, e.g. bidi marks. Don't guess.
			return '.'
		}
		sep = r
	}
	if sep == -1 || !validSeparator(sep) {
		return '.'
	}
	return sep
}

// validSeparator reports whether r can be used as a decimal separator without
// being confused with other tokens.
func validSeparator(r rune) bool {
	switch {
	case r == '(', r == ')', r == '-', r == '_':
		return false
	case unicode.IsSpace(r), unicode.IsLetter(r), unicode.IsDigit(r):
		return false
	}
	return unicode.IsPrint(r)
}
