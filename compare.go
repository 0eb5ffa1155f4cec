package infix

import (
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparison is a policy for matching identifiers against function and
// parameter names.
type Comparison int8

const (
	// Ordinal matches names rune for rune.
	Ordinal Comparison = iota
	// OrdinalIgnoreCase matches names under Unicode case folding.
	OrdinalIgnoreCase
	// Culture matches names that collate equally in the context's language.
	Culture
	// CultureIgnoreCase is Culture with case differences ignored.
	CultureIgnoreCase
)

func (c Comparison) String() string {
	switch c {
	case Ordinal:
		return "ordinal"
	case OrdinalIgnoreCase:
		return "ordinal-ignore-case"
	case Culture:
		return "culture"
	case CultureIgnoreCase:
		return "culture-ignore-case"
	default:
		return "Comparison(" + strconv.Itoa(int(c)) + ")"
	}
}

// ParseComparison parses the name of a comparison policy as produced by
// Comparison.String. It also accepts "ignorecase" and "cultureignorecase".
func ParseComparison(s string) (Comparison, bool) {
	switch strings.ToLower(s) {
	case "ordinal":
		return Ordinal, true
	case "ordinal-ignore-case", "ignorecase":
		return OrdinalIgnoreCase, true
	case "culture":
		return Culture, true
	case "culture-ignore-case", "cultureignorecase":
		return CultureIgnoreCase, true
	}
	return 0, false
}

// matcher tests names for equality under a comparison policy. A matcher using
// a culture-aware policy is not safe for concurrent use.
type matcher struct {
	cmp  Comparison
	coll *collate.Collator
}

func newMatcher(cmp Comparison, tag language.Tag) *matcher {
	m := matcher{cmp: cmp}
	switch cmp {
	case Culture:
		m.coll = collate.New(tag)
	case CultureIgnoreCase:
		m.coll = collate.New(tag, collate.IgnoreCase)
	}
	return &m
}

// equal reports whether a and b name the same thing.
func (m *matcher) equal(a, b string) bool {
	switch m.cmp {
	case Ordinal:
		return a == b
	case OrdinalIgnoreCase:
		if a == b {
			return true
		}
		if isASCII(a) && isASCII(b) {
			return strings.EqualFold(a, b)
		}
		fold := folders.Get().(*cases.Caser)
		r := fold.String(a) == fold.String(b)
		folders.Put(fold)
		return r
	default:
		if m.coll == nil {
			return a == b
		}
		return m.coll.CompareString(a, b) == 0
	}
}

// folders holds case folders for non-ASCII comparisons. A Caser is not safe
// for concurrent use, and matchers are shared among parsers.
var folders = sync.Pool{
	New: func() any {
		c := cases.Fold()
		return &c
	},
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
