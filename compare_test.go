package infix

import (
	"sync"
	"testing"

	"golang.org/x/text/language"
)

func TestMatcherIgnoreCase(t *testing.T) {
	m := newMatcher(OrdinalIgnoreCase, language.Und)
	cases := []struct {
		a, b string
		want bool
	}{
		{"abc", "abc", true},
		{"abc", "ABC", true},
		{"abc", "abd", false},
		{"abc", "ab", false},
		{"Ärger", "äRGER", true},
		{"Ärger", "Arger", false},
		{"σ", "Σ", true},
		{"k", "K", true},
	}
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, c := range cases {
				if got := m.equal(c.a, c.b); got != c.want {
					t.Errorf("equal(%q, %q) = %t, want %t", c.a, c.b, got, c.want)
				}
			}
		}()
	}
	wg.Wait()
}
