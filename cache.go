package infix

import (
	"github.com/bluele/gcache"
)

// Cache memoizes compiled expressions by source text. Only successful parses
// are cached; a source that fails to parse is parsed again on each request.
// Cache is safe for concurrent use if its parse function is.
type Cache[F any] struct {
	c gcache.Cache
}

// NewCache creates a cache holding at most size compiled expressions, evicting
// the least recently used. parse is usually the Parse method of a parser.
func NewCache[F any](size int, parse func(src string) (F, error)) *Cache[F] {
	c := gcache.New(size).LRU().LoaderFunc(func(key interface{}) (interface{}, error) {
		return parse(key.(string))
	}).Build()
	return &Cache[F]{c: c}
}

// Get returns the compiled expression for src, parsing it if it is not
// cached.
func (c *Cache[F]) Get(src string) (F, error) {
	v, err := c.c.Get(src)
	if err != nil {
		var zero F
		return zero, err
	}
	return v.(F), nil
}

// Len returns the number of cached expressions.
func (c *Cache[F]) Len() int {
	return c.c.Len(false)
}

// Purge removes all cached expressions.
func (c *Cache[F]) Purge() {
	c.c.Purge()
}
