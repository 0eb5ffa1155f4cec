package server

import (
	"sync"
	"time"

	"github.com/bluele/gcache"
	"golang.org/x/time/rate"
)

// limiterCacheSize is the number of clients whose limiters are remembered.
const limiterCacheSize = 1000

// ipRateLimiter keeps a token bucket per client address.
type ipRateLimiter struct {
	cache gcache.Cache
	mu    sync.Mutex
	r     rate.Limit
	b     int
}

func newIPRateLimiter(r rate.Limit, b int) *ipRateLimiter {
	return &ipRateLimiter{
		cache: gcache.New(limiterCacheSize).LRU().Build(),
		r:     r,
		b:     b,
	}
}

// getLimiter returns the limiter for ip, creating it if needed.
func (i *ipRateLimiter) getLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()
	limiter, err := i.cache.Get(ip)
	if err == nil {
		return limiter.(*rate.Limiter)
	}
	l := rate.NewLimiter(i.r, i.b)
	i.cache.SetWithExpire(ip, l, 24*time.Hour)
	return l
}

// allow reports whether a request from ip may proceed.
func (i *ipRateLimiter) allow(ip string) bool {
	return i.getLimiter(ip).Allow()
}
