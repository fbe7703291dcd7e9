package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	lim  *rate.Limiter
	seen time.Time
}

// Limiter keeps one token bucket per key. Buckets idle for longer than
// idleTTL are evicted on the next Allow.
type Limiter struct {
	mu      sync.Mutex
	m       map[string]*visitor
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	lastGC  time.Time
	now     func() time.Time
}

func New(rps float64, burst int) *Limiter {
	return &Limiter{
		m:       make(map[string]*visitor),
		limit:   rate.Limit(rps),
		burst:   burst,
		idleTTL: 10 * time.Minute,
		now:     time.Now,
	}
}

// Allow reports whether one event for key may happen now.
func (l *Limiter) Allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	v, ok := l.m[key]
	if !ok {
		v = &visitor{lim: rate.NewLimiter(l.limit, l.burst)}
		l.m[key] = v
	}
	v.seen = now
	l.gc(now)
	l.mu.Unlock()

	return v.lim.AllowN(now, 1)
}

// gc must be called with mu held.
func (l *Limiter) gc(now time.Time) {
	if now.Sub(l.lastGC) < l.idleTTL {
		return
	}
	for k, v := range l.m {
		if now.Sub(v.seen) > l.idleTTL {
			delete(l.m, k)
		}
	}
	l.lastGC = now
}

func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.m)
}
