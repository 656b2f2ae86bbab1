package ratelimit

import (
	"sync"

	"golang.org/x/time/rate"

	"github.com/notatez/notatez/pkg/metrics"
)

// Limiter enforces a per-key token-bucket limit. Keys are created lazily and
// kept for the lifetime of the limiter.
type Limiter struct {
	name    string
	rps     float64
	burst   int
	buckets sync.Map // map[string]*rate.Limiter
}

// New creates a limiter. name labels the limiter in metrics; rps is allowed
// events per second and burst the maximum bucket size.
func New(name string, rps float64, burst int) *Limiter {
	return &Limiter{name: name, rps: rps, burst: burst}
}

func (l *Limiter) bucket(key string) *rate.Limiter {
	if v, ok := l.buckets.Load(key); ok {
		return v.(*rate.Limiter)
	}
	lim := rate.NewLimiter(rate.Limit(l.rps), l.burst)
	actual, _ := l.buckets.LoadOrStore(key, lim)
	return actual.(*rate.Limiter)
}

// Allow reports whether an event for key may proceed now.
func (l *Limiter) Allow(key string) bool {
	if l.bucket(key).Allow() {
		metrics.RateLimitAllowed.WithLabelValues(l.name).Inc()
		return true
	}
	metrics.RateLimitRejected.WithLabelValues(l.name).Inc()
	return false
}
