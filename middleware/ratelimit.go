package middleware

import (
	"sync"
	"sync/atomic"
	"time"

	"tickets-webapp/config"
	apierrors "tickets-webapp/errors"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// Clients idle for longer than this lose their bucket on the next sweep.
const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

// rateLimiter is per process: every node keeps its own buckets.
type rateLimiter struct {
	limiters  sync.Map
	cfg       config.RateLimitConfig
	idleTTL   time.Duration
	lastSweep atomic.Int64
	now       func() time.Time
}

func newRateLimiter(cfg config.RateLimitConfig) *rateLimiter {
	l := &rateLimiter{cfg: cfg, idleTTL: limiterIdleTTL, now: time.Now}
	l.lastSweep.Store(l.now().UnixNano())
	return l
}

// RateLimit applies a token bucket per client IP.
func RateLimit(cfg config.RateLimitConfig) fiber.Handler {
	limiter := newRateLimiter(cfg)

	return func(c *fiber.Ctx) error {
		if !limiter.getLimiter(c.IP()).Allow() {
			return apierrors.RaiseTooManyRequestsError(c, "Too many requests")
		}
		return c.Next()
	}
}

func (l *rateLimiter) getLimiter(key string) *rate.Limiter {
	now := l.now().UnixNano()
	l.sweep(now)

	if v, ok := l.limiters.Load(key); ok {
		vis := v.(*visitor)
		vis.lastSeen.Store(now)
		return vis.limiter
	}

	burst := l.cfg.Burst
	if burst <= 0 {
		burst = 5
	}

	vis := &visitor{limiter: rate.NewLimiter(rate.Limit(l.cfg.RPS), burst)}
	vis.lastSeen.Store(now)
	actual, _ := l.limiters.LoadOrStore(key, vis)
	return actual.(*visitor).limiter
}

// sweep drops idle buckets at most once per idleTTL.
func (l *rateLimiter) sweep(now int64) {
	last := l.lastSweep.Load()
	if now-last < int64(l.idleTTL) || !l.lastSweep.CompareAndSwap(last, now) {
		return
	}

	l.limiters.Range(func(key, v any) bool {
		if now-v.(*visitor).lastSeen.Load() > int64(l.idleTTL) {
			l.limiters.Delete(key)
		}
		return true
	})
}
