package httpserver

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Request ceilings per client IP over a 15 minute window. Auth endpoints
// take credential guesses, so they run on a much tighter budget.
const (
	rateWindow  = 15 * time.Minute
	apiRateMax  = 100
	authRateMax = 5
)

type rateBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter hands out one token bucket per client IP. Buckets idle for
// a full window are pruned so the map cannot grow without bound.
type ipRateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rateBucket
	limit   rate.Limit
	burst   int
	window  time.Duration
}

func newIPRateLimiter(window time.Duration, max int) *ipRateLimiter {
	return &ipRateLimiter{
		buckets: make(map[string]*rateBucket),
		limit:   rate.Every(window / time.Duration(max)),
		burst:   max,
		window:  window,
	}
}

func (l *ipRateLimiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.buckets) > 1024 {
		for key, bucket := range l.buckets {
			if now.Sub(bucket.lastSeen) > l.window {
				delete(l.buckets, key)
			}
		}
	}

	bucket, ok := l.buckets[ip]
	if !ok {
		bucket = &rateBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[ip] = bucket
	}
	bucket.lastSeen = now
	return bucket.limiter.Allow()
}

// allowRequest applies the global per-IP budget to every routed request and
// the stricter auth budget to the credential endpoints.
func (s *Server) allowRequest(route, ip string) bool {
	now := time.Now()
	if !s.apiLimiter.allow(ip, now) {
		return false
	}
	if route == "/api/auth/login" || route == "/api/auth/register" {
		return s.authLimiter.allow(ip, now)
	}
	return true
}

func writeRateLimited(w http.ResponseWriter) {
	writeJSON(w, http.StatusTooManyRequests, map[string]string{
		"code":    "rate_limited",
		"message": "too many requests from this IP, please try again later",
	})
}
