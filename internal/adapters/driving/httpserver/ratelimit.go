package httpserver

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/duxt-mcp/internal/metrics"
)

// RateLimitConfig holds rate limiting configuration for the MCP endpoint.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit. Zero disables limiting.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size. Defaults to 1.
	BurstSize int
}

// Enabled reports whether the config limits anything.
func (c RateLimitConfig) Enabled() bool {
	return c.RequestsPerSecond > 0
}

// RateLimiter is a token bucket shared by every request it guards.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a rate limiter with the given configuration.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	burst := cfg.BurstSize
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
	}
}

// Allow checks if a request can be made immediately without blocking.
// When it cannot, the returned duration is how long until a token frees up.
func (r *RateLimiter) Allow() (bool, time.Duration) {
	now := time.Now()
	res := r.limiter.ReserveN(now, 1)
	if !res.OK() {
		return false, time.Second
	}
	delay := res.DelayFrom(now)
	if delay == 0 {
		return true, 0
	}
	res.CancelAt(now)
	return false, delay
}

// Middleware rejects requests over the limit with 429 and a Retry-After header.
func (r *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ok, retryAfter := r.Allow()
		if !ok {
			metrics.RateLimitedTotal.WithLabelValues(metrics.RoutePattern(req)).Inc()
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			writeJSONError(w, http.StatusTooManyRequests, "Too many requests. Retry later.")
			return
		}
		next.ServeHTTP(w, req)
	})
}
