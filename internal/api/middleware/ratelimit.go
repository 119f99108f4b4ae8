package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"payguard-lab/internal/config"
	"payguard-lab/internal/infrastructure/cache"
)

// RateLimiter returns middleware that enforces a per-client fixed-window
// rate limit backed by Redis
func RateLimiter(c *cache.RedisCache, cfg config.RateLimitConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			clientID := getClientID(r)

			allowed, remaining, resetTime, err := c.CheckRateLimit(
				r.Context(),
				clientID,
				int64(cfg.RequestsPerMinute),
				time.Minute,
			)
			if err != nil {
				// Redis trouble should not take scoring down with it
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.RequestsPerMinute))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

			if !allowed {
				w.Header().Set("Retry-After", strconv.FormatInt(int64(time.Until(resetTime).Seconds()), 10))
				http.Error(w, `{"error":"rate limit exceeded"}`, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientID returns a unique identifier for the client
func getClientID(r *http.Request) string {
	ip := r.Header.Get("X-Forwarded-For")
	if ip == "" {
		ip = r.Header.Get("X-Real-IP")
	}
	if ip == "" {
		ip = r.RemoteAddr
	}
	return fmt.Sprintf("ip:%s", ip)
}
