package middleware

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/pkg/logger"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/pkg/redis"
)

// RateLimitMiddleware enforces a fixed-window limit per client IP, counted in
// Redis with INCR + EXPIRE. The scope separates counters for different route
// groups. If Redis is unavailable the request is let through.
func RateLimitMiddleware(cache *redis.Client, log logger.Logger, scope string, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := fmt.Sprintf("ratelimit:%s:%s", scope, clientIP(r))

			count, err := cache.Incr(r.Context(), key)
			if err != nil {
				log.Warn("Rate limit check failed, allowing request", map[string]interface{}{
					"error": err.Error(),
					"scope": scope,
				})
				next.ServeHTTP(w, r)
				return
			}

			// First hit in the window starts the clock
			if count == 1 {
				if err := cache.Expire(r.Context(), key, window); err != nil {
					log.Warn("Failed to set rate limit window", map[string]interface{}{
						"error": err.Error(),
						"scope": scope,
					})
				}
			}

			if count > int64(limit) {
				respondError(w, http.StatusTooManyRequests, "Rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port from RemoteAddr
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
