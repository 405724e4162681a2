package server

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/videoai/comprehension-api/internal/config"
	httperrors "github.com/videoai/comprehension-api/pkg/http/errors"
)

// CORS allows the browser extension (chrome-extension:// origins and the
// page origins its overlay is injected into) plus configured dev frontends
// to call the API.
func CORS(cfg config.CORS) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		allowed[origin] = true
	}
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (allowed[origin] || strings.HasPrefix(origin, "chrome-extension://")) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				if cfg.AllowCredentials {
					w.Header().Set("Access-Control-Allow-Credentials", "true")
				}
				w.Header().Set("Vary", "Origin")
			}
			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WindowCounter counts requests per key within a fixed window. The Redis
// implementation is the production backend; tests use an in-memory one.
type WindowCounter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisCounter implements WindowCounter with INCR + first-hit EXPIRE.
type RedisCounter struct {
	client *redis.Client
}

func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

func (c *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := c.client.Expire(ctx, key, window).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}

// RateLimiter applies fixed-window per-IP limits. The counter backend is
// shared across instances so the budget holds fleet-wide.
type RateLimiter struct {
	counter WindowCounter
	logger  zerolog.Logger
}

func NewRateLimiter(counter WindowCounter, logger zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		counter: counter,
		logger:  logger.With().Str("component", "rate_limiter").Logger(),
	}
}

// Limit returns middleware enforcing at most limit requests per window per
// client IP under the given scope. Counter backend failures fail open.
func (rl *RateLimiter) Limit(scope string, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ratelimit:" + scope + ":" + clientIP(r)
			count, err := rl.counter.Incr(r.Context(), key, window)
			if err != nil {
				rl.logger.Warn().Err(err).Msg("rate limit counter unavailable, allowing request")
				next.ServeHTTP(w, r)
				return
			}
			if count > int64(limit) {
				httperrors.RespondTooManyRequests(w, "Too many requests, please try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		for _, part := range strings.Split(xf, ",") {
			ip := strings.TrimSpace(part)
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && net.ParseIP(host) != nil {
		return host
	}
	return r.RemoteAddr
}
