package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/vidshare/internal/infrastructure/caching/redis"
	"github.com/baechuer/vidshare/internal/transport/http/response"
)

type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (redis.Decision, error)
}

// RateLimit applies a fixed window per actor, or per client ip for anonymous
// callers. Limiter failures let the request through.
func RateLimit(l RateLimiter, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if l == nil {
				next.ServeHTTP(w, r)
				return
			}

			dec, err := l.Allow(r.Context(), identity(r), limit, window)
			if err != nil {
				zlog.Warn().Err(err).Str("path", r.URL.Path).Msg("rate limiter unavailable")
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(dec.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(dec.Remaining))
			if !dec.Allowed {
				secs := int(dec.RetryAfter.Round(time.Second) / time.Second)
				if secs < 1 {
					secs = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(secs))
				response.Fail(w, http.StatusTooManyRequests, response.CodeRateLimited, "too many requests",
					nil, response.RequestID(r))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func identity(r *http.Request) string {
	if id := ActorID(r); id != uuid.Nil {
		return "u:" + id.String()
	}
	return "ip:" + clientIP(r)
}

// clientIP relies on chi's RealIP having rewritten RemoteAddr.
func clientIP(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil && host != "" {
		return host
	}
	return addr
}
