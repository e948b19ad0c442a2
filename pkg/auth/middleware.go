package auth

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/rhuss/stepsort/pkg/api"
	"github.com/rhuss/stepsort/pkg/debug"
	"github.com/rhuss/stepsort/pkg/observability"
	"github.com/rhuss/stepsort/pkg/transport"
)

// DefaultProtectedPrefixes lists the path prefixes that require
// authentication. Everything else (health, metrics, static frontend)
// passes through.
var DefaultProtectedPrefixes = []string{"/api/", "/mcp"}

// Middleware creates HTTP middleware from an AuthChain and optional
// RateLimiter. Requests under one of the protected prefixes are
// authenticated, rate limited and carry the identity in their context.
// CORS preflights are never gated.
func Middleware(chain *AuthChain, limiter RateLimiter, protectedPrefixes []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || !isProtected(r.URL.Path, protectedPrefixes) {
				next.ServeHTTP(w, r)
				return
			}

			result := chain.Authenticate(r.Context(), r)

			if result.Decision != Yes || result.Identity == nil {
				slog.Warn("authentication failed",
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
					"decision", result.Decision.String(),
					"error", result.Err,
				)
				w.Header().Set("WWW-Authenticate", `Bearer realm="stepsort"`)
				msg := "authentication required"
				if errors.Is(result.Err, ErrForbidden) {
					msg = "access denied"
				}
				transport.WriteAPIError(w, api.NewUnauthorizedError(msg))
				return
			}

			if result.Identity.Subject == "" {
				slog.Error("authenticator returned identity with empty subject")
				transport.WriteAPIError(w, api.NewServerError("internal authentication error"))
				return
			}

			debug.Log("auth", "authentication succeeded",
				"subject", result.Identity.Subject,
				"tier", result.Identity.Tier(),
				"path", r.URL.Path,
			)

			if limiter != nil {
				if err := limiter.Allow(r.Context(), result.Identity); err != nil {
					slog.Warn("rate limit exceeded",
						"subject", result.Identity.Subject,
						"tier", result.Identity.Tier(),
					)
					observability.RateLimitRejectedTotal.WithLabelValues(result.Identity.Tier()).Inc()
					var rlErr *RateLimitError
					if errors.As(err, &rlErr) {
						w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(rlErr.RetryAfter.Seconds()))))
					}
					transport.WriteAPIError(w, api.NewTooManyRequestsError("rate limit exceeded"))
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(SetIdentity(r.Context(), result.Identity)))
		})
	}
}

func isProtected(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
