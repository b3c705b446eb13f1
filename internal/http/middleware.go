package http

import (
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"
)

// RequestLogger attaches a request scoped logger carrying a request id and
// logs request start and completion.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	var counter atomic.Uint64

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := counter.Add(1)
			logger := base.With(
				"request_id", id,
				"method", r.Method,
				"path", r.URL.Path,
			)

			ctx := ContextWithLogger(r.Context(), logger)
			start := time.Now()
			logger.InfoContext(ctx, "request started")
			next.ServeHTTP(w, r.WithContext(ctx))
			logger.InfoContext(ctx, "request completed", "duration", time.Since(start))
		})
	}
}

// ParishScope resolves the caller's parish from a request header and stores
// it in the context. Paths under any of the public prefixes skip the check;
// the confirmation endpoint is authorized by token alone, and the parish
// collection itself is the bootstrap surface.
func ParishScope(header string, logger *slog.Logger, publicPrefixes ...string) func(http.Handler) http.Handler {
	responder := newResponder(logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range publicPrefixes {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			parishID := strings.TrimSpace(r.Header.Get(header))
			if parishID == "" {
				responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingParishScope)
				return
			}

			ctx := ContextWithParishScope(r.Context(), parishID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
