package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/nishigaki-sys/school-booking-v2/internal/api/handlers"
)

// AllowlistChecker answers whether an IP may reach the admin surface.
type AllowlistChecker interface {
	IsAllowed(ctx context.Context, remoteIP string) bool
}

// IPAllowlist gates the admin surface on the configured IP allow-list.
func IPAllowlist(checker AllowlistChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !checker.IsAllowed(r.Context(), clientIP(r)) {
				handlers.RespondForbidden(w, "access denied from this address")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP takes the first X-Forwarded-For hop when present, otherwise the
// connection's remote address.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
