package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nishigaki-sys/school-booking-v2/internal/api/handlers"
)

// Admin role header values. A global admin sees every venue; a school admin
// is pinned to the venue named in X-Venue-ID.
const (
	HeaderAdminRole = "X-Admin-Role"
	HeaderVenueID   = "X-Venue-ID"

	RoleGlobal = "global"
	RoleSchool = "school"
)

type adminCtxKey struct{}

// AdminIdentity is the authenticated admin attached to the request context.
type AdminIdentity struct {
	Role    string
	VenueID string
}

// AdminFromContext returns the admin identity set by Auth.
func AdminFromContext(ctx context.Context) (AdminIdentity, bool) {
	identity, ok := ctx.Value(adminCtxKey{}).(AdminIdentity)
	return identity, ok
}

// Auth requires a valid admin role header on every protected route. School
// admins must also present their venue id.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := r.Header.Get(HeaderAdminRole)
		venueID := r.Header.Get(HeaderVenueID)

		switch role {
		case RoleGlobal:
		case RoleSchool:
			if venueID == "" {
				handlers.RespondError(w, http.StatusUnauthorized, "X-Venue-ID header is required for school admins")
				return
			}
		default:
			handlers.RespondError(w, http.StatusUnauthorized, "X-Admin-Role header must be global or school")
			return
		}

		ctx := context.WithValue(r.Context(), adminCtxKey{}, AdminIdentity{Role: role, VenueID: venueID})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireGlobal restricts a route to global admins.
func RequireGlobal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := AdminFromContext(r.Context())
		if !ok || identity.Role != RoleGlobal {
			handlers.RespondForbidden(w, "global admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// VenueScope restricts a venue route to global admins and to the school
// admin of that venue. The route must carry a {venueId} variable.
func VenueScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := AdminFromContext(r.Context())
		if !ok {
			handlers.RespondForbidden(w, "admin role required")
			return
		}
		if identity.Role == RoleSchool && identity.VenueID != mux.Vars(r)["venueId"] {
			handlers.RespondForbidden(w, "access limited to your own venue")
			return
		}
		next.ServeHTTP(w, r)
	})
}
