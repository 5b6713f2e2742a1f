package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"feednbounce-backend/internal/identity"
)

type identityKey struct{}

// JWTAuth verifies the bearer token and seeds the request context with the
// identity its claims assert. No storage lookup happens here.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ident, err := identity.ParseToken(secret, strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey{}, &ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates admin-only routes. Must run after JWTAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident := GetIdentity(r.Context())
		if ident == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if !ident.IsAdmin() {
			writeError(w, http.StatusForbidden, "Forbidden: Admins only")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetIdentity returns the identity seeded by JWTAuth, or nil.
func GetIdentity(ctx context.Context) *identity.Identity {
	ident, _ := ctx.Value(identityKey{}).(*identity.Identity)
	return ident
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
