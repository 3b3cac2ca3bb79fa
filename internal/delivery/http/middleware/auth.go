package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/domain"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/pkg/jwt"
)

// contextKey - type for context keys
type contextKey string

const (
	// ClaimsKey - context key for the authenticated subject's claims
	ClaimsKey contextKey = "claims"
)

// AuthMiddleware validates the Bearer token and stores the claims in the
// request context. A missing or unusable token is a client mistake, so every
// failure here is a 400 rather than a 401.
func AuthMiddleware(tokenService *jwt.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondError(w, http.StatusBadRequest, "Authorization header required")
				return
			}

			// Expected format: "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondError(w, http.StatusBadRequest, "Invalid authorization header format")
				return
			}

			tokenString := parts[1]

			claims, err := tokenService.ValidateToken(tokenString)
			if err != nil {
				if err == domain.ErrTokenExpired {
					respondError(w, http.StatusBadRequest, "Token expired")
					return
				}
				respondError(w, http.StatusBadRequest, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole checks that the authenticated subject carries one of the
// given role tags
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := r.Context().Value(ClaimsKey).(*jwt.Claims)
			if !ok {
				respondError(w, http.StatusBadRequest, "Authorization header required")
				return
			}

			hasRole := false
			for _, role := range roles {
				if claims.Role == role {
					hasRole = true
					break
				}
			}

			if !hasRole {
				respondError(w, http.StatusForbidden, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetClaims extracts the subject's claims from the context
func GetClaims(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*jwt.Claims)
	return claims, ok
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}`))
}
