package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/domain"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/pkg/jwt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAuthMiddleware(t *testing.T) {
	ts := jwt.NewTokenService("test-secret", time.Hour)
	expiredTS := jwt.NewTokenService("test-secret", -time.Minute)

	subjectID := uuid.New()
	validToken, err := ts.IssueToken(subjectID, domain.RoleCustomer)
	assert.NoError(t, err)
	expiredToken, err := expiredTS.IssueToken(subjectID, domain.RoleCustomer)
	assert.NoError(t, err)

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectNext     bool
	}{
		{
			name:           "valid token passes through",
			authHeader:     "Bearer " + validToken,
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "missing header is a 400",
			authHeader:     "",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed header is a 400",
			authHeader:     "Token abc",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "expired token is a 400",
			authHeader:     "Bearer " + expiredToken,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "garbage token is a 400",
			authHeader:     "Bearer not.a.token",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true

				// The claims must be reachable downstream
				claims, ok := GetClaims(r.Context())
				assert.True(t, ok)
				assert.Equal(t, subjectID, claims.SubjectID)
			})

			handler := AuthMiddleware(ts)(next)

			req := httptest.NewRequest(http.MethodGet, "/service_tickets/my-tickets", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
		})
	}
}

func TestRequireRole(t *testing.T) {
	ts := jwt.NewTokenService("test-secret", time.Hour)
	customerToken, err := ts.IssueToken(uuid.New(), domain.RoleCustomer)
	assert.NoError(t, err)

	tests := []struct {
		name           string
		requiredRole   domain.Role
		expectedStatus int
		expectNext     bool
	}{
		{
			name:           "matching role passes",
			requiredRole:   domain.RoleCustomer,
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "wrong role is a 403",
			requiredRole:   domain.RoleMechanic,
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
			})

			// Chain the guards the way the router does
			handler := AuthMiddleware(ts)(RequireRole(tt.requiredRole)(next))

			req := httptest.NewRequest(http.MethodGet, "/customers", nil)
			req.Header.Set("Authorization", "Bearer "+customerToken)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
		})
	}
}

func TestRequireRole_WithoutAuth(t *testing.T) {
	// RequireRole without AuthMiddleware in front finds no claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	handler := RequireRole(domain.RoleMechanic)(next)

	req := httptest.NewRequest(http.MethodGet, "/inventory", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
