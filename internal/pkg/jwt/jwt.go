package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the JWT payload: the authenticated subject and its role tag.
// The same claims shape serves both customer and mechanic tokens; the Role
// field is what the authorization guard dispatches on.
type Claims struct {
	SubjectID uuid.UUID   `json:"subject_id"`
	Role      domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService creates and validates signed tokens
type TokenService struct {
	secretKey   string
	tokenExpiry time.Duration
}

// NewTokenService creates a new token service
func NewTokenService(secretKey string, tokenExpiry time.Duration) *TokenService {
	return &TokenService{
		secretKey:   secretKey,
		tokenExpiry: tokenExpiry,
	}
}

// IssueToken produces a signed HS256 token for the subject, expiring
// tokenExpiry (one hour by default) after issuance
func (ts *TokenService) IssueToken(subjectID uuid.UUID, role domain.Role) (string, error) {
	now := time.Now()

	claims := &Claims{
		SubjectID: subjectID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.tokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "mechanic-shop-api",
			Subject:   subjectID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(ts.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken checks signature and expiry and returns the claims
func (ts *TokenService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.secretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	// No leeway: the expiry instant itself is already invalid
	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, domain.ErrTokenExpired
	}

	return claims, nil
}
