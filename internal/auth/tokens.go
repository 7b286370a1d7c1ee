package auth

import (
	"fmt"
	"time"

	"github.com/desertthunder/tdx/internal/shared"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the session token claims. Subject carries the principal id; Name
// and Email let Verify reconstruct the principal without a store read.
type Claims struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager signs and parses HS256 session tokens.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenManager creates a TokenManager. The secret comes from configuration;
// ttl bounds session lifetime.
func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// Issue signs a session token for the principal and returns it alongside its
// expiry.
func (m *TokenManager) Issue(p Principal) (string, time.Time, error) {
	now := time.Now()
	expires := now.Add(m.ttl)

	claims := Claims{
		Name:  p.Name,
		Email: p.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        shared.GenerateID(),
			Issuer:    m.issuer,
			Subject:   p.ID,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return token, expires, nil
}

// Parse validates a token's signature and expiry and returns its claims.
func (m *TokenManager) Parse(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrNotAuthenticated, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, shared.ErrNotAuthenticated
	}

	return claims, nil
}
