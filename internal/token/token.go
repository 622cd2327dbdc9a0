// Package token issues and verifies the signed session tokens that
// establish identity on protected routes. The signing secret is
// process-wide configuration, loaded once at startup.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/blogworks/blog-api/internal/core/domain"
)

// DefaultTTL is the token lifetime applied when none is configured.
const DefaultTTL = time.Hour

// Claims are the identity claims embedded in a session token. They are
// the only trusted identity source for the remainder of a request.
type Claims struct {
	UserID   string
	Username string
}

// Service signs and verifies HS256 session tokens.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService returns a Service signing with secret. A zero ttl falls
// back to DefaultTTL; a negative ttl is honoured and issues tokens
// that are already expired.
func NewService(secret string, ttl time.Duration) *Service {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Service{secret: []byte(secret), ttl: ttl}
}

// Issue returns a signed token binding the given identity, expiring
// after the service TTL.
func (s *Service) Issue(userID, username string) (string, error) {
	claims := jwt.MapClaims{
		"userId":   userID,
		"username": username,
		"exp":      time.Now().Add(s.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses raw and returns its identity claims. Malformed tokens,
// bad signatures and expired tokens all fail with ErrInvalidToken.
func (s *Service) Verify(raw string) (*Claims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	userID, _ := claims["userId"].(string)
	username, _ := claims["username"].(string)
	if userID == "" || username == "" {
		return nil, domain.ErrInvalidToken
	}
	return &Claims{UserID: userID, Username: username}, nil
}
