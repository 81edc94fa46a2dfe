package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/devlink-app/devlink-backend/internal/models"
)

// Token verification failures. All of them mean "no identity": callers never
// get partial trust out of a bad token.
var (
	ErrTokenExpired   = models.NewAuthError("token has expired")
	ErrTokenInvalid   = models.NewAuthError("token signature is invalid")
	ErrTokenMalformed = models.NewAuthError("token is malformed")
)

// TokenService issues and verifies stateless HMAC-SHA256 session tokens.
// Tokens carry the subject identity and an absolute expiry; there is no
// revocation list, so a token stays valid until it expires.
type TokenService struct {
	signingKey []byte
	ttl        time.Duration
	now        func() time.Time // injectable for tests
}

// NewTokenService builds a TokenService from the configured secret and
// lifetime. The secret must be at least 32 bytes.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive")
	}
	return &TokenService{
		signingKey: []byte(secret),
		ttl:        ttl,
		now:        time.Now,
	}, nil
}

// Issue creates a signed token for the given subject identity.
func (s *TokenService) Issue(subjectID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		ID:        uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the subject identity.
// Failures map to ErrTokenExpired, ErrTokenInvalid or ErrTokenMalformed.
func (s *TokenService) Verify(tokenString string) (string, error) {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(s.now),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		parserOpts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return "", ErrTokenMalformed
		default:
			return "", ErrTokenInvalid
		}
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}
