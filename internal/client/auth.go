package client

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rileyhilliard/sysdash/internal/errors"
)

const (
	tokenIssuer = "sysdash"
	// A cached token is replaced once less than this much of its life remains.
	refreshSkew = 30 * time.Second
)

// TokenSource supplies the bearer token for each request. An empty token
// means no Authorization header.
type TokenSource interface {
	Token(now time.Time) (string, error)
}

// StaticToken is a fixed bearer token.
type StaticToken string

// Token implements TokenSource.
func (t StaticToken) Token(time.Time) (string, error) {
	return string(t), nil
}

// JWTSource mints HS256 tokens from a shared secret and caches each one until
// it is close to expiry.
type JWTSource struct {
	secret  []byte
	subject string
	ttl     time.Duration

	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewJWTSource creates a JWT token source. ttl <= 0 selects 15 minutes.
func NewJWTSource(secret, subject string, ttl time.Duration) *JWTSource {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &JWTSource{secret: []byte(secret), subject: subject, ttl: ttl}
}

// Token implements TokenSource.
func (s *JWTSource) Token(now time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	skew := min(refreshSkew, s.ttl/2)
	if s.token != "" && now.Before(s.expires.Add(-skew)) {
		return s.token, nil
	}

	expires := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   s.subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't sign the auth token",
			"Check auth.jwt_secret in your config")
	}

	s.token, s.expires = signed, expires
	return signed, nil
}
