package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for every verification failure: malformed token,
// bad signature, missing subject, or expiry in the past. Callers must not be
// able to tell which check failed.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager signs and verifies bearer tokens carrying a subject claim and a
// fixed lifetime. Verification is stateless; there is no revocation.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for subject expiring after the configured lifetime.
func (m *TokenManager) Issue(subject string) (string, error) {
	now := m.now()
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": now.Add(m.ttl).Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify checks the signature and expiry and returns the subject claim.
// Any failure maps to ErrInvalidToken.
func (m *TokenManager) Verify(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr,
		func(t *jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", ErrInvalidToken
	}

	return subject, nil
}
