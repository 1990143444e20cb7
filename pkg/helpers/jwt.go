package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken covers signature mismatch, malformed structure and
	// unexpected signing algorithms.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when the exp claim is present and in the past.
	ErrExpiredToken = errors.New("token expired")
)

// JWTManager issues and verifies signed bearer tokens. Tokens are
// self-contained HS256 claim sets: a subject plus an optional expiry.
type JWTManager struct {
	Secret     []byte
	AccessTTL  time.Duration
	ConfirmTTL time.Duration
}

func NewJWTManager(secret string, accessTTL, confirmTTL time.Duration) *JWTManager {
	return &JWTManager{
		Secret:     []byte(secret),
		AccessTTL:  accessTTL,
		ConfirmTTL: confirmTTL,
	}
}

// GenerateAccessToken issues a session token for the given subject (user id).
// Elevated tokens omit the exp claim entirely and never expire; the returned
// expiry is the zero time in that case. This is a deliberate escape hatch for
// superuser automation, not an oversight.
func (m *JWTManager) GenerateAccessToken(subject string, elevated bool) (string, time.Time, error) {
	claims := jwt.RegisteredClaims{
		Subject:  subject,
		IssuedAt: jwt.NewNumericDate(time.Now()),
	}
	var exp time.Time
	if !elevated {
		exp = time.Now().Add(m.AccessTTL)
		claims.ExpiresAt = jwt.NewNumericDate(exp)
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

// GenerateConfirmToken issues a short-lived token whose subject is an email
// address. Used for account confirmation and password reset.
func (m *JWTManager) GenerateConfirmToken(email string) (string, time.Time, error) {
	exp := time.Now().Add(m.ConfirmTTL)
	claims := jwt.RegisteredClaims{
		Subject:   email,
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

// Parse verifies signature, algorithm and (if present) expiry, and returns
// the token subject. A token with no exp claim is accepted at any time.
func (m *JWTManager) Parse(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}
	if !tkn.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
