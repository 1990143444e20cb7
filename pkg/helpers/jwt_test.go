package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWT() *JWTManager {
	return NewJWTManager("test-secret", time.Hour, 30*time.Minute)
}

func TestAccessTokenRoundtrip(t *testing.T) {
	m := newTestJWT()

	token, exp, err := m.GenerateAccessToken("42", false)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	sub, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "42", sub)
}

func TestElevatedTokenNeverExpires(t *testing.T) {
	// Elevated tokens carry no exp claim, so even a manager with a TTL in
	// the past must accept them.
	m := NewJWTManager("test-secret", -time.Hour, 30*time.Minute)

	token, exp, err := m.GenerateAccessToken("1", true)
	require.NoError(t, err)
	assert.True(t, exp.IsZero())

	sub, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "1", sub)
}

func TestExpiredTokenRejected(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute, 30*time.Minute)

	token, _, err := m.GenerateAccessToken("42", false)
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestConfirmTokenSubjectIsEmail(t *testing.T) {
	m := newTestJWT()

	token, exp, err := m.GenerateConfirmToken("user@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), exp, 5*time.Second)

	sub, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", sub)
}

func TestTamperedTokenRejected(t *testing.T) {
	m := newTestJWT()

	token, _, err := m.GenerateAccessToken("42", false)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = m.Parse(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestWrongSecretRejected(t *testing.T) {
	m := newTestJWT()
	other := NewJWTManager("other-secret", time.Hour, 30*time.Minute)

	token, _, err := m.GenerateAccessToken("42", false)
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGarbageTokenRejected(t *testing.T) {
	m := newTestJWT()

	_, err := m.Parse("definitely.not.a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
