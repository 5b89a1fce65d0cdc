package main

import (
	"testing"
	"time"

	"kasapi/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expiredToken(t *testing.T, userID uint) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": userID,
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	s, err := tok.SignedString(jwtSecret)
	require.NoError(t, err)
	return s
}

func TestAccessTokenRoundTrip(t *testing.T) {
	jwtSecret = []byte("test-secret")

	tok, err := issueAccessToken(42)
	require.NoError(t, err)

	uid, err := parseAccessToken(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(42), uid)
}

func TestParseAccessTokenExpired(t *testing.T) {
	jwtSecret = []byte("test-secret")

	_, err := parseAccessToken(expiredToken(t, 42))
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseAccessTokenInvalid(t *testing.T) {
	jwtSecret = []byte("test-secret")

	_, err := parseAccessToken("garbage")
	assert.Error(t, err)

	// token signed with a different secret
	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": 1,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	s, err := other.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)
	_, err = parseAccessToken(s)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, jwt.ErrTokenExpired)

	// token without a uid claim
	anon := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	s, err = anon.SignedString(jwtSecret)
	require.NoError(t, err)
	_, err = parseAccessToken(s)
	assert.Error(t, err)
}

func TestRegisterUser(t *testing.T) {
	mem := store.NewMemory()

	u, err := registerUser(mem, "  Alice  ", " ALICE@Example.com ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEmpty(t, u.PasswordHash)
	assert.NotEqual(t, "secret1", string(u.PasswordHash))

	_, err = registerUser(mem, "Alice Again", "alice@example.com", "secret1")
	require.Error(t, err)
	assert.Equal(t, "email already registered", err.Error())

	_, err = registerUser(mem, "", "x@y.z", "secret1")
	assert.EqualError(t, err, "name is required")
	_, err = registerUser(mem, "X", "", "secret1")
	assert.EqualError(t, err, "email is required")
	_, err = registerUser(mem, "X", "x@y.z", "12345")
	assert.EqualError(t, err, "password too short (min 6)")
}

func TestAuthenticate(t *testing.T) {
	mem := store.NewMemory()
	_, err := registerUser(mem, "Alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	u, err := authenticate(mem, "Alice@Example.COM", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)

	_, err = authenticate(mem, "alice@example.com", "wrong")
	require.Error(t, err)
	wrongPass := err.Error()

	_, err = authenticate(mem, "nobody@example.com", "secret1")
	require.Error(t, err)
	assert.Equal(t, wrongPass, err.Error(), "unknown email and bad password must be indistinguishable")
}
