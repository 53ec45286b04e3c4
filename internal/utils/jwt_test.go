package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, sub string, exp time.Time) string {
	t.Helper()

	claims := jwt.RegisteredClaims{Subject: sub}
	if !exp.IsZero() {
		claims.ExpiresAt = jwt.NewNumericDate(exp)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return signed
}

func TestParseBearerToken(t *testing.T) {
	got, err := ParseBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", got)

	_, err = ParseBearerToken("")
	assert.Error(t, err)

	_, err = ParseBearerToken("Bearer ")
	assert.Error(t, err)
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	got, err := TokenExpiry(signedToken(t, "7", exp))
	require.NoError(t, err)
	assert.WithinDuration(t, exp, got, time.Second)
}

func TestTokenExpiry_NoClaim(t *testing.T) {
	_, err := TokenExpiry(signedToken(t, "7", time.Time{}))
	assert.Error(t, err)
}

func TestTokenExpiry_Garbage(t *testing.T) {
	_, err := TokenExpiry("not-a-token")
	assert.Error(t, err)
}

func TestParseUserIDFromJWT(t *testing.T) {
	id, err := ParseUserIDFromJWT(signedToken(t, "42", time.Now().Add(time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestParseUserIDFromJWT_NonNumericSubject(t *testing.T) {
	_, err := ParseUserIDFromJWT(signedToken(t, "alice", time.Now().Add(time.Hour)))
	assert.Error(t, err)
}
